package hello

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/GenerateNU/selfserve/internal/cmd/base"
	"github.com/GenerateNU/selfserve/query"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Call the backend greeting endpoint"
}

func (c *Command) Help() string {
	return `Usage: selfserve hello [options] [name]

  Calls GET /api/v1/hello, or GET /api/v1/hello/:name when a name is given,
  and prints the greeting.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("hello", pflag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *Command) Run(args []string) int {
	args, ok := c.Parse(c.Flags(), args)
	if !ok {
		return 1
	}
	if len(args) > 1 {
		c.UI.Error("hello takes at most one argument")
		return 1
	}

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	key := query.Key{"hello"}
	fetch := func(ctx context.Context) (string, error) {
		result, err := rt.Gen.GetHello(ctx)
		if err != nil {
			return "", err
		}
		return result.Data, nil
	}
	if len(args) == 1 {
		name := args[0]
		key = query.Key{"hello", name}
		fetch = func(ctx context.Context) (string, error) {
			result, err := rt.Gen.GetHelloName(ctx, name)
			if err != nil {
				return "", err
			}
			return result.Data, nil
		}
	}

	greeting, err := query.Fetch(ctx, rt.Query, key, fetch)
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(greeting)
}
