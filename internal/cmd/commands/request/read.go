package request

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/GenerateNU/selfserve/internal/cmd/base"
	"github.com/GenerateNU/selfserve/models"
	"github.com/GenerateNU/selfserve/query"
)

type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Fetch a request by ID"
}

func (c *GetCommand) Help() string {
	return `Usage: selfserve request get [options] <id>` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("request get", pflag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *GetCommand) Run(args []string) int {
	args, ok := c.Parse(c.Flags(), args)
	if !ok {
		return 1
	}
	if len(args) != 1 {
		c.UI.Error("request get requires exactly one request ID")
		return 1
	}
	id := args[0]

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	req, err := query.Fetch(ctx, rt.Query, requestKey(id), func(ctx context.Context) (*models.Request, error) {
		return rt.Services.Requests.Get(ctx, id)
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(req)
}

type ListCommand struct {
	*base.Command
}

func (c *ListCommand) Synopsis() string {
	return "List requests"
}

func (c *ListCommand) Help() string {
	return `Usage: selfserve request list [options]` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("request list", pflag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *ListCommand) Run(args []string) int {
	if _, ok := c.Parse(c.Flags(), args); !ok {
		return 1
	}

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	reqs, err := query.Fetch(ctx, rt.Query, listKey, rt.Services.Requests.List)
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(reqs)
}
