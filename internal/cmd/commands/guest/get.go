package guest

import (
	"github.com/spf13/pflag"

	"github.com/GenerateNU/selfserve/internal/cmd/base"
)

type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Fetch a guest by ID"
}

func (c *GetCommand) Help() string {
	return `Usage: selfserve guest get [options] <id>` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("guest get", pflag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *GetCommand) Run(args []string) int {
	args, ok := c.Parse(c.Flags(), args)
	if !ok {
		return 1
	}
	if len(args) != 1 {
		c.UI.Error("guest get requires exactly one guest ID")
		return 1
	}

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	guest, err := rt.Services.Guests.Get(ctx, args[0])
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(guest)
}
