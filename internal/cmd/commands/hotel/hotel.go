package hotel

import (
	"github.com/mitchellh/cli"
	"github.com/spf13/pflag"

	"github.com/GenerateNU/selfserve/internal/cmd/base"
	"github.com/GenerateNU/selfserve/models"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Create and read hotels"
}

func (c *Command) Help() string {
	return `Usage: selfserve hotel <subcommand> [options] [args]

  This command groups subcommands for hotels.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Fetch a hotel by ID"
}

func (c *GetCommand) Help() string {
	return `Usage: selfserve hotel get [options] <id>` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("hotel get", pflag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *GetCommand) Run(args []string) int {
	args, ok := c.Parse(c.Flags(), args)
	if !ok {
		return 1
	}
	if len(args) != 1 {
		c.UI.Error("hotel get requires exactly one hotel ID")
		return 1
	}

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	result, err := rt.Gen.GetHotel(ctx, args[0])
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result.Data)
}

type CreateCommand struct {
	*base.Command

	flagName   string
	flagFloors int
}

func (c *CreateCommand) Synopsis() string {
	return "Create a hotel"
}

func (c *CreateCommand) Help() string {
	return `Usage: selfserve hotel create [options]` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("hotel create", pflag.ContinueOnError))
	f.StringVar(&c.flagName, "name", "", "(Required) Hotel name")
	f.IntVar(&c.flagFloors, "floors", 1, "Number of floors")
	c.ClientFlags(f)
	return f
}

func (c *CreateCommand) Run(args []string) int {
	if _, ok := c.Parse(c.Flags(), args); !ok {
		return 1
	}
	if c.flagName == "" {
		c.UI.Error("name flag is required")
		return 1
	}
	if c.flagFloors < 1 {
		c.UI.Error("floors must be at least 1")
		return 1
	}

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	result, err := rt.Gen.CreateHotel(ctx, models.CreateHotelRequest{
		Name:   c.flagName,
		Floors: c.flagFloors,
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result.Data)
}
