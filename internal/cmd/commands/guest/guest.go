package guest

import (
	"github.com/mitchellh/cli"

	"github.com/GenerateNU/selfserve/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Create, read and update guests"
}

func (c *Command) Help() string {
	return `Usage: selfserve guest <subcommand> [options] [args]

  This command groups subcommands for working with hotel guests.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
