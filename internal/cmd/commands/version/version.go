package version

import (
	"github.com/GenerateNU/selfserve"
	"github.com/GenerateNU/selfserve/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version of the selfserve client"
}

func (c *Command) Help() string {
	return "Usage: selfserve version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output(selfserve.GetVersion())
	return 0
}
