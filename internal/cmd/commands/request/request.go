package request

import (
	"github.com/mitchellh/cli"

	"github.com/GenerateNU/selfserve/internal/cmd/base"
	"github.com/GenerateNU/selfserve/query"
)

// Query keys for request data. Creating or generating a request invalidates
// listKey, which also drops every cached single request under it.
var listKey = query.Key{"requests"}

func requestKey(id string) query.Key {
	return query.Key{"requests", id}
}

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "List, create and generate guest service requests"
}

func (c *Command) Help() string {
	return `Usage: selfserve request <subcommand> [options] [args]

  This command groups subcommands for guest service requests.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
