package user

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
	return "Create and read staff users"
}

func (c *Command) Help() string {
	return `Usage: selfserve user <subcommand> [options] [args]

  This command groups subcommands for hotel staff users.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type GetCommand struct {
	*base.Command
}

func (c *GetCommand) Synopsis() string {
	return "Fetch a user by ID"
}

func (c *GetCommand) Help() string {
	return `Usage: selfserve user get [options] <id>` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("user get", pflag.ContinueOnError))
	c.ClientFlags(f)
	return f
}

func (c *GetCommand) Run(args []string) int {
	args, ok := c.Parse(c.Flags(), args)
	if !ok {
		return 1
	}
	if len(args) != 1 {
		c.UI.Error("user get requires exactly one user ID")
		return 1
	}

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	result, err := rt.Gen.GetUser(ctx, args[0])
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result.Data)
}

type CreateCommand struct {
	*base.Command

	flagFirstName  string
	flagLastName   string
	flagClerkID    string
	flagEmployeeID string
	flagRole       string
	flagDepartment string
	flagTimezone   string
}

func (c *CreateCommand) Synopsis() string {
	return "Create a user"
}

func (c *CreateCommand) Help() string {
	return `Usage: selfserve user create [options]` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("user create", pflag.ContinueOnError))
	f.StringVar(&c.flagFirstName, "first-name", "", "(Required) First name")
	f.StringVar(&c.flagLastName, "last-name", "", "(Required) Last name")
	f.StringVar(&c.flagClerkID, "clerk-id", "", "(Required) Identity provider subject")
	f.StringVar(&c.flagEmployeeID, "employee-id", "", "Employee ID")
	f.StringVar(&c.flagRole, "role", "", "Staff role")
	f.StringVar(&c.flagDepartment, "department", "", "Department")
	f.StringVar(&c.flagTimezone, "timezone", "", "IANA timezone")
	c.ClientFlags(f)
	return f
}

func (c *CreateCommand) Run(args []string) int {
	flags := c.Flags()
	if _, ok := c.Parse(flags, args); !ok {
		return 1
	}
	if c.flagFirstName == "" || c.flagLastName == "" || c.flagClerkID == "" {
		c.UI.Error("first-name, last-name and clerk-id are required")
		return 1
	}

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	result, err := rt.Gen.CreateUser(ctx, models.CreateUser{
		FirstName:  c.flagFirstName,
		LastName:   c.flagLastName,
		ClerkID:    c.flagClerkID,
		EmployeeID: flags.StringIfSet("employee-id", c.flagEmployeeID),
		Role:       flags.StringIfSet("role", c.flagRole),
		Department: flags.StringIfSet("department", c.flagDepartment),
		Timezone:   flags.StringIfSet("timezone", c.flagTimezone),
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(result.Data)
}
