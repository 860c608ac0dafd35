package guest

import (
	"github.com/spf13/pflag"

	"github.com/GenerateNU/selfserve/internal/cmd/base"
	"github.com/GenerateNU/selfserve/models"
)

// guestFlags are shared by create and update.
type guestFlags struct {
	firstName      string
	lastName       string
	profilePicture string
	timezone       string
}

func (g *guestFlags) register(f *base.FlagSet) {
	f.StringVar(&g.firstName, "first-name", "", "(Required) Guest first name")
	f.StringVar(&g.lastName, "last-name", "", "(Required) Guest last name")
	f.StringVar(&g.profilePicture, "profile-picture", "", "Profile picture URL")
	f.StringVar(&g.timezone, "timezone", "", "IANA timezone, e.g. America/New_York")
}

func (g *guestFlags) validate() string {
	if g.firstName == "" || g.lastName == "" {
		return "first-name and last-name are required"
	}
	return ""
}

type CreateCommand struct {
	*base.Command

	guest guestFlags
}

func (c *CreateCommand) Synopsis() string {
	return "Create a guest"
}

func (c *CreateCommand) Help() string {
	return `Usage: selfserve guest create [options]

  Creates a guest with POST /api/v1/guests and prints the stored record.` +
		c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("guest create", pflag.ContinueOnError))
	c.guest.register(f)
	c.ClientFlags(f)
	return f
}

func (c *CreateCommand) Run(args []string) int {
	flags := c.Flags()
	if _, ok := c.Parse(flags, args); !ok {
		return 1
	}
	if msg := c.guest.validate(); msg != "" {
		c.UI.Error(msg)
		return 1
	}

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	guest, err := rt.Services.Guests.Create(ctx, models.CreateGuest{
		FirstName:      c.guest.firstName,
		LastName:       c.guest.lastName,
		ProfilePicture: flags.StringIfSet("profile-picture", c.guest.profilePicture),
		Timezone:       flags.StringIfSet("timezone", c.guest.timezone),
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(guest)
}

type UpdateCommand struct {
	*base.Command

	guest guestFlags
}

func (c *UpdateCommand) Synopsis() string {
	return "Replace a guest's details"
}

func (c *UpdateCommand) Help() string {
	return `Usage: selfserve guest update [options] <id>

  Replaces the guest with PUT /api/v1/guests/:id.` + c.Flags().Help()
}

func (c *UpdateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("guest update", pflag.ContinueOnError))
	c.guest.register(f)
	c.ClientFlags(f)
	return f
}

func (c *UpdateCommand) Run(args []string) int {
	flags := c.Flags()
	args, ok := c.Parse(flags, args)
	if !ok {
		return 1
	}
	if len(args) != 1 {
		c.UI.Error("guest update requires exactly one guest ID")
		return 1
	}
	if msg := c.guest.validate(); msg != "" {
		c.UI.Error(msg)
		return 1
	}

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	guest, err := rt.Services.Guests.Update(ctx, args[0], models.UpdateGuest{
		FirstName:      c.guest.firstName,
		LastName:       c.guest.lastName,
		ProfilePicture: flags.StringIfSet("profile-picture", c.guest.profilePicture),
		Timezone:       flags.StringIfSet("timezone", c.guest.timezone),
	})
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(guest)
}
