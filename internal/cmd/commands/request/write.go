package request

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"github.com/GenerateNU/selfserve/internal/cmd/base"
	"github.com/GenerateNU/selfserve/models"
	"github.com/GenerateNU/selfserve/query"
)

type CreateCommand struct {
	*base.Command

	flagHotelID     string
	flagGuestID     string
	flagRoomID      string
	flagName        string
	flagDescription string
	flagType        string
	flagCategory    string
	flagDepartment  string
	flagStatus      string
	flagPriority    string
	flagEstimated   int
	flagNotes       string
}

func (c *CreateCommand) Synopsis() string {
	return "Create a request"
}

func (c *CreateCommand) Help() string {
	return `Usage: selfserve request create [options]

  Creates a guest service request and prints the stored record.` +
		c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("request create", pflag.ContinueOnError))

	f.StringVar(&c.flagHotelID, "hotel-id", "", "(Required) Hotel the request belongs to")
	f.StringVar(&c.flagName, "name", "", "(Required) Short name for the request")
	f.StringVar(&c.flagType, "type", "", "(Required) Request type, e.g. one-time or recurring")
	f.StringVar(&c.flagStatus, "status", "pending", "Request status")
	f.StringVar(&c.flagPriority, "priority", "medium", "Request priority")
	f.StringVar(&c.flagGuestID, "guest-id", "", "Guest who made the request")
	f.StringVar(&c.flagRoomID, "room-id", "", "Room the request is for")
	f.StringVar(&c.flagDescription, "description", "", "Longer description")
	f.StringVar(&c.flagCategory, "category", "", "Request category")
	f.StringVar(&c.flagDepartment, "department", "", "Department handling the request")
	f.IntVar(&c.flagEstimated, "estimated-minutes", 0, "Estimated completion time in minutes")
	f.StringVar(&c.flagNotes, "notes", "", "Staff notes")
	c.ClientFlags(f)

	return f
}

func (c *CreateCommand) Run(args []string) int {
	flags := c.Flags()
	if _, ok := c.Parse(flags, args); !ok {
		return 1
	}

	var missing []string
	for _, required := range []struct{ name, value string }{
		{"hotel-id", c.flagHotelID},
		{"name", c.flagName},
		{"type", c.flagType},
	} {
		if required.value == "" {
			missing = append(missing, required.name)
		}
	}
	if len(missing) > 0 {
		c.UI.Error("missing required flags: " + strings.Join(missing, ", "))
		return 1
	}

	in := models.MakeRequest{
		HotelID:                 c.flagHotelID,
		Name:                    c.flagName,
		RequestType:             c.flagType,
		Status:                  c.flagStatus,
		Priority:                c.flagPriority,
		GuestID:                 flags.StringIfSet("guest-id", c.flagGuestID),
		RoomID:                  flags.StringIfSet("room-id", c.flagRoomID),
		Description:             flags.StringIfSet("description", c.flagDescription),
		RequestCategory:         flags.StringIfSet("category", c.flagCategory),
		Department:              flags.StringIfSet("department", c.flagDepartment),
		EstimatedCompletionTime: flags.IntIfSet("estimated-minutes", c.flagEstimated),
		Notes:                   flags.StringIfSet("notes", c.flagNotes),
	}

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	req, err := query.Mutate(ctx, rt.Query, func(ctx context.Context) (*models.Request, error) {
		return rt.Services.Requests.Create(ctx, in)
	}, listKey)
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(req)
}

type GenerateCommand struct {
	*base.Command

	flagHotelID string
}

func (c *GenerateCommand) Synopsis() string {
	return "Draft a request from free text"
}

func (c *GenerateCommand) Help() string {
	return `Usage: selfserve request generate [options] <text>

  Sends the text to the backend's request generator and prints the request
  it produced. Multiple arguments are joined with spaces.` + c.Flags().Help()
}

func (c *GenerateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("request generate", pflag.ContinueOnError))
	f.StringVar(&c.flagHotelID, "hotel-id", "", "(Required) Hotel the request belongs to")
	c.ClientFlags(f)
	return f
}

func (c *GenerateCommand) Run(args []string) int {
	args, ok := c.Parse(c.Flags(), args)
	if !ok {
		return 1
	}
	if c.flagHotelID == "" {
		c.UI.Error("hotel-id flag is required")
		return 1
	}
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		c.UI.Error("request generate requires the request text")
		return 1
	}

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	in := models.GenerateRequestInput{RawText: text, HotelID: c.flagHotelID}
	req, err := query.Mutate(ctx, rt.Query, func(ctx context.Context) (*models.Request, error) {
		return rt.Services.Requests.Generate(ctx, in)
	}, listKey)
	if err != nil {
		return c.Fail(err)
	}
	return c.Output(req)
}
