package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/GenerateNU/selfserve/internal/cmd/base"
	"github.com/GenerateNU/selfserve/internal/cmd/commands/guest"
	"github.com/GenerateNU/selfserve/internal/cmd/commands/hello"
	"github.com/GenerateNU/selfserve/internal/cmd/commands/hotel"
	"github.com/GenerateNU/selfserve/internal/cmd/commands/raw"
	"github.com/GenerateNU/selfserve/internal/cmd/commands/request"
	"github.com/GenerateNU/selfserve/internal/cmd/commands/user"
	"github.com/GenerateNU/selfserve/internal/cmd/commands/version"
)

// commands returns the command factories. Each factory gets its own
// base.Command so flag values never leak between commands.
func commands(log hclog.Logger, ui cli.Ui, fs afero.Fs) map[string]cli.CommandFactory {
	b := func() *base.Command { return base.New(log, ui, fs) }

	return map[string]cli.CommandFactory{
		"hello": func() (cli.Command, error) {
			return &hello.Command{Command: b()}, nil
		},
		"guest": func() (cli.Command, error) {
			return &guest.Command{Command: b()}, nil
		},
		"guest get": func() (cli.Command, error) {
			return &guest.GetCommand{Command: b()}, nil
		},
		"guest create": func() (cli.Command, error) {
			return &guest.CreateCommand{Command: b()}, nil
		},
		"guest update": func() (cli.Command, error) {
			return &guest.UpdateCommand{Command: b()}, nil
		},
		"request": func() (cli.Command, error) {
			return &request.Command{Command: b()}, nil
		},
		"request get": func() (cli.Command, error) {
			return &request.GetCommand{Command: b()}, nil
		},
		"request list": func() (cli.Command, error) {
			return &request.ListCommand{Command: b()}, nil
		},
		"request create": func() (cli.Command, error) {
			return &request.CreateCommand{Command: b()}, nil
		},
		"request generate": func() (cli.Command, error) {
			return &request.GenerateCommand{Command: b()}, nil
		},
		"user": func() (cli.Command, error) {
			return &user.Command{Command: b()}, nil
		},
		"user get": func() (cli.Command, error) {
			return &user.GetCommand{Command: b()}, nil
		},
		"user create": func() (cli.Command, error) {
			return &user.CreateCommand{Command: b()}, nil
		},
		"hotel": func() (cli.Command, error) {
			return &hotel.Command{Command: b()}, nil
		},
		"hotel get": func() (cli.Command, error) {
			return &hotel.GetCommand{Command: b()}, nil
		},
		"hotel create": func() (cli.Command, error) {
			return &hotel.CreateCommand{Command: b()}, nil
		},
		"raw": func() (cli.Command, error) {
			return &raw.Command{Command: b()}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b()}, nil
		},
	}
}
