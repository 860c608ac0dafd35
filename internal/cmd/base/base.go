// Package base holds what every selfserve subcommand shares: logging, UI,
// client flags and construction of the configured API client.
package base

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/GenerateNU/selfserve"
	"github.com/GenerateNU/selfserve/gen"
	"github.com/GenerateNU/selfserve/internal/config"
	"github.com/GenerateNU/selfserve/internal/json"
	"github.com/GenerateNU/selfserve/query"
	"github.com/GenerateNU/selfserve/services"
)

type Command struct {
	Log hclog.Logger
	UI  cli.Ui
	FS  afero.Fs

	flagConfig  string
	flagBaseURL string
	flagToken   string
	flagDebug   bool
	flagPath    string
}

func New(log hclog.Logger, ui cli.Ui, fs afero.Fs) *Command {
	return &Command{Log: log, UI: ui, FS: fs}
}

// ClientFlags registers the flags used to reach the backend.
func (c *Command) ClientFlags(f *FlagSet) {
	f.StringVar(&c.flagConfig, "config", "", "Path to a YAML config file")
	f.StringVar(&c.flagBaseURL, "base-url", "", "Backend base URL (overrides config and "+config.EnvBaseURL+")")
	f.StringVar(&c.flagToken, "token", "", "Bearer token (overrides config and "+config.EnvToken+")")
	f.BoolVar(&c.flagDebug, "debug", false, "Log every request at debug level")
	f.StringVar(&c.flagPath, "path", "", "gjson path selecting part of the JSON output")
}

// Parse parses args into f and reports any error to the UI.
func (c *Command) Parse(f *FlagSet, args []string) ([]string, bool) {
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return nil, false
	}
	return f.Args(), true
}

// Context returns a context cancelled on interrupt.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// Runtime is the configured client stack for one command invocation.
type Runtime struct {
	Client   *selfserve.Client
	Services *services.Services
	Gen      *gen.Client
	Query    *query.Client

	closeFn func() error
}

func (r *Runtime) Close() error {
	if r.closeFn == nil {
		return nil
	}
	return r.closeFn()
}

// Runtime loads configuration and builds the client. Flags are applied over
// the file and environment before anything is validated. Settings are set
// once here, before any request is issued.
func (c *Command) Runtime() (*Runtime, error) {
	if wd, err := os.Getwd(); err == nil {
		if err := config.LoadDotEnv(c.FS, wd); err != nil {
			c.Log.Warn("failed to load .env file", "error", err)
		}
	}

	cfg, err := config.Read(c.FS, c.flagConfig)
	if err != nil {
		return nil, err
	}
	if c.flagBaseURL != "" {
		cfg.BaseURL = c.flagBaseURL
	}
	if c.flagToken != "" {
		cfg.Token = c.flagToken
	}
	if c.flagDebug {
		cfg.Debug = true
		c.Log.SetLevel(hclog.Debug)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	settings := cfg.Settings()
	clientConfig, err := settings.Config()
	if err != nil {
		return nil, err
	}
	if err := clientConfig.Validate(); err != nil {
		return nil, err
	}

	client := selfserve.New(settings, cfg.Options(c.Log)...)
	if err := client.Executor().ValidationError(); err != nil {
		return nil, err
	}

	queryOptions, closeFn := cfg.QueryOptions(c.Log)
	c.Log.Debug("client configured", "base_url", cfg.BaseURL, "authenticated", cfg.Token != "")

	return &Runtime{
		Client:   client,
		Services: services.New(client),
		Gen:      gen.NewClient(client.Mutator()),
		Query:    query.New(queryOptions...),
		closeFn:  closeFn,
	}, nil
}

// Output writes v to the UI. Strings are written as-is; anything else is
// indented JSON, narrowed by --path when given.
func (c *Command) Output(v any) int {
	if s, ok := v.(string); ok && c.flagPath == "" {
		c.UI.Output(s)
		return 0
	}

	raw, err := json.Marshal(v)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error encoding output: %v", err))
		return 1
	}

	if c.flagPath != "" {
		result := gjson.GetBytes(raw, c.flagPath)
		if !result.Exists() {
			c.UI.Error(fmt.Sprintf("path %q not found in response", c.flagPath))
			return 1
		}
		if result.Type == gjson.String {
			c.UI.Output(result.String())
			return 0
		}
		raw = []byte(result.Raw)
	}

	var pretty any
	if err := json.Unmarshal(raw, &pretty); err == nil {
		if indented, err := json.MarshalIndent(pretty, "", "  "); err == nil {
			raw = indented
		}
	}
	c.UI.Output(string(raw))
	return 0
}

// Fail reports err and returns the exit code. API errors include the status
// and message; configuration errors are reported verbatim.
func (c *Command) Fail(err error) int {
	if apiErr, ok := selfserve.AsAPIError(err); ok {
		if apiErr.IsTransport() {
			c.UI.Error(fmt.Sprintf("request failed: %s", apiErr.Message))
		} else {
			c.UI.Error(fmt.Sprintf("request failed with status %d: %s", apiErr.Status, apiErr.Message))
		}
		c.Log.Debug("request error details", "debug", strings.TrimSpace(apiErr.DebugInfo()))
		return 1
	}
	c.UI.Error(err.Error())
	return 1
}
