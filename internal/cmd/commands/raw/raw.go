package raw

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/GenerateNU/selfserve"
	"github.com/GenerateNU/selfserve/internal/cmd/base"
	"github.com/GenerateNU/selfserve/internal/json"
)

type Command struct {
	*base.Command

	flagParams  []string
	flagHeaders []string
	flagData    string
}

func (c *Command) Synopsis() string {
	return "Send an arbitrary request to the backend"
}

func (c *Command) Help() string {
	return `Usage: selfserve raw [options] <method> <path>

  Sends one request through the configured client and prints the decoded
  response. JSON bodies are printed indented; text bodies are printed as-is.

  Example:

      $ selfserve raw GET /api/v1/requests --param hotel_id=h1 --path 0.name` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(pflag.NewFlagSet("raw", pflag.ContinueOnError))
	f.StringArrayVar(&c.flagParams, "param", nil, "Query parameter as key=value (repeatable)")
	f.StringArrayVar(&c.flagHeaders, "header", nil, "Request header as Name:Value (repeatable)")
	f.StringVar(&c.flagData, "data", "", "JSON request body")
	c.ClientFlags(f)
	return f
}

func (c *Command) Run(args []string) int {
	args, ok := c.Parse(c.Flags(), args)
	if !ok {
		return 1
	}
	if len(args) != 2 {
		c.UI.Error("raw requires a method and a path")
		return 1
	}

	req, err := c.buildRequest(args[0], args[1])
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	rt, err := c.Runtime()
	if err != nil {
		return c.Fail(err)
	}
	defer rt.Close()

	ctx, cancel := c.Context()
	defer cancel()

	var out any
	resp, err := rt.Client.Do(ctx, req, &out)
	if err != nil {
		return c.Fail(err)
	}
	if out == nil {
		c.UI.Info(fmt.Sprintf("HTTP %d (empty body)", resp.Status))
		return 0
	}
	return c.Output(out)
}

func (c *Command) buildRequest(method, path string) (selfserve.Request, error) {
	req := selfserve.Request{
		Method: selfserve.Method(strings.ToUpper(method)),
		URL:    path,
	}
	switch req.Method {
	case selfserve.MethodGet, selfserve.MethodPost, selfserve.MethodPut,
		selfserve.MethodPatch, selfserve.MethodDelete:
	default:
		return req, fmt.Errorf("unsupported method %q", method)
	}

	if len(c.flagParams) > 0 {
		req.Params = selfserve.Params{}
		for _, p := range c.flagParams {
			key, value, found := strings.Cut(p, "=")
			if !found || key == "" {
				return req, fmt.Errorf("invalid param %q, expected key=value", p)
			}
			// Repeated keys become a list.
			switch existing := req.Params[key].(type) {
			case nil:
				req.Params[key] = value
			case string:
				req.Params[key] = []string{existing, value}
			case []string:
				req.Params[key] = append(existing, value)
			}
		}
	}

	if len(c.flagHeaders) > 0 {
		req.Headers = make(map[string]string, len(c.flagHeaders))
		for _, h := range c.flagHeaders {
			name, value, found := strings.Cut(h, ":")
			name = strings.TrimSpace(name)
			if !found || name == "" {
				return req, fmt.Errorf("invalid header %q, expected Name:Value", h)
			}
			req.Headers[name] = strings.TrimSpace(value)
		}
	}

	if c.flagData != "" {
		var body any
		if err := json.Unmarshal([]byte(c.flagData), &body); err != nil {
			return req, fmt.Errorf("invalid data: %w", err)
		}
		req.Data = body
	}

	return req, nil
}
