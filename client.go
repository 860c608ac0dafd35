package selfserve

import (
	"context"
)

// Client exposes verb methods over an Executor for hand-written call sites.
// Each method assembles a Request and delegates to the same pipeline the
// generated endpoints use through Mutator. It is safe for concurrent use.
type Client struct {
	exec *Executor
}

// New constructs a Client reading its configuration from settings. settings
// may be populated later; calls made before Settings.Set fail with a
// *ConfigurationError.
func New(settings *Settings, options ...Option) *Client {
	return &Client{exec: NewExecutor(settings, options...)}
}

// NewFromExecutor wraps an existing Executor.
func NewFromExecutor(exec *Executor) *Client {
	return &Client{exec: exec}
}

// Executor returns the underlying Executor.
func (c *Client) Executor() *Executor {
	return c.exec
}

// Do executes an arbitrary Request.
func (c *Client) Do(ctx context.Context, req Request, out any) (*Response, error) {
	return c.exec.Do(ctx, req, out)
}

// Get performs a GET with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, params Params, out any) (*Response, error) {
	return c.Do(ctx, Request{URL: path, Method: MethodGet, Params: params}, out)
}

// Post performs a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, out any) (*Response, error) {
	return c.Do(ctx, Request{URL: path, Method: MethodPost, Data: body}, out)
}

// Put performs a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, out any) (*Response, error) {
	return c.Do(ctx, Request{URL: path, Method: MethodPut, Data: body}, out)
}

// Patch performs a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any, out any) (*Response, error) {
	return c.Do(ctx, Request{URL: path, Method: MethodPatch, Data: body}, out)
}

// Delete performs a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) (*Response, error) {
	return c.Do(ctx, Request{URL: path, Method: MethodDelete}, out)
}

// Mutator returns the adapter generated endpoint code is bound to. It is the
// client's own Do, so generated and hand-written calls share one pipeline.
func (c *Client) Mutator() Mutator {
	return c.Do
}
