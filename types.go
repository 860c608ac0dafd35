package selfserve

import (
	"net/http"
)

// Method is one of the HTTP verbs the backend accepts.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodPut    Method = http.MethodPut
	MethodPatch  Method = http.MethodPatch
	MethodDelete Method = http.MethodDelete
)

// Params are query parameters. Values may be scalars, slices or arrays,
// nested maps or structs, and nil (skipped).
type Params map[string]any

// Request describes one HTTP call before it is executed. It is passed by value
// and never modified by the executor.
type Request struct {
	// URL is a path relative to the configured base URL, e.g. "/api/v1/hello".
	URL     string
	Method  Method
	Params  Params
	Data    any
	Headers map[string]string
}

// Middleware wraps the HTTP round trip performed by the executor.
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper represents the HTTP transport interface
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc is a helper type for middleware
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Logger is the key/value logger used for debug output. hclog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// DebugConfig controls what the executor writes to its Logger.
type DebugConfig struct {
	Enabled      bool
	LogRequests  bool
	LogErrors    bool
	RequestIDGen func() string
}

// Option configures an Executor.
type Option func(*Executor)
