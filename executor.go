package selfserve

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/tidwall/gjson"

	"github.com/GenerateNU/selfserve/internal/json"
)

// Response is the envelope returned for every successful call. The decoded
// payload is written to the out argument of the call that produced it.
type Response struct {
	Status int
	Header http.Header
	Kind   BodyKind
}

// Executor turns one Request into one HTTP call and one settled result: a
// decoded payload or an error. It never retries and never caches. An Executor
// is safe for concurrent use.
type Executor struct {
	settings        *Settings
	httpClient      HTTPDoer
	timeout         time.Duration
	middleware      []Middleware
	metrics         *MetricsCollector
	debug           *DebugConfig
	logger          Logger
	validationError error
}

// DefaultDebugConfig returns a disabled debug configuration that generates
// UUID request IDs once enabled.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:      false,
		LogRequests:  true,
		LogErrors:    true,
		RequestIDGen: uuid.NewString,
	}
}

// NewExecutor builds an Executor reading its base URL and auth from settings.
// Invalid options are reported by the first call as a *ConfigurationError.
func NewExecutor(settings *Settings, options ...Option) *Executor {
	e := &Executor{
		settings:   settings,
		httpClient: &http.Client{},
		middleware: []Middleware{},
		debug:      DefaultDebugConfig(),
		logger:     hclog.NewNullLogger(),
	}

	for _, option := range options {
		option(e)
	}

	if err := e.ValidateConfiguration(); err != nil {
		e.validationError = err
	}

	return e
}

// Do executes req and decodes a successful body into out. All failures are
// returned as *APIError, except use before initialization, which is a
// *ConfigurationError. Cancelling ctx aborts the in-flight call.
func (e *Executor) Do(ctx context.Context, req Request, out any) (*Response, error) {
	if e.validationError != nil {
		return nil, e.validationError
	}
	cfg, err := e.settings.Config()
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = MethodGet
	}
	fullURL := resolveURL(cfg.BaseURL, req.URL, req.Params)
	endpoint := req.URL

	var requestID string
	if e.debugEnabled() && e.debug.RequestIDGen != nil {
		requestID = e.debug.RequestIDGen()
	}
	if e.debugEnabled() && e.debug.LogRequests {
		e.logger.Debug("starting request", "requestID", requestID, "method", method, "url", fullURL)
	}

	start := time.Now()
	e.metrics.RecordRequestStart(string(method), endpoint)

	resp, err := e.execute(ctx, cfg, method, fullURL, req, out)

	e.metrics.RecordRequestEnd(string(method), endpoint)

	if err != nil {
		err = wrapError(err, string(method), fullURL)
		apiErr, _ := AsAPIError(err)
		e.metrics.RecordRequest(string(method), endpoint, apiErr.Status, time.Since(start))
		e.metrics.RecordError(errorKind(apiErr), string(method), endpoint)
		if e.debugEnabled() && e.debug.LogErrors {
			e.logger.Warn("request failed", "requestID", requestID, "method", method, "url", fullURL,
				"status", apiErr.Status, "error", apiErr.Message)
		}
		return nil, err
	}

	e.metrics.RecordRequest(string(method), endpoint, resp.Status, time.Since(start))
	if e.debugEnabled() && e.debug.LogRequests {
		e.logger.Debug("request completed", "requestID", requestID, "status", resp.Status,
			"kind", resp.Kind, "duration", time.Since(start))
	}
	return resp, nil
}

func (e *Executor) execute(ctx context.Context, cfg Config, method Method, fullURL string, req Request, out any) (*Response, error) {
	auth := cfg.Auth
	if auth == nil {
		auth = Anonymous
	}
	token, err := auth.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieving auth token: %w", err)
	}

	var body io.Reader
	if hasBody(req.Data) {
		payload, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(method), fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := e.executeMiddleware(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, newHTTPError(string(method), fullURL, httpResp.StatusCode, httpResp.Header, raw)
	}

	resp := &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Kind:   kindOf(httpResp.Header.Get("Content-Type")),
	}
	if err := decodeBody(resp.Kind, raw, out); err != nil {
		return nil, err
	}
	return resp, nil
}

// hasBody reports whether data should be encoded as a request body. Nil
// pointers, maps, slices and interfaces count as absent, as they do for
// query parameters.
func hasBody(data any) bool {
	if data == nil {
		return false
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return !v.IsNil()
	}
	return true
}

// newHTTPError builds the *APIError for a non-2xx response. The message is
// the body's "message" field, or "Request failed" when absent.
func newHTTPError(method, url string, status int, header http.Header, raw []byte) *APIError {
	apiErr := &APIError{
		Message: defaultErrorMessage,
		Status:  status,
		Data:    map[string]any{},
		Method:  method,
		URL:     url,
		Header:  header,
	}

	if len(raw) == 0 || !json.Valid(raw) {
		return apiErr
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed != nil {
		apiErr.Data = parsed
		apiErr.body = raw
	}
	if msg := gjson.GetBytes(raw, "message"); msg.Exists() && msg.Type != gjson.Null {
		apiErr.Message = msg.String()
	}
	return apiErr
}

func (e *Executor) executeMiddleware(req *http.Request) (*http.Response, error) {
	if len(e.middleware) == 0 {
		return e.httpClient.Do(req)
	}

	current := RoundTripperFunc(e.httpClient.Do)

	for i := len(e.middleware) - 1; i >= 0; i-- {
		middleware := e.middleware[i]
		next := current
		current = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return middleware(r, next)
		})
	}

	return current.RoundTrip(req)
}

func (e *Executor) debugEnabled() bool {
	return e.debug != nil && e.debug.Enabled && e.logger != nil
}

func errorKind(apiErr *APIError) string {
	switch {
	case apiErr.Status == 0:
		return "Transport"
	case apiErr.Status >= 500:
		return "Server"
	default:
		return "Client"
	}
}

// IsValid reports whether configuration validation passed at construction.
func (e *Executor) IsValid() bool {
	return e.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (e *Executor) ValidationError() error {
	return e.validationError
}
