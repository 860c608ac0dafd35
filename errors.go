package selfserve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/GenerateNU/selfserve/internal/json"
)

// Sentinel errors for common failure scenarios
var (
	// ErrNotConfigured is returned when a request is issued before Settings.Set.
	ErrNotConfigured = errors.New("selfserve: config not initialized, call Settings.Set() at app startup")

	// ErrInvalidOptions is returned when executor options fail validation.
	ErrInvalidOptions = errors.New("selfserve: invalid options")

	// ErrCircuitOpen is returned when a circuit breaker rejects a call.
	ErrCircuitOpen = errors.New("selfserve: circuit breaker is open")
)

const (
	defaultErrorMessage   = "Request failed"
	defaultNetworkMessage = "Network error"
)

// APIError is the single error type produced by the request pipeline.
//
// Status 0 means no HTTP response was received (network failure, cancellation,
// undecodable body). Any other status is the non-2xx code returned by the
// server and Data holds the parsed error body.
type APIError struct {
	Message string
	Status  int
	// Data is the parsed error body for HTTP failures, or the underlying error
	// for transport failures.
	Data   any
	Method string
	URL    string
	// Header holds the response headers for HTTP failures.
	Header http.Header
	Cause  error

	body []byte
}

// Error implements error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("selfserve: ")
	if e.Method != "" {
		b.WriteString(e.Method)
		b.WriteByte(' ')
	}
	if e.URL != "" {
		b.WriteString(e.URL)
		b.WriteString(": ")
	}
	if e.Status > 0 {
		fmt.Fprintf(&b, "%d ", e.Status)
	}
	b.WriteString(e.Message)
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is an *APIError with the same status.
func (e *APIError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*APIError); ok {
		return e.Status == targetErr.Status
	}
	return false
}

// IsTransport reports whether the request failed before a response arrived.
func (e *APIError) IsTransport() bool {
	return e != nil && e.Status == 0
}

// DecodeData decodes the raw error body into v. It fails for transport errors
// and for bodies that were not JSON.
func (e *APIError) DecodeData(v any) error {
	if e == nil || len(e.body) == 0 {
		return fmt.Errorf("selfserve: no error body to decode")
	}
	return json.Unmarshal(e.body, v)
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *APIError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Message: %s\n", e.Message)
	info += fmt.Sprintf("Status: %d\n", e.Status)
	if e.Method != "" {
		info += fmt.Sprintf("Method: %s\n", e.Method)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if len(e.body) > 0 {
		info += fmt.Sprintf("Body: %s\n", e.body)
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}

// ConfigurationError reports use of the client before it was initialized, or
// an invalid client configuration. It is never an *APIError.
type ConfigurationError struct {
	Message string
	Cause   error
}

// Error implements error interface.
func (e *ConfigurationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// AsAPIError returns the *APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsRetryable reports whether err is a failure a caller may reasonably retry:
// transport failures other than cancellation or an open circuit, 5xx
// responses and 429.
// 4xx responses and configuration errors are not retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return false
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		return false
	}

	switch {
	case apiErr.Status == 0:
		return !errors.Is(apiErr, context.Canceled) && !errors.Is(apiErr, ErrCircuitOpen)
	case apiErr.Status == http.StatusTooManyRequests:
		return true
	case apiErr.Status >= 500:
		return true
	default:
		return false
	}
}

// wrapError converts any pipeline failure into an *APIError. An *APIError
// already in the chain is returned unchanged.
func wrapError(err error, method, url string) error {
	if err == nil {
		return nil
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr
	}
	msg := err.Error()
	if msg == "" {
		msg = defaultNetworkMessage
	}
	return &APIError{
		Message: msg,
		Status:  0,
		Data:    err,
		Method:  method,
		URL:     url,
		Cause:   err,
	}
}
