package selfserve

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// WithHTTPClient sets the transport used for every call. When a timeout is
// configured and client is an *http.Client, the executor uses a copy so the
// caller's client is left untouched.
func WithHTTPClient(client HTTPDoer) Option {
	return func(e *Executor) {
		e.httpClient = withClientTimeout(client, e.timeout)
	}
}

// WithTimeout sets a per-call timeout on the underlying *http.Client. There is
// no timeout unless this option is given; callers may instead pass a context
// with a deadline.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		e.timeout = d
		e.httpClient = withClientTimeout(e.httpClient, d)
	}
}

func withClientTimeout(client HTTPDoer, d time.Duration) HTTPDoer {
	hc, ok := client.(*http.Client)
	if !ok || d == 0 || hc.Timeout == d {
		return client
	}
	c := *hc
	c.Timeout = d
	return &c
}

// WithMiddleware adds middleware around the HTTP round trip. The first
// middleware given is the outermost.
func WithMiddleware(middleware ...Middleware) Option {
	return func(e *Executor) {
		e.middleware = append(e.middleware, middleware...)
	}
}

// WithTracing adds a client span per HTTP call using tp.
func WithTracing(tp trace.TracerProvider) Option {
	return WithMiddleware(TracingMiddleware(tp))
}

// WithRateLimit throttles outgoing calls to r per second with the given burst.
func WithRateLimit(r rate.Limit, burst int) Option {
	return WithMiddleware(RateLimitMiddleware(rate.NewLimiter(r, burst)))
}

// WithCircuitBreaker rejects calls while the backend keeps failing.
func WithCircuitBreaker(config CircuitBreakerConfig) Option {
	return WithMiddleware(CircuitBreakerMiddleware(NewCircuitBreaker(config)))
}

// WithMetrics enables Prometheus metrics registered on registry.
func WithMetrics(registry prometheus.Registerer) Option {
	return func(e *Executor) {
		e.metrics = NewMetricsCollectorWithRegistry(registry)
	}
}

// WithMetricsCollector sets a custom metrics collector
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(e *Executor) {
		e.metrics = collector
	}
}

// WithDebug enables debug logging with default configuration
func WithDebug() Option {
	return func(e *Executor) {
		if e.debug == nil {
			e.debug = DefaultDebugConfig()
		}
		e.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration
func WithDebugConfig(config *DebugConfig) Option {
	return func(e *Executor) {
		e.debug = config
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs
func WithRequestIDGenerator(gen func() string) Option {
	return func(e *Executor) {
		if e.debug == nil {
			e.debug = DefaultDebugConfig()
		}
		e.debug.RequestIDGen = gen
	}
}

// ValidateConfiguration validates the executor options and returns a
// *ConfigurationError listing every problem found.
func (e *Executor) ValidateConfiguration() error {
	var result *multierror.Error

	if e.httpClient == nil {
		result = multierror.Append(result, errors.New("HTTP client cannot be nil"))
	}
	if e.timeout < 0 {
		result = multierror.Append(result, errors.New("timeout must be non-negative"))
	}
	if e.timeout > 10*time.Minute {
		result = multierror.Append(result, errors.New("timeout > 10m may cause requests to hang for too long"))
	}
	for i, middleware := range e.middleware {
		if middleware == nil {
			result = multierror.Append(result, fmt.Errorf("middleware[%d] cannot be nil", i))
		}
	}
	if e.debug != nil && e.debug.Enabled {
		if e.debug.RequestIDGen == nil {
			result = multierror.Append(result, errors.New("debug RequestIDGen must be set when debug is enabled"))
		}
		if e.logger == nil {
			result = multierror.Append(result, errors.New("logger must be set when debug is enabled"))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return &ConfigurationError{
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("%w: %w", ErrInvalidOptions, err),
		}
	}
	return nil
}
