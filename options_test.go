package selfserve

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
)

func TestWithTimeout(t *testing.T) {
	timeout := 45 * time.Second
	exec := NewExecutor(NewSettings(), WithTimeout(timeout))

	if exec.timeout != timeout {
		t.Errorf("Expected timeout=%v, got %v", timeout, exec.timeout)
	}

	hc, ok := exec.httpClient.(*http.Client)
	if !ok {
		t.Fatalf("Expected *http.Client, got %T", exec.httpClient)
	}
	if hc.Timeout != timeout {
		t.Errorf("Expected HTTP client timeout=%v, got %v", timeout, hc.Timeout)
	}
}

func TestNoDefaultTimeout(t *testing.T) {
	exec := NewExecutor(NewSettings())

	if exec.timeout != 0 {
		t.Errorf("Expected no timeout, got %v", exec.timeout)
	}
	if hc := exec.httpClient.(*http.Client); hc.Timeout != 0 {
		t.Errorf("Expected HTTP client without timeout, got %v", hc.Timeout)
	}
}

func TestWithMiddleware(t *testing.T) {
	middleware1 := func(req *http.Request, next RoundTripper) (*http.Response, error) {
		return next.RoundTrip(req)
	}

	middleware2 := func(req *http.Request, next RoundTripper) (*http.Response, error) {
		return next.RoundTrip(req)
	}

	exec := NewExecutor(NewSettings(), WithMiddleware(middleware1, middleware2), WithRateLimit(10, 1), WithTracing(nil))

	if len(exec.middleware) != 4 {
		t.Errorf("Expected 4 middleware functions, got %d", len(exec.middleware))
	}
}

func TestWithHTTPClient(t *testing.T) {
	customClient := &http.Client{
		Timeout: 60 * time.Second,
	}

	exec := NewExecutor(NewSettings(), WithHTTPClient(customClient))

	if exec.httpClient != customClient {
		t.Error("Expected custom HTTP client to be set")
	}
}

func TestWithHTTPClientTimeoutUpdate(t *testing.T) {
	customClient := &http.Client{
		Timeout: 60 * time.Second,
	}

	// Set timeout first, then HTTP client
	exec := NewExecutor(NewSettings(),
		WithTimeout(30*time.Second),
		WithHTTPClient(customClient),
	)

	hc, ok := exec.httpClient.(*http.Client)
	if !ok {
		t.Fatal("Expected *http.Client")
	}
	if hc.Timeout != 30*time.Second {
		t.Errorf("Expected HTTP client timeout=30s, got %v", hc.Timeout)
	}
	if customClient.Timeout != 60*time.Second {
		t.Errorf("Expected caller's client timeout to stay 60s, got %v", customClient.Timeout)
	}
}

func TestWithTimeoutLeavesCallerClient(t *testing.T) {
	transport := &http.Transport{}
	customClient := &http.Client{Transport: transport}

	exec := NewExecutor(NewSettings(),
		WithHTTPClient(customClient),
		WithTimeout(5*time.Second),
	)

	if customClient.Timeout != 0 {
		t.Errorf("Expected caller's client timeout to stay 0, got %v", customClient.Timeout)
	}
	hc := exec.httpClient.(*http.Client)
	if hc == customClient {
		t.Fatal("Expected executor to use a copy of the caller's client")
	}
	if hc.Timeout != 5*time.Second {
		t.Errorf("Expected HTTP client timeout=5s, got %v", hc.Timeout)
	}
	if hc.Transport != transport {
		t.Error("Expected copied client to keep the caller's transport")
	}
}

func TestWithMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	exec := NewExecutor(NewSettings(), WithMetrics(registry))

	if exec.metrics == nil {
		t.Fatal("Expected metrics collector to be set")
	}
	if exec.metrics.GetRegistry() != registry {
		t.Error("Expected collector to use the supplied registry")
	}
}

func TestWithMetricsCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	customCollector := NewMetricsCollectorWithRegistry(registry)

	exec := NewExecutor(NewSettings(), WithMetricsCollector(customCollector))

	if exec.metrics != customCollector {
		t.Error("Expected custom metrics collector to be set")
	}
}

func TestWithDebugAndLogger(t *testing.T) {
	logger := hclog.NewNullLogger()
	exec := NewExecutor(NewSettings(), WithDebug(), WithLogger(logger), WithRequestIDGenerator(func() string { return "id" }))

	if !exec.debug.Enabled {
		t.Error("Expected debug to be enabled")
	}
	if exec.logger != logger {
		t.Error("Expected logger to be set")
	}
	if exec.debug.RequestIDGen() != "id" {
		t.Error("Expected custom request ID generator")
	}
	if !exec.IsValid() {
		t.Errorf("Expected valid configuration, got %v", exec.ValidationError())
	}
}

func TestWithDebugConfig(t *testing.T) {
	cfg := &DebugConfig{Enabled: true, LogErrors: true, RequestIDGen: func() string { return "x" }}
	exec := NewExecutor(NewSettings(), WithDebugConfig(cfg))

	if exec.debug != cfg {
		t.Error("Expected debug config to be set")
	}
}

func TestDefaultValuesWithoutOptions(t *testing.T) {
	exec := NewExecutor(NewSettings())

	if exec.debug == nil || exec.debug.Enabled {
		t.Error("Expected debug config present and disabled by default")
	}
	if exec.debug.RequestIDGen == nil {
		t.Error("Expected default request ID generator")
	}
	if exec.logger == nil {
		t.Error("Expected default logger")
	}
	if exec.metrics != nil {
		t.Error("Expected metrics disabled by default")
	}
	if !exec.IsValid() {
		t.Errorf("Expected default configuration to be valid, got %v", exec.ValidationError())
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		wantErr bool
	}{
		{name: "defaults", wantErr: false},
		{name: "nil http client", options: []Option{WithHTTPClient(nil)}, wantErr: true},
		{name: "negative timeout", options: []Option{WithTimeout(-1)}, wantErr: true},
		{name: "excessive timeout", options: []Option{WithTimeout(11 * time.Minute)}, wantErr: true},
		{name: "nil middleware", options: []Option{WithMiddleware(nil)}, wantErr: true},
		{name: "debug without logger", options: []Option{WithDebug(), WithLogger(nil)}, wantErr: true},
		{name: "debug without id generator", options: []Option{WithDebug(), WithRequestIDGenerator(nil)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := NewExecutor(NewSettings(), tt.options...)
			err := exec.ValidationError()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidationError() = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Expected *ConfigurationError, got %T", err)
			}
			if !errors.Is(err, ErrInvalidOptions) {
				t.Error("Expected errors.Is(err, ErrInvalidOptions)")
			}
		})
	}
}
