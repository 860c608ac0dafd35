package selfserve

import (
	"regexp"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var httpSchemeRe = regexp.MustCompile(`^https?://`)

// Config is the process-wide client configuration supplied by the hosting
// application at startup.
type Config struct {
	// BaseURL is prepended to every request path, e.g. "http://localhost:8080".
	BaseURL string
	// Auth supplies the bearer token. A nil Auth sends every request
	// unauthenticated.
	Auth AuthProvider
}

// Validate checks that the base URL is an absolute http(s) URL.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL,
			validation.Required,
			is.URL,
			validation.Match(httpSchemeRe).Error("must use http or https scheme"),
		),
	)
}

// Settings holds one Config for the lifetime of the hosting application. It
// is built once at startup and handed to every Executor so nothing reads
// hidden package state.
type Settings struct {
	cfg atomic.Pointer[Config]
}

// NewSettings returns an uninitialized Settings. Requests fail with a
// *ConfigurationError until Set is called.
func NewSettings() *Settings {
	return &Settings{}
}

// NewSettingsWith returns Settings already holding cfg.
func NewSettingsWith(cfg Config) *Settings {
	s := NewSettings()
	s.Set(cfg)
	return s
}

// Set stores cfg. A later call replaces the earlier value.
func (s *Settings) Set(cfg Config) {
	s.cfg.Store(&cfg)
}

// Config returns the stored Config, or a *ConfigurationError if Set was
// never called.
func (s *Settings) Config() (Config, error) {
	if s == nil {
		return Config{}, notConfigured()
	}
	cfg := s.cfg.Load()
	if cfg == nil {
		return Config{}, notConfigured()
	}
	return *cfg, nil
}

// AuthProvider returns the configured AuthProvider. An unset Auth yields a
// provider that always returns an empty token.
func (s *Settings) AuthProvider() (AuthProvider, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	if cfg.Auth == nil {
		return Anonymous, nil
	}
	return cfg.Auth, nil
}

// IsConfigured reports whether Set has been called.
func (s *Settings) IsConfigured() bool {
	return s != nil && s.cfg.Load() != nil
}

func notConfigured() error {
	return &ConfigurationError{
		Message: "config not initialized: call Settings.Set() at app startup before issuing requests",
		Cause:   ErrNotConfigured,
	}
}
