// Package config loads the host application's client configuration from a
// YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/GenerateNU/selfserve"
	"github.com/GenerateNU/selfserve/query"
)

// DefaultBaseURL is the backend address used in local development.
const DefaultBaseURL = "http://localhost:8080"

// Environment variables that override the file.
const (
	EnvBaseURL       = "SELFSERVE_API_BASE_URL"
	EnvBaseURLLegacy = "API_BASE_URL"
	EnvToken         = "SELFSERVE_API_TOKEN"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
)

// File is the parsed configuration.
type File struct {
	BaseURL string `yaml:"base_url"`
	// Token is sent as the bearer token. Empty means unauthenticated.
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
	// RateLimit is the maximum requests per second. Zero disables limiting.
	RateLimit float64     `yaml:"rate_limit"`
	Burst     int         `yaml:"burst"`
	Debug     bool        `yaml:"debug"`
	Query     QueryConfig `yaml:"query"`
	// CircuitBreaker is off unless failure_threshold is set.
	CircuitBreaker BreakerConfig `yaml:"circuit_breaker"`
}

type BreakerConfig struct {
	FailureThreshold int           `yaml:"failure_threshold"`
	RecoveryTimeout  time.Duration `yaml:"recovery_timeout"`
	SuccessThreshold int           `yaml:"success_threshold"`
}

type QueryConfig struct {
	StaleTime time.Duration `yaml:"stale_time"`
	Retries   *int          `yaml:"retries"`
	// RedisAddr enables the shared Redis store when set.
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
}

// Load reads path from fs when path is non-empty, applies environment
// overrides and validates the result. A missing file is an error; an empty
// path yields the defaults plus the environment.
func Load(fs afero.Fs, path string) (*File, error) {
	cfg, err := Read(fs, path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Read is Load without validation, for callers that apply further
// overrides and validate the final result themselves.
func Read(fs afero.Fs, path string) (*File, error) {
	cfg := &File{BaseURL: DefaultBaseURL}

	if path != "" {
		raw, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadDotEnv loads dir/.env into the process environment without replacing
// variables that are already set. A missing file is not an error.
func LoadDotEnv(fs afero.Fs, dir string) error {
	f, err := fs.Open(filepath.Join(dir, ".env"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening .env: %w", err)
	}
	defer f.Close()

	values, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing .env: %w", err)
	}
	for key, value := range values {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}
	return nil
}

func (f *File) applyEnv() {
	if value, ok := lookupEnv(EnvBaseURL, EnvBaseURLLegacy); ok {
		f.BaseURL = value
	}
	if value, ok := lookupEnv(EnvToken); ok {
		f.Token = value
	}
	if value, ok := lookupEnv(EnvRedisAddr); ok {
		f.Query.RedisAddr = value
	}
	if value, ok := lookupEnv(EnvRedisPassword); ok {
		f.Query.RedisPassword = value
	}
}

func lookupEnv(keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

// Validate checks every field and reports all problems together.
func (f *File) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.BaseURL, validation.Required, is.URL),
		validation.Field(&f.Timeout, validation.Min(time.Duration(0)), validation.Max(10*time.Minute)),
		validation.Field(&f.RateLimit, validation.Min(0.0)),
		validation.Field(&f.Burst, validation.Min(0)),
		validation.Field(&f.Query),
		validation.Field(&f.CircuitBreaker),
	)
}

func (b BreakerConfig) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.FailureThreshold, validation.Min(0)),
		validation.Field(&b.RecoveryTimeout, validation.Min(time.Duration(0))),
		validation.Field(&b.SuccessThreshold, validation.Min(0)),
	)
}

func (q QueryConfig) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.StaleTime, validation.Min(time.Duration(0))),
		validation.Field(&q.Retries, validation.Min(0)),
		validation.Field(&q.RedisAddr, is.DialString),
	)
}

// Settings returns client Settings holding the base URL and token.
func (f *File) Settings() *selfserve.Settings {
	return selfserve.NewSettingsWith(selfserve.Config{
		BaseURL: f.BaseURL,
		Auth:    selfserve.StaticToken(f.Token),
	})
}

// Options returns the executor options the file asks for.
func (f *File) Options(logger hclog.Logger) []selfserve.Option {
	var options []selfserve.Option
	if f.Timeout > 0 {
		options = append(options, selfserve.WithTimeout(f.Timeout))
	}
	if f.RateLimit > 0 {
		burst := f.Burst
		if burst < 1 {
			burst = 1
		}
		options = append(options, selfserve.WithRateLimit(rate.Limit(f.RateLimit), burst))
	}
	if f.CircuitBreaker.FailureThreshold > 0 {
		options = append(options, selfserve.WithCircuitBreaker(selfserve.CircuitBreakerConfig{
			FailureThreshold: f.CircuitBreaker.FailureThreshold,
			RecoveryTimeout:  f.CircuitBreaker.RecoveryTimeout,
			SuccessThreshold: f.CircuitBreaker.SuccessThreshold,
		}))
	}
	if logger != nil {
		options = append(options, selfserve.WithLogger(logger))
		if f.Debug {
			options = append(options, selfserve.WithDebug())
		}
	}
	return options
}

// QueryOptions returns the query client options the file asks for. The
// returned close function releases the Redis connection, if one was opened.
func (f *File) QueryOptions(logger hclog.Logger) ([]query.Option, func() error) {
	options := []query.Option{}
	if f.Query.StaleTime > 0 {
		options = append(options, query.WithStaleTime(f.Query.StaleTime))
	}
	if f.Query.Retries != nil {
		options = append(options, query.WithRetry(*f.Query.Retries))
	}
	if logger != nil {
		options = append(options, query.WithLogger(logger.Named("query")))
	}

	closeFn := func() error { return nil }
	if f.Query.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     f.Query.RedisAddr,
			Password: f.Query.RedisPassword,
		})
		options = append(options, query.WithStore(query.NewRedisStore(client, "")))
		closeFn = client.Close
	}
	return options, closeFn
}
