package selfserve

import (
	"net/http"
	"sync/atomic"
	"time"
)

// CircuitState is the state of a CircuitBreaker.
type CircuitState int64

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures a CircuitBreaker. Zero values take the
// defaults: 5 failures, 60s recovery, 2 successes.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit.
	FailureThreshold int
	// RecoveryTimeout is how long the circuit stays open before a trial call.
	RecoveryTimeout time.Duration
	// SuccessThreshold is the number of half-open successes that closes it again.
	SuccessThreshold int
}

// CircuitBreaker stops calls to a failing backend. Transport failures and 5xx
// responses count as failures; 4xx responses do not.
type CircuitBreaker struct {
	config      CircuitBreakerConfig
	state       int64
	failures    int64
	successes   int64
	lastFailure int64
	now         func() time.Time
}

func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.RecoveryTimeout <= 0 {
		config.RecoveryTimeout = 60 * time.Second
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 2
	}
	return &CircuitBreaker{
		config: config,
		state:  int64(StateClosed),
		now:    time.Now,
	}
}

// State returns the current state without transitioning it.
func (cb *CircuitBreaker) State() CircuitState {
	return CircuitState(atomic.LoadInt64(&cb.state))
}

// Allow reports whether a call may proceed. An open circuit whose recovery
// timeout has elapsed moves to half-open and lets the call through.
func (cb *CircuitBreaker) Allow() bool {
	switch cb.State() {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		last := atomic.LoadInt64(&cb.lastFailure)
		if cb.now().UnixNano()-last < int64(cb.config.RecoveryTimeout) {
			return false
		}
		if atomic.CompareAndSwapInt64(&cb.state, int64(StateOpen), int64(StateHalfOpen)) {
			atomic.StoreInt64(&cb.successes, 0)
			return true
		}
		return cb.State() != StateOpen
	default:
		return false
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	atomic.StoreInt64(&cb.lastFailure, cb.now().UnixNano())

	switch cb.State() {
	case StateClosed:
		if atomic.AddInt64(&cb.failures, 1) >= int64(cb.config.FailureThreshold) {
			atomic.StoreInt64(&cb.state, int64(StateOpen))
		}
	case StateHalfOpen:
		// One failed trial reopens the circuit.
		atomic.StoreInt64(&cb.successes, 0)
		atomic.StoreInt64(&cb.state, int64(StateOpen))
	}
}

func (cb *CircuitBreaker) RecordSuccess() {
	switch cb.State() {
	case StateClosed:
		atomic.StoreInt64(&cb.failures, 0)
	case StateHalfOpen:
		if atomic.AddInt64(&cb.successes, 1) >= int64(cb.config.SuccessThreshold) {
			atomic.StoreInt64(&cb.failures, 0)
			atomic.StoreInt64(&cb.successes, 0)
			atomic.StoreInt64(&cb.state, int64(StateClosed))
		}
	}
}

// CircuitBreakerMiddleware rejects calls while cb is open. Rejected calls fail
// with an *APIError wrapping ErrCircuitOpen and are never sent.
func CircuitBreakerMiddleware(cb *CircuitBreaker) Middleware {
	return func(req *http.Request, next RoundTripper) (*http.Response, error) {
		if !cb.Allow() {
			return nil, &APIError{
				Message: "circuit breaker is open",
				Method:  req.Method,
				URL:     req.URL.String(),
				Data:    ErrCircuitOpen,
				Cause:   ErrCircuitOpen,
			}
		}

		resp, err := next.RoundTrip(req)
		if err != nil || resp.StatusCode >= 500 {
			cb.RecordFailure()
		} else {
			cb.RecordSuccess()
		}
		return resp, err
	}
}
