// Package backoff computes retry delays for the query layer. A Policy plugs
// a Strategy into github.com/cenkalti/backoff/v4.
package backoff

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	cbackoff "github.com/cenkalti/backoff/v4"
)

// maxRetryAfter caps a server-supplied Retry-After delay.
const maxRetryAfter = time.Hour

// Policy is a cbackoff.BackOff that stops after MaxRetries delays. It is not
// safe for concurrent use; build one per retried operation.
type Policy struct {
	Strategy   Strategy
	Params     Params
	MaxRetries int

	attempt int
	prev    time.Duration
	hint    time.Duration
}

var _ cbackoff.BackOff = (*Policy)(nil)

// NewPolicy returns a Policy using strategy, or ExponentialJitter when nil.
func NewPolicy(strategy Strategy, params Params, maxRetries int) *Policy {
	if strategy == nil {
		strategy = ExponentialJitter{}
	}
	return &Policy{Strategy: strategy, Params: params, MaxRetries: maxRetries}
}

// NextBackOff implements cbackoff.BackOff.
func (p *Policy) NextBackOff() time.Duration {
	if p.attempt >= p.MaxRetries {
		return cbackoff.Stop
	}

	delay := p.hint
	p.hint = 0
	if delay <= 0 {
		delay = p.Strategy.Next(p.attempt, p.prev, p.Params)
	}

	p.attempt++
	p.prev = delay
	return delay
}

// Reset implements cbackoff.BackOff.
func (p *Policy) Reset() {
	p.attempt = 0
	p.prev = 0
	p.hint = 0
}

// Attempt is the number of delays handed out since the last Reset.
func (p *Policy) Attempt() int {
	return p.attempt
}

// Hint makes the next delay d instead of the strategy's value, e.g. from a
// Retry-After header. Non-positive values are ignored.
func (p *Policy) Hint(d time.Duration) {
	if d > 0 {
		p.hint = d
	}
}

// RetryAfter parses a Retry-After header value in either delay-seconds or
// HTTP-date form. It returns zero when the value is absent or unusable.
func RetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if seconds <= 0 {
			return 0
		}
		delay := time.Duration(seconds) * time.Second
		if delay > maxRetryAfter {
			delay = maxRetryAfter
		}
		return delay
	}

	if t, err := http.ParseTime(value); err == nil {
		delay := time.Until(t)
		if delay > 0 && delay <= maxRetryAfter {
			return delay
		}
	}

	return 0
}
