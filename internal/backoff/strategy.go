package backoff

import (
	"math/rand"
	"time"
)

// Params are the inputs shared by every strategy.
type Params struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	// Jitter is the fraction of the computed delay added at random, in [0, 1].
	Jitter float64
}

// DefaultParams mirror the retry defaults of the query layer.
func DefaultParams() Params {
	return Params{
		Initial:    100 * time.Millisecond,
		Max:        30 * time.Second,
		Multiplier: 2.0,
		Jitter:     0.1,
	}
}

// Strategy computes the delay before retry number attempt (0-based). prev is
// the delay returned for the previous attempt, zero on the first.
type Strategy interface {
	Next(attempt int, prev time.Duration, p Params) time.Duration
}

// ExponentialJitter grows the delay by Multiplier per attempt and adds
// uniform jitter, capped at Max.
type ExponentialJitter struct{}

func (ExponentialJitter) Next(attempt int, _ time.Duration, p Params) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	// Prevent overflow by limiting attempt
	if attempt > 30 {
		attempt = 30
	}

	delay := time.Duration(float64(p.Initial) * pow(p.Multiplier, attempt))
	if delay < 0 || delay > p.Max {
		delay = p.Max
	}

	jitter := clampJitter(p.Jitter)
	if jitter > 0 {
		jitterAmount := time.Duration(float64(delay) * jitter * rand.Float64())
		if delay+jitterAmount > p.Max {
			delay = p.Max
		} else {
			delay += jitterAmount
		}
	}
	return delay
}

// DecorrelatedJitter picks a delay uniformly between Initial and three times
// the previous delay, capped at Max.
type DecorrelatedJitter struct{}

func (DecorrelatedJitter) Next(attempt int, prev time.Duration, p Params) time.Duration {
	if attempt <= 0 || prev <= 0 {
		return p.Initial
	}

	base := float64(p.Initial)
	upper := float64(prev) * 3
	if upper > float64(p.Max) || upper < 0 {
		upper = float64(p.Max)
	}
	if upper < base {
		upper = base
	}

	delay := time.Duration(base + rand.Float64()*(upper-base))
	if delay < 0 || delay > p.Max {
		delay = p.Max
	}
	return delay
}

// clampJitter ensures jitter is within valid bounds [0, 1].
func clampJitter(jitter float64) float64 {
	if jitter < 0 {
		return 0
	}
	if jitter > 1 {
		return 1
	}
	return jitter
}

// pow calculates base^exponent using integer exponentiation.
func pow(base float64, exponent int) float64 {
	result := 1.0
	for i := 0; i < exponent; i++ {
		result *= base
	}
	return result
}
