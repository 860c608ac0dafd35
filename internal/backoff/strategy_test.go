package backoff

import (
	"testing"
	"time"
)

func TestExponentialJitter(t *testing.T) {
	strategy := ExponentialJitter{}

	tests := []struct {
		name     string
		attempt  int
		params   Params
		expected time.Duration
	}{
		{
			name:     "attempt 0",
			attempt:  0,
			params:   Params{Initial: 100 * time.Millisecond, Max: 5 * time.Second, Multiplier: 2.0},
			expected: 100 * time.Millisecond,
		},
		{
			name:     "attempt 1",
			attempt:  1,
			params:   Params{Initial: 100 * time.Millisecond, Max: 5 * time.Second, Multiplier: 2.0},
			expected: 200 * time.Millisecond,
		},
		{
			name:     "attempt 2",
			attempt:  2,
			params:   Params{Initial: 100 * time.Millisecond, Max: 5 * time.Second, Multiplier: 2.0},
			expected: 400 * time.Millisecond,
		},
		{
			name:     "capped at max",
			attempt:  10,
			params:   Params{Initial: 100 * time.Millisecond, Max: time.Second, Multiplier: 2.0},
			expected: time.Second,
		},
		{
			name:     "negative attempt",
			attempt:  -3,
			params:   Params{Initial: 50 * time.Millisecond, Max: time.Second, Multiplier: 2.0},
			expected: 50 * time.Millisecond,
		},
		{
			name:     "huge attempt does not overflow",
			attempt:  1000,
			params:   Params{Initial: time.Second, Max: time.Minute, Multiplier: 10},
			expected: time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := strategy.Next(tt.attempt, 0, tt.params)
			if result != tt.expected {
				t.Errorf("Next(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestExponentialJitterBounds(t *testing.T) {
	params := Params{Initial: 100 * time.Millisecond, Max: 5 * time.Second, Multiplier: 2.0, Jitter: 0.5}
	for i := 0; i < 100; i++ {
		d := ExponentialJitter{}.Next(1, 0, params)
		if d < 200*time.Millisecond || d > 300*time.Millisecond {
			t.Fatalf("Next(1) = %v, want within [200ms, 300ms]", d)
		}
	}
}

func TestDecorrelatedJitter(t *testing.T) {
	strategy := DecorrelatedJitter{}
	params := Params{Initial: 100 * time.Millisecond, Max: 2 * time.Second}

	if d := strategy.Next(0, 0, params); d != params.Initial {
		t.Errorf("first delay = %v, want %v", d, params.Initial)
	}

	prev := params.Initial
	for attempt := 1; attempt < 50; attempt++ {
		d := strategy.Next(attempt, prev, params)
		upper := 3 * prev
		if upper > params.Max {
			upper = params.Max
		}
		if d < params.Initial || d > upper {
			t.Fatalf("attempt %d: delay %v outside [%v, %v]", attempt, d, params.Initial, upper)
		}
		prev = d
	}
}

func TestClampJitter(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 1},
	}

	for _, tt := range tests {
		if result := clampJitter(tt.input); result != tt.expected {
			t.Errorf("clampJitter(%f) = %f, want %f", tt.input, result, tt.expected)
		}
	}
}

func TestPow(t *testing.T) {
	tests := []struct {
		base     float64
		exponent int
		expected float64
	}{
		{2, 0, 1},
		{2, 3, 8},
		{3, 2, 9},
		{1.5, 2, 2.25},
	}

	for _, tt := range tests {
		if result := pow(tt.base, tt.exponent); result != tt.expected {
			t.Errorf("pow(%f, %d) = %f, want %f", tt.base, tt.exponent, result, tt.expected)
		}
	}
}

func BenchmarkExponentialJitter(b *testing.B) {
	params := DefaultParams()
	for i := 0; i < b.N; i++ {
		ExponentialJitter{}.Next(i%10, 0, params)
	}
}

func BenchmarkDecorrelatedJitter(b *testing.B) {
	params := DefaultParams()
	prev := params.Initial
	for i := 0; i < b.N; i++ {
		prev = DecorrelatedJitter{}.Next(i%10+1, prev, params)
	}
}
