package resilience

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker guards one upstream dependency. A disabled breaker passes
// every call straight through.
type CircuitBreaker struct {
	name    string
	enabled bool
	breaker *gobreaker.CircuitBreaker
}

// StateChangeFunc is notified whenever the breaker moves between states.
type StateChangeFunc func(name, from, to string)

func NewCircuitBreaker(name string, cfg CircuitBreakerConfig, onChange StateChangeFunc) *CircuitBreaker {
	cfg = NormalizeCircuitBreakerConfig(cfg)
	threshold := uint32(cfg.FailureThreshold)

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(cfg.HalfOpenMaxReq),
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			if cfg.IsFailure != nil {
				return !cfg.IsFailure(err)
			}
			return false
		},
	}
	if onChange != nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			onChange(name, from.String(), to.String())
		}
	}

	return &CircuitBreaker{
		name:    name,
		enabled: cfg.Enabled,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *CircuitBreaker) Name() string {
	return b.name
}

// State returns "closed", "half-open" or "open".
func (b *CircuitBreaker) State() string {
	if b == nil || !b.enabled {
		return gobreaker.StateClosed.String()
	}
	return b.breaker.State().String()
}

// Execute runs fn through the breaker. Rejections wrap ErrCircuitOpen.
func Execute[T any](b *CircuitBreaker, fn func() (T, error)) (T, error) {
	if b == nil || !b.enabled {
		return fn()
	}

	v, err := b.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrCircuitOpen, b.name, err)
	}
	value, _ := v.(T)
	return value, err
}
