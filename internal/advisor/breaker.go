package advisor

import (
	"github.com/sony/gobreaker/v2"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/logging"
)

// Breaker guards completion calls with a circuit breaker. A nil Breaker
// executes calls directly.
type Breaker struct {
	cb *gobreaker.CircuitBreaker[string]
}

// NewBreaker builds a breaker that trips once MinRequests calls have been seen
// in the interval and the failure ratio reaches FailureThreshold.
func NewBreaker(name string, cfg config.BreakerConfig, logger logging.Logger) *Breaker {
	if logger == nil {
		logger = logging.NewNop()
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", logging.Fields{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker[string](settings)}
}

// Execute runs fn through the breaker.
func (b *Breaker) Execute(fn func() (string, error)) (string, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// State reports the breaker state as closed, half-open or open.
func (b *Breaker) State() string {
	if b == nil || b.cb == nil {
		return gobreaker.StateClosed.String()
	}
	return b.cb.State().String()
}

// Healthy reports whether calls are currently allowed through unconditionally.
func (b *Breaker) Healthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}
