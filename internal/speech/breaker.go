package speech

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerProvider stops calling a failing backend for a while so that a
// dead network does not stall every tap on the audio button
type BreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

// NewBreaker wraps a provider in a circuit breaker that opens after
// maxFailures consecutive failures and probes again after timeout
func NewBreaker(provider Provider, maxFailures uint32, timeout time.Duration, logger *zap.Logger) *BreakerProvider {
	if logger == nil {
		logger = zap.NewNop()
	}

	settings := gobreaker.Settings{
		Name:    provider.Name(),
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// A cancelled request says nothing about the backend
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Speech circuit breaker changed state",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &BreakerProvider{
		provider: provider,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

// Synthesize calls the wrapped provider unless the breaker is open
func (b *BreakerProvider) Synthesize(ctx context.Context, word string) (*Speech, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.provider.Synthesize(ctx, word)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s: %v", ErrServiceUnavailable, b.provider.Name(), err)
	}
	if err != nil {
		return nil, err
	}
	return result.(*Speech), nil
}

// Name returns the wrapped provider name
func (b *BreakerProvider) Name() string {
	return b.provider.Name()
}

// IsAvailable reports the wrapped provider's availability and whether the
// breaker is open
func (b *BreakerProvider) IsAvailable() error {
	if b.cb.State() == gobreaker.StateOpen {
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, b.provider.Name())
	}
	return b.provider.IsAvailable()
}

// State returns the breaker state
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}
