package audio

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"codeberg.org/snonux/ttsuz/internal/logging"
)

// DefaultBreakerSettings opens the breaker after five consecutive
// failures and probes again after thirty seconds.
func DefaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}

// BreakerProvider guards a provider with a circuit breaker. Only transport
// failures and 5xx answers count against the backend.
type BreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps provider with a breaker built from settings
func NewBreakerProvider(provider Provider, settings gobreaker.Settings, logger *zap.Logger) Provider {
	logger = logging.OrNop(logger)

	if settings.Name == "" {
		settings.Name = provider.Name()
	}
	settings.IsSuccessful = countsAsSuccess
	settings.OnStateChange = func(name string, from, to gobreaker.State) {
		logger.Warn("circuit breaker state changed",
			zap.String("provider", name),
			zap.Stringer("from", from),
			zap.Stringer("to", to))
	}

	return &BreakerProvider{
		provider: provider,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

// Synthesize forwards the request unless the breaker is open
func (b *BreakerProvider) Synthesize(ctx context.Context, req Request) (*Result, error) {
	var result *Result

	_, err := b.cb.Execute(func() (interface{}, error) {
		res, err := b.provider.Synthesize(ctx, req)
		result = res
		return res, err
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &SpeechError{Kind: KindTransport, Provider: b.provider.Name(), Err: err}
	}

	return result, err
}

// Name returns the provider name
func (b *BreakerProvider) Name() string {
	return b.provider.Name()
}

// IsAvailable reports an open breaker as unavailable
func (b *BreakerProvider) IsAvailable() error {
	if b.cb.State() == gobreaker.StateOpen {
		return &SpeechError{Kind: KindTransport, Provider: b.provider.Name(), Err: gobreaker.ErrOpenState}
	}
	return b.provider.IsAvailable()
}

// State exposes the breaker state
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}

func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}

	code, ok := StatusCode(err)
	return ok && code < 500
}
