package provider

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Prober validates provider connectivity with exponential backoff. It is
// used at startup and by the deep health check only; the per-task fallback
// chain never retries a provider.
type Prober struct {
	logger  *zap.Logger
	timeout time.Duration
}

// NewProber creates a new Prober instance
func NewProber(logger *zap.Logger) *Prober {
	return &Prober{
		logger:  logger,
		timeout: 30 * time.Second,
	}
}

// Probe invokes the adapter with a trivial request, retrying transient
// failures with exponential backoff until the context or the probe budget
// expires
func (p *Prober) Probe(ctx context.Context, adapter Adapter) error {
	strategy := backoff.NewExponentialBackOff()
	strategy.InitialInterval = 500 * time.Millisecond
	strategy.MaxInterval = 5 * time.Second
	strategy.MaxElapsedTime = p.timeout

	operation := func() error {
		_, err := adapter.Invoke(ctx, probeRequest(adapter.Capability()))
		if err == nil {
			return nil
		}
		if Classify(err) == FailureConfiguration {
			// Missing credentials will not heal within a probe.
			return backoff.Permanent(err)
		}
		p.logger.Warn("Provider probe failed, will retry",
			zap.String("provider", adapter.Name()),
			zap.Error(err))
		return err
	}

	return backoff.Retry(operation, backoff.WithContext(strategy, ctx))
}

func probeRequest(capability Capability) Request {
	switch capability {
	case CapabilityTranslation:
		return Request{Text: "ping", SourceLang: "en", TargetLang: "es"}
	case CapabilityEntityExtraction:
		return Request{Text: "ping"}
	default:
		return Request{Prompt: "Reply with the single word: pong"}
	}
}
