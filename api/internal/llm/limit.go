package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limited wraps an Engine so that calls wait for a token from a shared
// limiter before reaching the provider.
type Limited struct {
	Engine
	limiter *rate.Limiter
}

// WithRateLimit returns eng unchanged when perSecond <= 0.
func WithRateLimit(eng Engine, perSecond float64, burst int) Engine {
	if perSecond <= 0 {
		return eng
	}
	if burst < 1 {
		burst = 1
	}
	return &Limited{Engine: eng, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (l *Limited) Generate(ctx context.Context, in Request) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%s: rate limit: %w", l.Name(), err)
	}
	return l.Engine.Generate(ctx, in)
}
