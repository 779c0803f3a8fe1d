package insights

import (
	"context"
	"log/slog"

	"extraque/internal/cache"
)

// Service caches advice per display currency so redrawing the dashboard does
// not re-query the model. A manual refresh bypasses the cache.
type Service struct {
	advisor Advisor
	cache   cache.Cache[string]
}

func NewService(advisor Advisor, c cache.Cache[string]) *Service {
	return &Service{advisor: advisor, cache: c}
}

// Get returns advice for the digest. Advisor failures degrade to the error
// placeholder instead of failing the dashboard.
func (s *Service) Get(ctx context.Context, d Digest, refresh bool) string {
	key := d.Currency.Code

	if !refresh && s.cache != nil {
		if text, ok := s.cache.Get(key); ok {
			return text
		}
	}

	text, err := s.advisor.Advise(ctx, d)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to generate insights", "error", err)
		return TextError
	}
	if s.cache != nil {
		s.cache.Set(key, text)
	}
	return text
}
