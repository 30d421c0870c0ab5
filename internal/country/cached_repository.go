package country

import (
	"context"
	"time"

	"github.com/smallbiznis/tripquote/internal/cache"
	"github.com/smallbiznis/tripquote/internal/country/domain"
)

type cachedRepository struct {
	inner domain.Repository

	countries cache.Cache[string, *domain.Country]
	rates     cache.Cache[string, *domain.DefaultRate]
}

// NewCachedRepository memoizes positive country lookups. Misses always go
// to the database so newly seeded rows appear immediately.
func NewCachedRepository(inner domain.Repository) domain.Repository {
	return &cachedRepository{
		inner:     inner,
		countries: cache.NewTTLCache[string, *domain.Country](),
		rates:     cache.NewTTLCache[string, *domain.DefaultRate](),
	}
}

func (r *cachedRepository) FindActiveCountry(ctx context.Context, code string, at time.Time) (*domain.Country, error) {
	key := cache.Key(at, code)
	if c, ok := r.countries.Get(key); ok {
		return c, nil
	}
	c, err := r.inner.FindActiveCountry(ctx, code, at)
	if err != nil {
		return nil, err
	}
	if c != nil {
		r.countries.Set(key, c, cache.DefaultReferenceTTL)
	}
	return c, nil
}

func (r *cachedRepository) FindActiveDefaultRate(ctx context.Context, code string, at time.Time) (*domain.DefaultRate, error) {
	key := cache.Key(at, code)
	if rate, ok := r.rates.Get(key); ok {
		return rate, nil
	}
	rate, err := r.inner.FindActiveDefaultRate(ctx, code, at)
	if err != nil {
		return nil, err
	}
	if rate != nil {
		r.rates.Set(key, rate, cache.DefaultReferenceTTL)
	}
	return rate, nil
}

func (r *cachedRepository) ListActiveCountries(ctx context.Context, at time.Time) ([]domain.Country, error) {
	return r.inner.ListActiveCountries(ctx, at)
}
