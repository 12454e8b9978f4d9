package compliance

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

const principleCacheKey = "active_principles"

// PrincipleLoader fetches the active principle set from the store.
type PrincipleLoader func(ctx context.Context) ([]Principle, error)

// CachedPrincipleSource wraps a loader with a TTL cache so every scoring run
// does not hit the store. The set changes rarely (charter amendments only).
type CachedPrincipleSource struct {
	load  PrincipleLoader
	cache *cache.Cache
}

func NewCachedPrincipleSource(load PrincipleLoader, ttl time.Duration) *CachedPrincipleSource {
	return &CachedPrincipleSource{
		load:  load,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *CachedPrincipleSource) ActivePrinciples(ctx context.Context) ([]Principle, error) {
	if x, found := s.cache.Get(principleCacheKey); found {
		return x.([]Principle), nil
	}

	principles, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(principleCacheKey, principles, cache.DefaultExpiration)
	return principles, nil
}

// Invalidate drops the cached set, forcing a reload on next use.
func (s *CachedPrincipleSource) Invalidate() {
	s.cache.Delete(principleCacheKey)
}
