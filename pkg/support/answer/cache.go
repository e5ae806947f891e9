package answer

import (
	"context"
)

// CacheResolver serves answers cached by the lower tiers. Hits do not
// refresh the TTL.
type CacheResolver struct {
	cache AnswerCache
}

var _ Resolver = &CacheResolver{}

func NewCacheResolver(cache AnswerCache) *CacheResolver {
	return &CacheResolver{
		cache: cache,
	}
}

func (r *CacheResolver) Name() string {
	return "cache"
}

func (r *CacheResolver) TryResolve(ctx context.Context, q Query) (*Result, bool) {
	if q.Text == "" {
		return nil, false
	}

	cached, found, err := r.cache.GetCachedAnswer(ctx, q.Text)
	if err != nil || !found {
		return nil, false
	}

	return &Result{
		Answer: cached,
		Source: SourceCache,
	}, true
}
