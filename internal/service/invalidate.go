package service

import (
	"context"

	"dealflow/internal/cache"

	"github.com/rs/zerolog/log"
)

// invalidate drops the cached reads a committed mutation made stale. A cache
// failure is logged; entries then expire by TTL.
func invalidate(ctx context.Context, store cache.Store, m cache.Mutation, scope cache.Scope) {
	if store == nil {
		return
	}
	if err := cache.Invalidate(ctx, store, m, scope); err != nil {
		log.Warn().Err(err).Str("mutation", string(m)).Msg("cache invalidation failed")
	}
}
