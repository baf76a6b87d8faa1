package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"dealflow/internal/cache"
	"dealflow/internal/dto"

	"github.com/rs/zerolog/log"
)

// QueryCache holds GET responses by key until a mutation invalidates them.
// Entries never expire on their own.
type QueryCache struct {
	c     *Client
	store *cache.MemoryStore
}

func newQueryCache(c *Client) *QueryCache {
	return &QueryCache{c: c, store: cache.NewMemoryStore()}
}

// Fetch decodes the response for key into dst, requesting it only on a miss.
func (q *QueryCache) Fetch(ctx context.Context, key cache.Key, dst any) error {
	raw, err := fetch[json.RawMessage](ctx, q, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// Invalidate drops every key m makes stale. Call it only after the
// mutation's response arrived.
func (q *QueryCache) Invalidate(m cache.Mutation, scope cache.Scope) {
	if err := cache.Invalidate(context.Background(), q.store, m, scope); err != nil {
		log.Warn().Err(err).Str("mutation", string(m)).Msg("client: invalidate failed")
	}
}

// Cached reports whether key currently has an entry.
func (q *QueryCache) Cached(key cache.Key) bool { return q.store.Has(key) }

func (q *QueryCache) Clear() { q.store.Clear() }

// fetch reads key through the cache. Keys are request paths, so a miss is
// a GET of the key itself.
func fetch[T any](ctx context.Context, q *QueryCache, key cache.Key) (T, error) {
	return cache.ReadThrough(ctx, q.store, key, func(ctx context.Context) (T, error) {
		var v T
		err := q.c.do(ctx, http.MethodGet, key.String(), nil, nil, &v)
		return v, err
	})
}

// ── Cascade lookups ──────────────────────────────────────────────────────────
// Server-side cascades are not reported in responses, so the IDs they touch
// are recovered from what is cached.

// cachedBuyerLists returns the deal IDs whose buyer list is cached.
func (q *QueryCache) cachedBuyerLists() []string {
	var ids []string
	for _, k := range q.store.Keys() {
		if id, ok := buyerListDeal(k); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// buyerListsWithParty returns the deal IDs whose cached buyer list shows partyID.
func (q *QueryCache) buyerListsWithParty(partyID string) []string {
	var ids []string
	for _, k := range q.store.Keys() {
		dealID, ok := buyerListDeal(k)
		if !ok {
			continue
		}
		for _, row := range q.buyerRows(k) {
			if row.Party.ID == partyID {
				ids = append(ids, dealID)
				break
			}
		}
	}
	return ids
}

// cachedMatches returns the IDs of cached matches accepted by keep, found in
// match entries and buyer list rows.
func (q *QueryCache) cachedMatches(keep func(dto.MatchResponse) bool) []string {
	var ids []string
	add := func(m dto.MatchResponse) {
		if m.ID != "" && keep(m) {
			ids = append(ids, m.ID)
		}
	}
	for _, k := range q.store.Keys() {
		if _, ok := buyerListDeal(k); ok {
			for _, row := range q.buyerRows(k) {
				add(row.Match)
			}
			continue
		}
		if !strings.HasPrefix(k.Path(), "/api/matches/") {
			continue
		}
		var m dto.MatchResponse
		if q.decode(k, &m) {
			add(m)
		}
	}
	return ids
}

func (q *QueryCache) buyerRows(k cache.Key) []dto.BuyerMatchRow {
	var rows []dto.BuyerMatchRow
	q.decode(k, &rows)
	return rows
}

func (q *QueryCache) decode(k cache.Key, dst any) bool {
	raw, ok, _ := q.store.Get(context.Background(), k)
	return ok && json.Unmarshal(raw, dst) == nil
}

func buyerListDeal(k cache.Key) (string, bool) {
	p := k.Path()
	if !strings.HasPrefix(p, "/api/deals/") || !strings.HasSuffix(p, "/buyers") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(p, "/api/deals/"), "/buyers")
	return id, id != "" && !strings.Contains(id, "/")
}
