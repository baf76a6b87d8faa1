package cache

import (
	"context"
	"encoding/json"
	"sync"

	"dealflow/internal/metrics"

	"github.com/rs/zerolog/log"
)

// Store holds serialized responses by key. Every Delete moves the deleted
// keys to a new version, so a fill computed before an invalidation can be
// told apart from one computed after it.
type Store interface {
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	Set(ctx context.Context, key Key, value []byte) error
	Delete(ctx context.Context, keys ...Key) error
	Version(ctx context.Context, key Key) (int64, error)
	// SetIfVersion stores value only while key is still at version. It
	// reports whether the value was stored.
	SetIfVersion(ctx context.Context, key Key, value []byte, version int64) (bool, error)
}

// Invalidate removes every key m makes stale. It must only be called after
// the mutation has been committed.
func Invalidate(ctx context.Context, s Store, m Mutation, scope Scope) error {
	keys := Dependents(m, scope)
	if len(keys) == 0 {
		return nil
	}
	if err := s.Delete(ctx, keys...); err != nil {
		return err
	}
	metrics.CacheInvalidations.WithLabelValues(string(m)).Add(float64(len(keys)))
	return nil
}

// ReadThrough returns the cached value for key or calls load and caches its
// result. Cache failures are logged and never fail the read.
func ReadThrough[T any](ctx context.Context, s Store, key Key, load func(context.Context) (T, error)) (T, error) {
	if raw, ok, err := s.Get(ctx, key); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("key", key.String()).Msg("cache: get failed")
	} else if ok {
		var v T
		if jsonErr := json.Unmarshal(raw, &v); jsonErr == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return v, nil
		}
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	version, verErr := s.Version(ctx, key)
	if verErr != nil {
		log.Warn().Err(verErr).Str("key", key.String()).Msg("cache: version failed")
	}
	v, err := load(ctx)
	if err != nil || verErr != nil {
		return v, err
	}
	b, jsonErr := json.Marshal(v)
	if jsonErr != nil {
		return v, nil
	}
	// an invalidation that ran during load wins over this fill
	stored, setErr := s.SetIfVersion(ctx, key, b, version)
	switch {
	case setErr != nil:
		log.Warn().Err(setErr).Str("key", key.String()).Msg("cache: set failed")
	case !stored:
		metrics.CacheLookups.WithLabelValues("stale").Inc()
	}
	return v, nil
}

// MemoryStore is a process-local store without expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	items    map[Key][]byte
	versions map[Key]int64
	seq      int64
	cleared  int64 // seq of the last Clear
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[Key][]byte), versions: make(map[Key]int64)}
}

func (m *MemoryStore) Get(_ context.Context, key Key) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key Key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	for _, k := range keys {
		delete(m.items, k)
		m.versions[k] = m.seq
	}
	return nil
}

func (m *MemoryStore) Version(_ context.Context, key Key) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.versionLocked(key), nil
}

func (m *MemoryStore) SetIfVersion(_ context.Context, key Key, value []byte, version int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.versionLocked(key) != version {
		return false, nil
	}
	m.items[key] = value
	return true, nil
}

func (m *MemoryStore) versionLocked(key Key) int64 {
	return max(m.versions[key], m.cleared)
}

// Clear drops every entry.
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[Key][]byte)
	m.versions = make(map[Key]int64)
	m.seq++
	m.cleared = m.seq
}

// Keys lists the cached keys in no particular order.
func (m *MemoryStore) Keys() []Key {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Key, 0, len(m.items))
	for k := range m.items {
		out = append(out, k)
	}
	return out
}

// Has reports whether key is currently cached.
func (m *MemoryStore) Has(key Key) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}
