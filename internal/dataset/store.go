// Package dataset owns the cached ledger snapshot.
//
// The store is the only shared mutable state in the service: it refreshes the
// snapshot from its source when stale or forced, and hands out immutable
// *ledger.Dataset references that the report core and the handlers treat as
// read-only. A failed refresh never discards data; callers keep getting the
// last successfully loaded snapshot.
package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"creditwatch/internal/ledger"
	"creditwatch/internal/logger"
	"creditwatch/internal/source"
)

// DefaultTTL is how long a snapshot is served before a refresh is attempted.
const DefaultTTL = time.Hour

// Store caches the latest successfully loaded dataset.
type Store struct {
	src source.Source
	ttl time.Duration
	now func() time.Time
	log zerolog.Logger

	mu       sync.RWMutex
	snapshot *ledger.Dataset
}

// NewStore creates a store over the given source. A non-positive ttl falls
// back to DefaultTTL.
func NewStore(src source.Source, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		src: src,
		ttl: ttl,
		now: time.Now,
		log: logger.WithComponent("dataset-store"),
	}
}

// Snapshot returns the current dataset, refreshing it first when forced, when
// nothing has been loaded yet, or when the cached snapshot is older than the
// TTL. On refresh failure the last known good snapshot is returned along with
// the error; when nothing was ever loaded the dataset is empty, not nil.
func (s *Store) Snapshot(ctx context.Context, force bool) (*ledger.Dataset, error) {
	s.mu.RLock()
	cached := s.snapshot
	s.mu.RUnlock()

	if !force && cached != nil && s.now().Sub(cached.LoadedAt) <= s.ttl {
		return cached, nil
	}

	s.log.Info().Bool("forced", force).Msg("Refreshing ledger dataset")

	rows, err := s.src.Fetch(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Dataset refresh failed, serving last known good snapshot")
		if cached != nil {
			return cached, err
		}
		return &ledger.Dataset{}, err
	}

	fresh := &ledger.Dataset{Rows: rows, LoadedAt: s.now()}

	s.mu.Lock()
	s.snapshot = fresh
	s.mu.Unlock()

	s.log.Info().Int("rows", len(rows)).Msg("Dataset refreshed")
	return fresh, nil
}

// Age returns how old the cached snapshot is, and false when nothing has been
// loaded yet.
func (s *Store) Age() (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return 0, false
	}
	return s.now().Sub(s.snapshot.LoadedAt), true
}
