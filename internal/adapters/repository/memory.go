package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/studytrack/internal/domain/model"
	"github.com/okian/studytrack/internal/domain/tier"
)

// MemoryStore is an in-process Store. Records live in insertion order.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.PerformanceRecord
	opts    options
	closed  bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryStore{opts: o}
}

// Append implements Store.
func (s *MemoryStore) Append(_ context.Context, rec model.PerformanceRecord) (model.PerformanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.PerformanceRecord{}, fmt.Errorf("repository.append: %w", ErrClosed)
	}
	rec.TierCode, rec.TierLabel = tier.Classify(rec.Score)
	rec.CreatedAt = s.opts.now().UTC()
	rec.ID = int64(len(s.records) + 1)
	s.records = append(s.records, rec)
	return rec, nil
}

// MostRecent implements Store.
func (s *MemoryStore) MostRecent(_ context.Context, name string) (model.PerformanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return model.PerformanceRecord{}, fmt.Errorf("repository.most_recent: %w", ErrClosed)
	}
	var (
		best  model.PerformanceRecord
		found bool
	)
	// Later entries win ties, matching insertion order.
	for _, r := range s.records {
		if r.StudentName != name {
			continue
		}
		if !found || !r.CreatedAt.Before(best.CreatedAt) {
			best, found = r, true
		}
	}
	if !found {
		return model.PerformanceRecord{}, ErrNotFound
	}
	return best, nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
