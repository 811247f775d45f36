// Package repository persists performance records and reads back the most
// recent one per student name.
package repository

import (
	"context"

	"github.com/okian/studytrack/internal/domain/model"
)

// Store is the append-only evaluation history. Records are grouped by exact
// student name; names are not unique, so students sharing a name share history.
type Store interface {
	// Append stores rec and returns it with ID and CreatedAt assigned. The tier
	// fields are re-derived from the score. Duplicate names are never rejected.
	Append(ctx context.Context, rec model.PerformanceRecord) (model.PerformanceRecord, error)

	// MostRecent returns the latest record for name by CreatedAt, ties broken
	// by insertion order. Returns ErrNotFound if the name has no records.
	MostRecent(ctx context.Context, name string) (model.PerformanceRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying resources.
	Close() error
}
