package audit

import (
	"context"
	"time"
)

// Repository is the ledger's storage port. Append-only: there is no update
// or delete. Retention purge lives in a separate job outside this service.
type Repository interface {
	// Append inserts one entry.
	Append(ctx context.Context, entry *Entry) error

	// Query returns entries newest-first plus the total matching count.
	Query(ctx context.Context, filter Filter) ([]Entry, int, error)

	// CountBefore counts entries older than the cutoff.
	CountBefore(ctx context.Context, cutoff time.Time) (int, error)

	// OldestTimestamp returns the timestamp of the oldest entry,
	// or nil when the ledger is empty.
	OldestTimestamp(ctx context.Context) (*time.Time, error)

	// SampleBefore returns up to limit entries older than the cutoff,
	// oldest first.
	SampleBefore(ctx context.Context, cutoff time.Time, limit int) ([]Entry, error)
}
