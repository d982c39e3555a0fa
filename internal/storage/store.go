// Package storage defines the single storage port the core writes through.
// Two interchangeable backends implement it: postgres (production) and
// memory (tests, local tooling). Services hold a Store and never know which
// backend is behind it.
package storage

import (
	"context"

	"gallery-backend/internal/domains/asset"
	"gallery-backend/internal/domains/audit"
	"gallery-backend/internal/domains/collection"
	"gallery-backend/internal/domains/location"
	"gallery-backend/internal/domains/year"
)

// Store aggregates the per-domain repositories and scopes transactions.
type Store interface {
	Years() year.Repository
	Locations() location.Repository
	Collections() collection.Repository
	Assets() asset.Repository
	Audit() audit.Repository

	// InTx runs fn against a transaction-scoped Store. Everything fn does
	// through that Store commits together or not at all. Calling InTx on an
	// already transaction-scoped Store joins the open transaction.
	InTx(ctx context.Context, fn func(Store) error) error
}
