// Package postgres is the production storage backend: hand-written SQL over
// a pgx connection pool. Transaction scope comes from pkg/database; a
// transaction-scoped Store routes every query through the open pgx.Tx.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gallery-backend/internal/domains/asset"
	"gallery-backend/internal/domains/audit"
	"gallery-backend/internal/domains/collection"
	"gallery-backend/internal/domains/location"
	"gallery-backend/internal/domains/year"
	"gallery-backend/internal/storage"
	"gallery-backend/pkg/database"
)

// queryer is satisfied by both *pgxpool.Pool and pgx.Tx, so repositories
// run unchanged inside and outside transactions.
type queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements storage.Store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	q    queryer
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool}
}

func (s *Store) Years() year.Repository             { return &yearRepo{s.q} }
func (s *Store) Locations() location.Repository     { return &locationRepo{s.q} }
func (s *Store) Collections() collection.Repository { return &collectionRepo{s.q} }
func (s *Store) Assets() asset.Repository           { return &assetRepo{s.q} }
func (s *Store) Audit() audit.Repository            { return &auditRepo{s.q} }

func (s *Store) InTx(ctx context.Context, fn func(storage.Store) error) error {
	// Already inside a transaction: join it.
	if _, ok := s.q.(pgx.Tx); ok {
		return fn(s)
	}

	return database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&Store{pool: s.pool, q: tx})
	})
}
