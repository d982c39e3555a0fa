// Package memory is the in-memory storage backend. It backs tests and local
// tooling with the same transactional semantics as the postgres backend:
// InTx works on a copy of the state and swaps it in only on success, so a
// failed transaction leaves nothing behind.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"gallery-backend/internal/domains/asset"
	"gallery-backend/internal/domains/audit"
	"gallery-backend/internal/domains/collection"
	"gallery-backend/internal/domains/location"
	"gallery-backend/internal/domains/year"
	"gallery-backend/internal/storage"
)

type linkKey struct {
	collectionID uuid.UUID
	assetID      uuid.UUID
}

type data struct {
	years       map[uuid.UUID]year.Year
	locations   map[uuid.UUID]location.Location
	collections map[uuid.UUID]collection.Collection
	history     []collection.PublishHistoryEntry
	assets      map[uuid.UUID]asset.Asset
	links       map[linkKey]asset.Link
	auditLog    []audit.Entry
}

func newData() *data {
	return &data{
		years:       make(map[uuid.UUID]year.Year),
		locations:   make(map[uuid.UUID]location.Location),
		collections: make(map[uuid.UUID]collection.Collection),
		assets:      make(map[uuid.UUID]asset.Asset),
		links:       make(map[linkKey]asset.Link),
	}
}

func (d *data) clone() *data {
	c := &data{
		years:       make(map[uuid.UUID]year.Year, len(d.years)),
		locations:   make(map[uuid.UUID]location.Location, len(d.locations)),
		collections: make(map[uuid.UUID]collection.Collection, len(d.collections)),
		history:     append([]collection.PublishHistoryEntry(nil), d.history...),
		assets:      make(map[uuid.UUID]asset.Asset, len(d.assets)),
		links:       make(map[linkKey]asset.Link, len(d.links)),
		auditLog:    append([]audit.Entry(nil), d.auditLog...),
	}
	for k, v := range d.years {
		c.years[k] = v
	}
	for k, v := range d.locations {
		c.locations[k] = v
	}
	for k, v := range d.collections {
		c.collections[k] = v
	}
	for k, v := range d.assets {
		c.assets[k] = v
	}
	for k, v := range d.links {
		c.links[k] = v
	}
	return c
}

// Store implements storage.Store over plain maps.
type Store struct {
	mu   *sync.RWMutex
	data *data
	tx   bool
}

func NewStore() *Store {
	return &Store{mu: &sync.RWMutex{}, data: newData()}
}

func (s *Store) Years() year.Repository             { return &yearRepo{s} }
func (s *Store) Locations() location.Repository     { return &locationRepo{s} }
func (s *Store) Collections() collection.Repository { return &collectionRepo{s} }
func (s *Store) Assets() asset.Repository           { return &assetRepo{s} }
func (s *Store) Audit() audit.Repository            { return &auditRepo{s} }

// InTx clones the state, runs fn against the clone, and swaps it in on
// success. A nested call joins the open transaction.
func (s *Store) InTx(ctx context.Context, fn func(storage.Store) error) error {
	if s.tx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := s.data.clone()
	txStore := &Store{mu: s.mu, data: clone, tx: true}
	if err := fn(txStore); err != nil {
		return err
	}

	s.data = clone
	return nil
}

// rlock/lock are no-ops inside a transaction: InTx already holds the write
// lock and the clone is private to it.
func (s *Store) rlock() func() {
	if s.tx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lock() func() {
	if s.tx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
