package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"gallery-backend/internal/domains/collection"
)

type collectionRepo struct {
	s *Store
}

func (r *collectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*collection.Collection, error) {
	defer r.s.rlock()()

	c, ok := r.s.data.collections[id]
	if !ok {
		return nil, collection.ErrCollectionNotFound
	}
	return &c, nil
}

func (r *collectionRepo) ListByYear(ctx context.Context, yearID uuid.UUID) ([]collection.Collection, error) {
	defer r.s.rlock()()

	var collections []collection.Collection
	for _, c := range r.s.data.collections {
		if c.YearID == yearID {
			collections = append(collections, c)
		}
	}
	sort.Slice(collections, func(i, j int) bool {
		return collections[i].CreatedAt.Before(collections[j].CreatedAt)
	})
	return collections, nil
}

func (r *collectionRepo) ByLocation(ctx context.Context, locationID uuid.UUID) ([]uuid.UUID, error) {
	defer r.s.rlock()()

	var ids []uuid.UUID
	for _, c := range r.s.data.collections {
		if c.LocationID != nil && *c.LocationID == locationID {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (r *collectionRepo) ExistsSlug(ctx context.Context, yearID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	defer r.s.rlock()()

	for _, c := range r.s.data.collections {
		if c.YearID == yearID && c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *collectionRepo) Create(ctx context.Context, c *collection.Collection) error {
	defer r.s.lock()()

	r.s.data.collections[c.ID] = *c
	return nil
}

func (r *collectionRepo) Update(ctx context.Context, c *collection.Collection) error {
	defer r.s.lock()()

	if _, ok := r.s.data.collections[c.ID]; !ok {
		return collection.ErrCollectionNotFound
	}
	r.s.data.collections[c.ID] = *c
	return nil
}

func (r *collectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock()()

	if _, ok := r.s.data.collections[id]; !ok {
		return collection.ErrCollectionNotFound
	}
	delete(r.s.data.collections, id)

	// Cascade the link rows, mirroring the FK cascade in postgres.
	for key := range r.s.data.links {
		if key.collectionID == id {
			delete(r.s.data.links, key)
		}
	}
	return nil
}

func (r *collectionRepo) InsertHistory(ctx context.Context, entry *collection.PublishHistoryEntry) error {
	defer r.s.lock()()

	r.s.data.history = append(r.s.data.history, *entry)
	return nil
}

func (r *collectionRepo) ListHistory(ctx context.Context, collectionID uuid.UUID, limit, offset int) ([]collection.PublishHistoryEntry, error) {
	defer r.s.rlock()()

	var entries []collection.PublishHistoryEntry
	for _, e := range r.s.data.history {
		if e.CollectionID == collectionID {
			entries = append(entries, e)
		}
	}
	// Newest first.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	if offset >= len(entries) {
		return nil, nil
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end], nil
}

func (r *collectionRepo) CountHistory(ctx context.Context, collectionID uuid.UUID) (int, error) {
	defer r.s.rlock()()

	count := 0
	for _, e := range r.s.data.history {
		if e.CollectionID == collectionID {
			count++
		}
	}
	return count, nil
}
