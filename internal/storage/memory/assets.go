package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"gallery-backend/internal/domains/asset"
	"gallery-backend/pkg/ordering"
)

type assetRepo struct {
	s *Store
}

func (r *assetRepo) GetByID(ctx context.Context, id uuid.UUID) (*asset.Asset, error) {
	defer r.s.rlock()()

	a, ok := r.s.data.assets[id]
	if !ok {
		return nil, asset.ErrAssetNotFound
	}
	return &a, nil
}

func (r *assetRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]asset.Asset, error) {
	defer r.s.rlock()()

	assets := make([]asset.Asset, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if a, ok := r.s.data.assets[id]; ok {
			assets = append(assets, a)
		}
	}
	return assets, nil
}

func (r *assetRepo) List(ctx context.Context, limit, offset int) ([]asset.Asset, int, error) {
	defer r.s.rlock()()

	all := make([]asset.Asset, 0, len(r.s.data.assets))
	for _, a := range r.s.data.assets {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *assetRepo) Create(ctx context.Context, a *asset.Asset) error {
	defer r.s.lock()()

	if _, ok := r.s.data.assets[a.ID]; ok {
		return asset.ErrAssetAlreadyExists
	}
	r.s.data.assets[a.ID] = *a
	return nil
}

func (r *assetRepo) Update(ctx context.Context, a *asset.Asset) error {
	defer r.s.lock()()

	if _, ok := r.s.data.assets[a.ID]; !ok {
		return asset.ErrAssetNotFound
	}
	r.s.data.assets[a.ID] = *a
	return nil
}

func (r *assetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock()()

	if _, ok := r.s.data.assets[id]; !ok {
		return asset.ErrAssetNotFound
	}
	delete(r.s.data.assets, id)
	return nil
}

func (r *assetRepo) ListLinks(ctx context.Context, collectionID uuid.UUID) ([]asset.Link, error) {
	defer r.s.rlock()()

	var links []asset.Link
	for key, l := range r.s.data.links {
		if key.collectionID == collectionID {
			links = append(links, l)
		}
	}
	sort.Slice(links, func(i, j int) bool {
		if cmp := ordering.Compare(links[i].OrderKey, links[j].OrderKey); cmp != 0 {
			return cmp < 0
		}
		return links[i].CreatedAt.Before(links[j].CreatedAt)
	})
	return links, nil
}

func (r *assetRepo) CountLinks(ctx context.Context, collectionID uuid.UUID) (int, error) {
	defer r.s.rlock()()

	count := 0
	for key := range r.s.data.links {
		if key.collectionID == collectionID {
			count++
		}
	}
	return count, nil
}

func (r *assetRepo) CreateLink(ctx context.Context, l *asset.Link) error {
	defer r.s.lock()()

	r.s.data.links[linkKey{l.CollectionID, l.AssetID}] = *l
	return nil
}

func (r *assetRepo) UpdateLinkOrder(ctx context.Context, collectionID, assetID uuid.UUID, orderKey string) (bool, error) {
	defer r.s.lock()()

	key := linkKey{collectionID, assetID}
	l, ok := r.s.data.links[key]
	if !ok {
		return false, nil
	}
	l.OrderKey = orderKey
	l.UpdatedAt = nowUTC()
	r.s.data.links[key] = l
	return true, nil
}

func (r *assetRepo) DeleteLink(ctx context.Context, collectionID, assetID uuid.UUID) (bool, error) {
	defer r.s.lock()()

	key := linkKey{collectionID, assetID}
	if _, ok := r.s.data.links[key]; !ok {
		return false, nil
	}
	delete(r.s.data.links, key)
	return true, nil
}

func (r *assetRepo) LinkedCollections(ctx context.Context, assetID uuid.UUID) ([]uuid.UUID, error) {
	defer r.s.rlock()()

	var ids []uuid.UUID
	for key := range r.s.data.links {
		if key.assetID == assetID {
			ids = append(ids, key.collectionID)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids, nil
}
