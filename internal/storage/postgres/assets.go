package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"gallery-backend/internal/domains/asset"
)

type assetRepo struct {
	q queryer
}

const assetColumns = "id, alt, caption, description, width, height, metadata, created_at, updated_at"

func scanAsset(row pgx.Row, a *asset.Asset) error {
	return row.Scan(&a.ID, &a.Alt, &a.Caption, &a.Description, &a.Width, &a.Height,
		&a.Metadata, &a.CreatedAt, &a.UpdatedAt)
}

func (r *assetRepo) GetByID(ctx context.Context, id uuid.UUID) (*asset.Asset, error) {
	query := fmt.Sprintf("SELECT %s FROM assets WHERE id = $1", assetColumns)

	var a asset.Asset
	if err := scanAsset(r.q.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, asset.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to query asset: %w", err)
	}
	return &a, nil
}

func (r *assetRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]asset.Asset, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	query := fmt.Sprintf("SELECT %s FROM assets WHERE id = ANY($1::uuid[])", assetColumns)

	rows, err := r.q.Query(ctx, query, pq.Array(idStrings))
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []asset.Asset
	for rows.Next() {
		var a asset.Asset
		if err := scanAsset(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read assets: %w", err)
	}
	return assets, nil
}

func (r *assetRepo) List(ctx context.Context, limit, offset int) ([]asset.Asset, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM assets").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM assets ORDER BY created_at DESC LIMIT $1 OFFSET $2", assetColumns)

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []asset.Asset
	for rows.Next() {
		var a asset.Asset
		if err := scanAsset(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read assets: %w", err)
	}
	return assets, total, nil
}

func (r *assetRepo) Create(ctx context.Context, a *asset.Asset) error {
	query := `
		INSERT INTO assets (id, alt, caption, description, width, height, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING`

	tag, err := r.q.Exec(ctx, query,
		a.ID, a.Alt, a.Caption, a.Description, a.Width, a.Height, a.Metadata, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return asset.ErrAssetAlreadyExists
	}
	return nil
}

func (r *assetRepo) Update(ctx context.Context, a *asset.Asset) error {
	query := `
		UPDATE assets
		SET alt = $2, caption = $3, description = $4, metadata = $5, updated_at = $6
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, a.ID, a.Alt, a.Caption, a.Description, a.Metadata, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return asset.ErrAssetNotFound
	}
	return nil
}

func (r *assetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM assets WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return asset.ErrAssetNotFound
	}
	return nil
}

func (r *assetRepo) ListLinks(ctx context.Context, collectionID uuid.UUID) ([]asset.Link, error) {
	query := `
		SELECT collection_id, asset_id, order_key, created_at, updated_at
		FROM asset_links
		WHERE collection_id = $1
		ORDER BY created_at`

	rows, err := r.q.Query(ctx, query, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list asset links: %w", err)
	}
	defer rows.Close()

	var links []asset.Link
	for rows.Next() {
		var l asset.Link
		if err := rows.Scan(&l.CollectionID, &l.AssetID, &l.OrderKey, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset link: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read asset links: %w", err)
	}

	sortByPosition(links, func(l asset.Link) (string, int64) {
		return l.OrderKey, l.CreatedAt.UnixNano()
	})
	return links, nil
}

func (r *assetRepo) CountLinks(ctx context.Context, collectionID uuid.UUID) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx,
		"SELECT COUNT(*) FROM asset_links WHERE collection_id = $1", collectionID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count asset links: %w", err)
	}
	return count, nil
}

func (r *assetRepo) CreateLink(ctx context.Context, l *asset.Link) error {
	query := `
		INSERT INTO asset_links (collection_id, asset_id, order_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.q.Exec(ctx, query,
		l.CollectionID, l.AssetID, l.OrderKey, l.CreatedAt, l.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert asset link: %w", err)
	}
	return nil
}

func (r *assetRepo) UpdateLinkOrder(ctx context.Context, collectionID, assetID uuid.UUID, orderKey string) (bool, error) {
	query := `
		UPDATE asset_links
		SET order_key = $3, updated_at = NOW()
		WHERE collection_id = $1 AND asset_id = $2`

	tag, err := r.q.Exec(ctx, query, collectionID, assetID, orderKey)
	if err != nil {
		return false, fmt.Errorf("failed to update asset link order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *assetRepo) DeleteLink(ctx context.Context, collectionID, assetID uuid.UUID) (bool, error) {
	tag, err := r.q.Exec(ctx,
		"DELETE FROM asset_links WHERE collection_id = $1 AND asset_id = $2",
		collectionID, assetID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete asset link: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *assetRepo) LinkedCollections(ctx context.Context, assetID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT collection_id FROM asset_links
		WHERE asset_id = $1
		ORDER BY collection_id`

	rows, err := r.q.Query(ctx, query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list referencing collections: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan collection id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collection ids: %w", err)
	}
	return ids, nil
}
