package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"gallery-backend/internal/domains/collection"
)

type collectionRepo struct {
	q queryer
}

const collectionColumns = `id, year_id, location_id, slug, title, summary, cover_asset_id,
	status, version, published_at, last_published_at,
	seo_title, seo_description, seo_keywords, created_at, updated_at`

func scanCollection(row pgx.Row, c *collection.Collection) error {
	return row.Scan(
		&c.ID, &c.YearID, &c.LocationID, &c.Slug, &c.Title, &c.Summary, &c.CoverAssetID,
		&c.Status, &c.Version, &c.PublishedAt, &c.LastPublishedAt,
		&c.SEOTitle, &c.SEODescription, &c.SEOKeywords, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *collectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*collection.Collection, error) {
	query := fmt.Sprintf("SELECT %s FROM collections WHERE id = $1", collectionColumns)

	var c collection.Collection
	if err := scanCollection(r.q.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, collection.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}
	return &c, nil
}

func (r *collectionRepo) ListByYear(ctx context.Context, yearID uuid.UUID) ([]collection.Collection, error) {
	query := fmt.Sprintf("SELECT %s FROM collections WHERE year_id = $1 ORDER BY created_at", collectionColumns)

	rows, err := r.q.Query(ctx, query, yearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []collection.Collection
	for rows.Next() {
		var c collection.Collection
		if err := scanCollection(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collections: %w", err)
	}
	return collections, nil
}

func (r *collectionRepo) ByLocation(ctx context.Context, locationID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.q.Query(ctx, "SELECT id FROM collections WHERE location_id = $1 ORDER BY created_at", locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections by location: %w", err)
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

func (r *collectionRepo) ExistsSlug(ctx context.Context, yearID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM collections
			WHERE year_id = $1 AND slug = $2 AND id <> $3
		)`

	var exists bool
	if err := r.q.QueryRow(ctx, query, yearID, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check collection slug: %w", err)
	}
	return exists, nil
}

func (r *collectionRepo) Create(ctx context.Context, c *collection.Collection) error {
	query := `
		INSERT INTO collections (
			id, year_id, location_id, slug, title, summary, cover_asset_id,
			status, version, published_at, last_published_at,
			seo_title, seo_description, seo_keywords, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	if _, err := r.q.Exec(ctx, query,
		c.ID, c.YearID, c.LocationID, c.Slug, c.Title, c.Summary, c.CoverAssetID,
		c.Status, c.Version, c.PublishedAt, c.LastPublishedAt,
		c.SEOTitle, c.SEODescription, c.SEOKeywords, c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	return nil
}

func (r *collectionRepo) Update(ctx context.Context, c *collection.Collection) error {
	query := `
		UPDATE collections
		SET location_id = $2, slug = $3, title = $4, summary = $5, cover_asset_id = $6,
			status = $7, version = $8, published_at = $9, last_published_at = $10,
			seo_title = $11, seo_description = $12, seo_keywords = $13, updated_at = $14
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query,
		c.ID, c.LocationID, c.Slug, c.Title, c.Summary, c.CoverAssetID,
		c.Status, c.Version, c.PublishedAt, c.LastPublishedAt,
		c.SEOTitle, c.SEODescription, c.SEOKeywords, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return collection.ErrCollectionNotFound
	}
	return nil
}

func (r *collectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// asset_links rows go with it via ON DELETE CASCADE.
	tag, err := r.q.Exec(ctx, "DELETE FROM collections WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return collection.ErrCollectionNotFound
	}
	return nil
}

func (r *collectionRepo) InsertHistory(ctx context.Context, entry *collection.PublishHistoryEntry) error {
	query := `
		INSERT INTO publish_history (id, collection_id, version, action, note, actor_id, snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := r.q.Exec(ctx, query,
		entry.ID, entry.CollectionID, entry.Version, entry.Action,
		entry.Note, entry.ActorID, entry.Snapshot, entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert publish history: %w", err)
	}
	return nil
}

func (r *collectionRepo) ListHistory(ctx context.Context, collectionID uuid.UUID, limit, offset int) ([]collection.PublishHistoryEntry, error) {
	query := `
		SELECT id, collection_id, version, action, note, actor_id, snapshot, created_at
		FROM publish_history
		WHERE collection_id = $1
		ORDER BY created_at DESC, version DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, collectionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list publish history: %w", err)
	}
	defer rows.Close()

	var entries []collection.PublishHistoryEntry
	for rows.Next() {
		var e collection.PublishHistoryEntry
		if err := rows.Scan(
			&e.ID, &e.CollectionID, &e.Version, &e.Action,
			&e.Note, &e.ActorID, &e.Snapshot, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan publish history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read publish history: %w", err)
	}
	return entries, nil
}

func (r *collectionRepo) CountHistory(ctx context.Context, collectionID uuid.UUID) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx,
		"SELECT COUNT(*) FROM publish_history WHERE collection_id = $1", collectionID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count publish history: %w", err)
	}
	return count, nil
}
