package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"gallery-backend/internal/domains/location"
	"gallery-backend/internal/domains/year"
)

type yearRepo struct {
	q queryer
}

const yearColumns = "id, label, order_key, status, created_at, updated_at"

func scanYear(row pgx.Row, y *year.Year) error {
	return row.Scan(&y.ID, &y.Label, &y.OrderKey, &y.Status, &y.CreatedAt, &y.UpdatedAt)
}

func (r *yearRepo) GetByID(ctx context.Context, id uuid.UUID) (*year.Year, error) {
	query := fmt.Sprintf("SELECT %s FROM years WHERE id = $1", yearColumns)

	var y year.Year
	if err := scanYear(r.q.QueryRow(ctx, query, id), &y); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, year.ErrYearNotFound
		}
		return nil, fmt.Errorf("failed to query year: %w", err)
	}
	return &y, nil
}

func (r *yearRepo) List(ctx context.Context) ([]year.Year, error) {
	query := fmt.Sprintf("SELECT %s FROM years ORDER BY created_at", yearColumns)

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list years: %w", err)
	}
	defer rows.Close()

	var years []year.Year
	for rows.Next() {
		var y year.Year
		if err := scanYear(rows, &y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read years: %w", err)
	}

	sortByPosition(years, func(y year.Year) (string, int64) {
		return y.OrderKey, y.CreatedAt.UnixNano()
	})
	return years, nil
}

func (r *yearRepo) Create(ctx context.Context, y *year.Year) error {
	query := `
		INSERT INTO years (id, label, order_key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.q.Exec(ctx, query, y.ID, y.Label, y.OrderKey, y.Status, y.CreatedAt, y.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert year: %w", err)
	}
	return nil
}

func (r *yearRepo) Update(ctx context.Context, y *year.Year) error {
	query := `
		UPDATE years
		SET label = $2, order_key = $3, status = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, y.ID, y.Label, y.OrderKey, y.Status, y.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update year: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return year.ErrYearNotFound
	}
	return nil
}

func (r *yearRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM years WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete year: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return year.ErrYearNotFound
	}
	return nil
}

type locationRepo struct {
	q queryer
}

const locationColumns = "id, year_id, slug, name, summary, cover_asset_id, order_key, created_at, updated_at"

func scanLocation(row pgx.Row, l *location.Location) error {
	return row.Scan(&l.ID, &l.YearID, &l.Slug, &l.Name, &l.Summary, &l.CoverAssetID,
		&l.OrderKey, &l.CreatedAt, &l.UpdatedAt)
}

func (r *locationRepo) GetByID(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	query := fmt.Sprintf("SELECT %s FROM locations WHERE id = $1", locationColumns)

	var l location.Location
	if err := scanLocation(r.q.QueryRow(ctx, query, id), &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, location.ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to query location: %w", err)
	}
	return &l, nil
}

func (r *locationRepo) ListByYear(ctx context.Context, yearID uuid.UUID) ([]location.Location, error) {
	query := fmt.Sprintf("SELECT %s FROM locations WHERE year_id = $1 ORDER BY created_at", locationColumns)

	rows, err := r.q.Query(ctx, query, yearID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		var l location.Location
		if err := scanLocation(rows, &l); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read locations: %w", err)
	}

	sortByPosition(locations, func(l location.Location) (string, int64) {
		return l.OrderKey, l.CreatedAt.UnixNano()
	})
	return locations, nil
}

func (r *locationRepo) ExistsSlug(ctx context.Context, yearID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM locations
			WHERE year_id = $1 AND slug = $2 AND id <> $3
		)`

	var exists bool
	if err := r.q.QueryRow(ctx, query, yearID, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check location slug: %w", err)
	}
	return exists, nil
}

func (r *locationRepo) Create(ctx context.Context, l *location.Location) error {
	query := `
		INSERT INTO locations (id, year_id, slug, name, summary, cover_asset_id, order_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := r.q.Exec(ctx, query,
		l.ID, l.YearID, l.Slug, l.Name, l.Summary, l.CoverAssetID, l.OrderKey, l.CreatedAt, l.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert location: %w", err)
	}
	return nil
}

func (r *locationRepo) Update(ctx context.Context, l *location.Location) error {
	query := `
		UPDATE locations
		SET slug = $2, name = $3, summary = $4, cover_asset_id = $5, order_key = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query,
		l.ID, l.Slug, l.Name, l.Summary, l.CoverAssetID, l.OrderKey, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}
	return nil
}

func (r *locationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM locations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return location.ErrLocationNotFound
	}
	return nil
}
