package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gallery-backend/internal/domains/audit"
)

type auditRepo struct {
	q queryer
}

const auditColumns = "id, actor, actor_type, entity_type, entity_id, action, payload, created_at"

func (r *auditRepo) Append(ctx context.Context, entry *audit.Entry) error {
	query := `
		INSERT INTO audit_log (id, actor, actor_type, entity_type, entity_id, action, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := r.q.Exec(ctx, query,
		entry.ID, entry.Actor, entry.ActorType, entry.EntityType, entry.EntityID,
		entry.Action, entry.Payload, entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *auditRepo) Query(ctx context.Context, filter audit.Filter) ([]audit.Entry, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filter.EntityType != "" {
		conditions = append(conditions, fmt.Sprintf("entity_type = $%d", argIndex))
		args = append(args, filter.EntityType)
		argIndex++
	}
	if filter.EntityID != "" {
		conditions = append(conditions, fmt.Sprintf("entity_id = $%d", argIndex))
		args = append(args, filter.EntityID)
		argIndex++
	}
	if filter.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argIndex))
		args = append(args, filter.Action)
		argIndex++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIndex))
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argIndex))
		args = append(args, *filter.To)
		argIndex++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM audit_log WHERE %s", whereClause)
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM audit_log WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		auditColumns, whereClause, argIndex, argIndex+1,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(
			&e.ID, &e.Actor, &e.ActorType, &e.EntityType, &e.EntityID,
			&e.Action, &e.Payload, &e.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read audit entries: %w", err)
	}

	return entries, total, nil
}

func (r *auditRepo) CountBefore(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx,
		"SELECT COUNT(*) FROM audit_log WHERE created_at < $1", cutoff,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count audit entries before cutoff: %w", err)
	}
	return count, nil
}

func (r *auditRepo) OldestTimestamp(ctx context.Context) (*time.Time, error) {
	var oldest *time.Time
	if err := r.q.QueryRow(ctx, "SELECT MIN(created_at) FROM audit_log").Scan(&oldest); err != nil {
		return nil, fmt.Errorf("failed to query oldest audit entry: %w", err)
	}
	return oldest, nil
}

func (r *auditRepo) SampleBefore(ctx context.Context, cutoff time.Time, limit int) ([]audit.Entry, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM audit_log WHERE created_at < $1 ORDER BY created_at LIMIT $2",
		auditColumns,
	)

	rows, err := r.q.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to sample audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(
			&e.ID, &e.Actor, &e.ActorType, &e.EntityType, &e.EntityID,
			&e.Action, &e.Payload, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit entries: %w", err)
	}
	return entries, nil
}
