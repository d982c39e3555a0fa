package memory

import (
	"context"
	"sort"
	"time"

	"gallery-backend/internal/domains/audit"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

type auditRepo struct {
	s *Store
}

func (r *auditRepo) Append(ctx context.Context, entry *audit.Entry) error {
	defer r.s.lock()()

	r.s.data.auditLog = append(r.s.data.auditLog, *entry)
	return nil
}

func (r *auditRepo) Query(ctx context.Context, filter audit.Filter) ([]audit.Entry, int, error) {
	defer r.s.rlock()()

	var matched []audit.Entry
	for _, e := range r.s.data.auditLog {
		if filter.EntityType != "" && e.EntityType != filter.EntityType {
			continue
		}
		if filter.EntityID != "" && e.EntityID != filter.EntityID {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.From != nil && e.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, e)
	}

	// Newest first.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if filter.Offset >= total {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (r *auditRepo) CountBefore(ctx context.Context, cutoff time.Time) (int, error) {
	defer r.s.rlock()()

	count := 0
	for _, e := range r.s.data.auditLog {
		if e.CreatedAt.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

func (r *auditRepo) OldestTimestamp(ctx context.Context) (*time.Time, error) {
	defer r.s.rlock()()

	var oldest *time.Time
	for _, e := range r.s.data.auditLog {
		if oldest == nil || e.CreatedAt.Before(*oldest) {
			ts := e.CreatedAt
			oldest = &ts
		}
	}
	return oldest, nil
}

func (r *auditRepo) SampleBefore(ctx context.Context, cutoff time.Time, limit int) ([]audit.Entry, error) {
	defer r.s.rlock()()

	var matched []audit.Entry
	for _, e := range r.s.data.auditLog {
		if e.CreatedAt.Before(cutoff) {
			matched = append(matched, e)
		}
	}
	// Oldest first: these are the first rows a purge would remove.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
