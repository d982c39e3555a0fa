package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"gallery-backend/internal/domains/location"
	"gallery-backend/internal/domains/year"
	"gallery-backend/pkg/ordering"
)

type yearRepo struct {
	s *Store
}

func (r *yearRepo) GetByID(ctx context.Context, id uuid.UUID) (*year.Year, error) {
	defer r.s.rlock()()

	y, ok := r.s.data.years[id]
	if !ok {
		return nil, year.ErrYearNotFound
	}
	return &y, nil
}

func (r *yearRepo) List(ctx context.Context) ([]year.Year, error) {
	defer r.s.rlock()()

	years := make([]year.Year, 0, len(r.s.data.years))
	for _, y := range r.s.data.years {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool {
		if cmp := ordering.Compare(years[i].OrderKey, years[j].OrderKey); cmp != 0 {
			return cmp < 0
		}
		return years[i].CreatedAt.Before(years[j].CreatedAt)
	})
	return years, nil
}

func (r *yearRepo) Create(ctx context.Context, y *year.Year) error {
	defer r.s.lock()()

	r.s.data.years[y.ID] = *y
	return nil
}

func (r *yearRepo) Update(ctx context.Context, y *year.Year) error {
	defer r.s.lock()()

	if _, ok := r.s.data.years[y.ID]; !ok {
		return year.ErrYearNotFound
	}
	r.s.data.years[y.ID] = *y
	return nil
}

func (r *yearRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock()()

	if _, ok := r.s.data.years[id]; !ok {
		return year.ErrYearNotFound
	}
	delete(r.s.data.years, id)
	return nil
}

type locationRepo struct {
	s *Store
}

func (r *locationRepo) GetByID(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	defer r.s.rlock()()

	l, ok := r.s.data.locations[id]
	if !ok {
		return nil, location.ErrLocationNotFound
	}
	return &l, nil
}

func (r *locationRepo) ListByYear(ctx context.Context, yearID uuid.UUID) ([]location.Location, error) {
	defer r.s.rlock()()

	var locations []location.Location
	for _, l := range r.s.data.locations {
		if l.YearID == yearID {
			locations = append(locations, l)
		}
	}
	sort.Slice(locations, func(i, j int) bool {
		if cmp := ordering.Compare(locations[i].OrderKey, locations[j].OrderKey); cmp != 0 {
			return cmp < 0
		}
		return locations[i].CreatedAt.Before(locations[j].CreatedAt)
	})
	return locations, nil
}

func (r *locationRepo) ExistsSlug(ctx context.Context, yearID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	defer r.s.rlock()()

	for _, l := range r.s.data.locations {
		if l.YearID == yearID && l.Slug == slug && l.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *locationRepo) Create(ctx context.Context, l *location.Location) error {
	defer r.s.lock()()

	r.s.data.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) Update(ctx context.Context, l *location.Location) error {
	defer r.s.lock()()

	if _, ok := r.s.data.locations[l.ID]; !ok {
		return location.ErrLocationNotFound
	}
	r.s.data.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock()()

	if _, ok := r.s.data.locations[id]; !ok {
		return location.ErrLocationNotFound
	}
	delete(r.s.data.locations, id)
	return nil
}
