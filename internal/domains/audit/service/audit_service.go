package service

import (
	"context"
	"time"

	model "gallery-backend/internal/domains/audit"
	"gallery-backend/internal/storage"
)

const retentionSampleSize = 10

type AuditService struct {
	store storage.Store
}

func NewService(store storage.Store) model.Service {
	return &AuditService{store: store}
}

func (s *AuditService) Query(ctx context.Context, req model.QueryRequest) (*model.QueryResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Normalize()

	entries, total, err := s.store.Audit().Query(ctx, req.ToFilter())
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.Entry{}
	}

	return &model.QueryResult{
		Results: entries,
		Total:   total,
		Limit:   req.Limit,
		Offset:  req.Offset,
		HasMore: req.Offset+len(entries) < total,
	}, nil
}

func (s *AuditService) PreviewRetention(ctx context.Context, req model.RetentionPreviewRequest) (*model.RetentionPreview, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -req.RetentionDays)

	count, err := s.store.Audit().CountBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	oldest, err := s.store.Audit().OldestTimestamp(ctx)
	if err != nil {
		return nil, err
	}

	sample := []model.Entry{}
	if count > 0 {
		sample, err = s.store.Audit().SampleBefore(ctx, cutoff, retentionSampleSize)
		if err != nil {
			return nil, err
		}
	}

	return &model.RetentionPreview{
		RetentionDays: req.RetentionDays,
		CutoffDate:    cutoff,
		Count:         count,
		OldestLogDate: oldest,
		Sample:        sample,
	}, nil
}
