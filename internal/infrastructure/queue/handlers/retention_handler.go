package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"gallery-backend/internal/domains/audit"
	"gallery-backend/internal/shared"
	"gallery-backend/pkg/logger"
)

// RetentionReportHandler runs the scheduled audit-retention report. It only
// logs what a purge would remove; no rows are deleted.
type RetentionReportHandler struct {
	service audit.Service
}

func NewRetentionReportHandler(service audit.Service) *RetentionReportHandler {
	return &RetentionReportHandler{service: service}
}

func (h *RetentionReportHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.RetentionReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal retention payload: %w", err)
	}

	preview, err := h.service.PreviewRetention(ctx, audit.RetentionPreviewRequest{
		RetentionDays: payload.RetentionDays,
	})
	if err != nil {
		return fmt.Errorf("retention preview: %w", err)
	}

	fields := map[string]interface{}{
		"retention_days": preview.RetentionDays,
		"cutoff_date":    preview.CutoffDate,
		"purgeable":      preview.Count,
	}
	if preview.OldestLogDate != nil {
		fields["oldest_entry"] = *preview.OldestLogDate
	}
	logger.Info("Audit retention report", fields)
	return nil
}
