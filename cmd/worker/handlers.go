package main

import (
	"github.com/hibiken/asynq"

	"gallery-backend/internal/infrastructure/queue/handlers"
	"gallery-backend/internal/shared"
	"gallery-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	revalidateTag   *handlers.RevalidateTagHandler
	retentionReport *handlers.RetentionReportHandler
}

// initializeHandlers creates all job handlers with their dependencies.
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		revalidateTag:   handlers.NewRevalidateTagHandler(c.Cache, c.Config.Revalidate),
		retentionReport: handlers.NewRetentionReportHandler(c.AuditService),
	}
}

// RegisterHandlers registers all handlers with the mux.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeRevalidateTag, h.revalidateTag.ProcessTask)
	mux.HandleFunc(shared.TypeRetentionReport, h.retentionReport.ProcessTask)
}
