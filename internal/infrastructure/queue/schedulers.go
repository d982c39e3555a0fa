package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"gallery-backend/internal/config"
	"gallery-backend/internal/shared"
	"gallery-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	audit     config.AuditConfig
}

func NewScheduler(redisAddress string, audit config.AuditConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		audit:     audit,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerRetentionReportJob()
}

// ================================================
// Retention Report (Daily at 2 AM)
// ================================================
// Reports what an audit-log purge at the configured horizon would remove.
// The purge itself runs elsewhere; this job only surfaces the numbers.
func (s *Scheduler) registerRetentionReportJob() error {
	payload, err := json.Marshal(shared.RetentionReportPayload{
		RetentionDays: s.audit.RetentionDays,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRetentionReport, payload)

	_, err = s.scheduler.Register(
		"0 2 * * *", // Daily at 2 AM
		task,
		asynq.Queue("low"),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register RetentionReport job", err)
		return err
	}

	logger.Info("✓ Registered RetentionReport: daily at 2 AM", map[string]interface{}{
		"retention_days": s.audit.RetentionDays,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
