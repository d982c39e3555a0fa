package main

import (
	"log"

	"gallery-backend/internal/config"
	"gallery-backend/internal/infrastructure/queue"
)

// asynqScheduler wraps queue.Scheduler with shutdown plumbing.
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(redisAddr string, audit config.AuditConfig) *asynqScheduler {
	scheduler := queue.NewScheduler(redisAddr, audit)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("[Scheduler] Failed to register: %v", err)
	}

	go func() {
		log.Println("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatalf("[Scheduler] Failed: %v", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Println("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Println("[Scheduler] ✓ Stopped")
}
