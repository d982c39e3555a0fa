package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"gallery-backend/pkg/container"
)

// startServices performs health checks and starts the health endpoint.
func startServices(c *container.Container) error {
	log.Println("============================================")
	log.Println("🚀 Gallery Worker Starting...")
	log.Println("============================================")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Println("⏳ Checking Redis...")
	if err := c.Cache.Ping(ctx); err != nil {
		log.Printf("❌ Redis: %v\n", err)
		return err
	}
	log.Println("✓ Redis: OK")

	log.Println("⏳ Checking PostgreSQL...")
	if err := c.DB.HealthCheck(ctx); err != nil {
		log.Printf("❌ PostgreSQL: %v\n", err)
		return err
	}
	log.Println("✓ PostgreSQL: OK")

	go startHealthCheckServer()
	return nil
}

// startHealthCheckServer serves liveness and readiness probes.
func startHealthCheckServer() {
	http.HandleFunc("/health", healthCheckHandler)
	http.HandleFunc("/ready", readyCheckHandler)

	log.Println("[Health] Starting health check server on :9999")
	if err := http.ListenAndServe(":9999", nil); err != nil {
		log.Printf("[Health] Failed to start: %v\n", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"UP","service":"gallery-worker"}`))
}

func readyCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"READY"}`))
}
