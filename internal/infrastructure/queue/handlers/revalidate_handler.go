package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"

	"gallery-backend/internal/config"
	"gallery-backend/internal/shared"
	"gallery-backend/pkg/cache"
	"gallery-backend/pkg/logger"
)

// RevalidateTagHandler delivers cache-tag purges to the downstream site.
// The local cache purge already happened in the API process; this handler
// repeats it for safety and then notifies the webhook, signing the body
// with the shared secret.
type RevalidateTagHandler struct {
	cache  cache.Cache
	cfg    config.RevalidateConfig
	client *http.Client
}

func NewRevalidateTagHandler(c cache.Cache, cfg config.RevalidateConfig) *RevalidateTagHandler {
	return &RevalidateTagHandler{
		cache: c,
		cfg:   cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (h *RevalidateTagHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.RevalidateTagPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal revalidate payload: %w", err)
	}
	if payload.Tag == "" {
		return fmt.Errorf("revalidate payload missing tag")
	}

	if err := h.cache.DeletePattern(ctx, "tag:"+payload.Tag+":*"); err != nil {
		logger.Warn("Cache purge failed in worker", map[string]interface{}{
			"tag":   payload.Tag,
			"error": err.Error(),
		})
	}

	if h.cfg.WebhookURL == "" {
		return nil
	}
	return h.notifyWebhook(ctx, payload.Tag)
}

func (h *RevalidateTagHandler) notifyWebhook(ctx context.Context, tag string) error {
	body, err := json.Marshal(map[string]string{"tag": tag})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if h.cfg.WebhookSecret != "" {
		req.Header.Set("X-Signature", sign(body, h.cfg.WebhookSecret))
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("revalidate webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("revalidate webhook returned %d for tag %s", resp.StatusCode, tag)
	}

	logger.Info("Revalidate webhook delivered", map[string]interface{}{
		"tag":    tag,
		"status": resp.StatusCode,
	})
	return nil
}

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
