package service

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"beacon-attendance/core/config"
	"beacon-attendance/core/constants"
	"beacon-attendance/core/logger"
	"beacon-attendance/core/queue"

	"github.com/hibiken/asynq"
)

// TaskMeetingStarting is the asynq task type carrying a PushMessage.
const TaskMeetingStarting = "notification:meeting_starting"

var ErrSenderNotConfigured = stderrors.New("push sender is not configured")

// PushMessage is one push event addressed to a batch of devices.
type PushMessage struct {
	PlayerIDs []string       `json:"player_ids"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, msg PushMessage) error
}

// OneSignalSender posts push notifications to the OneSignal REST API.
type OneSignalSender struct {
	appID  string
	apiKey string
	url    string
	client *http.Client
}

func NewOneSignalSender(cfg config.OneSignalConfig) *OneSignalSender {
	return &OneSignalSender{
		appID:  cfg.AppID,
		apiKey: cfg.RestAPIKey,
		url:    cfg.APIURL,
		client: &http.Client{Timeout: constants.DefaultTimeout},
	}
}

func (s *OneSignalSender) Send(ctx context.Context, msg PushMessage) error {
	if s.appID == "" || s.apiKey == "" {
		return ErrSenderNotConfigured
	}
	if len(msg.PlayerIDs) == 0 {
		return nil
	}

	body := map[string]any{
		"app_id":             s.appID,
		"include_player_ids": msg.PlayerIDs,
		"headings":           map[string]string{"en": msg.Title},
		"contents":           map[string]string{"en": msg.Message},
	}
	if len(msg.Data) > 0 {
		body["data"] = msg.Data
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Basic "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("OneSignalSender:Send:DoRequest", "error", err)
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Error("OneSignalSender:Send:APIError", "status", resp.StatusCode, "body", string(respBody))
		return fmt.Errorf("onesignal responded %d", resp.StatusCode)
	}

	logger.Info("OneSignalSender:Send", "recipients", len(msg.PlayerIDs))
	return nil
}

// QueueSender hands push events to the background worker instead of calling
// the provider inline. Deliveries are attempted once.
type QueueSender struct {
	client queue.Enqueuer
}

func NewQueueSender(client queue.Enqueuer) *QueueSender {
	return &QueueSender{client: client}
}

func (s *QueueSender) Send(ctx context.Context, msg PushMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode push task: %w", err)
	}

	task := asynq.NewTask(TaskMeetingStarting, payload,
		asynq.MaxRetry(0),
		asynq.Queue(constants.QueueNotifications),
		asynq.Timeout(30*time.Second),
	)
	info, err := s.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue push task: %w", err)
	}
	logger.Debug("QueueSender:Send", "task_id", info.ID, "recipients", len(msg.PlayerIDs))
	return nil
}

// NewDeliveryHandler returns the worker handler that delivers queued push
// events through sender.
func NewDeliveryHandler(sender Sender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var msg PushMessage
		if err := json.Unmarshal(task.Payload(), &msg); err != nil {
			return fmt.Errorf("decode push task: %v: %w", err, asynq.SkipRetry)
		}
		return sender.Send(ctx, msg)
	}
}
