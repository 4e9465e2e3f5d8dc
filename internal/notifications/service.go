package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tubemap/internal/config"
)

const userAgent = "Tubemap-Go/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifyRunStarted(ctx context.Context, query string, candidates int) error
	NotifyRunCompleted(ctx context.Context, persisted, skipped, failed int, duration time.Duration) error
	NotifyPlacePersisted(ctx context.Context, placeName, sink string) error
	NotifyPrimaryDegraded(ctx context.Context, fallbackPath string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint:     topic,
		client:       client,
		runSummaries: cfg.Notifications.RunSummaries,
		errors:       cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint     string
	client       *http.Client
	runSummaries bool
	errors       bool
}

func (n *ntfyService) NotifyRunStarted(ctx context.Context, query string, candidates int) error {
	if !n.runSummaries {
		return nil
	}
	query = strings.TrimSpace(query)
	data := payload{
		title:   "Tubemap - Run Started",
		message: fmt.Sprintf("Searching %q: %d candidate videos", query, candidates),
		tags:    []string{"tubemap", "run", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, persisted, skipped, failed int, duration time.Duration) error {
	if !n.runSummaries {
		return nil
	}
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	durationText := duration.String()
	if duration == 0 {
		durationText = "0s"
	}

	var title string
	var message string
	if failed == 0 {
		title = "Tubemap - Run Complete"
		message = fmt.Sprintf("Run complete: %d places persisted, %d videos skipped in %s", persisted, skipped, durationText)
	} else {
		title = "Tubemap - Run Complete (with errors)"
		message = fmt.Sprintf("Run complete: %d persisted, %d skipped, %d failed in %s", persisted, skipped, failed, durationText)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"tubemap", "run", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPlacePersisted(ctx context.Context, placeName, sink string) error {
	if !n.runSummaries {
		return nil
	}
	placeName = strings.TrimSpace(placeName)
	sink = strings.TrimSpace(sink)
	message := fmt.Sprintf("New place saved: %s", placeName)
	if sink != "" && sink != "primary" {
		message = fmt.Sprintf("%s (via %s store)", message, sink)
	}
	data := payload{
		title:   "Tubemap - Place Saved",
		message: message,
		tags:    []string{"tubemap", "place", "saved"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPrimaryDegraded(ctx context.Context, fallbackPath string) error {
	if !n.errors {
		return nil
	}
	fallbackPath = strings.TrimSpace(fallbackPath)
	data := payload{
		title:    "Tubemap - Store Degraded",
		message:  fmt.Sprintf("Primary store unavailable, writing to %s\nRun `tubemap reconcile` once the database is back", fallbackPath),
		tags:     []string{"tubemap", "store", "degraded"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Tubemap - Error",
		message:  builder.String(),
		tags:     []string{"tubemap", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Tubemap - Test",
		message:  "Notification system test",
		tags:     []string{"tubemap", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunStarted(context.Context, string, int) error                 { return nil }
func (noopService) NotifyRunCompleted(context.Context, int, int, int, time.Duration) error { return nil }
func (noopService) NotifyPlacePersisted(context.Context, string, string) error          { return nil }
func (noopService) NotifyPrimaryDegraded(context.Context, string) error                 { return nil }
func (noopService) NotifyError(context.Context, error, string) error                    { return nil }
func (noopService) TestNotification(context.Context) error                              { return nil }
