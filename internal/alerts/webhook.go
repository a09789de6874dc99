package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dhvll/status/internal/config"
	"github.com/dhvll/status/internal/outage"
)

// dispatchTimeout bounds the webhook call. A hung endpoint counts as a
// delivery failure; the services involved are retried on the next run.
const dispatchTimeout = 10 * time.Second

// Dispatcher delivers alert messages to a single configured webhook target.
type Dispatcher struct {
	target config.Webhook
	client *http.Client
}

// NewDispatcher creates a Dispatcher for the given target.
func NewDispatcher(target config.Webhook) *Dispatcher {
	return &Dispatcher{
		target: target,
		client: &http.Client{Timeout: dispatchTimeout},
	}
}

// Send delivers one message covering all outages. Any response outside
// the 2xx range, or any transport failure, is a delivery error.
func (d *Dispatcher) Send(ctx context.Context, outages []outage.Outage) error {
	url := d.target.URL()
	if url == "" {
		return fmt.Errorf("alerts: webhook URL env %q is not set", d.target.URLEnv)
	}

	msg := formatMessage(outages)

	var body []byte
	switch d.target.Type {
	case "slack":
		body, _ = json.Marshal(map[string]string{"text": msg})
	case "teams":
		body, _ = json.Marshal(map[string]interface{}{
			"@type":    "MessageCard",
			"@context": "http://schema.org/extensions",
			"summary":  "Service outage alert",
			"title":    "Service outage alert",
			"text":     msg,
		})
	default: // generic http
		body, _ = json.Marshal(map[string]interface{}{
			"message": msg,
			"outages": payloads(outages),
		})
	}

	return d.post(ctx, url, body)
}

// outagePayload is the per-outage JSON block sent to generic http targets.
type outagePayload struct {
	Service   string    `json:"service"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
	Error     string    `json:"error"`
}

func payloads(outages []outage.Outage) []outagePayload {
	out := make([]outagePayload, 0, len(outages))
	for _, o := range outages {
		out = append(out, outagePayload{
			Service:   o.Service,
			StartedAt: o.StartTime,
			Duration:  FormatDuration(o.Duration),
			Error:     o.Error,
		})
	}
	return out
}

func (d *Dispatcher) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("alerts: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("alerts: http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("alerts: webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
