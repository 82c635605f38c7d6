package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mcoot/palnotify/internal/model"
)

// Discord posts messages to a Discord webhook URL
type Discord struct {
	webhookURL string
	client     *http.Client
}

var _ Notifier = (*Discord)(nil)

// NewDiscord creates a sink for the given webhook URL
func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		client:     newHTTPClient(),
	}
}

// Name implements Notifier
func (d *Discord) Name() string {
	return "discord"
}

// Send implements Notifier
func (d *Discord) Send(ctx context.Context, message string) error {
	payload, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return fmt.Errorf("encoding discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to discord webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("discord webhook: %w: %s", model.ErrUnexpectedStatus, resp.Status)
	}
	return nil
}
