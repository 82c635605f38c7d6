package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mcoot/palnotify/internal/model"
)

// Line posts messages to the LINE Notify API as the token's owner
type Line struct {
	api    string
	token  string
	client *http.Client
}

var _ Notifier = (*Line)(nil)

// NewLine creates a sink for the given API endpoint and personal token
func NewLine(api, token string) *Line {
	return &Line{
		api:    api,
		token:  token,
		client: newHTTPClient(),
	}
}

// Name implements Notifier
func (l *Line) Name() string {
	return "line"
}

// Send implements Notifier
func (l *Line) Send(ctx context.Context, message string) error {
	form := url.Values{"message": {message}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.api, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building line request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+l.token)

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to line notify: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("line notify: %w: %s", model.ErrUnexpectedStatus, resp.Status)
	}
	return nil
}
