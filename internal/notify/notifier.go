// Package notify renders event messages and delivers them to the configured
// sinks. Sinks are independent; one failing never stops the others.
package notify

import (
	"context"
	"net/http"
	"time"
)

// Notifier delivers one already-rendered message to one destination
type Notifier interface {
	// Name identifies the sink in logs and metrics
	Name() string
	Send(ctx context.Context, message string) error
}

// newHTTPClient returns the client a webhook sink delivers through.
// Webhook endpoints answer fast or not at all; a request that takes longer
// than this has failed.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}
