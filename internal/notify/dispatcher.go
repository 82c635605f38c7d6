package notify

import (
	"context"
	"log/slog"

	"github.com/mcoot/palnotify/internal/metrics"
	"github.com/mcoot/palnotify/internal/model"
)

// Templates holds the message templates for each event. The broadcast
// variants exist because in-game messages cannot carry the same text as a
// chat webhook (the server mangles whitespace) and operators phrase them
// differently.
type Templates struct {
	Join           string
	Leave          string
	JoinBroadcast  string
	LeaveBroadcast string
}

// Dispatcher fans one player event out to every configured sink. Delivery
// is sequential; a failing sink is logged and counted, and the remaining
// sinks are still attempted.
type Dispatcher struct {
	templates Templates
	webhooks  []Notifier
	broadcast Notifier // nil when in-game announcements are disabled
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewDispatcher wires a dispatcher. broadcast may be nil.
func NewDispatcher(templates Templates, webhooks []Notifier, broadcast Notifier, logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		templates: templates,
		webhooks:  webhooks,
		broadcast: broadcast,
		logger:    logger,
		metrics:   m,
	}
}

// SinkCount returns how many sinks are configured
func (d *Dispatcher) SinkCount() int {
	n := len(d.webhooks)
	if d.broadcast != nil {
		n++
	}
	return n
}

// PlayerJoined notifies every sink that a player joined
func (d *Dispatcher) PlayerJoined(ctx context.Context, p model.Player) {
	d.dispatch(ctx, p, d.templates.Join, d.templates.JoinBroadcast)
}

// PlayerLeft notifies every sink that a player left
func (d *Dispatcher) PlayerLeft(ctx context.Context, p model.Player) {
	d.dispatch(ctx, p, d.templates.Leave, d.templates.LeaveBroadcast)
}

func (d *Dispatcher) dispatch(ctx context.Context, p model.Player, webhookTemplate, broadcastTemplate string) {
	message := RenderTemplate(webhookTemplate, p)
	for _, sink := range d.webhooks {
		d.send(ctx, sink, message)
	}
	if d.broadcast != nil {
		d.send(ctx, d.broadcast, RenderTemplate(broadcastTemplate, p))
	}
}

func (d *Dispatcher) send(ctx context.Context, sink Notifier, message string) {
	if err := sink.Send(ctx, message); err != nil {
		d.logger.Error("notification delivery failed",
			slog.String("sink", sink.Name()),
			slog.Any("error", err))
		d.metrics.NotificationsTotal.WithLabelValues(sink.Name(), metrics.OutcomeError).Inc()
		return
	}
	d.logger.Debug("notification delivered",
		slog.String("sink", sink.Name()),
		slog.String("message", message))
	d.metrics.NotificationsTotal.WithLabelValues(sink.Name(), metrics.OutcomeOK).Inc()
}
