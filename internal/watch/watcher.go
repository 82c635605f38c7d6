// Package watch drives the poll loop: fetch the player list, diff it
// against the previous snapshot, dispatch notifications, repeat.
package watch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/palnotify/internal/dependencies/clock"
	"github.com/mcoot/palnotify/internal/metrics"
	"github.com/mcoot/palnotify/internal/model"
)

// PlayerSource is the slice of the RCON client the watcher needs
type PlayerSource interface {
	Players(ctx context.Context) ([]model.Player, error)
}

// EventSink receives the join/leave events the watcher detects. Delivery
// failures are the sink's problem; these calls do not report errors back
// into the loop.
type EventSink interface {
	PlayerJoined(ctx context.Context, p model.Player)
	PlayerLeft(ctx context.Context, p model.Player)
}

// Config holds watcher settings
type Config struct {
	// Interval between polls; validated positive upstream
	Interval time.Duration
}

// Status is the observer-facing view of the loop, served by the status
// endpoint. It is a copy; readers never touch loop state.
type Status struct {
	StartedAt   time.Time      `json:"started_at"`
	LastPollAt  time.Time      `json:"last_poll_at,omitempty"`
	LastPollOK  bool           `json:"last_poll_ok"`
	LastError   string         `json:"last_error,omitempty"`
	PollsOK     uint64         `json:"polls_ok"`
	PollsFailed uint64         `json:"polls_failed"`
	PlayerCount int            `json:"player_count"`
	Players     []model.Player `json:"players"`
}

// Watcher owns the loop and the previous snapshot. The snapshot is only
// ever touched by the loop itself; observers read the published Status.
type Watcher struct {
	cfg     Config
	source  PlayerSource
	sink    EventSink
	clock   clock.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics

	// Loop state, no lock: Run is the only reader and writer
	hasPrev bool
	prev    model.Snapshot

	mu     sync.RWMutex
	status Status
}

// New creates a watcher; Run starts it
func New(cfg Config, source PlayerSource, sink EventSink, clk clock.Clock, logger *slog.Logger, m *metrics.Metrics) *Watcher {
	return &Watcher{
		cfg:     cfg,
		source:  source,
		sink:    sink,
		clock:   clk,
		logger:  logger,
		metrics: m,
	}
}

// Run polls until ctx is cancelled. The first poll happens immediately;
// its snapshot is stored without notifications so that starting the
// watcher against a populated server does not announce a mass join.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	w.status.StartedAt = w.clock.Now()
	w.mu.Unlock()

	w.logger.Info("watcher started", slog.Duration("interval", w.cfg.Interval))

	w.tick(ctx)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// Status returns a copy of the published loop state
func (w *Watcher) Status() Status {
	w.mu.RLock()
	defer w.mu.RUnlock()
	st := w.status
	st.Players = append([]model.Player(nil), w.status.Players...)
	return st
}

// tick runs one poll. A fetch failure skips the tick and leaves the
// previous snapshot untouched; there is no retry beyond the next tick.
func (w *Watcher) tick(ctx context.Context) {
	start := time.Now()
	players, err := w.source.Players(ctx)
	w.metrics.PollDuration.Observe(time.Since(start).Seconds())

	now := w.clock.Now()
	if err != nil {
		w.logger.Error("player list poll failed", slog.Any("error", err))
		w.metrics.PollsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		w.publishFailure(now, err)
		return
	}
	w.metrics.PollsTotal.WithLabelValues(metrics.OutcomeOK).Inc()

	curr := model.NewSnapshot(players, now)
	w.metrics.PlayersOnline.Set(float64(curr.Len()))

	if !w.hasPrev {
		w.logger.Info("initial snapshot taken", slog.Int("players", curr.Len()))
		w.prev = curr
		w.hasPrev = true
		w.publishSuccess(curr)
		return
	}

	delta := model.Diff(w.prev, curr)
	w.announce(ctx, delta, now)

	// An empty snapshot is a valid read; everyone really may have left
	w.prev = curr
	w.publishSuccess(curr)
}

func (w *Watcher) announce(ctx context.Context, delta model.Delta, now time.Time) {
	for _, p := range delta.Joined {
		w.handleEvent(ctx, model.Event{Type: model.EventPlayerJoined, Player: p, Timestamp: now})
	}
	for _, p := range delta.Left {
		w.handleEvent(ctx, model.Event{Type: model.EventPlayerLeft, Player: p, Timestamp: now})
	}
}

func (w *Watcher) handleEvent(ctx context.Context, ev model.Event) {
	w.logger.Info("player event",
		slog.String("type", string(ev.Type)),
		slog.String("name", ev.Player.Name),
		slog.String("steamid", string(ev.Player.SteamID)),
		slog.Time("at", ev.Timestamp))
	w.metrics.EventsTotal.WithLabelValues(string(ev.Type)).Inc()

	switch ev.Type {
	case model.EventPlayerJoined:
		w.sink.PlayerJoined(ctx, ev.Player)
	case model.EventPlayerLeft:
		w.sink.PlayerLeft(ctx, ev.Player)
	}
}

func (w *Watcher) publishSuccess(snap model.Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status.LastPollAt = snap.TakenAt
	w.status.LastPollOK = true
	w.status.LastError = ""
	w.status.PollsOK++
	w.status.PlayerCount = snap.Len()
	w.status.Players = snap.Players()
}

func (w *Watcher) publishFailure(at time.Time, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status.LastPollAt = at
	w.status.LastPollOK = false
	w.status.LastError = err.Error()
	w.status.PollsFailed++
}
