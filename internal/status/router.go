package status

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcoot/palnotify/internal/dependencies/clock"
	"github.com/mcoot/palnotify/internal/metrics"
	"github.com/mcoot/palnotify/internal/middleware"
	"github.com/mcoot/palnotify/internal/watch"
)

// WatcherSource exposes the loop state the status endpoint reports
type WatcherSource interface {
	Status() watch.Status
}

// RouterConfig holds configuration for the status router
type RouterConfig struct {
	Logger  *slog.Logger
	Watcher WatcherSource
	Metrics *metrics.Metrics
	Clock   clock.Clock
}

// NewRouter creates the status router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/status", statusHandler(cfg.Watcher, cfg.Clock)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusResponse struct {
	UptimeSeconds float64      `json:"uptime_seconds"`
	Watcher       watch.Status `json:"watcher"`
}

func statusHandler(source WatcherSource, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		st := source.Status()

		var uptime time.Duration
		if !st.StartedAt.IsZero() {
			uptime = clk.Now().Sub(st.StartedAt)
		}

		JSON(w, http.StatusOK, statusResponse{
			UptimeSeconds: uptime.Seconds(),
			Watcher:       st,
		})
	}
}
