package cli

import (
	"context"
	"log/slog"

	"github.com/mcoot/palnotify/internal/factory"
)

// runDaemon builds the application and runs the watcher until the context
// is cancelled. The optional status server runs alongside and is shut down
// after the watcher stops.
func runDaemon(ctx context.Context, cfg factory.Config) error {
	app, err := factory.New(cfg)
	if err != nil {
		return err
	}

	logger := app.Logger
	logger.Info("palnotify starting",
		slog.String("server", app.Config.RCONAddress()),
		slog.Duration("interval", app.Config.WaitTime),
		slog.Int("sinks", app.Dispatcher.SinkCount()))

	if app.Dispatcher.SinkCount() == 0 {
		logger.Warn("no notification sinks configured; events will only be logged")
	}

	statusErr := make(chan error, 1)
	if app.Status != nil {
		go func() {
			statusErr <- app.Status.Start()
		}()
	}

	runErr := app.Watcher.Run(ctx)

	if app.Status != nil {
		// The run context is already cancelled; shut down on a fresh one
		if err := app.Status.Shutdown(context.Background()); err != nil {
			logger.Error("status server shutdown failed", slog.Any("error", err))
		}
		if err := <-statusErr; err != nil {
			logger.Error("status server failed", slog.Any("error", err))
		}
	}

	return runErr
}
