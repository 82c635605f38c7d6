// Package factory wires the application together from configuration.
package factory

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/palnotify/internal/config"
	"github.com/mcoot/palnotify/internal/dependencies/clock"
	"github.com/mcoot/palnotify/internal/logging"
	"github.com/mcoot/palnotify/internal/metrics"
	"github.com/mcoot/palnotify/internal/notify"
	"github.com/mcoot/palnotify/internal/palworld"
	"github.com/mcoot/palnotify/internal/status"
	"github.com/mcoot/palnotify/internal/watch"
)

// App contains all wired application components
type App struct {
	Config config.Config
	Logger *slog.Logger

	// External dependencies
	Clock clock.Clock

	// Components
	Metrics    *metrics.Metrics
	Client     *palworld.Client
	Dispatcher *notify.Dispatcher
	Watcher    *watch.Watcher

	// Status is nil unless a status listen address is configured
	Status *status.Server
}

// Config holds configuration for the application factory
type Config struct {
	// ConfigPath is the key-value config file to load; missing files are
	// tolerated when the environment carries the settings
	ConfigPath string
	// LogLevelOverride replaces the configured log level when non-empty
	LogLevelOverride string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	appCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if cfg.LogLevelOverride != "" {
		appCfg.LogLevel = cfg.LogLevelOverride
		if err := appCfg.Validate(); err != nil {
			return nil, fmt.Errorf("applying log level override: %w", err)
		}
	}

	logger, err := logging.New(appCfg.LoggingConfig())
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return newWithDependencies(appCfg, clock.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(appCfg config.Config, clk clock.Clock, logger *slog.Logger) *App {
	m := metrics.New()

	clientCfg := palworld.Config{
		Address:        appCfg.RCONAddress(),
		Password:       appCfg.Password,
		DialTimeout:    appCfg.DialTimeout,
		RequestTimeout: appCfg.RequestTimeout,
	}
	client := palworld.New(clientCfg, logger)

	var webhooks []notify.Notifier
	if appCfg.DiscordWebhookURL != "" {
		webhooks = append(webhooks, notify.NewDiscord(appCfg.DiscordWebhookURL))
	}
	if appCfg.LineNotifyToken != "" {
		webhooks = append(webhooks, notify.NewLine(appCfg.LineNotifyAPI, appCfg.LineNotifyToken))
	}
	var broadcast notify.Notifier
	if appCfg.BroadcastMessages {
		broadcast = notify.NewInGame(client)
	}

	templates := notify.Templates{
		Join:           appCfg.JoinMessage,
		Leave:          appCfg.LeaveMessage,
		JoinBroadcast:  appCfg.JoinBroadcastMessage,
		LeaveBroadcast: appCfg.LeaveBroadcastMessage,
	}
	dispatcher := notify.NewDispatcher(templates, webhooks, broadcast, logger, m)

	watcher := watch.New(watch.Config{Interval: appCfg.WaitTime}, client, dispatcher, clk, logger, m)

	var statusServer *status.Server
	if appCfg.StatusListen != "" {
		router := status.NewRouter(status.RouterConfig{
			Logger:  logger,
			Watcher: watcher,
			Metrics: m,
			Clock:   clk,
		})
		serverCfg := status.DefaultServerConfig()
		serverCfg.ListenAddr = appCfg.StatusListen
		statusServer = status.NewServer(router, serverCfg, logger)
	}

	return &App{
		Config:     appCfg,
		Logger:     logger,
		Clock:      clk,
		Metrics:    m,
		Client:     client,
		Dispatcher: dispatcher,
		Watcher:    watcher,
		Status:     statusServer,
	}
}
