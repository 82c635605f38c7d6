package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/palnotify/internal/logging"
)

// Configuration errors
var (
	ErrMissingPassword  = errors.New("password must be set")
	ErrInvalidPort      = errors.New("port must be between 1 and 65535")
	ErrInvalidWaitTime  = errors.New("wait_time must be at least 1 second")
	ErrInvalidTimeout   = errors.New("timeouts must be positive")
	ErrInvalidLogFormat = errors.New("log_format must be text or json")
)

// DefaultLineNotifyAPI is LINE's public Notify endpoint; overridable for
// self-hosted relays and tests
const DefaultLineNotifyAPI = "https://notify-api.line.me/api/notify"

// Config holds everything palnotify needs, loaded once at startup
type Config struct {
	// RCON connection
	IP             string
	Port           int
	Password       string
	DialTimeout    time.Duration
	RequestTimeout time.Duration

	// Notification sinks; a sink is disabled when its key is empty
	LineNotifyAPI     string
	LineNotifyToken   string
	DiscordWebhookURL string

	// Webhook message templates
	JoinMessage  string
	LeaveMessage string

	// In-game broadcast, off unless BroadcastMessages is set
	BroadcastMessages     bool
	JoinBroadcastMessage  string
	LeaveBroadcastMessage string

	// Poll interval
	WaitTime time.Duration

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string

	// Status/metrics HTTP listener, disabled when empty
	StatusListen string
}

// DefaultConfig returns the built-in defaults applied before file and
// environment values
func DefaultConfig() Config {
	return Config{
		IP:                    "127.0.0.1",
		Port:                  25575,
		DialTimeout:           5 * time.Second,
		RequestTimeout:        5 * time.Second,
		LineNotifyAPI:         DefaultLineNotifyAPI,
		JoinMessage:           "{name} ({steamid}) has joined the server.",
		LeaveMessage:          "{name} ({steamid}) has left the server.",
		JoinBroadcastMessage:  "{name} ({steamid}) has joined the server.",
		LeaveBroadcastMessage: "{name} ({steamid}) has left the server.",
		WaitTime:              5 * time.Second,
		LogLevel:              "INFO",
		LogFormat:             logging.FormatText,
	}
}

// Load reads configuration from a .env style key-value file, overlays
// same-named upper-case environment variables on top, and validates the
// result. A missing file is tolerated; the environment alone may carry
// everything. Unknown keys are ignored.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	fileVals := map[string]string{}
	if path != "" {
		vals, err := godotenv.Read(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err == nil {
			fileVals = vals
		}
	}

	get := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(strings.ToUpper(key)); ok {
			return v, true
		}
		if v, ok := fileVals[key]; ok {
			return v, true
		}
		v, ok := fileVals[strings.ToUpper(key)]
		return v, ok
	}

	setString := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := get(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		*dst = n
		return nil
	}
	setBool := func(key string, dst *bool) error {
		v, ok := get(key)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		*dst = b
		return nil
	}
	setSeconds := func(key string, dst *time.Duration) error {
		v, ok := get(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		*dst = time.Duration(n) * time.Second
		return nil
	}

	setString("ip", &cfg.IP)
	setString("password", &cfg.Password)
	setString("line_notify_api", &cfg.LineNotifyAPI)
	setString("line_notify_token", &cfg.LineNotifyToken)
	setString("discord_webhook_url", &cfg.DiscordWebhookURL)
	setString("join_message", &cfg.JoinMessage)
	setString("leave_message", &cfg.LeaveMessage)
	setString("join_broadcast_message", &cfg.JoinBroadcastMessage)
	setString("leave_broadcast_message", &cfg.LeaveBroadcastMessage)
	setString("log_level", &cfg.LogLevel)
	setString("log_format", &cfg.LogFormat)
	setString("log_file", &cfg.LogFile)
	setString("status_listen", &cfg.StatusListen)

	if err := setInt("port", &cfg.Port); err != nil {
		return Config{}, err
	}
	if err := setBool("broadcast_messages", &cfg.BroadcastMessages); err != nil {
		return Config{}, err
	}
	if err := setSeconds("wait_time", &cfg.WaitTime); err != nil {
		return Config{}, err
	}
	if err := setSeconds("dial_timeout", &cfg.DialTimeout); err != nil {
		return Config{}, err
	}
	if err := setSeconds("request_timeout", &cfg.RequestTimeout); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks constraints that must hold before the watcher starts
func (c Config) Validate() error {
	if c.Password == "" {
		return ErrMissingPassword
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Port)
	}
	if c.WaitTime < time.Second {
		return fmt.Errorf("%w: got %s", ErrInvalidWaitTime, c.WaitTime)
	}
	if c.DialTimeout <= 0 || c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != logging.FormatText && c.LogFormat != logging.FormatJSON {
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.LogFormat)
	}
	return nil
}

// RCONAddress returns the host:port the RCON client should dial
func (c Config) RCONAddress() string {
	return net.JoinHostPort(c.IP, strconv.Itoa(c.Port))
}

// LoggingConfig maps the logging keys onto the logging package's config
func (c Config) LoggingConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.LogLevel
	lc.Format = c.LogFormat
	lc.File = c.LogFile
	return lc
}
