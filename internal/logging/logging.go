package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelCritical sits above slog's built-in levels, for failures the process
// cannot continue from
const LevelCritical = slog.LevelError + 4

// Output formats accepted by New
const (
	FormatText = "text"
	FormatJSON = "json"
)

var levelNames = map[string]slog.Level{
	"CRITICAL": LevelCritical,
	"FATAL":    LevelCritical,
	"ERROR":    slog.LevelError,
	"WARNING":  slog.LevelWarn,
	"WARN":     slog.LevelWarn,
	"INFO":     slog.LevelInfo,
	"DEBUG":    slog.LevelDebug,
	"NOTSET":   slog.LevelDebug,
}

// ParseLevel maps a configured level name onto a slog level. Names are
// case-insensitive; FATAL, WARN and NOTSET are accepted as aliases.
func ParseLevel(name string) (slog.Level, error) {
	level, ok := levelNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unrecognized log level %q", name)
	}
	return level, nil
}

// Config controls construction of the process logger
type Config struct {
	Level  string
	Format string

	// File enables rotating file output alongside stdout when non-empty
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultConfig returns stdout-only text logging at info level
func DefaultConfig() Config {
	return Config{
		Level:      "INFO",
		Format:     FormatText,
		MaxSizeMB:  20,
		MaxBackups: 90,
		MaxAgeDays: 90,
	}
}

// New builds the process logger
func New(cfg Config) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
	}

	handler, err := newHandler(out, cfg.Format, level)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

func newHandler(out io.Writer, format string, level slog.Level) (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: renameCustomLevels,
	}

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(out, opts), nil
	case FormatText, "":
		return slog.NewTextHandler(out, opts), nil
	default:
		return nil, fmt.Errorf("unrecognized log format %q", format)
	}
}

// renameCustomLevels gives LevelCritical a stable name in output instead of
// slog's ERROR+4
func renameCustomLevels(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level >= LevelCritical {
		a.Value = slog.StringValue("CRITICAL")
	}
	return a
}
