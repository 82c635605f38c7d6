package palworld

import "time"

// Config holds RCON connection settings
type Config struct {
	// Address is the server's host:port RCON endpoint
	Address  string
	Password string

	// Per-call network bounds; each command dials a fresh connection
	DialTimeout    time.Duration
	RequestTimeout time.Duration
}

// DefaultConfig returns sensible defaults for a server on this host
func DefaultConfig() Config {
	return Config{
		Address:        "127.0.0.1:25575",
		DialTimeout:    5 * time.Second,
		RequestTimeout: 5 * time.Second,
	}
}
