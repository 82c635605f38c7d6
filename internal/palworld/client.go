package palworld

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gorcon/rcon"

	"github.com/mcoot/palnotify/internal/model"
)

// Client runs commands against a Palworld server's remote console. Every
// call dials a fresh connection; the server drops idle consoles and polls
// are seconds apart, so there is nothing worth keeping open.
type Client struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a client for the given server
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
	}
}

// Players fetches the connected player list. Records still loading in are
// dropped; duplicated steamids keep their first occurrence.
func (c *Client) Players(ctx context.Context) ([]model.Player, error) {
	response, err := c.execute(ctx, commandShowPlayers)
	if err != nil {
		return nil, fmt.Errorf("fetching player list: %w", err)
	}

	parsed, err := parseShowPlayers(response)
	if err != nil {
		return nil, err
	}

	players := make([]model.Player, 0, len(parsed))
	seen := make(map[model.SteamID]struct{}, len(parsed))
	for _, p := range parsed {
		if _, dup := seen[p.SteamID]; dup {
			c.logger.Warn("duplicate steamid in player list",
				slog.String("steamid", string(p.SteamID)),
				slog.String("name", p.Name))
			continue
		}
		seen[p.SteamID] = struct{}{}
		players = append(players, p)
	}
	return players, nil
}

// Broadcast shows a message to everyone in-game
func (c *Client) Broadcast(ctx context.Context, message string) error {
	if _, err := c.execute(ctx, commandBroadcast, broadcastText(message)); err != nil {
		return fmt.Errorf("broadcasting: %w", err)
	}
	return nil
}

// execute runs a single command over a fresh connection. The configured
// timeouts bound the dial and each read/write; cancellation is only
// observed between operations.
func (c *Client) execute(ctx context.Context, command string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	conn, err := rcon.Dial(
		c.cfg.Address,
		c.cfg.Password,
		rcon.SetDialTimeout(c.cfg.DialTimeout),
		rcon.SetDeadline(c.cfg.RequestTimeout),
	)
	if err != nil {
		return "", fmt.Errorf("dialing %s: %w", c.cfg.Address, err)
	}
	defer conn.Close()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	full := command
	if len(args) > 0 {
		full += " " + strings.Join(args, " ")
	}
	response, err := conn.Execute(full)
	if err != nil {
		return "", fmt.Errorf("running %s: %w", command, err)
	}
	return response, nil
}
