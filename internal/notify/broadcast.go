package notify

import "context"

// Broadcaster is the slice of the RCON client the broadcast sink needs
type Broadcaster interface {
	Broadcast(ctx context.Context, message string) error
}

// InGame announces messages on the game server itself, riding the same
// dispatch path as the webhook sinks
type InGame struct {
	broadcaster Broadcaster
}

var _ Notifier = (*InGame)(nil)

// NewInGame creates a sink over the given broadcaster
func NewInGame(b Broadcaster) *InGame {
	return &InGame{broadcaster: b}
}

// Name implements Notifier
func (g *InGame) Name() string {
	return "broadcast"
}

// Send implements Notifier
func (g *InGame) Send(ctx context.Context, message string) error {
	return g.broadcaster.Broadcast(ctx, message)
}
