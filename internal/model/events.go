package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
)

// Event is a single observed change to the server's player list
type Event struct {
	Type      EventType
	Player    Player
	Timestamp time.Time
}
