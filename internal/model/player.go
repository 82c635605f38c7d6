package model

// SteamID uniquely identifies a player across polls
type SteamID string

// Player is one row of the server's connected-player list
type Player struct {
	Name      string
	PlayerUID string // in-game UID; zero while the client is still loading
	SteamID   SteamID
}
