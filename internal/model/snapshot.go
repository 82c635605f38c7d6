package model

import (
	"sort"
	"time"
)

// Snapshot is the set of players connected at a single poll, keyed by steamid
type Snapshot struct {
	players map[SteamID]Player
	TakenAt time.Time
}

// NewSnapshot builds a snapshot from already-deduplicated player records
func NewSnapshot(players []Player, takenAt time.Time) Snapshot {
	m := make(map[SteamID]Player, len(players))
	for _, p := range players {
		m[p.SteamID] = p
	}
	return Snapshot{players: m, TakenAt: takenAt}
}

// Len returns the number of connected players
func (s Snapshot) Len() int {
	return len(s.players)
}

// Has reports whether a player with the given steamid is connected
func (s Snapshot) Has(id SteamID) bool {
	_, ok := s.players[id]
	return ok
}

// Players returns the snapshot's records sorted by steamid
func (s Snapshot) Players() []Player {
	out := make([]Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sortPlayers(out)
	return out
}

// Delta is the change between two snapshots. Joined and Left are disjoint
// and each sorted by steamid.
type Delta struct {
	Joined []Player
	Left   []Player
}

// Empty reports whether the delta contains no changes
func (d Delta) Empty() bool {
	return len(d.Joined) == 0 && len(d.Left) == 0
}

// Diff compares two snapshots by steamid. A steamid present in both sides
// contributes nothing, even if the player's name changed between polls.
func Diff(prev, curr Snapshot) Delta {
	var d Delta
	for id, p := range curr.players {
		if _, ok := prev.players[id]; !ok {
			d.Joined = append(d.Joined, p)
		}
	}
	for id, p := range prev.players {
		if _, ok := curr.players[id]; !ok {
			d.Left = append(d.Left, p)
		}
	}
	sortPlayers(d.Joined)
	sortPlayers(d.Left)
	return d
}

func sortPlayers(players []Player) {
	sort.Slice(players, func(i, j int) bool {
		return players[i].SteamID < players[j].SteamID
	})
}
