package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/palnotify/internal/model"
)

// Output handles formatting command results based on the configured format
type Output struct {
	w      io.Writer
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// playerJSON is the wire shape of one player row in JSON output
type playerJSON struct {
	Name      string `json:"name"`
	PlayerUID string `json:"playeruid"`
	SteamID   string `json:"steamid"`
}

// PrintPlayers writes the player list in the configured format
func (o *Output) PrintPlayers(players []model.Player) error {
	if o.format == "json" {
		rows := make([]playerJSON, 0, len(players))
		for _, p := range players {
			rows = append(rows, playerJSON{
				Name:      p.Name,
				PlayerUID: p.PlayerUID,
				SteamID:   string(p.SteamID),
			})
		}
		enc := json.NewEncoder(o.w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(players) == 0 {
		_, err := fmt.Fprintln(o.w, "No players connected")
		return err
	}

	fmt.Fprintf(o.w, "Players (%d):\n", len(players))
	for _, p := range players {
		fmt.Fprintf(o.w, "  - %s (steamid %s, uid %s)\n", p.Name, p.SteamID, p.PlayerUID)
	}
	return nil
}
