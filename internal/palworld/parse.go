package palworld

import (
	"fmt"
	"strings"

	"github.com/mcoot/palnotify/internal/model"
)

// parseShowPlayers turns a ShowPlayers response into player records.
//
// The response is CSV with a name,playeruid,steamid header. Player names may
// themselves contain commas, so rows are split from the right. Rows for
// clients that have not finished joining (zero playeruid, or no steamid yet)
// are dropped.
func parseShowPlayers(response string) ([]model.Player, error) {
	var rows []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimRight(line, "\r")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty response", model.ErrMalformedPlayerList)
	}
	if !isHeader(rows[0]) {
		return nil, fmt.Errorf("%w: first line %q is not the expected header", model.ErrMalformedPlayerList, rows[0])
	}

	players := make([]model.Player, 0, len(rows)-1)
	for _, row := range rows[1:] {
		p, ok := parseRow(row)
		if !ok {
			continue
		}
		players = append(players, p)
	}
	return players, nil
}

func isHeader(row string) bool {
	return strings.EqualFold(strings.ReplaceAll(row, " ", ""), "name,playeruid,steamid")
}

func parseRow(row string) (model.Player, bool) {
	parts := strings.Split(row, ",")
	if len(parts) < 3 {
		return model.Player{}, false
	}

	name := strings.TrimSpace(strings.Join(parts[:len(parts)-2], ","))
	uid := strings.TrimSpace(parts[len(parts)-2])
	steamID := strings.TrimSpace(parts[len(parts)-1])

	if steamID == "" || isLoadingUID(uid) {
		return model.Player{}, false
	}

	return model.Player{
		Name:      name,
		PlayerUID: uid,
		SteamID:   model.SteamID(steamID),
	}, true
}

// isLoadingUID reports whether the playeruid column marks a client that has
// not finished joining; the server reports 0 until then
func isLoadingUID(uid string) bool {
	if uid == "" {
		return true
	}
	for _, r := range uid {
		if r != '0' {
			return false
		}
	}
	return true
}
