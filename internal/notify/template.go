package notify

import (
	"strings"

	"github.com/mcoot/palnotify/internal/model"
)

// RenderTemplate substitutes a player's fields into a message template.
// Recognized placeholders are {name}, {steamid} and {playeruid}; anything
// else in the template passes through untouched.
func RenderTemplate(template string, p model.Player) string {
	r := strings.NewReplacer(
		"{name}", p.Name,
		"{steamid}", string(p.SteamID),
		"{playeruid}", p.PlayerUID,
	)
	return r.Replace(template)
}
