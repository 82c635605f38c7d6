package palworld

import "strings"

// RCON commands understood by the server
const (
	commandShowPlayers = "ShowPlayers"
	commandBroadcast   = "Broadcast"
)

// broadcastText escapes a message for the Broadcast command. The server
// splits its arguments on whitespace, so spaces travel as underscores.
func broadcastText(message string) string {
	return strings.ReplaceAll(message, " ", "_")
}
