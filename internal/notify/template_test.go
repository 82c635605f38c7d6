package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/palnotify/internal/model"
)

func TestRenderTemplate(t *testing.T) {
	alice := model.Player{Name: "Alice", PlayerUID: "112233", SteamID: "76561198000000001"}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "all placeholders",
			template: "{name} ({steamid}, uid {playeruid})",
			want:     "Alice (76561198000000001, uid 112233)",
		},
		{
			name:     "default join template",
			template: "{name} ({steamid}) has joined the server.",
			want:     "Alice (76561198000000001) has joined the server.",
		},
		{
			name:     "no placeholders",
			template: "someone joined",
			want:     "someone joined",
		},
		{
			name:     "unknown placeholder passes through",
			template: "{name} at {location}",
			want:     "Alice at {location}",
		},
		{
			name:     "repeated placeholder",
			template: "{name} {name}",
			want:     "Alice Alice",
		},
		{
			name:     "empty template",
			template: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderTemplate(tt.template, alice))
		})
	}
}

func TestRenderTemplatePlaceholderValuesAreLiteral(t *testing.T) {
	// A player name containing a placeholder must not be expanded again
	p := model.Player{Name: "{steamid}", PlayerUID: "1", SteamID: "76561198000000009"}

	assert.Equal(t, "{steamid} 76561198000000009", RenderTemplate("{name} {steamid}", p))
}
