package components

import (
	"strings"

	"github.com/mark3labs/tokenforge/internal/tui/theme"
)

// RenderHintBar renders key/description pairs.
// Example: RenderHintBar("tab", "next field", "esc", "back")
// Returns: "tab next field • esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}
	s := theme.Current().S()

	var sb strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			sb.WriteString(" " + s.HintSeparator.Render("•") + " ")
		}
		sb.WriteString(s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1]))
	}
	return sb.String()
}
