package components

import (
	"strings"

	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/tokenforge/internal/guidance"
	"github.com/mark3labs/tokenforge/internal/logger"
)

// GuidancePanel renders help entries as markdown. The last rendering is
// cached because View runs on every frame.
type GuidancePanel struct {
	title    string
	width    int
	rendered string
}

// Render returns the entry rendered for width columns.
func (g *GuidancePanel) Render(e guidance.Entry, width int) string {
	if e.Title == g.title && width == g.width && g.rendered != "" {
		return g.rendered
	}
	g.title = e.Title
	g.width = width
	g.rendered = RenderMarkdown(e.Markdown(), width)
	return g.rendered
}

// RenderMarkdown renders markdown content using glamour.
// Falls back to plain text wrapping if rendering fails.
func RenderMarkdown(content string, width int) string {
	// Cap width to 120 for readability
	if width > 120 {
		width = 120
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logger.Warn("markdown renderer: %v", err)
		return wrapText(content, width)
	}

	rendered, err := r.Render(content)
	if err != nil {
		logger.Warn("markdown render: %v", err)
		return wrapText(content, width)
	}

	// Remove trailing newline that glamour adds
	return strings.TrimSuffix(rendered, "\n")
}

func wrapText(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(content)
}
