package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/tokenforge/internal/tui/theme"
)

// NewTextInput creates a text input in the modal's style.
func NewTextInput(placeholder string, width int) textinput.Model {
	t := theme.Current()
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	in.SetWidth(width)
	return in
}

// LabeledInput renders a label above an input, marking the focused one.
func LabeledInput(label string, in textinput.Model, focused bool) string {
	s := theme.Current().S()
	marker := "  "
	labelStyle := s.Label
	if focused {
		marker = s.Selected.Render("▸ ")
		labelStyle = s.Selected
	}
	return marker + labelStyle.Render(label) + "\n  " + in.View()
}

// CheckItem is one row of a checklist.
type CheckItem struct {
	Label    string
	Checked  bool
	Disabled bool
	Note     string
}

// RenderChecklist draws items with the row at cursor highlighted.
func RenderChecklist(items []CheckItem, cursor int) string {
	s := theme.Current().S()
	lines := make([]string, 0, len(items))
	for i, it := range items {
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		row := fmt.Sprintf("%s %s", box, it.Label)
		switch {
		case it.Disabled:
			row = s.Muted.Render(row)
		case i == cursor:
			row = s.Selected.Render(row)
		case it.Checked:
			row = s.Text.Render(row)
		default:
			row = s.Label.Render(row)
		}
		prefix := "  "
		if i == cursor {
			prefix = s.Selected.Render("▸ ")
		}
		line := prefix + row
		if it.Note != "" {
			line += "  " + s.Muted.Render(it.Note)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// MoveCursor steps cursor by delta within [0, n), clamping at the ends.
func MoveCursor(cursor, delta, n int) int {
	cursor += delta
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// RenderChoice draws a left/right selector: "‹ MYT ›".
func RenderChoice(label, value string, focused bool) string {
	s := theme.Current().S()
	if value == "" {
		value = "choose"
	}
	marker := "  "
	labelStyle := s.Label
	valueStyle := s.Text
	if focused {
		marker = s.Selected.Render("▸ ")
		labelStyle = s.Selected
		valueStyle = s.Value
	}
	return marker + labelStyle.Render(label) + "\n  " +
		s.Muted.Render("‹ ") + valueStyle.Render(value) + s.Muted.Render(" ›")
}

// Cycle returns the option delta steps from current, wrapping. An unknown
// current starts from before the first option.
func Cycle(options []string, current string, delta int) string {
	n := len(options)
	if n == 0 {
		return current
	}
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if delta > 0 {
			return options[0]
		}
		return options[n-1]
	}
	return options[((idx+delta)%n+n)%n]
}

// KeyValue renders an aligned "label  value" row.
func KeyValue(label, value string, labelWidth int) string {
	s := theme.Current().S()
	return s.Label.Width(labelWidth).Render(label) + s.Value.Render(value)
}
