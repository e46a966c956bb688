package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/mark3labs/tokenforge/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with consistent styling. At most one
// button is focused; disabled buttons are skipped by focus movement.
type ButtonBar struct {
	buttons []Button
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Buttons returns a copy of the buttons.
func (b *ButtonBar) Buttons() []Button {
	return append([]Button(nil), b.buttons...)
}

// FocusedButton returns the index of the focused button, or -1.
func (b *ButtonBar) FocusedButton() int {
	for i, btn := range b.buttons {
		if btn.State == ButtonFocused {
			return i
		}
	}
	return -1
}

// Focus moves focus to button i if it is enabled.
func (b *ButtonBar) Focus(i int) bool {
	if i < 0 || i >= len(b.buttons) || b.buttons[i].State == ButtonDisabled {
		return false
	}
	b.Blur()
	b.buttons[i].State = ButtonFocused
	return true
}

// FocusNext moves focus right, wrapping around.
func (b *ButtonBar) FocusNext() {
	b.move(1)
}

// FocusPrev moves focus left, wrapping around.
func (b *ButtonBar) FocusPrev() {
	b.move(-1)
}

func (b *ButtonBar) move(dir int) {
	n := len(b.buttons)
	if n == 0 {
		return
	}
	start := b.FocusedButton()
	if start < 0 {
		start = -1
		if dir < 0 {
			start = n
		}
	}
	for step := 1; step <= n; step++ {
		i := ((start+dir*step)%n + n) % n
		if b.Focus(i) {
			return
		}
	}
}

// Blur clears focus.
func (b *ButtonBar) Blur() {
	for i := range b.buttons {
		if b.buttons[i].State == ButtonFocused {
			b.buttons[i].State = ButtonNormal
		}
	}
}

// Render renders the button bar centered in its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}
	s := theme.Current().S()

	rendered := make([]string, 0, len(b.buttons))
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

// CreateBackNextButtons creates the standard Back/Next pair. The next button
// is focused when enabled so Enter always has a visible target.
func CreateBackNextButtons(backEnabled, nextEnabled bool, nextLabel string) []Button {
	back := Button{Label: "← Back", State: ButtonNormal}
	if !backEnabled {
		back.State = ButtonDisabled
	}
	next := Button{Label: nextLabel, State: ButtonFocused}
	if !nextEnabled {
		next.State = ButtonDisabled
	}
	return []Button{back, next}
}
