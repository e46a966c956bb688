package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/mark3labs/tokenforge/internal/tui/theme"
)

// Modal widths.
const (
	MinModalWidth = 60
	MaxModalWidth = 110
)

// ModalWidth clamps the modal to the terminal with a margin.
func ModalWidth(termWidth int) int {
	w := termWidth - 10
	if w < MinModalWidth {
		w = MinModalWidth
	}
	if w > MaxModalWidth {
		w = MaxModalWidth
	}
	return w
}

// InnerWidth is the content width inside a modal of the given width.
func InnerWidth(modalWidth int) int {
	// border (2) + horizontal padding (4)
	return modalWidth - 6
}

// Modal wraps body in the bordered container with a title and centers it.
func Modal(title, body string, termWidth, termHeight int) string {
	s := theme.Current().S()
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.ModalTitle.Render(title),
		"",
		body,
	)
	modal := s.ModalContainer.Width(ModalWidth(termWidth)).Render(content)
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, modal)
}

// Columns lays out main content with a guidance panel to its right when
// there is room, or below it otherwise.
func Columns(main, side string, width int) string {
	if side == "" {
		return main
	}
	s := theme.Current().S()
	if width < 90 {
		return lipgloss.JoinVertical(lipgloss.Left, main, "", side)
	}
	left := width * 55 / 100
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(left).Render(main),
		s.Panel.Width(width-left).Render(side),
	)
}

// SideWidth is the guidance panel's wrap width for Columns.
func SideWidth(width int) int {
	if width < 90 {
		return width
	}
	return width - width*55/100 - 3
}

// Screen draws content onto a full-screen canvas.
func Screen(content string, width, height int) tea.View {
	var view tea.View
	view.AltScreen = true

	canvas := uv.NewScreenBuffer(width, height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: width, Y: height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}
