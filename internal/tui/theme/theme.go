package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color is a string type
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgBase     string
	BgMantle   string
	BgCrust    string
	BgSurface0 string
	BgSurface1 string
	BgSurface2 string
	BgOverlay  string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	current     *Theme
	currentOnce sync.Once
)

// Current returns the active theme.
func Current() *Theme {
	currentOnce.Do(func() {
		current = NewCatppuccinMocha()
	})
	return current
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	c := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)

	return &Styles{
		HeaderTitle: c(t.Primary).Bold(true),

		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Secondary)).
			Padding(1, 2),
		ModalTitle: c(t.Primary).Bold(true),

		Label:    c(t.FgSubtle),
		Value:    c(t.FgBright).Bold(true),
		Text:     c(t.FgBase),
		Muted:    c(t.FgMuted),
		Error:    c(t.Error),
		Warning:  c(t.Warning),
		Success:  c(t.Success).Bold(true),
		Info:     c(t.Info),
		Selected: c(t.Secondary).Bold(true),

		HintKey:       c(t.FgSubtle).Bold(true),
		HintDesc:      c(t.FgMuted),
		HintSeparator: c(t.BgSurface2),

		StepCompleted: c(t.Success),
		StepCurrent:   c(t.Primary).Bold(true),
		StepUpcoming:  c(t.FgSubtle),
		StepLocked:    c(t.BgSurface2),

		ButtonNormal: button.
			Foreground(lipgloss.Color(t.FgBase)).
			Background(lipgloss.Color(t.BgSurface0)),
		ButtonDisabled: button.
			Foreground(lipgloss.Color(t.FgMuted)).
			Background(lipgloss.Color(t.BgMantle)),
		ButtonFocused: button.
			Foreground(lipgloss.Color(t.BgBase)).
			Background(lipgloss.Color(t.Secondary)).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(t.BgSurface1)).
			PaddingLeft(2),
	}
}
