package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style

	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style

	Label    lipgloss.Style
	Value    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Success  lipgloss.Style
	Info     lipgloss.Style
	Selected lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	// Progress rail
	StepCompleted lipgloss.Style
	StepCurrent   lipgloss.Style
	StepUpcoming  lipgloss.Style
	StepLocked    lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	// Panel is the guidance column beside step content.
	Panel lipgloss.Style
}
