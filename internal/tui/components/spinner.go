package components

import (
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/tokenforge/internal/tui/theme"
)

// Spinner wraps bubbles spinner with convenience methods
type Spinner struct {
	model spinner.Model
}

// NewSpinner creates a MiniDot spinner in the theme's primary color.
func NewSpinner() Spinner {
	t := theme.Current()
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary))),
	)
	return Spinner{model: s}
}

// Update handles spinner tick messages
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return cmd
}

// View renders the current spinner frame
func (s *Spinner) View() string {
	return s.model.View()
}

// Tick returns the tick command to start animation
func (s *Spinner) Tick() tea.Cmd {
	return s.model.Tick
}

// ShimmerMsg advances a Shimmer.
type ShimmerMsg struct{}

// Shimmer animates a label with a moving color gradient while a
// submission is pending.
type Shimmer struct {
	frame  int
	active bool
}

// Start begins animating.
func (g *Shimmer) Start() tea.Cmd {
	g.active = true
	return g.tick()
}

// Stop halts the animation; pending ticks are ignored.
func (g *Shimmer) Stop() {
	g.active = false
}

// Update advances the frame on ShimmerMsg.
func (g *Shimmer) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(ShimmerMsg); !ok || !g.active {
		return nil
	}
	g.frame++
	return g.tick()
}

// View renders label with the current gradient frame.
func (g *Shimmer) View(label string) string {
	t := theme.Current()
	return theme.Gradient(label, t.Primary, t.Tertiary, g.frame)
}

func (g *Shimmer) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return ShimmerMsg{}
	})
}
