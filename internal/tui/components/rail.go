package components

import (
	"strings"

	"github.com/mark3labs/tokenforge/internal/tui/theme"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

// RenderRail draws the progress rail for a flow: completed steps are
// checked, the current step is highlighted and steps beyond it are dimmed.
func RenderRail(steps []wizard.StepState) string {
	if len(steps) == 0 {
		return ""
	}
	s := theme.Current().S()
	sep := s.Muted.Render(" › ")

	parts := make([]string, 0, len(steps))
	for _, st := range steps {
		switch {
		case st.IsCurrent:
			parts = append(parts, s.StepCurrent.Render(st.Icon+" "+st.Title))
		case st.IsCompleted:
			parts = append(parts, s.StepCompleted.Render("✓ "+st.Title))
		case st.IsDisabled:
			parts = append(parts, s.StepLocked.Render(st.Icon+" "+st.Title))
		default:
			parts = append(parts, s.StepUpcoming.Render(st.Icon+" "+st.Title))
		}
	}
	return strings.Join(parts, sep)
}

// StepCounter returns "Step n of m" for the current step.
func StepCounter(steps []wizard.StepState) (int, int) {
	for _, st := range steps {
		if st.IsCurrent {
			return st.Index + 1, len(steps)
		}
	}
	return 0, len(steps)
}
