package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/tokenforge/internal/wizard"
)

// SubmissionDoneMsg carries the outcome of a simulated submission back to
// the wizard that started it.
type SubmissionDoneMsg struct {
	Flow    string
	Receipt wizard.Receipt
	Err     error
}

// AwaitSubmission runs await off the update loop and reports its result.
func AwaitSubmission(flow string, await func() (wizard.Receipt, error)) tea.Cmd {
	return func() tea.Msg {
		r, err := await()
		return SubmissionDoneMsg{Flow: flow, Receipt: r, Err: err}
	}
}

// ExitMsg is sent by an embedded wizard when the user leaves it.
type ExitMsg struct {
	Flow      string
	Completed bool
	Receipt   *wizard.Receipt
}

// Exit returns a command emitting msg.
func Exit(msg ExitMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
