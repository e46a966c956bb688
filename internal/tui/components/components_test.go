package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/tokenforge/internal/guidance"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

func TestButtonBarFocus(t *testing.T) {
	bar := NewButtonBar([]Button{
		{Label: "A"},
		{Label: "B", State: ButtonDisabled},
		{Label: "C"},
	})
	assert.Equal(t, -1, bar.FocusedButton())

	bar.FocusNext()
	assert.Equal(t, 0, bar.FocusedButton())
	bar.FocusNext()
	assert.Equal(t, 2, bar.FocusedButton(), "disabled button skipped")
	bar.FocusNext()
	assert.Equal(t, 0, bar.FocusedButton(), "wraps")
	bar.FocusPrev()
	assert.Equal(t, 2, bar.FocusedButton())

	assert.False(t, bar.Focus(1))
	assert.Equal(t, 2, bar.FocusedButton())

	bar.Blur()
	assert.Equal(t, -1, bar.FocusedButton())
	bar.FocusPrev()
	assert.Equal(t, 2, bar.FocusedButton())
}

func TestButtonBarAllDisabled(t *testing.T) {
	bar := NewButtonBar([]Button{{Label: "A", State: ButtonDisabled}})
	bar.FocusNext()
	assert.Equal(t, -1, bar.FocusedButton())
	assert.Equal(t, "", NewButtonBar(nil).Render())
}

func TestButtonBarRender(t *testing.T) {
	bar := NewButtonBar(CreateBackNextButtons(false, true, "Next →"))
	bar.SetWidth(40)
	out := ansi.Strip(bar.Render())
	assert.Contains(t, out, "← Back")
	assert.Contains(t, out, "Next →")
	assert.Equal(t, 1, bar.FocusedButton())

	buttons := CreateBackNextButtons(true, false, "Issue")
	assert.Equal(t, ButtonNormal, buttons[0].State)
	assert.Equal(t, ButtonDisabled, buttons[1].State)
}

func TestRenderRail(t *testing.T) {
	seq := wizard.NewSequencer(wizard.IssuanceSteps())
	require.NoError(t, seq.Advance(nil))
	steps := seq.Snapshot()

	out := ansi.Strip(RenderRail(steps))
	assert.Contains(t, out, "✓ Token Details")
	assert.Contains(t, out, "Capabilities")
	assert.Contains(t, out, "Done")

	n, total := StepCounter(steps)
	assert.Equal(t, 2, n)
	assert.Equal(t, 5, total)
	assert.Equal(t, "", RenderRail(nil))
}

func TestCycle(t *testing.T) {
	opts := []string{"EGLD", "USDC", "WEGLD"}
	assert.Equal(t, "USDC", Cycle(opts, "EGLD", 1))
	assert.Equal(t, "EGLD", Cycle(opts, "WEGLD", 1))
	assert.Equal(t, "WEGLD", Cycle(opts, "EGLD", -1))
	assert.Equal(t, "EGLD", Cycle(opts, "", 1))
	assert.Equal(t, "WEGLD", Cycle(opts, "", -1))
	assert.Equal(t, "X", Cycle(nil, "X", 1))
}

func TestMoveCursor(t *testing.T) {
	assert.Equal(t, 0, MoveCursor(0, -1, 3))
	assert.Equal(t, 1, MoveCursor(0, 1, 3))
	assert.Equal(t, 2, MoveCursor(2, 1, 3))
}

func TestRenderChecklist(t *testing.T) {
	out := ansi.Strip(RenderChecklist([]CheckItem{
		{Label: "Can Mint", Checked: true},
		{Label: "Can Wipe", Disabled: true, Note: "requires Can Freeze"},
	}, 0))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[x] Can Mint")
	assert.Contains(t, lines[1], "[ ] Can Wipe")
	assert.Contains(t, lines[1], "requires Can Freeze")
}

func TestRenderHintBar(t *testing.T) {
	out := ansi.Strip(RenderHintBar("tab", "next", "esc", "back"))
	assert.Contains(t, out, "tab")
	assert.Contains(t, out, "•")
	assert.Equal(t, "", RenderHintBar("odd"))
}

func TestModalWidth(t *testing.T) {
	assert.Equal(t, MinModalWidth, ModalWidth(20))
	assert.Equal(t, 90, ModalWidth(100))
	assert.Equal(t, MaxModalWidth, ModalWidth(300))
}

func TestGuidancePanelCaches(t *testing.T) {
	e, ok := guidance.Lookup(guidance.KeyImpermanentLoss)
	require.True(t, ok)

	var g GuidancePanel
	first := g.Render(e, 40)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, g.Render(e, 40))
	assert.Equal(t, "Impermanent loss", g.title)
}

func TestAwaitSubmission(t *testing.T) {
	boom := errors.New("boom")
	msg := AwaitSubmission("issuance", func() (wizard.Receipt, error) {
		return wizard.Receipt{}, boom
	})()
	done, ok := msg.(SubmissionDoneMsg)
	require.True(t, ok)
	assert.Equal(t, "issuance", done.Flow)
	assert.ErrorIs(t, done.Err, boom)
}
