package issuewizard

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/tokenforge/internal/issuance"
	"github.com/mark3labs/tokenforge/internal/tui/components"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

var (
	enterKey = tea.KeyPressMsg{Code: tea.KeyEnter}
	escKey   = tea.KeyPressMsg{Code: tea.KeyEscape}
	tabKey   = tea.KeyPressMsg{Code: tea.KeyTab}
	spaceKey = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	downKey  = tea.KeyPressMsg{Code: tea.KeyDown}
)

func newModel(t *testing.T, embedded bool, opts ...wizard.SubmitOption) (*Model, *int) {
	t.Helper()
	completions := 0
	opts = append([]wizard.SubmitOption{wizard.WithSleep(func(time.Duration) {})}, opts...)
	flow := issuance.NewFlow(issuance.Config{
		Submitter:  wizard.NewSubmitter(time.Millisecond, opts...),
		OnComplete: func() { completions++ },
	})
	m := New(Options{Flow: flow, Embedded: embedded, Address: "erd1qyu5wthldzr8wx5c9ucg8kjagg0jfs53s8nr3zpz3hypefsdd8ssycr6th"})
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, &completions
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func current(m *Model) wizard.StepID {
	return m.flow.Engine().Current().ID
}

// submit completes an in-flight submission the way the program would.
func submit(t *testing.T, m *Model) {
	t.Helper()
	require.Equal(t, wizard.StepProcessing, current(m))
	r, err := m.flow.Await()
	m.Update(components.SubmissionDoneMsg{Flow: issuance.FlowName, Receipt: r, Err: err})
}

func fillBasicInfo(m *Model) {
	typeText(m, "My Token")
	m.Update(tabKey)
	typeText(m, "myt")
}

func TestWizard_HappyPath(t *testing.T) {
	m, completions := newModel(t, false)

	fillBasicInfo(m)
	form := m.flow.Form()
	assert.Equal(t, "My Token", form.Name)
	assert.Equal(t, "MYT", form.Ticker, "ticker is uppercased as typed")
	assert.Equal(t, "MYT", m.inputs[1].Value())

	m.Update(enterKey)
	require.Equal(t, wizard.StepCapabilities, current(m))

	// Cursor starts on Can Mint, which the recommended preset enables.
	m.Update(spaceKey)
	assert.False(t, m.flow.Form().CanMint)

	m.Update(enterKey)
	require.Equal(t, wizard.StepReview, current(m))

	m.Update(enterKey)
	assert.Equal(t, wizard.StepReview, current(m))
	assert.Equal(t, "Please accept the terms and conditions", m.Error())

	m.Update(spaceKey)
	assert.True(t, m.flow.Form().TermsAccepted)

	_, cmd := m.Update(enterKey)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.Error())
	submit(t, m)

	require.Equal(t, wizard.StepSuccess, current(m))
	require.NotNil(t, m.receipt)
	assert.Contains(t, ansi.Strip(m.Render()), "My Token (MYT) has been issued")

	_, cmd = m.Update(enterKey)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Completed())
	assert.False(t, m.Cancelled())
	assert.Equal(t, 1, *completions)
}

func TestWizard_BasicInfoErrorShownInline(t *testing.T) {
	m, _ := newModel(t, false)
	typeText(m, "My Token")
	m.Update(tabKey)
	typeText(m, "ab")

	m.Update(enterKey)
	assert.Equal(t, wizard.StepBasicInfo, current(m))
	assert.NotEmpty(t, m.Error())
	assert.Contains(t, ansi.Strip(m.Render()), m.Error())

	typeText(m, "c")
	m.Update(enterKey)
	assert.Equal(t, wizard.StepCapabilities, current(m))
	assert.Empty(t, m.Error())
}

func TestWizard_SuggestedTicker(t *testing.T) {
	m, _ := newModel(t, false)
	typeText(m, "Super Cool Coin")
	assert.Contains(t, m.inputs[1].Placeholder, "SCC")

	m.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	assert.Equal(t, "SCC", m.flow.Form().Ticker)
	assert.Equal(t, "SCC", m.inputs[1].Value())
}

func TestWizard_WipeRequiresFreeze(t *testing.T) {
	m, _ := newModel(t, false)
	fillBasicInfo(m)
	m.Update(enterKey)
	require.Equal(t, wizard.StepCapabilities, current(m))

	// Recommended leaves freeze off, so wipe is locked.
	for i := 0; i < 3; i++ {
		m.Update(downKey)
	}
	m.Update(spaceKey)
	assert.False(t, m.flow.Form().CanWipe)
	assert.Equal(t, "Can Wipe requires Can Freeze", m.Error())
	assert.Contains(t, ansi.Strip(m.Render()), "requires Can Freeze")

	m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m.Update(spaceKey) // freeze on
	m.Update(downKey)
	m.Update(spaceKey) // wipe on
	form := m.flow.Form()
	assert.True(t, form.CanFreeze)
	assert.True(t, form.CanWipe)
}

func TestWizard_PresetCycle(t *testing.T) {
	m, _ := newModel(t, false)
	fillBasicInfo(m)
	m.Update(enterKey)

	p := tea.KeyPressMsg{Code: 'p', Text: "p"}
	m.Update(p)
	got, ok := m.flow.Form().MatchPreset()
	require.True(t, ok)
	assert.Equal(t, issuance.PresetFixed, got)

	m.Update(p)
	got, _ = m.flow.Form().MatchPreset()
	assert.Equal(t, issuance.PresetFull, got)
	assert.Contains(t, ansi.Strip(m.Render()), "Preset: full")
}

func TestWizard_FailureReturnsToReview(t *testing.T) {
	m, completions := newModel(t, false, wizard.WithFailureHook(wizard.FailTimes(1)))
	fillBasicInfo(m)
	m.Update(enterKey)
	m.Update(enterKey)
	m.Update(spaceKey)
	m.Update(enterKey)
	submit(t, m)

	assert.Equal(t, wizard.StepReview, current(m))
	assert.Contains(t, m.Error(), "Transaction failed")

	// The inline error clears on the next edit; the failure note stays.
	m.Update(spaceKey)
	m.Update(spaceKey)
	assert.Empty(t, m.Error())
	assert.Contains(t, ansi.Strip(m.Render()), "Last attempt failed")

	m.Update(enterKey)
	submit(t, m)
	assert.Equal(t, wizard.StepSuccess, current(m))
	assert.Empty(t, m.Error())
	assert.Equal(t, 0, *completions)
}

func TestWizard_KeysIgnoredWhileProcessing(t *testing.T) {
	m, _ := newModel(t, false)
	fillBasicInfo(m)
	m.Update(enterKey)
	m.Update(enterKey)
	m.Update(spaceKey)
	m.Update(enterKey)
	require.Equal(t, wizard.StepProcessing, current(m))

	m.Update(escKey)
	m.Update(enterKey)
	assert.Equal(t, wizard.StepProcessing, current(m))
	assert.Contains(t, ansi.Strip(m.Render()), "Issuing MYT")
}

func TestWizard_EmbeddedExit(t *testing.T) {
	m, _ := newModel(t, true)
	_, cmd := m.Update(escKey)
	require.NotNil(t, cmd)
	msg, ok := cmd().(components.ExitMsg)
	require.True(t, ok)
	assert.Equal(t, issuance.FlowName, msg.Flow)
	assert.False(t, msg.Completed)
	assert.True(t, m.Cancelled())
}

func TestWizard_EscGoesBack(t *testing.T) {
	m, _ := newModel(t, false)
	fillBasicInfo(m)
	m.Update(enterKey)
	require.Equal(t, wizard.StepCapabilities, current(m))

	m.Update(escKey)
	assert.Equal(t, wizard.StepBasicInfo, current(m))
	assert.True(t, m.inputs[m.focus].Focused())
}

func TestWizard_RenderChrome(t *testing.T) {
	m, _ := newModel(t, false)
	out := ansi.Strip(m.Render())
	assert.Contains(t, out, "Step 1 of 5: Token Details")
	assert.Contains(t, out, "Next →")
	assert.Contains(t, out, "Issuance fee")

	assert.Contains(t, ansi.Strip(m.renderStep(wizard.Step{ID: "bogus"})), `Unknown step "bogus"`)
}
