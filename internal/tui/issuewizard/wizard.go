// Package issuewizard is the terminal UI for the token issuance flow.
package issuewizard

import (
	"errors"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/tokenforge/internal/issuance"
	"github.com/mark3labs/tokenforge/internal/logger"
	"github.com/mark3labs/tokenforge/internal/tui/components"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

// Text inputs on the basic info step, in focus order.
var inputFields = []string{
	issuance.FieldName,
	issuance.FieldTicker,
	issuance.FieldSupply,
	issuance.FieldDecimals,
}

var inputLabels = map[string]string{
	issuance.FieldName:     "Token Name",
	issuance.FieldTicker:   "Ticker",
	issuance.FieldSupply:   "Initial Supply",
	issuance.FieldDecimals: "Decimals",
}

const defaultTickerPlaceholder = "e.g. MYT"

// Options configures a Model.
type Options struct {
	Flow *issuance.Flow
	// Embedded models report ExitMsg instead of quitting the program.
	Embedded bool
	// Address is the issuing wallet, shown on review.
	Address string
}

// Result is what a standalone run produced.
type Result struct {
	Completed bool
	Receipt   *wizard.Receipt
	Form      issuance.Form
}

// Model is the BubbleTea model for the issuance wizard.
type Model struct {
	flow     *issuance.Flow
	embedded bool
	address  string

	width  int
	height int

	inputs    []textinput.Model
	focus     int // focused input on the basic info step
	capCursor int

	errMsg    string
	cancelled bool
	completed bool
	receipt   *wizard.Receipt

	spinner components.Spinner
	shimmer components.Shimmer
	guide   components.GuidancePanel
}

// New creates a wizard over flow.
func New(opts Options) *Model {
	m := &Model{
		flow:     opts.Flow,
		embedded: opts.Embedded,
		address:  opts.Address,
		width:    100,
		height:   30,
		spinner:  components.NewSpinner(),
	}
	form := m.flow.Form()
	for _, field := range inputFields {
		in := components.NewTextInput("", 40)
		in.SetValue(fieldValue(form, field))
		m.inputs = append(m.inputs, in)
	}
	m.inputs[0].Placeholder = "e.g. My Token"
	m.inputs[1].Placeholder = defaultTickerPlaceholder
	m.inputs[2].Placeholder = "1000000"
	m.inputs[3].Placeholder = "18"
	return m
}

// Run starts a standalone program for flow and returns the result.
func Run(flow *issuance.Flow, address string) (*Result, error) {
	m := New(Options{Flow: flow, Address: address})

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("issuance wizard failed: %w", err)
	}
	wm, ok := finalModel.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	return &Result{Completed: wm.completed, Receipt: wm.receipt, Form: flow.Form()}, nil
}

func fieldValue(f issuance.Form, field string) string {
	switch field {
	case issuance.FieldName:
		return f.Name
	case issuance.FieldTicker:
		return f.Ticker
	case issuance.FieldSupply:
		return f.Supply
	case issuance.FieldDecimals:
		return f.Decimals
	default:
		return ""
	}
}

// Init focuses the first input.
func (m *Model) Init() tea.Cmd {
	return m.inputs[m.focus].Focus()
}

// Cancelled reports whether the user left before completing.
func (m *Model) Cancelled() bool { return m.cancelled }

// Completed reports whether the user proceeded from success.
func (m *Model) Completed() bool { return m.completed }

// Error returns the inline error currently shown, if any.
func (m *Model) Error() string { return m.errMsg }

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case components.SubmissionDoneMsg:
		if msg.Flow != issuance.FlowName {
			return m, nil
		}
		return m, m.finish(msg)

	case spinner.TickMsg:
		if m.flow.Engine().Processing() {
			return m, m.spinner.Update(msg)
		}
		return m, nil

	case components.ShimmerMsg:
		return m, m.shimmer.Update(msg)

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	// Cursor blink and friends go to the focused input.
	if m.flow.Engine().Current().ID == wizard.StepBasicInfo {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	step := m.flow.Engine().Current()

	switch msg.String() {
	case "ctrl+c":
		m.cancelled = !m.completed
		return tea.Quit
	}

	if step.Kind == wizard.KindProcessing {
		// Nothing but quitting is possible while the transaction is out.
		return nil
	}

	switch msg.String() {
	case "esc":
		return m.back()
	case "enter":
		return m.next()
	}

	switch step.ID {
	case wizard.StepBasicInfo:
		return m.basicInfoKey(msg)
	case wizard.StepCapabilities:
		return m.capabilitiesKey(msg)
	case wizard.StepReview:
		return m.reviewKey(msg)
	}
	return nil
}

func (m *Model) next() tea.Cmd {
	tr, err := m.flow.Next()
	if err != nil {
		m.errMsg = errorText(err)
		return nil
	}
	m.errMsg = ""

	switch tr {
	case wizard.TransitionAdvanced:
		return m.enterStep()
	case wizard.TransitionSubmitting:
		m.blurInputs()
		return tea.Batch(
			m.spinner.Tick(),
			m.shimmer.Start(),
			components.AwaitSubmission(issuance.FlowName, m.flow.Await),
		)
	case wizard.TransitionCompleted:
		return m.leave(true)
	}
	return nil
}

func (m *Model) back() tea.Cmd {
	step := m.flow.Engine().Current()
	if step.Kind == wizard.KindSuccess {
		return m.complete()
	}
	if step.ID == wizard.StepBasicInfo {
		return m.leave(false)
	}
	if err := m.flow.Back(); err != nil {
		m.errMsg = errorText(err)
		return nil
	}
	m.errMsg = ""
	return m.enterStep()
}

func (m *Model) complete() tea.Cmd {
	if err := m.flow.Complete(); err != nil {
		m.errMsg = errorText(err)
		return nil
	}
	return m.leave(true)
}

func (m *Model) finish(msg components.SubmissionDoneMsg) tea.Cmd {
	m.shimmer.Stop()
	if err := m.flow.Finish(msg.Receipt, msg.Err); err != nil {
		if errors.Is(err, wizard.ErrNoSubmission) {
			logger.Warn("issuance: stray submission result ignored")
			return nil
		}
		m.errMsg = fmt.Sprintf("Transaction failed: %v. Press enter to try again.", err)
		return m.enterStep()
	}
	if r, ok := m.flow.Engine().Receipt(); ok {
		m.receipt = &r
	}
	m.errMsg = ""
	return m.enterStep()
}

func (m *Model) leave(completed bool) tea.Cmd {
	m.completed = completed
	m.cancelled = !completed
	m.blurInputs()
	if m.embedded {
		return components.Exit(components.ExitMsg{
			Flow:      issuance.FlowName,
			Completed: completed,
			Receipt:   m.receipt,
		})
	}
	return tea.Quit
}

// enterStep restores focus for whichever step is now current.
func (m *Model) enterStep() tea.Cmd {
	if m.flow.Engine().Current().ID == wizard.StepBasicInfo {
		return m.focusInput(m.focus)
	}
	m.blurInputs()
	return nil
}

func (m *Model) blurInputs() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *Model) focusInput(i int) tea.Cmd {
	m.blurInputs()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) basicInfoKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		return m.focusInput((m.focus + 1) % len(m.inputs))
	case "shift+tab", "up":
		return m.focusInput((m.focus + len(m.inputs) - 1) % len(m.inputs))
	case "ctrl+t":
		if s := m.flow.Preview().SuggestedTicker; s != "" {
			m.setInput(1, s)
		}
		return nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.setInput(m.focus, m.inputs[m.focus].Value())
	return cmd
}

// setInput pushes an input's value into the form and reflects the
// normalized value back.
func (m *Model) setInput(i int, raw string) {
	field := inputFields[i]
	form, err := m.flow.SetField(field, raw)
	if err != nil {
		m.errMsg = errorText(err)
		return
	}
	if v := fieldValue(form, field); v != m.inputs[i].Value() {
		m.inputs[i].SetValue(v)
	}
	if s := issuance.PreviewOf(form).SuggestedTicker; s != "" {
		m.inputs[1].Placeholder = s + " (ctrl+t to use)"
	} else {
		m.inputs[1].Placeholder = defaultTickerPlaceholder
	}
}

func (m *Model) capabilitiesKey(msg tea.KeyPressMsg) tea.Cmd {
	n := len(issuance.CapabilityFields)
	switch msg.String() {
	case "up", "k":
		m.capCursor = components.MoveCursor(m.capCursor, -1, n)
	case "down", "j":
		m.capCursor = components.MoveCursor(m.capCursor, 1, n)
	case "space", " ", "x":
		field := issuance.CapabilityFields[m.capCursor]
		form := m.flow.Form()
		if field == issuance.FieldCanWipe && !form.WipeAvailable() {
			m.errMsg = "Can Wipe requires Can Freeze"
			return nil
		}
		if _, err := m.flow.Toggle(field, !form.Flag(field)); err != nil {
			m.errMsg = errorText(err)
			return nil
		}
		m.errMsg = ""
	case "p":
		if _, err := m.flow.ApplyPreset(nextPreset(m.flow.Form())); err != nil {
			m.errMsg = errorText(err)
		}
	}
	return nil
}

// nextPreset cycles through the presets, starting over from the first
// when the flags match none of them.
func nextPreset(f issuance.Form) issuance.Preset {
	cur, ok := f.MatchPreset()
	if !ok {
		return issuance.Presets[0]
	}
	for i, p := range issuance.Presets {
		if p == cur {
			return issuance.Presets[(i+1)%len(issuance.Presets)]
		}
	}
	return issuance.Presets[0]
}

func (m *Model) reviewKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "space", " ", "x", "a":
		form := m.flow.Form()
		if _, err := m.flow.Toggle(issuance.FieldTermsAccepted, !form.TermsAccepted); err != nil {
			m.errMsg = errorText(err)
			return nil
		}
		m.errMsg = ""
	}
	return nil
}

func errorText(err error) string {
	if errors.Is(err, wizard.ErrBusy) {
		return "A transaction is already processing"
	}
	return err.Error()
}
