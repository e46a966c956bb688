// Package liquiditywizard is the terminal UI for the liquidity flow.
package liquiditywizard

import (
	"errors"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/tokenforge/internal/liquidity"
	"github.com/mark3labs/tokenforge/internal/logger"
	"github.com/mark3labs/tokenforge/internal/tui/components"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

// Focus targets on the pair step.
const (
	focusOwn = iota
	focusPairing
)

// Options configures a Model.
type Options struct {
	Flow     *liquidity.Flow
	Embedded bool
}

// Result is what a standalone run produced.
type Result struct {
	Completed bool
	Receipt   *wizard.Receipt
	Form      liquidity.Form
}

// Model is the BubbleTea model for the liquidity wizard.
type Model struct {
	flow     *liquidity.Flow
	embedded bool

	width  int
	height int

	pairFocus int
	// ownInput is used when the wallet reports no tokens to choose from.
	ownInput textinput.Model

	amounts     []textinput.Model // own, pairing
	amountFocus int

	depositCursor int

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
		width:    100,
		height:   30,
		spinner:  components.NewSpinner(),
		ownInput: components.NewTextInput("e.g. MYT", 20),
		amounts: []textinput.Model{
			components.NewTextInput("0.0", 30),
			components.NewTextInput("0.0", 30),
		},
	}
	form := m.flow.Form()
	m.ownInput.SetValue(form.OwnToken)
	m.amounts[0].SetValue(form.OwnAmount)
	m.amounts[1].SetValue(form.PairingAmount)
	return m
}

// Run starts a standalone program for flow and returns the result.
func Run(flow *liquidity.Flow) (*Result, error) {
	m := New(Options{Flow: flow})

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("liquidity wizard failed: %w", err)
	}
	wm, ok := finalModel.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	return &Result{Completed: wm.completed, Receipt: wm.receipt, Form: flow.Form()}, nil
}

// Init focuses the first control.
func (m *Model) Init() tea.Cmd {
	return m.enterStep()
}

// Cancelled reports whether the user left before completing.
func (m *Model) Cancelled() bool { return m.cancelled }

// Completed reports whether the user proceeded from success.
func (m *Model) Completed() bool { return m.completed }

// Error returns the inline error currently shown, if any.
func (m *Model) Error() string { return m.errMsg }

func (m *Model) typedOwnToken() bool {
	return len(m.flow.HeldTokens()) == 0
}

// Update handles messages for the wizard.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case components.SubmissionDoneMsg:
		if msg.Flow != liquidity.FlowName {
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

	var cmd tea.Cmd
	switch m.flow.Engine().Current().ID {
	case wizard.StepSelectTokens:
		if m.typedOwnToken() {
			m.ownInput, cmd = m.ownInput.Update(msg)
		}
	case wizard.StepSetAmounts:
		m.amounts[m.amountFocus], cmd = m.amounts[m.amountFocus].Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	step := m.flow.Engine().Current()

	if msg.String() == "ctrl+c" {
		m.cancelled = !m.completed
		return tea.Quit
	}
	if step.Kind == wizard.KindProcessing {
		return nil
	}

	switch msg.String() {
	case "esc":
		return m.back()
	case "enter":
		return m.next()
	}

	switch step.ID {
	case wizard.StepSelectTokens:
		return m.pairKey(msg)
	case wizard.StepSetAmounts:
		return m.amountsKey(msg)
	case wizard.StepRisks:
		return m.risksKey(msg)
	case wizard.StepDeposit:
		return m.depositKey(msg)
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
			components.AwaitSubmission(liquidity.FlowName, m.flow.Await),
		)
	case wizard.TransitionCompleted:
		return m.leave(true)
	}
	return nil
}

func (m *Model) back() tea.Cmd {
	step := m.flow.Engine().Current()
	if step.Kind == wizard.KindSuccess {
		if err := m.flow.Complete(); err != nil {
			m.errMsg = errorText(err)
			return nil
		}
		return m.leave(true)
	}
	if step.ID == wizard.StepSelectTokens {
		return m.leave(false)
	}
	if err := m.flow.Back(); err != nil {
		m.errMsg = errorText(err)
		return nil
	}
	m.errMsg = ""
	return m.enterStep()
}

func (m *Model) finish(msg components.SubmissionDoneMsg) tea.Cmd {
	m.shimmer.Stop()
	if err := m.flow.Finish(msg.Receipt, msg.Err); err != nil {
		if errors.Is(err, wizard.ErrNoSubmission) {
			logger.Warn("liquidity: stray submission result ignored")
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
			Flow:      liquidity.FlowName,
			Completed: completed,
			Receipt:   m.receipt,
		})
	}
	return tea.Quit
}

func (m *Model) enterStep() tea.Cmd {
	m.blurInputs()
	switch m.flow.Engine().Current().ID {
	case wizard.StepSelectTokens:
		if m.typedOwnToken() && m.pairFocus == focusOwn {
			return m.ownInput.Focus()
		}
	case wizard.StepSetAmounts:
		return m.amounts[m.amountFocus].Focus()
	case wizard.StepDeposit:
		m.depositCursor = 0
	}
	return nil
}

func (m *Model) blurInputs() {
	m.ownInput.Blur()
	for i := range m.amounts {
		m.amounts[i].Blur()
	}
}

func (m *Model) pairKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down", "shift+tab", "up":
		m.pairFocus = 1 - m.pairFocus
		return m.enterStep()
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		form := m.flow.Form()
		if m.pairFocus == focusPairing {
			m.set(liquidity.FieldPairingToken, components.Cycle(m.flow.PairingTokens(), form.PairingToken, delta))
			return nil
		}
		if !m.typedOwnToken() {
			m.set(liquidity.FieldOwnToken, components.Cycle(m.flow.HeldTokens(), form.OwnToken, delta))
			return nil
		}
	}

	if m.pairFocus == focusOwn && m.typedOwnToken() {
		var cmd tea.Cmd
		m.ownInput, cmd = m.ownInput.Update(msg)
		if form, ok := m.set(liquidity.FieldOwnToken, m.ownInput.Value()); ok && form.OwnToken != m.ownInput.Value() {
			m.ownInput.SetValue(form.OwnToken)
		}
		return cmd
	}
	return nil
}

func (m *Model) amountsKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down", "shift+tab", "up":
		m.amountFocus = 1 - m.amountFocus
		return m.enterStep()
	}

	fields := []string{liquidity.FieldOwnAmount, liquidity.FieldPairingAmount}
	i := m.amountFocus
	var cmd tea.Cmd
	m.amounts[i], cmd = m.amounts[i].Update(msg)
	if form, ok := m.set(fields[i], m.amounts[i].Value()); ok {
		v := form.OwnAmount
		if i == 1 {
			v = form.PairingAmount
		}
		if v != m.amounts[i].Value() {
			m.amounts[i].SetValue(v)
		}
	}
	return cmd
}

func (m *Model) risksKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "space", " ", "x", "a":
		m.toggle(liquidity.FieldRisksAccepted, !m.flow.Form().RisksAccepted)
	}
	return nil
}

// depositFields lists the deposits the current pair needs.
func (m *Model) depositFields() []string {
	if m.flow.PairingNeedsDeposit() {
		return []string{liquidity.FieldOwnDeposited, liquidity.FieldPairingDeposited}
	}
	return []string{liquidity.FieldOwnDeposited}
}

func (m *Model) depositKey(msg tea.KeyPressMsg) tea.Cmd {
	fields := m.depositFields()
	switch msg.String() {
	case "up", "k":
		m.depositCursor = components.MoveCursor(m.depositCursor, -1, len(fields))
	case "down", "j":
		m.depositCursor = components.MoveCursor(m.depositCursor, 1, len(fields))
	case "space", " ", "x", "d":
		field := fields[m.depositCursor]
		form := m.flow.Form()
		on := !form.OwnDeposited
		if field == liquidity.FieldPairingDeposited {
			on = !form.PairingDeposited
		}
		m.toggle(field, on)
	}
	return nil
}

func (m *Model) set(field, raw string) (liquidity.Form, bool) {
	form, err := m.flow.SetField(field, raw)
	if err != nil {
		m.errMsg = errorText(err)
		return form, false
	}
	m.errMsg = ""
	return form, true
}

func (m *Model) toggle(field string, on bool) {
	if _, err := m.flow.Toggle(field, on); err != nil {
		m.errMsg = errorText(err)
		return
	}
	m.errMsg = ""
}

func errorText(err error) string {
	if errors.Is(err, wizard.ErrBusy) {
		return "A transaction is already processing"
	}
	return err.Error()
}
