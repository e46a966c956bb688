package liquiditywizard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/tokenforge/internal/liquidity"
	"github.com/mark3labs/tokenforge/internal/logger"
	"github.com/mark3labs/tokenforge/internal/tui/components"
	"github.com/mark3labs/tokenforge/internal/tui/theme"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

const labelWidth = 20

// View renders the wizard UI.
func (m *Model) View() tea.View {
	return components.Screen(m.Render(), m.width, m.height)
}

// Render returns the wizard as a string, centered in the terminal.
func (m *Model) Render() string {
	s := theme.Current().S()
	steps := m.flow.Engine().Steps()
	step := m.flow.Engine().Current()
	inner := components.InnerWidth(components.ModalWidth(m.width))

	n, total := components.StepCounter(steps)
	title := fmt.Sprintf("Add Liquidity · Step %d of %d: %s", n, total, step.Title)

	side := m.guide.Render(m.flow.Guidance(), components.SideWidth(inner))
	sections := []string{
		components.RenderRail(steps),
		"",
		components.Columns(m.renderStep(step), side, inner),
	}
	if m.errMsg != "" {
		sections = append(sections, "", s.Error.Render("✗ "+m.errMsg))
	}

	bar := components.NewButtonBar(m.buttons(step))
	bar.SetWidth(inner)
	sections = append(sections, "", bar.Render(), components.RenderHintBar(m.hints(step)...))

	return components.Modal(title, lipgloss.JoinVertical(lipgloss.Left, sections...), m.width, m.height)
}

// renderStep draws the body of the current step.
func (m *Model) renderStep(step wizard.Step) string {
	form := m.flow.Form()
	switch step.ID {
	case wizard.StepSelectTokens:
		return m.renderPair(form)
	case wizard.StepSetAmounts:
		return m.renderAmounts(form)
	case wizard.StepRisks:
		return m.renderRisks(form)
	case wizard.StepDeposit:
		return m.renderDeposit(form)
	case wizard.StepProcessing:
		return m.renderProcessing(form)
	case wizard.StepSuccess:
		return m.renderSuccess(form)
	default:
		logger.Warn("liquidity: no view for step %q", step.ID)
		return theme.Current().S().Error.Render(fmt.Sprintf("Unknown step %q", step.ID))
	}
}

func (m *Model) renderPair(form liquidity.Form) string {
	s := theme.Current().S()
	var own string
	if m.typedOwnToken() {
		own = components.LabeledInput("Your Token", m.ownInput, m.pairFocus == focusOwn)
	} else {
		own = components.RenderChoice("Your Token", form.OwnToken, m.pairFocus == focusOwn)
	}
	rows := []string{
		own,
		"",
		components.RenderChoice("Pairing Token", form.PairingToken, m.pairFocus == focusPairing),
	}
	if form.OwnToken != "" && form.PairingToken != "" {
		rows = append(rows, "", s.Label.Render("Pool: ")+s.Value.Render(form.OwnToken+"/"+form.PairingToken))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderAmounts(form liquidity.Form) string {
	p := liquidity.PreviewOf(form)
	return strings.Join([]string{
		components.LabeledInput(tokenOr(form.OwnToken, "Your token")+" amount", m.amounts[0], m.amountFocus == 0),
		components.LabeledInput(form.PairingToken+" amount", m.amounts[1], m.amountFocus == 1),
		"",
		components.KeyValue("Initial price", fmt.Sprintf("1 %s = %s %s", tokenOr(form.OwnToken, "token"), p.Price, form.PairingToken), labelWidth),
		components.KeyValue("Expected LP tokens", p.LPDisplay, labelWidth),
		components.KeyValue("LP fee (0.1%)", p.FeeDisplay, labelWidth),
	}, "\n")
}

func (m *Model) renderRisks(form liquidity.Form) string {
	s := theme.Current().S()
	return s.Warning.Width(50).Render("Prices move. Your share of the pool can be worth less than holding both tokens.") +
		"\n\n" + components.RenderChecklist([]components.CheckItem{{
		Label:   "I understand the risks of impermanent loss",
		Checked: form.RisksAccepted,
	}}, 0)
}

func (m *Model) renderDeposit(form liquidity.Form) string {
	s := theme.Current().S()
	items := []components.CheckItem{{
		Label:   fmt.Sprintf("Deposit %s %s", amountOr(form.OwnAmount), tokenOr(form.OwnToken, "token")),
		Checked: form.OwnDeposited,
	}}
	if m.flow.PairingNeedsDeposit() {
		items = append(items, components.CheckItem{
			Label:   fmt.Sprintf("Deposit %s %s", amountOr(form.PairingAmount), form.PairingToken),
			Checked: form.PairingDeposited,
		})
	}
	out := components.RenderChecklist(items, m.depositCursor)
	if !m.flow.PairingNeedsDeposit() {
		out += "\n\n" + s.Muted.Render(fmt.Sprintf("%s %s is sent with the pool transaction.",
			amountOr(form.PairingAmount), form.PairingToken))
	}
	if err := m.flow.Engine().LastError(); err != nil {
		out += "\n\n" + s.Warning.Render("Last attempt failed: "+err.Error())
	}
	return out
}

func (m *Model) renderProcessing(form liquidity.Form) string {
	s := theme.Current().S()
	pool := tokenOr(form.OwnToken, "token") + "/" + form.PairingToken
	return m.spinner.View() + " " + m.shimmer.View("Creating "+pool+" pool…") +
		"\n\n" + s.Muted.Render(fmt.Sprintf("Waiting for confirmation (about %s).", m.flow.Engine().SubmitDelay()))
}

func (m *Model) renderSuccess(form liquidity.Form) string {
	s := theme.Current().S()
	p := liquidity.PreviewOf(form)
	rows := []string{
		s.Success.Render(fmt.Sprintf("✓ %s/%s pool is live", form.OwnToken, form.PairingToken)),
		"",
		components.KeyValue("LP tokens received", p.LPDisplay, labelWidth),
	}
	if m.receipt != nil {
		rows = append(rows,
			components.KeyValue("Transaction", m.receipt.ID, labelWidth),
			components.KeyValue("Confirmed", m.receipt.ConfirmedAt.Format("15:04:05"), labelWidth),
		)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) buttons(step wizard.Step) []components.Button {
	switch step.Kind {
	case wizard.KindProcessing:
		return components.CreateBackNextButtons(false, false, "Processing…")
	case wizard.KindSuccess:
		return components.CreateBackNextButtons(false, true, "Done")
	case wizard.KindSubmit:
		return components.CreateBackNextButtons(true, true, "Create Pool")
	default:
		return components.CreateBackNextButtons(step.ID != wizard.StepSelectTokens, true, "Next →")
	}
}

func (m *Model) hints(step wizard.Step) []string {
	switch step.ID {
	case wizard.StepSelectTokens:
		return []string{"←→", "choose", "tab", "switch", "enter", "continue", "esc", "cancel"}
	case wizard.StepSetAmounts:
		return []string{"tab", "switch", "enter", "continue", "esc", "back"}
	case wizard.StepRisks:
		return []string{"space", "acknowledge", "enter", "continue", "esc", "back"}
	case wizard.StepDeposit:
		return []string{"↑↓", "move", "space", "deposit", "enter", "create pool", "esc", "back"}
	case wizard.StepProcessing:
		return []string{"ctrl+c", "quit"}
	default:
		return []string{"enter", "done"}
	}
}

func tokenOr(t, fallback string) string {
	if t == "" {
		return fallback
	}
	return t
}

func amountOr(a string) string {
	if a == "" {
		return "0"
	}
	return a
}
