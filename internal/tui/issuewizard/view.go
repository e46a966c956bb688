package issuewizard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/tokenforge/internal/issuance"
	"github.com/mark3labs/tokenforge/internal/logger"
	"github.com/mark3labs/tokenforge/internal/tui/components"
	"github.com/mark3labs/tokenforge/internal/tui/theme"
	"github.com/mark3labs/tokenforge/internal/wallet"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

const labelWidth = 18

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
	title := fmt.Sprintf("Issue Token · Step %d of %d: %s", n, total, step.Title)

	body := m.renderStep(step)
	side := m.guide.Render(m.flow.Guidance(), components.SideWidth(inner))

	sections := []string{
		components.RenderRail(steps),
		"",
		components.Columns(body, side, inner),
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
	case wizard.StepBasicInfo:
		return m.renderBasicInfo(form)
	case wizard.StepCapabilities:
		return m.renderCapabilities(form)
	case wizard.StepReview:
		return m.renderReview(form)
	case wizard.StepProcessing:
		return m.renderProcessing(form)
	case wizard.StepSuccess:
		return m.renderSuccess(form)
	default:
		logger.Warn("issuance: no view for step %q", step.ID)
		return theme.Current().S().Error.Render(fmt.Sprintf("Unknown step %q", step.ID))
	}
}

func (m *Model) renderBasicInfo(form issuance.Form) string {
	s := theme.Current().S()
	rows := make([]string, 0, len(m.inputs)+4)
	for i, field := range inputFields {
		rows = append(rows, components.LabeledInput(inputLabels[field], m.inputs[i], i == m.focus))
	}

	p := issuance.PreviewOf(form)
	rows = append(rows, "",
		components.KeyValue("Issuance fee", p.FeeDisplay+" "+tickerOr(form.Ticker), labelWidth),
	)
	if p.RawSupply != "" {
		rows = append(rows, components.KeyValue("Raw supply", p.RawSupply, labelWidth))
	} else {
		rows = append(rows, components.KeyValue("Raw supply", s.Muted.Render("—"), labelWidth))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderCapabilities(form issuance.Form) string {
	s := theme.Current().S()
	items := make([]components.CheckItem, 0, len(issuance.CapabilityFields))
	for _, field := range issuance.CapabilityFields {
		item := components.CheckItem{
			Label:   issuance.CapabilityLabel(field),
			Checked: form.Flag(field),
		}
		if field == issuance.FieldCanWipe && !form.WipeAvailable() {
			item.Disabled = true
			item.Note = "requires Can Freeze"
		}
		items = append(items, item)
	}

	preset := "custom"
	if p, ok := form.MatchPreset(); ok {
		preset = string(p)
	}
	return components.RenderChecklist(items, m.capCursor) + "\n\n" +
		s.Label.Render("Preset: ") + s.Value.Render(preset)
}

func (m *Model) renderReview(form issuance.Form) string {
	s := theme.Current().S()
	p := issuance.PreviewOf(form)

	caps := make([]string, 0, len(issuance.CapabilityFields))
	for _, c := range form.Capabilities() {
		caps = append(caps, issuance.CapabilityLabel(c))
	}
	capText := "none"
	if len(caps) > 0 {
		capText = strings.Join(caps, ", ")
	}

	rows := []string{
		components.KeyValue("Name", form.Name, labelWidth),
		components.KeyValue("Ticker", form.Ticker, labelWidth),
		components.KeyValue("Supply", form.Supply, labelWidth),
		components.KeyValue("Decimals", form.Decimals, labelWidth),
		components.KeyValue("Raw supply", p.RawSupply, labelWidth),
		components.KeyValue("Issuance fee", p.FeeDisplay+" "+form.Ticker, labelWidth),
		components.KeyValue("Capabilities", "", labelWidth),
		"  " + s.Text.Width(50).Render(capText),
	}
	if m.address != "" {
		rows = append(rows, components.KeyValue("Issuer", wallet.ShortAddress(m.address), labelWidth))
	}
	rows = append(rows, "", components.RenderChecklist([]components.CheckItem{{
		Label:   "I accept the terms and conditions",
		Checked: form.TermsAccepted,
	}}, 0))
	if err := m.flow.Engine().LastError(); err != nil {
		rows = append(rows, "", s.Warning.Render("Last attempt failed: "+err.Error()))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderProcessing(form issuance.Form) string {
	s := theme.Current().S()
	return m.spinner.View() + " " + m.shimmer.View(fmt.Sprintf("Issuing %s…", tickerOr(form.Ticker))) +
		"\n\n" + s.Muted.Render(fmt.Sprintf("Waiting for confirmation (about %s).", m.flow.Engine().SubmitDelay()))
}

func (m *Model) renderSuccess(form issuance.Form) string {
	s := theme.Current().S()
	rows := []string{
		s.Success.Render(fmt.Sprintf("✓ %s (%s) has been issued", form.Name, form.Ticker)),
		"",
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
		return components.CreateBackNextButtons(true, true, "Issue Token")
	default:
		return components.CreateBackNextButtons(step.ID != wizard.StepBasicInfo, true, "Next →")
	}
}

func (m *Model) hints(step wizard.Step) []string {
	switch step.ID {
	case wizard.StepBasicInfo:
		return []string{"tab", "next field", "ctrl+t", "use suggested ticker", "enter", "continue", "esc", "cancel"}
	case wizard.StepCapabilities:
		return []string{"↑↓", "move", "space", "toggle", "p", "preset", "enter", "continue", "esc", "back"}
	case wizard.StepReview:
		return []string{"space", "accept terms", "enter", "issue", "esc", "back"}
	case wizard.StepProcessing:
		return []string{"ctrl+c", "quit"}
	default:
		return []string{"enter", "done"}
	}
}

func tickerOr(t string) string {
	if t == "" {
		return "tokens"
	}
	return t
}
