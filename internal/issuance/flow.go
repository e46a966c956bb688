package issuance

import (
	"github.com/mark3labs/tokenforge/internal/calc"
	"github.com/mark3labs/tokenforge/internal/guidance"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

// FlowName identifies the issuance flow in logs, events and receipts.
const FlowName = "issuance"

// Config wires a Flow to its collaborators. Every field is optional.
type Config struct {
	Submitter  *wizard.Submitter
	OnComplete func()
	Observers  []func(wizard.Event)
}

// Preview is the calculator output for the current form.
type Preview struct {
	Fee             float64
	FeeDisplay      string
	RawSupply       string // empty when supply or decimals do not parse
	SuggestedTicker string
}

// Flow is one token issuance wizard. All methods are safe for concurrent
// use; form edits are refused while a submission is in flight.
type Flow struct {
	engine   *wizard.Engine
	form     Form
	guidance guidance.Key
}

// NewFlow creates a flow positioned on the first step with a default form.
func NewFlow(cfg Config) *Flow {
	f := &Flow{
		form:     NewForm(),
		guidance: guidance.ForStep(wizard.StepBasicInfo),
	}
	opts := []wizard.EngineOption{
		wizard.OnStepEnter(func(st wizard.Step) {
			f.guidance = guidance.ForStep(st.ID)
		}),
	}
	if cfg.OnComplete != nil {
		opts = append(opts, wizard.OnComplete(cfg.OnComplete))
	}
	for _, obs := range cfg.Observers {
		opts = append(opts, wizard.Observe(obs))
	}
	f.engine = wizard.NewEngine(FlowName, wizard.IssuanceSteps(), f.validator, cfg.Submitter, opts...)
	return f
}

// validator runs under the engine lock.
func (f *Flow) validator(id wizard.StepID) wizard.Validator {
	switch id {
	case wizard.StepBasicInfo:
		return func() error { return ValidateBasicInfo(f.form) }
	case wizard.StepReview:
		return func() error { return ValidateTerms(f.form) }
	default:
		return nil
	}
}

// Form returns a snapshot of the form.
func (f *Flow) Form() Form {
	var out Form
	f.engine.Read(func() { out = f.form })
	return out
}

// SetField updates a text field and returns the new snapshot.
func (f *Flow) SetField(field, raw string) (Form, error) {
	return f.mutate(func(form *Form) error { return form.SetField(field, raw) })
}

// Toggle updates a capability or the terms acknowledgment.
func (f *Flow) Toggle(field string, on bool) (Form, error) {
	return f.mutate(func(form *Form) error { return form.Toggle(field, on) })
}

// ApplyPreset overwrites the capability flags with a preset.
func (f *Flow) ApplyPreset(p Preset) (Form, error) {
	return f.mutate(func(form *Form) error {
		form.ApplyPreset(p)
		return nil
	})
}

func (f *Flow) mutate(fn func(*Form) error) (Form, error) {
	err := f.engine.Guard(func() error { return fn(&f.form) })
	return f.Form(), err
}

// Preview recomputes the derived values from the live form.
func (f *Flow) Preview() Preview {
	return PreviewOf(f.Form())
}

// PreviewOf computes the preview for a form.
func PreviewOf(form Form) Preview {
	fee := calc.TokenIssuanceFee(form.Supply)
	p := Preview{
		Fee:        fee,
		FeeDisplay: calc.FormatAmount(fee, 4),
	}
	if raw, err := calc.RawSupply(form.Supply, form.Decimals); err == nil {
		p.RawSupply = raw
	}
	if form.Ticker == "" {
		p.SuggestedTicker = SuggestTicker(form.Name)
	}
	return p
}

// Guidance returns the help entry for the current step.
func (f *Flow) Guidance() guidance.Entry {
	var key guidance.Key
	f.engine.Read(func() { key = f.guidance })
	e, _ := guidance.Lookup(key)
	return e
}

// Next validates the current step and moves on; see wizard.Engine.Next.
func (f *Flow) Next() (wizard.Transition, error) { return f.engine.Next() }

// Back moves to the previous step.
func (f *Flow) Back() error { return f.engine.Back() }

// Begin starts the submission from the review step.
func (f *Flow) Begin() error { return f.engine.Begin() }

// Await blocks for the simulated confirmation.
func (f *Flow) Await() (wizard.Receipt, error) { return f.engine.Await() }

// Finish records the outcome of Await.
func (f *Flow) Finish(r wizard.Receipt, err error) error { return f.engine.Finish(r, err) }

// Submit runs a whole submission, blocking for the delay.
func (f *Flow) Submit() (wizard.Receipt, error) { return f.engine.Submit() }

// Complete invokes the completion callback once the flow has succeeded.
func (f *Flow) Complete() error { return f.engine.Complete() }

// Engine exposes the underlying engine for read-only views.
func (f *Flow) Engine() *wizard.Engine { return f.engine }
