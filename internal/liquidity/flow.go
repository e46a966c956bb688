package liquidity

import (
	"fmt"
	"slices"

	"github.com/mark3labs/tokenforge/internal/calc"
	"github.com/mark3labs/tokenforge/internal/guidance"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

// FlowName identifies the liquidity flow in logs, events and receipts.
const FlowName = "liquidity"

// Config wires a Flow to its collaborators.
type Config struct {
	// NativeCurrency is the network's base token; empty means EGLD.
	NativeCurrency string
	// HeldTokens restricts the own-token choice. Empty allows any ticker.
	HeldTokens []string
	// PairingTokens lists the offered pairing tokens, native first.
	PairingTokens []string

	Submitter  *wizard.Submitter
	OnComplete func()
	Observers  []func(wizard.Event)
}

// Preview is the calculator output for the current amounts.
type Preview struct {
	Price      string
	LPTokens   float64
	LPFee      float64
	LPDisplay  string
	FeeDisplay string
}

// Flow is one liquidity provisioning wizard. All methods are safe for
// concurrent use; form edits are refused while a submission is in flight.
type Flow struct {
	engine   *wizard.Engine
	form     Form
	native   string
	held     []string
	pairings []string
	guidance guidance.Key
}

// NewFlow creates a flow positioned on the first step.
func NewFlow(cfg Config) *Flow {
	native := cfg.NativeCurrency
	if native == "" {
		native = DefaultNativeCurrency
	}
	pairings := cfg.PairingTokens
	if !slices.Contains(pairings, native) {
		pairings = append([]string{native}, pairings...)
	}
	f := &Flow{
		form:     NewForm(native),
		native:   native,
		held:     append([]string(nil), cfg.HeldTokens...),
		pairings: pairings,
		guidance: guidance.ForStep(wizard.StepSelectTokens),
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
	f.engine = wizard.NewEngine(FlowName, wizard.LiquiditySteps(), f.validator, cfg.Submitter, opts...)
	return f
}

func (f *Flow) validator(id wizard.StepID) wizard.Validator {
	switch id {
	case wizard.StepSelectTokens:
		return func() error { return ValidateTokenSelection(f.form) }
	case wizard.StepSetAmounts:
		return func() error { return ValidateAmounts(f.form) }
	case wizard.StepRisks:
		return func() error { return ValidateRisks(f.form) }
	case wizard.StepDeposit:
		return func() error { return ValidateDeposits(f.form, f.native) }
	default:
		return nil
	}
}

// NativeCurrency returns the configured native currency.
func (f *Flow) NativeCurrency() string { return f.native }

// HeldTokens returns the tokens the wallet can provide.
func (f *Flow) HeldTokens() []string { return append([]string(nil), f.held...) }

// PairingTokens returns the offered pairing tokens.
func (f *Flow) PairingTokens() []string { return append([]string(nil), f.pairings...) }

// Form returns a snapshot of the form.
func (f *Flow) Form() Form {
	var out Form
	f.engine.Read(func() { out = f.form })
	return out
}

// SetField updates a text field and returns the new snapshot. An own token
// the wallet does not hold is refused.
func (f *Flow) SetField(field, raw string) (Form, error) {
	return f.mutate(func(form *Form) error {
		if field == FieldOwnToken && len(f.held) > 0 {
			t := normalizeToken(raw)
			if t != "" && !slices.Contains(f.held, t) {
				return wizard.Invalid(wizard.ErrTokenNotChosen, FieldOwnToken,
					fmt.Sprintf("%s is not held by the connected wallet", t))
			}
		}
		return form.SetField(field, raw)
	})
}

// Toggle updates the risk acknowledgment or a deposit flag.
func (f *Flow) Toggle(field string, on bool) (Form, error) {
	return f.mutate(func(form *Form) error { return form.Toggle(field, on) })
}

func (f *Flow) mutate(fn func(*Form) error) (Form, error) {
	err := f.engine.Guard(func() error { return fn(&f.form) })
	return f.Form(), err
}

// PairingNeedsDeposit reports whether the pairing token has its own deposit.
func (f *Flow) PairingNeedsDeposit() bool {
	return !f.Form().IsNative(f.native)
}

// Preview recomputes the derived values from the live form.
func (f *Flow) Preview() Preview {
	return PreviewOf(f.Form())
}

// PreviewOf computes the preview for a form.
func PreviewOf(form Form) Preview {
	lp := calc.ExpectedLPTokens(form.OwnAmount, form.PairingAmount)
	fee := calc.LPFee(form.OwnAmount, form.PairingAmount)
	return Preview{
		Price:      calc.InitialPrice(form.OwnAmount, form.PairingAmount),
		LPTokens:   lp,
		LPFee:      fee,
		LPDisplay:  calc.FormatAmount(lp, 4),
		FeeDisplay: calc.FormatAmount(fee, 4),
	}
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

// Begin starts the submission from the deposit step.
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
