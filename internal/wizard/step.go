// Package wizard implements the step sequencing shared by the issuance and
// liquidity flows: an ordered list of steps, a current position that only
// moves through Advance, Retreat and JumpTo, and the simulated submission
// that carries a flow through processing into success.
package wizard

// StepID identifies a step within a flow.
type StepID string

// Token issuance steps.
const (
	StepBasicInfo    StepID = "basicInfo"
	StepCapabilities StepID = "capabilities"
	StepReview       StepID = "review"
)

// Liquidity steps.
const (
	StepSelectTokens StepID = "selectTokens"
	StepSetAmounts   StepID = "setAmounts"
	StepRisks        StepID = "risks"
	StepDeposit      StepID = "deposit"
)

// Steps shared by both flows, reached only through submission.
const (
	StepProcessing StepID = "processing"
	StepSuccess    StepID = "success"
)

// StepKind classifies how a step is left.
type StepKind int

const (
	// KindInput steps advance with ordinary validated navigation.
	KindInput StepKind = iota
	// KindSubmit is the last step before submission; "next" submits.
	KindSubmit
	// KindProcessing is shown while a submission is in flight.
	KindProcessing
	// KindSuccess is terminal.
	KindSuccess
)

// String returns the kind name used in logs.
func (k StepKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindSubmit:
		return "submit"
	case KindProcessing:
		return "processing"
	case KindSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Step is one node of a wizard.
type Step struct {
	ID    StepID
	Title string
	Icon  string // presentation only
	Kind  StepKind
}

// StepState is a step as seen from the current position, used to draw a
// progress rail.
type StepState struct {
	Step
	Index       int
	IsCompleted bool
	IsCurrent   bool
	IsDisabled  bool
}

// IssuanceSteps returns the token issuance sequence.
func IssuanceSteps() []Step {
	return []Step{
		{ID: StepBasicInfo, Title: "Token Details", Icon: "◆", Kind: KindInput},
		{ID: StepCapabilities, Title: "Capabilities", Icon: "⚙", Kind: KindInput},
		{ID: StepReview, Title: "Review & Issue", Icon: "✎", Kind: KindSubmit},
		{ID: StepProcessing, Title: "Processing", Icon: "◌", Kind: KindProcessing},
		{ID: StepSuccess, Title: "Done", Icon: "✓", Kind: KindSuccess},
	}
}

// LiquiditySteps returns the liquidity provisioning sequence.
func LiquiditySteps() []Step {
	return []Step{
		{ID: StepSelectTokens, Title: "Select Pair", Icon: "⇄", Kind: KindInput},
		{ID: StepSetAmounts, Title: "Set Amounts", Icon: "#", Kind: KindInput},
		{ID: StepRisks, Title: "Risks", Icon: "!", Kind: KindInput},
		{ID: StepDeposit, Title: "Deposit", Icon: "↓", Kind: KindSubmit},
		{ID: StepProcessing, Title: "Processing", Icon: "◌", Kind: KindProcessing},
		{ID: StepSuccess, Title: "Done", Icon: "✓", Kind: KindSuccess},
	}
}
