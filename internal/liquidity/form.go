// Package liquidity holds the pool provisioning form, its validators and
// the flow that drives it through the shared wizard engine.
package liquidity

import (
	"fmt"
	"strings"

	"github.com/mark3labs/tokenforge/internal/wizard"
)

// DefaultNativeCurrency is the pairing token used when none is configured.
const DefaultNativeCurrency = "EGLD"

// Text fields accepted by SetField.
const (
	FieldOwnToken      = "ownToken"
	FieldPairingToken  = "pairingToken"
	FieldOwnAmount     = "ownAmount"
	FieldPairingAmount = "pairingAmount"
)

// Boolean fields accepted by Toggle.
const (
	FieldRisksAccepted    = "risksAccepted"
	FieldOwnDeposited     = "ownDeposited"
	FieldPairingDeposited = "pairingDeposited"
)

// Form is a proposed pool deposit.
type Form struct {
	OwnToken      string
	PairingToken  string
	OwnAmount     string
	PairingAmount string

	RisksAccepted    bool
	OwnDeposited     bool
	PairingDeposited bool
}

// NewForm returns an empty form paired with native. An empty native means
// DefaultNativeCurrency.
func NewForm(native string) Form {
	if native == "" {
		native = DefaultNativeCurrency
	}
	return Form{PairingToken: native}
}

// SetField stores a sanitized value. Changing a token clears its deposit.
func (f *Form) SetField(field, raw string) error {
	switch field {
	case FieldOwnToken:
		t := normalizeToken(raw)
		if t != f.OwnToken {
			f.OwnDeposited = false
		}
		f.OwnToken = t
	case FieldPairingToken:
		t := normalizeToken(raw)
		if t != f.PairingToken {
			f.PairingDeposited = false
		}
		f.PairingToken = t
	case FieldOwnAmount:
		f.OwnAmount = SanitizeAmount(raw)
	case FieldPairingAmount:
		f.PairingAmount = SanitizeAmount(raw)
	default:
		return fmt.Errorf("%w: %q", wizard.ErrUnknownField, field)
	}
	return nil
}

// Toggle sets the risk acknowledgment or a deposit flag.
func (f *Form) Toggle(field string, on bool) error {
	switch field {
	case FieldRisksAccepted:
		f.RisksAccepted = on
	case FieldOwnDeposited:
		f.OwnDeposited = on
	case FieldPairingDeposited:
		f.PairingDeposited = on
	default:
		return fmt.Errorf("%w: %q", wizard.ErrUnknownField, field)
	}
	return nil
}

// SanitizeAmount keeps digits and the first decimal point, dropping
// everything else.
func SanitizeAmount(raw string) string {
	var b strings.Builder
	dot := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !dot:
			dot = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeToken(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// IsNative reports whether the pairing token is the native currency.
func (f Form) IsNative(native string) bool {
	if native == "" {
		native = DefaultNativeCurrency
	}
	return strings.EqualFold(f.PairingToken, native)
}
