// Package issuance holds the token issuance form, its validators and the
// flow that drives it through the shared wizard engine.
package issuance

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/tokenforge/internal/wizard"
)

// MaxTickerLen caps ticker input.
const MaxTickerLen = 10

// Text fields accepted by SetField.
const (
	FieldName     = "name"
	FieldTicker   = "ticker"
	FieldSupply   = "supply"
	FieldDecimals = "decimals"
)

// Boolean fields accepted by Toggle.
const (
	FieldCanMint            = "canMint"
	FieldCanBurn            = "canBurn"
	FieldCanFreeze          = "canFreeze"
	FieldCanWipe            = "canWipe"
	FieldCanPause           = "canPause"
	FieldCanChangeOwner     = "canChangeOwner"
	FieldCanUpgrade         = "canUpgrade"
	FieldCanAddSpecialRoles = "canAddSpecialRoles"
	FieldTermsAccepted      = "termsAccepted"
)

// CapabilityFields lists the capability toggles in display order.
var CapabilityFields = []string{
	FieldCanMint,
	FieldCanBurn,
	FieldCanFreeze,
	FieldCanWipe,
	FieldCanPause,
	FieldCanChangeOwner,
	FieldCanUpgrade,
	FieldCanAddSpecialRoles,
}

// Form is a token waiting to be issued. The zero value is not useful; start
// from NewForm.
type Form struct {
	Name     string
	Ticker   string
	Supply   string
	Decimals string

	CanMint            bool
	CanBurn            bool
	CanFreeze          bool
	CanWipe            bool
	CanPause           bool
	CanChangeOwner     bool
	CanUpgrade         bool
	CanAddSpecialRoles bool

	TermsAccepted bool
}

// NewForm returns a form with the recommended defaults.
func NewForm() Form {
	f := Form{
		Supply:   "1000000",
		Decimals: "18",
	}
	f.ApplyPreset(PresetRecommended)
	return f
}

// SetField stores a normalized text value. Tickers are uppercased and cut
// to MaxTickerLen runes; other values are stored as typed.
func (f *Form) SetField(field, raw string) error {
	switch field {
	case FieldName:
		f.Name = raw
	case FieldTicker:
		f.Ticker = normalizeTicker(raw)
	case FieldSupply:
		f.Supply = strings.TrimSpace(raw)
	case FieldDecimals:
		f.Decimals = strings.TrimSpace(raw)
	default:
		return fmt.Errorf("%w: %q", wizard.ErrUnknownField, field)
	}
	return nil
}

// Toggle sets a capability or the terms acknowledgment.
func (f *Form) Toggle(field string, on bool) error {
	p := f.flag(field)
	if p == nil {
		return fmt.Errorf("%w: %q", wizard.ErrUnknownField, field)
	}
	*p = on
	f.normalizeCapabilities()
	return nil
}

// Flag reports the value of a boolean field. Unknown fields read false.
func (f Form) Flag(field string) bool {
	if p := f.flag(field); p != nil {
		return *p
	}
	return false
}

func (f *Form) flag(field string) *bool {
	switch field {
	case FieldCanMint:
		return &f.CanMint
	case FieldCanBurn:
		return &f.CanBurn
	case FieldCanFreeze:
		return &f.CanFreeze
	case FieldCanWipe:
		return &f.CanWipe
	case FieldCanPause:
		return &f.CanPause
	case FieldCanChangeOwner:
		return &f.CanChangeOwner
	case FieldCanUpgrade:
		return &f.CanUpgrade
	case FieldCanAddSpecialRoles:
		return &f.CanAddSpecialRoles
	case FieldTermsAccepted:
		return &f.TermsAccepted
	default:
		return nil
	}
}

// WipeAvailable reports whether the wipe capability may be switched on.
func (f Form) WipeAvailable() bool {
	return f.CanFreeze
}

// normalizeCapabilities is the only place the wipe-requires-freeze rule is
// applied.
func (f *Form) normalizeCapabilities() {
	if !f.CanFreeze {
		f.CanWipe = false
	}
}

// Capabilities returns the enabled capability fields in display order.
func (f Form) Capabilities() []string {
	var out []string
	for _, c := range CapabilityFields {
		if f.Flag(c) {
			out = append(out, c)
		}
	}
	return out
}

func normalizeTicker(raw string) string {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if utf8.RuneCountInString(t) <= MaxTickerLen {
		return t
	}
	return string([]rune(t)[:MaxTickerLen])
}

// CapabilityLabel returns the display label of a capability field.
func CapabilityLabel(field string) string {
	switch field {
	case FieldCanMint:
		return "Can Mint"
	case FieldCanBurn:
		return "Can Burn"
	case FieldCanFreeze:
		return "Can Freeze"
	case FieldCanWipe:
		return "Can Wipe"
	case FieldCanPause:
		return "Can Pause"
	case FieldCanChangeOwner:
		return "Can Change Owner"
	case FieldCanUpgrade:
		return "Can Upgrade"
	case FieldCanAddSpecialRoles:
		return "Can Add Special Roles"
	case FieldTermsAccepted:
		return "Accept Terms"
	default:
		return field
	}
}
