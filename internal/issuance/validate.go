package issuance

import (
	"regexp"
	"strings"

	"github.com/mark3labs/tokenforge/internal/calc"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9]{3,10}$`)

// ValidateBasicInfo checks the token details step.
func ValidateBasicInfo(f Form) error {
	if strings.TrimSpace(f.Name) == "" || f.Ticker == "" || f.Supply == "" {
		return wizard.Invalid(wizard.ErrRequiredField, missingField(f),
			"Please fill in all required fields")
	}
	if !tickerPattern.MatchString(f.Ticker) {
		return wizard.Invalid(wizard.ErrTickerFormat, FieldTicker,
			"Ticker must be 3-10 uppercase letters or digits")
	}
	if !validSupply(f.Supply) {
		return wizard.Invalid(wizard.ErrInvalidSupply, FieldSupply,
			"Supply must be a positive number")
	}
	if _, err := calc.ParseDecimals(f.Decimals); err != nil {
		return wizard.Invalid(wizard.ErrInvalidDecimals, FieldDecimals,
			"Decimals must be a whole number between 0 and 18")
	}
	return nil
}

// ValidateTerms checks the review step acknowledgment.
func ValidateTerms(f Form) error {
	if !f.TermsAccepted {
		return wizard.Invalid(wizard.ErrNotAcknowledged, FieldTermsAccepted,
			"Please accept the terms and conditions")
	}
	return nil
}

// validSupply rejects anything that is not a plain positive number. A
// supply with trailing garbage ("12abc") is refused even though the fee
// preview reads its numeric prefix.
func validSupply(s string) bool {
	if _, err := calc.RawSupply(s, "0"); err != nil {
		return false
	}
	return calc.ParseAmount(s) > 0
}

func missingField(f Form) string {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return FieldName
	case f.Ticker == "":
		return FieldTicker
	default:
		return FieldSupply
	}
}
