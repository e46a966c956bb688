package liquidity

import (
	"fmt"

	"github.com/mark3labs/tokenforge/internal/calc"
	"github.com/mark3labs/tokenforge/internal/wizard"
)

// ValidateTokenSelection checks that both sides of the pair are chosen.
func ValidateTokenSelection(f Form) error {
	if f.OwnToken == "" {
		return wizard.Invalid(wizard.ErrTokenNotChosen, FieldOwnToken, "Please select your token")
	}
	if f.PairingToken == "" {
		return wizard.Invalid(wizard.ErrTokenNotChosen, FieldPairingToken, "Please select a pairing token")
	}
	return nil
}

// ValidateAmounts checks that both deposit amounts are positive. Messages
// name the token concerned.
func ValidateAmounts(f Form) error {
	if f.OwnAmount == "" || calc.ParseAmount(f.OwnAmount) <= 0 {
		return wizard.Invalid(wizard.ErrInvalidAmount, FieldOwnAmount,
			fmt.Sprintf("Please enter a valid %s amount", tickerOr(f.OwnToken, "token")))
	}
	if f.PairingAmount == "" || calc.ParseAmount(f.PairingAmount) <= 0 {
		return wizard.Invalid(wizard.ErrInvalidAmount, FieldPairingAmount,
			fmt.Sprintf("Please enter a valid %s amount", tickerOr(f.PairingToken, "pairing token")))
	}
	return nil
}

// ValidateRisks checks the impermanent loss acknowledgment.
func ValidateRisks(f Form) error {
	if !f.RisksAccepted {
		return wizard.Invalid(wizard.ErrNotAcknowledged, FieldRisksAccepted,
			"Please acknowledge the risks of providing liquidity")
	}
	return nil
}

// ValidateDeposits requires the own-token deposit, and the pairing deposit
// unless the pairing token is the native currency, which is sent with the
// final transaction.
func ValidateDeposits(f Form, native string) error {
	if !f.OwnDeposited {
		return wizard.Invalid(wizard.ErrDepositMissing, FieldOwnDeposited,
			fmt.Sprintf("Please deposit your %s first", tickerOr(f.OwnToken, "token")))
	}
	if !f.IsNative(native) && !f.PairingDeposited {
		return wizard.Invalid(wizard.ErrDepositMissing, FieldPairingDeposited,
			fmt.Sprintf("Please deposit your %s first", tickerOr(f.PairingToken, "pairing token")))
	}
	return nil
}

func tickerOr(ticker, fallback string) string {
	if ticker == "" {
		return fallback
	}
	return ticker
}
