package wizard

import "errors"

// Sentinel kinds carried by ValidationError. Callers match them with
// errors.Is; the message shown to the user is the ValidationError's own.
var (
	ErrRequiredField   = errors.New("required field missing")
	ErrTickerFormat    = errors.New("ticker format")
	ErrInvalidSupply   = errors.New("invalid supply")
	ErrInvalidDecimals = errors.New("invalid decimals")
	ErrTokenNotChosen  = errors.New("token not selected")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNotAcknowledged = errors.New("acknowledgment required")
	ErrDepositMissing  = errors.New("deposit incomplete")
)

// Flow-level errors.
var (
	// ErrBusy is returned by navigation while a submission is in flight.
	ErrBusy = errors.New("submission in progress")
	// ErrNotSubmitStep is returned when submission is requested anywhere but
	// the flow's submit step.
	ErrNotSubmitStep = errors.New("not on the submit step")
	// ErrNoSubmission is returned by Finish when nothing is in flight.
	ErrNoSubmission = errors.New("no submission in flight")
	// ErrNotFinished is returned when completion is requested before success.
	ErrNotFinished = errors.New("flow has not reached success")
	// ErrUnknownField is returned for field names a form does not define.
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError is a user-correctable failure reported by a step
// validator.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

// Error returns the human-readable message.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel kind.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Invalid builds a ValidationError.
func Invalid(kind error, field, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}

// IsValidation reports whether err is a user-correctable validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
