/*
errors.go - Centralized error types for the plan engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Transport layers map these to HTTP status codes and user-facing messages.

ERROR CATEGORIES:
  1. Election errors - Invalid or out-of-bounds contribution elections.
     Caller-recoverable: the user can fix them by changing the input.
  2. Profile errors - Data-integrity problems in the upstream record
     (zero salary, zero pay periods, invalid date of birth). Not something
     the user can fix by moving a slider; surfaced distinctly.

USAGE:
  _, err := plan.ValidateAndNormalize(profile, election, time.Now())
  var verr *plan.ValidationError
  if errors.As(err, &verr) && verr.MaxAllowedPercent != nil {
      // suggest the corrected maximum to the user
  }

SEE ALSO:
  - contribution.go: Produces most of these errors
  - projection.go: Produces ErrDegenerateProfile and ErrInvalidValue
*/
package plan

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMalformedInput is returned when the election is not well-formed
	// (e.g., a missing or non-numeric value on the transport boundary).
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidType is returned when the election type is not one of the
	// two recognized kinds.
	ErrInvalidType = errors.New("invalid contribution type")

	// ErrInvalidValue is returned when the election value is negative or
	// otherwise not a plain non-negative number.
	ErrInvalidValue = errors.New("invalid contribution value")

	// ErrPercentOutOfRange is returned when a percentage election exceeds 100.
	ErrPercentOutOfRange = errors.New("percentage out of range")

	// ErrExceedsPaycheckAmount is returned when a fixed election exceeds
	// gross pay for one paycheck.
	ErrExceedsPaycheckAmount = errors.New("contribution exceeds paycheck amount")

	// ErrExceedsAnnualLimit is returned when the annualized contribution
	// exceeds the plan's regulatory limit.
	ErrExceedsAnnualLimit = errors.New("contribution exceeds annual limit")

	// ErrDegenerateProfile is returned when the profile record itself is
	// unusable: zero salary, zero pay periods, or an invalid timeline.
	// The engine refuses to compute rather than returning NaN or infinity.
	ErrDegenerateProfile = errors.New("degenerate profile")
)

// =============================================================================
// VALIDATION ERROR - Structured result for the write path
// =============================================================================

// ValidationError carries a machine-readable code, a human-readable message,
// and, for limit violations, the corrected maximum in the election's own
// units. It wraps one of the sentinel errors above for errors.Is checks.
type ValidationError struct {
	Code    string
	Message string

	// MaxAllowedPercent is set on annual-limit violations of percentage
	// elections. Rounded down to one decimal place so the suggested value
	// itself passes validation.
	MaxAllowedPercent *decimal.Decimal

	// MaxAllowedAmount is set on annual-limit violations of fixed elections.
	// Rounded down to two decimal places, same reasoning.
	MaxAllowedAmount *decimal.Decimal

	err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.err }

func newValidationError(sentinel error, code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message, err: sentinel}
}

// NewMalformedInput builds the ValidationError for input that cannot be
// decoded into an election at all (unparsable body, missing value). Transport
// layers use it so malformed input flows through the same taxonomy as every
// other election error.
func NewMalformedInput(message string) *ValidationError {
	return newValidationError(ErrMalformedInput, "malformed_input", message)
}

func newDegenerateProfileError(profileID string) *ValidationError {
	return &ValidationError{
		Code:    "degenerate_profile",
		Message: fmt.Sprintf("profile %q has unusable salary, pay schedule, or date of birth", profileID),
		err:     ErrDegenerateProfile,
	}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid user input and
// can be fixed by changing the election.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrPercentOutOfRange) ||
		errors.Is(err, ErrExceedsPaycheckAmount) ||
		errors.Is(err, ErrExceedsAnnualLimit)
}

// IsDegenerateProfile returns true if the error indicates a data-integrity
// problem in the upstream profile record.
func IsDegenerateProfile(err error) bool {
	return errors.Is(err, ErrDegenerateProfile)
}
