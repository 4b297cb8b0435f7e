/*
contribution.go - Contribution normalizer, validator, and type conversion

PURPOSE:
  Converts a proposed contribution election into a normalized, persist-ready
  record, enforcing the plan's legality rules in a fixed order. Also provides
  the economic-intent-preserving conversion between percentage and fixed
  elections, and the effective-percent bridge into the projection engine.

VALIDATION ORDER (first failing rule wins):
  1. Election type must be recognized
  2. Value must be a non-negative number
  3. Percentage: value <= 100, then annualized amount <= plan limit
  4. Fixed: value <= paycheck gross, then annualized amount <= plan limit

LIMIT HINTS:
  Annual-limit rejections report the corrected maximum in the election's own
  units (percent to one decimal place, currency to two). The hint is rounded
  DOWN so that resubmitting the suggested value always passes validation.

CONVERSION:
  Toggling the election type preserves economic intent, not the raw number:
  6% of a $3,269 paycheck becomes $196 fixed, not 6. Conversion is a pure
  transform; the caller re-validates the converted value before persisting.

SEE ALSO:
  - types.go: ContributionElection, ProfileSnapshot
  - projection.go: Consumes the effective percent
*/
package plan

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ValidateAndNormalize validates a proposed election against the profile's
// salary, pay schedule, and plan limit. On success it returns a new election
// with LastUpdated stamped to now; this is the only place LastUpdated is set.
// On failure it returns a *ValidationError describing the first violated rule.
func ValidateAndNormalize(p *ProfileSnapshot, e ContributionElection, now time.Time) (ContributionElection, error) {
	if p.PayPeriodsPerYear <= 0 || !p.AnnualSalary.IsPositive() {
		return ContributionElection{}, newDegenerateProfileError(p.ID)
	}

	if !e.Type.Valid() {
		return ContributionElection{}, newValidationError(ErrInvalidType,
			"invalid_type",
			fmt.Sprintf("invalid contribution type %q: must be %q or %q", e.Type, ElectionPercentage, ElectionFixed))
	}

	if e.Value.IsNegative() {
		return ContributionElection{}, newValidationError(ErrInvalidValue,
			"invalid_value", "contribution value must be a non-negative number")
	}

	switch e.Type {
	case ElectionPercentage:
		if e.Value.GreaterThan(hundred) {
			return ContributionElection{}, newValidationError(ErrPercentOutOfRange,
				"percent_out_of_range", "percentage cannot exceed 100%")
		}
		annual := e.Value.Div(hundred).Mul(p.AnnualSalary)
		if annual.GreaterThan(p.PlanAnnualLimit) {
			verr := newValidationError(ErrExceedsAnnualLimit,
				"exceeds_annual_limit",
				fmt.Sprintf("annual contribution would exceed the plan limit of $%s", p.PlanAnnualLimit))
			maxPercent := p.PlanAnnualLimit.Div(p.AnnualSalary).Mul(hundred).RoundDown(1)
			verr.MaxAllowedPercent = &maxPercent
			return ContributionElection{}, verr
		}

	case ElectionFixed:
		gross, err := p.PaycheckGross()
		if err != nil {
			return ContributionElection{}, err
		}
		if e.Value.GreaterThan(gross) {
			return ContributionElection{}, newValidationError(ErrExceedsPaycheckAmount,
				"exceeds_paycheck_amount", "contribution cannot exceed the paycheck amount")
		}
		annual := e.Value.Mul(decimal.NewFromInt(int64(p.PayPeriodsPerYear)))
		if annual.GreaterThan(p.PlanAnnualLimit) {
			verr := newValidationError(ErrExceedsAnnualLimit,
				"exceeds_annual_limit",
				fmt.Sprintf("annual contribution would exceed the plan limit of $%s", p.PlanAnnualLimit))
			maxAmount := p.PlanAnnualLimit.Div(decimal.NewFromInt(int64(p.PayPeriodsPerYear))).RoundDown(2)
			verr.MaxAllowedAmount = &maxAmount
			return ContributionElection{}, verr
		}
	}

	return ContributionElection{Type: e.Type, Value: e.Value, LastUpdated: now}, nil
}

// Convert re-expresses an election in the target type while preserving its
// economic intent. The converted value is rounded to the nearest integer,
// ties away from zero. Convert does not validate; callers re-validate the
// result before persisting. LastUpdated is carried through unchanged.
func Convert(p *ProfileSnapshot, e ContributionElection, target ElectionType) (ContributionElection, error) {
	if !e.Type.Valid() || !target.Valid() {
		return ContributionElection{}, newValidationError(ErrInvalidType,
			"invalid_type", "conversion requires recognized contribution types")
	}
	if e.Type == target {
		return e, nil
	}

	gross, err := p.PaycheckGross()
	if err != nil {
		return ContributionElection{}, err
	}
	if gross.IsZero() {
		return ContributionElection{}, newDegenerateProfileError(p.ID)
	}

	var value decimal.Decimal
	if target == ElectionFixed {
		value = e.Value.Div(hundred).Mul(gross).Round(0)
	} else {
		value = e.Value.Div(gross).Mul(hundred).Round(0)
	}

	return ContributionElection{Type: target, Value: value, LastUpdated: e.LastUpdated}, nil
}

// EffectivePercent computes the percent-of-gross-pay an election represents:
// identity for percentage elections, value/gross*100 for fixed ones. This is
// the bridge between the persisted election and the projection engine.
func EffectivePercent(p *ProfileSnapshot, e ContributionElection) (decimal.Decimal, error) {
	switch e.Type {
	case ElectionPercentage:
		return e.Value, nil
	case ElectionFixed:
		gross, err := p.PaycheckGross()
		if err != nil {
			return decimal.Zero, err
		}
		if gross.IsZero() {
			return decimal.Zero, newDegenerateProfileError(p.ID)
		}
		return e.Value.Div(gross).Mul(hundred), nil
	default:
		return decimal.Zero, newValidationError(ErrInvalidType,
			"invalid_type", fmt.Sprintf("invalid contribution type %q", e.Type))
	}
}
