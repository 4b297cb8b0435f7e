/*
projection.go - Compounding projection to retirement age

PURPOSE:
  Computes a year-by-year balance projection from the current account balance
  to retirement age, under a fixed annual return, given the effective
  contribution percent and the profile's salary, match formula, and age.

KEY INSIGHT:
  Projection is informational. It accepts any non-negative effective percent,
  including hypothetical "what-if" values that have not passed validation, so
  a slider can preview outcomes before saving.

THE RECORDED-SEQUENCE OFF-BY-ONE:
  YearlyProjections has yearsToRetirement+1 entries ending at retirement age,
  where each entry is the balance at the START of that year. The separate
  ProjectedBalanceAtRetirement figure is the balance AFTER the final year's
  contribution and growth are applied. The two intentionally differ by one
  compounding step; downstream consumers rely on both figures as-is.

EXAMPLE:
  result, err := plan.Project(profile, decimal.NewFromInt(6), time.Now())
  if err == nil {
      fmt.Println(result.ProjectedBalanceAtRetirement)
  }

SEE ALSO:
  - contribution.go: EffectivePercent produces the input percent
  - types.go: ProfileSnapshot
*/
package plan

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// RetirementAge is the single retirement age the engine projects to.
const RetirementAge = 65

// AnnualReturn is the flat assumed growth rate applied each projected year.
var AnnualReturn = decimal.NewFromFloat(0.07)

// =============================================================================
// PROJECTION RESULT
// =============================================================================

// ProjectionPoint is one recorded (age, balance) pair. Balance is rounded to
// whole currency units.
type ProjectionPoint struct {
	Age     int
	Balance decimal.Decimal
}

// ProjectionResult is the transient output of Project, recomputed on every
// request and never persisted.
type ProjectionResult struct {
	CurrentAge        int
	RetirementAge     int
	YearsToRetirement int

	CurrentBalance decimal.Decimal

	AnnualEmployeeContribution decimal.Decimal
	AnnualEmployerContribution decimal.Decimal
	TotalAnnualContribution    decimal.Decimal

	PerPaycheckEmployee decimal.Decimal
	PerPaycheckEmployer decimal.Decimal

	// ProjectedBalanceAtRetirement is the balance after compounding through
	// the final simulated year. The last YearlyProjections entry is the
	// balance at the start of that year; see the file header.
	ProjectedBalanceAtRetirement decimal.Decimal

	AssumedAnnualReturn decimal.Decimal

	// YearlyProjections has YearsToRetirement+1 entries with strictly
	// increasing ages, starting at CurrentAge.
	YearlyProjections []ProjectionPoint
}

// =============================================================================
// PROJECTION ENGINE
// =============================================================================

// PercentFromFloat converts a client-supplied percent into a decimal. NaN and
// infinities are rejected up front: decimal cannot represent them, and they
// belong to the same invalid-value class as negative percents.
func PercentFromFloat(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, newValidationError(ErrInvalidValue,
			"invalid_value", "effective percent must be a finite number")
	}
	return decimal.NewFromFloat(v), nil
}

// Project simulates the account balance year by year from today to retirement
// age. effectivePercent may be any non-negative value, validated or not. The
// snapshot is never mutated; identical inputs and an identical today yield
// identical output.
func Project(p *ProfileSnapshot, effectivePercent decimal.Decimal, today time.Time) (*ProjectionResult, error) {
	if effectivePercent.IsNegative() {
		return nil, newValidationError(ErrInvalidValue,
			"invalid_value", "effective percent must be a non-negative number")
	}

	gross, err := p.PaycheckGross()
	if err != nil {
		return nil, err
	}

	age, err := p.AgeAt(today)
	if err != nil {
		return nil, err
	}

	years := RetirementAge - age
	if years < 0 {
		years = 0
	}

	employee := effectivePercent.Div(hundred).Mul(p.AnnualSalary)
	matchedPercent := decimal.Min(effectivePercent, p.EmployerMatch.MaxMatchPercent)
	employer := matchedPercent.Div(hundred).Mul(p.AnnualSalary).Mul(p.EmployerMatch.MatchPercent.Div(hundred))
	total := employee.Add(employer)

	matchRate := p.EmployerMatch.MatchPercent.Div(hundred)
	perPaycheckEmployee := effectivePercent.Div(hundred).Mul(gross)
	perPaycheckEmployer := matchedPercent.Div(hundred).Mul(gross).Mul(matchRate)

	growth := decimal.NewFromInt(1).Add(AnnualReturn)
	balance := p.YTD.TotalBalance

	points := make([]ProjectionPoint, 0, years+1)
	for year := 0; year <= years; year++ {
		points = append(points, ProjectionPoint{Age: age + year, Balance: balance.Round(0)})
		balance = balance.Add(total).Mul(growth)
	}

	return &ProjectionResult{
		CurrentAge:                   age,
		RetirementAge:                RetirementAge,
		YearsToRetirement:            years,
		CurrentBalance:               p.YTD.TotalBalance,
		AnnualEmployeeContribution:   employee,
		AnnualEmployerContribution:   employer,
		TotalAnnualContribution:      total,
		PerPaycheckEmployee:          perPaycheckEmployee,
		PerPaycheckEmployer:          perPaycheckEmployer,
		ProjectedBalanceAtRetirement: balance.Round(0),
		AssumedAnnualReturn:          AnnualReturn,
		YearlyProjections:            points,
	}, nil
}
