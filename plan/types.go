/*
Package plan provides the retirement-savings contribution and projection engine.

PURPOSE:
  This package contains the domain logic for a single-participant 401(k)-style
  plan: validating contribution elections, converting between election types,
  and projecting account balance to retirement age under compounding growth.

KEY CONCEPTS IN THIS FILE (types.go):
  - ProfileSnapshot: An externally-owned, read-only view of the participant
  - ContributionElection: A tagged election (percentage-of-pay or fixed amount)
  - EmployerMatch: Match rate and salary cap for employer contributions
  - YTD: Year-to-date contribution and balance figures

DESIGN PRINCIPLES:
  1. Immutability: The engine never mutates a snapshot; it returns new values
  2. Precision: Uses decimal.Decimal to avoid floating-point errors in money
  3. Type Safety: Election values are tagged by ElectionType so percent and
     currency units cannot be silently mixed
  4. Purity: Every operation is a function of its inputs plus an explicit
     "now"/"today" argument - no hidden shared state

USAGE:
  election := plan.ContributionElection{Type: plan.ElectionPercentage, Value: decimal.NewFromInt(6)}
  normalized, err := plan.ValidateAndNormalize(profile, election, time.Now())

SEE ALSO:
  - contribution.go: Validation, normalization, and type conversion
  - projection.go: Compounding projection to retirement age
  - errors.go: Error taxonomy
*/
package plan

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONTRIBUTION ELECTION - Tagged percent-or-currency value
// =============================================================================

// ElectionType selects how ContributionElection.Value is interpreted.
type ElectionType string

const (
	// ElectionPercentage interprets Value as percent of gross pay (0-100).
	ElectionPercentage ElectionType = "percentage"

	// ElectionFixed interprets Value as currency per paycheck.
	ElectionFixed ElectionType = "fixed"
)

// Valid reports whether t is one of the two recognized election types.
func (t ElectionType) Valid() bool {
	return t == ElectionPercentage || t == ElectionFixed
}

// ContributionElection is the participant's contribution setting. Exactly one
// interpretation of Value is active at a time, selected by Type.
type ContributionElection struct {
	Type  ElectionType
	Value decimal.Decimal

	// LastUpdated is set only by ValidateAndNormalize. Caller-supplied
	// timestamps are ignored on the write path.
	LastUpdated time.Time
}

// =============================================================================
// EMPLOYER MATCH
// =============================================================================

// EmployerMatch describes the employer contribution formula: the employer
// contributes MatchPercent% of the employee contribution, counting employee
// contributions only up to MaxMatchPercent% of salary.
type EmployerMatch struct {
	MatchPercent    decimal.Decimal
	MaxMatchPercent decimal.Decimal
}

// =============================================================================
// YEAR-TO-DATE FIGURES
// =============================================================================

// YTD holds the year-to-date account figures owned by the payroll system.
type YTD struct {
	EmployeeContributions decimal.Decimal
	EmployerContributions decimal.Decimal
	TotalBalance          decimal.Decimal
	PaychecksProcessed    int
}

// =============================================================================
// PROFILE SNAPSHOT - Externally-owned participant record
// =============================================================================

// ProfileSnapshot is the participant record as the engine requires it. The
// surrounding application owns the record and its persistence; the engine
// treats every snapshot as immutable input.
type ProfileSnapshot struct {
	ID    string
	Name  string
	Email string

	DateOfBirth time.Time
	HireDate    time.Time

	AnnualSalary      decimal.Decimal
	PayPeriodsPerYear int

	EmployerMatch EmployerMatch
	Contribution  ContributionElection
	YTD           YTD

	// PlanAnnualLimit is the regulatory ceiling on employee annual
	// contributions. Configured, not derived.
	PlanAnnualLimit decimal.Decimal
}

// PaycheckGross returns annualSalary / payPeriodsPerYear, the base against
// which fixed-amount elections are bounded.
func (p *ProfileSnapshot) PaycheckGross() (decimal.Decimal, error) {
	if p.PayPeriodsPerYear <= 0 || !p.AnnualSalary.IsPositive() {
		return decimal.Zero, newDegenerateProfileError(p.ID)
	}
	return p.AnnualSalary.Div(decimal.NewFromInt(int64(p.PayPeriodsPerYear))), nil
}

// AgeAt computes the participant's age on the given day using a fixed
// 365.25-day-year approximation. This is a known approximation, not exact
// calendar arithmetic.
func (p *ProfileSnapshot) AgeAt(today time.Time) (int, error) {
	if p.DateOfBirth.IsZero() {
		return 0, newDegenerateProfileError(p.ID)
	}
	days := today.Sub(p.DateOfBirth).Hours() / 24
	age := int(math.Floor(days / 365.25))
	if age < 0 {
		return 0, newDegenerateProfileError(p.ID)
	}
	return age, nil
}
