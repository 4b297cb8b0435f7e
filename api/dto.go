/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract: the engine works
  in decimal.Decimal, the wire format uses plain JSON numbers.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

UNITS:
  Contribution values are tagged by "type" exactly as in the engine; percent
  and currency are never mixed on the wire. Projection balances are whole
  currency units, other money fields carry cents.

SEE ALSO:
  - handlers.go: Uses these types
  - plan/types.go: Domain model these map from
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/retirement-engine/plan"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ContributionDTO represents a contribution election in API responses.
type ContributionDTO struct {
	Type        string  `json:"type"`
	Value       float64 `json:"value"`
	LastUpdated string  `json:"last_updated,omitempty"`
}

// UpdateContributionRequest is the write-path request body. LastUpdated is
// deliberately absent: the engine stamps it.
type UpdateContributionRequest struct {
	Type  string   `json:"type"`
	Value *float64 `json:"value"`
}

// ConvertContributionRequest asks for an election re-expressed in the target
// type without changing economic intent.
type ConvertContributionRequest struct {
	Type       string   `json:"type"`
	Value      *float64 `json:"value"`
	TargetType string   `json:"target_type"`
}

// UpdateContributionResponse mirrors the original API shape.
type UpdateContributionResponse struct {
	Message      string          `json:"message"`
	Contribution ContributionDTO `json:"contribution"`
}

// EmployerMatchDTO describes the match formula.
type EmployerMatchDTO struct {
	MatchPercent    float64 `json:"match_percent"`
	MaxMatchPercent float64 `json:"max_match_percent"`
}

// YTDDTO is the year-to-date summary.
type YTDDTO struct {
	EmployeeContributions float64 `json:"employee_contributions"`
	EmployerContributions float64 `json:"employer_contributions"`
	TotalBalance          float64 `json:"total_balance"`
	PaychecksProcessed    int     `json:"paychecks_processed"`
}

// ProfileDTO represents the participant profile, including the derived
// calculated_age and paycheck_gross fields.
type ProfileDTO struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Email             string           `json:"email,omitempty"`
	DateOfBirth       string           `json:"date_of_birth"`
	HireDate          string           `json:"hire_date"`
	AnnualSalary      float64          `json:"annual_salary"`
	PayPeriodsPerYear int              `json:"pay_periods_per_year"`
	EmployerMatch     EmployerMatchDTO `json:"employer_match"`
	Contribution      ContributionDTO  `json:"contribution"`
	YTD               YTDDTO           `json:"ytd"`
	PlanAnnualLimit   float64          `json:"plan_annual_limit"`
	CalculatedAge     int              `json:"calculated_age"`
	PaycheckGross     float64          `json:"paycheck_gross"`
}

// ProjectionPointDTO is one (age, balance) pair; balance in whole currency.
type ProjectionPointDTO struct {
	Age     int     `json:"age"`
	Balance float64 `json:"balance"`
}

// PaycheckBreakdownDTO is the per-paycheck view of the current election.
type PaycheckBreakdownDTO struct {
	Employee float64 `json:"employee"`
	Employer float64 `json:"employer"`
	Total    float64 `json:"total"`
}

// ProjectionDTO is the projection read-path response.
type ProjectionDTO struct {
	CurrentAge                   int                  `json:"current_age"`
	RetirementAge                int                  `json:"retirement_age"`
	YearsToRetirement            int                  `json:"years_to_retirement"`
	CurrentBalance               float64              `json:"current_balance"`
	AnnualEmployeeContribution   float64              `json:"annual_employee_contribution"`
	AnnualEmployerContribution   float64              `json:"annual_employer_contribution"`
	TotalAnnualContribution      float64              `json:"total_annual_contribution"`
	ProjectedBalanceAtRetirement float64              `json:"projected_balance_at_retirement"`
	AssumedAnnualReturn          string               `json:"assumed_annual_return"`
	PerPaycheck                  PaycheckBreakdownDTO `json:"per_paycheck"`
	YearlyProjections            []ProjectionPointDTO `json:"yearly_projections"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response. The max_allowed_* hints are
// present only on annual-limit rejections, in the election's own units.
type ErrorResponse struct {
	Error             string   `json:"error"`
	Code              string   `json:"code,omitempty"`
	MaxAllowedPercent *float64 `json:"max_allowed_percent,omitempty"`
	MaxAllowedAmount  *float64 `json:"max_allowed_amount,omitempty"`
	Details           any      `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toContributionDTO(e plan.ContributionElection) ContributionDTO {
	dto := ContributionDTO{
		Type:  string(e.Type),
		Value: e.Value.InexactFloat64(),
	}
	if !e.LastUpdated.IsZero() {
		dto.LastUpdated = e.LastUpdated.UTC().Format(time.RFC3339)
	}
	return dto
}

func toProjectionDTO(result *plan.ProjectionResult) ProjectionDTO {
	points := make([]ProjectionPointDTO, len(result.YearlyProjections))
	for i, pt := range result.YearlyProjections {
		points[i] = ProjectionPointDTO{Age: pt.Age, Balance: pt.Balance.InexactFloat64()}
	}

	return ProjectionDTO{
		CurrentAge:                   result.CurrentAge,
		RetirementAge:                result.RetirementAge,
		YearsToRetirement:            result.YearsToRetirement,
		CurrentBalance:               result.CurrentBalance.InexactFloat64(),
		AnnualEmployeeContribution:   round2(result.AnnualEmployeeContribution),
		AnnualEmployerContribution:   round2(result.AnnualEmployerContribution),
		TotalAnnualContribution:      round2(result.TotalAnnualContribution),
		ProjectedBalanceAtRetirement: result.ProjectedBalanceAtRetirement.InexactFloat64(),
		AssumedAnnualReturn:          result.AssumedAnnualReturn.Mul(decimal.NewFromInt(100)).String() + "%",
		PerPaycheck: PaycheckBreakdownDTO{
			Employee: round2(result.PerPaycheckEmployee),
			Employer: round2(result.PerPaycheckEmployer),
			Total:    round2(result.PerPaycheckEmployee.Add(result.PerPaycheckEmployer)),
		},
		YearlyProjections: points,
	}
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
