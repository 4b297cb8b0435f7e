/*
handlers.go - HTTP API handlers for the retirement contribution engine

PURPOSE:
  Exposes the plan engine via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to domain logic.

ENDPOINTS:
  Profile:
    GET  /api/user                  Profile + calculated age + paycheck gross
    GET  /api/ytd                   Year-to-date summary

  Contribution:
    GET  /api/contribution          Persisted election
    PUT  /api/contribution          Validate and persist an election
    POST /api/contribution/convert  Type toggle preserving economic intent

  Projection:
    GET  /api/projection            Projection to retirement age; optional
                                    ?contributionPercent= what-if value

  Scenarios:
    GET  /api/scenarios             List demo scenarios
    GET  /api/scenarios/current     Currently loaded scenario
    POST /api/scenarios/load        Replace the profile with a demo scenario

REQUEST FLOW:
  1. Parse HTTP request
  2. Load the profile snapshot from the store
  3. Call domain logic (plan.ValidateAndNormalize, plan.Project, ...)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input (user can correct these)
  - 404: Profile not found
  - 500: Degenerate profile data, internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/warp/retirement-engine/plan"
)

// DefaultProfileID is the identity of the single profile this server manages.
const DefaultProfileID = "primary"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     plan.ProfileStore
	ProfileID string

	// PlanAnnualLimit is stamped onto scenario profiles on load.
	PlanAnnualLimit decimal.Decimal

	// Now is injectable for tests.
	Now func() time.Time

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store plan.ProfileStore, planAnnualLimit decimal.Decimal) *Handler {
	return &Handler{
		Store:           store,
		ProfileID:       DefaultProfileID,
		PlanAnnualLimit: planAnnualLimit,
		Now:             time.Now,
	}
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) *plan.ProfileSnapshot {
	p, err := h.Store.GetProfile(r.Context(), h.ProfileID)
	if err != nil {
		if errors.Is(err, plan.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found", nil)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to load profile", err)
		}
		return nil
	}
	return p
}

// =============================================================================
// PROFILE HANDLERS
// =============================================================================

// GetUser returns the profile with derived age and paycheck gross.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}

	age, err := p.AgeAt(h.Now())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	gross, err := p.PaycheckGross()
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ProfileDTO{
		ID:                p.ID,
		Name:              p.Name,
		Email:             p.Email,
		DateOfBirth:       p.DateOfBirth.Format("2006-01-02"),
		HireDate:          p.HireDate.Format("2006-01-02"),
		AnnualSalary:      p.AnnualSalary.InexactFloat64(),
		PayPeriodsPerYear: p.PayPeriodsPerYear,
		EmployerMatch: EmployerMatchDTO{
			MatchPercent:    p.EmployerMatch.MatchPercent.InexactFloat64(),
			MaxMatchPercent: p.EmployerMatch.MaxMatchPercent.InexactFloat64(),
		},
		Contribution: toContributionDTO(p.Contribution),
		YTD: YTDDTO{
			EmployeeContributions: p.YTD.EmployeeContributions.InexactFloat64(),
			EmployerContributions: p.YTD.EmployerContributions.InexactFloat64(),
			TotalBalance:          p.YTD.TotalBalance.InexactFloat64(),
			PaychecksProcessed:    p.YTD.PaychecksProcessed,
		},
		PlanAnnualLimit: p.PlanAnnualLimit.InexactFloat64(),
		CalculatedAge:   age,
		PaycheckGross:   round2(gross),
	})
}

// GetYTD returns the year-to-date summary.
func (h *Handler) GetYTD(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}

	writeJSON(w, http.StatusOK, YTDDTO{
		EmployeeContributions: p.YTD.EmployeeContributions.InexactFloat64(),
		EmployerContributions: p.YTD.EmployerContributions.InexactFloat64(),
		TotalBalance:          p.YTD.TotalBalance.InexactFloat64(),
		PaychecksProcessed:    p.YTD.PaychecksProcessed,
	})
}

// =============================================================================
// CONTRIBUTION HANDLERS
// =============================================================================

// GetContribution returns the persisted contribution election.
func (h *Handler) GetContribution(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}
	writeJSON(w, http.StatusOK, toContributionDTO(p.Contribution))
}

// UpdateContribution validates and persists a new contribution election.
func (h *Handler) UpdateContribution(w http.ResponseWriter, r *http.Request) {
	var req UpdateContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, plan.NewMalformedInput("invalid request body"))
		return
	}
	if req.Value == nil {
		writeEngineError(w, plan.NewMalformedInput("contribution value is required and must be a number"))
		return
	}

	p := h.profile(w, r)
	if p == nil {
		return
	}

	election := plan.ContributionElection{
		Type:  plan.ElectionType(req.Type),
		Value: decimal.NewFromFloat(*req.Value),
	}

	normalized, err := plan.ValidateAndNormalize(p, election, h.Now())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	if err := h.Store.UpdateContribution(r.Context(), p.ID, normalized); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save contribution", err)
		return
	}

	writeJSON(w, http.StatusOK, UpdateContributionResponse{
		Message:      "Contribution updated successfully",
		Contribution: toContributionDTO(normalized),
	})
}

// ConvertContribution re-expresses an election in the target type. Pure
// transform: nothing is persisted, the caller re-validates via PUT.
func (h *Handler) ConvertContribution(w http.ResponseWriter, r *http.Request) {
	var req ConvertContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, plan.NewMalformedInput("invalid request body"))
		return
	}
	if req.Value == nil {
		writeEngineError(w, plan.NewMalformedInput("contribution value is required and must be a number"))
		return
	}

	p := h.profile(w, r)
	if p == nil {
		return
	}

	election := plan.ContributionElection{
		Type:  plan.ElectionType(req.Type),
		Value: decimal.NewFromFloat(*req.Value),
	}

	converted, err := plan.Convert(p, election, plan.ElectionType(req.TargetType))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ContributionDTO{
		Type:  string(converted.Type),
		Value: converted.Value.InexactFloat64(),
	})
}

// =============================================================================
// PROJECTION HANDLER
// =============================================================================

// GetProjection returns the compounding projection to retirement age. The
// optional contributionPercent query parameter previews a hypothetical
// election; absent or unparsable, the persisted election's effective percent
// is used.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	p := h.profile(w, r)
	if p == nil {
		return
	}

	var percent decimal.Decimal
	raw := r.URL.Query().Get("contributionPercent")
	if parsed, err := strconv.ParseFloat(raw, 64); raw != "" && err == nil {
		// ParseFloat accepts NaN and infinity spellings with a nil error.
		converted, err := plan.PercentFromFloat(parsed)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		percent = converted
	} else {
		effective, err := plan.EffectivePercent(p, p.Contribution)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		percent = effective
	}

	result, err := plan.Project(p, percent, h.Now())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectionDTO(result))
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps plan errors to HTTP responses. Degenerate-profile
// errors are a data-integrity problem, not user input, so they surface as
// 500 rather than 400.
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if plan.IsDegenerateProfile(err) {
		status = http.StatusInternalServerError
	}

	var verr *plan.ValidationError
	if errors.As(err, &verr) {
		resp := ErrorResponse{Error: verr.Message, Code: verr.Code}
		if verr.MaxAllowedPercent != nil {
			v := verr.MaxAllowedPercent.InexactFloat64()
			resp.MaxAllowedPercent = &v
		}
		if verr.MaxAllowedAmount != nil {
			v := verr.MaxAllowedAmount.InexactFloat64()
			resp.MaxAllowedAmount = &v
		}
		writeJSON(w, status, resp)
		return
	}

	writeError(w, status, err.Error(), nil)
}
