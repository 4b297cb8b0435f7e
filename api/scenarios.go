/*
scenarios.go - Demo profile loaders for testing and demonstrations

PURPOSE:

	Provides pre-built participant profiles that populate the store with
	realistic data for testing and demos. Each scenario exercises a distinct
	part of the engine: percentage vs fixed elections, match caps, and the
	single-point projection at retirement age.

AVAILABLE SCENARIOS:

	early-career:    Age 23, 6% election, long compounding runway
	mid-career:      Age 45, fixed per-paycheck election, semi-monthly pay
	near-retirement: Age 63, high percentage, short runway
	at-retirement:   Age 66, single-point projection

HOW SCENARIOS WORK:
 1. Build a ProfileSnapshot with dates relative to today
 2. Stamp the configured plan annual limit
 3. Replace the single profile record in the store

NOTE:

	Loading a scenario overwrites the profile. Only use in development/demo
	environments.

SEE ALSO:
  - handlers.go: Shares the Handler type
  - plan/types.go: ProfileSnapshot
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/warp/retirement-engine/plan"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

// DefaultScenarioID is loaded on first startup when the store is empty.
const DefaultScenarioID = "early-career"

var scenarios = []ScenarioDTO{
	{
		ID:          "early-career",
		Name:        "Early Career",
		Description: "Age 23, $85k salary, biweekly pay, 6% election, 50% match up to 6%",
	},
	{
		ID:          "mid-career",
		Name:        "Mid Career",
		Description: "Age 45, $120k salary, semi-monthly pay, $500 fixed election, 100% match up to 4%",
	},
	{
		ID:          "near-retirement",
		Name:        "Near Retirement",
		Description: "Age 63, $95k salary, biweekly pay, 10% election",
	},
	{
		ID:          "at-retirement",
		Name:        "At Retirement",
		Description: "Age 66, past retirement age: single-point projection",
	},
}

// scenarioProfile builds the profile record for a scenario. Dates of birth
// are relative to today so ages stay meaningful; the extra month keeps the
// 365.25-day age approximation on the intended side of a birthday.
func (h *Handler) scenarioProfile(id string, today time.Time) *plan.ProfileSnapshot {
	born := func(age int) time.Time {
		return today.AddDate(-age, -1, 0)
	}

	base := plan.ProfileSnapshot{
		ID:              h.ProfileID,
		PlanAnnualLimit: h.PlanAnnualLimit,
	}

	switch id {
	case "early-career":
		p := base
		p.Name = "Jordan Reyes"
		p.Email = "jordan.reyes@example.com"
		p.DateOfBirth = born(23)
		p.HireDate = today.AddDate(-2, 0, 0)
		p.AnnualSalary = decimal.NewFromInt(85000)
		p.PayPeriodsPerYear = 26
		p.EmployerMatch = plan.EmployerMatch{
			MatchPercent:    decimal.NewFromInt(50),
			MaxMatchPercent: decimal.NewFromInt(6),
		}
		p.Contribution = plan.ContributionElection{
			Type:  plan.ElectionPercentage,
			Value: decimal.NewFromInt(6),
		}
		p.YTD = plan.YTD{
			EmployeeContributions: decimal.NewFromInt(4000),
			EmployerContributions: decimal.NewFromInt(2000),
			TotalBalance:          decimal.NewFromInt(20000),
			PaychecksProcessed:    16,
		}
		return &p

	case "mid-career":
		p := base
		p.Name = "Priya Natarajan"
		p.Email = "priya.natarajan@example.com"
		p.DateOfBirth = born(45)
		p.HireDate = today.AddDate(-12, 0, 0)
		p.AnnualSalary = decimal.NewFromInt(120000)
		p.PayPeriodsPerYear = 24
		p.EmployerMatch = plan.EmployerMatch{
			MatchPercent:    decimal.NewFromInt(100),
			MaxMatchPercent: decimal.NewFromInt(4),
		}
		p.Contribution = plan.ContributionElection{
			Type:  plan.ElectionFixed,
			Value: decimal.NewFromInt(500),
		}
		p.YTD = plan.YTD{
			EmployeeContributions: decimal.NewFromInt(8000),
			EmployerContributions: decimal.NewFromInt(3840),
			TotalBalance:          decimal.NewFromInt(250000),
			PaychecksProcessed:    16,
		}
		return &p

	case "near-retirement":
		p := base
		p.Name = "Marta Kowalczyk"
		p.Email = "marta.kowalczyk@example.com"
		p.DateOfBirth = born(63)
		p.HireDate = today.AddDate(-20, 0, 0)
		p.AnnualSalary = decimal.NewFromInt(95000)
		p.PayPeriodsPerYear = 26
		p.EmployerMatch = plan.EmployerMatch{
			MatchPercent:    decimal.NewFromInt(50),
			MaxMatchPercent: decimal.NewFromInt(6),
		}
		p.Contribution = plan.ContributionElection{
			Type:  plan.ElectionPercentage,
			Value: decimal.NewFromInt(10),
		}
		p.YTD = plan.YTD{
			EmployeeContributions: decimal.NewFromInt(6500),
			EmployerContributions: decimal.NewFromInt(1900),
			TotalBalance:          decimal.NewFromInt(600000),
			PaychecksProcessed:    17,
		}
		return &p

	case "at-retirement":
		p := base
		p.Name = "Gene Alvarado"
		p.Email = "gene.alvarado@example.com"
		p.DateOfBirth = born(66)
		p.HireDate = today.AddDate(-30, 0, 0)
		p.AnnualSalary = decimal.NewFromInt(78000)
		p.PayPeriodsPerYear = 26
		p.EmployerMatch = plan.EmployerMatch{
			MatchPercent:    decimal.NewFromInt(50),
			MaxMatchPercent: decimal.NewFromInt(6),
		}
		p.Contribution = plan.ContributionElection{
			Type:  plan.ElectionPercentage,
			Value: decimal.NewFromInt(8),
		}
		p.YTD = plan.YTD{
			EmployeeContributions: decimal.NewFromInt(4200),
			EmployerContributions: decimal.NewFromInt(1650),
			TotalBalance:          decimal.NewFromInt(820000),
			PaychecksProcessed:    17,
		}
		return &p
	}

	return nil
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, map[string]any{"scenario_id": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenario_id": h.currentScenario})
}

// LoadScenario replaces the profile record with the selected demo profile.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p := h.scenarioProfile(req.ScenarioID, h.Now())
	if p == nil {
		writeError(w, http.StatusNotFound, "Unknown scenario: "+req.ScenarioID, nil)
		return
	}

	if err := h.Store.SaveProfile(r.Context(), *p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{
		"message":     "Scenario loaded",
		"scenario_id": req.ScenarioID,
	})
}

// EnsureSeed loads the named scenario if no profile exists yet. Called once
// on startup; an empty scenario ID falls back to the default.
func (h *Handler) EnsureSeed(ctx context.Context, scenarioID string) error {
	if scenarioID == "" {
		scenarioID = DefaultScenarioID
	}

	_, err := h.Store.GetProfile(ctx, h.ProfileID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, plan.ErrProfileNotFound) {
		return err
	}

	p := h.scenarioProfile(scenarioID, h.Now())
	if p == nil {
		return fmt.Errorf("unknown seed scenario %q", scenarioID)
	}
	if err := h.Store.SaveProfile(ctx, *p); err != nil {
		return err
	}
	h.currentScenario = scenarioID
	return nil
}
