package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/retirement-engine/plan"
	"github.com/warp/retirement-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleProfile() plan.ProfileSnapshot {
	return plan.ProfileSnapshot{
		ID:                "primary",
		Name:              "Jordan Reyes",
		Email:             "jordan.reyes@example.com",
		DateOfBirth:       time.Date(2003, time.March, 22, 0, 0, 0, 0, time.UTC),
		HireDate:          time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		AnnualSalary:      decimal.NewFromInt(85000),
		PayPeriodsPerYear: 26,
		EmployerMatch: plan.EmployerMatch{
			MatchPercent:    decimal.NewFromInt(50),
			MaxMatchPercent: decimal.NewFromInt(6),
		},
		Contribution: plan.ContributionElection{
			Type:        plan.ElectionPercentage,
			Value:       decimal.NewFromInt(6),
			LastUpdated: time.Date(2026, time.May, 20, 9, 30, 0, 0, time.UTC),
		},
		YTD: plan.YTD{
			EmployeeContributions: decimal.NewFromInt(4000),
			EmployerContributions: decimal.NewFromInt(2000),
			TotalBalance:          decimal.NewFromInt(20000),
			PaychecksProcessed:    16,
		},
		PlanAnnualLimit: decimal.NewFromInt(23000),
	}
}

// =============================================================================
// PROFILE ROUND-TRIP
// =============================================================================

func TestStore_SaveAndGetProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProfile(ctx, sampleProfile()))

	got, err := store.GetProfile(ctx, "primary")
	require.NoError(t, err)

	assert.Equal(t, "Jordan Reyes", got.Name)
	assert.Equal(t, "jordan.reyes@example.com", got.Email)
	assert.Equal(t, time.Date(2003, time.March, 22, 0, 0, 0, 0, time.UTC), got.DateOfBirth)
	assert.Equal(t, 26, got.PayPeriodsPerYear)
	assert.True(t, got.AnnualSalary.Equal(decimal.NewFromInt(85000)))
	assert.True(t, got.EmployerMatch.MatchPercent.Equal(decimal.NewFromInt(50)))
	assert.True(t, got.EmployerMatch.MaxMatchPercent.Equal(decimal.NewFromInt(6)))
	assert.True(t, got.PlanAnnualLimit.Equal(decimal.NewFromInt(23000)))
	assert.Equal(t, plan.ElectionPercentage, got.Contribution.Type)
	assert.True(t, got.Contribution.Value.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, time.Date(2026, time.May, 20, 9, 30, 0, 0, time.UTC), got.Contribution.LastUpdated)
	assert.True(t, got.YTD.TotalBalance.Equal(decimal.NewFromInt(20000)))
	assert.Equal(t, 16, got.YTD.PaychecksProcessed)
}

func TestStore_GetProfile_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetProfile(context.Background(), "nope")
	assert.ErrorIs(t, err, plan.ErrProfileNotFound)
}

func TestStore_SaveProfile_Replaces(t *testing.T) {
	// Loading a scenario overwrites the single profile row.
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProfile(ctx, sampleProfile()))

	replacement := sampleProfile()
	replacement.Name = "Priya Natarajan"
	replacement.AnnualSalary = decimal.NewFromInt(120000)
	replacement.PayPeriodsPerYear = 24
	require.NoError(t, store.SaveProfile(ctx, replacement))

	got, err := store.GetProfile(ctx, "primary")
	require.NoError(t, err)
	assert.Equal(t, "Priya Natarajan", got.Name)
	assert.True(t, got.AnnualSalary.Equal(decimal.NewFromInt(120000)))
	assert.Equal(t, 24, got.PayPeriodsPerYear)
}

func TestStore_DecimalPrecisionSurvivesRoundTrip(t *testing.T) {
	// Money is stored as decimal TEXT, never REAL: cents must come back exact.
	store := newTestStore(t)
	ctx := context.Background()

	p := sampleProfile()
	p.AnnualSalary = decimal.RequireFromString("85000.33")
	p.Contribution.Value = decimal.RequireFromString("884.61")
	p.Contribution.Type = plan.ElectionFixed
	require.NoError(t, store.SaveProfile(ctx, p))

	got, err := store.GetProfile(ctx, "primary")
	require.NoError(t, err)
	assert.Equal(t, "85000.33", got.AnnualSalary.String())
	assert.Equal(t, "884.61", got.Contribution.Value.String())
}

// =============================================================================
// CONTRIBUTION UPDATES
// =============================================================================

func TestStore_UpdateContribution(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveProfile(ctx, sampleProfile()))

	updated := plan.ContributionElection{
		Type:        plan.ElectionFixed,
		Value:       decimal.NewFromInt(250),
		LastUpdated: time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.UpdateContribution(ctx, "primary", updated))

	got, err := store.GetProfile(ctx, "primary")
	require.NoError(t, err)
	assert.Equal(t, plan.ElectionFixed, got.Contribution.Type)
	assert.True(t, got.Contribution.Value.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, updated.LastUpdated, got.Contribution.LastUpdated)

	// Only the election changes; the rest of the record is untouched.
	assert.Equal(t, "Jordan Reyes", got.Name)
	assert.True(t, got.YTD.TotalBalance.Equal(decimal.NewFromInt(20000)))
}

func TestStore_UpdateContribution_NotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.UpdateContribution(context.Background(), "missing", plan.ContributionElection{
		Type:  plan.ElectionPercentage,
		Value: decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, plan.ErrProfileNotFound)
}
