package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/retirement-engine/plan"
	"github.com/warp/retirement-engine/plan/store"
)

func sampleProfile() plan.ProfileSnapshot {
	return plan.ProfileSnapshot{
		ID:                "primary",
		Name:              "Jordan Reyes",
		DateOfBirth:       time.Date(2003, time.March, 22, 0, 0, 0, 0, time.UTC),
		HireDate:          time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		AnnualSalary:      decimal.NewFromInt(85000),
		PayPeriodsPerYear: 26,
		EmployerMatch: plan.EmployerMatch{
			MatchPercent:    decimal.NewFromInt(50),
			MaxMatchPercent: decimal.NewFromInt(6),
		},
		Contribution: plan.ContributionElection{
			Type:  plan.ElectionPercentage,
			Value: decimal.NewFromInt(6),
		},
		PlanAnnualLimit: decimal.NewFromInt(23000),
	}
}

func TestMemory_GetProfile_NotFound(t *testing.T) {
	m := store.NewMemory()
	_, err := m.GetProfile(context.Background(), "nope")
	assert.ErrorIs(t, err, plan.ErrProfileNotFound)
}

func TestMemory_SaveAndGet(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SaveProfile(ctx, sampleProfile()))

	got, err := m.GetProfile(ctx, "primary")
	require.NoError(t, err)
	assert.Equal(t, "Jordan Reyes", got.Name)
	assert.True(t, got.AnnualSalary.Equal(decimal.NewFromInt(85000)))
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	// Mutating a returned snapshot must not leak into the store.
	m := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, m.SaveProfile(ctx, sampleProfile()))

	got, err := m.GetProfile(ctx, "primary")
	require.NoError(t, err)
	got.Name = "Someone Else"

	again, err := m.GetProfile(ctx, "primary")
	require.NoError(t, err)
	assert.Equal(t, "Jordan Reyes", again.Name)
}

func TestMemory_UpdateContribution(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, m.SaveProfile(ctx, sampleProfile()))

	updated := plan.ContributionElection{
		Type:        plan.ElectionFixed,
		Value:       decimal.NewFromInt(250),
		LastUpdated: time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, m.UpdateContribution(ctx, "primary", updated))

	got, err := m.GetProfile(ctx, "primary")
	require.NoError(t, err)
	assert.Equal(t, plan.ElectionFixed, got.Contribution.Type)
	assert.True(t, got.Contribution.Value.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, updated.LastUpdated, got.Contribution.LastUpdated)

	err = m.UpdateContribution(ctx, "missing", updated)
	assert.ErrorIs(t, err, plan.ErrProfileNotFound)
}
