package plan_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/retirement-engine/plan"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// Fixed "now" so results don't depend on when the tests run.
var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

// bornYearsAgo returns a date of birth a month past the given birthday, so
// the 365.25-day age approximation stays on the intended side of it.
func bornYearsAgo(years int) time.Time {
	return testNow.AddDate(-years, -1, 0)
}

func testProfile() *plan.ProfileSnapshot {
	return &plan.ProfileSnapshot{
		ID:                "primary",
		Name:              "Jordan Reyes",
		DateOfBirth:       bornYearsAgo(23),
		HireDate:          testNow.AddDate(-2, 0, 0),
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
		YTD: plan.YTD{
			TotalBalance: decimal.NewFromInt(20000),
		},
		PlanAnnualLimit: decimal.NewFromInt(23000),
	}
}

func percentage(v float64) plan.ContributionElection {
	return plan.ContributionElection{Type: plan.ElectionPercentage, Value: decimal.NewFromFloat(v)}
}

func fixed(v float64) plan.ContributionElection {
	return plan.ContributionElection{Type: plan.ElectionFixed, Value: decimal.NewFromFloat(v)}
}

// =============================================================================
// VALIDATE AND NORMALIZE
// =============================================================================

func TestValidateAndNormalize_Percentage_Valid(t *testing.T) {
	// GIVEN: A 6% election within all limits
	// WHEN: Validating
	// THEN: A normalized election is returned with LastUpdated stamped

	p := testProfile()
	normalized, err := plan.ValidateAndNormalize(p, percentage(6), testNow)
	require.NoError(t, err)

	assert.Equal(t, plan.ElectionPercentage, normalized.Type)
	assert.True(t, normalized.Value.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, testNow, normalized.LastUpdated)
}

func TestValidateAndNormalize_IgnoresCallerTimestamp(t *testing.T) {
	p := testProfile()
	e := percentage(6)
	e.LastUpdated = time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)

	normalized, err := plan.ValidateAndNormalize(p, e, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow, normalized.LastUpdated, "LastUpdated is set only by the normalizer")
}

func TestValidateAndNormalize_InvalidType(t *testing.T) {
	p := testProfile()
	_, err := plan.ValidateAndNormalize(p, plan.ContributionElection{
		Type:  plan.ElectionType("roth"),
		Value: decimal.NewFromInt(5),
	}, testNow)

	assert.ErrorIs(t, err, plan.ErrInvalidType)
	assert.True(t, plan.IsClientError(err))
}

func TestValidateAndNormalize_NegativeValue(t *testing.T) {
	p := testProfile()
	_, err := plan.ValidateAndNormalize(p, percentage(-1), testNow)
	assert.ErrorIs(t, err, plan.ErrInvalidValue)
}

func TestValidateAndNormalize_PercentOutOfRange(t *testing.T) {
	p := testProfile()
	_, err := plan.ValidateAndNormalize(p, percentage(101), testNow)
	assert.ErrorIs(t, err, plan.ErrPercentOutOfRange)
}

func TestValidateAndNormalize_Percentage_ExceedsAnnualLimit(t *testing.T) {
	// GIVEN: 30% of $85,000 = $25,500, above the $23,000 plan limit
	// WHEN: Validating
	// THEN: Rejected with a corrected maximum percent that itself validates

	p := testProfile()
	_, err := plan.ValidateAndNormalize(p, percentage(30), testNow)
	require.ErrorIs(t, err, plan.ErrExceedsAnnualLimit)

	var verr *plan.ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotNil(t, verr.MaxAllowedPercent)
	assert.Nil(t, verr.MaxAllowedAmount)

	// 23000/85000*100 = 27.058..., rounded down to one decimal
	assert.True(t, verr.MaxAllowedPercent.Equal(decimal.NewFromInt(27)),
		"expected 27, got %s", verr.MaxAllowedPercent)

	// The suggested maximum must pass validation
	_, err = plan.ValidateAndNormalize(p, plan.ContributionElection{
		Type: plan.ElectionPercentage, Value: *verr.MaxAllowedPercent,
	}, testNow)
	assert.NoError(t, err)
}

func TestValidateAndNormalize_Fixed_Valid(t *testing.T) {
	p := testProfile()
	normalized, err := plan.ValidateAndNormalize(p, fixed(200), testNow)
	require.NoError(t, err)
	assert.Equal(t, plan.ElectionFixed, normalized.Type)
	assert.True(t, normalized.Value.Equal(decimal.NewFromInt(200)))
}

func TestValidateAndNormalize_Fixed_ExceedsPaycheckAmount(t *testing.T) {
	// GIVEN: A $4,000 per-paycheck election against gross pay of ~$3,269.23
	// WHEN: Validating
	// THEN: The paycheck bound fires before the annual limit check

	p := testProfile()
	_, err := plan.ValidateAndNormalize(p, fixed(4000), testNow)
	assert.ErrorIs(t, err, plan.ErrExceedsPaycheckAmount)
	assert.NotErrorIs(t, err, plan.ErrExceedsAnnualLimit)
}

func TestValidateAndNormalize_Fixed_ExceedsAnnualLimit(t *testing.T) {
	// GIVEN: $1,000 per paycheck: under gross pay but $26,000/year > $23,000
	// WHEN: Validating
	// THEN: Rejected with a corrected maximum amount that itself validates

	p := testProfile()
	_, err := plan.ValidateAndNormalize(p, fixed(1000), testNow)
	require.ErrorIs(t, err, plan.ErrExceedsAnnualLimit)

	var verr *plan.ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotNil(t, verr.MaxAllowedAmount)
	assert.Nil(t, verr.MaxAllowedPercent)

	// 23000/26 = 884.615..., rounded down to cents
	assert.True(t, verr.MaxAllowedAmount.Equal(decimal.RequireFromString("884.61")),
		"expected 884.61, got %s", verr.MaxAllowedAmount)

	_, err = plan.ValidateAndNormalize(p, plan.ContributionElection{
		Type: plan.ElectionFixed, Value: *verr.MaxAllowedAmount,
	}, testNow)
	assert.NoError(t, err)
}

func TestNewMalformedInput_WrapsSentinel(t *testing.T) {
	err := plan.NewMalformedInput("contribution value is required")

	assert.ErrorIs(t, err, plan.ErrMalformedInput)
	assert.True(t, plan.IsClientError(err))
	assert.Equal(t, "malformed_input", err.Code)

	var verr *plan.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestValidateAndNormalize_DegenerateProfile(t *testing.T) {
	p := testProfile()
	p.PayPeriodsPerYear = 0

	_, err := plan.ValidateAndNormalize(p, percentage(6), testNow)
	assert.ErrorIs(t, err, plan.ErrDegenerateProfile)
	assert.True(t, plan.IsDegenerateProfile(err))
	assert.False(t, plan.IsClientError(err), "degenerate profile is not a user input error")
}

// =============================================================================
// TYPE CONVERSION
// =============================================================================

func TestConvert_PercentageToFixed(t *testing.T) {
	// 6% of a $3,269.23 paycheck is $196.15, rounded to the nearest dollar
	p := testProfile()
	converted, err := plan.Convert(p, percentage(6), plan.ElectionFixed)
	require.NoError(t, err)

	assert.Equal(t, plan.ElectionFixed, converted.Type)
	assert.True(t, converted.Value.Equal(decimal.NewFromInt(196)),
		"expected 196, got %s", converted.Value)
}

func TestConvert_FixedToPercentage(t *testing.T) {
	p := testProfile()
	converted, err := plan.Convert(p, fixed(196), plan.ElectionPercentage)
	require.NoError(t, err)

	assert.Equal(t, plan.ElectionPercentage, converted.Type)
	assert.True(t, converted.Value.Equal(decimal.NewFromInt(6)),
		"expected 6, got %s", converted.Value)
}

func TestConvert_SameTypeIsIdentity(t *testing.T) {
	p := testProfile()
	e := percentage(6)
	converted, err := plan.Convert(p, e, plan.ElectionPercentage)
	require.NoError(t, err)
	assert.Equal(t, e, converted)
}

func TestConvert_RoundTripWithinOnePercent(t *testing.T) {
	// Converting percentage -> fixed -> percentage loses at most 1 due to
	// integer rounding at each step.
	p := testProfile()

	for v := 0; v <= 27; v++ {
		original := decimal.NewFromInt(int64(v))
		toFixed, err := plan.Convert(p, plan.ContributionElection{
			Type: plan.ElectionPercentage, Value: original,
		}, plan.ElectionFixed)
		require.NoError(t, err)

		back, err := plan.Convert(p, toFixed, plan.ElectionPercentage)
		require.NoError(t, err)

		diff := back.Value.Sub(original).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.NewFromInt(1)),
			"round-trip of %d%% drifted to %s", v, back.Value)
	}
}

func TestConvert_DegenerateProfile(t *testing.T) {
	p := testProfile()
	p.AnnualSalary = decimal.Zero

	_, err := plan.Convert(p, percentage(6), plan.ElectionFixed)
	assert.ErrorIs(t, err, plan.ErrDegenerateProfile)
}

// =============================================================================
// EFFECTIVE PERCENT
// =============================================================================

func TestEffectivePercent_PercentageIsIdentity(t *testing.T) {
	p := testProfile()
	pct, err := plan.EffectivePercent(p, percentage(6))
	require.NoError(t, err)
	assert.True(t, pct.Equal(decimal.NewFromInt(6)))
}

func TestEffectivePercent_FixedAmount(t *testing.T) {
	// $326.923 per paycheck against $3,269.23 gross is exactly 10%
	p := testProfile()
	gross, err := p.PaycheckGross()
	require.NoError(t, err)

	tenth := gross.Div(decimal.NewFromInt(10))
	pct, err := plan.EffectivePercent(p, plan.ContributionElection{
		Type: plan.ElectionFixed, Value: tenth,
	})
	require.NoError(t, err)
	assert.True(t, pct.Sub(decimal.NewFromInt(10)).Abs().LessThan(decimal.RequireFromString("0.0001")),
		"expected ~10, got %s", pct)
}

func TestEffectivePercent_DegenerateProfile(t *testing.T) {
	p := testProfile()
	p.PayPeriodsPerYear = 0

	_, err := plan.EffectivePercent(p, fixed(100))
	assert.ErrorIs(t, err, plan.ErrDegenerateProfile)
}

func TestEffectivePercent_UnknownType(t *testing.T) {
	p := testProfile()
	_, err := plan.EffectivePercent(p, plan.ContributionElection{Type: "bogus"})
	assert.True(t, errors.Is(err, plan.ErrInvalidType))
}
