package billingcycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodsQuarterlyWholeYear(t *testing.T) {
	periods, err := Periods(date(2024, 1, 1), date(2024, 12, 31), CycleQuarterly)
	require.NoError(t, err)
	require.Len(t, periods, 4)

	expected := []DateRange{
		{date(2024, 1, 1), date(2024, 3, 31)},
		{date(2024, 4, 1), date(2024, 6, 30)},
		{date(2024, 7, 1), date(2024, 9, 30)},
		{date(2024, 10, 1), date(2024, 12, 31)},
	}
	for i, p := range periods {
		assert.True(t, p.From.Equal(expected[i].From), "period %d from: %s", i, p.From)
		assert.True(t, p.To.Equal(expected[i].To), "period %d to: %s", i, p.To)
	}
}

func TestPeriodsMonthlyClipsFinalPeriod(t *testing.T) {
	periods, err := Periods(date(2024, 1, 15), date(2024, 6, 10), CycleMonthly)
	require.NoError(t, err)
	require.Len(t, periods, 5)

	assert.True(t, periods[0].From.Equal(date(2024, 1, 15)))
	assert.True(t, periods[0].To.Equal(date(2024, 2, 14)))
	// last period clipped to the contract end, not 2024-06-14
	assert.True(t, periods[4].From.Equal(date(2024, 5, 15)))
	assert.True(t, periods[4].To.Equal(date(2024, 6, 10)))
}

func TestPeriodsCoverageNoGapsNoOverlaps(t *testing.T) {
	cases := []struct {
		start, end time.Time
		cycle      int
	}{
		{date(2024, 1, 1), date(2024, 12, 31), CycleMonthly},
		{date(2024, 1, 31), date(2025, 3, 2), CycleMonthly},
		{date(2023, 11, 15), date(2024, 11, 14), CycleQuarterly},
		{date(2020, 2, 29), date(2026, 1, 7), CycleYearly},
		{date(2024, 1, 1), date(2024, 1, 10), CycleMonthly},
	}

	for _, tc := range cases {
		periods, err := Periods(tc.start, tc.end, tc.cycle)
		require.NoError(t, err)
		require.NotEmpty(t, periods)

		assert.True(t, periods[0].From.Equal(tc.start))
		assert.True(t, periods[len(periods)-1].To.Equal(tc.end))
		for i := 1; i < len(periods); i++ {
			// next from is exactly the day after the previous to
			assert.True(t, periods[i].From.Equal(periods[i-1].To.AddDate(0, 0, 1)),
				"gap or overlap between period %d and %d", i-1, i)
		}
		for _, p := range periods {
			assert.False(t, p.To.Before(p.From))
		}
	}
}

func TestPeriodsWholeCyclesExactCount(t *testing.T) {
	// contract spanning exactly N whole cycles yields exactly N periods
	periods, err := Periods(date(2024, 1, 1), date(2024, 12, 31), CycleMonthly)
	require.NoError(t, err)
	assert.Len(t, periods, 12)

	periods, err = Periods(date(2024, 3, 1), date(2025, 2, 28), CycleYearly)
	require.NoError(t, err)
	assert.Len(t, periods, 1)
}

func TestPeriodsIdempotent(t *testing.T) {
	a, err := Periods(date(2024, 1, 15), date(2024, 6, 10), CycleMonthly)
	require.NoError(t, err)
	b, err := Periods(date(2024, 1, 15), date(2024, 6, 10), CycleMonthly)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPeriodsRejectsBadInput(t *testing.T) {
	_, err := Periods(date(2024, 1, 1), date(2024, 1, 1), CycleMonthly)
	assert.Error(t, err)
	_, err = Periods(date(2024, 2, 1), date(2024, 1, 1), CycleMonthly)
	assert.Error(t, err)
	_, err = Periods(date(2024, 1, 1), date(2024, 12, 31), 2)
	assert.Error(t, err)
}

func TestMarkBilledExactMatchOnly(t *testing.T) {
	periods, err := Periods(date(2024, 1, 1), date(2024, 12, 31), CycleQuarterly)
	require.NoError(t, err)

	billed := []DateRange{
		{date(2024, 4, 1), date(2024, 6, 30)}, // exact second quarter
		{date(2024, 7, 5), date(2024, 9, 30)}, // shifted → no exact match
	}
	marked := MarkBilled(periods, billed)

	assert.False(t, marked[0].Disabled)
	assert.True(t, marked[1].Disabled)
	assert.False(t, marked[2].Disabled, "partial overlap must not disable the listed period")
	assert.False(t, marked[3].Disabled)

	// input slice untouched
	assert.False(t, periods[1].Disabled)
}

func TestOverlaps(t *testing.T) {
	billed := []DateRange{{date(2024, 4, 1), date(2024, 6, 30)}}

	assert.True(t, Overlaps(date(2024, 6, 30), date(2024, 7, 31), billed))
	assert.True(t, Overlaps(date(2024, 3, 1), date(2024, 4, 1), billed))
	assert.True(t, Overlaps(date(2024, 5, 1), date(2024, 5, 31), billed))
	assert.False(t, Overlaps(date(2024, 7, 1), date(2024, 9, 30), billed))
	assert.False(t, Overlaps(date(2024, 1, 1), date(2024, 3, 31), billed))
}

func TestCheckCycleLevels(t *testing.T) {
	// full calendar month → exact
	check := CheckCycle(date(2024, 1, 1), date(2024, 1, 31), CycleMonthly)
	assert.Equal(t, DeviationExact, check.Level)
	assert.Empty(t, check.Warning)

	// two months against a monthly cycle → minor deviation, with warning
	check = CheckCycle(date(2024, 1, 1), date(2024, 3, 1), CycleMonthly)
	assert.Equal(t, DeviationMinor, check.Level)
	assert.NotEmpty(t, check.Warning)

	// a year against a monthly cycle → major deviation
	check = CheckCycle(date(2024, 1, 1), date(2025, 1, 1), CycleMonthly)
	assert.Equal(t, DeviationMajor, check.Level)
	assert.NotEmpty(t, check.Warning)

	// quarterly and yearly exacts
	check = CheckCycle(date(2024, 1, 1), date(2024, 3, 31), CycleQuarterly)
	assert.Equal(t, DeviationExact, check.Level)
	check = CheckCycle(date(2024, 1, 1), date(2024, 12, 31), CycleYearly)
	assert.Equal(t, DeviationExact, check.Level)
}

func TestValidateBounds(t *testing.T) {
	start, end := date(2024, 1, 1), date(2024, 12, 31)

	assert.NoError(t, ValidateBounds(date(2024, 1, 1), date(2024, 1, 31), start, end))
	assert.NoError(t, ValidateBounds(start, end, start, end))

	// before contract start → hard rejection regardless of cycle fit
	assert.Error(t, ValidateBounds(date(2023, 12, 31), date(2024, 1, 31), start, end))
	assert.Error(t, ValidateBounds(date(2024, 12, 1), date(2025, 1, 1), start, end))
	assert.Error(t, ValidateBounds(date(2024, 2, 1), date(2024, 1, 31), start, end))
}

func TestMonthsBetween(t *testing.T) {
	assert.InDelta(t, 1.0, MonthsBetween(date(2024, 1, 1), date(2024, 1, 31)), 0.05)
	assert.InDelta(t, 2.0, MonthsBetween(date(2024, 1, 1), date(2024, 3, 1)), 0.01)
	assert.InDelta(t, 12.0, MonthsBetween(date(2024, 1, 1), date(2025, 1, 1)), 0.01)
	assert.InDelta(t, 0.0, MonthsBetween(date(2024, 1, 1), date(2024, 1, 1)), 0.001)
}

func TestCheckSpanWholeMultiples(t *testing.T) {
	// 12 whole months on a monthly cycle → exact
	check := CheckSpan(date(2024, 1, 1), date(2024, 12, 31), CycleMonthly)
	assert.Equal(t, DeviationExact, check.Level)

	// same span on quarterly and yearly cycles is also a whole multiple
	check = CheckSpan(date(2024, 1, 1), date(2024, 12, 31), CycleQuarterly)
	assert.Equal(t, DeviationExact, check.Level)
	check = CheckSpan(date(2024, 1, 1), date(2024, 12, 31), CycleYearly)
	assert.Equal(t, DeviationExact, check.Level)

	// 12.5 months on a monthly cycle → minor deviation, advisory only
	check = CheckSpan(date(2024, 1, 1), date(2025, 1, 15), CycleMonthly)
	assert.Equal(t, DeviationMinor, check.Level)
	assert.NotEmpty(t, check.Warning)

	// 14 months on a yearly cycle → far from any whole multiple
	check = CheckSpan(date(2024, 1, 1), date(2025, 2, 28), CycleYearly)
	assert.Equal(t, DeviationMajor, check.Level)
	assert.NotEmpty(t, check.Warning)
}
