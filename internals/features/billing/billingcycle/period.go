// Package billingcycle computes candidate billing periods for a contract and
// validates custom date ranges against the contract's payment cycle. All
// functions are pure; dates are civil dates carried as UTC-midnight times.
package billingcycle

import (
	"fmt"
	"time"
)

type Period struct {
	Label    string    `json:"label"`
	From     time.Time `json:"from_date"`
	To       time.Time `json:"to_date"`
	Disabled bool      `json:"disabled"`
}

// DateRange is a billed {from,to} pair, inclusive on both ends.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Payment cycle month counts.
const (
	CycleMonthly   = 1
	CycleQuarterly = 3
	CycleYearly    = 12
)

func ValidCycle(months int) bool {
	return months == CycleMonthly || months == CycleQuarterly || months == CycleYearly
}

// Civil truncates t to a UTC calendar date.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Periods walks forward from start in cycleMonths steps. Each period spans
// cycleMonths months with to = from + cycleMonths months - 1 day; the walk
// stops once to reaches or passes end, and that final to is clipped to end.
// The result covers [start, end] with no gaps and no overlaps, and the last
// period's To equals end exactly.
func Periods(start, end time.Time, cycleMonths int) ([]Period, error) {
	if !ValidCycle(cycleMonths) {
		return nil, fmt.Errorf("invalid payment cycle: %d months", cycleMonths)
	}
	start, end = Civil(start), Civil(end)
	if !end.After(start) {
		return nil, fmt.Errorf("contract end %s is not after start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	var periods []Period
	from := start
	for {
		to := from.AddDate(0, cycleMonths, 0).AddDate(0, 0, -1)
		if !to.Before(end) {
			to = end
			periods = append(periods, newPeriod(from, to))
			return periods, nil
		}
		periods = append(periods, newPeriod(from, to))
		from = to.AddDate(0, 0, 1)
	}
}

func newPeriod(from, to time.Time) Period {
	return Period{
		Label: from.Format("02/01/2006") + " - " + to.Format("02/01/2006"),
		From:  from,
		To:    to,
	}
}

// MarkBilled disables every period whose {from,to} exactly matches an already
// billed range. Exact calendar equality only: this drives the selection list,
// where a shifted custom range must stay selectable. Partial overlaps are
// caught separately by Overlaps when the bill is generated.
func MarkBilled(periods []Period, billed []DateRange) []Period {
	out := make([]Period, len(periods))
	copy(out, periods)
	for i := range out {
		for _, b := range billed {
			if out[i].From.Equal(Civil(b.From)) && out[i].To.Equal(Civil(b.To)) {
				out[i].Disabled = true
				break
			}
		}
	}
	return out
}

// Overlaps reports whether [from,to] intersects any billed range. This is the
// authoritative double-billing guard applied on bill generation.
func Overlaps(from, to time.Time, billed []DateRange) bool {
	from, to = Civil(from), Civil(to)
	for _, b := range billed {
		bf, bt := Civil(b.From), Civil(b.To)
		if !from.After(bt) && !to.Before(bf) {
			return true
		}
	}
	return false
}

/* ===============================
   Cycle deviation (soft advisory)
=================================*/

type DeviationLevel string

const (
	DeviationExact DeviationLevel = "EXACT"
	DeviationMinor DeviationLevel = "MINOR"
	DeviationMajor DeviationLevel = "MAJOR"
)

// CycleCheck is the advisory result for a custom period. It never rejects:
// final enforcement of what a billable period may look like stays with the
// billing rules (bounds + overlap), not with the cycle heuristic.
type CycleCheck struct {
	Level          DeviationLevel `json:"level"`
	ExpectedMonths float64        `json:"expected_months"`
	ActualMonths   float64        `json:"actual_months"`
	Deviation      float64        `json:"deviation"`
	Warning        string         `json:"warning,omitempty"`
}

// MonthsBetween measures the fractional month distance from from to to:
// whole calendar months plus a days/30 remainder.
func MonthsBetween(from, to time.Time) float64 {
	from, to = Civil(from), Civil(to)
	if to.Before(from) {
		return -MonthsBetween(to, from)
	}
	months := 0
	for !from.AddDate(0, months+1, 0).After(to) {
		months++
	}
	remDays := to.Sub(from.AddDate(0, months, 0)).Hours() / 24
	return float64(months) + remDays/30.0
}

// CheckCycle compares the custom range's month distance against the cycle's
// expected whole-month count. Thresholds: |Δ| ≤ 0.2 exact, ≤ 1.0 minor
// deviation, otherwise major.
func CheckCycle(from, to time.Time, cycleMonths int) CycleCheck {
	expected := float64(cycleMonths)
	actual := MonthsBetween(from, to)
	dev := actual - expected
	if dev < 0 {
		dev = -dev
	}

	check := CycleCheck{
		Level:          DeviationExact,
		ExpectedMonths: expected,
		ActualMonths:   actual,
		Deviation:      dev,
	}
	switch {
	case dev <= 0.2:
		// accept silently
	case dev <= 1.0:
		check.Level = DeviationMinor
		check.Warning = fmt.Sprintf(
			"Period spans %.1f months but the contract cycle is %d month(s). The bill is accepted anyway.",
			actual, cycleMonths)
	default:
		check.Level = DeviationMajor
		check.Warning = fmt.Sprintf(
			"Period spans %.1f months, far from the %d month(s) cycle. Double-check the dates; the bill is accepted anyway.",
			actual, cycleMonths)
	}
	return check
}

// CheckSpan is the contract-level variant of CheckCycle: it measures how far
// the whole span [from,to] is from the nearest whole multiple of the cycle.
// A 12 month contract on a monthly cycle is exact; 12.5 months is a minor
// deviation. Same thresholds and same advisory-only contract as CheckCycle.
func CheckSpan(from, to time.Time, cycleMonths int) CycleCheck {
	actual := MonthsBetween(from, to)
	cycle := float64(cycleMonths)

	periods := actual / cycle
	whole := float64(int(periods + 0.5))
	if whole < 1 {
		whole = 1
	}
	expected := whole * cycle

	dev := actual - expected
	if dev < 0 {
		dev = -dev
	}

	check := CycleCheck{
		Level:          DeviationExact,
		ExpectedMonths: expected,
		ActualMonths:   actual,
		Deviation:      dev,
	}
	switch {
	case dev <= 0.2:
	case dev <= 1.0:
		check.Level = DeviationMinor
		check.Warning = fmt.Sprintf(
			"Contract spans %.1f months, which is not a whole number of %d month billing periods.",
			actual, cycleMonths)
	default:
		check.Level = DeviationMajor
		check.Warning = fmt.Sprintf(
			"Contract spans %.1f months, far from a whole number of %d month billing periods. Double-check the dates.",
			actual, cycleMonths)
	}
	return check
}

/* ===============================
   Contract bounds (hard check)
=================================*/

// ValidateBounds rejects any range that leaves [start,end] or is inverted.
// Unlike the cycle check this one is enforced.
func ValidateBounds(from, to, start, end time.Time) error {
	from, to = Civil(from), Civil(to)
	start, end = Civil(start), Civil(end)
	if to.Before(from) {
		return fmt.Errorf("from_date %s is after to_date %s",
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	if from.Before(start) {
		return fmt.Errorf("from_date %s is before the contract start %s",
			from.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if to.After(end) {
		return fmt.Errorf("to_date %s is after the contract end %s",
			to.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return nil
}
