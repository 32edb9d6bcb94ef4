package reporting

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
	"github.com/Azahir21/track-pendapatan-bot/internal/timeframe"
)

const (
	// defaultDaySpan approximates the averaging window when the caller gives
	// no explicit date range. Kept at 30 for compatibility with existing
	// report semantics; it is not inferred from the data span.
	defaultDaySpan = 30

	maxTopPerformers = 5
)

// BuildEmployeeReport aggregates the entries of a single employee. When a
// window is supplied, entries are filtered to [window.Start, window.End]
// inclusive and entries without a date are dropped; without a window all
// entries count and the daily average is taken over defaultDaySpan days.
// Entry order is preserved, so most-recent-first input stays that way.
func BuildEmployeeReport(emp models.Employee, entries []models.IncomeRecord, window *timeframe.TimeFrame) models.EmployeeReport {
	kept := entries
	if window != nil {
		kept = make([]models.IncomeRecord, 0, len(entries))
		for _, entry := range entries {
			if entry.Date.IsZero() {
				continue
			}
			if entry.Date.Before(window.Start) || entry.Date.After(window.End) {
				continue
			}
			kept = append(kept, entry)
		}
	}

	total := decimal.Zero
	for _, entry := range kept {
		total = total.Add(entry.Amount)
	}

	daySpan := defaultDaySpan
	if window != nil {
		daySpan = window.DaySpan()
	}

	return models.EmployeeReport{
		Employee:     emp,
		TotalIncome:  total,
		EntryCount:   len(kept),
		AverageDaily: total.Div(decimal.NewFromInt(int64(daySpan))),
		Entries:      kept,
	}
}

// BuildPeriodReport combines per-employee reports into the period totals.
// Employee reports are stable-sorted descending by total income, so employees
// with equal totals keep their enumeration order, and the top performers are
// the first five of that ordering.
func BuildPeriodReport(tf timeframe.TimeFrame, reports []models.EmployeeReport) models.PeriodReport {
	SortByIncome(reports)

	total := decimal.Zero
	entries := 0
	for _, r := range reports {
		total = total.Add(r.TotalIncome)
		entries += r.EntryCount
	}

	top := reports
	if len(top) > maxTopPerformers {
		top = top[:maxTopPerformers]
	}

	return models.PeriodReport{
		Label:           tf.Label,
		Start:           tf.Start,
		End:             tf.End,
		TotalIncome:     total,
		TotalEntries:    entries,
		AverageDaily:    total.Div(decimal.NewFromInt(int64(tf.DaySpan()))),
		EmployeeReports: reports,
		TopPerformers:   top,
	}
}

// SortByIncome stable-sorts employee reports descending by total income.
func SortByIncome(reports []models.EmployeeReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].TotalIncome.GreaterThan(reports[j].TotalIncome)
	})
}
