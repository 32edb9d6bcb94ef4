package reporting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
)

// PeriodInsights derives human-readable observations from per-employee
// reports. The input must already be sorted descending by total income. Lines
// come out in a fixed order: top performer, average per employee, the count
// of employees without entries (skipped when zero), and a weekly average once
// the window spans at least a full week.
func PeriodInsights(reports []models.EmployeeReport, daySpan int) []string {
	if len(reports) == 0 {
		return []string{"No income entries recorded in this period."}
	}

	total := decimal.Zero
	inactive := 0
	for _, r := range reports {
		total = total.Add(r.TotalIncome)
		if r.EntryCount == 0 {
			inactive++
		}
	}

	top := reports[0]
	insights := []string{
		fmt.Sprintf("Top performer: %s with %s in total income.", top.Employee.Name, FormatAmount(top.TotalIncome)),
		fmt.Sprintf("Average income per employee: %s.", FormatAmount(total.Div(decimal.NewFromInt(int64(len(reports)))))),
	}

	if inactive > 0 {
		insights = append(insights, fmt.Sprintf("%d of %d employees recorded no income in this period.", inactive, len(reports)))
	}

	if daySpan >= 7 {
		weeks := decimal.NewFromFloat(float64(daySpan) / 7)
		insights = append(insights, fmt.Sprintf("Weekly average income: %s.", FormatAmount(total.Div(weeks))))
	}

	return insights
}

// TrendInsights derives observations from a chronological trend series and
// its classification: the overall direction with its percentage, the mean
// monthly income, and the best and worst months. On equal totals the best
// month is the earliest occurrence and the worst the latest, mirroring the
// first and last rows of a stable descending sort.
func TrendInsights(points []models.TrendPoint, direction models.TrendDirection, changePercent decimal.Decimal) []string {
	if len(points) == 0 {
		return []string{"No trend data available."}
	}

	total := decimal.Zero
	best := points[0]
	worst := points[0]
	for _, p := range points {
		total = total.Add(p.TotalIncome)
		if p.TotalIncome.GreaterThan(best.TotalIncome) {
			best = p
		}
		if p.TotalIncome.LessThanOrEqual(worst.TotalIncome) {
			worst = p
		}
	}

	return []string{
		fmt.Sprintf("Overall trend: %s (%s%%).", direction, changePercent.StringFixed(2)),
		fmt.Sprintf("Average monthly income: %s.", FormatAmount(total.Div(decimal.NewFromInt(int64(len(points)))))),
		fmt.Sprintf("Best month: %s (%s).", best.Label, FormatAmount(best.TotalIncome)),
		fmt.Sprintf("Worst month: %s (%s).", worst.Label, FormatAmount(worst.TotalIncome)),
	}
}

// FormatAmount renders a monetary amount with thousands separators, keeping
// at most two decimal places and dropping them entirely for whole amounts.
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(2).String()

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	if len(intPart) > 3 {
		var groups []string
		for len(intPart) > 3 {
			groups = append([]string{intPart[len(intPart)-3:]}, groups...)
			intPart = intPart[:len(intPart)-3]
		}
		groups = append([]string{intPart}, groups...)
		intPart = strings.Join(groups, ",")
	}

	out := intPart
	if hasFrac {
		out += "." + fracPart
	}
	if negative {
		out = "-" + out
	}
	return out
}
