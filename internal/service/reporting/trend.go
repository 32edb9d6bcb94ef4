package reporting

import (
	"github.com/shopspring/decimal"

	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
)

var (
	hundred = decimal.NewFromInt(100)

	// trendDeadband is the percentage change below which movement between the
	// first and last period still counts as stable.
	trendDeadband = decimal.NewFromInt(5)
)

// AnalyzeTrend classifies the trajectory of the point series and returns the
// percentage change between the first and last totals.
//
// Within the deadband the signed change is reported; outside it the change is
// reported as a non-negative magnitude next to the direction label. Growth
// from a zero first period is reported as a flat 100% increase.
func AnalyzeTrend(points []models.TrendPoint) (models.TrendDirection, decimal.Decimal) {
	if len(points) < 2 {
		return models.TrendStable, decimal.Zero
	}

	first := points[0].TotalIncome
	last := points[len(points)-1].TotalIncome

	if first.IsZero() {
		if last.IsZero() {
			return models.TrendStable, decimal.Zero
		}
		return models.TrendIncreasing, hundred
	}

	change := last.Sub(first).Div(first).Mul(hundred)

	if change.Abs().LessThan(trendDeadband) {
		return models.TrendStable, change.Round(2)
	}
	if change.IsPositive() {
		return models.TrendIncreasing, change.Round(2)
	}
	return models.TrendDecreasing, change.Abs().Round(2)
}
