package reporting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
)

func employeeTotal(name string, total int64, entryCount int) models.EmployeeReport {
	return models.EmployeeReport{
		Employee:    models.Employee{Name: name},
		TotalIncome: decimal.NewFromInt(total),
		EntryCount:  entryCount,
	}
}

func TestPeriodInsights_Empty(t *testing.T) {
	assert.Equal(t, []string{"No income entries recorded in this period."}, PeriodInsights(nil, 7))
}

func TestPeriodInsights_FullWeekWithInactiveEmployee(t *testing.T) {
	reports := []models.EmployeeReport{
		employeeTotal("Ayu", 700, 2),
		employeeTotal("Budi", 0, 0),
	}

	insights := PeriodInsights(reports, 7)

	assert.Equal(t, []string{
		"Top performer: Ayu with 700 in total income.",
		"Average income per employee: 350.",
		"1 of 2 employees recorded no income in this period.",
		"Weekly average income: 700.",
	}, insights)
}

func TestPeriodInsights_ShortWindowSkipsWeeklyLine(t *testing.T) {
	reports := []models.EmployeeReport{
		employeeTotal("Ayu", 100, 1),
		employeeTotal("Budi", 50, 1),
	}

	insights := PeriodInsights(reports, 6)

	assert.Equal(t, []string{
		"Top performer: Ayu with 100 in total income.",
		"Average income per employee: 75.",
	}, insights)
}

func TestPeriodInsights_FortnightWeeklyAverage(t *testing.T) {
	reports := []models.EmployeeReport{
		employeeTotal("Ayu", 600, 3),
		employeeTotal("Budi", 100, 1),
	}

	insights := PeriodInsights(reports, 14)

	assert.Len(t, insights, 3)
	assert.Equal(t, "Weekly average income: 350.", insights[2])
}

func monthTotal(label string, total int64) models.TrendPoint {
	return models.TrendPoint{Label: label, TotalIncome: decimal.NewFromInt(total)}
}

func TestTrendInsights_Empty(t *testing.T) {
	assert.Equal(t, []string{"No trend data available."}, TrendInsights(nil, models.TrendStable, decimal.Zero))
}

func TestTrendInsights_BestEarliestWorstLatestOnTies(t *testing.T) {
	points := []models.TrendPoint{
		monthTotal("January 2025", 300),
		monthTotal("February 2025", 300),
		monthTotal("March 2025", 100),
		monthTotal("April 2025", 100),
	}

	direction, change := AnalyzeTrend(points)
	insights := TrendInsights(points, direction, change)

	assert.Equal(t, []string{
		"Overall trend: decreasing (66.67%).",
		"Average monthly income: 200.",
		"Best month: January 2025 (300).",
		"Worst month: April 2025 (100).",
	}, insights)
}

func TestTrendInsights_StableKeepsSignedChange(t *testing.T) {
	points := []models.TrendPoint{
		monthTotal("January 2025", 100),
		monthTotal("February 2025", 96),
	}

	direction, change := AnalyzeTrend(points)
	insights := TrendInsights(points, direction, change)

	assert.Equal(t, "Overall trend: stable (-4.00%).", insights[0])
	assert.Equal(t, "Best month: January 2025 (100).", insights[2])
	assert.Equal(t, "Worst month: February 2025 (96).", insights[3])
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "0"},
		{"under a thousand", decimal.NewFromInt(999), "999"},
		{"exactly a thousand", decimal.NewFromInt(1000), "1,000"},
		{"negative millions", decimal.NewFromInt(-1000000), "-1,000,000"},
		{"rounded to two places", decimal.NewFromFloat(1234567.891), "1,234,567.89"},
		{"negative with fraction", decimal.NewFromFloat(-1234.5), "-1,234.5"},
		{"fraction only", decimal.NewFromFloat(0.5), "0.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatAmount(tc.amount))
		})
	}
}
