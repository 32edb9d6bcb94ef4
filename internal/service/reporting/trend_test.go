package reporting

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
)

func trendPoints(totals ...int64) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, len(totals))
	for i, total := range totals {
		points = append(points, models.TrendPoint{
			Label:       fmt.Sprintf("Month %d", i+1),
			TotalIncome: decimal.NewFromInt(total),
		})
	}
	return points
}

func TestAnalyzeTrend(t *testing.T) {
	cases := []struct {
		name      string
		totals    []int64
		direction models.TrendDirection
		change    string
	}{
		{"no points", nil, models.TrendStable, "0"},
		{"single point", []int64{100}, models.TrendStable, "0"},
		{"flat", []int64{100, 100}, models.TrendStable, "0"},
		{"both ends zero", []int64{0, 40, 0}, models.TrendStable, "0"},
		{"growth from zero", []int64{0, 50}, models.TrendIncreasing, "100"},
		{"inside deadband up", []int64{100, 104}, models.TrendStable, "4"},
		{"inside deadband down", []int64{100, 96}, models.TrendStable, "-4"},
		{"deadband boundary", []int64{100, 105}, models.TrendIncreasing, "5"},
		{"increasing", []int64{100, 120}, models.TrendIncreasing, "20"},
		{"decreasing", []int64{100, 80}, models.TrendDecreasing, "20"},
		{"only endpoints matter", []int64{100, 10, 200}, models.TrendIncreasing, "100"},
		{"rounded to two places", []int64{300, 301}, models.TrendStable, "0.33"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			direction, change := AnalyzeTrend(trendPoints(tc.totals...))
			assert.Equal(t, tc.direction, direction)
			assert.Equal(t, tc.change, change.String())
		})
	}
}
