package timeframe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// refWednesday is Wednesday, June 18th 2025; the surrounding week runs
// Sunday June 15th through Saturday June 21st.
var refWednesday = time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseRecognizedExpressions(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantStart time.Time
		wantEnd   time.Time // start of the last included day
		wantLabel string
	}{
		{"this week", "this week", date(2025, 6, 15), date(2025, 6, 21), "This Week"},
		{"last week", "last week", date(2025, 6, 8), date(2025, 6, 14), "Last Week"},
		{"two weeks ago", "2 weeks ago", date(2025, 6, 1), date(2025, 6, 7), "2 Weeks Ago"},
		{"one week ago", "1 week ago", date(2025, 6, 8), date(2025, 6, 14), "1 Weeks Ago"},
		{"this month", "this month", date(2025, 6, 1), date(2025, 6, 30), "This Month"},
		{"last month", "last month", date(2025, 5, 1), date(2025, 5, 31), "Last Month"},
		{"last three months", "last 3 months", date(2025, 4, 1), date(2025, 6, 30), "Last 3 Months"},
		{"uppercase", "LAST WEEK", date(2025, 6, 8), date(2025, 6, 14), "Last Week"},
		{"embedded in sentence", "show me the report for this week please", date(2025, 6, 15), date(2025, 6, 21), "This Week"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf := Parse(tt.text, refWednesday)
			assert.True(t, tf.Matched)
			assert.Equal(t, tt.wantLabel, tf.Label)
			assert.Equal(t, tt.wantStart, tf.Start)
			assert.Equal(t, tt.wantEnd, startOfDay(tf.End))
			assert.True(t, tf.End.After(tf.Start))
		})
	}
}

func TestParseFallsBackToThisMonth(t *testing.T) {
	for _, text := range []string{"", "banana", "yesterday", "0 weeks ago", "weekly", "monthly totals"} {
		tf := Parse(text, refWednesday)
		assert.False(t, tf.Matched, "input %q", text)
		assert.Equal(t, "This Month", tf.Label)
		assert.Equal(t, date(2025, 6, 1), tf.Start)
		assert.Equal(t, date(2025, 6, 30), startOfDay(tf.End))
	}
}

func TestParsePrecedenceOrder(t *testing.T) {
	// "this week" wins over every later pattern in the same text.
	tf := Parse("this week or last week or last 2 months", refWednesday)
	assert.Equal(t, "This Week", tf.Label)

	// "last month" is checked before "last <N> months" and must not swallow it.
	tf = Parse("last 2 months", refWednesday)
	assert.Equal(t, "Last 2 Months", tf.Label)
	assert.Equal(t, date(2025, 5, 1), tf.Start)
}

func TestLastWeekStartsOnPriorSunday(t *testing.T) {
	tf := Parse("last week", refWednesday)
	assert.Equal(t, time.Sunday, tf.Start.Weekday())
	assert.Equal(t, date(2025, 6, 8), tf.Start)
	assert.Equal(t, 7, tf.DaySpan())
}

func TestWeekBoundariesAtWeekEdges(t *testing.T) {
	sunday := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	tf := ThisWeek(sunday)
	assert.Equal(t, date(2025, 6, 15), tf.Start)

	saturday := time.Date(2025, 6, 21, 23, 0, 0, 0, time.UTC)
	tf = ThisWeek(saturday)
	assert.Equal(t, date(2025, 6, 15), tf.Start)
	assert.Equal(t, date(2025, 6, 21), startOfDay(tf.End))
}

func TestMonthBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		ref     time.Time
		offset  int
		wantEnd time.Time
	}{
		{"leap february", date(2024, 3, 15), -1, date(2024, 2, 29)},
		{"non-leap february", date(2025, 3, 15), -1, date(2025, 2, 28)},
		{"thirty-day month", date(2025, 4, 10), 0, date(2025, 4, 30)},
		{"december of previous year", date(2025, 1, 20), -1, date(2024, 12, 31)},
		{"year rollover forward", date(2024, 12, 5), 1, date(2025, 1, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf := MonthOf(tt.ref, tt.offset)
			assert.Equal(t, 1, tf.Start.Day())
			assert.Equal(t, tt.wantEnd, startOfDay(tf.End))
		})
	}
}

func TestLastNMonthsSpansCalendarMonths(t *testing.T) {
	tf := LastNMonths(refWednesday, 6)
	assert.Equal(t, date(2025, 1, 1), tf.Start)
	assert.Equal(t, date(2025, 6, 30), startOfDay(tf.End))

	// A single month collapses onto the current one.
	tf = LastNMonths(refWednesday, 1)
	assert.Equal(t, date(2025, 6, 1), tf.Start)
	assert.Equal(t, date(2025, 6, 30), startOfDay(tf.End))
}

func TestMonthOfLabelCarriesMonthName(t *testing.T) {
	assert.Equal(t, "May 2025", MonthOf(refWednesday, -1).Label)
	assert.Equal(t, "December 2024", MonthOf(refWednesday, -6).Label)
}

func TestDaySpan(t *testing.T) {
	day := date(2025, 6, 10)
	assert.Equal(t, 1, DaySpan(day, endOfDay(day)))
	assert.Equal(t, 7, DaySpan(date(2025, 6, 8), endOfDay(date(2025, 6, 14))))
	assert.Equal(t, 30, ThisMonth(refWednesday).DaySpan())
	assert.Equal(t, 28, MonthOf(date(2025, 2, 10), 0).DaySpan())
	assert.Equal(t, 29, MonthOf(date(2024, 2, 10), 0).DaySpan())

	// Degenerate windows still count as one day.
	assert.Equal(t, 1, DaySpan(day, day))
}
