// Package timeframe resolves free-text time expressions into concrete date windows.
package timeframe

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeFrame is a resolved date window. Start is the first instant of the first
// day and End the last instant of the last day, so the window is inclusive of
// both calendar days. Matched reports whether the input text actually named a
// known time expression or the window is the silent this-month fallback.
type TimeFrame struct {
	Start   time.Time
	End     time.Time
	Label   string
	Matched bool
}

var (
	weeksAgoPattern   = regexp.MustCompile(`(\d+)\s+weeks?\s+ago`)
	lastMonthsPattern = regexp.MustCompile(`last\s+(\d+)\s+months?`)
)

// Parse resolves text against the reference time. Expressions are matched
// case-insensitively anywhere in the text, in precedence order: "this week",
// "last week", "<N> weeks ago", "this month", "last month", "last <N> months".
// Anything else resolves to the current calendar month with Matched=false.
func Parse(text string, ref time.Time) TimeFrame {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if strings.Contains(normalized, "this week") {
		return ThisWeek(ref)
	}
	if strings.Contains(normalized, "last week") {
		return LastWeek(ref)
	}
	if m := weeksAgoPattern.FindStringSubmatch(normalized); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return WeeksAgo(ref, n)
		}
	}
	if strings.Contains(normalized, "this month") {
		return ThisMonth(ref)
	}
	if strings.Contains(normalized, "last month") {
		return LastMonth(ref)
	}
	if m := lastMonthsPattern.FindStringSubmatch(normalized); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return LastNMonths(ref, n)
		}
	}

	fallback := ThisMonth(ref)
	fallback.Matched = false
	return fallback
}

// ThisWeek covers the current Sunday-to-Saturday week around ref.
func ThisWeek(ref time.Time) TimeFrame {
	start := weekStart(ref)
	return TimeFrame{
		Start:   start,
		End:     endOfDay(start.AddDate(0, 0, 6)),
		Label:   "This Week",
		Matched: true,
	}
}

// LastWeek covers the Sunday-to-Saturday week before the current one.
func LastWeek(ref time.Time) TimeFrame {
	tf := WeeksAgo(ref, 1)
	tf.Label = "Last Week"
	return tf
}

// WeeksAgo covers the Sunday-to-Saturday week n weeks before the current one.
func WeeksAgo(ref time.Time, n int) TimeFrame {
	start := weekStart(ref).AddDate(0, 0, -7*n)
	return TimeFrame{
		Start:   start,
		End:     endOfDay(start.AddDate(0, 0, 6)),
		Label:   fmt.Sprintf("%d Weeks Ago", n),
		Matched: true,
	}
}

// ThisMonth covers the current calendar month.
func ThisMonth(ref time.Time) TimeFrame {
	tf := MonthOf(ref, 0)
	tf.Label = "This Month"
	return tf
}

// LastMonth covers the previous calendar month.
func LastMonth(ref time.Time) TimeFrame {
	tf := MonthOf(ref, -1)
	tf.Label = "Last Month"
	return tf
}

// LastNMonths covers n consecutive calendar months ending with the current one.
func LastNMonths(ref time.Time, n int) TimeFrame {
	first := MonthOf(ref, -(n - 1))
	current := MonthOf(ref, 0)
	return TimeFrame{
		Start:   first.Start,
		End:     current.End,
		Label:   fmt.Sprintf("Last %d Months", n),
		Matched: true,
	}
}

// MonthOf covers the single calendar month offset months away from ref's month.
// The label carries the month name, e.g. "May 2025". Month-end arithmetic goes
// through time.Date day-zero normalization, which is leap-year correct.
func MonthOf(ref time.Time, offset int) TimeFrame {
	month := ref.Month() + time.Month(offset)
	start := time.Date(ref.Year(), month, 1, 0, 0, 0, 0, ref.Location())
	last := time.Date(ref.Year(), month+1, 0, 0, 0, 0, 0, ref.Location())
	return TimeFrame{
		Start:   start,
		End:     endOfDay(last),
		Label:   start.Format("January 2006"),
		Matched: true,
	}
}

// DaySpan returns the window length in whole days, never less than one.
func DaySpan(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	return max(1, days)
}

// DaySpan returns the frame's length in whole days.
func (tf TimeFrame) DaySpan() int {
	return DaySpan(tf.Start, tf.End)
}

// weekStart is the midnight of the Sunday on or before ref.
func weekStart(ref time.Time) time.Time {
	day := startOfDay(ref)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
