package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleKind enumerates the supported recurring report schedules.
type ScheduleKind string

const (
	ScheduleTest    ScheduleKind = "test"
	ScheduleWeekly  ScheduleKind = "weekly"
	ScheduleMonthly ScheduleKind = "monthly"
	ScheduleYearly  ScheduleKind = "yearly"
)

// ParseScheduleKind maps user input onto a ScheduleKind.
func ParseScheduleKind(s string) (ScheduleKind, bool) {
	switch ScheduleKind(s) {
	case ScheduleTest, ScheduleWeekly, ScheduleMonthly, ScheduleYearly:
		return ScheduleKind(s), true
	}
	return "", false
}

// ReportSchedule describes one recurring schedule as seen by callers.
type ReportSchedule struct {
	Kind        ScheduleKind `json:"kind"`
	Spec        string       `json:"spec"` // cron expression in the business time zone
	Description string       `json:"description"`
	Enabled     bool         `json:"enabled"`
}

// ReportSnapshot is the archived record of one scheduled report run for one manager.
type ReportSnapshot struct {
	ID           string          `json:"id"`
	Kind         ScheduleKind    `json:"kind"`
	ManagerID    string          `json:"manager_id"`
	PeriodLabel  string          `json:"period_label"`
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalEntries int             `json:"total_entries"`
	CreatedAt    time.Time       `json:"created_at"`
}
