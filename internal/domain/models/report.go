package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeReport aggregates one employee's income entries over a window.
type EmployeeReport struct {
	Employee     Employee        `json:"employee"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	EntryCount   int             `json:"entry_count"`
	AverageDaily decimal.Decimal `json:"average_daily"`
	Entries      []IncomeRecord  `json:"entries,omitempty"` // most recent first
}

// PeriodReport aggregates all employees of a manager over one window.
type PeriodReport struct {
	Label           string           `json:"label"`
	Start           time.Time        `json:"start"`
	End             time.Time        `json:"end"`
	TotalIncome     decimal.Decimal  `json:"total_income"`
	TotalEntries    int              `json:"total_entries"`
	AverageDaily    decimal.Decimal  `json:"average_daily"`
	EmployeeReports []EmployeeReport `json:"employee_reports"` // sorted descending by total income
	TopPerformers   []EmployeeReport `json:"top_performers"`   // first five of EmployeeReports
	Insights        []string         `json:"insights"`
}

// TrendDirection classifies the trajectory of income across periods.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// TrendPoint is one sub-period (typically a calendar month) in a trend series.
type TrendPoint struct {
	Label        string          `json:"label"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	EntryCount   int             `json:"entry_count"`
	AverageDaily decimal.Decimal `json:"average_daily"`
}

// TrendAnalysis holds the classified trajectory over consecutive periods.
type TrendAnalysis struct {
	Points        []TrendPoint    `json:"points"` // chronological, oldest first
	Direction     TrendDirection  `json:"direction"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Insights      []string        `json:"insights"`
}
