package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeRecord captures one employee's income for a single calendar day.
// The store enforces at most one record per employee per day.
type IncomeRecord struct {
	EmployeeID string          `json:"employee_id"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes,omitempty"`
}
