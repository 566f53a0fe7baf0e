// Package model defines the core domain types shared across the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod identifies the recurrence a budget is defined for.
type BudgetPeriod string

// Supported budget periods.
const (
	PeriodWeekly    BudgetPeriod = "WEEKLY"
	PeriodMonthly   BudgetPeriod = "MONTHLY"
	PeriodQuarterly BudgetPeriod = "QUARTERLY"
	PeriodAnnual    BudgetPeriod = "ANNUAL"
)

// Valid reports whether p is one of the supported periods.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodAnnual:
		return true
	}
	return false
}

// BudgetStatus classifies how much of a budget has been consumed.
type BudgetStatus string

// Budget status values, from healthiest to worst.
const (
	StatusOnTrack  BudgetStatus = "ON_TRACK"
	StatusWarning  BudgetStatus = "WARNING"
	StatusExceeded BudgetStatus = "EXCEEDED"
)

// DefaultAlertThreshold is applied when a budget is created without an
// explicit threshold.
var DefaultAlertThreshold = decimal.RequireFromString("80.00")

// Budget is a user-defined spending limit over a date window.
// A nil CategoryID means the budget applies across all categories.
type Budget struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"userId"`
	Name           string          `json:"name"`
	CategoryID     *int64          `json:"categoryId,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	StartDate      Date            `json:"startDate"`
	EndDate        Date            `json:"endDate"`
	Period         BudgetPeriod    `json:"period"`
	AlertThreshold decimal.Decimal `json:"alertThreshold"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// BudgetProgress is the derived view of a budget against its actual spend.
// It is recomputed on every read and never persisted.
type BudgetProgress struct {
	Budget         Budget          `json:"budget"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed decimal.Decimal `json:"percentageUsed"`
	Status         BudgetStatus    `json:"status"`
}

// BudgetSummary folds progress across a user's budgets into portfolio-level
// counts and totals. Only active budgets contribute to the financial totals.
type BudgetSummary struct {
	TotalBudgets       int             `json:"totalBudgets"`
	ActiveBudgets      int             `json:"activeBudgets"`
	BudgetsOnTrack     int             `json:"budgetsOnTrack"`
	BudgetsWithWarning int             `json:"budgetsWithWarning"`
	BudgetsExceeded    int             `json:"budgetsExceeded"`
	TotalBudgeted      decimal.Decimal `json:"totalBudgeted"`
	TotalSpent         decimal.Decimal `json:"totalSpent"`
	TotalRemaining     decimal.Decimal `json:"totalRemaining"`
}
