package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertType distinguishes threshold alerts from overrun alerts.
type AlertType string

// Alert types.
const (
	AlertWarning  AlertType = "WARNING"
	AlertExceeded AlertType = "EXCEEDED"
)

// BudgetAlert records that a budget crossed its threshold or was exceeded.
// PercentageUsed is a snapshot taken at alert time; it does not track the
// budget's later consumption.
type BudgetAlert struct {
	ID             int64           `json:"id"`
	BudgetID       int64           `json:"budgetId"`
	UserID         int64           `json:"userId"`
	Type           AlertType       `json:"type"`
	PercentageUsed decimal.Decimal `json:"percentageUsed"`
	AlertDate      time.Time       `json:"alertDate"`
	IsRead         bool            `json:"isRead"`
	Message        string          `json:"message"`
}

// BudgetAlertView is the read model for alert listings: the alert plus the
// owning budget's name resolved at query time.
type BudgetAlertView struct {
	ID             int64           `json:"id"`
	BudgetID       int64           `json:"budgetId"`
	BudgetName     string          `json:"budgetName"`
	Type           AlertType       `json:"type"`
	PercentageUsed decimal.Decimal `json:"percentageUsed"`
	AlertDate      time.Time       `json:"alertDate"`
	IsRead         bool            `json:"isRead"`
	Message        string          `json:"message"`
}
