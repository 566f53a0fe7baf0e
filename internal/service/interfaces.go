// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/arturo/finanzas/internal/model"
)

// Storage defines the contract for our persistence layer. Every operation is
// scoped by user id; a lookup for a row owned by someone else behaves the
// same as a lookup for a row that does not exist.
type Storage interface {
	// Budget operations
	CreateBudget(ctx context.Context, budget *model.Budget) (int64, error)
	UpdateBudget(ctx context.Context, budget *model.Budget) error
	DeleteBudget(ctx context.Context, id, userID int64) error
	GetBudget(ctx context.Context, id, userID int64) (*model.Budget, error)
	GetBudgets(ctx context.Context, userID int64) ([]model.Budget, error)
	GetActiveBudgets(ctx context.Context, userID int64) ([]model.Budget, error)
	GetBudgetsByPeriod(ctx context.Context, userID int64, period model.BudgetPeriod) ([]model.Budget, error)
	GetBudgetsActiveOn(ctx context.Context, userID int64, date model.Date) ([]model.Budget, error)

	// Alert operations
	SaveAlert(ctx context.Context, alert *model.BudgetAlert) error
	GetAlert(ctx context.Context, id int64) (*model.BudgetAlert, error)
	GetAlertsByBudget(ctx context.Context, budgetID int64) ([]model.BudgetAlert, error)
	GetAlertsByUser(ctx context.Context, userID int64) ([]model.BudgetAlert, error)
	GetUnreadAlerts(ctx context.Context, userID int64) ([]model.BudgetAlert, error)
	CountUnreadAlerts(ctx context.Context, userID int64) (int64, error)
	MarkAlertRead(ctx context.Context, id int64) error
	MarkAllAlertsRead(ctx context.Context, userID int64) error
}

// LedgerClient is the boundary to the transaction ledger service. All
// monetary results use exact decimals; every call honors the caller's
// context deadline.
type LedgerClient interface {
	// GetSpentAmount returns the total expense amount in the window,
	// scoped to a category when categoryID is non-nil.
	GetSpentAmount(ctx context.Context, userID int64, categoryID *int64, start, end model.Date) (decimal.Decimal, error)

	// GetBalance returns income/expense totals and per-category breakdowns.
	GetBalance(ctx context.Context, userID int64, start, end model.Date) (*model.Balance, error)

	// GetRecentTransactions returns one page of transactions sorted by the
	// given field and direction.
	GetRecentTransactions(ctx context.Context, userID int64, page, size int, sortBy, sortDir string) (*model.TransactionPage, error)

	// GetTransactionsByDateRange returns one page of transactions inside
	// the window.
	GetTransactionsByDateRange(ctx context.Context, userID int64, start, end model.Date, page, size int) (*model.TransactionPage, error)
}

// SummaryProvider supplies the budget portfolio summary consumed by the
// report aggregator. It may fail independently of the ledger.
type SummaryProvider interface {
	GetBudgetSummary(ctx context.Context, userID int64) (*model.BudgetSummary, error)
}
