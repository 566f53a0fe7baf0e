package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/arturo/finanzas/internal/model"
)

// Dashboard builds the composite dashboard for the date window. The budget
// summary is fetched best-effort: if that dependency fails the budget
// section is zero-filled and the rest of the dashboard is served normally.
// Failures of any ledger call abort the whole operation.
func (a *Aggregator) Dashboard(ctx context.Context, userID int64, start, end model.Date) (*model.DashboardData, error) {
	balance, err := a.ledger.GetBalance(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance: %w", err)
	}

	dashboard := &model.DashboardData{
		TotalIncome:       balance.TotalIncome,
		TotalExpense:      balance.TotalExpense,
		Balance:           balance.Balance,
		MonthSavings:      balance.Balance,
		SavingsRate:       decimal.Zero,
		ExpenseByCategory: balance.ExpenseByCategory,
		IncomeByCategory:  balance.IncomeByCategory,
		TotalBudgeted:     decimal.Zero,
		TotalSpent:        decimal.Zero,
	}

	if balance.TotalIncome.IsPositive() {
		dashboard.SavingsRate = percentageOf(balance.Balance, balance.TotalIncome)
	}

	dashboard.TopCategories = rankCategories(balance.ExpenseByCategory, balance.TotalExpense, 5)

	if summary, err := a.budgets.GetBudgetSummary(ctx, userID); err != nil {
		slog.Warn("budget summary unavailable, serving dashboard without it",
			"user_id", userID, "error", err)
	} else {
		dashboard.TotalBudgets = summary.TotalBudgets
		dashboard.ActiveBudgets = summary.ActiveBudgets
		dashboard.BudgetsAtRisk = summary.BudgetsWithWarning + summary.BudgetsExceeded
		dashboard.TotalBudgeted = summary.TotalBudgeted
		dashboard.TotalSpent = summary.TotalSpent
	}

	recent, err := a.ledger.GetRecentTransactions(ctx, userID, 0, 5, "transactionDate", "DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent transactions: %w", err)
	}
	dashboard.RecentTransactions = recent.Content

	window, err := a.ledger.GetTransactionsByDateRange(ctx, userID, start, end, 0, transactionPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch window transactions: %w", err)
	}
	dashboard.TotalTransactions = int(window.TotalElements)

	days := int64(start.DaysUntil(end)) + 1
	dashboard.AvgDailyExpense = balance.TotalExpense.DivRound(decimal.NewFromInt(days), 2)

	dashboard.TopExpenseCategory, _ = topExpenseCategory(balance.ExpenseByCategory)

	return dashboard, nil
}
