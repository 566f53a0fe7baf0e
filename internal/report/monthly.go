package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arturo/finanzas/internal/common"
	"github.com/arturo/finanzas/internal/model"
)

// MonthlySummary builds the per-month report. The daily balance series has
// one entry for every calendar day of the month: days without transactions
// carry zero income, zero expense and zero balance rather than being
// omitted.
func (a *Aggregator) MonthlySummary(ctx context.Context, userID int64, year, month int) (*model.MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, common.BadRequestf("month %d is outside 1-12", month)
	}

	start, end := model.MonthRange(year, time.Month(month))

	balance, err := a.ledger.GetBalance(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance: %w", err)
	}

	summary := &model.MonthlySummary{
		Year:      year,
		Month:     month,
		MonthName: monthName(time.Month(month)),

		TotalIncome:  balance.TotalIncome,
		TotalExpense: balance.TotalExpense,
		Balance:      balance.Balance,

		ExpenseByCategory: balance.ExpenseByCategory,
		IncomeByCategory:  balance.IncomeByCategory,
	}

	page, err := a.ledger.GetTransactionsByDateRange(ctx, userID, start, end, 0, transactionPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch month transactions: %w", err)
	}
	transactions := page.Content
	summary.TransactionCount = len(transactions)

	for _, tx := range transactions {
		switch tx.Type {
		case model.TransactionIncome:
			summary.IncomeCount++
		case model.TransactionExpense:
			summary.ExpenseCount++
		}
	}

	daysInMonth := start.DaysUntil(end) + 1
	summary.AvgDailyExpense = balance.TotalExpense.DivRound(decimal.NewFromInt(int64(daysInMonth)), 2)

	summary.TopExpenseCategory, summary.TopExpenseAmount = topExpenseCategory(balance.ExpenseByCategory)
	if len(balance.ExpenseByCategory) == 0 {
		summary.TopExpenseCategory = ""
		summary.TopExpenseAmount = decimal.Zero
	}

	summary.DailyBalances = dailySeries(start, daysInMonth, transactions)
	return summary, nil
}

// dailySeries sums each calendar day's incomes and expenses independently.
// The series length always equals days, regardless of data sparsity.
func dailySeries(start model.Date, days int, transactions []model.Transaction) []model.DailyBalance {
	type dayTotals struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}

	byDay := make(map[string]dayTotals, days)
	for _, tx := range transactions {
		key := tx.TransactionDate.String()
		totals := byDay[key]
		switch tx.Type {
		case model.TransactionIncome:
			totals.income = totals.income.Add(tx.Amount)
		case model.TransactionExpense:
			totals.expense = totals.expense.Add(tx.Amount)
		}
		byDay[key] = totals
	}

	series := make([]model.DailyBalance, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDays(i)
		totals := byDay[day.String()]
		series = append(series, model.DailyBalance{
			Date:    day,
			Income:  totals.income,
			Expense: totals.expense,
			Balance: totals.income.Sub(totals.expense),
		})
	}
	return series
}
