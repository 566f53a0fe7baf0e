package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/arturo/finanzas/internal/model"
)

// trendMonths is the length of the trailing category trend.
const trendMonths = 6

// CategoryAnalysis builds the deep-dive for one category inside the window,
// plus a 6-month trailing trend anchored to the month containing end. The
// trend always has exactly 6 points, zero-valued for months without data.
// Budget composition fields are reserved and emitted as zero.
func (a *Aggregator) CategoryAnalysis(ctx context.Context, userID int64, categoryName string, start, end model.Date) (*model.CategoryAnalysis, error) {
	balance, err := a.ledger.GetBalance(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance: %w", err)
	}

	analysis := &model.CategoryAnalysis{
		CategoryName:       categoryName,
		AverageTransaction: decimal.Zero,

		BudgetAmount:         decimal.Zero,
		BudgetRemaining:      decimal.Zero,
		BudgetPercentageUsed: decimal.Zero,
	}

	categorySpent, ok := balance.ExpenseByCategory[categoryName]
	if !ok {
		categorySpent = decimal.Zero
	}
	analysis.TotalSpent = categorySpent
	analysis.Percentage = percentageOf(categorySpent, balance.TotalExpense)

	page, err := a.ledger.GetTransactionsByDateRange(ctx, userID, start, end, 0, transactionPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch window transactions: %w", err)
	}

	for _, tx := range page.Content {
		if tx.Type == model.TransactionExpense && tx.Category != nil && tx.Category.Name == categoryName {
			analysis.TransactionCount++
		}
	}

	if analysis.TransactionCount > 0 {
		count := decimal.NewFromInt(int64(analysis.TransactionCount))
		analysis.AverageTransaction = categorySpent.DivRound(count, 2)
	}

	trend, err := a.categoryTrend(ctx, userID, categoryName, end)
	if err != nil {
		return nil, err
	}
	analysis.MonthlyTrend = trend

	return analysis, nil
}

// categoryTrend fetches one balance per month for the 6 months ending at
// anchor's month. The per-month queries are independent reads and run
// concurrently; results land in a fixed slot per month, so the series order
// never depends on arrival order.
func (a *Aggregator) categoryTrend(ctx context.Context, userID int64, categoryName string, anchor model.Date) ([]model.MonthlySpending, error) {
	first := model.NewDate(anchor.Year(), anchor.Month(), 1).AddMonths(-(trendMonths - 1))

	trend := make([]model.MonthlySpending, trendMonths)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(trendMonths)

	for i := 0; i < trendMonths; i++ {
		i := i
		g.Go(func() error {
			monthStart := first.AddMonths(i)
			monthStart, monthEnd := model.MonthRange(monthStart.Year(), monthStart.Month())

			balance, err := a.ledger.GetBalance(gctx, userID, monthStart, monthEnd)
			if err != nil {
				return fmt.Errorf("failed to fetch balance for %s: %w", monthStart, err)
			}

			amount, ok := balance.ExpenseByCategory[categoryName]
			if !ok {
				amount = decimal.Zero
			}

			trend[i] = model.MonthlySpending{
				Year:      monthStart.Year(),
				Month:     int(monthStart.Month()),
				MonthName: monthAbbrev(monthStart.Month()),
				Amount:    amount,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trend, nil
}
