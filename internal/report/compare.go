package report

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/arturo/finanzas/internal/common"
	"github.com/arturo/finanzas/internal/model"
)

// ComparePeriods contrasts two arbitrary date windows. Deltas are period2
// minus period1; percentage changes saturate to zero when the period-1
// value is zero instead of failing the division.
func (a *Aggregator) ComparePeriods(ctx context.Context, userID int64, p1Start, p1End, p2Start, p2End model.Date) (*model.ComparisonData, error) {
	if p1End.Before(p1Start) {
		return nil, common.BadRequestf("period 1 end %s is before start %s", p1End, p1Start)
	}
	if p2End.Before(p2Start) {
		return nil, common.BadRequestf("period 2 end %s is before start %s", p2End, p2Start)
	}

	var balance1, balance2 *model.Balance

	// The two windows are independent reads; fetch them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if balance1, err = a.ledger.GetBalance(gctx, userID, p1Start, p1End); err != nil {
			return fmt.Errorf("failed to fetch period 1 balance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if balance2, err = a.ledger.GetBalance(gctx, userID, p2Start, p2End); err != nil {
			return fmt.Errorf("failed to fetch period 2 balance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.ComparisonData{
		Period1StartDate: p1Start,
		Period1EndDate:   p1End,
		Period1Income:    balance1.TotalIncome,
		Period1Expense:   balance1.TotalExpense,
		Period1Balance:   balance1.Balance,

		Period2StartDate: p2Start,
		Period2EndDate:   p2End,
		Period2Income:    balance2.TotalIncome,
		Period2Expense:   balance2.TotalExpense,
		Period2Balance:   balance2.Balance,

		IncomeDelta:  balance2.TotalIncome.Sub(balance1.TotalIncome),
		ExpenseDelta: balance2.TotalExpense.Sub(balance1.TotalExpense),
		BalanceDelta: balance2.Balance.Sub(balance1.Balance),

		IncomeChangePct:  percentageChange(balance1.TotalIncome, balance2.TotalIncome),
		ExpenseChangePct: percentageChange(balance1.TotalExpense, balance2.TotalExpense),
		BalanceChangePct: percentageChange(balance1.Balance, balance2.Balance),
	}, nil
}
