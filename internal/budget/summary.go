package budget

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/arturo/finanzas/internal/model"
)

// GetBudgetSummary folds progress across the user's budgets into portfolio
// counts and totals. Inactive budgets count toward TotalBudgets only; every
// active budget contributes one spend query, issued with bounded concurrency
// and folded in stored budget order so the totals are deterministic.
//
// Summarization is a pure read: unlike progress lookups it never raises
// alerts.
func (s *Service) GetBudgetSummary(ctx context.Context, userID int64) (*model.BudgetSummary, error) {
	all, err := s.store.GetBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}
	active, err := s.store.GetActiveBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	spent := make([]decimal.Decimal, len(active))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(spendConcurrency)

	for i := range active {
		i := i
		g.Go(func() error {
			b := &active[i]
			amount, err := s.ledger.GetSpentAmount(gctx, b.UserID, b.CategoryID, b.StartDate, b.EndDate)
			if err != nil {
				return fmt.Errorf("failed to fetch spend for budget %d: %w", b.ID, err)
			}
			spent[i] = amount
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &model.BudgetSummary{
		TotalBudgets:   len(all),
		ActiveBudgets:  len(active),
		TotalBudgeted:  decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalRemaining: decimal.Zero,
	}

	for i := range active {
		progress := ComputeProgress(&active[i], spent[i])

		summary.TotalBudgeted = summary.TotalBudgeted.Add(active[i].Amount)
		summary.TotalSpent = summary.TotalSpent.Add(spent[i])

		switch progress.Status {
		case model.StatusExceeded:
			summary.BudgetsExceeded++
		case model.StatusWarning:
			summary.BudgetsWithWarning++
		default:
			summary.BudgetsOnTrack++
		}
	}

	summary.TotalRemaining = summary.TotalBudgeted.Sub(summary.TotalSpent)
	return summary, nil
}
