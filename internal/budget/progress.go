// Package budget implements the budget progress engine: progress
// calculation, threshold alerting with dedup, portfolio summaries and the
// budget CRUD service.
package budget

import (
	"github.com/shopspring/decimal"

	"github.com/arturo/finanzas/internal/model"
)

var hundred = decimal.NewFromInt(100)

// ComputeProgress derives remaining amount, percentage used and status from
// a budget and its actual spend. Pure: alert emission is the caller's job.
//
// PercentageUsed is spent/amount*100 rounded half-up to 4 fractional digits.
// Status precedence: >= 100 is EXCEEDED, >= threshold is WARNING (both
// comparisons inclusive), otherwise ON_TRACK. Budget amounts are validated
// positive at creation, so the division is safe.
func ComputeProgress(b *model.Budget, spent decimal.Decimal) model.BudgetProgress {
	remaining := b.Amount.Sub(spent)
	percentageUsed := spent.Mul(hundred).DivRound(b.Amount, 4)

	status := model.StatusOnTrack
	switch {
	case percentageUsed.GreaterThanOrEqual(hundred):
		status = model.StatusExceeded
	case percentageUsed.GreaterThanOrEqual(b.AlertThreshold):
		status = model.StatusWarning
	}

	return model.BudgetProgress{
		Budget:         *b,
		Spent:          spent,
		Remaining:      remaining,
		PercentageUsed: percentageUsed,
		Status:         status,
	}
}
