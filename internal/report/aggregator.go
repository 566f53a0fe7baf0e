// Package report composes ledger and budget snapshots into dashboards,
// monthly summaries, category analyses and period comparisons. It performs
// no joins and owns no state: every result is rebuilt from the remote
// snapshots on each call.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arturo/finanzas/internal/model"
	"github.com/arturo/finanzas/internal/service"
)

// transactionPageSize is the page size used when fetching a window's
// transactions for in-memory aggregation, matching the ledger's cap.
const transactionPageSize = 1000

var hundred = decimal.NewFromInt(100)

// Aggregator builds the four report views from the ledger and the budget
// summary provider.
type Aggregator struct {
	ledger  service.LedgerClient
	budgets service.SummaryProvider
}

// NewAggregator creates a report Aggregator.
func NewAggregator(ledger service.LedgerClient, budgets service.SummaryProvider) *Aggregator {
	return &Aggregator{ledger: ledger, budgets: budgets}
}

// Month names stay in Spanish to match the original report wire contract.
var (
	monthNames = [12]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}
	monthAbbrevs = [12]string{
		"ene", "feb", "mar", "abr", "may", "jun",
		"jul", "ago", "sep", "oct", "nov", "dic",
	}
)

func monthName(m time.Month) string   { return monthNames[m-1] }
func monthAbbrev(m time.Month) string { return monthAbbrevs[m-1] }

// percentageOf returns part/total*100 rounded half-up to 4 fractional
// digits, or zero when total is not positive.
func percentageOf(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).DivRound(total, 4)
}

// percentageChange returns (new-old)/old*100 rounded half-up to 4 digits.
// A zero old value saturates to zero rather than failing the division.
func percentageChange(oldValue, newValue decimal.Decimal) decimal.Decimal {
	if oldValue.IsZero() {
		return decimal.Zero
	}
	return newValue.Sub(oldValue).Mul(hundred).DivRound(oldValue, 4)
}

// topExpenseCategory returns the category with the largest spend, breaking
// amount ties by name so the result is stable. Returns "N/A" when the map
// is empty.
func topExpenseCategory(expenses map[string]decimal.Decimal) (string, decimal.Decimal) {
	top := "N/A"
	max := decimal.Zero
	for name, amount := range expenses {
		switch {
		case top == "N/A",
			amount.GreaterThan(max),
			amount.Equal(max) && name < top:
			top = name
			max = amount
		}
	}
	return top, max
}

// rankCategories ranks expense categories by spend descending and keeps the
// top limit entries, each with its share of the total.
func rankCategories(expenses map[string]decimal.Decimal, total decimal.Decimal, limit int) []model.CategorySpending {
	ranked := make([]model.CategorySpending, 0, len(expenses))
	for name, amount := range expenses {
		ranked = append(ranked, model.CategorySpending{
			CategoryName: name,
			Amount:       amount,
			Percentage:   percentageOf(amount, total),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Amount.Equal(ranked[j].Amount) {
			return ranked[i].Amount.GreaterThan(ranked[j].Amount)
		}
		return ranked[i].CategoryName < ranked[j].CategoryName
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
