package report

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arturo/finanzas/internal/model"
)

// fakeLedger serves canned balances keyed by window ("start|end"), with a
// fallback for any other window. Transaction pages are shared across calls.
type fakeLedger struct {
	mu sync.Mutex

	balances       map[string]*model.Balance
	defaultBalance *model.Balance
	balanceErr     error
	balanceCalls   int

	recentPage *model.TransactionPage
	recentErr  error

	rangePage *model.TransactionPage
	rangeErr  error
}

func windowKey(start, end model.Date) string {
	return start.String() + "|" + end.String()
}

func (l *fakeLedger) GetSpentAmount(_ context.Context, _ int64, _ *int64, _, _ model.Date) (decimal.Decimal, error) {
	panic("not used by report tests")
}

func (l *fakeLedger) GetBalance(_ context.Context, _ int64, start, end model.Date) (*model.Balance, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balanceCalls++

	if l.balanceErr != nil {
		return nil, l.balanceErr
	}
	if b, ok := l.balances[windowKey(start, end)]; ok {
		return b, nil
	}
	if l.defaultBalance != nil {
		return l.defaultBalance, nil
	}
	return emptyBalance(start, end), nil
}

func (l *fakeLedger) GetRecentTransactions(_ context.Context, _ int64, _, _ int, _, _ string) (*model.TransactionPage, error) {
	if l.recentErr != nil {
		return nil, l.recentErr
	}
	if l.recentPage != nil {
		return l.recentPage, nil
	}
	return &model.TransactionPage{}, nil
}

func (l *fakeLedger) GetTransactionsByDateRange(_ context.Context, _ int64, _, _ model.Date, _, _ int) (*model.TransactionPage, error) {
	if l.rangeErr != nil {
		return nil, l.rangeErr
	}
	if l.rangePage != nil {
		return l.rangePage, nil
	}
	return &model.TransactionPage{}, nil
}

// fakeSummary is a canned SummaryProvider.
type fakeSummary struct {
	summary *model.BudgetSummary
	err     error
}

func (s *fakeSummary) GetBudgetSummary(context.Context, int64) (*model.BudgetSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

func emptyBalance(start, end model.Date) *model.Balance {
	return &model.Balance{
		StartDate:         start,
		EndDate:           end,
		ExpenseByCategory: map[string]decimal.Decimal{},
		IncomeByCategory:  map[string]decimal.Decimal{},
	}
}

func balanceOf(t *testing.T, income, expense string, expenses map[string]string) *model.Balance {
	t.Helper()
	in := decimal.RequireFromString(income)
	out := decimal.RequireFromString(expense)

	byCategory := map[string]decimal.Decimal{}
	for name, amount := range expenses {
		byCategory[name] = decimal.RequireFromString(amount)
	}

	return &model.Balance{
		TotalIncome:       in,
		TotalExpense:      out,
		Balance:           in.Sub(out),
		ExpenseByCategory: byCategory,
		IncomeByCategory:  map[string]decimal.Decimal{},
	}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expenseOn(day model.Date, category, amount string) model.Transaction {
	return model.Transaction{
		Type:            model.TransactionExpense,
		Amount:          money(amount),
		TransactionDate: day,
		Category:        &model.CategoryRef{Name: category},
	}
}

func incomeOn(day model.Date, amount string) model.Transaction {
	return model.Transaction{
		Type:            model.TransactionIncome,
		Amount:          money(amount),
		TransactionDate: day,
	}
}
