package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturo/finanzas/internal/common"
	"github.com/arturo/finanzas/internal/model"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	start := model.NewDate(2025, 1, 1)
	end := model.NewDate(2025, 1, 31)

	ledger := &fakeLedger{
		defaultBalance: balanceOf(t, "3100.00", "310.00", map[string]string{
			"Comida":     "100.00",
			"Transporte": "80.00",
			"Ocio":       "60.00",
			"Hogar":      "40.00",
			"Salud":      "20.00",
			"Otros":      "10.00",
		}),
		recentPage: &model.TransactionPage{
			Content: []model.Transaction{
				expenseOn(model.NewDate(2025, 1, 30), "Comida", "25.00"),
				incomeOn(model.NewDate(2025, 1, 28), "1500.00"),
			},
			TotalElements: 37,
		},
		rangePage: &model.TransactionPage{TotalElements: 37},
	}
	budgets := &fakeSummary{
		summary: &model.BudgetSummary{
			TotalBudgets:       4,
			ActiveBudgets:      3,
			BudgetsOnTrack:     1,
			BudgetsWithWarning: 1,
			BudgetsExceeded:    1,
			TotalBudgeted:      money("1700.00"),
			TotalSpent:         money("1500.00"),
			TotalRemaining:     money("200.00"),
		},
	}
	agg := NewAggregator(ledger, budgets)

	dashboard, err := agg.Dashboard(ctx, 1, start, end)
	require.NoError(t, err)

	assert.True(t, dashboard.TotalIncome.Equal(money("3100.00")))
	assert.True(t, dashboard.TotalExpense.Equal(money("310.00")))
	assert.True(t, dashboard.Balance.Equal(money("2790.00")))
	assert.True(t, dashboard.MonthSavings.Equal(money("2790.00")))

	// 2790 / 3100 * 100 = 90.0000
	assert.True(t, dashboard.SavingsRate.Equal(money("90.0000")),
		"savings rate = %s", dashboard.SavingsRate)

	// Six categories ranked, only the top five kept.
	require.Len(t, dashboard.TopCategories, 5)
	assert.Equal(t, "Comida", dashboard.TopCategories[0].CategoryName)
	assert.Equal(t, "Salud", dashboard.TopCategories[4].CategoryName)
	// 100 / 310 * 100 rounded half-up to 4 digits.
	assert.True(t, dashboard.TopCategories[0].Percentage.Equal(money("32.2581")),
		"top share = %s", dashboard.TopCategories[0].Percentage)

	assert.Equal(t, 4, dashboard.TotalBudgets)
	assert.Equal(t, 3, dashboard.ActiveBudgets)
	assert.Equal(t, 2, dashboard.BudgetsAtRisk)
	assert.True(t, dashboard.TotalBudgeted.Equal(money("1700.00")))
	assert.True(t, dashboard.TotalSpent.Equal(money("1500.00")))

	require.Len(t, dashboard.RecentTransactions, 2)
	assert.Equal(t, 37, dashboard.TotalTransactions)

	// 310.00 over the 31 days of January.
	assert.True(t, dashboard.AvgDailyExpense.Equal(money("10.00")),
		"avg daily expense = %s", dashboard.AvgDailyExpense)

	assert.Equal(t, "Comida", dashboard.TopExpenseCategory)
}

func TestDashboardWithoutBudgetSummary(t *testing.T) {
	ctx := context.Background()

	ledger := &fakeLedger{
		defaultBalance: balanceOf(t, "1000.00", "400.00", map[string]string{"Comida": "400.00"}),
	}
	budgets := &fakeSummary{err: common.Upstreamf("budget summary query failed")}
	agg := NewAggregator(ledger, budgets)

	dashboard, err := agg.Dashboard(ctx, 1, model.NewDate(2025, 1, 1), model.NewDate(2025, 1, 31))
	require.NoError(t, err, "a missing budget summary must not fail the dashboard")

	// Budget section zero-filled, everything else intact.
	assert.Zero(t, dashboard.TotalBudgets)
	assert.Zero(t, dashboard.ActiveBudgets)
	assert.Zero(t, dashboard.BudgetsAtRisk)
	assert.True(t, dashboard.TotalBudgeted.IsZero())
	assert.True(t, dashboard.TotalSpent.IsZero())

	assert.True(t, dashboard.TotalIncome.Equal(money("1000.00")))
	assert.Equal(t, "Comida", dashboard.TopExpenseCategory)
}

func TestDashboardZeroIncome(t *testing.T) {
	ctx := context.Background()

	ledger := &fakeLedger{
		defaultBalance: balanceOf(t, "0", "150.00", map[string]string{"Comida": "150.00"}),
	}
	agg := NewAggregator(ledger, &fakeSummary{summary: &model.BudgetSummary{}})

	dashboard, err := agg.Dashboard(ctx, 1, model.NewDate(2025, 1, 1), model.NewDate(2025, 1, 31))
	require.NoError(t, err)

	assert.True(t, dashboard.SavingsRate.IsZero(), "no income means no savings rate")
	assert.True(t, dashboard.Balance.Equal(money("-150.00")))
}

func TestDashboardNoExpenses(t *testing.T) {
	ctx := context.Background()

	ledger := &fakeLedger{
		defaultBalance: balanceOf(t, "500.00", "0", nil),
	}
	agg := NewAggregator(ledger, &fakeSummary{summary: &model.BudgetSummary{}})

	dashboard, err := agg.Dashboard(ctx, 1, model.NewDate(2025, 1, 1), model.NewDate(2025, 1, 31))
	require.NoError(t, err)

	assert.Empty(t, dashboard.TopCategories)
	assert.Equal(t, "N/A", dashboard.TopExpenseCategory)
	assert.True(t, dashboard.AvgDailyExpense.IsZero())
}

func TestDashboardLedgerFailure(t *testing.T) {
	ctx := context.Background()

	ledger := &fakeLedger{balanceErr: common.Upstreamf("ledger down")}
	agg := NewAggregator(ledger, &fakeSummary{summary: &model.BudgetSummary{}})

	_, err := agg.Dashboard(ctx, 1, model.NewDate(2025, 1, 1), model.NewDate(2025, 1, 31))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUpstream)
}
