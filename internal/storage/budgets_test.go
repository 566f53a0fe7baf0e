package storage

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturo/finanzas/internal/common"
	"github.com/arturo/finanzas/internal/model"
)

func TestCreateAndGetBudget(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	catID := int64(7)
	b := testBudget(1, "Comida")
	b.CategoryID = &catID

	id, err := store.CreateBudget(ctx, b)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, id, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	got, err := store.GetBudget(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, "Comida", got.Name)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, int64(7), *got.CategoryID)
	assert.True(t, got.Amount.Equal(b.Amount))
	assert.True(t, got.AlertThreshold.Equal(b.AlertThreshold))
	assert.Equal(t, model.PeriodMonthly, got.Period)
	assert.Equal(t, "2025-01-01", got.StartDate.String())
	assert.Equal(t, "2025-01-31", got.EndDate.String())
	assert.True(t, got.IsActive)
}

func TestCreateBudgetValidation(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	t.Run("missing user", func(t *testing.T) {
		b := testBudget(0, "Comida")
		_, err := store.CreateBudget(ctx, b)
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		b := testBudget(1, "")
		_, err := store.CreateBudget(ctx, b)
		assert.Error(t, err)
	})
}

func TestGetBudgetOwnership(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	id, err := store.CreateBudget(ctx, testBudget(1, "Comida"))
	require.NoError(t, err)

	// Another user's lookup behaves exactly like a missing row.
	_, err = store.GetBudget(ctx, id, 2)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.GetBudget(ctx, 9999, 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateBudget(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	b := testBudget(1, "Comida")
	_, err := store.CreateBudget(ctx, b)
	require.NoError(t, err)

	b.Name = "Comida y bebida"
	b.Amount = decimal.RequireFromString("1250.50")
	b.IsActive = false
	require.NoError(t, store.UpdateBudget(ctx, b))

	got, err := store.GetBudget(ctx, b.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Comida y bebida", got.Name)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("1250.50")))
	assert.False(t, got.IsActive)

	t.Run("wrong owner is not found", func(t *testing.T) {
		other := *b
		other.UserID = 42
		err := store.UpdateBudget(ctx, &other)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDeleteBudget(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	id, err := store.CreateBudget(ctx, testBudget(1, "Comida"))
	require.NoError(t, err)

	err = store.DeleteBudget(ctx, id, 2)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.DeleteBudget(ctx, id, 1))

	err = store.DeleteBudget(ctx, id, 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetBudgetsFilters(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	january := testBudget(1, "Enero")

	february := testBudget(1, "Febrero")
	february.StartDate = model.NewDate(2025, 2, 1)
	february.EndDate = model.NewDate(2025, 2, 28)

	annual := testBudget(1, "Anual")
	annual.EndDate = model.NewDate(2025, 12, 31)
	annual.Period = model.PeriodAnnual
	annual.IsActive = false

	otherUser := testBudget(2, "Ajeno")

	for _, b := range []*model.Budget{january, february, annual, otherUser} {
		_, err := store.CreateBudget(ctx, b)
		require.NoError(t, err)
	}

	t.Run("all budgets newest window first", func(t *testing.T) {
		budgets, err := store.GetBudgets(ctx, 1)
		require.NoError(t, err)
		require.Len(t, budgets, 3)
		assert.Equal(t, "Febrero", budgets[0].Name)
	})

	t.Run("active only", func(t *testing.T) {
		budgets, err := store.GetActiveBudgets(ctx, 1)
		require.NoError(t, err)
		require.Len(t, budgets, 2)
		for _, b := range budgets {
			assert.True(t, b.IsActive)
		}
	})

	t.Run("by period", func(t *testing.T) {
		budgets, err := store.GetBudgetsByPeriod(ctx, 1, model.PeriodAnnual)
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.Equal(t, "Anual", budgets[0].Name)
	})

	t.Run("active on a date", func(t *testing.T) {
		budgets, err := store.GetBudgetsActiveOn(ctx, 1, model.NewDate(2025, 2, 15))
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.Equal(t, "Febrero", budgets[0].Name)

		// Window edges are inclusive.
		budgets, err = store.GetBudgetsActiveOn(ctx, 1, model.NewDate(2025, 1, 31))
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.Equal(t, "Enero", budgets[0].Name)
	})

	t.Run("empty result for unknown user", func(t *testing.T) {
		budgets, err := store.GetBudgets(ctx, 999)
		require.NoError(t, err)
		assert.Empty(t, budgets)
	})
}
