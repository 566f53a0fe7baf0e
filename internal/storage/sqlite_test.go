package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturo/finanzas/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return store
}

func testBudget(userID int64, name string) *model.Budget {
	return &model.Budget{
		UserID:         userID,
		Name:           name,
		Amount:         decimal.RequireFromString("1000.00"),
		StartDate:      model.NewDate(2025, 1, 1),
		EndDate:        model.NewDate(2025, 1, 31),
		Period:         model.PeriodMonthly,
		AlertThreshold: decimal.RequireFromString("80.00"),
		IsActive:       true,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)

	// A second run must see the schema as current and change nothing.
	require.NoError(t, store.Migrate(context.Background()))

	version, err := store.schemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestValidateContext(t *testing.T) {
	store := createTestStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.GetBudgets(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
