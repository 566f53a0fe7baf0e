package budget

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arturo/finanzas/internal/model"
	"github.com/arturo/finanzas/internal/storage"
)

func createTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return store
}

// stubLedger serves canned spend amounts keyed by category id ("" for the
// uncategorized query). It records call counts so tests can assert fan-out.
type stubLedger struct {
	mu sync.Mutex

	spentByCategory map[int64]decimal.Decimal
	spentDefault    decimal.Decimal
	spentErr        error
	calls           int
}

func (l *stubLedger) GetSpentAmount(_ context.Context, _ int64, categoryID *int64, _, _ model.Date) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++

	if l.spentErr != nil {
		return decimal.Zero, l.spentErr
	}
	if categoryID != nil {
		if amount, ok := l.spentByCategory[*categoryID]; ok {
			return amount, nil
		}
	}
	return l.spentDefault, nil
}

func (l *stubLedger) GetBalance(context.Context, int64, model.Date, model.Date) (*model.Balance, error) {
	panic("not used by budget tests")
}

func (l *stubLedger) GetRecentTransactions(context.Context, int64, int, int, string, string) (*model.TransactionPage, error) {
	panic("not used by budget tests")
}

func (l *stubLedger) GetTransactionsByDateRange(context.Context, int64, model.Date, model.Date, int, int) (*model.TransactionPage, error) {
	panic("not used by budget tests")
}

func (l *stubLedger) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func testParams(name string) Params {
	return Params{
		Name:      name,
		Amount:    decimal.RequireFromString("1000.00"),
		StartDate: model.NewDate(2025, 1, 1),
		EndDate:   model.NewDate(2025, 1, 31),
		Period:    model.PeriodMonthly,
	}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
