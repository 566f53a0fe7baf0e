package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arturo/finanzas/internal/common"
	"github.com/arturo/finanzas/internal/model"
)

const budgetColumns = `id, user_id, name, category_id, amount, start_date, end_date,
	period, alert_threshold, is_active, created_at, updated_at`

// CreateBudget inserts a new budget and returns its id. CreatedAt/UpdatedAt
// are set here, not by the caller.
func (s *SQLiteStorage) CreateBudget(ctx context.Context, budget *model.Budget) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(budget.UserID, "userID"); err != nil {
		return 0, err
	}
	if err := validateString(budget.Name, "name"); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	budget.CreatedAt = now
	budget.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (user_id, name, category_id, amount, start_date, end_date,
			period, alert_threshold, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		budget.UserID, budget.Name, budget.CategoryID, budget.Amount.String(),
		budget.StartDate.String(), budget.EndDate.String(), string(budget.Period),
		budget.AlertThreshold.String(), budget.IsActive, budget.CreatedAt, budget.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert budget: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get budget id: %w", err)
	}
	budget.ID = id

	slog.Info("created budget", "budget_id", id, "user_id", budget.UserID)
	return id, nil
}

// UpdateBudget replaces all mutable fields of the budget identified by
// (ID, UserID). Identity and CreatedAt never change.
func (s *SQLiteStorage) UpdateBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(budget.ID, "budgetID"); err != nil {
		return err
	}
	if err := validateID(budget.UserID, "userID"); err != nil {
		return err
	}

	budget.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE budgets
		SET name = ?, category_id = ?, amount = ?, start_date = ?, end_date = ?,
			period = ?, alert_threshold = ?, is_active = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		budget.Name, budget.CategoryID, budget.Amount.String(),
		budget.StartDate.String(), budget.EndDate.String(), string(budget.Period),
		budget.AlertThreshold.String(), budget.IsActive, budget.UpdatedAt,
		budget.ID, budget.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return common.NotFoundf("budget %d", budget.ID)
	}

	slog.Info("updated budget", "budget_id", budget.ID, "user_id", budget.UserID)
	return nil
}

// DeleteBudget removes the budget identified by (id, userID).
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, id, userID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "budgetID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.NotFoundf("budget %d", id)
	}

	slog.Info("deleted budget", "budget_id", id, "user_id", userID)
	return nil
}

// GetBudget returns the budget identified by (id, userID).
func (s *SQLiteStorage) GetBudget(ctx context.Context, id, userID int64) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = ? AND user_id = ?`, id, userID)

	budget, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NotFoundf("budget %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}
	return budget, nil
}

// GetBudgets returns all budgets owned by the user, newest window first.
func (s *SQLiteStorage) GetBudgets(ctx context.Context, userID int64) ([]model.Budget, error) {
	return s.queryBudgets(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = ? ORDER BY start_date DESC, id`, userID)
}

// GetActiveBudgets returns the user's active budgets.
func (s *SQLiteStorage) GetActiveBudgets(ctx context.Context, userID int64) ([]model.Budget, error) {
	return s.queryBudgets(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = ? AND is_active = 1 ORDER BY id`, userID)
}

// GetBudgetsByPeriod returns the user's budgets with the given period tag.
func (s *SQLiteStorage) GetBudgetsByPeriod(ctx context.Context, userID int64, period model.BudgetPeriod) ([]model.Budget, error) {
	return s.queryBudgets(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE user_id = ? AND period = ? ORDER BY id`,
		userID, string(period))
}

// GetBudgetsActiveOn returns the user's active budgets whose window contains
// the given date.
func (s *SQLiteStorage) GetBudgetsActiveOn(ctx context.Context, userID int64, date model.Date) ([]model.Budget, error) {
	return s.queryBudgets(ctx,
		`SELECT `+budgetColumns+` FROM budgets
		WHERE user_id = ? AND is_active = 1 AND start_date <= ? AND end_date >= ?
		ORDER BY id`,
		userID, date.String(), date.String())
}

func (s *SQLiteStorage) queryBudgets(ctx context.Context, query string, args ...any) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, *budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	slog.Debug("retrieved budgets", "count", len(budgets))
	return budgets, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBudget(row rowScanner) (*model.Budget, error) {
	var (
		budget             model.Budget
		categoryID         sql.NullInt64
		amount, threshold  string
		startDate, endDate string
		period             string
	)

	err := row.Scan(&budget.ID, &budget.UserID, &budget.Name, &categoryID,
		&amount, &startDate, &endDate, &period, &threshold,
		&budget.IsActive, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		id := categoryID.Int64
		budget.CategoryID = &id
	}

	if budget.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if budget.AlertThreshold, err = decimal.NewFromString(threshold); err != nil {
		return nil, fmt.Errorf("invalid alert threshold %q: %w", threshold, err)
	}
	if budget.StartDate, err = model.ParseDate(startDate); err != nil {
		return nil, err
	}
	if budget.EndDate, err = model.ParseDate(endDate); err != nil {
		return nil, err
	}
	budget.Period = model.BudgetPeriod(period)

	return &budget, nil
}
