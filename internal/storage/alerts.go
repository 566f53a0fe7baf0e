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

const alertColumns = `id, budget_id, user_id, type, percentage_used, alert_date, is_read, message`

// SaveAlert inserts a new alert. AlertDate defaults to now when unset.
func (s *SQLiteStorage) SaveAlert(ctx context.Context, alert *model.BudgetAlert) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(alert.BudgetID, "budgetID"); err != nil {
		return err
	}
	if err := validateID(alert.UserID, "userID"); err != nil {
		return err
	}

	if alert.AlertDate.IsZero() {
		alert.AlertDate = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO budget_alerts (budget_id, user_id, type, percentage_used, alert_date, is_read, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		alert.BudgetID, alert.UserID, string(alert.Type), alert.PercentageUsed.String(),
		alert.AlertDate, alert.IsRead, alert.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get alert id: %w", err)
	}
	alert.ID = id

	slog.Info("created budget alert", "alert_id", id, "budget_id", alert.BudgetID, "type", alert.Type)
	return nil
}

// GetAlert returns a single alert by id, regardless of owner. Ownership
// checks are the caller's responsibility.
func (s *SQLiteStorage) GetAlert(ctx context.Context, id int64) (*model.BudgetAlert, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+alertColumns+` FROM budget_alerts WHERE id = ?`, id)

	alert, err := scanAlert(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NotFoundf("alert %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query alert: %w", err)
	}
	return alert, nil
}

// GetAlertsByBudget returns every alert ever raised for the budget.
func (s *SQLiteStorage) GetAlertsByBudget(ctx context.Context, budgetID int64) ([]model.BudgetAlert, error) {
	return s.queryAlerts(ctx,
		`SELECT `+alertColumns+` FROM budget_alerts WHERE budget_id = ? ORDER BY alert_date DESC, id DESC`,
		budgetID)
}

// GetAlertsByUser returns all of the user's alerts, newest first.
func (s *SQLiteStorage) GetAlertsByUser(ctx context.Context, userID int64) ([]model.BudgetAlert, error) {
	return s.queryAlerts(ctx,
		`SELECT `+alertColumns+` FROM budget_alerts WHERE user_id = ? ORDER BY alert_date DESC, id DESC`,
		userID)
}

// GetUnreadAlerts returns the user's unread alerts, newest first.
func (s *SQLiteStorage) GetUnreadAlerts(ctx context.Context, userID int64) ([]model.BudgetAlert, error) {
	return s.queryAlerts(ctx,
		`SELECT `+alertColumns+` FROM budget_alerts WHERE user_id = ? AND is_read = 0 ORDER BY alert_date DESC, id DESC`,
		userID)
}

// CountUnreadAlerts returns how many unread alerts the user has.
func (s *SQLiteStorage) CountUnreadAlerts(ctx context.Context, userID int64) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM budget_alerts WHERE user_id = ? AND is_read = 0`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread alerts: %w", err)
	}
	return count, nil
}

// MarkAlertRead flags a single alert as read.
func (s *SQLiteStorage) MarkAlertRead(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE budget_alerts SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check mark-read result: %w", err)
	}
	if affected == 0 {
		return common.NotFoundf("alert %d", id)
	}
	return nil
}

// MarkAllAlertsRead flags every unread alert of the user as read. Calling it
// with nothing unread is a no-op.
func (s *SQLiteStorage) MarkAllAlertsRead(ctx context.Context, userID int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE budget_alerts SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark alerts read: %w", err)
	}

	affected, _ := result.RowsAffected()
	slog.Info("marked alerts read", "user_id", userID, "count", affected)
	return nil
}

func (s *SQLiteStorage) queryAlerts(ctx context.Context, query string, args ...any) ([]model.BudgetAlert, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.BudgetAlert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, *alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}
	return alerts, nil
}

func scanAlert(row rowScanner) (*model.BudgetAlert, error) {
	var (
		alert     model.BudgetAlert
		alertType string
		pct       string
	)

	err := row.Scan(&alert.ID, &alert.BudgetID, &alert.UserID, &alertType,
		&pct, &alert.AlertDate, &alert.IsRead, &alert.Message)
	if err != nil {
		return nil, err
	}

	alert.Type = model.AlertType(alertType)
	if alert.PercentageUsed, err = decimal.NewFromString(pct); err != nil {
		return nil, fmt.Errorf("invalid percentage %q: %w", pct, err)
	}
	return &alert, nil
}
