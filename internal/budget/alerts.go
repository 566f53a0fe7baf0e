package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/arturo/finanzas/internal/common"
	"github.com/arturo/finanzas/internal/model"
	"github.com/arturo/finanzas/internal/service"
)

// Alert messages keep the original Spanish wording of the user-facing API.
const (
	warningMessageFmt  = "El presupuesto '%s' ha alcanzado el %s%% de su límite asignado."
	exceededMessageFmt = "El presupuesto '%s' ha sido excedido (%s%%)."

	unknownBudgetName = "Presupuesto desconocido"
)

// AlertService raises budget alerts with per-type deduplication and serves
// the alert read model.
type AlertService struct {
	store service.Storage
}

// NewAlertService creates an AlertService backed by the given store.
func NewAlertService(store service.Storage) *AlertService {
	return &AlertService{store: store}
}

// MaybeCreate raises an alert of the given type for the budget unless an
// unread alert of that type already exists. Types deduplicate independently:
// an open WARNING does not suppress a new EXCEEDED alert.
//
// The check and the insert are not one atomic step, so two concurrent
// evaluations of the same budget can both insert. Duplicate unread alerts
// under that race are accepted rather than locked away.
func (s *AlertService) MaybeCreate(ctx context.Context, b *model.Budget, percentageUsed decimal.Decimal, alertType model.AlertType) error {
	existing, err := s.store.GetAlertsByBudget(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("failed to load alerts for budget %d: %w", b.ID, err)
	}

	for _, alert := range existing {
		if alert.Type == alertType && !alert.IsRead {
			slog.Debug("alert suppressed, unread alert of same type exists",
				"budget_id", b.ID, "type", alertType)
			return nil
		}
	}

	pct := percentageUsed.StringFixed(2)
	message := fmt.Sprintf(warningMessageFmt, b.Name, pct)
	if alertType == model.AlertExceeded {
		message = fmt.Sprintf(exceededMessageFmt, b.Name, pct)
	}

	alert := &model.BudgetAlert{
		BudgetID:       b.ID,
		UserID:         b.UserID,
		Type:           alertType,
		PercentageUsed: percentageUsed,
		IsRead:         false,
		Message:        message,
	}
	if err := s.store.SaveAlert(ctx, alert); err != nil {
		return fmt.Errorf("failed to save alert for budget %d: %w", b.ID, err)
	}
	return nil
}

// ListAll returns every alert of the user with budget names resolved.
func (s *AlertService) ListAll(ctx context.Context, userID int64) ([]model.BudgetAlertView, error) {
	alerts, err := s.store.GetAlertsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, userID, alerts)
}

// ListUnread returns the user's unread alerts with budget names resolved.
func (s *AlertService) ListUnread(ctx context.Context, userID int64) ([]model.BudgetAlertView, error) {
	alerts, err := s.store.GetUnreadAlerts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, userID, alerts)
}

// CountUnread returns the user's unread alert count.
func (s *AlertService) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.store.CountUnreadAlerts(ctx, userID)
}

// MarkRead flags one alert as read after checking it belongs to the user.
func (s *AlertService) MarkRead(ctx context.Context, alertID, userID int64) error {
	alert, err := s.store.GetAlert(ctx, alertID)
	if err != nil {
		return err
	}
	if alert.UserID != userID {
		return common.BadRequestf("alert %d does not belong to the user", alertID)
	}
	return s.store.MarkAlertRead(ctx, alertID)
}

// MarkAllRead flags every unread alert of the user as read. Idempotent.
func (s *AlertService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.store.MarkAllAlertsRead(ctx, userID)
}

func (s *AlertService) toViews(ctx context.Context, userID int64, alerts []model.BudgetAlert) ([]model.BudgetAlertView, error) {
	// Resolve budget names once per distinct budget; deleted budgets keep
	// their alerts and fall back to a placeholder name.
	names := make(map[int64]string)
	views := make([]model.BudgetAlertView, 0, len(alerts))

	for _, alert := range alerts {
		name, ok := names[alert.BudgetID]
		if !ok {
			b, err := s.store.GetBudget(ctx, alert.BudgetID, userID)
			switch {
			case errors.Is(err, common.ErrNotFound):
				name = unknownBudgetName
			case err != nil:
				return nil, err
			default:
				name = b.Name
			}
			names[alert.BudgetID] = name
		}

		views = append(views, model.BudgetAlertView{
			ID:             alert.ID,
			BudgetID:       alert.BudgetID,
			BudgetName:     name,
			Type:           alert.Type,
			PercentageUsed: alert.PercentageUsed,
			AlertDate:      alert.AlertDate,
			IsRead:         alert.IsRead,
			Message:        alert.Message,
		})
	}
	return views, nil
}
