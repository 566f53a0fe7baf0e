package budget

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/arturo/finanzas/internal/common"
	"github.com/arturo/finanzas/internal/model"
	"github.com/arturo/finanzas/internal/service"
)

// spendConcurrency bounds the parallel spend queries issued per request.
const spendConcurrency = 4

// Params carries the caller-supplied fields for creating or updating a
// budget. A nil AlertThreshold means "use the default on create, keep the
// current value on update".
type Params struct {
	Name           string
	CategoryID     *int64
	Amount         decimal.Decimal
	StartDate      model.Date
	EndDate        model.Date
	Period         model.BudgetPeriod
	AlertThreshold *decimal.Decimal
}

// Service implements budget CRUD and progress evaluation. Progress reads
// evaluate alerts as a side effect, exactly like the original progress
// endpoint did.
type Service struct {
	store  service.Storage
	ledger service.LedgerClient
	alerts *AlertService
}

// NewService creates a budget Service.
func NewService(store service.Storage, ledger service.LedgerClient, alerts *AlertService) *Service {
	return &Service{store: store, ledger: ledger, alerts: alerts}
}

func validateParams(p Params) error {
	if p.Name == "" {
		return common.NewValidationError("name", "name is required")
	}
	if !p.Amount.IsPositive() {
		return common.NewValidationError("amount", "amount must be positive")
	}
	if p.EndDate.Before(p.StartDate) {
		return common.BadRequestf("end date %s is before start date %s", p.EndDate, p.StartDate)
	}
	if !p.Period.Valid() {
		return common.NewValidationError("period", fmt.Sprintf("unknown period %q", p.Period))
	}
	if p.AlertThreshold != nil {
		t := *p.AlertThreshold
		if t.IsNegative() || t.GreaterThan(hundred) {
			return common.BadRequestf("alert threshold %s is outside 0-100", t)
		}
	}
	return nil
}

// Create validates and stores a new budget, then returns it with computed
// progress. New budgets are always active; the alert threshold defaults to
// 80.00 when not supplied.
func (s *Service) Create(ctx context.Context, userID int64, p Params) (*model.BudgetProgress, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}

	threshold := model.DefaultAlertThreshold
	if p.AlertThreshold != nil {
		threshold = *p.AlertThreshold
	}

	b := &model.Budget{
		UserID:         userID,
		Name:           p.Name,
		CategoryID:     p.CategoryID,
		Amount:         p.Amount,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Period:         p.Period,
		AlertThreshold: threshold,
		IsActive:       true,
	}
	if _, err := s.store.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return s.evaluate(ctx, b)
}

// Update replaces the budget's definition. The active flag and, when no new
// threshold is given, the alert threshold survive the update.
func (s *Service) Update(ctx context.Context, id, userID int64, p Params) (*model.BudgetProgress, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}

	b, err := s.store.GetBudget(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	b.Name = p.Name
	b.CategoryID = p.CategoryID
	b.Amount = p.Amount
	b.StartDate = p.StartDate
	b.EndDate = p.EndDate
	b.Period = p.Period
	if p.AlertThreshold != nil {
		b.AlertThreshold = *p.AlertThreshold
	}

	if err := s.store.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}

	return s.evaluate(ctx, b)
}

// Delete removes the budget identified by (id, userID). Alerts raised for it
// are kept; their listings fall back to a placeholder budget name.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	return s.store.DeleteBudget(ctx, id, userID)
}

// Get returns one budget with computed progress, raising threshold alerts
// as a side effect.
func (s *Service) Get(ctx context.Context, id, userID int64) (*model.BudgetProgress, error) {
	b, err := s.store.GetBudget(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.evaluate(ctx, b)
}

// List returns all of the user's budgets with computed progress.
func (s *Service) List(ctx context.Context, userID int64) ([]model.BudgetProgress, error) {
	budgets, err := s.store.GetBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.evaluateAll(ctx, budgets)
}

// ListActive returns the user's active budgets with computed progress.
func (s *Service) ListActive(ctx context.Context, userID int64) ([]model.BudgetProgress, error) {
	budgets, err := s.store.GetActiveBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.evaluateAll(ctx, budgets)
}

// ListByPeriod returns the user's budgets with the given period tag, with
// computed progress.
func (s *Service) ListByPeriod(ctx context.Context, userID int64, period model.BudgetPeriod) ([]model.BudgetProgress, error) {
	if !period.Valid() {
		return nil, common.BadRequestf("unknown period %q", period)
	}
	budgets, err := s.store.GetBudgetsByPeriod(ctx, userID, period)
	if err != nil {
		return nil, err
	}
	return s.evaluateAll(ctx, budgets)
}

// evaluate fetches the budget's spend, computes progress and raises alerts
// when the status calls for them.
func (s *Service) evaluate(ctx context.Context, b *model.Budget) (*model.BudgetProgress, error) {
	spent, err := s.ledger.GetSpentAmount(ctx, b.UserID, b.CategoryID, b.StartDate, b.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spend for budget %d: %w", b.ID, err)
	}

	progress := ComputeProgress(b, spent)

	switch progress.Status {
	case model.StatusExceeded:
		err = s.alerts.MaybeCreate(ctx, b, progress.PercentageUsed, model.AlertExceeded)
	case model.StatusWarning:
		err = s.alerts.MaybeCreate(ctx, b, progress.PercentageUsed, model.AlertWarning)
	}
	if err != nil {
		return nil, err
	}

	return &progress, nil
}

// evaluateAll runs evaluate across budgets with bounded concurrency. The
// result slice is indexed by input position, so ordering never depends on
// which spend query answers first.
func (s *Service) evaluateAll(ctx context.Context, budgets []model.Budget) ([]model.BudgetProgress, error) {
	results := make([]model.BudgetProgress, len(budgets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(spendConcurrency)

	for i := range budgets {
		i := i
		g.Go(func() error {
			progress, err := s.evaluate(gctx, &budgets[i])
			if err != nil {
				return err
			}
			results[i] = *progress
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
