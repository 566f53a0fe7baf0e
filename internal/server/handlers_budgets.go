package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/arturo/finanzas/internal/budget"
	"github.com/arturo/finanzas/internal/common"
	"github.com/arturo/finanzas/internal/model"
)

const userIDHeader = "X-User-Id"

// userID extracts the pre-authenticated caller identity from the request.
func userID(r *http.Request) (int64, error) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return 0, common.BadRequestf("missing %s header", userIDHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.BadRequestf("invalid %s header %q", userIDHeader, raw)
	}
	return id, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.BadRequestf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

type budgetRequest struct {
	Name           string             `json:"name"`
	CategoryID     *int64             `json:"categoryId"`
	Amount         decimal.Decimal    `json:"amount"`
	StartDate      model.Date         `json:"startDate"`
	EndDate        model.Date         `json:"endDate"`
	Period         model.BudgetPeriod `json:"period"`
	AlertThreshold *decimal.Decimal   `json:"alertThreshold"`
}

func (req budgetRequest) params() budget.Params {
	return budget.Params{
		Name:           req.Name,
		CategoryID:     req.CategoryID,
		Amount:         req.Amount,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Period:         req.Period,
		AlertThreshold: req.AlertThreshold,
	}
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, common.BadRequestf("invalid request body: %v", err))
		return
	}

	progress, err := s.budgets.Create(r.Context(), uid, req.params())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, progress)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, common.BadRequestf("invalid request body: %v", err))
		return
	}

	progress, err := s.budgets.Update(r.Context(), id, uid, req.params())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.budgets.Delete(r.Context(), id, uid); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Presupuesto eliminado correctamente"})
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	progress, err := s.budgets.Get(r.Context(), id, uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// handleListBudgets serves /budgets with optional active=true and period
// query filters.
func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var result []model.BudgetProgress
	switch {
	case r.URL.Query().Get("active") == "true":
		result, err = s.budgets.ListActive(r.Context(), uid)
	case r.URL.Query().Get("period") != "":
		period := model.BudgetPeriod(r.URL.Query().Get("period"))
		result, err = s.budgets.ListByPeriod(r.Context(), uid, period)
	default:
		result, err = s.budgets.List(r.Context(), uid)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if result == nil {
		result = []model.BudgetProgress{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := s.budgets.GetBudgetSummary(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
