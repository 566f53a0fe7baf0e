package server

import (
	"net/http"
	"strconv"

	"github.com/arturo/finanzas/internal/common"
	"github.com/arturo/finanzas/internal/model"
)

func queryDate(r *http.Request, name string) (model.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return model.Date{}, common.NewValidationError(name, "required date parameter is missing")
	}
	date, err := model.ParseDate(raw)
	if err != nil {
		return model.Date{}, common.NewValidationError(name, "must be a date in YYYY-MM-DD form")
	}
	return date, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.NewValidationError(name, "must be an integer")
	}
	return value, nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	start, err := queryDate(r, "startDate")
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := queryDate(r, "endDate")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if end.Before(start) {
		writeError(w, r, common.BadRequestf("end date %s is before start date %s", end, start))
		return
	}

	dashboard, err := s.reports.Dashboard(r.Context(), uid, start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		writeError(w, r, err)
		return
	}
	month, err := queryInt(r, "month")
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := s.reports.MonthlySummary(r.Context(), uid, year, month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCategoryAnalysis(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	name := r.URL.Query().Get("category")
	if name == "" {
		writeError(w, r, common.NewValidationError("category", "category name is required"))
		return
	}
	start, err := queryDate(r, "startDate")
	if err != nil {
		writeError(w, r, err)
		return
	}
	end, err := queryDate(r, "endDate")
	if err != nil {
		writeError(w, r, err)
		return
	}

	analysis, err := s.reports.CategoryAnalysis(r.Context(), uid, name, start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleComparePeriods(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	dates := make([]model.Date, 4)
	for i, name := range []string{"period1Start", "period1End", "period2Start", "period2End"} {
		date, err := queryDate(r, name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		dates[i] = date
	}

	comparison, err := s.reports.ComparePeriods(r.Context(), uid, dates[0], dates[1], dates[2], dates[3])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}
