// Package server exposes the budget and report services over HTTP. The
// caller identity arrives pre-authenticated in the X-User-Id header set by
// the upstream gateway; no authentication happens here.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/arturo/finanzas/internal/budget"
	"github.com/arturo/finanzas/internal/report"
)

// Server wires the HTTP handlers to the application services.
type Server struct {
	budgets *budget.Service
	alerts  *budget.AlertService
	reports *report.Aggregator

	httpServer *http.Server
}

// Config holds HTTP listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// New creates a Server listening on cfg.Addr.
func New(cfg Config, budgets *budget.Service, alerts *budget.AlertService, reports *report.Aggregator) *Server {
	s := &Server{
		budgets: budgets,
		alerts:  alerts,
		reports: reports,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      withRequestID(withLogging(withRecovery(s.routes()))),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Budget CRUD and progress
	mux.HandleFunc("POST /budgets", s.handleCreateBudget)
	mux.HandleFunc("GET /budgets", s.handleListBudgets)
	mux.HandleFunc("GET /budgets/summary", s.handleBudgetSummary)
	mux.HandleFunc("GET /budgets/{id}", s.handleGetBudget)
	mux.HandleFunc("GET /budgets/{id}/progress", s.handleGetBudget)
	mux.HandleFunc("PUT /budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /budgets/{id}", s.handleDeleteBudget)

	// Alerts
	mux.HandleFunc("GET /alerts", s.handleListAlerts)
	mux.HandleFunc("GET /alerts/unread", s.handleListUnreadAlerts)
	mux.HandleFunc("GET /alerts/unread/count", s.handleUnreadAlertCount)
	mux.HandleFunc("PUT /alerts/{id}/read", s.handleMarkAlertRead)
	mux.HandleFunc("PUT /alerts/read-all", s.handleMarkAllAlertsRead)

	// Reports
	mux.HandleFunc("GET /reports/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /reports/monthly", s.handleMonthlySummary)
	mux.HandleFunc("GET /reports/category", s.handleCategoryAnalysis)
	mux.HandleFunc("GET /reports/compare", s.handleComparePeriods)

	return mux
}

// ListenAndServe blocks serving HTTP until the listener fails or Shutdown
// is called.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
