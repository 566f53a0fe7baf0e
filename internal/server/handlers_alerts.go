package server

import (
	"net/http"

	"github.com/arturo/finanzas/internal/model"
)

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	alerts, err := s.alerts.ListAll(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if alerts == nil {
		alerts = []model.BudgetAlertView{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) handleListUnreadAlerts(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	alerts, err := s.alerts.ListUnread(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if alerts == nil {
		alerts = []model.BudgetAlertView{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) handleUnreadAlertCount(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	count, err := s.alerts.CountUnread(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, count)
}

func (s *Server) handleMarkAlertRead(w http.ResponseWriter, r *http.Request) {
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

	if err := s.alerts.MarkRead(r.Context(), id, uid); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Alerta marcada como leída"})
}

func (s *Server) handleMarkAllAlertsRead(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.alerts.MarkAllRead(r.Context(), uid); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Todas las alertas marcadas como leídas"})
}
