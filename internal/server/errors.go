package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/arturo/finanzas/internal/common"
)

// ErrorResponse is the structured error envelope. Labels stay in Spanish to
// match the original wire contract.
type ErrorResponse struct {
	Timestamp        time.Time         `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps application errors onto the error envelope: NotFound and
// BadRequest from their sentinels, upstream failures to 502, anything else
// to a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{
		Timestamp: time.Now().UTC(),
		Message:   err.Error(),
		Path:      r.URL.Path,
	}

	var validationErr *common.ValidationError

	switch {
	case errors.As(err, &validationErr):
		resp.Status = http.StatusBadRequest
		resp.Error = "Error de validación"
		resp.Message = "Los datos ingresados no son válidos"
		resp.ValidationErrors = validationErr.Fields
	case errors.Is(err, common.ErrNotFound):
		resp.Status = http.StatusNotFound
		resp.Error = "No encontrado"
	case errors.Is(err, common.ErrBadRequest):
		resp.Status = http.StatusBadRequest
		resp.Error = "Solicitud incorrecta"
	case errors.Is(err, common.ErrUpstream):
		resp.Status = http.StatusBadGateway
		resp.Error = "Error de comunicación con servicio externo"
	default:
		resp.Status = http.StatusInternalServerError
		resp.Error = "Error interno del servidor"
		slog.Error("unclassified error", "path", r.URL.Path, "error", err)
	}

	writeJSON(w, resp.Status, resp)
}
