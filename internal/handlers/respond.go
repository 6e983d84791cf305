package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/campusrfid/ledger/internal/services"
	"github.com/go-chi/chi/v5"
)

const (
	loginView     = "/login"
	registerView  = "/register"
	dashboardView = "/dashboard"
)

var errInvalidID = errors.New("invalid id")

// AmountField holds a raw amount from a JSON number or a string. Parsing is
// left to services.ParseAmount so bad input surfaces as an invalid amount.
type AmountField string

func (a *AmountField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = AmountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = AmountField(n)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeServiceError maps a service error onto a status code and tells the
// client which view to return to.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, view string) {
	var status int
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		http.Redirect(w, r, loginView, http.StatusSeeOther)
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrPendingApproval):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrInvalidTag), errors.Is(err, errInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrEmptyRoster):
		status = http.StatusNotFound
	default:
		log.Printf("[HTTP] %s %s failed: %v", r.Method, r.URL.Path, err)
		services.SendViewError(w, "Internal server error", http.StatusInternalServerError, view)
		return
	}
	services.SendViewError(w, err.Error(), status, view)
}

func parseID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// HealthCheck reports liveness
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} object{status=string}
// @Router /health [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
