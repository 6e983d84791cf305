package handlers

import (
	"net/http"

	"github.com/campusrfid/ledger/internal/services"
)

type ReloadRequest struct {
	Amount AmountField `json:"amount" validate:"required" swaggertype:"string" example:"500"`
}

// AdminHandler serves the approval workflow and trip maintenance endpoints.
// Routes are expected behind RequireRole(admin).
type AdminHandler struct {
	ledger    Ledger
	validator *services.ValidationHelper
}

func NewAdminHandler(ledger Ledger) *AdminHandler {
	return &AdminHandler{
		ledger:    ledger,
		validator: services.NewValidationHelper(),
	}
}

// GetTrip fetches a trip for editing
// @Summary Get trip
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} models.TripRecord
// @Failure 404 {object} services.ErrorResponse
// @Router /edit/{id} [get]
func (h *AdminHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	trip, err := h.ledger.GetTrip(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// EditTrip overwrites a trip's fields and amount. Balances are not adjusted.
// @Summary Edit trip
// @Tags Admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param request body TripRequest true "Trip"
// @Success 200 {object} object{success=bool,trip=models.TripRecord,redirect=string}
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /edit/{id} [post]
func (h *AdminHandler) EditTrip(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	fields, amount, ok := decodeTrip(h.validator, w, r)
	if !ok {
		return
	}

	trip, err := h.ledger.EditTrip(r.Context(), id, fields, amount)
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"trip":     trip,
		"redirect": dashboardView,
	})
}

// Approve activates a pending account
// @Summary Approve account
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} object{success=bool,account=models.Account,redirect=string}
// @Failure 404 {object} services.ErrorResponse
// @Router /approve/{id} [post]
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	acc, err := h.ledger.Approve(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"account":  acc,
		"redirect": dashboardView,
	})
}

// Reject deletes an account
// @Summary Reject account
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Success 200 {object} object{success=bool,redirect=string}
// @Failure 404 {object} services.ErrorResponse
// @Router /reject/{id} [post]
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	if err := h.ledger.Reject(r.Context(), id); err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"redirect": dashboardView,
	})
}

// Reload credits an account balance
// @Summary Reload balance
// @Tags Admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param id path int true "Account ID"
// @Param request body ReloadRequest true "Amount"
// @Success 200 {object} object{success=bool,account=models.Account,redirect=string}
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /reload/{id} [post]
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	var req ReloadRequest
	if err := services.DecodeRequest(w, r, &req); err != nil {
		services.SendViewError(w, "Invalid amount", http.StatusBadRequest, dashboardView)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	amount, err := services.ParseAmount(string(req.Amount))
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	acc, err := h.ledger.ReloadBalance(r.Context(), id, amount)
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"account":  acc,
		"redirect": dashboardView,
	})
}

// DeleteTrip removes a trip without refunding it
// @Summary Delete trip
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} object{success=bool,redirect=string}
// @Failure 404 {object} services.ErrorResponse
// @Router /delete/{id} [get]
func (h *AdminHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	if err := h.ledger.DeleteTrip(r.Context(), id); err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"redirect": dashboardView,
	})
}
