package handlers

import (
	"context"
	"net/http"

	"github.com/campusrfid/ledger/internal/middleware"
	"github.com/campusrfid/ledger/internal/models"
	"github.com/campusrfid/ledger/internal/services"
	"github.com/shopspring/decimal"
)

// Reports serves the read side of both dashboards.
type Reports interface {
	AdminDashboard(ctx context.Context, filter models.TripFilter) (*services.AdminDashboard, error)
	UserDashboard(ctx context.Context, accountID int64) (*services.UserDashboard, error)
}

// Ledger is the write side: every balance and trip mutation.
type Ledger interface {
	SubmitTrip(ctx context.Context, accountID int64, fields models.TripFields, amount decimal.Decimal) (*models.TripRecord, error)
	ReloadBalance(ctx context.Context, accountID int64, amount decimal.Decimal) (*models.Account, error)
	Approve(ctx context.Context, accountID int64) (*models.Account, error)
	Reject(ctx context.Context, accountID int64) error
	GetTrip(ctx context.Context, tripID int64) (*models.TripRecord, error)
	EditTrip(ctx context.Context, tripID int64, fields models.TripFields, amount decimal.Decimal) (*models.TripRecord, error)
	DeleteTrip(ctx context.Context, tripID int64) error
}

// TripRequest is the trip form. Amount accepts a JSON number or a numeric
// string.
type TripRequest struct {
	models.TripFields
	Amount AmountField `json:"amount" validate:"required" swaggertype:"string" example:"150.00"`
}

type DashboardHandler struct {
	reports   Reports
	ledger    Ledger
	validator *services.ValidationHelper
}

func NewDashboardHandler(reports Reports, ledger Ledger) *DashboardHandler {
	return &DashboardHandler{
		reports:   reports,
		ledger:    ledger,
		validator: services.NewValidationHelper(),
	}
}

// Dashboard returns the caller's dashboard
// @Summary Dashboard
// @Description Admins get the filtered trip report with its total, pending registrations and
// @Description all user accounts. Users get their own trips and live balance.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param search query string false "Plate number substring"
// @Param rfid query string false "RFID type, All for any"
// @Param vehicle_filter query string false "Vehicle type, All for any"
// @Success 200 {object} services.AdminDashboard
// @Success 200 {object} services.UserDashboard
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, loginView, http.StatusSeeOther)
		return
	}

	if session.IsAdmin() {
		q := r.URL.Query()
		view, err := h.reports.AdminDashboard(r.Context(), models.TripFilter{
			Search:      q.Get("search"),
			RFIDType:    q.Get("rfid"),
			VehicleType: q.Get("vehicle_filter"),
		})
		if err != nil {
			writeServiceError(w, r, err, dashboardView)
			return
		}
		writeJSON(w, http.StatusOK, view)
		return
	}

	view, err := h.reports.UserDashboard(r.Context(), session.AccountID)
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SubmitTrip logs a trip and charges it to the caller's balance
// @Summary Submit trip
// @Tags Dashboard
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param request body TripRequest true "Trip"
// @Success 201 {object} object{success=bool,trip=models.TripRecord,redirect=string}
// @Failure 400 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Router /dashboard [post]
func (h *DashboardHandler) SubmitTrip(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, loginView, http.StatusSeeOther)
		return
	}

	fields, amount, ok := decodeTrip(h.validator, w, r)
	if !ok {
		return
	}

	trip, err := h.ledger.SubmitTrip(r.Context(), session.AccountID, fields, amount)
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"trip":     trip,
		"redirect": dashboardView,
	})
}

func decodeTrip(v *services.ValidationHelper, w http.ResponseWriter, r *http.Request) (models.TripFields, decimal.Decimal, bool) {
	var req TripRequest
	if err := services.DecodeRequest(w, r, &req); err != nil {
		services.SendViewError(w, "Invalid request body", http.StatusBadRequest, dashboardView)
		return models.TripFields{}, decimal.Zero, false
	}

	if err := v.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return models.TripFields{}, decimal.Zero, false
	}

	amount, err := services.ParseAmount(string(req.Amount))
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return models.TripFields{}, decimal.Zero, false
	}
	return req.TripFields, amount, true
}
