package handlers

import (
	"context"
	"net/http"

	"github.com/campusrfid/ledger/internal/middleware"
	"github.com/campusrfid/ledger/internal/models"
	"github.com/campusrfid/ledger/internal/services"
)

type Receipts interface {
	Receipt(ctx context.Context, session *models.Session, tripID int64) (*services.Receipt, error)
}

type ReceiptHandler struct {
	receipts Receipts
}

func NewReceiptHandler(receipts Receipts) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

// Receipt returns a trip with a QR code of its charge
// @Summary Trip receipt
// @Description Readable by the trip's owner or an admin.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} services.Receipt
// @Failure 404 {object} services.ErrorResponse
// @Router /trips/{id}/receipt [get]
func (h *ReceiptHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, loginView, http.StatusSeeOther)
		return
	}

	id, err := parseID(r, "id")
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}

	receipt, err := h.receipts.Receipt(r.Context(), session, id)
	if err != nil {
		writeServiceError(w, r, err, dashboardView)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}
