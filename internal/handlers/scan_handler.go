package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/campusrfid/ledger/internal/models"
	"github.com/go-chi/chi/v5"
)

type Scans interface {
	RecordScan(ctx context.Context, tagID string) (*models.Scan, error)
	ListScans(ctx context.Context, limit int) ([]models.Scan, error)
	SimulateScan(ctx context.Context) (*models.Scan, error)
}

type ScanHandler struct {
	scans Scans
}

func NewScanHandler(scans Scans) *ScanHandler {
	return &ScanHandler{scans: scans}
}

// RecordScan is the hook the serial forwarder calls for each tag read
// @Summary Record RFID scan
// @Tags Scans
// @Produce json
// @Param tag_id path string true "RFID tag id"
// @Success 201 {object} object{success=bool,scan=models.Scan}
// @Failure 400 {object} services.ErrorResponse
// @Router /scan/{tag_id} [get]
func (h *ScanHandler) RecordScan(w http.ResponseWriter, r *http.Request) {
	scan, err := h.scans.RecordScan(r.Context(), chi.URLParam(r, "tag_id"))
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "scan": scan})
}

// ListScans returns recent scans, newest first
// @Summary List scans
// @Tags Scans
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max scans (default 100)"
// @Success 200 {array} models.Scan
// @Router /api/scans [get]
func (h *ScanHandler) ListScans(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	scans, err := h.scans.ListScans(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, scans)
}

// Simulate records a read for a random roster tag
// @Summary Simulate scan
// @Tags Scans
// @Produce json
// @Security BearerAuth
// @Success 201 {object} object{success=bool,scan=models.Scan}
// @Failure 404 {object} services.ErrorResponse
// @Router /auto_simulate [get]
func (h *ScanHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	scan, err := h.scans.SimulateScan(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "scan": scan})
}
