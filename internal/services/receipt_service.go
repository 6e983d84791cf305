package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/campusrfid/ledger/internal/models"
	"github.com/campusrfid/ledger/internal/repositories"
	"github.com/skip2/go-qrcode"
)

const receiptImageSize = 256

// Receipt is a trip plus a scannable QR code of its charge.
type Receipt struct {
	Trip    *models.TripRecord `json:"trip"`
	Payload string             `json:"payload" example:"12|AB1-2345|150|1850"`
	QRImage string             `json:"qr_image"` // base64 PNG
}

type ReceiptService struct {
	trips *repositories.TripRepository
}

func NewReceiptService(trips *repositories.TripRepository) *ReceiptService {
	return &ReceiptService{trips: trips}
}

// Receipt builds the receipt for tripID. Only the trip's owner or an admin may
// read it.
func (s *ReceiptService) Receipt(ctx context.Context, session *models.Session, tripID int64) (*Receipt, error) {
	trip, err := s.trips.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if session == nil || (!session.IsAdmin() && !trip.OwnedBy(session.AccountID)) {
		return nil, ErrUnauthorized
	}

	payload := ReceiptPayload(trip)
	image, err := encodeQR(payload)
	if err != nil {
		return nil, fmt.Errorf("encode receipt qr: %w", err)
	}

	return &Receipt{Trip: trip, Payload: payload, QRImage: image}, nil
}

// ReceiptPayload is the text encoded in a receipt QR code.
func ReceiptPayload(trip *models.TripRecord) string {
	return fmt.Sprintf("%d|%s|%s|%s", trip.ID, trip.PlateNumber, trip.Amount.String(), trip.RemainingBalance.String())
}

func encodeQR(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(receiptImageSize)); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
