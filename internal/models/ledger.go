package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilterAll disables an exact-match report filter.
const FilterAll = "All"

// TripFields are the free-text descriptive columns of a trip.
type TripFields struct {
	RFIDType     string `json:"rfid_type" example:"Entry"`
	VehicleType  string `json:"vehicle_type" example:"Bus"`
	PlateNumber  string `json:"plate_number" example:"AB1-2345"`
	Driver       string `json:"driver"`
	Department   string `json:"department"`
	TravelDate   string `json:"travel_date" example:"2024-05-01"`
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
	RFIDLocation string `json:"rfid_location"`
}

// TripRecord is one logged vehicle movement charged against an account.
// RemainingBalance is the account balance captured right after the charge
// and is never recomputed.
type TripRecord struct {
	ID        int64  `json:"id"`
	AccountID *int64 `json:"account_id,omitempty"`
	TripFields
	Amount           decimal.Decimal `json:"amount" swaggertype:"string" example:"150.00"`
	RemainingBalance decimal.Decimal `json:"remaining_balance" swaggertype:"string" example:"1850.00"`
	CreatedAt        time.Time       `json:"created_at"`
}

// OwnedBy reports whether the trip references the given account.
func (t *TripRecord) OwnedBy(accountID int64) bool {
	return t.AccountID != nil && *t.AccountID == accountID
}

// TripFilter selects trips for the admin report. Empty fields and FilterAll
// match everything.
type TripFilter struct {
	Search      string
	RFIDType    string
	VehicleType string
}
