package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventTripSubmitted   = "TRIP_SUBMITTED"
	EventTripEdited      = "TRIP_EDITED"
	EventTripDeleted     = "TRIP_DELETED"
	EventBalanceReloaded = "BALANCE_RELOADED"
	EventAccountApproved = "ACCOUNT_APPROVED"
	EventAccountRejected = "ACCOUNT_REJECTED"
	EventError           = "ERROR"
)

type Event struct {
	Timestamp time.Time        `json:"timestamp"`
	EventType string           `json:"event_type"`
	AccountID int64            `json:"account_id,omitempty"`
	TripID    int64            `json:"trip_id,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Balance   *decimal.Decimal `json:"balance,omitempty"`
	Status    string           `json:"status"`
	Details   any              `json:"details,omitempty"`
}

// Logger writes ledger mutations as single-line JSON records.
type Logger struct {
	out *log.Logger
}

func NewLogger() *Logger {
	return &Logger{out: log.Default()}
}

// NewLoggerTo writes through l instead of the process logger.
func NewLoggerTo(l *log.Logger) *Logger {
	return &Logger{out: l}
}

func (a *Logger) LogTrip(tripID, accountID int64, amount, remaining decimal.Decimal) {
	a.log(Event{
		EventType: EventTripSubmitted,
		AccountID: accountID,
		TripID:    tripID,
		Amount:    &amount,
		Balance:   &remaining,
		Status:    "SUCCESS",
	})
}

func (a *Logger) LogReload(accountID int64, amount, balance decimal.Decimal) {
	a.log(Event{
		EventType: EventBalanceReloaded,
		AccountID: accountID,
		Amount:    &amount,
		Balance:   &balance,
		Status:    "SUCCESS",
	})
}

// LogAccount records an approval workflow decision.
func (a *Logger) LogAccount(eventType string, accountID int64) {
	a.log(Event{EventType: eventType, AccountID: accountID, Status: "SUCCESS"})
}

func (a *Logger) LogTripChange(eventType string, tripID int64, amount *decimal.Decimal) {
	a.log(Event{EventType: eventType, TripID: tripID, Amount: amount, Status: "SUCCESS"})
}

func (a *Logger) LogError(operation string, accountID int64, err error) {
	a.log(Event{
		EventType: EventError,
		AccountID: accountID,
		Status:    "FAILED",
		Details:   map[string]string{"operation": operation, "error": err.Error()},
	})
}

func (a *Logger) log(event Event) {
	event.Timestamp = time.Now().UTC()
	data, _ := json.Marshal(event)
	a.out.Printf("AUDIT: %s", string(data))
}
