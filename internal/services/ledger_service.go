package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/campusrfid/ledger/internal/audit"
	"github.com/campusrfid/ledger/internal/models"
	"github.com/campusrfid/ledger/internal/repositories"
	"github.com/shopspring/decimal"
)

// LedgerService owns every balance and trip mutation.
type LedgerService struct {
	db       *sql.DB
	accounts *repositories.AccountRepository
	trips    *repositories.TripRepository
	audit    *audit.Logger
}

func NewLedgerService(db *sql.DB, accounts *repositories.AccountRepository, trips *repositories.TripRepository, auditLogger *audit.Logger) *LedgerService {
	if auditLogger == nil {
		auditLogger = audit.NewLogger()
	}
	return &LedgerService{
		db:       db,
		accounts: accounts,
		trips:    trips,
		audit:    auditLogger,
	}
}

// SubmitTrip charges amount to the account and records the trip in the same
// transaction. The stored remaining_balance is the balance right after the charge.
func (s *LedgerService) SubmitTrip(ctx context.Context, accountID int64, fields models.TripFields, amount decimal.Decimal) (*models.TripRecord, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin trip transaction: %w", err)
	}
	defer tx.Rollback()

	remaining, ok, err := s.accounts.Debit(ctx, tx, accountID, amount)
	if err != nil {
		s.audit.LogError("submit_trip", accountID, err)
		return nil, err
	}
	if !ok {
		if _, err := s.accounts.FindByID(ctx, tx, accountID); err != nil {
			return nil, err
		}
		log.Printf("[LEDGER] Insufficient balance for account %d (amount %s)", accountID, amount)
		return nil, ErrInsufficientFunds
	}

	owner := accountID
	trip := &models.TripRecord{
		AccountID:        &owner,
		TripFields:       fields,
		Amount:           amount,
		RemainingBalance: remaining,
	}
	if err := s.trips.Insert(ctx, tx, trip); err != nil {
		s.audit.LogError("submit_trip", accountID, err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit trip: %w", err)
	}

	s.audit.LogTrip(trip.ID, accountID, amount, remaining)
	return trip, nil
}

// ReloadBalance credits amount to the account unconditionally.
func (s *LedgerService) ReloadBalance(ctx context.Context, accountID int64, amount decimal.Decimal) (*models.Account, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}

	acc, err := s.accounts.Credit(ctx, accountID, amount)
	if errors.Is(err, repositories.ErrOutOfRange) {
		log.Printf("[LEDGER] Reload of %s would overflow account %d", amount, accountID)
		return nil, ErrInvalidAmount
	}
	if err != nil {
		return nil, err
	}

	s.audit.LogReload(accountID, amount, acc.Balance)
	return acc, nil
}

// Approve marks the account approved. Approving twice is a no-op.
func (s *LedgerService) Approve(ctx context.Context, accountID int64) (*models.Account, error) {
	acc, err := s.accounts.Approve(ctx, accountID)
	if err != nil {
		return nil, err
	}
	s.audit.LogAccount(audit.EventAccountApproved, accountID)
	return acc, nil
}

// Reject deletes the account. Its trips stay behind with a dangling owner.
func (s *LedgerService) Reject(ctx context.Context, accountID int64) error {
	if err := s.accounts.Delete(ctx, accountID); err != nil {
		return err
	}
	s.audit.LogAccount(audit.EventAccountRejected, accountID)
	return nil
}

func (s *LedgerService) GetTrip(ctx context.Context, tripID int64) (*models.TripRecord, error) {
	return s.trips.FindByID(ctx, tripID)
}

// EditTrip overwrites the descriptive fields and the amount. Balances are not
// touched.
func (s *LedgerService) EditTrip(ctx context.Context, tripID int64, fields models.TripFields, amount decimal.Decimal) (*models.TripRecord, error) {
	if err := checkAmount(amount); err != nil {
		return nil, err
	}

	trip, err := s.trips.Update(ctx, tripID, fields, amount)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.audit.LogError("edit_trip", 0, err)
		}
		return nil, err
	}

	s.audit.LogTripChange(audit.EventTripEdited, tripID, &amount)
	return trip, nil
}

// DeleteTrip removes the trip. The charged amount is not refunded.
func (s *LedgerService) DeleteTrip(ctx context.Context, tripID int64) error {
	if err := s.trips.Delete(ctx, tripID); err != nil {
		return err
	}
	s.audit.LogTripChange(audit.EventTripDeleted, tripID, nil)
	return nil
}
