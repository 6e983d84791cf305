package services

import (
	"errors"
	"strings"

	"github.com/campusrfid/ledger/internal/repositories"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPendingApproval    = errors.New("account pending approval")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInsufficientFunds  = errors.New("insufficient balance")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNotFound           = repositories.ErrNotFound
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidTag         = errors.New("tag id is required")
	ErrEmptyRoster        = errors.New("no students in roster")
)

// MaxAmount is the largest value a NUMERIC(14,2) money column holds.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// ParseAmount parses a non-negative decimal amount from user input.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if err := checkAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// checkAmount accepts amounts the money columns store exactly: non-negative,
// at most two decimal places and no larger than MaxAmount.
func checkAmount(amount decimal.Decimal) error {
	if amount.IsNegative() || !amount.Equal(amount.Round(2)) || amount.GreaterThan(MaxAmount) {
		return ErrInvalidAmount
	}
	return nil
}
