package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Account is a login identity with a role and a prepaid balance.
type Account struct {
	ID           int64           `json:"id" example:"1"`
	Email        string          `json:"email" example:"driver@campus.edu"`
	PasswordHash string          `json:"-"`
	Role         Role            `json:"role" example:"user"`
	Approved     bool            `json:"approved"`
	Balance      decimal.Decimal `json:"balance" swaggertype:"string" example:"2000"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Session is the authenticated identity bound to a request.
type Session struct {
	AccountID int64
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
