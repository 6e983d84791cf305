package handlers

import (
	"context"
	"errors"

	"github.com/campusrfid/ledger/internal/models"
	"github.com/campusrfid/ledger/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAuth) Register(ctx context.Context, email, password string) (*models.Account, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAuth) IssueSession(acc *models.Account) (string, *models.Session, error) {
	args := m.Called(acc)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.Session), args.Error(2)
}

func (m *MockAuth) RevokeSession(ctx context.Context, session *models.Session) {
	m.Called(session)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) SubmitTrip(ctx context.Context, accountID int64, fields models.TripFields, amount decimal.Decimal) (*models.TripRecord, error) {
	args := m.Called(accountID, fields, amount.String())
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TripRecord), args.Error(1)
}

func (m *MockLedger) ReloadBalance(ctx context.Context, accountID int64, amount decimal.Decimal) (*models.Account, error) {
	args := m.Called(accountID, amount.String())
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockLedger) Approve(ctx context.Context, accountID int64) (*models.Account, error) {
	args := m.Called(accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockLedger) Reject(ctx context.Context, accountID int64) error {
	return m.Called(accountID).Error(0)
}

func (m *MockLedger) GetTrip(ctx context.Context, tripID int64) (*models.TripRecord, error) {
	args := m.Called(tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TripRecord), args.Error(1)
}

func (m *MockLedger) EditTrip(ctx context.Context, tripID int64, fields models.TripFields, amount decimal.Decimal) (*models.TripRecord, error) {
	args := m.Called(tripID, fields, amount.String())
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TripRecord), args.Error(1)
}

func (m *MockLedger) DeleteTrip(ctx context.Context, tripID int64) error {
	return m.Called(tripID).Error(0)
}

type MockReports struct {
	mock.Mock
}

func (m *MockReports) AdminDashboard(ctx context.Context, filter models.TripFilter) (*services.AdminDashboard, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AdminDashboard), args.Error(1)
}

func (m *MockReports) UserDashboard(ctx context.Context, accountID int64) (*services.UserDashboard, error) {
	args := m.Called(accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UserDashboard), args.Error(1)
}

type MockScans struct {
	mock.Mock
}

func (m *MockScans) RecordScan(ctx context.Context, tagID string) (*models.Scan, error) {
	args := m.Called(tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Scan), args.Error(1)
}

func (m *MockScans) ListScans(ctx context.Context, limit int) ([]models.Scan, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Scan), args.Error(1)
}

func (m *MockScans) SimulateScan(ctx context.Context) (*models.Scan, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Scan), args.Error(1)
}

type MockReceipts struct {
	mock.Mock
}

func (m *MockReceipts) Receipt(ctx context.Context, session *models.Session, tripID int64) (*services.Receipt, error) {
	args := m.Called(session.AccountID, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Receipt), args.Error(1)
}

// stubSessions accepts a fixed set of tokens.
type stubSessions map[string]*models.Session

func (s stubSessions) ValidateSession(_ context.Context, token string) (*models.Session, error) {
	if session, ok := s[token]; ok {
		return session, nil
	}
	return nil, errors.New("invalid session token")
}
