package services

import (
	"context"

	"github.com/campusrfid/ledger/internal/models"
	"github.com/campusrfid/ledger/internal/repositories"
	"github.com/shopspring/decimal"
)

// AdminDashboard is the admin view: the filtered trip report plus the
// accounts awaiting a decision and every user account.
type AdminDashboard struct {
	Trips   []models.TripRecord `json:"trips"`
	Total   decimal.Decimal     `json:"total" swaggertype:"string"`
	Pending []models.Account    `json:"pending_accounts"`
	Users   []models.Account    `json:"users"`
}

// UserDashboard is scoped to the caller's own trips and live balance.
type UserDashboard struct {
	Account *models.Account     `json:"account"`
	Trips   []models.TripRecord `json:"trips"`
	Total   decimal.Decimal     `json:"total" swaggertype:"string"`
}

type ReportService struct {
	accounts *repositories.AccountRepository
	trips    *repositories.TripRepository
}

func NewReportService(accounts *repositories.AccountRepository, trips *repositories.TripRepository) *ReportService {
	return &ReportService{accounts: accounts, trips: trips}
}

func (s *ReportService) ListTrips(ctx context.Context, filter models.TripFilter) ([]models.TripRecord, error) {
	return s.trips.List(ctx, filter)
}

func (s *ReportService) ListTripsForAccount(ctx context.Context, accountID int64) ([]models.TripRecord, error) {
	return s.trips.ListByAccount(ctx, accountID)
}

func (s *ReportService) ListPendingAccounts(ctx context.Context) ([]models.Account, error) {
	return s.accounts.ListPending(ctx)
}

func (s *ReportService) ListUserAccounts(ctx context.Context) ([]models.Account, error) {
	return s.accounts.ListByRole(ctx, models.RoleUser)
}

// Total sums the amount of every record.
func Total(records []models.TripRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

func (s *ReportService) AdminDashboard(ctx context.Context, filter models.TripFilter) (*AdminDashboard, error) {
	trips, err := s.ListTrips(ctx, filter)
	if err != nil {
		return nil, err
	}
	pending, err := s.ListPendingAccounts(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.ListUserAccounts(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		Trips:   trips,
		Total:   Total(trips),
		Pending: pending,
		Users:   users,
	}, nil
}

func (s *ReportService) UserDashboard(ctx context.Context, accountID int64) (*UserDashboard, error) {
	acc, err := s.accounts.FindByID(ctx, nil, accountID)
	if err != nil {
		return nil, err
	}
	trips, err := s.ListTripsForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &UserDashboard{
		Account: acc,
		Trips:   trips,
		Total:   Total(trips),
	}, nil
}
