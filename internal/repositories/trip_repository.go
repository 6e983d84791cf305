package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/campusrfid/ledger/internal/models"
	"github.com/shopspring/decimal"
)

const tripColumns = `id, account_id, rfid_type, vehicle_type, plate_number, driver, department,
	travel_date, from_location, to_location, rfid_location, amount, remaining_balance, created_at`

type TripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

func scanTrip(row rowScanner) (*models.TripRecord, error) {
	var t models.TripRecord
	err := row.Scan(&t.ID, &t.AccountID, &t.RFIDType, &t.VehicleType, &t.PlateNumber, &t.Driver,
		&t.Department, &t.TravelDate, &t.FromLocation, &t.ToLocation, &t.RFIDLocation,
		&t.Amount, &t.RemainingBalance, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Insert stores a new trip through q and fills in its id and created_at.
func (r *TripRepository) Insert(ctx context.Context, q DBTX, t *models.TripRecord) error {
	if q == nil {
		q = r.db
	}
	err := q.QueryRowContext(ctx, `
		INSERT INTO trips (account_id, rfid_type, vehicle_type, plate_number, driver, department,
			travel_date, from_location, to_location, rfid_location, amount, remaining_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`,
		t.AccountID, t.RFIDType, t.VehicleType, t.PlateNumber, t.Driver, t.Department,
		t.TravelDate, t.FromLocation, t.ToLocation, t.RFIDLocation, t.Amount, t.RemainingBalance,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

func (r *TripRepository) FindByID(ctx context.Context, id int64) (*models.TripRecord, error) {
	t, err := scanTrip(r.db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// Update overwrites the descriptive fields and the amount. remaining_balance
// is left as recorded at insertion time.
func (r *TripRepository) Update(ctx context.Context, id int64, f models.TripFields, amount decimal.Decimal) (*models.TripRecord, error) {
	t, err := scanTrip(r.db.QueryRowContext(ctx, `
		UPDATE trips
		SET rfid_type = $1, vehicle_type = $2, plate_number = $3, driver = $4, department = $5,
			travel_date = $6, from_location = $7, to_location = $8, rfid_location = $9, amount = $10
		WHERE id = $11
		RETURNING `+tripColumns,
		f.RFIDType, f.VehicleType, f.PlateNumber, f.Driver, f.Department,
		f.TravelDate, f.FromLocation, f.ToLocation, f.RFIDLocation, amount, id))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (r *TripRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trip %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the trips matching every set filter, in insertion order.
func (r *TripRepository) List(ctx context.Context, filter models.TripFilter) ([]models.TripRecord, error) {
	var conditions []string
	var args []any
	argIndex := 1

	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, fmt.Sprintf("plate_number ILIKE $%d", argIndex))
		args = append(args, containsPattern(search))
		argIndex++
	}

	if filter.RFIDType != "" && filter.RFIDType != models.FilterAll {
		conditions = append(conditions, fmt.Sprintf("rfid_type = $%d", argIndex))
		args = append(args, filter.RFIDType)
		argIndex++
	}

	if filter.VehicleType != "" && filter.VehicleType != models.FilterAll {
		conditions = append(conditions, fmt.Sprintf("vehicle_type = $%d", argIndex))
		args = append(args, filter.VehicleType)
		argIndex++
	}

	query := `SELECT ` + tripColumns + ` FROM trips`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	return r.list(ctx, query, args...)
}

func (r *TripRepository) ListByAccount(ctx context.Context, accountID int64) ([]models.TripRecord, error) {
	return r.list(ctx, `SELECT `+tripColumns+` FROM trips WHERE account_id = $1 ORDER BY id`, accountID)
}

func (r *TripRepository) list(ctx context.Context, query string, args ...any) ([]models.TripRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []models.TripRecord{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}
