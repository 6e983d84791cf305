package services

import (
	"bytes"
	"context"
	"database/sql"
	"log"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campusrfid/ledger/internal/audit"
	"github.com/campusrfid/ledger/internal/models"
	"github.com/campusrfid/ledger/internal/repositories"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tripColumns = []string{"id", "account_id", "rfid_type", "vehicle_type", "plate_number", "driver",
	"department", "travel_date", "from_location", "to_location", "rfid_location", "amount",
	"remaining_balance", "created_at"}

var (
	debitQuery  = regexp.QuoteMeta("SET balance = balance - $1, updated_at = NOW() WHERE id = $2 AND balance >= $1")
	creditQuery = regexp.QuoteMeta("SET balance = balance + $1, updated_at = NOW() WHERE id = $2")
	insertTrip  = regexp.QuoteMeta("INSERT INTO trips")
	accountByID = regexp.QuoteMeta("FROM accounts WHERE id = $1")
)

func newLedgerService(t *testing.T) (*LedgerService, sqlmock.Sqlmock, *bytes.Buffer) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var auditOut bytes.Buffer
	svc := NewLedgerService(db,
		repositories.NewAccountRepository(db),
		repositories.NewTripRepository(db),
		audit.NewLoggerTo(log.New(&auditOut, "", 0)),
	)
	return svc, mock, &auditOut
}

var busTrip = models.TripFields{
	RFIDType:    "Entry",
	VehicleType: "Bus",
	PlateNumber: "AB1-001",
	Driver:      "Ana",
}

func TestLedgerService_SubmitTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("debits and records remaining balance", func(t *testing.T) {
		svc, mock, auditOut := newLedgerService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(debitQuery).
			WithArgs(decimal.NewFromInt(150), int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("1850.00"))
		mock.ExpectQuery(insertTrip).
			WithArgs(int64(7), "Entry", "Bus", "AB1-001", "Ana", "", "", "", "", "",
				decimal.NewFromInt(150), decimal.NewFromInt(1850)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
		mock.ExpectCommit()

		trip, err := svc.SubmitTrip(ctx, 7, busTrip, decimal.NewFromInt(150))
		require.NoError(t, err)
		assert.Equal(t, int64(1), trip.ID)
		assert.True(t, trip.OwnedBy(7))
		assert.Equal(t, "1850", trip.RemainingBalance.String())
		assert.Contains(t, auditOut.String(), audit.EventTripSubmitted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("amount equal to balance leaves zero", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(debitQuery).
			WithArgs(decimal.NewFromInt(2000), int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("0.00"))
		mock.ExpectQuery(insertTrip).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), time.Now()))
		mock.ExpectCommit()

		trip, err := svc.SubmitTrip(ctx, 7, busTrip, decimal.NewFromInt(2000))
		require.NoError(t, err)
		assert.True(t, trip.RemainingBalance.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient balance rolls back without a trip", func(t *testing.T) {
		svc, mock, auditOut := newLedgerService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(debitQuery).
			WithArgs(decimal.NewFromInt(2500), int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}))
		mock.ExpectQuery(accountByID).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(accountColumns).
				AddRow(int64(7), "d@campus.edu", "h", "user", true, "2000.00", time.Now(), time.Now()))
		mock.ExpectRollback()

		_, err := svc.SubmitTrip(ctx, 7, busTrip, decimal.NewFromInt(2500))
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.NotContains(t, auditOut.String(), audit.EventTripSubmitted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second of two full-balance submissions loses the guard", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(debitQuery).
			WithArgs(decimal.NewFromInt(2000), int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("0.00"))
		mock.ExpectQuery(insertTrip).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))
		mock.ExpectCommit()

		mock.ExpectBegin()
		mock.ExpectQuery(debitQuery).
			WithArgs(decimal.NewFromInt(2000), int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}))
		mock.ExpectQuery(accountByID).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(accountColumns).
				AddRow(int64(7), "d@campus.edu", "h", "user", true, "0.00", time.Now(), time.Now()))
		mock.ExpectRollback()

		_, first := svc.SubmitTrip(ctx, 7, busTrip, decimal.NewFromInt(2000))
		_, second := svc.SubmitTrip(ctx, 7, busTrip, decimal.NewFromInt(2000))

		assert.NoError(t, first)
		assert.ErrorIs(t, second, ErrInsufficientFunds)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown account", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)

		mock.ExpectBegin()
		mock.ExpectQuery(debitQuery).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}))
		mock.ExpectQuery(accountByID).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := svc.SubmitTrip(ctx, 99, busTrip, decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("negative amount", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)

		_, err := svc.SubmitTrip(ctx, 7, busTrip, decimal.NewFromInt(-5))
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sub-cent amount is rejected before debiting", func(t *testing.T) {
		svc, mock, auditOut := newLedgerService(t)

		_, err := svc.SubmitTrip(ctx, 7, busTrip, decimal.RequireFromString("0.005"))
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Empty(t, auditOut.String())
	})
}

func TestLedgerService_ReloadBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("adds exactly the amount", func(t *testing.T) {
		svc, mock, auditOut := newLedgerService(t)

		mock.ExpectQuery(creditQuery).
			WithArgs(decimal.RequireFromString("500.25"), int64(7)).
			WillReturnRows(sqlmock.NewRows(accountColumns).
				AddRow(int64(7), "d@campus.edu", "h", "user", true, "2500.25", time.Now(), time.Now()))

		acc, err := svc.ReloadBalance(ctx, 7, decimal.RequireFromString("500.25"))
		require.NoError(t, err)
		assert.True(t, acc.Balance.Equal(decimal.RequireFromString("2500.25")))
		assert.Contains(t, auditOut.String(), audit.EventBalanceReloaded)
	})

	t.Run("unknown account", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)
		mock.ExpectQuery(creditQuery).WillReturnError(sql.ErrNoRows)

		_, err := svc.ReloadBalance(ctx, 99, decimal.NewFromInt(5))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("negative amount", func(t *testing.T) {
		svc, _, _ := newLedgerService(t)
		_, err := svc.ReloadBalance(ctx, 7, decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("balance overflow is an invalid amount", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)
		mock.ExpectQuery(creditQuery).
			WithArgs(MaxAmount, int64(7)).
			WillReturnError(&pq.Error{Code: "22003", Message: "numeric field overflow"})

		_, err := svc.ReloadBalance(ctx, 7, MaxAmount)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sub-cent amount never reaches the store", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)
		_, err := svc.ReloadBalance(ctx, 7, decimal.RequireFromString("0.005"))
		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerService_ApproveReject(t *testing.T) {
	ctx := context.Background()
	approve := regexp.QuoteMeta("SET approved = TRUE, updated_at = NOW() WHERE id = $1")

	t.Run("approve is idempotent", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)
		for i := 0; i < 2; i++ {
			mock.ExpectQuery(approve).
				WithArgs(int64(5)).
				WillReturnRows(sqlmock.NewRows(accountColumns).
					AddRow(int64(5), "n@campus.edu", "h", "user", true, "2000.00", time.Now(), time.Now()))
		}

		first, err := svc.Approve(ctx, 5)
		require.NoError(t, err)
		second, err := svc.Approve(ctx, 5)
		require.NoError(t, err)
		assert.True(t, first.Approved)
		assert.True(t, first.Balance.Equal(second.Balance))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("approve unknown account", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)
		mock.ExpectQuery(approve).WillReturnError(sql.ErrNoRows)

		_, err := svc.Approve(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("reject deletes the account", func(t *testing.T) {
		svc, mock, auditOut := newLedgerService(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accounts WHERE id = $1")).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, svc.Reject(ctx, 5))
		assert.Contains(t, auditOut.String(), audit.EventAccountRejected)
	})

	t.Run("reject unknown account", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accounts")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, svc.Reject(ctx, 404), ErrNotFound)
	})
}

func TestLedgerService_EditDeleteTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("edit keeps remaining balance", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE trips")).
			WithArgs("Exit", "Van", "ZZ9", "", "", "", "", "", "", decimal.NewFromInt(99), int64(1)).
			WillReturnRows(sqlmock.NewRows(tripColumns).
				AddRow(int64(1), int64(7), "Exit", "Van", "ZZ9", "", "", "", "", "", "", "99.00", "1850.00", time.Now()))

		trip, err := svc.EditTrip(ctx, 1, models.TripFields{RFIDType: "Exit", VehicleType: "Van", PlateNumber: "ZZ9"}, decimal.NewFromInt(99))
		require.NoError(t, err)
		assert.Equal(t, "99", trip.Amount.String())
		assert.Equal(t, "1850", trip.RemainingBalance.String())
	})

	t.Run("edit unknown trip", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE trips")).WillReturnRows(sqlmock.NewRows(tripColumns))

		_, err := svc.EditTrip(ctx, 404, models.TripFields{}, decimal.Zero)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("edit rejects negative amount", func(t *testing.T) {
		svc, _, _ := newLedgerService(t)
		_, err := svc.EditTrip(ctx, 1, models.TripFields{}, decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("delete does not refund", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM trips WHERE id = $1")).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, svc.DeleteTrip(ctx, 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete unknown trip", func(t *testing.T) {
		svc, mock, _ := newLedgerService(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM trips")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, svc.DeleteTrip(ctx, 404), ErrNotFound)
	})
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount(" 120.50 ")
	require.NoError(t, err)
	assert.Equal(t, "120.5", amount.String())

	zero, err := ParseAmount("0")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = ParseAmount("-1")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseAmount("ten")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	trailing, err := ParseAmount("1.500")
	require.NoError(t, err)
	assert.Equal(t, "1.5", trailing.String())

	ceiling, err := ParseAmount("999999999999.99")
	require.NoError(t, err)
	assert.True(t, ceiling.Equal(MaxAmount))

	for _, in := range []string{"0.005", "1e13", "1000000000000"} {
		_, err = ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}
