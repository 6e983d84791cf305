package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/campusrfid/ledger/internal/models"
	"github.com/shopspring/decimal"
)

const accountColumns = "id, email, password, role, approved, balance, created_at, updated_at"

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var acc models.Account
	var role string
	if err := row.Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &role, &acc.Approved,
		&acc.Balance, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
		return nil, err
	}
	acc.Role = models.Role(role)
	return &acc, nil
}

// Create inserts a new account. The email is stored lowercased.
func (r *AccountRepository) Create(ctx context.Context, acc *models.Account) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (email, password, role, approved, balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		strings.ToLower(acc.Email), acc.PasswordHash, string(acc.Role), acc.Approved, acc.Balance,
	).Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	acc.Email = strings.ToLower(acc.Email)
	return nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, strings.ToLower(email))
	acc, err := scanAccount(row)
	if err != nil {
		return nil, notFound(err)
	}
	return acc, nil
}

// FindByID looks an account up through q, which may be an open transaction.
func (r *AccountRepository) FindByID(ctx context.Context, q DBTX, id int64) (*models.Account, error) {
	if q == nil {
		q = r.db
	}
	acc, err := scanAccount(q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return acc, nil
}

func (r *AccountRepository) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE role = $1)`, string(models.RoleAdmin)).Scan(&exists)
	return exists, err
}

// Debit subtracts amount only while the balance covers it. The UPDATE takes
// the row lock and re-checks the guard, so concurrent debits cannot overdraw.
// ok is false when no row matched: either the account does not exist or the
// balance is too low.
func (r *AccountRepository) Debit(ctx context.Context, q DBTX, id int64, amount decimal.Decimal) (remaining decimal.Decimal, ok bool, err error) {
	err = q.QueryRowContext(ctx, `
		UPDATE accounts
		SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
		RETURNING balance`, amount, id).Scan(&remaining)
	if err == sql.ErrNoRows {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("debit account %d: %w", id, err)
	}
	return remaining, true, nil
}

// Credit adds amount to the balance unconditionally. A balance past the
// column range yields ErrOutOfRange.
func (r *AccountRepository) Credit(ctx context.Context, id int64, amount decimal.Decimal) (*models.Account, error) {
	acc, err := scanAccount(r.db.QueryRowContext(ctx, `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+accountColumns, amount, id))
	if err != nil {
		if isNumericOverflow(err) {
			return nil, ErrOutOfRange
		}
		return nil, notFound(err)
	}
	return acc, nil
}

func (r *AccountRepository) Approve(ctx context.Context, id int64) (*models.Account, error) {
	acc, err := scanAccount(r.db.QueryRowContext(ctx, `
		UPDATE accounts
		SET approved = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING `+accountColumns, id))
	if err != nil {
		return nil, notFound(err)
	}
	return acc, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
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

func (r *AccountRepository) ListPending(ctx context.Context) ([]models.Account, error) {
	return r.list(ctx, `SELECT `+accountColumns+` FROM accounts WHERE approved = FALSE ORDER BY id`)
}

func (r *AccountRepository) ListByRole(ctx context.Context, role models.Role) ([]models.Account, error) {
	return r.list(ctx, `SELECT `+accountColumns+` FROM accounts WHERE role = $1 ORDER BY id`, string(role))
}

func (r *AccountRepository) list(ctx context.Context, query string, args ...any) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	return accounts, rows.Err()
}
