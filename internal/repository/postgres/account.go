package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkravtsov/authgate/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// Exists reports whether an account with the username is present. A miss
// is a normal false result; only an unreachable store is an error.
func (r *AccountRepository) Exists(ctx context.Context, username string) (bool, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`

	err := r.db.QueryRowContext(ctx, query, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", errors.Join(model.ErrStorageUnavailable, err))
	}

	return exists, nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var account model.Account
	query := `SELECT id, username, password, email, age, created_at
			  FROM accounts WHERE username = $1`

	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&account.ID, &account.Username, &account.Password, &account.Email, &account.Age,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by username: %w", errors.Join(model.ErrStorageUnavailable, err))
	}

	return account, nil
}

// Create inserts unconditionally; uniqueness is the caller's
// responsibility.
func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO accounts (id, username, password, email, age, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, username, password, email, age, created_at`

	var savedAccount model.Account
	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Username, account.Password, account.Email, account.Age,
		account.CreatedAt,
	).Scan(
		&savedAccount.ID, &savedAccount.Username, &savedAccount.Password, &savedAccount.Email,
		&savedAccount.Age, &savedAccount.CreatedAt,
	)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", errors.Join(model.ErrStorageUnavailable, err))
	}

	return savedAccount, nil
}
