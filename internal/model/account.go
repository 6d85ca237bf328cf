package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	Exists(ctx context.Context, username string) (bool, error)
	GetByUsername(ctx context.Context, username string) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
}

// Account represents a registered user account. Username is the identity
// key for both throttling and lookup. Uniqueness is enforced by the
// registration flow, not by the store.
type Account struct {
	ID        uuid.UUID
	Username  string
	Password  string
	Email     string
	Age       int
	CreatedAt time.Time
}
