// Package memory provides an in-process AccountStore used when no
// database DSN is configured and as a double in tests.
package memory

import (
	"context"
	"sync"

	"github.com/mkravtsov/authgate/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]model.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]model.Account),
	}
}

func (r *AccountRepository) Exists(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.accounts[username]
	return ok, nil
}

func (r *AccountRepository) GetByUsername(_ context.Context, username string) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[username]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return account, nil
}

// Create inserts unconditionally, like its durable counterpart: the
// registration flow owns the uniqueness check. A repeated username keeps
// the latest record, matching "insert one record" semantics of a store
// without a unique index.
func (r *AccountRepository) Create(_ context.Context, account model.Account) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts[account.Username] = account
	return account, nil
}

// Len reports the number of stored accounts.
func (r *AccountRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.accounts)
}
