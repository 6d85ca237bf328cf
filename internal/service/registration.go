package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/mkravtsov/authgate/internal/logger"
	"github.com/mkravtsov/authgate/internal/model"
)

// Registration implements the register-or-reject-duplicate flow: check
// existence, create the account, issue a session token.
type Registration struct {
	accountStore model.AccountStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewRegistration(accountStore model.AccountStore, tokenManager model.TokenManager, logger *logger.Logger) *Registration {
	return &Registration{
		accountStore: accountStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

const (
	createRetries     = 2
	createBackoffBase = 100 * time.Millisecond
)

// Register returns the issued session token for a new username, or
// model.ErrAccountExists when the username is taken. The existence check
// and the insert are not atomic: two concurrent registrations for the
// same new username can both pass the check and both insert.
//
// A storage failure on the existence check aborts the flow; it is never
// read as "does not exist". The insert is awaited and retried with
// backoff, so its failure is always observable to the caller.
func (s *Registration) Register(ctx context.Context, account model.Account) (string, error) {
	s.logger.Debug("Registration service: starting registration",
		"username", account.Username)

	exists, err := s.accountStore.Exists(ctx, account.Username)
	if err != nil {
		s.logger.Error("Registration service: failed to check account existence",
			"username", account.Username,
			"error", err.Error())
		return "", fmt.Errorf("failed to check account existence: %w", err)
	}

	if exists {
		s.logger.Info("Registration service: account already exists",
			"username", account.Username)
		return "", model.ErrAccountExists
	}

	account.ID = uuid.New()
	account.CreatedAt = time.Now()

	backoff := retry.WithMaxRetries(createRetries, retry.NewFibonacci(createBackoffBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if _, err := s.accountStore.Create(ctx, account); err != nil {
			s.logger.Warn("Registration service: account insert failed, retrying",
				"username", account.Username,
				"error", err.Error())
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Registration service: failed to create account",
			"username", account.Username,
			"error", err.Error())
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.tokenManager.GenerateSessionToken(account.Username)
	if err != nil {
		s.logger.Error("Registration service: failed to issue session token",
			"username", account.Username,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("Registration service: registration completed",
		"username", account.Username)

	return token, nil
}
