package service

import (
	"context"

	"github.com/mkravtsov/authgate/internal/logger"
	"github.com/mkravtsov/authgate/internal/model"
)

// Session verifies presented session tokens. Every failure mode collapses
// to model.ErrUnauthorized; the caller learns nothing about whether the
// token was missing, malformed or mis-signed.
type Session struct {
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewSession(tokenManager model.TokenManager, logger *logger.Logger) *Session {
	return &Session{
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Verify returns the username bound to a valid token.
func (s *Session) Verify(_ context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", model.ErrUnauthorized
	}

	username, err := s.tokenManager.ParseSessionToken(tokenString)
	if err != nil {
		s.logger.Debug("Session service: token rejected",
			"error", err.Error())
		return "", model.ErrUnauthorized
	}

	return username, nil
}
