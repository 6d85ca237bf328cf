package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mkravtsov/authgate/internal/mocks"
	"github.com/mkravtsov/authgate/internal/model"
	"github.com/mkravtsov/authgate/internal/testutil"
)

func TestRegistration_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	account := model.Account{Username: "alice", Password: "longpassword", Email: "a@b.com", Age: 30}

	store := &mocks.AccountStore{}
	manager := &mocks.TokenManager{}

	store.On("Exists", ctx, "alice").Return(false, nil).Once()
	store.On("Create", mock.Anything, mock.MatchedBy(func(a model.Account) bool {
		return a.Username == "alice" && !a.CreatedAt.IsZero()
	})).Return(model.Account{Username: "alice"}, nil).Once()
	manager.On("GenerateSessionToken", "alice").Return("token", nil).Once()

	svc := NewRegistration(store, manager, testutil.MakeNoopLogger())

	tokenString, err := svc.Register(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, "token", tokenString)
	store.AssertExpectations(t)
	manager.AssertExpectations(t)
}

func TestRegistration_Register_AlreadyExists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store := &mocks.AccountStore{}
	manager := &mocks.TokenManager{}

	store.On("Exists", ctx, "alice").Return(true, nil).Once()

	svc := NewRegistration(store, manager, testutil.MakeNoopLogger())

	_, err := svc.Register(ctx, model.Account{Username: "alice"})
	assert.ErrorIs(t, err, model.ErrAccountExists)

	// No insert, no token on the duplicate branch.
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	manager.AssertNotCalled(t, "GenerateSessionToken", mock.Anything)
}

func TestRegistration_Register_ExistenceCheckFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store := &mocks.AccountStore{}
	manager := &mocks.TokenManager{}

	store.On("Exists", ctx, "alice").Return(false, model.ErrStorageUnavailable).Once()

	svc := NewRegistration(store, manager, testutil.MakeNoopLogger())

	_, err := svc.Register(ctx, model.Account{Username: "alice"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrStorageUnavailable)

	// Storage failure must not be read as "does not exist".
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegistration_Register_CreateRetried(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store := &mocks.AccountStore{}
	manager := &mocks.TokenManager{}

	store.On("Exists", ctx, "alice").Return(false, nil).Once()
	store.On("Create", mock.Anything, mock.Anything).Return(model.Account{}, model.ErrStorageUnavailable).Once()
	store.On("Create", mock.Anything, mock.Anything).Return(model.Account{Username: "alice"}, nil).Once()
	manager.On("GenerateSessionToken", "alice").Return("token", nil).Once()

	svc := NewRegistration(store, manager, testutil.MakeNoopLogger())

	tokenString, err := svc.Register(ctx, model.Account{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "token", tokenString)
	store.AssertExpectations(t)
}

func TestRegistration_Register_CreateExhaustsRetries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store := &mocks.AccountStore{}
	manager := &mocks.TokenManager{}

	store.On("Exists", ctx, "alice").Return(false, nil).Once()
	store.On("Create", mock.Anything, mock.Anything).Return(model.Account{}, model.ErrStorageUnavailable).Times(3)

	svc := NewRegistration(store, manager, testutil.MakeNoopLogger())

	_, err := svc.Register(ctx, model.Account{Username: "alice"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrStorageUnavailable)
	manager.AssertNotCalled(t, "GenerateSessionToken", mock.Anything)
}

func TestRegistration_Register_TokenIssueFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	store := &mocks.AccountStore{}
	manager := &mocks.TokenManager{}

	store.On("Exists", ctx, "alice").Return(false, nil).Once()
	store.On("Create", mock.Anything, mock.Anything).Return(model.Account{Username: "alice"}, nil).Once()
	manager.On("GenerateSessionToken", "alice").Return("", assert.AnError).Once()

	svc := NewRegistration(store, manager, testutil.MakeNoopLogger())

	_, err := svc.Register(ctx, model.Account{Username: "alice"})
	require.Error(t, err)
}
