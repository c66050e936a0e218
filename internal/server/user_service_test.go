package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/config"
	"github.com/jonathan/folio-builder/internal/db"
	"github.com/jonathan/folio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService() (*UserService, *fakeStore) {
	store := newFakeStore()
	return NewUserService(store, &config.PasswordConfig{BcryptCost: 4}), store
}

func TestConvertDBUserToTypesUser(t *testing.T) {
	now := time.Now()
	dbUser := &db.User{
		ID:           uuid.New(),
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: "hashed-password",
		PasswordSet:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user := convertDBUserToTypesUser(dbUser)
	require.NotNil(t, user)
	assert.Equal(t, types.User{ID: dbUser.ID, Name: "John Doe", Email: "john@example.com", CreatedAt: now, UpdatedAt: now}, *user)
	assert.Nil(t, convertDBUserToTypesUser(nil))
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, store := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Ann", Email: "ann@example.com", Password: "long-enough"})
	require.NoError(t, err)

	stored, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.PasswordSet)
	assert.NotEqual(t, "long-enough", stored.PasswordHash)

	_, err = svc.Register(ctx, &types.CreateUserRequest{Name: "Ann", Email: "ann@example.com", Password: "long-enough"})
	var exists *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &exists)

	got, err := svc.Login(ctx, &types.LoginRequest{Email: "ann@example.com", Password: "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "ann@example.com", Password: "wrong-one"})
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}

func TestUserService_RegisterRejectsOverlongPassword(t *testing.T) {
	svc, store := newTestUserService()
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}

	_, err := svc.Register(context.Background(), &types.CreateUserRequest{Name: "B", Email: "b@example.com", Password: string(long)})
	var verr *ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
	assert.Empty(t, store.users)
}

func TestUserService_LoginWithoutPassword(t *testing.T) {
	svc, store := newTestUserService()
	_, err := store.CreateUser(context.Background(), "C", "c@example.com")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &types.LoginRequest{Email: "c@example.com", Password: ""})
	var invalid *ErrInvalidCredentials
	assert.True(t, errors.As(err, &invalid))
}

func TestUserService_UpdatePassword(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()
	user, err := svc.Register(ctx, &types.CreateUserRequest{Name: "D", Email: "d@example.com", Password: "first-password"})
	require.NoError(t, err)

	var mismatch *ErrPasswordMismatch
	assert.ErrorAs(t, svc.UpdatePassword(ctx, user.ID, "nope", "second-password"), &mismatch)

	var verr *ErrValidation
	assert.ErrorAs(t, svc.UpdatePassword(ctx, user.ID, "first-password", "short"), &verr)

	var missing *ErrUserNotFound
	assert.ErrorAs(t, svc.UpdatePassword(ctx, uuid.New(), "first-password", "second-password"), &missing)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "first-password", "second-password"))
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "d@example.com", Password: "second-password"})
	assert.NoError(t, err)
}
