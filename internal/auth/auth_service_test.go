package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shivshady23/employee-payroll-system/internal/auth"
	autherrors "github.com/Shivshady23/employee-payroll-system/internal/auth/errors"
)

type fakeUserRepo struct {
	byEmail map[string]*auth.User
	byID    map[uuid.UUID]*auth.User
}

func newFakeUserRepo(users ...*auth.User) *fakeUserRepo {
	f := &fakeUserRepo{
		byEmail: make(map[string]*auth.User),
		byID:    make(map[uuid.UUID]*auth.User),
	}
	for _, u := range users {
		f.byEmail[u.Email] = u
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) WithTx(_ *sql.Tx) auth.Repository { return f }

func (f *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) DeleteByEmployeeID(_ context.Context, _ string) error { return nil }

func testUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	employeeID := uuid.New()
	return &auth.User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		Name:       "Asha Verma",
		Email:      "asha.verma@example.com",
		Password:   string(hashed),
		Role:       "user",
		IsActive:   true,
	}
}

func TestServiceLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	user := testUser(t, "password123")
	service := auth.NewService(newFakeUserRepo(user))

	t.Run("issues both tokens on valid credentials", func(t *testing.T) {
		access, refresh, resp, err := service.Login(ctx, user.Email, "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, user.Email, resp.Email)
		assert.Equal(t, user.EmployeeID.String(), resp.EmployeeID)
	})

	t.Run("normalizes the email before lookup", func(t *testing.T) {
		_, _, resp, err := service.Login(ctx, "  Asha.Verma@Example.com ", "password123")
		require.NoError(t, err)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		_, _, _, err := service.Login(ctx, user.Email, "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		_, _, _, err := service.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestServiceRefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	user := testUser(t, "password123")
	service := auth.NewService(newFakeUserRepo(user))

	t.Run("rotates both tokens", func(t *testing.T) {
		_, refresh, _, err := service.Login(ctx, user.Email, "password123")
		require.NoError(t, err)

		newAccess, newRefresh, resp, err := service.RefreshToken(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		_, _, _, err := service.RefreshToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestServiceGetMe(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	user := testUser(t, "password123")
	service := auth.NewService(newFakeUserRepo(user))

	t.Run("returns the profile", func(t *testing.T) {
		resp, err := service.GetMe(ctx, user.ID.String())
		require.NoError(t, err)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		_, err := service.GetMe(ctx, "42")
		assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := service.GetMe(ctx, uuid.NewString())
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
