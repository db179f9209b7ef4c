package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinelog/internal/auth"
	"cinelog/internal/database/models"
	"cinelog/internal/testutil"
)

func TestService_Register(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := auth.NewService(db, testutil.CreateTestJWTService())
	ctx := context.Background()

	t.Run("creates user and returns token", func(t *testing.T) {
		result, err := svc.Register(ctx, auth.RegisterInput{
			Email:    "new@example.com",
			Name:     "New User",
			Password: "Str0ng!pass",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "new@example.com", result.User.Email)
		assert.Equal(t, "USER", result.User.Role)
		assert.NotEmpty(t, result.User.PasswordHash)
		assert.NotEqual(t, "Str0ng!pass", result.User.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, auth.RegisterInput{
			Email:    "new@example.com",
			Name:     "Other User",
			Password: "Str0ng!pass",
		})
		assert.ErrorIs(t, err, auth.ErrUserExists)
	})
}

func TestService_Login(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := auth.NewService(db, testutil.CreateTestJWTService())
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterInput{
		Email:    "login@example.com",
		Name:     "Login User",
		Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, auth.LoginInput{
			Email:    "login@example.com",
			Password: "Str0ng!pass",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginInput{
			Email:    "login@example.com",
			Password: "Wrong!pass1",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginInput{
			Email:    "nobody@example.com",
			Password: "Str0ng!pass",
		})
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("passwordless google account", func(t *testing.T) {
		require.NoError(t, db.Create(&models.User{
			Name:  "Google User",
			Email: "google@example.com",
		}).Error)

		_, err := svc.Login(ctx, auth.LoginInput{
			Email:    "google@example.com",
			Password: "Str0ng!pass",
		})
		assert.ErrorIs(t, err, auth.ErrNoPassword)
	})
}

func TestService_FindOrCreateGoogleUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := auth.NewService(db, testutil.CreateTestJWTService())
	ctx := context.Background()

	t.Run("creates passwordless account on first sign-in", func(t *testing.T) {
		result, err := svc.FindOrCreateGoogleUser(ctx, "first@example.com", "First Google")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Empty(t, result.User.PasswordHash)

		var count int64
		db.Model(&models.User{}).Where("email = ?", "first@example.com").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("reuses existing account", func(t *testing.T) {
		first, err := svc.FindOrCreateGoogleUser(ctx, "repeat@example.com", "Repeat")
		require.NoError(t, err)

		second, err := svc.FindOrCreateGoogleUser(ctx, "repeat@example.com", "Repeat")
		require.NoError(t, err)
		assert.Equal(t, first.User.ID, second.User.ID)

		var count int64
		db.Model(&models.User{}).Where("email = ?", "repeat@example.com").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("links to password account with same email", func(t *testing.T) {
		registered, err := svc.Register(ctx, auth.RegisterInput{
			Email:    "both@example.com",
			Name:     "Both Worlds",
			Password: "Str0ng!pass",
		})
		require.NoError(t, err)

		viaGoogle, err := svc.FindOrCreateGoogleUser(ctx, "both@example.com", "Both Worlds")
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, viaGoogle.User.ID)
	})
}
