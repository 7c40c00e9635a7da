package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/models"
	"github.com/banbasresort/backoffice-api/internal/repository"
)

const testSecret = "test-secret"

func setupAuthService(t *testing.T) (*gorm.DB, AuthService) {
	t.Helper()

	db := openTestDB(t, "auth")
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("1 = 1").Update("password_hash", string(hash)).Error)

	svc := NewAuthService(repository.NewUserRepository(db), testSecret, validator.New(validator.WithRequiredStructEnabled()), testLogger())
	if concrete, ok := svc.(*authService); ok {
		concrete.now = func() time.Time { return time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC) }
	}
	return db, svc
}

func TestLoginTokenLifetimePerRole(t *testing.T) {
	_, svc := setupAuthService(t)
	issued := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		username string
		ttl      time.Duration
		role     string
	}{
		{"alice", 15 * time.Minute, models.RoleAdmin},
		{"arun", time.Hour, models.RoleAgent},
		{"vera", 4 * time.Hour, models.RoleViewer},
	}

	for _, tc := range cases {
		response, err := svc.Login(context.Background(), dto.LoginRequest{Username: tc.username, Password: "correct horse"})
		require.NoError(t, err, tc.username)
		require.Equal(t, issued.Add(tc.ttl), response.ExpiresAt, tc.username)
		require.Equal(t, tc.role, response.User.Role, tc.username)

		token, err := jwt.Parse(response.Token, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		}, jwt.WithTimeFunc(func() time.Time { return issued }))
		require.NoError(t, err)
		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)
		require.Equal(t, tc.role, claims["role"])
		require.EqualValues(t, issued.Add(tc.ttl).Unix(), claims["exp"])
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db, svc := setupAuthService(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "correct horse"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "alice").Update("active", false).Error)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "alice", Password: "correct horse"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginValidatesPayload(t *testing.T) {
	_, svc := setupAuthService(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "alice"})
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}
