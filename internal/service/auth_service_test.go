package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taxmitra/internal/config"
	"taxmitra/internal/domain"
	"taxmitra/internal/service"
	"taxmitra/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		Issuer:             "taxmitra-test",
	}
}

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
}

func TestAuthLogin(t *testing.T) {
	user := testUser(t, "correct-password")
	repo := new(mocks.MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(user, nil)

	svc := service.NewAuthService(repo, testJWTConfig())

	tokens, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	user := testUser(t, "correct-password")
	repo := new(mocks.MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(user, nil)

	svc := service.NewAuthService(repo, testJWTConfig())

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthLogin_UnknownEmail(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

	svc := service.NewAuthService(repo, testJWTConfig())

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthLogin_InactiveUser(t *testing.T) {
	user := testUser(t, "correct-password")
	user.IsActive = false
	repo := new(mocks.MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(user, nil)

	svc := service.NewAuthService(repo, testJWTConfig())

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "correct-password",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthRefreshToken(t *testing.T) {
	user := testUser(t, "correct-password")
	repo := new(mocks.MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(user, nil)
	repo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	svc := service.NewAuthService(repo, testJWTConfig())

	tokens, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthRefreshToken_AccessTokenRejected(t *testing.T) {
	user := testUser(t, "correct-password")
	repo := new(mocks.MockUserRepo)
	repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(user, nil)

	svc := service.NewAuthService(repo, testJWTConfig())

	tokens, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthValidateToken_Garbage(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockUserRepo), testJWTConfig())

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
