package service

import (
	"context"
	"testing"
	"time"

	"toutouchic-api/core/clock"
	"toutouchic-api/core/constants"
	"toutouchic-api/core/errors"
	"toutouchic-api/modules/auth/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-signing-secret"

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	t.Run("issues a verifiable admin token", func(t *testing.T) {
		svc := NewAuthService(testSecret, hashOf(t, "croquettes"), clock.NewSystem())

		resp, appErr := svc.Login(context.Background(), &dto.LoginRequest{Password: "croquettes"})
		require.Nil(t, appErr)
		require.NotEmpty(t, resp.Token)

		expiresAt, err := time.Parse(time.RFC3339, resp.ExpiresAt)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(constants.AdminTokenTTL), expiresAt, time.Minute)

		role, verifyErr := svc.VerifyToken(resp.Token)
		require.Nil(t, verifyErr)
		assert.Equal(t, constants.AdminRole, role)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		svc := NewAuthService(testSecret, hashOf(t, "croquettes"), clock.NewSystem())

		_, appErr := svc.Login(context.Background(), &dto.LoginRequest{Password: "os"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		svc := NewAuthService(testSecret, hashOf(t, "croquettes"), clock.NewSystem())

		_, appErr := svc.Login(context.Background(), &dto.LoginRequest{Password: ""})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("fails when no hash is configured", func(t *testing.T) {
		svc := NewAuthService(testSecret, "", clock.NewSystem())

		_, appErr := svc.Login(context.Background(), &dto.LoginRequest{Password: "croquettes"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInternalServer, appErr.Code)
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	t.Run("reports an expired token", func(t *testing.T) {
		// Issue from a clock far enough in the past that the 8h TTL is over.
		issuedAt := clock.NewFixed(time.Now().Add(-constants.AdminTokenTTL - time.Hour))
		issuer := NewAuthService(testSecret, hashOf(t, "croquettes"), issuedAt)

		resp, appErr := issuer.Login(context.Background(), &dto.LoginRequest{Password: "croquettes"})
		require.Nil(t, appErr)

		_, verifyErr := issuer.VerifyToken(resp.Token)
		require.NotNil(t, verifyErr)
		assert.Equal(t, errors.ErrTokenExpired, verifyErr.Code)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		issuer := NewAuthService("other-secret", hashOf(t, "croquettes"), clock.NewSystem())
		verifier := NewAuthService(testSecret, hashOf(t, "croquettes"), clock.NewSystem())

		resp, appErr := issuer.Login(context.Background(), &dto.LoginRequest{Password: "croquettes"})
		require.Nil(t, appErr)

		_, verifyErr := verifier.VerifyToken(resp.Token)
		require.NotNil(t, verifyErr)
		assert.Equal(t, errors.ErrUnauthorized, verifyErr.Code)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		svc := NewAuthService(testSecret, hashOf(t, "croquettes"), clock.NewSystem())

		_, verifyErr := svc.VerifyToken("not.a.token")
		require.NotNil(t, verifyErr)
		assert.Equal(t, errors.ErrUnauthorized, verifyErr.Code)
	})
}
