package auth

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/northpine-labs/linkvault-back/internal/config"
	"github.com/northpine-labs/linkvault-back/internal/db"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	gormDB, err := db.NewSQLiteClient(":memory:")
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:  "test-secret",
		BcryptCost: bcrypt.MinCost,
	}
	return NewService(cfg, gormDB, zap.NewNop().Sugar())
}

func TestHashAndVerifyPassword(t *testing.T) {
	s := newTestService(t)

	hash, err := s.HashPassword("pw123456")
	require.NoError(t, err)

	assert.NotEqual(t, "pw123456", hash)
	assert.True(t, s.VerifyPassword("pw123456", hash))
	assert.False(t, s.VerifyPassword("pw1234567", hash))
	assert.False(t, s.VerifyPassword("", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestService(t)

	user := db.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, s.db.Create(&user).Error)

	token, err := s.IssueToken(user.ID, user.Username)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := newTestService(t)

	_, err := s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	s := newTestService(t)

	user := db.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, s.db.Create(&user).Error)

	forged := signToken(t, user.ID, []byte("other-secret"), time.Now().Add(time.Hour))
	_, err := s.ValidateToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	s := newTestService(t)

	user := db.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, s.db.Create(&user).Error)

	expired := signToken(t, user.ID, s.secret, time.Now().Add(-time.Minute))
	_, err := s.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeletedUserInvalidatesToken(t *testing.T) {
	s := newTestService(t)

	user := db.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, s.db.Create(&user).Error)

	token, err := s.IssueToken(user.ID, user.Username)
	require.NoError(t, err)

	require.NoError(t, s.db.Delete(&user).Error)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func signToken(t *testing.T, userID uint64, secret []byte, expiresAt time.Time) string {
	t.Helper()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}
