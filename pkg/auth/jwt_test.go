package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "jwt-test-secret"

func TestAccessTokenRoundtrip(t *testing.T) {
	userID := uuid.New()

	token, err := NewAccessToken(userID, "Alice Tan", "alice@example.com", "candidate", "approved", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "candidate", claims.Role)
	assert.Equal(t, "approved", claims.AccountStatus)
}

func TestParseRejects(t *testing.T) {
	userID := uuid.New()

	t.Run("expired token", func(t *testing.T) {
		token, err := NewAccessToken(userID, "Alice Tan", "alice@example.com", "candidate", "approved", testSecret, -time.Minute)
		require.NoError(t, err)

		_, err = Parse(token, testSecret)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewAccessToken(userID, "Alice Tan", "alice@example.com", "candidate", "approved", testSecret, time.Hour)
		require.NoError(t, err)

		_, err = Parse(token, "some-other-secret")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("unsigned token", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = Parse(token, testSecret)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		// Signed with the right secret but the wrong algorithm; only
		// HS256 is accepted.
		other := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		token, err := other.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = Parse(token, testSecret)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := Parse("not.a.jwt", testSecret)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestParseSubject(t *testing.T) {
	userID := uuid.New()

	token, err := NewRefreshToken(userID, testSecret, time.Hour)
	require.NoError(t, err)

	parsed, err := ParseSubject(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)

	_, err = ParseSubject(token, "some-other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
