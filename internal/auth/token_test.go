package auth

import (
	"testing"
	"time"

	apperrors "go-gin-event-registration/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.Issue(42)
	require.NoError(t, err)

	userID, err := m.Parse(token)

	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestJWTManager_Parse(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	t.Run("Expired", func(t *testing.T) {
		past := NewJWTManager("secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Issue(1)
		require.NoError(t, err)

		_, err = m.Parse(token)

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := NewJWTManager("other", time.Hour).Issue(1)
		require.NoError(t, err)

		_, err = m.Parse(token)

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("NonNumericSubject", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = m.Parse(token)

		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
