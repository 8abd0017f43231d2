package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "hunter22"))
}

func TestGenerateTokens(t *testing.T) {
	t.Run("pair carries matching claims", func(t *testing.T) {
		access, refresh, err := GenerateTokens(1, "asha@campus.edu", "student", testSecret)
		require.NoError(t, err)
		assert.NotEqual(t, access, refresh)

		accessClaims, err := ValidateToken(access, testSecret)
		require.NoError(t, err)
		assert.Equal(t, 1, accessClaims.UserID)
		assert.Equal(t, "asha@campus.edu", accessClaims.Email)
		assert.Equal(t, "student", accessClaims.Role)
		assert.Equal(t, "access", accessClaims.TokenType)

		refreshClaims, err := ValidateToken(refresh, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "refresh", refreshClaims.TokenType)
	})

	t.Run("empty secret rejected", func(t *testing.T) {
		_, _, err := GenerateTokens(1, "asha@campus.edu", "student", "")
		assert.ErrorIs(t, err, ErrEmptyJWTSecret)
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateAccessToken(1, "asha@campus.edu", "student", testSecret)
		require.NoError(t, err)

		_, err = ValidateToken(token, "other-secret")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		now := time.Now()
		claims := &Claims{
			UserID:    1,
			TokenType: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    jwtIssuer,
				Audience:  []string{jwtAudience},
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = ValidateToken(token, testSecret)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		now := time.Now()
		claims := &Claims{
			UserID:    1,
			TokenType: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				Audience:  []string{jwtAudience},
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = ValidateToken(token, testSecret)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ValidateToken("not.a.jwt", testSecret)
		assert.Error(t, err)
	})
}

func TestRefreshAccessToken(t *testing.T) {
	t.Run("mints fresh access token", func(t *testing.T) {
		refresh, err := GenerateRefreshToken(1, "asha@campus.edu", "student", testSecret)
		require.NoError(t, err)

		access, claims, err := RefreshAccessToken(refresh, testSecret)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)

		accessClaims, err := ValidateToken(access, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "access", accessClaims.TokenType)
		assert.Equal(t, "student", accessClaims.Role)
	})

	t.Run("access token is not accepted", func(t *testing.T) {
		access, err := GenerateAccessToken(1, "asha@campus.edu", "student", testSecret)
		require.NoError(t, err)

		_, _, err = RefreshAccessToken(access, testSecret)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}
