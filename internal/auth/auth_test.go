package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2hunter2"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateAccessToken(42, "creator@example.com", RoleCreator, testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, RoleCreator, claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "u@example.com", RoleUser, testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	claims := &JWTClaims{
		UserID:    1,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			Audience:  []string{jwtAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshAccessToken(t *testing.T) {
	_, refresh, err := GenerateTokens(7, "u@example.com", RoleUser, testSecret)
	require.NoError(t, err)

	newAccess, claims, err := RefreshAccessToken(refresh, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)

	accessClaims, err := ValidateToken(newAccess, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "access", accessClaims.TokenType)
}

func TestRefreshAccessToken_RejectsAccessToken(t *testing.T) {
	access, err := GenerateAccessToken(7, "u@example.com", RoleUser, testSecret)
	require.NoError(t, err)

	_, _, err = RefreshAccessToken(access, testSecret)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestEmptySecret(t *testing.T) {
	_, err := GenerateAccessToken(1, "u@example.com", RoleUser, "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)

	_, err = ValidateToken("token", "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}
