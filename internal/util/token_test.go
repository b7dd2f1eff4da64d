package util

import (
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafclutch/leafclutch-backend/dao/model"
)

func TestTokenRoundtrip(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 2, 168)

	msg := &JWTMessage{
		UserID:   42,
		Username: "admin",
		Role:     model.RoleAdmin,
	}
	accessToken, refreshToken, err := tm.CreateTokens(msg)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	got, err := tm.CheckToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, *msg, got)

	got, err = tm.CheckRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, *msg, got)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 2, 168)

	accessToken, refreshToken, err := tm.CreateTokens(&JWTMessage{UserID: 1, Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = tm.CheckToken(refreshToken)
	assert.Error(t, err)

	_, err = tm.CheckRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestCheckTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 2, 168)
	other := NewTokenManager("other-access", "other-refresh", 2, 168)

	accessToken, refreshToken, err := tm.CreateTokens(&JWTMessage{UserID: 1, Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = other.CheckToken(accessToken)
	assert.Error(t, err)

	_, err = other.CheckRefreshToken(refreshToken)
	assert.Error(t, err)
}

func TestCheckTokenExpired(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", -1, -1)

	accessToken, refreshToken, err := tm.CreateTokens(&JWTMessage{UserID: 1, Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = tm.CheckToken(accessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = tm.CheckRefreshToken(refreshToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestCheckTokenGarbage(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", 2, 168)
	_, err := tm.CheckToken("not-a-token")
	assert.Error(t, err)
}
