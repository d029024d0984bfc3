package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 0)

	tok, err := tm.Issue("user-1", "root")
	require.NoError(t, err)

	claims, err := tm.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "root", claims.Username)
	assert.Nil(t, claims.ExpiresAt, "no expiry without ttl")
}

func TestVerifyRejects(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	good, err := tm.Issue("user-1", "root")
	require.NoError(t, err)

	other, err := NewTokenManager("other", 0).Issue("user-1", "root")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Username: "root"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not.a.token",
		"wrong secret": other,
		"alg none":     none,
		"tampered":     good + "x",
		"missing id":   noID,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tm.Verify(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestExpiry(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	tok, err := tm.Issue("user-1", "root")
	require.NoError(t, err)
	claims, err := tm.Verify(tok)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)

	expired := NewTokenManager("secret", -time.Minute)
	tok, err = expired.Issue("user-1", "root")
	require.NoError(t, err)
	_, err = expired.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
