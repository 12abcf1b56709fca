package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService() TokenService {
	return TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "streamhub-test",
		Duration: time.Hour,
	}
}

func TestSignAndParse(t *testing.T) {
	ts := testTokenService()
	user := &User{ID: "u-1", Username: "alice", TokenVersion: 3}

	token, exp, err := ts.Sign(user)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, "streamhub-test", claims.Issuer)
}

func TestParseWrongSecret(t *testing.T) {
	ts := testTokenService()
	token, _, err := ts.Sign(&User{ID: "u-1", Username: "alice"})
	require.NoError(t, err)

	other := testTokenService()
	other.Secret = []byte("different-secret")
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	ts := testTokenService()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID:   "u-1",
		Username: "mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := tok.SignedString(ts.Secret)
	require.NoError(t, err)

	_, err = ts.Parse(signed)
	assert.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	ts := testTokenService()
	ts.Duration = -time.Minute

	token, _, err := ts.Sign(&User{ID: "u-1", Username: "alice"})
	require.NoError(t, err)

	_, err = ts.Parse(token)
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	ts := testTokenService()
	_, err := ts.Parse("not.a.token")
	assert.Error(t, err)
}
