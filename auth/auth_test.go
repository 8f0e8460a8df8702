package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.True(t, CheckPassword(hash, "s3cret-pass"))
	require.False(t, CheckPassword(hash, "wrong"))
}

func TestIssueAndParse(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	raw, exp, err := tokens.Issue("admin-1", "admin@wiredleaf.com", "Ada")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	c, err := tokens.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "admin-1", c.AdminID)
	require.Equal(t, "admin@wiredleaf.com", c.Email)
	require.Equal(t, "Ada", c.Name)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	raw, _, err := NewTokens("one", time.Hour).Issue("a", "a@x.io", "A")
	require.NoError(t, err)
	_, err = NewTokens("two", time.Hour).Parse(raw)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	tokens := NewTokens("s", time.Minute)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, _, err := tokens.Issue("a", "a@x.io", "A")
	require.NoError(t, err)

	_, err = NewTokens("s", time.Minute).Parse(raw)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseRejectsNoneAlg(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{AdminID: "a"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewTokens("s", time.Hour).Parse(raw)
	require.Error(t, err)
}
