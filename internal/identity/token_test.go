package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	u := &User{ID: 42, Username: "dr.naulu", Role: RoleDoctor}

	raw, err := IssueToken("test-secret", time.Hour, u)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	userID, role, err := ParseToken("test-secret", raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, RoleDoctor, role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	raw, err := IssueToken("secret-a", time.Hour, &User{ID: 1, Role: RoleNurse})
	require.NoError(t, err)

	_, _, err = ParseToken("secret-b", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	raw, err := IssueToken("test-secret", -time.Minute, &User{ID: 1, Role: RoleAdmin})
	require.NoError(t, err)

	_, _, err = ParseToken("test-secret", raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, _, err := ParseToken("test-secret", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
