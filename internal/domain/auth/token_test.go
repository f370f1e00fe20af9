package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usercontext "stockmaster/internal/core/context"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/users"
)

func testUser() *users.User {
	return &users.User{
		ID:    id.New(),
		Email: "clerk@example.com",
		Role:  usercontext.RoleStaff,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	u := testUser()

	token, expires, err := issuer.Issue(u)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	principal, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), principal.UserID)
	assert.Equal(t, u.Email, principal.Email)
	assert.Equal(t, usercontext.RoleStaff, principal.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	issuer.ttl = -time.Minute

	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Verify("not.a.token")
	assert.Error(t, err)
}
