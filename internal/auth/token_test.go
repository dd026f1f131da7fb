package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soportek/deskcore/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	account := &domain.Account{ID: "acc-1", Role: domain.RoleAdmin}

	token, expiresAt, err := tm.Issue(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issued, _, err := NewTokenManager("secret-a", 5).Issue(&domain.Account{ID: "acc-1", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 5).Parse(issued)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	_, err := tm.Parse("garbage")
	assert.Error(t, err)
}
