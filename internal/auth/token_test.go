package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/melhem/content-hub/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("acc-1", domain.RoleDoctor)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "acc-1", claims.AccountID)
	require.Equal(t, domain.RoleDoctor, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("other-secret", 60)

	token, _, err := tm.GenerateToken("acc-1", domain.RoleMarketing)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not.a.token")
	require.Error(t, err)
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.NoError(t, ComparePassword(hash, "hunter22"))
	require.Error(t, ComparePassword(hash, "wrong"))
}

func TestHashPasswordDefaultsCost(t *testing.T) {
	hash, err := HashPassword("hunter22", 0)
	require.NoError(t, err)
	require.NoError(t, ComparePassword(hash, "hunter22"))
}
