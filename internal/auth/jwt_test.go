package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_IssueAndParse(t *testing.T) {
	m := NewJWTManager("test-secret", "gigcampus", time.Hour)

	token, err := m.Issue("user-123", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "gigcampus", claims.Issuer)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", "gigcampus", time.Hour)
	verifier := NewJWTManager("secret-b", "gigcampus", time.Hour)

	token, err := issuer.Issue("user-123", "user")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsWrongIssuer(t *testing.T) {
	issuer := NewJWTManager("shared-secret", "other-service", time.Hour)
	verifier := NewJWTManager("shared-secret", "gigcampus", time.Hour)

	token, err := issuer.Issue("user-123", "user")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	// Negative TTL puts the expiry past the 60s leeway.
	m := NewJWTManager("test-secret", "gigcampus", -2*time.Minute)

	token, err := m.Issue("user-123", "user")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", "gigcampus", time.Hour)

	_, err := m.Parse("not.a.token")
	assert.Error(t, err)

	_, err = m.Parse("")
	assert.Error(t, err)
}
