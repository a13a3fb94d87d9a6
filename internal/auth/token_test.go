package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndParse(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "municipal-portal")

	token, expiresAt, err := svc.Issue(42, "editor@example.com", RoleEditor)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "editor@example.com", claims.Email)
	assert.Equal(t, RoleEditor, claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenService_Parse(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "municipal-portal")

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenService("test-secret", time.Hour, "municipal-portal")
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := expired.Issue(1, "a@example.com", RoleAdmin)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour, "municipal-portal")
		token, _, err := other.Issue(1, "a@example.com", RoleAdmin)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenService("test-secret", time.Hour, "someone-else")
		token, _, err := other.Issue(1, "a@example.com", RoleAdmin)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role, min string
		want      bool
	}{
		{RoleAdmin, RoleEditor, true},
		{RoleAdmin, RoleAdmin, true},
		{RoleEditor, RoleEditor, true},
		{RoleEditor, RoleAdmin, false},
		{RoleViewer, RoleEditor, false},
		{"superuser", RoleViewer, false},
		{"", RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+">="+tt.min, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleAtLeast(tt.role, tt.min))
		})
	}

	assert.True(t, ValidRole(RoleViewer))
	assert.False(t, ValidRole("root"))
}
