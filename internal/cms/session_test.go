package cms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
)

func TestSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidCredentialsRedirectToDashboard", func(t *testing.T) {
		f := newFixture(t)
		s, err := f.m.SignIn(ctx, " Admin@Example.gov ", testPassword, "192.0.2.1")
		require.NoError(t, err)

		assert.NotEmpty(t, s.Token)
		assert.Equal(t, DashboardPath, s.Redirect)
		assert.Equal(t, adminActor.Email, s.User.Email)
		require.NotNil(t, s.User.LastSignInAt)

		claims, err := f.tokens.Parse(s.Token)
		require.NoError(t, err)
		assert.Equal(t, s.User.ID, claims.UserID)

		assert.Equal(t, []string{"users:sign_in"}, f.system.Actions())
		assert.Equal(t, "192.0.2.1", f.system.Audit[0].IP)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.m.SignIn(ctx, adminActor.Email, "wrong-password", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, f.system.Actions())
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.m.SignIn(ctx, "nobody@example.gov", testPassword, "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("MissingFields", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.m.SignIn(ctx, "", "", "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 2)
	})

	t.Run("BackendError", func(t *testing.T) {
		f := newFixture(t)
		f.system.Err = errBackend
		_, err := f.m.SignIn(ctx, adminActor.Email, testPassword, "")
		assert.ErrorIs(t, err, errBackend)
	})
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	token, _, err := f.tokens.Issue(editorActor.UserID, editorActor.Email, auth.RoleEditor)
	require.NoError(t, err)

	user, err := f.m.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleEditor, user.Role)

	// demotion applies without a new token
	f.system.UserRows[1].Role = auth.RoleViewer
	user, err = f.m.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleViewer, user.Role)

	_, err = f.system.DeleteUser(ctx, editorActor.UserID)
	require.NoError(t, err)
	_, err = f.m.CurrentUser(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.m.CurrentUser(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = f.m.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSignOut(t *testing.T) {
	f := newFixture(t)
	f.m.SignOut(context.Background(), editorActor)
	f.m.SignOut(context.Background(), anonymousUser)
	assert.Equal(t, []string{"users:sign_out"}, f.system.Actions())
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var verr *ValidationError
	err := f.m.ChangePassword(ctx, editorActor, "not-it", "new-password-1")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "currentPassword")

	err = f.m.ChangePassword(ctx, editorActor, testPassword, "short")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "newPassword")

	require.NoError(t, f.m.ChangePassword(ctx, editorActor, testPassword, "new-password-1"))
	user, err := f.system.UserByID(ctx, editorActor.UserID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "new-password-1"))

	assert.ErrorIs(t, f.m.ChangePassword(ctx, anonymousUser, "a", "b"), ErrUnauthorized)
}
