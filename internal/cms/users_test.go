package cms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

func TestUsers_AdminOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.m.Users(ctx, editorActor, UserFilter{})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.m.CreateUser(ctx, editorActor, UserInput{Email: "x@example.gov", Role: auth.RoleViewer, Password: "long-enough"})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.m.AuditLogs(ctx, editorActor, db.AuditFilter{})
	assert.ErrorIs(t, err, ErrForbidden)

	page, err := f.m.Users(ctx, adminActor, UserFilter{Role: auth.RoleEditor})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, editorActor.Email, page.Items[0].Email)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var verr *ValidationError
	_, err := f.m.CreateUser(ctx, adminActor, UserInput{Email: "new@example.gov", Role: auth.RoleEditor})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields["password"])

	_, err = f.m.CreateUser(ctx, adminActor, UserInput{Email: "not-an-email", Role: "root", Password: "long-enough"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "role")

	user, err := f.m.CreateUser(ctx, adminActor, UserInput{Email: " New@Example.gov ", FullName: "New Editor", Role: auth.RoleEditor, Password: "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.gov", user.Email)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "long-enough"))

	_, err = f.m.CreateUser(ctx, adminActor, UserInput{Email: "new@example.gov", Role: auth.RoleEditor, Password: "long-enough"})
	assert.ErrorIs(t, err, ErrConflict)

	assert.Equal(t, []string{"users:create"}, f.system.Actions())
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.m.UpdateUser(ctx, adminActor, adminActor.UserID, UserInput{Email: adminActor.Email, Role: auth.RoleEditor})
	assert.ErrorIs(t, err, ErrForbidden, "last admin cannot be demoted")

	user, err := f.m.UpdateUser(ctx, adminActor, editorActor.UserID, UserInput{Email: editorActor.Email, FullName: "Promoted", Role: auth.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, user.Role)
	assert.Equal(t, testHash, user.PasswordHash, "empty password keeps the hash")

	user, err = f.m.UpdateUser(ctx, adminActor, adminActor.UserID, UserInput{Email: adminActor.Email, Role: auth.RoleEditor})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleEditor, user.Role)

	_, err = f.m.UpdateUser(ctx, adminActor, 404, UserInput{Email: "a@example.gov", Role: auth.RoleViewer})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.ErrorIs(t, f.m.DeleteUser(ctx, adminActor, adminActor.UserID), ErrForbidden)
	assert.ErrorIs(t, f.m.DeleteUser(ctx, adminActor, 404), ErrNotFound)

	second := &db.User{Email: "second@example.gov", Role: auth.RoleAdmin, PasswordHash: testHash}
	require.NoError(t, f.system.InsertUser(ctx, second))

	require.NoError(t, f.m.DeleteUser(ctx, adminActor, viewerActor.UserID))
	require.NoError(t, f.m.DeleteUser(ctx, adminActor, second.ID))

	other := Actor{UserID: 99, Email: "ghost@example.gov", Role: auth.RoleAdmin}
	assert.ErrorIs(t, f.m.DeleteUser(ctx, other, adminActor.UserID), ErrForbidden, "last admin cannot be deleted")

	assert.Equal(t, []string{"users:delete", "users:delete"}, f.system.Actions())
}

func TestAuditLogs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.m.FAQs.Create(ctx, editorActor, &db.FAQ{Question: "Q", Answer: "A"})
	require.NoError(t, err)
	f.m.SignOut(ctx, editorActor)

	page, err := f.m.AuditLogs(ctx, adminActor, db.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, ActionSignOut, page.Items[0].Action, "newest first")
	require.NotNil(t, page.Items[1].UserID)
	assert.Equal(t, editorActor.UserID, *page.Items[1].UserID)
	assert.Equal(t, db.DefaultLimit, page.Limit)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.m.EnsureAdmin(ctx, "root@example.gov", "long-enough")
	require.NoError(t, err)
	assert.False(t, created, "an administrator already exists")

	f.system.UserRows = nil
	var verr *ValidationError
	_, err = f.m.EnsureAdmin(ctx, "root@example.gov", "short")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")

	created, err = f.m.EnsureAdmin(ctx, "Root@Example.gov", "long-enough")
	require.NoError(t, err)
	assert.True(t, created)

	user, err := f.system.UserByEmail(ctx, "root@example.gov")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, auth.RoleAdmin, user.Role)
	require.Len(t, f.system.Audit, 1)
	assert.Equal(t, "system", f.system.Audit[0].UserEmail)
	assert.Nil(t, f.system.Audit[0].UserID)
}
