//go:build integration

package cms

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/cms/cmstest"
	"github.com/daniilsolovey/municipal-portal/internal/db"
	"github.com/daniilsolovey/municipal-portal/internal/storage"
)

var testDB *pg.DB

func TestMain(m *testing.M) {
	var err error
	testDB, err = db.SetupTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up test database: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close database connection: %v\n", err)
	}

	os.Exit(code)
}

func withTx(t *testing.T) (context.Context, *Manager, *cmstest.Revalidator) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	reval := &cmstest.Revalidator{}
	m := NewManager(NewStores(db.New(tx)), Options{
		Tokens:      auth.NewTokenService("test-secret", time.Hour, "municipal-portal"),
		Files:       storage.NewMemoryStorage("http://files.test"),
		Revalidator: reval,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return ctx, m, reval
}

func TestManager_News_Integration(t *testing.T) {
	ctx, m, reval := withTx(t)

	editor, err := m.createUser(ctx, Actor{Email: "system"}, UserInput{Email: "pio@example.gov", Role: auth.RoleEditor, Password: "long-enough"})
	require.NoError(t, err)
	actor := ActorFromUser(editor, "127.0.0.1")

	n, err := m.News.Create(ctx, actor, &db.News{Base: db.Base{Status: db.StatusPublished}, Title: "Free Vaccination Drive", Content: "again"})
	require.NoError(t, err)
	assert.Equal(t, "free-vaccination-drive-2", n.Slug, "seeded slug is taken")
	require.NotNil(t, n.PublishedAt)

	got, err := m.NewsBySlug(ctx, n.Slug)
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)

	home, err := m.Home(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, home.News)
	assert.Equal(t, n.ID, home.News[0].ID)
	assert.Contains(t, reval.Paths(), "news")

	logs, err := m.AuditLogs(ctx, Actor{UserID: 1, Role: auth.RoleAdmin}, db.AuditFilter{Entity: "news"})
	require.NoError(t, err)
	require.Equal(t, 1, logs.Total)
	assert.Equal(t, "pio@example.gov", logs.Items[0].UserEmail)
}

func TestManager_SignIn_Integration(t *testing.T) {
	ctx, m, _ := withTx(t)

	_, err := m.createUser(ctx, Actor{Email: "system"}, UserInput{Email: "mayor@example.gov", Role: auth.RoleAdmin, Password: "long-enough"})
	require.NoError(t, err)

	session, err := m.SignIn(ctx, "Mayor@example.gov", "long-enough", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, DashboardPath, session.Redirect)

	user, err := m.CurrentUser(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "mayor@example.gov", user.Email)
	assert.NotNil(t, user.LastSignInAt)

	_, err = m.SignIn(ctx, "mayor@example.gov", "wrong-password", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestManager_Menu_Integration(t *testing.T) {
	ctx, m, _ := withTx(t)

	tree, err := m.Menu(ctx, db.MenuHeader)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "About", tree[0].Label)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "History", tree[0].Children[0].Label)
}
