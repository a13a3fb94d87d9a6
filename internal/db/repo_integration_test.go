//go:build integration

package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_List_Integration(t *testing.T) {
	ctx, repo := withTx(t)
	news := NewTable[News](repo)

	t.Run("PublishedHidesDraftsAndScheduled", func(t *testing.T) {
		items, total, err := news.List(ctx, ListQuery{Published: true})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, items, 3)
		assert.Equal(t, "town-fiesta-schedule-announced", items[0].Slug)
		for i := 1; i < len(items); i++ {
			assert.False(t, items[i].PublishedAt.After(*items[i-1].PublishedAt), "sorted by publishedAt desc")
		}
	})

	t.Run("StatusFilter", func(t *testing.T) {
		items, total, err := news.List(ctx, ListQuery{Status: StatusDraft})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "Unreleased Budget Report", items[0].Title)
	})

	t.Run("Search", func(t *testing.T) {
		items, total, err := news.List(ctx, ListQuery{Search: "VACCIN"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "Free Vaccination Drive", items[0].Title)

		_, total, err = news.List(ctx, ListQuery{Search: "100%"})
		require.NoError(t, err)
		assert.Zero(t, total, "wildcards in the search are literal")
	})

	t.Run("Pagination", func(t *testing.T) {
		items, total, err := news.List(ctx, ListQuery{Limit: 2, Offset: 4})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Len(t, items, 1)
	})

	t.Run("Kind", func(t *testing.T) {
		docs := NewTable[Document](repo)
		items, total, err := docs.List(ctx, ListQuery{Kind: DocumentOrdinance, Published: true})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "ORD-2024-010", items[0].Number)
	})

	t.Run("KindIgnoredWithoutColumn", func(t *testing.T) {
		faqs := NewTable[FAQ](repo)
		_, total, err := faqs.List(ctx, ListQuery{Kind: "x", Published: true})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})
}

func TestTable_CRUD_Integration(t *testing.T) {
	ctx, repo := withTx(t)
	faqs := NewTable[FAQ](repo)

	faq := &FAQ{Base: Base{Status: StatusDraft, CreatedAt: BaseTime}, Question: "Where is city hall?", Answer: "Poblacion"}
	require.NoError(t, faqs.Insert(ctx, faq))
	require.NotZero(t, faq.ID)

	got, err := faqs.ByID(ctx, faq.ID, true)
	require.NoError(t, err)
	assert.Nil(t, got, "drafts are not public")

	faq.Status = StatusPublished
	faq.Answer = "Rizal Street"
	updated, err := faqs.Update(ctx, faq)
	require.NoError(t, err)
	assert.True(t, updated)

	got, err = faqs.ByID(ctx, faq.ID, true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rizal Street", got.Answer)
	assert.True(t, got.CreatedAt.Equal(BaseTime))

	count, err := faqs.Count(ctx, StatusPublished, "")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	deleted, err := faqs.Delete(ctx, faq.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = faqs.Delete(ctx, faq.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	updated, err = faqs.Update(ctx, faq)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestTable_Conflict_Integration(t *testing.T) {
	ctx, repo := withTx(t)

	dup := &News{Base: Base{Status: StatusDraft, CreatedAt: BaseTime}, Title: "Dup", Slug: "free-vaccination-drive", Content: "x"}
	err := NewTable[News](repo).Insert(ctx, dup)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRepository_Users_Integration(t *testing.T) {
	ctx, repo := withTx(t)

	user := &User{Email: " Clerk@Example.gov ", FullName: "Town Clerk", Role: "editor", PasswordHash: "hash", CreatedAt: BaseTime}
	require.NoError(t, repo.InsertUser(ctx, user))
	assert.Equal(t, "clerk@example.gov", user.Email)

	got, err := repo.UserByEmail(ctx, "CLERK@example.gov")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	at := BaseTime.Add(time.Hour)
	require.NoError(t, repo.TouchSignIn(ctx, user.ID, at))
	got, err = repo.UserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastSignInAt)
	assert.True(t, got.LastSignInAt.Equal(at))

	users, total, err := repo.Users(ctx, "clerk", "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Town Clerk", users[0].FullName)

	editors, err := repo.CountUsersByRole(ctx, "editor")
	require.NoError(t, err)
	assert.Equal(t, 1, editors)

	deleted, err := repo.DeleteUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err = repo.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_AuditLogs_Integration(t *testing.T) {
	ctx, repo := withTx(t)

	for i, action := range []string{"create", "update", "delete"} {
		require.NoError(t, repo.InsertAuditLog(ctx, &AuditLog{
			UserEmail: "editor@example.gov",
			Action:    action,
			Entity:    "faqs",
			Details:   map[string]string{"question": "office hours"},
			CreatedAt: BaseTime.Add(time.Duration(i) * time.Minute),
		}))
	}

	logs, total, err := repo.AuditLogs(ctx, AuditFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, "delete", logs[0].Action, "newest first")

	_, total, err = repo.AuditLogs(ctx, AuditFilter{Action: "update", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, total, err = repo.AuditLogs(ctx, AuditFilter{Search: "office", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestRepository_SiteSettings_Integration(t *testing.T) {
	ctx, repo := withTx(t)

	settings, err := repo.SiteSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteSettings(), *settings)

	settings.SiteName = "Municipality of San Isidro"
	settings.PrimaryColor = "#0f766e"
	require.NoError(t, repo.SaveSiteSettings(ctx, settings))

	settings.Tagline = "Bagong San Isidro"
	require.NoError(t, repo.SaveSiteSettings(ctx, settings))

	got, err := repo.SiteSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Municipality of San Isidro", got.SiteName)
	assert.Equal(t, "Bagong San Isidro", got.Tagline)
}

func TestRepository_NewsBySlug_Integration(t *testing.T) {
	ctx, repo := withTx(t)

	tests := []struct {
		slug          string
		publishedOnly bool
		found         bool
	}{
		{"road-rehabilitation-update", true, true},
		{"unreleased-budget-report", true, false},
		{"unreleased-budget-report", false, true},
		{"scheduled-announcement", true, false},
		{"missing", false, false},
	}
	for _, tt := range tests {
		n, err := repo.NewsBySlug(ctx, tt.slug, tt.publishedOnly)
		require.NoError(t, err)
		assert.Equal(t, tt.found, n != nil, tt.slug)
	}
}

func TestRepository_Ping_Integration(t *testing.T) {
	assert.NoError(t, New(testDB).Ping(context.Background()))
}
