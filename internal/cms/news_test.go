package cms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/municipal-portal/internal/db"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Town Fiesta Schedule Announced": "town-fiesta-schedule-announced",
		"  Año Nuevo 2025!  ":            "ano-nuevo-2025",
		"Road -- Works / Update":         "road-works-update",
		"¿¡!?":                           "",
		"Mayor's Office":                 "mayor-s-office",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}

	long := Slugify("a very long title that keeps going and going well past the limit of eighty characters total")
	assert.LessOrEqual(t, len(long), maxSlugLen)
	assert.NotEqual(t, '-', rune(long[len(long)-1]))
}

func TestNews_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("SlugFromTitle", func(t *testing.T) {
		f := newFixture(t)
		first, err := f.m.News.Create(ctx, editorActor, &db.News{Title: "Town Fiesta", Content: "c"})
		require.NoError(t, err)
		assert.Equal(t, "town-fiesta", first.Slug)
		assert.Nil(t, first.PublishedAt, "drafts stay undated")

		second, err := f.m.News.Create(ctx, editorActor, &db.News{Title: "Town Fiesta!", Content: "c"})
		require.NoError(t, err)
		assert.Equal(t, "town-fiesta-2", second.Slug)
	})

	t.Run("ExplicitSlugNormalized", func(t *testing.T) {
		f := newFixture(t)
		n, err := f.m.News.Create(ctx, editorActor, &db.News{Title: "T", Slug: "My Custom Slug", Content: "c"})
		require.NoError(t, err)
		assert.Equal(t, "my-custom-slug", n.Slug)
	})

	t.Run("UnusableSlugFallsBackToTitle", func(t *testing.T) {
		f := newFixture(t)
		n, err := f.m.News.Create(ctx, editorActor, &db.News{Title: "Market Day", Slug: "!!!", Content: "c"})
		require.NoError(t, err)
		assert.Equal(t, "market-day", n.Slug)

		updated, err := f.m.News.Update(ctx, editorActor, n.ID, &db.News{Title: "Market Week", Slug: " -- ", Content: "c"})
		require.NoError(t, err)
		assert.Equal(t, "market-day", updated.Slug)
	})

	t.Run("PublishedGetsDate", func(t *testing.T) {
		f := newFixture(t)
		n, err := f.m.News.Create(ctx, editorActor, &db.News{Base: db.Base{Status: db.StatusPublished}, Title: "Now", Content: "c"})
		require.NoError(t, err)
		require.NotNil(t, n.PublishedAt)
		assert.Equal(t, testNow, *n.PublishedAt)

		got, err := f.m.NewsBySlug(ctx, "now")
		require.NoError(t, err)
		assert.Equal(t, n.ID, got.ID)
	})

	t.Run("ScheduledHiddenUntilDue", func(t *testing.T) {
		f := newFixture(t)
		later := testNow.Add(24 * time.Hour)
		n, err := f.m.News.Create(ctx, editorActor, &db.News{Base: db.Base{Status: db.StatusPublished}, Title: "Later", Content: "c", PublishedAt: &later})
		require.NoError(t, err)

		page, err := f.m.News.Published(ctx, db.ListQuery{})
		require.NoError(t, err)
		assert.Empty(t, page.Items)

		_, err = f.m.News.PublishedByID(ctx, n.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNews_UpdateKeepsSlugAndDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.m.News.Create(ctx, editorActor, &db.News{Base: db.Base{Status: db.StatusPublished}, Title: "Original", Content: "c"})
	require.NoError(t, err)

	f.m.now = func() time.Time { return testNow.Add(time.Hour) }
	updated, err := f.m.News.Update(ctx, editorActor, created.ID, &db.News{Title: "Renamed", Content: "c2"})
	require.NoError(t, err)

	assert.Equal(t, "original", updated.Slug)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, testNow, *updated.PublishedAt)
}

func TestNewsBySlug_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.m.NewsBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
