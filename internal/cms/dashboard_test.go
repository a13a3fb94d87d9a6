package cms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/municipal-portal/internal/db"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.m.ExecutiveOrders.Create(ctx, editorActor, &db.Document{Base: db.Base{Status: db.StatusPublished}, Title: "EO 1"})
	require.NoError(t, err)
	_, err = f.m.Ordinances.Create(ctx, editorActor, &db.Document{Title: "Ord 1"})
	require.NoError(t, err)
	_, err = f.m.FAQs.Create(ctx, editorActor, &db.FAQ{Base: db.Base{Status: db.StatusPublished}, Question: "Q", Answer: "A"})
	require.NoError(t, err)

	d, err := f.m.Dashboard(ctx, editorActor)
	require.NoError(t, err)

	stats := map[string]CollectionStats{}
	for _, s := range d.Collections {
		stats[s.Name] = s
	}
	assert.Len(t, stats, len(f.m.statsers()))
	assert.Equal(t, CollectionStats{Name: "documents", Total: 2, Published: 1}, stats["documents"])
	assert.Equal(t, CollectionStats{Name: "executiveOrders", Total: 1, Published: 1}, stats["executiveOrders"])
	assert.Equal(t, CollectionStats{Name: "ordinances", Total: 1, Published: 0}, stats["ordinances"])
	assert.Equal(t, CollectionStats{Name: "faqs", Total: 1, Published: 1}, stats["faqs"])
	assert.Equal(t, 3, d.Users)
	assert.Len(t, d.RecentActivity, 3)

	d, err = f.m.Dashboard(ctx, viewerActor)
	require.NoError(t, err)
	assert.Len(t, d.Collections, len(f.m.statsers()))

	_, err = f.m.Dashboard(ctx, Actor{IP: "10.0.0.9"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDashboard_AnyFailureFails(t *testing.T) {
	f := newFixture(t)
	f.docs.Err = errBackend

	_, err := f.m.Dashboard(context.Background(), adminActor)
	assert.ErrorIs(t, err, errBackend)
}

func TestHome(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	past := testNow.Add(-48 * time.Hour)
	future := testNow.Add(48 * time.Hour)
	for _, ev := range []db.TourismListing{
		{Base: db.Base{Status: db.StatusPublished}, Name: "Past", StartsAt: &past},
		{Base: db.Base{Status: db.StatusPublished}, Name: "Future", StartsAt: &future},
		{Base: db.Base{Status: db.StatusPublished}, Name: "Undated"},
	} {
		_, err := f.m.TourismEvents.Create(ctx, editorActor, &ev)
		require.NoError(t, err)
	}
	_, err := f.m.Tourism.Create(ctx, editorActor, &db.TourismListing{Base: db.Base{Status: db.StatusPublished}, Kind: db.TourismAttraction, Name: "Church"})
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		_, err := f.m.News.Create(ctx, editorActor, &db.News{Base: db.Base{Status: db.StatusPublished}, Title: "Item", Content: "c"})
		require.NoError(t, err)
	}

	home, err := f.m.Home(ctx)
	require.NoError(t, err)
	assert.Len(t, home.News, homeNewsLimit)
	require.Len(t, home.Events, 2)
	assert.Equal(t, "Future", home.Events[0].Name)
	assert.Equal(t, "Undated", home.Events[1].Name)
	assert.Equal(t, db.DefaultSiteSettings().SiteName, home.Settings.SiteName)

	f.faqs.Err = errBackend
	_, err = f.m.Home(ctx)
	assert.ErrorIs(t, err, errBackend)
}

func TestUpcomingEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ended := testNow.Add(-time.Hour)
	for i := 0; i < db.MaxLimit+5; i++ {
		require.NoError(t, f.tourism.Insert(ctx, &db.TourismListing{
			Base: db.Base{Status: db.StatusPublished}, Kind: db.TourismEvent, Name: "Ended", EndsAt: &ended,
		}))
	}
	next := testNow.Add(time.Hour)
	for _, name := range []string{"Parade", "Concert"} {
		require.NoError(t, f.tourism.Insert(ctx, &db.TourismListing{
			Base: db.Base{Status: db.StatusPublished}, Kind: db.TourismEvent, Name: name, StartsAt: &next,
		}))
	}

	events, err := f.m.UpcomingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Parade", events[0].Name)
	assert.Equal(t, "Concert", events[1].Name)

	events, err = f.m.UpcomingEvents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Parade", events[0].Name)

	f.tourism.Err = errBackend
	_, err = f.m.UpcomingEvents(ctx, 1)
	assert.ErrorIs(t, err, errBackend)
}
