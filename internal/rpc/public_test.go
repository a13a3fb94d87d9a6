package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/cms"
	"github.com/daniilsolovey/municipal-portal/internal/cms/cmstest"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	svc  *PublicService
	news *cmstest.Table[db.News, *db.News]
	docs *cmstest.Table[db.Document, *db.Document]
	faqs *cmstest.Table[db.FAQ, *db.FAQ]
	tour *cmstest.Table[db.TourismListing, *db.TourismListing]
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		news: cmstest.NewTable[db.News, *db.News](testNow),
		docs: cmstest.NewTable[db.Document, *db.Document](testNow),
		faqs: cmstest.NewTable[db.FAQ, *db.FAQ](testNow),
		tour: cmstest.NewTable[db.TourismListing, *db.TourismListing](testNow),
	}
	m := cms.NewManager(cms.Stores{
		System:        cmstest.NewSystem(env.news),
		HeroSlides:    cmstest.NewTable[db.HeroSlide, *db.HeroSlide](testNow),
		News:          env.news,
		FAQs:          env.faqs,
		Officials:     cmstest.NewTable[db.Official, *db.Official](testNow),
		Departments:   cmstest.NewTable[db.Department, *db.Department](testNow),
		Barangays:     cmstest.NewTable[db.Barangay, *db.Barangay](testNow),
		Documents:     env.docs,
		History:       cmstest.NewTable[db.HistoryEntry, *db.HistoryEntry](testNow),
		VisionMission: cmstest.NewTable[db.VisionMission, *db.VisionMission](testNow),
		Tourism:       env.tour,
		Services:      cmstest.NewTable[db.Service, *db.Service](testNow),
		Menus:         cmstest.NewTable[db.MenuItem, *db.MenuItem](testNow),
	}, cms.Options{
		Tokens: auth.NewTokenService("test-secret", time.Hour, "municipal-portal"),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return testNow },
	})
	env.svc = NewPublicService(m)

	ctx := context.Background()
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)
	for _, n := range []db.News{
		{Base: db.Base{Status: db.StatusPublished}, Title: "Fiesta", Slug: "fiesta", Content: "c", PublishedAt: &past},
		{Base: db.Base{Status: db.StatusPublished}, Title: "Road works", Slug: "road-works", Content: "c", PublishedAt: &past},
		{Base: db.Base{Status: db.StatusDraft}, Title: "Draft", Slug: "draft", Content: "c"},
		{Base: db.Base{Status: db.StatusPublished}, Title: "Later", Slug: "later", Content: "c", PublishedAt: &future},
	} {
		require.NoError(t, env.news.Insert(ctx, &n))
	}
	for _, d := range []db.Document{
		{Base: db.Base{Status: db.StatusPublished}, Kind: db.DocumentOrdinance, Title: "Anti-Littering"},
		{Base: db.Base{Status: db.StatusPublished}, Kind: db.DocumentExecutiveOrder, Title: "Tourism Council"},
	} {
		require.NoError(t, env.docs.Insert(ctx, &d))
	}

	return env
}

func rpcCode(t *testing.T, err error) int {
	t.Helper()
	var rerr *zenrpc.Error
	require.True(t, errors.As(err, &rerr), "expected *zenrpc.Error, got %T", err)
	return rerr.Code
}

func intPtr(i int) *int { return &i }

func TestPublicService_News(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	page, err := env.svc.News(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Items, 2)

	page, err = env.svc.News(ctx, ListFilter{Page: intPtr(2), PageSize: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Items, 1)

	_, err = env.svc.News(ctx, ListFilter{Page: intPtr(0)})
	assert.Equal(t, http.StatusBadRequest, rpcCode(t, err))

	page, err = env.svc.News(ctx, ListFilter{PageSize: intPtr(db.MaxLimit)})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	// larger pages would be clamped by the store and shift the offset of later pages
	_, err = env.svc.News(ctx, ListFilter{Page: intPtr(2), PageSize: intPtr(db.MaxLimit + 1)})
	assert.Equal(t, http.StatusBadRequest, rpcCode(t, err))
	_, err = env.svc.Documents(ctx, nil, ListFilter{PageSize: intPtr(200)})
	assert.Equal(t, http.StatusBadRequest, rpcCode(t, err))
}

func TestPublicService_Events(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ended := testNow.AddDate(0, -1, 0)
	endedStart := ended.Add(-48 * time.Hour)
	running := testNow.Add(-24 * time.Hour)
	runningEnd := testNow.Add(24 * time.Hour)
	next := testNow.AddDate(0, 0, 7)
	for _, l := range []db.TourismListing{
		{Base: db.Base{Status: db.StatusPublished}, Kind: db.TourismEvent, Name: "Past fiesta", StartsAt: &endedStart, EndsAt: &ended},
		{Base: db.Base{Status: db.StatusPublished}, Kind: db.TourismEvent, Name: "Trade fair", StartsAt: &running, EndsAt: &runningEnd},
		{Base: db.Base{Status: db.StatusPublished}, Kind: db.TourismEvent, Name: "Harvest festival", StartsAt: &next},
		{Base: db.Base{Status: db.StatusDraft}, Kind: db.TourismEvent, Name: "Draft parade", StartsAt: &next},
		{Base: db.Base{Status: db.StatusPublished}, Kind: db.TourismAttraction, Name: "Old church"},
	} {
		require.NoError(t, env.tour.Insert(ctx, &l))
	}

	events, err := env.svc.Events(ctx)
	require.NoError(t, err)
	var names []string
	for _, e := range events {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Trade fair", "Harvest festival"}, names)
}

func TestPublicService_NewsByIDAndSlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	n, err := env.svc.NewsByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Fiesta", n.Title)

	n, err = env.svc.NewsBySlug(ctx, "road-works")
	require.NoError(t, err)
	assert.Equal(t, 2, n.NewsID)

	tests := []struct {
		name string
		call func() error
		code int
	}{
		{"DraftByID", func() error { _, err := env.svc.NewsByID(ctx, 3); return err }, http.StatusNotFound},
		{"ScheduledByID", func() error { _, err := env.svc.NewsByID(ctx, 4); return err }, http.StatusNotFound},
		{"NonPositiveID", func() error { _, err := env.svc.NewsByID(ctx, 0); return err }, http.StatusBadRequest},
		{"DraftBySlug", func() error { _, err := env.svc.NewsBySlug(ctx, "draft"); return err }, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, rpcCode(t, tt.call()))
		})
	}
}

func TestPublicService_Documents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	page, err := env.svc.Documents(ctx, nil, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	kind := db.DocumentOrdinance
	page, err = env.svc.Documents(ctx, &kind, ListFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Anti-Littering", page.Items[0].Title)
}

func TestPublicService_MenuAndSettings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Menu(ctx, "sidebar")
	require.Error(t, err)
	var rerr *zenrpc.Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, http.StatusBadRequest, rerr.Code)
	assert.Contains(t, rerr.Data, "location")

	items, err := env.svc.Menu(ctx, db.MenuHeader)
	require.NoError(t, err)
	assert.Empty(t, items)

	settings, err := env.svc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, db.DefaultSiteSettings().SiteName, settings.SiteName)
}

func TestPublicService_Invoke(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp := env.svc.Invoke(ctx, RPC.PublicService.NewsByID, json.RawMessage(`[2]`))
	require.Nil(t, resp.Error)
	var n News
	require.NoError(t, json.Unmarshal(*resp.Result, &n))
	assert.Equal(t, "road-works", n.Slug)

	resp = env.svc.Invoke(ctx, RPC.PublicService.News, json.RawMessage(`{"filter":{"pageSize":1}}`))
	require.Nil(t, resp.Error)
	var page NewsPage
	require.NoError(t, json.Unmarshal(*resp.Result, &page))
	assert.Len(t, page.Items, 1)

	resp = env.svc.Invoke(ctx, RPC.PublicService.NewsBySlug, json.RawMessage(`{"slug":"missing"}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, http.StatusNotFound, resp.Error.Code)

	resp = env.svc.Invoke(ctx, "unknown", nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, zenrpc.MethodNotFound, resp.Error.Code)
}

func TestNewMenuItems(t *testing.T) {
	nodes := []cms.MenuNode{
		{MenuItem: db.MenuItem{Base: db.Base{ID: 1}, Label: "About", Href: "/about"}, Children: []cms.MenuNode{
			{MenuItem: db.MenuItem{Base: db.Base{ID: 2}, Label: "History", Href: "/about/history"}},
		}},
	}

	items := NewMenuItems(nodes)
	require.Len(t, items, 1)
	assert.Equal(t, "About", items[0].Label)
	require.Len(t, items[0].Children, 1)
	assert.Equal(t, 2, items[0].Children[0].MenuItemID)
	assert.Empty(t, items[0].Children[0].Children)
}
