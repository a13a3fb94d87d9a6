package cms

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/cms/cmstest"
	"github.com/daniilsolovey/municipal-portal/internal/db"
	"github.com/daniilsolovey/municipal-portal/internal/storage"
)

const testPassword = "correct-horse"

var (
	testNow       = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	testHash      = mustHash(testPassword)
	errBackend    = errors.New("connection refused")
	adminActor    = Actor{UserID: 1, Email: "admin@example.gov", Role: auth.RoleAdmin, IP: "10.0.0.1"}
	editorActor   = Actor{UserID: 2, Email: "editor@example.gov", Role: auth.RoleEditor, IP: "10.0.0.2"}
	viewerActor   = Actor{UserID: 3, Email: "viewer@example.gov", Role: auth.RoleViewer, IP: "10.0.0.3"}
	anonymousUser = Actor{}
)

func mustHash(p string) string {
	h, err := auth.HashPassword(p)
	if err != nil {
		panic(err)
	}
	return h
}

type fixture struct {
	m       *Manager
	system  *cmstest.System
	faqs    *cmstest.Table[db.FAQ, *db.FAQ]
	news    *cmstest.Table[db.News, *db.News]
	docs    *cmstest.Table[db.Document, *db.Document]
	tourism *cmstest.Table[db.TourismListing, *db.TourismListing]
	menus   *cmstest.Table[db.MenuItem, *db.MenuItem]
	files   *storage.MemoryStorage
	reval   *cmstest.Revalidator
	tokens  *auth.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		faqs:    cmstest.NewTable[db.FAQ, *db.FAQ](testNow),
		news:    cmstest.NewTable[db.News, *db.News](testNow),
		docs:    cmstest.NewTable[db.Document, *db.Document](testNow),
		tourism: cmstest.NewTable[db.TourismListing, *db.TourismListing](testNow),
		menus:   cmstest.NewTable[db.MenuItem, *db.MenuItem](testNow),
		files:   storage.NewMemoryStorage("http://files.test/media"),
		reval:   &cmstest.Revalidator{},
		tokens:  auth.NewTokenService("test-secret", time.Hour, "municipal-portal"),
	}
	f.system = cmstest.NewSystem(f.news)
	for _, u := range []Actor{adminActor, editorActor, viewerActor} {
		require.NoError(t, f.system.InsertUser(context.Background(), &db.User{
			Email: u.Email, Role: u.Role, PasswordHash: testHash, CreatedAt: testNow,
		}))
	}

	stores := Stores{
		System:        f.system,
		HeroSlides:    cmstest.NewTable[db.HeroSlide, *db.HeroSlide](testNow),
		News:          f.news,
		FAQs:          f.faqs,
		Officials:     cmstest.NewTable[db.Official, *db.Official](testNow),
		Departments:   cmstest.NewTable[db.Department, *db.Department](testNow),
		Barangays:     cmstest.NewTable[db.Barangay, *db.Barangay](testNow),
		Documents:     f.docs,
		History:       cmstest.NewTable[db.HistoryEntry, *db.HistoryEntry](testNow),
		VisionMission: cmstest.NewTable[db.VisionMission, *db.VisionMission](testNow),
		Tourism:       f.tourism,
		Services:      cmstest.NewTable[db.Service, *db.Service](testNow),
		Menus:         f.menus,
	}

	f.m = NewManager(stores, Options{
		Tokens:      f.tokens,
		Files:       f.files,
		Revalidator: f.reval,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:         func() time.Time { return testNow },
	})

	return f
}
