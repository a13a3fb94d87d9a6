package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/daniilsolovey/municipal-portal/docs"
	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/cms"
	"github.com/daniilsolovey/municipal-portal/internal/cms/cmstest"
	"github.com/daniilsolovey/municipal-portal/internal/db"
	"github.com/daniilsolovey/municipal-portal/internal/storage"
)

const testPassword = "correct-horse"

var testHash = func() string {
	h, err := auth.HashPassword(testPassword)
	if err != nil {
		panic(err)
	}
	return h
}()

type testEnv struct {
	e      *echo.Echo
	system *cmstest.System
	faqs   *cmstest.Table[db.FAQ, *db.FAQ]
	tokens *auth.TokenService
	cache  *ResponseCache
	files  *storage.MemoryStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	now := time.Now()

	news := cmstest.NewTable[db.News, *db.News](now)
	env := &testEnv{
		system: cmstest.NewSystem(news),
		faqs:   cmstest.NewTable[db.FAQ, *db.FAQ](now),
		tokens: auth.NewTokenService("test-secret", time.Hour, "municipal-portal"),
		cache:  NewResponseCache(time.Minute),
		files:  storage.NewMemoryStorage("http://example.com/files"),
	}
	for _, u := range []db.User{
		{Email: "admin@example.gov", Role: auth.RoleAdmin, PasswordHash: testHash},
		{Email: "editor@example.gov", Role: auth.RoleEditor, PasswordHash: testHash},
		{Email: "viewer@example.gov", Role: auth.RoleViewer, PasswordHash: testHash},
	} {
		require.NoError(t, env.system.InsertUser(context.Background(), &u))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := cms.NewManager(cms.Stores{
		System:        env.system,
		HeroSlides:    cmstest.NewTable[db.HeroSlide, *db.HeroSlide](now),
		News:          news,
		FAQs:          env.faqs,
		Officials:     cmstest.NewTable[db.Official, *db.Official](now),
		Departments:   cmstest.NewTable[db.Department, *db.Department](now),
		Barangays:     cmstest.NewTable[db.Barangay, *db.Barangay](now),
		Documents:     cmstest.NewTable[db.Document, *db.Document](now),
		History:       cmstest.NewTable[db.HistoryEntry, *db.HistoryEntry](now),
		VisionMission: cmstest.NewTable[db.VisionMission, *db.VisionMission](now),
		Tourism:       cmstest.NewTable[db.TourismListing, *db.TourismListing](now),
		Services:      cmstest.NewTable[db.Service, *db.Service](now),
		Menus:         cmstest.NewTable[db.MenuItem, *db.MenuItem](now),
	}, cms.Options{
		Tokens:      env.tokens,
		Files:       env.files,
		Revalidator: env.cache,
		Logger:      logger,
		Now:         func() time.Time { return now },
	})

	env.e = NewServer(m, logger, Config{CookieName: "session", FrontendDir: t.TempDir()}, Options{
		Cache: env.cache,
		Files: env.files,
	}).RegisterRoutes()

	return env
}

func (env *testEnv) token(t *testing.T, userID int, email, role string) string {
	t.Helper()
	token, _, err := env.tokens.Issue(userID, email, role)
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) Result {
	t.Helper()
	res := Result{Data: data}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return res
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServiceRoutes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/api/v1/public/home"`)

	env.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")
	rec = env.do(httptest.NewRequest(http.MethodGet, "/metrics", nil), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `municipal_portal_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestSignIn_JSON(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Success", func(t *testing.T) {
		rec := env.do(jsonRequest(http.MethodPost, "/auth/sign-in", SignInRequest{Email: "editor@example.gov", Password: testPassword}), "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var session struct {
			Redirect string  `json:"redirect"`
			User     db.User `json:"user"`
		}
		res := decode(t, rec, &session)
		assert.True(t, res.Success)
		assert.Equal(t, "/dashboard", session.Redirect)
		assert.Equal(t, "editor@example.gov", session.User.Email)
		assert.NotContains(t, rec.Body.String(), "passwordHash")

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "session", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.AddCookie(cookies[0])
		me := env.do(req, "")
		assert.Equal(t, http.StatusOK, me.Code)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		rec := env.do(jsonRequest(http.MethodPost, "/auth/sign-in", SignInRequest{Email: "editor@example.gov", Password: "nope-nope"}), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		res := decode(t, rec, nil)
		assert.False(t, res.Success)
		assert.Equal(t, "invalid email or password", res.Error)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("MissingFields", func(t *testing.T) {
		rec := env.do(jsonRequest(http.MethodPost, "/auth/sign-in", SignInRequest{}), "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		res := decode(t, rec, nil)
		assert.Contains(t, res.Fields, "email")
	})
}

func TestSignIn_Form(t *testing.T) {
	env := newTestEnv(t)

	form := func(email, password string) *http.Request {
		v := url.Values{"email": {email}, "password": {password}}
		req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", strings.NewReader(v.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		return req
	}

	rec := env.do(form("admin@example.gov", testPassword), "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	assert.Len(t, rec.Result().Cookies(), 1)

	rec = env.do(form("admin@example.gov", "wrong-password"), "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderLocation), "/sign-in?error="))
	assert.Empty(t, rec.Result().Cookies())
}

func TestSignOut(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, 2, "editor@example.gov", auth.RoleEditor)

	rec := env.do(jsonRequest(http.MethodPost, "/auth/sign-out", nil), token)
	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Equal(t, []string{"users:sign_out"}, env.system.Actions())
}

func TestPages(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, 1, "admin@example.gov", auth.RoleAdmin)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/dashboard/news", nil), "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get(echo.HeaderLocation))

	rec = env.do(httptest.NewRequest(http.MethodGet, "/sign-in", nil), token)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))

	// a deleted user's token no longer counts as a session
	_, err := env.system.DeleteUser(context.Background(), 1)
	require.NoError(t, err)
	rec = env.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), token)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get(echo.HeaderLocation))
}

func TestAdmin_Access(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/faqs", nil), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	viewer := env.token(t, 3, "viewer@example.gov", auth.RoleViewer)
	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/faqs", nil), viewer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// the back office shell stays reachable for viewers
	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil), viewer)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/sidebar", nil), viewer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sections []cms.SidebarSection
	decode(t, rec, &sections)
	require.Len(t, sections, 1)
	assert.Equal(t, "/dashboard", sections[0].Links[0].Href)
	rec = env.do(jsonRequest(http.MethodPut, "/api/v1/admin/me/password", map[string]string{
		"currentPassword": testPassword, "newPassword": "another-long-secret",
	}), viewer)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	editor := env.token(t, 2, "editor@example.gov", auth.RoleEditor)
	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil), editor)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// role comes from the user row, not from the token
	promoted := env.token(t, 3, "viewer@example.gov", auth.RoleAdmin)
	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil), promoted)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := env.token(t, 1, "admin@example.gov", auth.RoleAdmin)
	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/users?role=editor", nil), admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page cms.Page[db.User]
	decode(t, rec, &page)
	assert.Equal(t, 1, page.Total)
}

func TestAdmin_CollectionCRUD(t *testing.T) {
	env := newTestEnv(t)
	editor := env.token(t, 2, "editor@example.gov", auth.RoleEditor)

	rec := env.do(jsonRequest(http.MethodPost, "/api/v1/admin/faqs", map[string]any{"question": "Office hours?", "answer": "8 to 5", "status": "published"}), editor)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created db.FAQ
	decode(t, rec, &created)
	assert.Equal(t, 1, created.ID)

	rec = env.do(jsonRequest(http.MethodPost, "/api/v1/admin/faqs", map[string]any{"answer": "no question"}), editor)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	res := decode(t, rec, nil)
	assert.Equal(t, "is required", res.Fields["question"])

	rec = env.do(jsonRequest(http.MethodPut, "/api/v1/admin/faqs/1", map[string]any{"question": "Office hours?", "answer": "8 to 6"}), editor)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/faqs?q=office&status=published&limit=5", nil), editor)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page cms.Page[db.FAQ]
	decode(t, rec, &page)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, "8 to 6", page.Items[0].Answer)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/faqs?status=deleted", nil), editor)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/faqs/abc", nil), editor)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/faqs/1", nil), editor)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/faqs/1", nil), editor)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	env.faqs.Err = db.ErrConflict
	rec = env.do(jsonRequest(http.MethodPost, "/api/v1/admin/faqs", map[string]any{"question": "Q", "answer": "A"}), editor)
	assert.Equal(t, http.StatusConflict, rec.Code)

	assert.Equal(t, []string{"faqs:create", "faqs:update", "faqs:delete"}, env.system.Actions())
}

func TestPublic_CacheRevalidation(t *testing.T) {
	env := newTestEnv(t)
	editor := env.token(t, 2, "editor@example.gov", auth.RoleEditor)

	get := func() *httptest.ResponseRecorder {
		return env.do(httptest.NewRequest(http.MethodGet, "/api/v1/public/faqs", nil), "")
	}

	rec := get()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	rec = get()
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	var page cms.Page[db.FAQ]
	decode(t, rec, &page)
	assert.Equal(t, 0, page.Total)

	rec = env.do(jsonRequest(http.MethodPost, "/api/v1/admin/faqs", map[string]any{"question": "Q", "answer": "A", "status": "published"}), editor)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = get()
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	decode(t, rec, &page)
	assert.Equal(t, 1, page.Total)
}

func TestPublic_Routes(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/v1/public/home", "/api/v1/public/settings", "/api/v1/public/menus/header",
		"/api/v1/public/news", "/api/v1/public/documents?kind=ordinance", "/api/v1/public/tourism?kind=event",
		"/api/v1/public/hero-slides", "/api/v1/public/vision-mission",
	} {
		rec := env.do(httptest.NewRequest(http.MethodGet, path, nil), "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/public/menus/sidebar", nil), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/public/faqs?kind=x", nil), "")
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "is not supported by faqs", decode(t, rec, nil).Fields["kind"])

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/public/news/missing-slug", nil), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	editor := env.token(t, 2, "editor@example.gov", auth.RoleEditor)
	rec = env.do(jsonRequest(http.MethodPost, "/api/v1/admin/news", map[string]any{"title": "2024", "content": "Year in review", "status": "published"}), editor)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	for _, key := range []string{"1", "2024"} {
		rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/public/news/"+key, nil), "")
		require.Equal(t, http.StatusOK, rec.Code, key)
		var n db.News
		decode(t, rec, &n)
		assert.Equal(t, "2024", n.Slug, key)
	}
	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/public/news/7", nil), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/public/settings", nil), "")
	var settings db.SiteSettings
	decode(t, rec, &settings)
	assert.Equal(t, db.DefaultSiteSettings().SiteName, settings.SiteName)
}

func TestAdmin_Upload(t *testing.T) {
	env := newTestEnv(t)
	editor := env.token(t, 2, "editor@example.gov", auth.RoleEditor)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("kind", "image"))
	require.NoError(t, w.WriteField("folder", "hero"))
	fw, err := w.CreateFormFile("file", "slide.png")
	require.NoError(t, err)
	_, err = fw.Write(png)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := env.do(req, editor)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res cms.UploadResult
	decode(t, rec, &res)
	assert.Equal(t, "image/png", res.ContentType)
	require.True(t, strings.HasPrefix(res.URL, "http://example.com/files/hero/"))

	rec = env.do(httptest.NewRequest(http.MethodGet, "/files/"+res.Key, nil), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, png, rec.Body.Bytes())

	rec = env.do(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/uploads?url="+url.QueryEscape(res.URL), nil), editor)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", nil), editor)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_DashboardAndSidebar(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, 1, "admin@example.gov", auth.RoleAdmin)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil), admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var d cms.Dashboard
	decode(t, rec, &d)
	assert.Equal(t, 3, d.Users)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/admin/sidebar", nil), admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var sections []cms.SidebarSection
	decode(t, rec, &sections)
	assert.Equal(t, "System", sections[len(sections)-1].Title)
}

func TestAdmin_Settings(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, 1, "admin@example.gov", auth.RoleAdmin)

	settings := db.DefaultSiteSettings()
	settings.SiteName = "San Isidro"
	rec := env.do(jsonRequest(http.MethodPut, "/api/v1/admin/settings", settings), admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/public/settings", nil), "")
	var got db.SiteSettings
	decode(t, rec, &got)
	assert.Equal(t, "San Isidro", got.SiteName)
	assert.Equal(t, "San Isidro", rec.Header().Get("X-Site-Name"))
}

func TestAPIRoutesDocumented(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	methods := map[string]bool{http.MethodGet: true, http.MethodPost: true, http.MethodPut: true, http.MethodDelete: true}
	checked := 0
	for _, r := range env.e.Routes() {
		if !methods[r.Method] || strings.Contains(r.Path, "*") {
			continue
		}
		if !strings.HasPrefix(r.Path, "/api/") && !strings.HasPrefix(r.Path, "/auth/") {
			continue
		}

		parts := strings.Split(r.Path, "/")
		for i, p := range parts {
			if name, found := strings.CutPrefix(p, ":"); found {
				parts[i] = "{" + name + "}"
			}
		}
		path := strings.Join(parts, "/")

		assert.Contains(t, doc.Paths[path], strings.ToLower(r.Method), "%s %s", r.Method, path)
		checked++
	}
	assert.Greater(t, checked, 100)
}
