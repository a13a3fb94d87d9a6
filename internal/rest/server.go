package rest

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/cms"
	"github.com/daniilsolovey/municipal-portal/internal/storage"
)

const (
	apiV1Prefix = "/api/v1"
	publicPath  = apiV1Prefix + "/public"
	adminPath   = apiV1Prefix + "/admin"

	signInPage    = "/sign-in"
	dashboardPage = "/dashboard"

	staticPathPrefix = "/static"
	filesPathPrefix  = "/files"
	healthPath       = "/health"
	swaggerPath      = "/swagger/doc.json"
	rpcPath          = "/rpc/"
	metricsPath      = "/metrics"

	defaultCookieName = "portal_session"
	defaultBodyLimit  = "25M"
)

type Config struct {
	CookieName   string
	SecureCookie bool
	FrontendDir  string
	// Sentry enables the sentry middleware. sentry.Init must have been called.
	Sentry bool
}

type Server struct {
	m       *cms.Manager
	log     *slog.Logger
	cfg     Config
	cache   *ResponseCache
	rpc     http.Handler
	files   *storage.MemoryStorage
	metrics metrics
	reg     *prometheus.Registry
}

// Options carries the optional collaborators of the server.
type Options struct {
	Cache *ResponseCache
	// RPC is mounted at /rpc/ when set.
	RPC http.Handler
	// Files serves objects of an in-memory storage under /files when set.
	Files *storage.MemoryStorage
}

func NewServer(m *cms.Manager, logger *slog.Logger, cfg Config, opts Options) *Server {
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.FrontendDir == "" {
		cfg.FrontendDir = "./frontend"
	}
	if opts.Cache == nil {
		opts.Cache = NewResponseCache(0)
	}

	reg := prometheus.NewRegistry()
	return &Server{
		m:       m,
		log:     logger,
		cfg:     cfg,
		cache:   opts.Cache,
		rpc:     opts.RPC,
		files:   opts.Files,
		metrics: newMetrics(reg),
		reg:     reg,
	}
}

// RegisterRoutes builds the echo instance with every route of the service.
func (s *Server) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	if s.cfg.Sentry {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true, Timeout: 2 * time.Second}))
	}
	e.Use(s.loggingMiddleware)
	e.Use(middleware.BodyLimit(defaultBodyLimit))
	e.Use(s.loadSession)

	s.registerPublicRoutes(e.Group(publicPath, s.withBranding, s.cache.Middleware(publicPath)))
	s.registerAuthRoutes(e.Group("/auth"))
	s.registerAccountRoutes(e.Group(adminPath, requireRole(auth.RoleViewer)))
	s.registerAdminRoutes(e.Group(adminPath, requireRole(auth.RoleEditor)))
	s.registerSystemRoutes(e.Group(adminPath, requireRole(auth.RoleAdmin)))
	s.registerPages(e)
	s.registerServiceRoutes(e)

	return e
}

func (s *Server) registerServiceRoutes(e *echo.Echo) {
	e.GET(healthPath, s.handleHealth)
	e.GET(swaggerPath, s.handleSwagger)
	e.GET(metricsPath, echo.WrapHandler(promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{})))

	if s.rpc != nil {
		e.Any(rpcPath, echo.WrapHandler(s.rpc))
	}
	if s.files != nil {
		e.GET(filesPathPrefix+"/*", s.handleFile)
	}
}

// handleHealth handles GET /health
// @Summary Health check
// @Tags service
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSwagger(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return s.handleError(c, err)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
}

func (s *Server) handleFile(c echo.Context) error {
	obj, found := s.files.Get(c.Param("*"))
	if !found {
		return fail(c, http.StatusNotFound, "file not found")
	}
	return c.Blob(http.StatusOK, obj.ContentType, obj.Data)
}

func (s *Server) frontendFile(name string) string {
	return filepath.Join(s.cfg.FrontendDir, name)
}
