package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/cms"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

const (
	userKey     = "user"
	brandingKey = "branding"
)

func (s *Server) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		duration := time.Since(start)
		status := c.Response().Status
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}

		s.metrics.requests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
		s.metrics.duration.WithLabelValues(c.Request().Method, route).Observe(duration.Seconds())

		s.log.Info("HTTP request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"remote_addr", c.RealIP(),
		)

		return nil
	}
}

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) metrics {
	m := metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "municipal_portal",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "municipal_portal",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requests, m.duration)

	return m
}

// sessionToken reads the session from the cookie first, then from a bearer header.
func (s *Server) sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(s.cfg.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, found := strings.CutPrefix(h, "Bearer "); found {
		return strings.TrimSpace(token)
	}

	return ""
}

// loadSession resolves the session user when there is one. It never rejects a request.
func (s *Server) loadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := s.sessionToken(c)
		if token == "" {
			return next(c)
		}

		user, err := s.m.CurrentUser(c.Request().Context(), token)
		if err != nil && !errors.Is(err, cms.ErrUnauthorized) {
			return s.handleError(c, err)
		}
		if user != nil {
			c.Set(userKey, user)
		}

		return next(c)
	}
}

func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if currentUser(c) == nil {
			return fail(c, http.StatusUnauthorized, "sign in required")
		}
		return next(c)
	}
}

func requireRole(min string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := currentUser(c)
			if user == nil {
				return fail(c, http.StatusUnauthorized, "sign in required")
			}
			if !auth.RoleAtLeast(user.Role, min) {
				return fail(c, http.StatusForbidden, "you do not have access to this resource")
			}
			return next(c)
		}
	}
}

func currentUser(c echo.Context) *db.User {
	u, _ := c.Get(userKey).(*db.User)
	return u
}

func actor(c echo.Context) cms.Actor {
	u := currentUser(c)
	if u == nil {
		return cms.Actor{IP: c.RealIP()}
	}
	return cms.ActorFromUser(u, c.RealIP())
}

// withBranding puts the site settings into the request context.
func (s *Server) withBranding(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		settings, err := s.m.Branding(c.Request().Context())
		if err != nil {
			return s.handleError(c, err)
		}
		c.Set(brandingKey, settings)
		c.Response().Header().Set("X-Site-Name", settings.SiteName)

		return next(c)
	}
}

func branding(c echo.Context) db.SiteSettings {
	s, _ := c.Get(brandingKey).(db.SiteSettings)
	return s
}
