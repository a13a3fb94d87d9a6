package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) registerPages(e *echo.Echo) {
	e.Static(staticPathPrefix, s.cfg.FrontendDir)

	e.GET(signInPage, s.SignInPage, s.withBranding)
	e.GET(dashboardPage, s.DashboardPage, s.withBranding)
	e.GET(dashboardPage+"/*", s.DashboardPage, s.withBranding)
	e.GET("/", s.IndexPage, s.withBranding)
}

// SignInPage sends signed-in users straight to the dashboard.
func (s *Server) SignInPage(c echo.Context) error {
	if currentUser(c) != nil {
		return c.Redirect(http.StatusFound, dashboardPage)
	}
	return c.File(s.frontendFile("sign-in.html"))
}

// DashboardPage serves the back office shell to signed-in users only.
func (s *Server) DashboardPage(c echo.Context) error {
	if currentUser(c) == nil {
		return c.Redirect(http.StatusFound, signInPage)
	}
	return c.File(s.frontendFile("dashboard.html"))
}

func (s *Server) IndexPage(c echo.Context) error {
	return c.File(s.frontendFile("index.html"))
}
