package rest

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/municipal-portal/internal/cms"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

type SignInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) registerAuthRoutes(g *echo.Group) {
	g.POST("/sign-in", s.SignIn)
	g.POST("/sign-out", s.SignOut)
	g.GET("/me", s.Me, s.requireSession)
}

func isForm(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEApplicationForm) || strings.HasPrefix(ct, echo.MIMEMultipartForm)
}

// SignIn handles POST /auth/sign-in
// @Summary Sign in
// @Description Form posts are redirected to the dashboard on success and back to the sign-in page otherwise. JSON posts get the session cookie and the envelope.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body rest.SignInRequest true "Credentials"
// @Success 200 {object} rest.Result{data=cms.Session}
// @Success 303
// @Failure 400,401 {object} rest.Result
// @Router /auth/sign-in [post]
func (s *Server) SignIn(c echo.Context) error {
	var req SignInRequest
	form := isForm(c)
	if err := c.Bind(&req); err != nil {
		if form {
			return c.Redirect(http.StatusSeeOther, signInPage+"?error="+url.QueryEscape("invalid request"))
		}
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	session, err := s.m.SignIn(c.Request().Context(), req.Email, req.Password, c.RealIP())
	if err != nil {
		if form {
			if statusOf(err) >= http.StatusInternalServerError {
				s.log.Error("sign in failed", "error", err)
			}
			return c.Redirect(http.StatusSeeOther, signInPage+"?error="+url.QueryEscape(cms.Message(err)))
		}
		return s.handleError(c, err)
	}

	s.setSessionCookie(c, session.Token, session.ExpiresAt)
	if form {
		return c.Redirect(http.StatusSeeOther, session.Redirect)
	}

	return ok(c, http.StatusOK, session)
}

// SignOut handles POST /auth/sign-out
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} rest.Result
// @Router /auth/sign-out [post]
func (s *Server) SignOut(c echo.Context) error {
	s.m.SignOut(c.Request().Context(), actor(c))
	s.clearSessionCookie(c)

	if isForm(c) {
		return c.Redirect(http.StatusSeeOther, signInPage)
	}
	return ok(c, http.StatusOK, nil)
}

type MeResponse struct {
	User    *db.User             `json:"user"`
	Sidebar []cms.SidebarSection `json:"sidebar"`
}

// Me handles GET /auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} rest.Result{data=rest.MeResponse}
// @Failure 401 {object} rest.Result
// @Router /auth/me [get]
func (s *Server) Me(c echo.Context) error {
	user := currentUser(c)
	return ok(c, http.StatusOK, MeResponse{User: user, Sidebar: cms.Sidebar(user.Role)})
}

// ChangePassword handles PUT /api/v1/admin/me/password
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body rest.PasswordRequest true "Passwords"
// @Success 200 {object} rest.Result
// @Failure 400,401 {object} rest.Result
// @Router /api/v1/admin/me/password [put]
func (s *Server) ChangePassword(c echo.Context) error {
	var req PasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	if err := s.m.ChangePassword(c.Request().Context(), actor(c), req.CurrentPassword, req.NewPassword); err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, nil)
}

func (s *Server) setSessionCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
