package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/municipal-portal/internal/cms"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

type UserListFilter struct {
	Q      string
	Role   string
	Limit  int
	Offset int
}

type AuditFilter struct {
	Action string
	Entity string
	UserID *int `urlstruct:"userId"`
	Q      string
	Limit  int
	Offset int
}

func (s *Server) registerSystemRoutes(g *echo.Group) {
	g.GET("/users", s.Users)
	g.GET("/users/:id", s.User)
	g.POST("/users", s.CreateUser)
	g.PUT("/users/:id", s.UpdateUser)
	g.DELETE("/users/:id", s.DeleteUser)
	g.GET("/audit-logs", s.AuditLogs)
	g.GET("/settings", s.AdminSettings)
	g.PUT("/settings", s.UpdateSettings)
}

// Users handles GET /api/v1/admin/users
// @Summary List users
// @Tags system
// @Produce json
// @Param q query string false "Search by email or name"
// @Param role query string false "Role filter"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} rest.Result{data=cms.Page[db.User]}
// @Failure 400,401,403,500 {object} rest.Result
// @Router /api/v1/admin/users [get]
func (s *Server) Users(c echo.Context) error {
	var f UserListFilter
	if err := bindFilter(c, &f); err != nil {
		return s.handleError(c, err)
	}

	page, err := s.m.Users(c.Request().Context(), actor(c), cms.UserFilter{
		Search: f.Q, Role: f.Role, Limit: f.Limit, Offset: f.Offset,
	})
	if err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, page)
}

func (s *Server) User(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.handleError(c, err)
	}

	user, err := s.m.User(c.Request().Context(), actor(c), id)
	if err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, user)
}

// CreateUser handles POST /api/v1/admin/users
// @Summary Create a user
// @Tags system
// @Accept json
// @Produce json
// @Param request body cms.UserInput true "User"
// @Success 201 {object} rest.Result{data=db.User}
// @Failure 400,401,403,409,500 {object} rest.Result
// @Router /api/v1/admin/users [post]
func (s *Server) CreateUser(c echo.Context) error {
	var in cms.UserInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := s.m.CreateUser(c.Request().Context(), actor(c), in)
	if err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusCreated, user)
}

func (s *Server) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.handleError(c, err)
	}

	var in cms.UserInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := s.m.UpdateUser(c.Request().Context(), actor(c), id, in)
	if err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, user)
}

func (s *Server) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.handleError(c, err)
	}

	if err := s.m.DeleteUser(c.Request().Context(), actor(c), id); err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, map[string]int{"id": id})
}

// AuditLogs handles GET /api/v1/admin/audit-logs
// @Summary Audit log viewer
// @Tags system
// @Produce json
// @Param action query string false "Action filter"
// @Param entity query string false "Entity filter"
// @Param userId query int false "User filter"
// @Param q query string false "Search"
// @Success 200 {object} rest.Result{data=cms.Page[db.AuditLog]}
// @Failure 400,401,403,500 {object} rest.Result
// @Router /api/v1/admin/audit-logs [get]
func (s *Server) AuditLogs(c echo.Context) error {
	var f AuditFilter
	if err := bindFilter(c, &f); err != nil {
		return s.handleError(c, err)
	}

	page, err := s.m.AuditLogs(c.Request().Context(), actor(c), db.AuditFilter{
		Action: f.Action, Entity: f.Entity, UserID: f.UserID, Search: f.Q, Limit: f.Limit, Offset: f.Offset,
	})
	if err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, page)
}

func (s *Server) AdminSettings(c echo.Context) error {
	settings, err := s.m.Branding(c.Request().Context())
	if err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/v1/admin/settings
// @Summary Update site branding
// @Tags system
// @Accept json
// @Produce json
// @Param request body db.SiteSettings true "Settings"
// @Success 200 {object} rest.Result{data=db.SiteSettings}
// @Failure 400,401,403,500 {object} rest.Result
// @Router /api/v1/admin/settings [put]
func (s *Server) UpdateSettings(c echo.Context) error {
	var in db.SiteSettings
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	saved, err := s.m.UpdateBranding(c.Request().Context(), actor(c), in)
	if err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, saved)
}
