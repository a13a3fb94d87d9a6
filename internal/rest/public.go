package rest

import (
	"net/http"
	"strconv"

	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/municipal-portal/internal/cms"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

// ListFilter is decoded from the query string of list endpoints.
type ListFilter struct {
	Q      string
	Status string
	Kind   string
	Limit  int
	Offset int
}

func (f ListFilter) query() db.ListQuery {
	return db.ListQuery{Search: f.Q, Status: f.Status, Kind: f.Kind, Limit: f.Limit, Offset: f.Offset}
}

func bindFilter(c echo.Context, dst any) error {
	if err := urlstruct.Unmarshal(c.Request().Context(), c.QueryParams(), dst); err != nil {
		return &cms.ValidationError{Fields: map[string]string{"query": err.Error()}}
	}
	return nil
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, &cms.ValidationError{Fields: map[string]string{"id": "must be a positive integer"}}
	}
	return id, nil
}

func (s *Server) registerPublicRoutes(g *echo.Group) {
	g.GET("/home", s.Home)
	g.GET("/settings", s.Settings)
	g.GET("/menus/:location", s.Menu)
	g.GET("/news", publicList(s, s.m.News))
	g.GET("/news/:idOrSlug", s.NewsByIDOrSlug)
	g.GET("/faqs", publicList(s, s.m.FAQs))
	g.GET("/officials", publicList(s, s.m.Officials))
	g.GET("/departments", publicList(s, s.m.Departments))
	g.GET("/barangays", publicList(s, s.m.Barangays))
	g.GET("/documents", publicList(s, s.m.Documents))
	g.GET("/history", publicList(s, s.m.History))
	g.GET("/vision-mission", publicList(s, s.m.VisionMission))
	g.GET("/tourism", publicList(s, s.m.Tourism))
	g.GET("/services", publicList(s, s.m.Services))
	g.GET("/hero-slides", publicList(s, s.m.HeroSlides))
}

// publicList serves the published rows of a collection. The kind query parameter narrows
// documents and tourism listings.
func publicList[T any, P db.ContentPtr[T]](s *Server, col *cms.Collection[T, P]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var f ListFilter
		if err := bindFilter(c, &f); err != nil {
			return s.handleError(c, err)
		}

		page, err := col.Published(c.Request().Context(), f.query())
		if err != nil {
			return s.handleError(c, err)
		}

		return ok(c, http.StatusOK, page)
	}
}

// Home handles GET /api/v1/public/home
// @Summary Landing page content
// @Description Hero slides, latest news, FAQs, officials, upcoming events and branding in one call
// @Tags public
// @Produce json
// @Success 200 {object} rest.Result{data=cms.Home}
// @Failure 500 {object} rest.Result
// @Router /api/v1/public/home [get]
func (s *Server) Home(c echo.Context) error {
	home, err := s.m.Home(c.Request().Context())
	if err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, home)
}

// Settings handles GET /api/v1/public/settings
// @Summary Site branding
// @Tags public
// @Produce json
// @Success 200 {object} rest.Result{data=db.SiteSettings}
// @Router /api/v1/public/settings [get]
func (s *Server) Settings(c echo.Context) error {
	return ok(c, http.StatusOK, branding(c))
}

// Menu handles GET /api/v1/public/menus/:location
// @Summary Navigation tree
// @Tags public
// @Produce json
// @Param location path string true "header, footer or quick_links"
// @Success 200 {object} rest.Result{data=[]cms.MenuNode}
// @Failure 400,500 {object} rest.Result
// @Router /api/v1/public/menus/{location} [get]
func (s *Server) Menu(c echo.Context) error {
	tree, err := s.m.Menu(c.Request().Context(), c.Param("location"))
	if err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, tree)
}

// NewsByIDOrSlug handles GET /api/v1/public/news/:idOrSlug
// @Summary Published news item
// @Description Looks the item up by numeric id or by slug. A numeric key that matches no id is tried as a slug
// @Tags public
// @Produce json
// @Param idOrSlug path string true "News ID or slug"
// @Success 200 {object} rest.Result{data=db.News}
// @Failure 404,500 {object} rest.Result
// @Router /api/v1/public/news/{idOrSlug} [get]
func (s *Server) NewsByIDOrSlug(c echo.Context) error {
	ctx := c.Request().Context()
	key := c.Param("idOrSlug")

	var (
		news *db.News
		err  error
	)
	// an all-digit key is an id first; slugs like "2024" are still reachable
	if id, convErr := strconv.Atoi(key); convErr == nil {
		news, err = s.m.News.PublishedByID(ctx, id)
		if cms.IsNotFound(err) {
			news, err = s.m.NewsBySlug(ctx, key)
		}
	} else {
		news, err = s.m.NewsBySlug(ctx, key)
	}
	if err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, news)
}
