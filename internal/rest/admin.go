package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/municipal-portal/internal/cms"
	"github.com/daniilsolovey/municipal-portal/internal/db"
	"github.com/daniilsolovey/municipal-portal/internal/storage"
)

func (s *Server) registerAdminRoutes(g *echo.Group) {
	registerCollection(g, s, "/hero-slides", s.m.HeroSlides)
	registerCollection(g, s, "/news", s.m.News)
	registerCollection(g, s, "/faqs", s.m.FAQs)
	registerCollection(g, s, "/officials", s.m.Officials)
	registerCollection(g, s, "/departments", s.m.Departments)
	registerCollection(g, s, "/barangays", s.m.Barangays)
	registerCollection(g, s, "/documents", s.m.Documents)
	registerCollection(g, s, "/executive-orders", s.m.ExecutiveOrders)
	registerCollection(g, s, "/ordinances", s.m.Ordinances)
	registerCollection(g, s, "/history", s.m.History)
	registerCollection(g, s, "/vision-mission", s.m.VisionMission)
	registerCollection(g, s, "/tourism", s.m.Tourism)
	registerCollection(g, s, "/tourism-events", s.m.TourismEvents)
	registerCollection(g, s, "/services", s.m.Services)
	registerCollection(g, s, "/menus", s.m.Menus)

	g.POST("/uploads", s.Upload)
	g.DELETE("/uploads", s.DeleteUpload)
}

// registerAccountRoutes wires the back office shell every signed-in role can reach.
func (s *Server) registerAccountRoutes(g *echo.Group) {
	g.GET("/dashboard", s.Dashboard)
	g.GET("/sidebar", s.Sidebar)
	g.PUT("/me/password", s.ChangePassword)
}

type collectionHandler[T any, P db.ContentPtr[T]] struct {
	s   *Server
	col *cms.Collection[T, P]
}

// registerCollection wires the data table and form dialog endpoints of one collection.
func registerCollection[T any, P db.ContentPtr[T]](g *echo.Group, s *Server, path string, col *cms.Collection[T, P]) {
	h := collectionHandler[T, P]{s: s, col: col}
	g.GET(path, h.list)
	g.GET(path+"/:id", h.get)
	g.POST(path, h.create)
	g.PUT(path+"/:id", h.update)
	g.DELETE(path+"/:id", h.delete)
}

func (h collectionHandler[T, P]) list(c echo.Context) error {
	var f ListFilter
	if err := bindFilter(c, &f); err != nil {
		return h.s.handleError(c, err)
	}

	page, err := h.col.List(c.Request().Context(), f.query())
	if err != nil {
		return h.s.handleError(c, err)
	}

	return ok(c, http.StatusOK, page)
}

func (h collectionHandler[T, P]) get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.s.handleError(c, err)
	}

	row, err := h.col.Get(c.Request().Context(), id)
	if err != nil {
		return h.s.handleError(c, err)
	}

	return ok(c, http.StatusOK, row)
}

func (h collectionHandler[T, P]) create(c echo.Context) error {
	row := new(T)
	if err := c.Bind(row); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	created, err := h.col.Create(c.Request().Context(), actor(c), row)
	if err != nil {
		return h.s.handleError(c, err)
	}

	return ok(c, http.StatusCreated, created)
}

func (h collectionHandler[T, P]) update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.s.handleError(c, err)
	}

	row := new(T)
	if err := c.Bind(row); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	updated, err := h.col.Update(c.Request().Context(), actor(c), id, row)
	if err != nil {
		return h.s.handleError(c, err)
	}

	return ok(c, http.StatusOK, updated)
}

func (h collectionHandler[T, P]) delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.s.handleError(c, err)
	}

	if err := h.col.Delete(c.Request().Context(), actor(c), id); err != nil {
		return h.s.handleError(c, err)
	}

	return ok(c, http.StatusOK, map[string]int{"id": id})
}

// Dashboard handles GET /api/v1/admin/dashboard
// @Summary Dashboard counts and recent activity
// @Tags admin
// @Produce json
// @Success 200 {object} rest.Result{data=cms.Dashboard}
// @Failure 401,403,500 {object} rest.Result
// @Router /api/v1/admin/dashboard [get]
func (s *Server) Dashboard(c echo.Context) error {
	d, err := s.m.Dashboard(c.Request().Context(), actor(c))
	if err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, d)
}

// Sidebar handles GET /api/v1/admin/sidebar
// @Summary Back office navigation for the current role
// @Tags admin
// @Produce json
// @Success 200 {object} rest.Result{data=[]cms.SidebarSection}
// @Router /api/v1/admin/sidebar [get]
func (s *Server) Sidebar(c echo.Context) error {
	return ok(c, http.StatusOK, cms.Sidebar(currentUser(c).Role))
}

// Upload handles POST /api/v1/admin/uploads
// @Summary Upload an image or document
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param kind formData string true "image or document"
// @Param folder formData string true "Target folder"
// @Success 201 {object} rest.Result{data=cms.UploadResult}
// @Failure 400,401,403,500 {object} rest.Result
// @Router /api/v1/admin/uploads [post]
func (s *Server) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return s.handleError(c, &cms.ValidationError{Fields: map[string]string{"file": "is required"}})
	}

	src, err := fh.Open()
	if err != nil {
		return s.handleError(c, err)
	}
	defer src.Close()

	res, err := s.m.Upload(c.Request().Context(), actor(c), cms.UploadInput{
		Kind:     storage.Kind(c.FormValue("kind")),
		Folder:   c.FormValue("folder"),
		Filename: fh.Filename,
		Body:     src,
		Size:     fh.Size,
	})
	if err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusCreated, res)
}

// DeleteUpload handles DELETE /api/v1/admin/uploads?url=
// @Summary Delete an uploaded file
// @Tags admin
// @Produce json
// @Param url query string true "Public URL returned by the upload"
// @Success 200 {object} rest.Result
// @Failure 400,401,403,500 {object} rest.Result
// @Router /api/v1/admin/uploads [delete]
func (s *Server) DeleteUpload(c echo.Context) error {
	if err := s.m.DeleteFile(c.Request().Context(), actor(c), c.QueryParam("url")); err != nil {
		return s.handleError(c, err)
	}

	return ok(c, http.StatusOK, nil)
}
