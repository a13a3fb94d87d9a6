package rest

import (
	"errors"
	"net/http"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/municipal-portal/internal/cms"
)

// Result is the envelope of every JSON response.
type Result struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, Result{Success: true, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Result{Error: message})
}

// statusOf maps action errors to HTTP status codes.
func statusOf(err error) int {
	var verr *cms.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, cms.ErrInvalidCredentials), errors.Is(err, cms.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, cms.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, cms.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, cms.ErrConflict):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

func (s *Server) handleError(c echo.Context, err error) error {
	status := statusOf(err)
	res := Result{Error: cms.Message(err)}

	var verr *cms.ValidationError
	if errors.As(err, &verr) {
		res.Fields = verr.Fields
	}

	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(c.Request().Context(), "handleError", "error", err, "statusCode", status, "path", c.Path())
		if hub := sentryecho.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	} else {
		s.log.DebugContext(c.Request().Context(), "handleError", "error", err, "statusCode", status, "path", c.Path())
	}

	return c.JSON(status, res)
}
