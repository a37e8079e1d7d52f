package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	fs "github.com/reoring/fieldshape"
	"github.com/reoring/fieldshape/dto"
	"github.com/reoring/fieldshape/middleware"
)

// ValidateJSON loads the request body with d, stores the result in the
// request context, or returns 400 with the error payload.
func ValidateJSON(d dto.DTO) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := middleware.Decode(c.Request().Context(), d, c.Request().Body)
			if err != nil {
				if iss, ok := fs.AsIssues(err); ok {
					return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				}
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			c.SetRequest(c.Request().WithContext(middleware.ContextWithDecoded(c.Request().Context(), v)))
			return next(c)
		}
	}
}

// GetDecoded fetches the loaded payload from echo.Context.
func GetDecoded(c echo.Context) (map[string]any, bool) {
	return middleware.DecodedFromContext(c.Request().Context())
}
