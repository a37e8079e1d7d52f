package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	fs "github.com/reoring/fieldshape"
	"github.com/reoring/fieldshape/dto"
	"github.com/reoring/fieldshape/middleware"
)

// ValidateJSON loads the request body with d, stores the result in the
// request context, and on validation failure returns 400 with the error
// payload.
func ValidateJSON(d dto.DTO) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := middleware.Decode(c.Request.Context(), d, c.Request.Body)
		if err != nil {
			if iss, ok := fs.AsIssues(err); ok {
				c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), v))
		c.Next()
	}
}

// GetDecoded fetches the loaded payload from gin.Context.
func GetDecoded(c *gin.Context) (map[string]any, bool) {
	return middleware.DecodedFromContext(c.Request.Context())
}
