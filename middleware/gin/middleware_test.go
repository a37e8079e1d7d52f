package ginmw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/reoring/fieldshape/dsl"
	"github.com/reoring/fieldshape/dto"
	ginmw "github.com/reoring/fieldshape/middleware/gin"
)

func TestValidateJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	d := dto.DTO{Schema: dsl.Schema("Ping").Field("n", dsl.Integer()).Required().MustBuild()}
	r := gin.New()
	r.POST("/", ginmw.ValidateJSON(d), func(c *gin.Context) {
		v, ok := ginmw.GetDecoded(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, v)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"n":1}`)))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"n":1`) {
		t.Fatalf("ok path: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"n":"x"}`)))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "invalid_type") {
		t.Fatalf("invalid path: %d %s", rec.Code, rec.Body.String())
	}
}
