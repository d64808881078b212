package echomw

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/reoring/jsvalid/middleware"
)

func TestValidateJSON(t *testing.T) {
	v, err := middleware.New(`{"type":"object","required":["id"]}`)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	e := echo.New()
	e.POST("/items", func(c echo.Context) error {
		body, ok := GetDecoded(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, body)
	}, ValidateJSON(v))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"id":1}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"Missing required property 'id'"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
