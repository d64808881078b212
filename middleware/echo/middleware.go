package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reoring/jsvalid/middleware"
)

// ValidateJSON validates the request body with v, stores the decoded value
// in context on success, or returns 400 with the issues payload.
func ValidateJSON(v *middleware.Validator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			data, vs := v.Check(c.Request().Body)
			if len(vs) > 0 {
				v.Logger().Info("request body rejected",
					"method", c.Request().Method,
					"path", c.Path(),
					"violations", len(vs))
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(vs))
			}
			ctx := middleware.ContextWithDecoded(c.Request().Context(), data)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetDecoded fetches the decoded body from echo.Context.
func GetDecoded(c echo.Context) (any, bool) {
	return middleware.DecodedFromContext(c.Request().Context())
}
