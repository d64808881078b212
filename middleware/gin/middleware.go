package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reoring/jsvalid/middleware"
)

// ValidateJSON validates the request body with v, stores the decoded value
// in the request context, and on failure aborts with 400 and the issues
// payload.
func ValidateJSON(v *middleware.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, vs := v.Check(c.Request.Body)
		if len(vs) > 0 {
			v.Logger().Info("request body rejected",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"violations", len(vs))
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorPayload(vs))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), data))
		c.Next()
	}
}

// GetDecoded fetches the decoded body from gin.Context.
func GetDecoded(c *gin.Context) (any, bool) {
	return middleware.DecodedFromContext(c.Request.Context())
}
