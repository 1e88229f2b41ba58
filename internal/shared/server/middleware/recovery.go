package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"careercoach-backend/internal/shared/server/respond"
	"careercoach-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500. A client that went away during a
// long render aborts with http.ErrAbortHandler, which is not logged as a crash.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				c.Abort()
				return
			}
			telemetry.Error("panic", map[string]any{
				"request_id":    RequestIDFromContext(c),
				"user_id":       UserIDFromContext(c),
				"route":         c.FullPath(),
				"render_job_id": c.GetString(RenderJobIDKey),
				"error":         fmt.Sprint(rec),
				"stack":         string(debug.Stack()),
			})
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
