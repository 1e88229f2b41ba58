package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"careercoach-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	ArtifactIDKey  = "artifactId"
	ProviderKey    = "llmProvider"
	RenderJobIDKey = "renderJobId"
)

// Logging emits one structured log line per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     UserIDFromContext(c),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if isGuest, ok := c.Get(isGuestKey); ok {
			fields["is_guest"] = isGuest
		}
		for key, field := range map[string]string{
			ArtifactIDKey:  "artifact_id",
			ProviderKey:    "llm_provider",
			RenderJobIDKey: "render_job_id",
		} {
			if v := c.GetString(key); v != "" {
				fields[field] = v
			}
		}
		telemetry.Info("request.complete", fields)
	}
}
