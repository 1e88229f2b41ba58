package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careercoach-backend/internal/shared/telemetry"
)

// ErrorBody is the error object every failed request returns.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// context keys shared with the middleware package, which imports respond.
var logKeys = map[string]string{
	"requestId":   "request_id",
	"userId":      "user_id",
	"artifactId":  "artifact_id",
	"llmProvider": "llm_provider",
	"renderJobId": "render_job_id",
}

// Error logs and aborts with {error:{code,message,details}}. Client errors are
// logged at warn, server and upstream failures at error.
func Error(c *gin.Context, status int, code, message string, details any) {
	fields := map[string]any{
		"status":  status,
		"code":    code,
		"message": message,
		"path":    c.Request.URL.Path,
		"method":  c.Request.Method,
	}
	for key, field := range logKeys {
		if v := c.GetString(key); v != "" {
			fields[field] = v
		}
	}
	if isGuest, ok := c.Get("isGuest"); ok {
		fields["is_guest"] = isGuest
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message, Details: details},
	})
}
