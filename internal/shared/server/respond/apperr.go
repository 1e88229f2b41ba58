package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careercoach-backend/internal/shared/apperr"
)

// StatusFor maps a classified pipeline error to an HTTP status and code.
func StatusFor(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest, "validation_error"
	case apperr.KindConfiguration:
		return http.StatusPreconditionFailed, "not_configured"
	case apperr.KindTransport:
		return http.StatusBadGateway, "transport_error"
	case apperr.KindUpstream:
		return http.StatusBadGateway, "upstream_error"
	case apperr.KindTimeout:
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// FromError writes err using StatusFor. Unclassified errors never leak their text.
func FromError(c *gin.Context, err error) {
	status, code := StatusFor(err)
	msg := apperr.MessageOf(err)
	if status == http.StatusInternalServerError {
		msg = "Unexpected server error"
	}
	Error(c, status, code, msg, gin.H{"kind": string(apperr.KindOf(err))})
}
