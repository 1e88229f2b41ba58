package coverletters

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careercoach-backend/internal/artifacts"
	"careercoach-backend/internal/assistant"
	"careercoach-backend/internal/shared/server/middleware"
	"careercoach-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches cover-letter routes. Every route calls the generation endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cover-letters", h.generate)
}

func (h *Handler) generate(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	res, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		if errors.Is(err, assistant.ErrBusy) {
			respond.Error(c, http.StatusConflict, "in_flight", err.Error(), nil)
			return
		}
		respond.FromError(c, err)
		return
	}
	c.Set(middleware.ArtifactIDKey, res.Artifact.ID)

	respond.Created(c, gin.H{
		"coverLetter": res.Letter,
		"skills":      res.Skills,
		"artifact":    artifacts.ToResponse(res.Artifact),
	})
}
