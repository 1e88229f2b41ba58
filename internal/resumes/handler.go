package resumes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careercoach-backend/internal/artifacts"
	"careercoach-backend/internal/assistant"
	"careercoach-backend/internal/shared/server/middleware"
	"careercoach-backend/internal/shared/server/respond"
	"careercoach-backend/resume/model"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches routes that neither render nor generate.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/template-data", h.templateData)
}

// RegisterGenerationRoutes attaches routes that call the renderer or the generation endpoint.
func (h *Handler) RegisterGenerationRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/render", h.render)
	rg.POST("/resumes/optimize", h.optimize)
}

func (h *Handler) render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	artifact, err := h.Svc.Render(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.ArtifactIDKey, artifact.ID)
	respond.Created(c, artifacts.ToResponse(artifact))
}

func (h *Handler) optimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	res, err := h.Svc.Optimize(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	body := gin.H{"resume": res.Resume}
	status := http.StatusOK
	if res.Artifact != nil {
		c.Set(middleware.ArtifactIDKey, res.Artifact.ID)
		body["artifact"] = artifacts.ToResponse(*res.Artifact)
		status = http.StatusCreated
	}
	respond.JSON(c, status, body)
}

func (h *Handler) templateData(c *gin.Context) {
	var resume model.ResumeData
	if err := c.ShouldBindJSON(&resume); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	respond.OK(c, h.Svc.TemplateData(resume))
}

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, assistant.ErrBusy) {
		respond.Error(c, http.StatusConflict, "in_flight", err.Error(), nil)
		return
	}
	respond.FromError(c, err)
}
