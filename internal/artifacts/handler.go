package artifacts

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"careercoach-backend/internal/shared/apperr"
	"careercoach-backend/internal/shared/server/middleware"
	"careercoach-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches artifact routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/artifacts", h.list)
	rg.GET("/artifacts/:id", h.get)
	rg.DELETE("/artifacts/:id", h.remove)
	rg.GET("/artifacts/:id/download", h.download)
}

// Response is the JSON shape of an artifact.
type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	URL       string    `json:"url"`
	Metadata  Metadata  `json:"metadata"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToResponse converts an artifact for the API.
func ToResponse(a Artifact) Response {
	return Response{
		ID:        a.ID,
		Name:      a.Name,
		Type:      a.Type,
		URL:       a.URL,
		Metadata:  a.Metadata,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	typ, ok := ParseType(c.Query("type"))
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "type must be resume or cover-letter", nil)
		return
	}

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), userID, typ, limit, offset)
	if err != nil {
		h.fail(c, err, "failed to list artifacts")
		return
	}

	resp := make([]Response, 0, len(items))
	for _, a := range items {
		resp = append(resp, ToResponse(a))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	c.Set(middleware.ArtifactIDKey, c.Param("id"))
	artifact, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to fetch artifact")
		return
	}
	respond.JSON(c, http.StatusOK, ToResponse(artifact))
}

func (h *Handler) remove(c *gin.Context) {
	c.Set(middleware.ArtifactIDKey, c.Param("id"))
	if err := h.Svc.Remove(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id")); err != nil {
		h.fail(c, err, "failed to delete artifact")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) download(c *gin.Context) {
	c.Set(middleware.ArtifactIDKey, c.Param("id"))
	dl, err := h.Svc.Open(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to download artifact")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.FileName))
	c.Data(http.StatusOK, dl.ContentType, dl.Body)
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case IsMissing(err):
		respond.Error(c, http.StatusNotFound, "not_found", "artifact not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case apperr.KindOf(err) != "":
		respond.FromError(c, err)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
