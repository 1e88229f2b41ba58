package assistant

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careercoach-backend/internal/conversation"
	"careercoach-backend/internal/shared/server/middleware"
	"careercoach-backend/internal/shared/server/respond"
)

// Handler exposes the owner's assistant session over HTTP.
type Handler struct {
	Sessions *Manager
}

func NewHandler(sessions *Manager) *Handler {
	return &Handler{Sessions: sessions}
}

// RegisterRoutes attaches read and configuration routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assistant/config", h.configure)
	rg.DELETE("/assistant", h.reset)
	rg.GET("/assistant/messages", h.messages)
}

// RegisterGenerationRoutes attaches routes that call the generation endpoint.
func (h *Handler) RegisterGenerationRoutes(rg *gin.RouterGroup) {
	rg.POST("/assistant/messages", h.send)
}

type configureRequest struct {
	APIKey string `json:"apiKey"`
}

func (h *Handler) configure(c *gin.Context) {
	var req configureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	session := h.Sessions.For(middleware.UserIDFromContext(c))
	if err := session.Configure(req.APIKey); err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"configured": true})
}

func (h *Handler) reset(c *gin.Context) {
	h.Sessions.For(middleware.UserIDFromContext(c)).Reset()
	respond.NoContent(c)
}

type sendRequest struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

func (h *Handler) send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	topic, ok := conversation.ParseTopic(req.Topic)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown topic", nil)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "content is required", nil)
		return
	}

	session := h.Sessions.For(middleware.UserIDFromContext(c))
	reply, err := session.Send(c.Request.Context(), topic, req.Content)
	if err != nil {
		if errors.Is(err, ErrBusy) {
			respond.Error(c, http.StatusConflict, "in_flight", err.Error(), nil)
			return
		}
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"topic": topic, "message": reply})
}

func (h *Handler) messages(c *gin.Context) {
	topic, ok := conversation.ParseTopic(c.Query("topic"))
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown topic", nil)
		return
	}
	session := h.Sessions.For(middleware.UserIDFromContext(c))
	respond.OK(c, gin.H{
		"topic":      topic,
		"configured": session.Configured(),
		"messages":   session.Messages(topic),
	})
}
