package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careercoach-backend/internal/assistant"
	"careercoach-backend/internal/shared/server/middleware"
	"careercoach-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches GET /me, which reports the caller's identity and
// whether their assistant has a usable API key.
func registerMeRoutes(rg *gin.RouterGroup, sessions *assistant.Manager) {
	rg.GET("/me", func(c *gin.Context) {
		userID := middleware.UserIDFromContext(c)
		if userID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		response := gin.H{
			"userId":    userID,
			"isGuest":   middleware.IsGuestFromContext(c),
			"aiEnabled": sessions != nil && sessions.For(userID).Configured(),
		}
		if email := middleware.UserEmailFromContext(c); email != "" {
			response["email"] = email
		}
		if name := middleware.UserNameFromContext(c); name != "" {
			response["name"] = name
		}
		respond.OK(c, response)
	})
}
