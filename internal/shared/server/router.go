package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careercoach-backend/internal/artifacts"
	"careercoach-backend/internal/assistant"
	"careercoach-backend/internal/coverletters"
	"careercoach-backend/internal/resumes"
	"careercoach-backend/internal/services/health"
	"careercoach-backend/internal/shared/auth"
	"careercoach-backend/internal/shared/config"
	"careercoach-backend/internal/shared/metrics"
	"careercoach-backend/internal/shared/server/middleware"
	"careercoach-backend/internal/shared/server/respond"
)

const generationGroup = "GENERATION"

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config             config.Config
	Verifier           *auth.Verifier
	Health             *health.Service
	AssistantHandler   *assistant.Handler
	ArtifactHandler    *artifacts.Handler
	CoverLetterHandler *coverletters.Handler
	ResumeHandler      *resumes.Handler
	RateLimiter        *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Health and metrics are served without identity; everything else requires it.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		report := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})
	api.GET("/metrics", metrics.Handler())

	authed := api.Group("")
	authed.Use(middleware.Auth(deps.Verifier))
	var sessions *assistant.Manager
	if deps.AssistantHandler != nil {
		sessions = deps.AssistantHandler.Sessions
	}
	registerMeRoutes(authed, sessions)
	if deps.ArtifactHandler != nil {
		deps.ArtifactHandler.RegisterRoutes(authed)
	}
	if deps.AssistantHandler != nil {
		deps.AssistantHandler.RegisterRoutes(authed)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(authed)
	}

	generation := authed.Group("")
	generation.Use(func(c *gin.Context) {
		c.Set(middleware.ProviderKey, deps.Config.LLMProvider)
		c.Next()
	})
	if rule := middleware.PerMinute(deps.Config.GenerationRatePerMinute); rule.Rate > 0 {
		generation.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        map[string]middleware.RateLimitRule{generationGroup: rule},
			DefaultGroup: generationGroup,
			Limiter:      deps.RateLimiter,
		}))
	}
	if deps.AssistantHandler != nil {
		deps.AssistantHandler.RegisterGenerationRoutes(generation)
	}
	if deps.CoverLetterHandler != nil {
		deps.CoverLetterHandler.RegisterRoutes(generation)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterGenerationRoutes(generation)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
