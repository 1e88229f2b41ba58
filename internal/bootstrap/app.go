package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"careercoach-backend/internal/artifacts"
	"careercoach-backend/internal/assistant"
	"careercoach-backend/internal/coverletters"
	"careercoach-backend/internal/llm"
	"careercoach-backend/internal/llm/anthropic"
	"careercoach-backend/internal/llm/openai"
	"careercoach-backend/internal/resumes"
	"careercoach-backend/internal/services/health"
	"careercoach-backend/internal/shared/auth"
	"careercoach-backend/internal/shared/config"
	"careercoach-backend/internal/shared/server"
	"careercoach-backend/internal/shared/server/middleware"
	"careercoach-backend/internal/shared/storage/db"
	"careercoach-backend/internal/shared/storage/object"
	localstore "careercoach-backend/internal/shared/storage/object/local"
	s3store "careercoach-backend/internal/shared/storage/object/s3"
	"careercoach-backend/resume/render"
)

// App holds shared dependencies and the HTTP router.
type App struct {
	Config              config.Config
	Router              *gin.Engine
	DB                  *sql.DB
	Store               object.ObjectStore
	Verifier            *auth.Verifier
	ArtifactsRepo       artifacts.Repo
	ArtifactsService    *artifacts.Service
	Sessions            *assistant.Manager
	Renderer            *render.Renderer
	CoverLettersService *coverletters.Service
	ResumesService      *resumes.Service
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	verifier, err := auth.NewVerifier(cfg.AuthJWTSecret, cfg.Env)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Verifier: verifier,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		Verifier:           app.Verifier,
		Health:             health.NewService(app.DB, strings.TrimSpace(cfg.LLMAPIKey) != "", strings.TrimSpace(cfg.PDFAPIKey) != ""),
		AssistantHandler:   assistant.NewHandler(app.Sessions),
		ArtifactHandler:    artifacts.NewHandler(app.ArtifactsService),
		CoverLetterHandler: coverletters.NewHandler(app.CoverLettersService),
		ResumeHandler:      resumes.NewHandler(app.ResumesService),
		RateLimiter:        middleware.NewRateLimiter(nil),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	cfg := app.Config

	var repo artifacts.Repo
	if app.DB != nil {
		repo = &artifacts.PGRepo{DB: app.DB}
	} else {
		repo = artifacts.NewMemoryRepo()
	}
	app.ArtifactsRepo = repo
	app.ArtifactsService = artifacts.NewService(repo, app.Store, cfg.FetchTimeout)

	app.Sessions = assistant.NewManager(ClientFactory(cfg), cfg.LLMAPIKey)
	app.Renderer = NewRenderer(cfg)
	app.CoverLettersService = coverletters.NewService(app.Sessions, app.ArtifactsService)
	app.ResumesService = resumes.NewService(app.Renderer, app.Sessions, app.ArtifactsService)
}

// ClientFactory builds generation clients for the configured provider.
func ClientFactory(cfg config.Config) llm.ClientFactory {
	params := llm.DefaultParams(cfg.LLMModel)
	return func(apiKey string) (llm.Client, error) {
		switch cfg.LLMProvider {
		case "anthropic":
			return anthropic.NewClient(anthropic.Config{
				APIKey:  apiKey,
				BaseURL: cfg.LLMBaseURL,
				Params:  params,
				Timeout: cfg.LLMTimeout,
			}), nil
		default:
			return openai.NewClient(openai.Config{
				APIKey:  apiKey,
				BaseURL: cfg.LLMBaseURL,
				Params:  params,
				Timeout: cfg.LLMTimeout,
			}), nil
		}
	}
}

// NewRenderer builds the pdf.co renderer from configuration.
func NewRenderer(cfg config.Config) *render.Renderer {
	templateID := ""
	if cfg.PDFTemplateID > 0 {
		templateID = strconv.Itoa(cfg.PDFTemplateID)
	}
	client := render.NewPDFClient(render.PDFConfig{
		APIKey:  cfg.PDFAPIKey,
		BaseURL: cfg.PDFBaseURL,
		Timeout: cfg.FetchTimeout,
	})
	return render.NewRenderer(client, render.Options{
		TemplateID: templateID,
		Mode:       render.ParseMode(cfg.PDFMode),
		Async:      cfg.PDFAsync,
		Poller:     render.NewPoller(cfg.PDFPollInterval, cfg.PDFPollMaxAttempts),
	})
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
