package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	DatabaseURL     string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	LLMProvider string
	LLMModel    string
	LLMAPIKey   string
	LLMBaseURL  string
	LLMTimeout  time.Duration

	PDFAPIKey          string
	PDFBaseURL         string
	PDFTemplateID      int
	PDFMode            string
	PDFAsync           bool
	PDFPollInterval    time.Duration
	PDFPollMaxAttempts int

	FetchTimeout time.Duration

	AuthJWTSecret string

	GenerationRatePerMinute float64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	provider := normalizeProvider(getEnv("LLM_PROVIDER", "openai"))

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             env,
		DatabaseURL:     dbURL,

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),

		LLMProvider: provider,
		LLMModel:    getEnv("LLM_MODEL", ""),
		LLMAPIKey:   apiKeyFor(provider),
		LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
		LLMTimeout:  getSeconds("LLM_TIMEOUT_SECONDS", 120*time.Second),

		PDFAPIKey:          getEnv("PDF_API_KEY", ""),
		PDFBaseURL:         getEnv("PDF_BASE_URL", "https://api.pdf.co/v1"),
		PDFTemplateID:      getInt("PDF_TEMPLATE_ID", 0),
		PDFMode:            normalizePDFMode(getEnv("PDF_MODE", "template")),
		PDFAsync:           getBool("PDF_ASYNC", true),
		PDFPollInterval:    getDuration("PDF_POLL_INTERVAL", 3*time.Second),
		PDFPollMaxAttempts: getInt("PDF_POLL_MAX_ATTEMPTS", 10),

		FetchTimeout: getSeconds("FETCH_TIMEOUT_SECONDS", 30*time.Second),

		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),

		GenerationRatePerMinute: getFloat("RATE_LIMIT_GENERATION_PER_MINUTE", 10),
	}
}

func apiKeyFor(provider string) string {
	if provider == "anthropic" {
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return os.Getenv("OPENAI_API_KEY")
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config env %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config env %s invalid float: %v", key, err)
		return def
	}
	return val
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config env %s invalid bool: %v", key, err)
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		log.Printf("config env %s invalid duration: %q", key, raw)
		return def
	}
	return val
}

func getSeconds(key string, def time.Duration) time.Duration {
	secs := getInt(key, 0)
	if secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "anthropic", "claude":
		return "anthropic"
	default:
		return "openai"
	}
}

func normalizePDFMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "html":
		return "html"
	default:
		return "template"
	}
}
