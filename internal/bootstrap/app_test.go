package bootstrap_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"careercoach-backend/internal/bootstrap"
	"careercoach-backend/internal/shared/config"
)

func stubUpstreams(t *testing.T) (llmURL, pdfURL string) {
	t.Helper()
	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Dear Acme team"}}]}`))
	}))
	t.Cleanup(llmSrv.Close)

	pdfSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pdf/convert/from/html":
			_, _ = w.Write([]byte(`{"jobId":"job-1"}`))
		case "/job/check":
			_, _ = w.Write([]byte(`{"status":"success","url":"https://files.example/resume.pdf"}`))
		}
	}))
	t.Cleanup(pdfSrv.Close)
	return llmSrv.URL, pdfSrv.URL
}

func buildApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	llmURL, pdfURL := stubUpstreams(t)
	app, err := bootstrap.Build(config.Config{
		Port:                    "0",
		CORSAllowOrigin:         []string{"http://localhost:5173"},
		Env:                     "dev",
		ObjectStoreType:         "local",
		LocalStoreDir:           t.TempDir(),
		LLMProvider:             "openai",
		LLMAPIKey:               "sk-test",
		LLMBaseURL:              llmURL,
		PDFAPIKey:               "pdf-key",
		PDFBaseURL:              pdfURL,
		PDFTemplateID:           3469,
		PDFMode:                 "template",
		PDFAsync:                true,
		PDFPollInterval:         time.Millisecond,
		PDFPollMaxAttempts:      3,
		FetchTimeout:            5 * time.Second,
		GenerationRatePerMinute: 100,
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func send(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "guest-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCoverLetterAndResumeFlow(t *testing.T) {
	router := buildApp(t)

	letterReq := `{
		"job": {"id": "job-7", "title": "Platform Engineer", "company": "Acme Corp", "requirements": ["Go", "Kubernetes"]},
		"profile": {"name": "Ada Lovelace", "email": "ada@example.com", "skills": ["Go"]}
	}`
	w := send(router, http.MethodPost, "/api/v1/cover-letters", letterReq)
	if w.Code != http.StatusCreated {
		t.Fatalf("cover letter: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var letter struct {
		CoverLetter string `json:"coverLetter"`
		Artifact    struct {
			ID string `json:"id"`
		} `json:"artifact"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &letter); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if letter.CoverLetter != "Dear Acme team" || letter.Artifact.ID == "" {
		t.Fatalf("unexpected response %s", w.Body.String())
	}

	w = send(router, http.MethodGet, "/api/v1/artifacts/"+letter.Artifact.ID+"/download", "")
	if w.Code != http.StatusOK || w.Body.String() != "Dear Acme team" {
		t.Fatalf("download: %d %q", w.Code, w.Body.String())
	}

	w = send(router, http.MethodPost, "/api/v1/resumes/render", `{"resume": {"full_name": "Ada Lovelace", "skills": ["Go"]}}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("render: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = send(router, http.MethodGet, "/api/v1/artifacts", "")
	var list []struct {
		Name string `json:"name"`
		Type string `json:"type"`
		URL  string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Ada Lovelace's Resume" || list[0].URL != "https://files.example/resume.pdf" {
		t.Fatalf("unexpected artifacts %+v", list)
	}
}

func TestRoutesRequireIdentityExceptHealth(t *testing.T) {
	router := buildApp(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/artifacts", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"database":"memory"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestMeReportsGuestAndAssistantState(t *testing.T) {
	router := buildApp(t)

	w := send(router, http.MethodGet, "/api/v1/me", "")
	if w.Code != http.StatusOK {
		t.Fatalf("me: %d %s", w.Code, w.Body.String())
	}
	var me struct {
		UserID    string `json:"userId"`
		IsGuest   bool   `json:"isGuest"`
		AIEnabled bool   `json:"aiEnabled"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if me.UserID == "" || !me.IsGuest || !me.AIEnabled {
		t.Fatalf("unexpected me payload %+v", me)
	}
}
