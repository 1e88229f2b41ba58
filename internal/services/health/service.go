package health

import (
	"context"
	"database/sql"
	"time"

	"careercoach-backend/internal/shared/storage/db"
)

const pingTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	DB            *sql.DB
	LLMConfigured bool
	PDFConfigured bool
}

// NewService constructs a new health service. A nil database means the
// in-memory repositories are in use.
func NewService(database *sql.DB, llmConfigured, pdfConfigured bool) *Service {
	return &Service{DB: database, LLMConfigured: llmConfigured, PDFConfigured: pdfConfigured}
}

// Report is the health payload.
type Report struct {
	OK               bool   `json:"ok"`
	Database         string `json:"database"`
	MigrationVersion int64  `json:"migrationVersion,omitempty"`
	LLMConfigured    bool   `json:"llmConfigured"`
	PDFConfigured    bool   `json:"pdfConfigured"`
}

// Status pings the database when one is configured. OK is false only when the
// configured database is unreachable.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{OK: true, Database: "memory", LLMConfigured: s.LLMConfigured, PDFConfigured: s.PDFConfigured}
	if s.DB == nil {
		return report
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		report.OK = false
		report.Database = "unreachable"
		return report
	}
	report.Database = "postgres"
	if version, err := db.MigrationVersion(s.DB); err == nil {
		report.MigrationVersion = version
	}
	return report
}
