package artifacts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"careercoach-backend/internal/shared/apperr"
	"careercoach-backend/internal/shared/storage/object"
	"careercoach-backend/internal/shared/storage/object/local"
	"careercoach-backend/resume/model"
)

type failingRepo struct {
	Repo
}

func (failingRepo) Create(ctx context.Context, artifact Artifact) error {
	return errors.New("db down")
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewMemoryRepo(), local.New(t.TempDir()), time.Second)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return svc
}

func TestAddThenListRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	snapshot := &model.ResumeData{FullName: "Ada Lovelace", Skills: []string{"Go"}}
	added, err := svc.Add(ctx, "user-1", NewArtifact{
		Name:     "Ada Lovelace's Resume",
		Type:     TypeResume,
		URL:      "https://files/resume.pdf",
		Metadata: Metadata{Company: "Acme", Position: "Engineer", ResumeSnapshot: snapshot},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.ID == "" || added.CreatedAt.IsZero() || !added.CreatedAt.Equal(added.UpdatedAt) {
		t.Fatalf("unexpected identity/timestamps %+v", added)
	}

	listed, err := svc.List(ctx, "user-1", "", 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(listed))
	}
	got := listed[0]
	got.UpdatedAt = added.UpdatedAt
	if !reflect.DeepEqual(got, added) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, added)
	}

	snapshot.FullName = "mutated"
	again, _ := svc.Get(ctx, "user-1", added.ID)
	if again.Metadata.ResumeSnapshot.FullName != "Ada Lovelace" {
		t.Fatalf("stored snapshot shares memory with caller")
	}
}

func TestListNewestFirstFiltersByTypeAndOwner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	for i, typ := range []Type{TypeResume, TypeCoverLetter, TypeResume} {
		if _, err := svc.Add(ctx, "user-1", NewArtifact{Name: fmt.Sprintf("a%d", i), Type: typ, URL: "https://x"}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	_, _ = svc.Add(ctx, "user-2", NewArtifact{Name: "other", Type: TypeResume, URL: "https://x"})

	resumes, _ := svc.List(ctx, "user-1", TypeResume, 20, 0)
	if len(resumes) != 2 || resumes[0].Name != "a2" || resumes[1].Name != "a0" {
		t.Fatalf("unexpected resumes %+v", resumes)
	}
	all, _ := svc.List(ctx, "user-1", "", 1, 1)
	if len(all) != 1 || all[0].Name != "a1" {
		t.Fatalf("unexpected page %+v", all)
	}
}

func TestListNewestFirstWhenTimestampsTie(t *testing.T) {
	svc := newTestService(t)
	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }
	ctx := context.Background()
	for _, name := range []string{"first", "second", "third"} {
		if _, err := svc.Add(ctx, "user-1", NewArtifact{Name: name, Type: TypeResume, URL: "https://x"}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	items, err := svc.List(ctx, "user-1", "", 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 || items[0].Name != "third" || items[1].Name != "second" || items[2].Name != "first" {
		t.Fatalf("expected newest insert first on equal timestamps, got %+v", items)
	}
	page, _ := svc.List(ctx, "user-1", "", 1, 1)
	if len(page) != 1 || page[0].Name != "second" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestRegenerateMintsNewArtifact(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	in := NewArtifact{Name: "Cover Letter - Acme", Type: TypeCoverLetter, URL: "https://x"}
	first, _ := svc.Add(ctx, "user-1", in)
	second, _ := svc.Add(ctx, "user-1", in)
	if first.ID == second.ID {
		t.Fatalf("expected distinct ids")
	}
	if items, _ := svc.List(ctx, "user-1", "", 20, 0); len(items) != 2 {
		t.Fatalf("expected both artifacts kept, got %d", len(items))
	}
}

func TestAddFailsLoudly(t *testing.T) {
	svc := NewService(failingRepo{Repo: NewMemoryRepo()}, nil, time.Second)
	if _, err := svc.Add(context.Background(), "user-1", NewArtifact{Name: "n", Type: TypeResume, URL: "https://x"}); err == nil {
		t.Fatalf("expected persistence error")
	}
	if _, err := svc.Add(context.Background(), "user-1", NewArtifact{Name: "n", Type: "memo", URL: "https://x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown type, got %v", err)
	}
}

func TestAddStoredCleansUpOnFailure(t *testing.T) {
	dir := t.TempDir()
	store := local.New(dir)
	svc := NewService(failingRepo{Repo: NewMemoryRepo()}, store, time.Second)

	_, err := svc.AddStored(context.Background(), "user-1", "letter.txt", "text/plain", strings.NewReader("Dear"), NewArtifact{
		Name: "Cover Letter - Acme", Type: TypeCoverLetter,
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	files := 0
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			files++
		}
		return nil
	})
	if files != 0 {
		t.Fatalf("expected stored body to be removed, found %d files", files)
	}
}

func TestOpenStoredCoverLetter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	artifact, err := svc.AddStored(ctx, "user-1", "letter.txt", "text/plain", strings.NewReader("Dear hiring manager"), NewArtifact{
		Name:     "Cover Letter - Acme Corp",
		Type:     TypeCoverLetter,
		Metadata: Metadata{Company: "Acme Corp"},
	})
	if err != nil {
		t.Fatalf("AddStored: %v", err)
	}
	if !strings.HasPrefix(artifact.URL, object.URLScheme) {
		t.Fatalf("expected store url, got %q", artifact.URL)
	}

	dl, err := svc.Open(ctx, "user-1", artifact.ID)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if dl.FileName != "cover-letter-acme-corp.txt" || string(dl.Body) != "Dear hiring manager" {
		t.Fatalf("unexpected download %q %q", dl.FileName, dl.Body)
	}

	if _, err := svc.Open(ctx, "user-2", artifact.ID); !IsMissing(err) {
		t.Fatalf("expected other owner to be refused, got %v", err)
	}

	if err := svc.Remove(ctx, "user-1", artifact.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := svc.Get(ctx, "user-1", artifact.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestOpenRemoteResumeValidatesPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/empty.pdf":
		case "/missing.pdf":
			w.WriteHeader(http.StatusNotFound)
		default:
			_, _ = w.Write(bytes.Repeat([]byte("x"), 64))
		}
	}))
	defer srv.Close()

	svc := newTestService(t)
	ctx := context.Background()
	cases := map[string]apperr.Kind{
		"/empty.pdf":   apperr.KindUpstream,
		"/garbage.pdf": apperr.KindUpstream,
		"/missing.pdf": apperr.KindTransport,
	}
	for path, kind := range cases {
		artifact, err := svc.Add(ctx, "user-1", NewArtifact{Name: "r", Type: TypeResume, URL: srv.URL + path})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if _, err := svc.Open(ctx, "user-1", artifact.ID); apperr.KindOf(err) != kind {
			t.Fatalf("%s: kind = %q, want %q (err %v)", path, apperr.KindOf(err), kind, err)
		}
	}
}
