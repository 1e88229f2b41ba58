package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"careercoach-backend/internal/shared/apperr"
)

type waitRecorder struct {
	calls int
}

func (w *waitRecorder) wait(ctx context.Context, d time.Duration) error {
	w.calls++
	return ctx.Err()
}

func pendingJob() *Job {
	job := newJob()
	_ = job.accept("job-1")
	return job
}

func TestPollTimesOutAfterExactlyMaxAttempts(t *testing.T) {
	waits := &waitRecorder{}
	p := Poller{Interval: 3 * time.Second, MaxAttempts: 10, Wait: waits.wait}
	checks := 0
	job := pendingJob()

	_, err := p.Poll(context.Background(), job, func(ctx context.Context, id string) (JobStatus, error) {
		checks++
		return JobStatus{Status: "working"}, nil
	})
	if !errors.Is(err, apperr.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if checks != 10 {
		t.Fatalf("expected 10 status checks, got %d", checks)
	}
	if waits.calls != 9 {
		t.Fatalf("expected 9 waits, got %d", waits.calls)
	}
	if job.State != StateTimedOut || job.Attempts != 10 {
		t.Fatalf("unexpected job %+v", job)
	}
}

func TestPollTerminalStates(t *testing.T) {
	cases := []struct {
		name     string
		statuses []JobStatus
		wantURL  string
		wantKind apperr.Kind
		state    State
		checks   int
	}{
		{"success after working", []JobStatus{{Status: "working"}, {Status: "success", URL: "https://x/doc.pdf"}}, "https://x/doc.pdf", "", StateSucceeded, 2},
		{"failed status", []JobStatus{{Status: "working"}, {Status: "failed"}}, "", apperr.KindUpstream, StateFailed, 2},
		{"success without url", []JobStatus{{Status: "success"}}, "", apperr.KindUpstream, StateFailed, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Poller{Interval: time.Millisecond, MaxAttempts: 10, Wait: (&waitRecorder{}).wait}
			job := pendingJob()
			i := 0
			url, err := p.Poll(context.Background(), job, func(ctx context.Context, id string) (JobStatus, error) {
				s := tc.statuses[i]
				i++
				return s, nil
			})
			if url != tc.wantURL {
				t.Fatalf("url = %q, want %q", url, tc.wantURL)
			}
			if apperr.KindOf(err) != tc.wantKind {
				t.Fatalf("kind = %q, want %q (err %v)", apperr.KindOf(err), tc.wantKind, err)
			}
			if job.State != tc.state || i != tc.checks {
				t.Fatalf("state=%s checks=%d", job.State, i)
			}
		})
	}
}

func TestPollCheckErrorPropagates(t *testing.T) {
	p := Poller{Interval: time.Millisecond, MaxAttempts: 3, Wait: (&waitRecorder{}).wait}
	want := apperr.Transport("test", nil, "down")
	_, err := p.Poll(context.Background(), pendingJob(), func(ctx context.Context, id string) (JobStatus, error) {
		return JobStatus{}, want
	})
	if !errors.Is(err, apperr.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestPollStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(time.Hour, 10)
	checks := 0
	_, err := p.Poll(ctx, pendingJob(), func(ctx context.Context, id string) (JobStatus, error) {
		checks++
		cancel()
		return JobStatus{Status: "working"}, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if checks != 1 {
		t.Fatalf("expected 1 check, got %d", checks)
	}
}

func TestJobRejectsTransitionsFromTerminal(t *testing.T) {
	job := pendingJob()
	if err := job.succeed("u"); err != nil {
		t.Fatalf("succeed: %v", err)
	}
	if err := job.fail("late"); err == nil {
		t.Fatalf("expected error leaving a terminal state")
	}
	if err := newJob().timeOut(); err == nil {
		t.Fatalf("submitted job cannot time out")
	}
}
