package render

import (
	"context"
	"time"

	"careercoach-backend/internal/shared/apperr"
)

const (
	DefaultPollInterval = 3 * time.Second
	DefaultMaxAttempts  = 10
)

// JobStatus is one status report for an asynchronous conversion.
type JobStatus struct {
	Status string
	URL    string
}

const (
	statusWorking = "working"
	statusSuccess = "success"
)

// CheckFunc reports the current status of jobID.
type CheckFunc func(ctx context.Context, jobID string) (JobStatus, error)

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Poller drives a pending job to a terminal state with a fixed interval and
// a hard cap on status checks.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int
	Wait        WaitFunc
}

func NewPoller(interval time.Duration, maxAttempts int) Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return Poller{Interval: interval, MaxAttempts: maxAttempts, Wait: sleepContext}
}

// Poll checks job until it succeeds, fails, or MaxAttempts checks have
// reported "working". There is no wait after the final check.
func (p Poller) Poll(ctx context.Context, job *Job, check CheckFunc) (string, error) {
	const op = "render.poll"
	wait := p.Wait
	if wait == nil {
		wait = sleepContext
	}
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for job.Attempts < maxAttempts {
		job.Attempts++
		status, err := check(ctx, job.ID)
		if err != nil {
			_ = job.fail(apperr.MessageOf(err))
			return "", err
		}

		switch status.Status {
		case statusSuccess:
			if status.URL == "" {
				_ = job.fail("empty document url")
				return "", apperr.Upstream(op, nil, "job %s succeeded without a document url", job.ID)
			}
			_ = job.succeed(status.URL)
			return status.URL, nil
		case statusWorking:
			if job.Attempts == maxAttempts {
				continue
			}
			if err := wait(ctx, p.Interval); err != nil {
				_ = job.fail("cancelled")
				return "", &apperr.Error{Kind: apperr.KindTimeout, Op: op, Message: "polling cancelled", Err: err}
			}
		default:
			_ = job.fail(status.Status)
			return "", apperr.Upstream(op, nil, "job failed with status: %s", status.Status)
		}
	}

	_ = job.timeOut()
	return "", apperr.Timeout(op, "PDF generation timed out after %d status checks", job.Attempts)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
