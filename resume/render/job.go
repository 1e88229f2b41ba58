package render

import "fmt"

// State is a render job's position in its lifecycle.
type State string

const (
	StateSubmitted State = "submitted"
	StatePending   State = "pending"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	StateTimedOut  State = "timed_out"
)

// Job tracks one conversion request from submission to a terminal state.
type Job struct {
	ID       string
	State    State
	URL      string
	Reason   string
	Attempts int
}

func newJob() *Job {
	return &Job{State: StateSubmitted}
}

// Terminal reports whether no further transition is allowed.
func (j *Job) Terminal() bool {
	switch j.State {
	case StateSucceeded, StateFailed, StateTimedOut:
		return true
	}
	return false
}

func (j *Job) accept(id string) error {
	if j.State != StateSubmitted {
		return j.invalid(StatePending)
	}
	j.ID = id
	j.State = StatePending
	return nil
}

func (j *Job) succeed(url string) error {
	if j.Terminal() {
		return j.invalid(StateSucceeded)
	}
	j.URL = url
	j.State = StateSucceeded
	return nil
}

func (j *Job) fail(reason string) error {
	if j.Terminal() {
		return j.invalid(StateFailed)
	}
	j.Reason = reason
	j.State = StateFailed
	return nil
}

func (j *Job) timeOut() error {
	if j.State != StatePending {
		return j.invalid(StateTimedOut)
	}
	j.State = StateTimedOut
	return nil
}

func (j *Job) invalid(to State) error {
	return fmt.Errorf("render job %q: invalid transition %s -> %s", j.ID, j.State, to)
}
