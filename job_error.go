package slots

import (
	"errors"
	"fmt"
)

// JobError carries the worker and job a failure belongs to.
type JobError interface {
	error
	Unwrap() error
	Worker() int
	Job() (Job, uint64, bool)
}

type jobError struct {
	err    error
	worker int
	job    Job
	seq    uint64
	hasJob bool
}

func newWorkerError(err error, worker int) error {
	if err == nil {
		return nil
	}
	return &jobError{err: err, worker: worker}
}

func newJobError(err error, worker int, j Job, seq uint64) error {
	if err == nil {
		return nil
	}
	return &jobError{err: err, worker: worker, job: j, seq: seq, hasJob: true}
}

func (e *jobError) Error() string {
	if e.hasJob {
		return fmt.Sprintf("worker %d: job %d (%s): %s", e.worker+1, e.seq, e.job, e.err)
	}
	return fmt.Sprintf("worker %d: %s", e.worker+1, e.err)
}

func (e *jobError) Unwrap() error { return e.err }

func (e *jobError) Worker() int { return e.worker }

func (e *jobError) Job() (Job, uint64, bool) { return e.job, e.seq, e.hasJob }

func (e *jobError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "job(worker=%d,seq=%d,job=%+v): %+v", e.worker, e.seq, e.job, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractWorker returns the 0-based index of the worker err belongs to, if tagged.
func ExtractWorker(err error) (int, bool) {
	var je JobError
	if errors.As(err, &je) {
		return je.Worker(), true
	}
	return 0, false
}

// ExtractJob returns the job and submission sequence err belongs to, if tagged with one.
func ExtractJob(err error) (Job, uint64, bool) {
	var je JobError
	if errors.As(err, &je) {
		return je.Job()
	}
	return Job{}, 0, false
}
