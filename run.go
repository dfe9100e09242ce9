package slots

import (
	"context"
	"errors"
	"io"
)

// JobSource yields jobs one at a time. Next returns io.EOF once the stream is exhausted.
// A source is read once; it is not restartable.
type JobSource interface {
	Next() (Job, error)
}

// JobSourceFunc adapts a function to JobSource.
type JobSourceFunc func() (Job, error)

func (f JobSourceFunc) Next() (Job, error) { return f() }

// Jobs returns a JobSource over a fixed list of jobs.
func Jobs(jobs ...Job) JobSource {
	i := 0
	return JobSourceFunc(func() (Job, error) {
		if i >= len(jobs) {
			return Job{}, io.EOF
		}
		j := jobs[i]
		i++
		return j, nil
	})
}

// Run dispatches every job from src to a new pool of n workers and drains the pool.
// It owns the lifecycle: New, Submit until io.EOF, Drain.
//
// Semantics:
//   - Results are returned in harvest order (see ResultLog).
//   - The first source or submit error stops dispatching; the pool is still drained and
//     the results collected so far are returned together with the joined error.
func Run(ctx context.Context, n int, src JobSource, opts ...Option) ([]Result, error) {
	c, err := New(ctx, n, opts...)
	if err != nil {
		return nil, err
	}

	dispatchErr := dispatchAll(ctx, c, src)
	results, drainErr := c.Drain(ctx)
	return results, errors.Join(dispatchErr, drainErr)
}

func dispatchAll(ctx context.Context, c *Coordinator, src JobSource) error {
	for {
		j, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := c.Submit(ctx, j); err != nil {
			return err
		}
	}
}
