package slots

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// signals is the per-worker handshake: a bounded buffer of capacity one.
//
//   - empty (initially available): the worker is idle and its slot may be overwritten.
//   - full (initially unavailable): a job is waiting in the slot.
//
// The coordinator acquires empty and releases full; the worker acquires full and releases empty.
// Releasing a signal that is already available panics inside the semaphore, which turns a
// protocol violation into a loud failure instead of a second pending job.
type signals struct {
	empty *semaphore.Weighted
	full  *semaphore.Weighted
}

func newSignals() *signals {
	s := &signals{
		empty: semaphore.NewWeighted(1),
		full:  semaphore.NewWeighted(1),
	}
	// full starts at zero.
	s.full.TryAcquire(1)
	return s
}

func (s *signals) acquireEmpty(ctx context.Context) error {
	if err := s.empty.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: acquire empty: %w", ErrSync, err)
	}
	return nil
}

func (s *signals) releaseEmpty() { s.empty.Release(1) }

func (s *signals) acquireFull(ctx context.Context) error {
	if err := s.full.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: acquire full: %w", ErrSync, err)
	}
	return nil
}

func (s *signals) releaseFull() { s.full.Release(1) }

// tryAcquireEmpty claims the slot only if it is free right now.
func (s *signals) tryAcquireEmpty() bool { return s.empty.TryAcquire(1) }

// probeEmpty reports whether empty could be acquired right now without keeping it.
// The answer may be stale by the time the caller acts on it.
func (s *signals) probeEmpty() bool {
	if !s.empty.TryAcquire(1) {
		return false
	}
	s.empty.Release(1)
	return true
}
