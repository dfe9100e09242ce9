package slots

import (
	"context"
	"fmt"
	"time"
)

// selectFree returns the index of the first worker whose slot is free, scanning from 0.
//
// The probe is advisory: it does not claim the slot. Only the coordinator claims slots,
// so a free slot stays free until the caller's blocking claim, and a stale answer can
// only make that claim wait for the worker to finish.
//
// When a full scan finds nothing free, selection waits for the backoff interval (or for
// a free-worker notification, when enabled) and rescans from index 0. Dead workers are
// skipped; if none is left alive, ErrNoLiveWorkers is returned.
func (c *Coordinator) selectFree(ctx context.Context) (int, error) {
	for {
		live := 0
		for _, w := range c.workers {
			if w.failure() != nil {
				continue
			}
			live++
			if w.signals.probeEmpty() {
				c.logger.Info().Int("worker", w.index+1).Msg("worker is free")
				return w.index, nil
			}
		}
		if live == 0 {
			return -1, ErrNoLiveWorkers
		}

		c.instr.backoffs.Add(1)
		c.logger.Info().Dur("backoff", c.config.Backoff).Msg("no worker is free, waiting")
		if err := c.wait(ctx); err != nil {
			return -1, err
		}
	}
}

// wait pauses selection until the backoff elapses or a worker reports itself free.
func (c *Coordinator) wait(ctx context.Context) error {
	timer := time.NewTimer(c.config.Backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrSync, ctx.Err())
	case <-c.ctx.Done():
		return fmt.Errorf("%w: %w", ErrSync, c.ctx.Err())
	case <-c.freed:
	case <-timer.C:
	}
	return nil
}
