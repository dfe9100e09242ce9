package slots

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// shutdown drives the termination handshake. It is a wiring helper: it owns no slots,
// it sequences claim, harvest, sentinel and join for each worker in index order.
//
// run executes exactly once; started reports whether it has begun.
type shutdown struct {
	workers []*worker
	claim   func(context.Context, *worker) error
	harvest func(*worker)
	join    func(index int)
	abort   func()
	logger  zerolog.Logger

	once  sync.Once
	begun bool
	err   error
}

func newShutdown(
	workers []*worker,
	claim func(context.Context, *worker) error,
	harvest func(*worker),
	join func(index int),
	abort func(),
	logger zerolog.Logger,
) *shutdown {
	return &shutdown{
		workers: workers,
		claim:   claim,
		harvest: harvest,
		join:    join,
		abort:   abort,
		logger:  logger,
	}
}

func (s *shutdown) started() bool { return s.begun }

// run stops every worker, strictly in index order:
// 1) claim the worker's empty signal (it has finished any outstanding job)
// 2) harvest its last result, if any
// 3) write the sentinel and signal full
// 4) join the worker before moving to the next one
//
// The worker exits straight from the sentinel without releasing empty, and empty is
// not touched again here, so the asymmetry cannot deadlock.
func (s *shutdown) run(ctx context.Context) error {
	s.once.Do(func() {
		s.begun = true
		var errs []error
		for _, w := range s.workers {
			if err := s.stop(ctx, w); err != nil {
				errs = append(errs, err)
			}
		}
		s.err = errors.Join(errs...)
	})
	return s.err
}

func (s *shutdown) stop(ctx context.Context, w *worker) error {
	s.logger.Info().Int("worker", w.index+1).Msg("sending termination")

	if err := s.claim(ctx, w); err != nil {
		// A dead worker has already returned. A live one is unreachable now,
		// so every worker is cancelled before joining.
		if w.failure() == nil {
			s.abort()
		}
		s.join(w.index)
		return err
	}

	s.harvest(w)
	w.slot.terminate()
	w.signals.releaseFull()
	s.join(w.index)
	return nil
}
