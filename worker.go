package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// worker owns one slot and computes every job written into it until it reads the sentinel.
type worker struct {
	index   int
	slot    *slot
	signals *signals

	// alive is cancelled with an ErrWorkerFailed cause when the worker dies on a failure,
	// so a coordinator blocked on this worker's empty signal wakes up.
	alive context.Context
	kill  context.CancelCauseFunc

	// freed receives the worker index after every release of empty; nil disables it.
	freed chan<- int

	logger zerolog.Logger
	instr  *instruments
}

func newWorker(
	parent context.Context, index int, freed chan<- int, logger zerolog.Logger, instr *instruments,
) *worker {
	alive, kill := context.WithCancelCause(parent)
	return &worker{
		index:   index,
		slot:    &slot{},
		signals: newSignals(),
		alive:   alive,
		kill:    kill,
		freed:   freed,
		logger:  logger.With().Int("worker", index+1).Logger(),
		instr:   instr,
	}
}

// run is the worker loop. It returns after the sentinel, or after a failure.
// On either exit path it neither sets ready nor releases empty.
func (w *worker) run(ctx context.Context) {
	for {
		if err := w.signals.acquireFull(ctx); err != nil {
			w.fail(newWorkerError(err, w.index))
			return
		}

		j := w.slot.job
		if j.Operator == opTerminate {
			w.logger.Info().Msg("termination received, exiting")
			return
		}
		w.logger.Debug().Uint64("seq", w.slot.seq).Stringer("job", j).Msg("job read")

		v, err := w.compute(j)
		if err != nil {
			w.fail(newJobError(err, w.index, j, w.slot.seq))
			return
		}

		w.slot.publish(v)
		w.signals.releaseEmpty()
		w.announce()
	}
}

func (w *worker) compute(j Job) (int, error) {
	w.instr.busy.Add(1)
	defer w.instr.busy.Add(-1)

	start := time.Now()
	v, err := Compute(j.Operand1, j.Operator, j.Operand2)
	w.instr.compute.Record(time.Since(start).Seconds())
	return v, err
}

// fail is the fatal path: the failure is logged loudly and the worker is marked dead.
func (w *worker) fail(err error) {
	w.instr.failures.Add(1)
	w.logger.Error().Err(err).Msg("worker failed, exiting")
	w.kill(fmt.Errorf("%w: %w", ErrWorkerFailed, err))
	w.announce()
}

func (w *worker) announce() {
	if w.freed == nil {
		return
	}
	select {
	case w.freed <- w.index:
	default:
	}
}

// failure returns the cause of death if the worker exited on a failure, nil otherwise.
func (w *worker) failure() error {
	select {
	case <-w.alive.Done():
	default:
		return nil
	}
	if cause := context.Cause(w.alive); errors.Is(cause, ErrWorkerFailed) {
		return cause
	}
	return nil
}
