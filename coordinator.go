package slots

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/slots/launcher"
	"github.com/ygrebnov/slots/tracing"
)

// Coordinator is the single writer of jobs for a fixed pool of workers.
// It resolves a target for every job, harvests the target's previous result,
// writes the new job and wakes the worker. Drain stops the pool.
//
// Methods are safe for concurrent use, but calls are serialized: the dispatch
// protocol has exactly one coordinator.
type Coordinator struct {
	// noCopy prevents accidental copying of the coordinator.
	//go:nocopy
	nc noCopy

	config *config

	// internal lifecycle control; workers wait on ctx
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	workers  []*worker
	launcher launcher.Launcher
	log      *ResultLog
	freed    chan int
	seq      uint64
	shutdown *shutdown

	logger zerolog.Logger
	instr  *instruments
}

// noCopy is a vet-recognized marker to discourage copying types with this field embedded.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New creates a pool of n workers and starts them.
// Every slot and signal pair exists before the first worker is launched.
// If a launch fails, the workers already running are terminated and joined before New returns.
func New(ctx context.Context, n int, opts ...Option) (*Coordinator, error) {
	if n < 1 {
		return nil, errorc.With(ErrInvalidConfig, errorc.String("workers", strconv.Itoa(n)))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	if cfg.Launcher == nil {
		cfg.Launcher = launcher.NewGoroutines()
	}

	c := &Coordinator{}
	c.initialize(ctx, n, &cfg)
	if err := c.launch(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Coordinator) initialize(ctx context.Context, n int, cfg *config) {
	c.config = cfg
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.launcher = cfg.Launcher
	c.log = newResultLog()
	c.logger = cfg.Logger.With().Str("run_id", cfg.RunID).Logger()
	c.instr = newInstruments(cfg.Metrics)

	if cfg.Notify {
		c.freed = make(chan int, n)
	}

	c.workers = make([]*worker, n)
	for i := range n {
		c.workers[i] = newWorker(c.ctx, i, c.freed, c.logger, c.instr)
	}

	c.shutdown = newShutdown(c.workers, c.claim, c.harvest, c.launcher.Join, c.cancel, c.logger)
}

func (c *Coordinator) launch() error {
	c.logger.Info().Int("workers", len(c.workers)).Msg("launching workers")
	for i, w := range c.workers {
		if err := c.launcher.Start(i, func() { w.run(c.ctx) }); err != nil {
			c.logger.Error().Err(err).Int("worker", i+1).Msg("cannot launch worker")
			c.abort(i)
			return fmt.Errorf("%w %d: %w", ErrLaunch, i+1, err)
		}
	}
	return nil
}

// abort stops the first started workers. None of them has received a job yet,
// so each slot is free and takes the sentinel at once.
func (c *Coordinator) abort(started int) {
	for i := 0; i < started; i++ {
		w := c.workers[i]
		if w.signals.tryAcquireEmpty() {
			w.slot.terminate()
			w.signals.releaseFull()
		} else {
			c.cancel()
		}
		c.launcher.Join(i)
	}
	c.release()
}

// release cancels every context owned by the coordinator.
func (c *Coordinator) release() {
	for _, w := range c.workers {
		w.kill(nil)
	}
	c.cancel()
}

// Size returns the number of workers in the pool.
func (c *Coordinator) Size() int { return len(c.workers) }

// Results returns the live result log.
func (c *Coordinator) Results() *ResultLog { return c.log }

// RunID returns the identifier attached to this coordinator's log events and spans.
func (c *Coordinator) RunID() string { return c.config.RunID }

// Submit dispatches one job.
//
// Semantics:
//   - An explicit target (1..Size) is used as is; AnyWorker selects the first free worker,
//     scanning from index 0 and backing off while every worker is busy.
//   - Submit blocks until the target worker has finished its previous job, harvests that
//     job's result into the log, writes the new job and returns without waiting for it.
//   - A target worker that died on a failure makes Submit return ErrWorkerFailed.
//   - After Drain, Submit returns ErrInvalidState.
func (c *Coordinator) Submit(ctx context.Context, j Job) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.shutdown.started() {
		return ErrInvalidState
	}
	if err := j.validate(); err != nil {
		return err
	}
	if j.Target > len(c.workers) {
		return errorc.With(ErrInvalidTarget,
			errorc.String("target", strconv.Itoa(j.Target)),
			errorc.String("workers", strconv.Itoa(len(c.workers))),
		)
	}

	seq := c.seq
	ctx, span := tracing.StartSpan(ctx, "slots.submit")
	span.SetInt("target", j.Target).SetInt("seq", int(seq)).SetString("run_id", c.config.RunID)
	defer func() { tracing.EndSpan(span, err) }()

	c.logger.Info().Uint64("seq", seq).Int("target", j.Target).Stringer("job", j).Msg("job received")

	idx, err := c.resolve(ctx, j)
	if err != nil {
		return err
	}
	span.SetInt("worker", idx+1)

	w := c.workers[idx]
	if err := c.claim(ctx, w); err != nil {
		return err
	}
	c.harvest(w)
	w.slot.put(j, seq)
	c.seq++
	w.signals.releaseFull()
	c.instr.submitted.Add(1)

	c.logger.Info().Int("worker", idx+1).Uint64("seq", seq).Msg("job written")
	return nil
}

func (c *Coordinator) resolve(ctx context.Context, j Job) (int, error) {
	if j.Target != AnyWorker {
		c.logger.Info().Int("worker", j.Target).Msg("waiting for worker")
		return j.Target - 1, nil
	}
	return c.selectFree(ctx)
}

// claim blocks until w's empty signal is acquired. It gives up when ctx or the
// coordinator is done, or when w dies.
func (c *Coordinator) claim(ctx context.Context, w *worker) error {
	if err := w.failure(); err != nil {
		return err
	}

	acquireCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	stopAlive := context.AfterFunc(w.alive, func() { cancel(context.Cause(w.alive)) })
	defer stopAlive()

	if err := w.signals.acquireEmpty(acquireCtx); err != nil {
		if failure := w.failure(); failure != nil {
			return failure
		}
		return newWorkerError(err, w.index)
	}
	return nil
}

// harvest moves w's pending result into the log. The caller must hold w's empty signal.
func (c *Coordinator) harvest(w *worker) {
	r, ok := w.slot.harvest(w.index)
	if !ok {
		return
	}
	n := c.log.append(r)
	c.instr.harvested.Add(1)

	ev := c.logger.Info().
		Int("worker", w.index+1).
		Uint64("seq", r.Seq).
		Stringer("result", r).
		Int("harvested", n)
	if expected := c.config.ExpectedJobs; expected > 0 {
		ev = ev.Int("expected", expected).
			Str("progress", strconv.FormatFloat(float64(n)/float64(expected)*100, 'f', 2, 64)+"%")
	}
	ev.Msg("result received")
}

// Drain harvests every worker's last result, sends each worker the sentinel and waits
// for it to exit, one worker at a time in index order. It returns the complete result log.
//
// Drain is idempotent: later calls return the same log and error without touching the pool.
// A worker that died on a failure is skipped after its failure is recorded; the returned
// error joins every such failure.
func (c *Coordinator) Drain(ctx context.Context) (res []Result, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.shutdown.started() {
		return c.log.Entries(), c.shutdown.err
	}

	ctx, span := tracing.StartSpan(ctx, "slots.drain")
	span.SetInt("workers", len(c.workers)).SetString("run_id", c.config.RunID)
	defer func() { tracing.EndSpan(span, err) }()

	err = c.shutdown.run(ctx)
	c.release()

	c.logger.Info().Int("results", c.log.Len()).Uint64("submitted", c.seq).Msg("computation finished")
	return c.log.Entries(), err
}
