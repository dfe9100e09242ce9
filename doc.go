// Package slots dispatches a stream of arithmetic jobs to a fixed pool of long-lived
// workers and collects their results.
//
// Each worker owns a single-job slot guarded by two signals:
//   - empty: the worker is idle and its slot may be overwritten (starts available)
//   - full: a job is waiting in the slot (starts unavailable)
//
// The Coordinator is the only writer of jobs. For every job it picks a target (explicit,
// or the first free worker scanning from index 0), waits for that worker's slot to be
// empty, harvests the result left there by the previous job, writes the new job and
// signals full. It never waits for the job itself to finish.
//
// Results therefore reach the ResultLog in harvest order: a worker's result is collected
// the next time the coordinator addresses that worker, or during Drain.
//
// Drain stops the pool one worker at a time in index order: claim empty, harvest the last
// result, send the sentinel, join.
//
// Constructors
//   - New(ctx, n, opts...): starts n workers and returns a Coordinator.
//   - Run(ctx, n, src, opts...): New, Submit every job from src, Drain.
//
// Defaults
//   - Backoff: 2s between full scans while every worker is busy
//   - Free-worker notifications: off
//   - Logger: zerolog.Nop()
//   - Metrics: no-op provider
//   - Launcher: one goroutine per worker
//
// Failures
// A worker that fails (division by zero) exits at once without publishing a result.
// The coordinator notices on its next claim of that worker and reports ErrWorkerFailed
// tagged with the worker and job; see ExtractWorker and ExtractJob.
package slots
