package slots

import "github.com/ygrebnov/slots/metrics"

// Instrument names reported through the metrics provider.
const (
	MetricJobsSubmitted    = "jobs_submitted"
	MetricResultsHarvested = "results_harvested"
	MetricBusyBackoffs     = "busy_backoffs"
	MetricWorkerFailures   = "worker_failures"
	MetricWorkersBusy      = "workers_busy"
	MetricComputeSeconds   = "compute_seconds"
)

type instruments struct {
	submitted metrics.Counter
	harvested metrics.Counter
	backoffs  metrics.Counter
	failures  metrics.Counter
	busy      metrics.UpDownCounter
	compute   metrics.Histogram
}

func newInstruments(p metrics.Provider) *instruments {
	return &instruments{
		submitted: p.Counter(MetricJobsSubmitted, metrics.WithDescription("jobs written into a slot")),
		harvested: p.Counter(MetricResultsHarvested, metrics.WithDescription("results copied into the result log")),
		backoffs:  p.Counter(MetricBusyBackoffs, metrics.WithDescription("full scans that found every worker busy")),
		failures:  p.Counter(MetricWorkerFailures, metrics.WithDescription("workers that exited with a failure")),
		busy:      p.UpDownCounter(MetricWorkersBusy, metrics.WithDescription("workers currently computing")),
		compute: p.Histogram(MetricComputeSeconds,
			metrics.WithDescription("time spent computing one job"), metrics.WithUnit("s")),
	}
}
