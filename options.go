package slots

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/slots/launcher"
	"github.com/ygrebnov/slots/metrics"
)

// config holds Coordinator configuration.
type config struct {
	// Backoff is how long selection waits after a full scan found every worker busy.
	// Default: 2s.
	Backoff time.Duration

	// Notify makes workers announce that they became free, so a waiting selection wakes
	// before the backoff elapses. The scan itself is unchanged.
	// Default: false.
	Notify bool

	// ExpectedJobs is only used for progress percentages in log events.
	// Default: 0 (no percentage).
	ExpectedJobs int

	// RunID tags every log event and span of one run.
	// Default: a random UUID.
	RunID string

	Logger   zerolog.Logger
	Metrics  metrics.Provider
	Launcher launcher.Launcher
}

func defaultConfig() config {
	return config{
		Backoff: 2 * time.Second,
		Logger:  zerolog.Nop(),
		Metrics: metrics.NewNoopProvider(),
	}
}

// Option configures a Coordinator.
type Option func(*config) error

// WithBackoff sets the pause between full scans when every worker is busy (must be > 0).
func WithBackoff(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithBackoff requires d > 0"))
		}
		cfg.Backoff = d
		return nil
	}
}

// WithFreeWorkerNotifications wakes a waiting selection as soon as any worker frees its slot.
func WithFreeWorkerNotifications() Option {
	return func(cfg *config) error { cfg.Notify = true; return nil }
}

// WithExpectedJobs reports progress as a share of n jobs in log events.
func WithExpectedJobs(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithExpectedJobs requires n >= 0"))
		}
		cfg.ExpectedJobs = n
		return nil
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(cfg *config) error {
		if id == "" {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithRunID requires a non-empty id"))
		}
		cfg.RunID = id
		return nil
	}
}

// WithLogger sets the progress logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) error { cfg.Logger = l; return nil }
}

// WithMetrics sets the metrics provider.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithLauncher sets how worker units are started and joined.
func WithLauncher(l launcher.Launcher) Option {
	return func(cfg *config) error {
		if l == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithLauncher requires a launcher"))
		}
		cfg.Launcher = l
		return nil
	}
}
