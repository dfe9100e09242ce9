// Package metrics defines the small instrument surface the coordinator reports through,
// plus a no-op provider (the default) and an in-memory provider.
package metrics

// Provider hands out named instruments. The same name always yields the same instrument.
// Implementations must be safe for concurrent use.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter records monotonic counts (jobs submitted, results harvested).
type Counter interface {
	Add(n int64)
}

// UpDownCounter records a level that moves both ways (workers currently computing).
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of measurements (compute time in seconds).
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig is advisory metadata; providers may ignore it.
type InstrumentConfig struct {
	Description string
	Unit        string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

func buildConfig(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
