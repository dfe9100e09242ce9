// Command calcpool runs the jobs listed in config.txt on a pool of workers and writes
// their results to res.txt. It takes no flags; an optional calcpool.yaml tunes logging,
// backoff, tracing and file locations.
//
// Exit status is 0 on success and 1 on any setup, I/O or worker failure.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/ygrebnov/slots"
	"github.com/ygrebnov/slots/jobfile"
	"github.com/ygrebnov/slots/metrics"
	"github.com/ygrebnov/slots/resultfile"
	"github.com/ygrebnov/slots/tracing"
)

const version = "v0.1.0"

const rule = "**************************************************************************\n"

func main() {
	os.Exit(run(context.Background(), ".", os.Stdout, os.Stderr))
}

// run executes one calculation run with files resolved against dir and returns the exit code.
func run(ctx context.Context, dir string, stdout, stderr io.Writer) int {
	fmt.Fprint(stdout, rule+"*                   PARALLEL CALCULATION SIMULATOR                      *\n"+rule)

	fs := afs.New()
	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()

	s, err := loadSettings(ctx, fs, resolve(dir, settingsName))
	if err != nil {
		bootLogger.Error().Err(err).Msg("cannot load settings")
		return 1
	}
	lvl, err := s.level()
	if err != nil {
		bootLogger.Error().Err(err).Msg("cannot load settings")
		return 1
	}
	logger := bootLogger.Level(lvl)

	if s.TraceFile != "" {
		shutdown, err := startTracing(fs, resolve(dir, s.TraceFile))
		if err != nil {
			logger.Error().Err(err).Msg("cannot start tracing")
			return 1
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn().Err(err).Msg("cannot flush traces")
			}
		}()
	}

	f, err := jobfile.Load(ctx, fs, resolve(dir, s.ConfigURL))
	if err != nil {
		logger.Error().Err(err).Msg("cannot read configuration")
		return 1
	}
	logger.Info().Int("operations", f.Jobs).Int("workers", f.Workers).Msg("operations to perform")

	provider := metrics.NewBasicProvider()
	opts := []slots.Option{
		slots.WithLogger(logger),
		slots.WithMetrics(provider),
		slots.WithBackoff(s.Backoff),
		slots.WithExpectedJobs(f.Jobs),
	}
	if s.FreeWorkerNotifications {
		opts = append(opts, slots.WithFreeWorkerNotifications())
	}

	results, err := slots.Run(ctx, f.Workers, f.Source(), opts...)
	fmt.Fprint(stdout, rule+"Computation finished\n")
	if err != nil {
		logger.Error().Err(err).Int("results", len(results)).Msg("run failed")
		return 1
	}

	if err := resultfile.Write(ctx, fs, resolve(dir, s.ResultsURL), results); err != nil {
		logger.Error().Err(err).Msg("cannot write results")
		return 1
	}
	fmt.Fprintf(stdout, "Results written to '%s'\n"+rule, s.ResultsURL)

	summary := logger.Debug()
	for _, name := range provider.Names() {
		v, _ := provider.Value(name)
		summary = summary.Int64(name, v)
	}
	summary.Msg("run summary")
	return 0
}

// startTracing collects spans in memory and uploads them to URL when the returned func runs.
func startTracing(fs afs.Service, URL string) (tracing.ShutdownFunc, error) {
	var buf bytes.Buffer
	shutdown, err := tracing.Init("calcpool", version, &buf)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		if err := shutdown(ctx); err != nil {
			return err
		}
		if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, &buf); err != nil {
			return fmt.Errorf("tracing: upload %s: %w", URL, err)
		}
		return nil
	}, nil
}

// resolve joins relative local names onto dir; absolute paths and URLs are kept as is.
func resolve(dir, name string) string {
	if strings.Contains(name, "://") || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
