package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

const settingsName = "calcpool.yaml"

// settings is the optional calcpool.yaml found next to the configuration file.
type settings struct {
	LogLevel                string        `yaml:"logLevel"`
	Backoff                 time.Duration `yaml:"backoff"`
	FreeWorkerNotifications bool          `yaml:"freeWorkerNotifications"`
	TraceFile               string        `yaml:"traceFile"`
	ConfigURL               string        `yaml:"configURL"`
	ResultsURL              string        `yaml:"resultsURL"`
}

func defaultSettings() settings {
	return settings{
		LogLevel:   "info",
		Backoff:    2 * time.Second,
		ConfigURL:  "config.txt",
		ResultsURL: "res.txt",
	}
}

// loadSettings returns the defaults overlaid with URL, when it exists.
func loadSettings(ctx context.Context, fs afs.Service, URL string) (settings, error) {
	s := defaultSettings()
	ok, err := fs.Exists(ctx, URL)
	if err != nil {
		return s, fmt.Errorf("settings: %w", err)
	}
	if !ok {
		return s, nil
	}

	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return s, fmt.Errorf("settings: download %s: %w", URL, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("settings: decode %s: %w", URL, err)
	}
	if _, err := s.level(); err != nil {
		return s, err
	}
	if s.Backoff <= 0 {
		return s, fmt.Errorf("settings: backoff must be positive, got %s", s.Backoff)
	}
	if s.ConfigURL == "" || s.ResultsURL == "" {
		return s, fmt.Errorf("settings: configURL and resultsURL must not be empty")
	}
	return s, nil
}

func (s settings) level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("settings: logLevel: %w", err)
	}
	return lvl, nil
}
