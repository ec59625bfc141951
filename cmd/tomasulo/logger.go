package main

import (
	"github.com/hashicorp/go-hclog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gopherarch/tomasulo-sim/timing/latency"
)

// logFile is where every run's structured log lands, rotated by
// lumberjack so a long multi-thousand-cycle run doesn't grow an
// unbounded file on disk (SPEC_FULL.md §2.1).
const logFile = "tomasulo.log"

// initLogger builds the run's hclog.Logger, writing to a rotating log
// file. -v raises the level to Debug, matching the teacher's -v flag.
func initLogger() {
	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}

	logger = hclog.New(&hclog.LoggerOptions{
		Name:  "tomasulo",
		Level: level,
		Output: &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     7, // days
		},
	})
}

// loadLatencyTable resolves the effective latency table: spec.md's
// defaults, overridden by --latency's JSON file when one was given.
func loadLatencyTable() (*latency.Table, error) {
	if latencyFile == "" {
		return latency.NewTable(), nil
	}
	cfg, err := latency.LoadConfig(latencyFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return latency.NewTableWithConfig(cfg), nil
}
