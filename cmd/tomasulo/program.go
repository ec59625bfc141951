package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gopherarch/tomasulo-sim/timing/core"
	"github.com/gopherarch/tomasulo-sim/timing/engine"
)

// newCore builds a Core wired to the effective latency table and the
// run's logger.
func newCore() (*core.Core, error) {
	table, err := loadLatencyTable()
	if err != nil {
		return nil, fmt.Errorf("loading latency table: %w", err)
	}
	return core.NewCore(engine.WithLatencyTable(table), engine.WithLogger(logger)), nil
}

// loadProgramFile reads an assembly-text program from path and loads it
// into c, surfacing a *isa.ParseError on malformed input.
func loadProgramFile(c *core.Core, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening program: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading program: %w", err)
	}

	return c.LoadSource(lines)
}
