// Package core provides the run-facing wrapper around the Tomasulo
// engine. It mirrors the teacher's timing/core package: a thin shell that
// owns nothing of the simulation itself, only the run-level bookkeeping
// (loading a program, driving ticks, stamping a RunID) that sits above
// engine.Engine.
package core

import (
	"github.com/google/uuid"

	"github.com/gopherarch/tomasulo-sim/isa"
	"github.com/gopherarch/tomasulo-sim/timing/engine"
)

// Stats mirrors engine.Metrics under the name the teacher's Core.Stats
// uses, so callers at the CLI boundary don't need to import the engine
// package's metrics type directly.
type Stats = engine.Metrics

// Core wraps an Engine and stamps every loaded run with a fresh RunID
// (SPEC_FULL.md §3) so a saved snapshot can be told apart from another
// run of the same program.
type Core struct {
	Engine *engine.Engine

	runID uuid.UUID
}

// NewCore creates a new Core with no program loaded.
func NewCore(opts ...engine.Option) *Core {
	return &Core{
		Engine: engine.New(opts...),
		runID:  uuid.New(),
	}
}

// LoadProgram installs an already-decoded program and stamps a fresh
// RunID.
func (c *Core) LoadProgram(program []isa.Instruction) {
	c.Engine.LoadProgram(program)
	c.runID = uuid.New()
}

// LoadSource decodes assembly text with the given decoder options before
// loading it, surfacing a *isa.ParseError on malformed input (spec.md §7).
func (c *Core) LoadSource(lines []string, opts ...isa.DecoderOption) error {
	program, err := isa.NewDecoder(opts...).Decode(lines)
	if err != nil {
		return err
	}
	c.LoadProgram(program)
	return nil
}

// RunID returns the identifier stamped on the currently loaded run.
func (c *Core) RunID() uuid.UUID {
	return c.runID
}

// Tick executes one pipeline cycle.
func (c *Core) Tick() {
	c.Engine.Tick()
}

// Halted returns true once fetch is past the loaded program and the ROB
// has drained. A fatal error does not set it; Err reports that.
func (c *Core) Halted() bool {
	return c.Engine.Halted()
}

// Err returns the fatal error that halted the run, if any.
func (c *Core) Err() error {
	return c.Engine.Err()
}

// Stats returns the run's performance counters.
func (c *Core) Stats() Stats {
	return c.Engine.Metrics()
}

// Run executes the core until it halts or hits a fatal error, returning
// the final stats.
func (c *Core) Run() Stats {
	for !c.Halted() && c.Err() == nil {
		c.Tick()
	}
	return c.Stats()
}

// RunCycles executes the core for at most the given number of cycles.
// Returns true if the core is still running afterward, false if it
// halted or hit a fatal error during the run.
func (c *Core) RunCycles(cycles uint64) bool {
	for i := uint64(0); i < cycles; i++ {
		if c.Halted() || c.Err() != nil {
			return false
		}
		c.Tick()
	}
	return c.Err() == nil && !c.Halted()
}

// Reset clears all simulation state, including predictor history and
// memory, but keeps the loaded program, stamping a fresh RunID since the
// run restarts from scratch.
func (c *Core) Reset() {
	c.Engine.Reset()
	c.runID = uuid.New()
}

// Snapshot returns a read-only view of the run, including its RunID.
func (c *Core) Snapshot() Snapshot {
	return Snapshot{
		RunID:    c.runID.String(),
		Snapshot: c.Engine.Snapshot(),
	}
}

// Snapshot extends engine.Snapshot with the run-level RunID stamp, for
// the viewer boundary to tell two loaded programs apart in a saved trace.
type Snapshot struct {
	RunID string
	engine.Snapshot
}
