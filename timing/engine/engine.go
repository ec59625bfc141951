// Package engine implements the Tomasulo pipeline core: the reorder
// buffer, register alias table, reservation stations, load/store buffer,
// branch predictor and checkpoint stack, orchestrated by Engine.Tick
// through the fixed five-stage cycle of spec.md §4.H.
package engine

import (
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/gopherarch/tomasulo-sim/emu"
	"github.com/gopherarch/tomasulo-sim/isa"
	"github.com/gopherarch/tomasulo-sim/timing/latency"
)

// Engine is the pure state object of spec.md §1: a single owned instance
// advanced one cycle at a time by Tick, with no real threads and no
// blocking calls.
type Engine struct {
	program []isa.Instruction
	fetchPC int
	nextSeq int

	rob         *ROB
	rat         *RAT
	rs          *RS
	lsb         *LSB
	predictor   *Predictor
	checkpoints *CheckpointStack

	regs *emu.RegisterFile
	mem  *emu.Memory

	latency *latency.Table
	metrics Metrics

	fatal  error
	logger hclog.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithMemory overrides the default-sized memory.
func WithMemory(mem *emu.Memory) Option {
	return func(e *Engine) { e.mem = mem }
}

// WithLatencyTable overrides the default latency table.
func WithLatencyTable(table *latency.Table) Option {
	return func(e *Engine) { e.latency = table }
}

// WithLogger overrides the default no-op logger.
func WithLogger(logger hclog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New returns an Engine with no program loaded.
func New(opts ...Option) *Engine {
	e := &Engine{
		rob:         NewROB(),
		rat:         NewRAT(),
		rs:          NewRS(),
		lsb:         NewLSB(),
		predictor:   NewPredictor(),
		checkpoints: NewCheckpointStack(),
		regs:        emu.NewRegisterFile(),
		mem:         emu.NewMemory(0),
		latency:     latency.NewTable(),
		logger: hclog.New(&hclog.LoggerOptions{
			Name:   "tomasulo-engine",
			Output: io.Discard,
			Level:  hclog.Off,
		}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadProgram installs program and resets fetch/state. Callers decode
// with isa.Decoder first, so LoadProgram itself cannot fail. Unlike
// Reset, it keeps the predictor's branch history and the memory contents,
// so a reloaded program benefits from what earlier runs learned and can
// read memory preloaded through WithMemory.
func (e *Engine) LoadProgram(program []isa.Instruction) {
	predictor, mem := e.predictor, e.mem
	e.program = program
	e.Reset()
	e.predictor, e.mem = predictor, mem
}

// Reset zeros all structures, including the predictor's history and
// memory, keeping the loaded program (spec.md §6).
func (e *Engine) Reset() {
	e.fetchPC = 0
	e.nextSeq = 0
	e.rob = NewROB()
	e.rat = NewRAT()
	e.rs = NewRS()
	e.lsb = NewLSB()
	e.predictor = NewPredictor()
	e.checkpoints = NewCheckpointStack()
	e.regs = emu.NewRegisterFile()
	e.mem = emu.NewMemory(e.mem.Size())
	e.metrics = Metrics{}
	e.fatal = nil
}

// Halted reports whether the program has fully drained: fetch is past the
// program and the ROB is empty (spec.md §4.H, "Termination").
func (e *Engine) Halted() bool {
	return (e.fetchPC >= len(e.program) || e.fetchPC < 0) && e.rob.Len() == 0
}

// Err returns the fatal error that put the engine into a terminal state,
// if any.
func (e *Engine) Err() error {
	return e.fatal
}

// fail records a fatal error (spec.md §7), after which Tick is a no-op.
func (e *Engine) fail(err error) {
	e.fatal = err
	e.logger.Error("fatal error", "cycle", e.metrics.Cycle, "err", err)
}

// Metrics returns the current performance counters.
func (e *Engine) Metrics() Metrics {
	return e.metrics
}

// RegisterFile exposes the architectural registers, read-only by
// convention of the viewer boundary.
func (e *Engine) RegisterFile() *emu.RegisterFile {
	return e.regs
}

// Memory exposes architectural memory, read-only by convention of the
// viewer boundary.
func (e *Engine) Memory() *emu.Memory {
	return e.mem
}

// Snapshot returns a read-only view of every structure, for the viewer.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		ROB:         e.rob.Snapshot(),
		RS:          e.rs.Snapshot(),
		LSB:         e.lsb.Snapshot(),
		Checkpoints: e.checkpoints.All(),
		Registers:   e.regs.Snapshot(),
		Memory:      e.mem.Snapshot(),
		Metrics:     e.metrics,
		Halted:      e.Halted(),
	}
	if e.fatal != nil {
		s.Error = e.fatal.Error()
	}
	return s
}

// Tick advances exactly one cycle. A no-op once the engine has halted or
// entered a fatal error state (spec.md §4.H, §7).
func (e *Engine) Tick() {
	if e.fatal != nil || e.Halted() {
		return
	}

	e.commitStage()
	if e.fatal != nil {
		return
	}
	e.writeResultStage()
	e.executeStage()
	pending := e.fetchPC >= 0 && e.fetchPC < len(e.program)
	issued := e.issueStage()
	e.branchResolveStage()

	e.metrics.Cycle++
	if pending && !issued {
		e.metrics.Stalls++
	}
}
