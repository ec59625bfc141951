// Package emu provides the architectural state the Tomasulo engine commits
// into: the register file and main memory. Both are plain value holders —
// the engine owns all renaming, scheduling, and speculation logic.
package emu

import "github.com/gopherarch/tomasulo-sim/isa"

// RegisterFile holds the 32 architectural integer registers. R0 is
// hardwired to 0: writes are ignored and reads always return 0 (spec.md §3).
type RegisterFile struct {
	regs [isa.NumRegisters]int64

	// lastWriter records, per register, the index of the last instruction
	// that committed a write to it. It is pure display metadata (SPEC_FULL
	// §4, "register-writer label") and is never read by engine logic.
	lastWriter    [isa.NumRegisters]int
	lastWriterSet [isa.NumRegisters]bool
}

// NewRegisterFile creates a zero-initialized register file.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

// Read returns the architectural value of reg. R0 always reads as 0.
func (r *RegisterFile) Read(reg int) int64 {
	if reg == 0 || reg < 0 || reg >= isa.NumRegisters {
		return 0
	}
	return r.regs[reg]
}

// Write commits value into reg. Writes to R0 are silently ignored.
// instrIndex is recorded as the register's last writer for display.
func (r *RegisterFile) Write(reg int, value int64, instrIndex int) {
	if reg <= 0 || reg >= isa.NumRegisters {
		return
	}
	r.regs[reg] = value
	r.lastWriter[reg] = instrIndex
	r.lastWriterSet[reg] = true
}

// LastWriter returns the index of the instruction that last committed a
// write to reg, and whether any instruction has written it yet.
func (r *RegisterFile) LastWriter(reg int) (instrIndex int, ok bool) {
	if reg <= 0 || reg >= isa.NumRegisters {
		return 0, false
	}
	return r.lastWriter[reg], r.lastWriterSet[reg]
}

// Snapshot returns a copy of all 32 architectural values, for the viewer.
func (r *RegisterFile) Snapshot() [isa.NumRegisters]int64 {
	return r.regs
}
