package engine

import "github.com/gopherarch/tomasulo-sim/isa"

// Architectural marks a RAT slot whose register has no in-flight producer:
// the architectural register file is authoritative (spec.md §4.C).
const Architectural = isa.NoRegister

// RAT renames architectural registers to the ROB entry that will produce
// their next value, eliminating WAR/WAW hazards (spec.md §4.C).
type RAT struct {
	slots [isa.NumRegisters]int
}

// NewRAT returns a RAT with every register pointing at the architectural
// file.
func NewRAT() *RAT {
	r := &RAT{}
	for i := range r.slots {
		r.slots[i] = Architectural
	}
	return r
}

// Read returns the producing ROB id for reg, or Architectural if none is
// in flight. R0 always reads Architectural.
func (r *RAT) Read(reg int) int {
	if reg == 0 {
		return Architectural
	}
	return r.slots[reg]
}

// Rename records robID as reg's producer. A no-op for R0.
func (r *RAT) Rename(reg, robID int) {
	if reg == 0 {
		return
	}
	r.slots[reg] = robID
}

// ClearIfPointsTo clears reg's mapping if it still names robID, restoring
// the architectural file as authoritative. Called at commit.
func (r *RAT) ClearIfPointsTo(reg, robID int) {
	if reg == 0 {
		return
	}
	if r.slots[reg] == robID {
		r.slots[reg] = Architectural
	}
}

// Snapshot copies the full mapping, for checkpointing.
func (r *RAT) Snapshot() [isa.NumRegisters]int {
	return r.slots
}

// Restore replaces the mapping wholesale, for misprediction rollback.
func (r *RAT) Restore(snapshot [isa.NumRegisters]int) {
	r.slots = snapshot
}
