package engine

import "github.com/gopherarch/tomasulo-sim/isa"

// Snapshot is the read-only view of engine state exposed at the viewer
// boundary (spec.md §6). The viewer must treat every field as immutable.
type Snapshot struct {
	ROB         []ROBEntry
	RS          []ReservationStation
	LSB         []LSBEntry
	Checkpoints []Checkpoint
	Registers   [isa.NumRegisters]int64
	Memory      []int64
	Metrics     Metrics
	Halted      bool
	Error       string
}
