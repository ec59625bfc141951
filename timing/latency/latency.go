// Package latency provides the per-opcode execution latency table the
// Tomasulo engine's reservation stations and load/store buffer dispatch
// against (spec.md §4.D, §4.E).
package latency

import "github.com/gopherarch/tomasulo-sim/isa"

// Table provides opcode latency lookups, backed by a Config.
type Table struct {
	config *Config
}

// NewTable creates a new latency table with spec.md's default latencies.
func NewTable() *Table {
	return &Table{config: DefaultConfig()}
}

// NewTableWithConfig creates a new latency table with a custom configuration.
func NewTableWithConfig(config *Config) *Table {
	return &Table{config: config}
}

// GetLatency returns the execute-stage latency, in cycles, for op.
func (t *Table) GetLatency(op isa.Op) uint64 {
	switch op {
	case isa.OpADD:
		return t.config.ADDLatency
	case isa.OpSUB:
		return t.config.SUBLatency
	case isa.OpMUL:
		return t.config.MULLatency
	case isa.OpDIV:
		return t.config.DIVLatency
	case isa.OpBEQ:
		return t.config.BEQLatency
	case isa.OpLW:
		return t.config.LWLatency
	case isa.OpSW:
		return t.config.SWLatency
	default:
		return 1
	}
}

// IsMemoryOp reports whether op is LW or SW.
func (t *Table) IsMemoryOp(op isa.Op) bool {
	return op.IsMemory()
}

// IsLoadOp reports whether op is LW.
func (t *Table) IsLoadOp(op isa.Op) bool {
	return op == isa.OpLW
}

// IsStoreOp reports whether op is SW.
func (t *Table) IsStoreOp(op isa.Op) bool {
	return op == isa.OpSW
}

// IsBranchOp reports whether op is BEQ.
func (t *Table) IsBranchOp(op isa.Op) bool {
	return op == isa.OpBEQ
}

// Config returns the table's underlying configuration.
func (t *Table) Config() *Config {
	return t.config
}
