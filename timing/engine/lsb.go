package engine

import "github.com/gopherarch/tomasulo-sim/isa"

// LSBCapacity is the fixed number of load/store buffer entries
// (spec.md §4.E).
const LSBCapacity = 8

// LSBEntry holds one issued load or store awaiting its address, its data
// (for stores), dispatch, or commit (spec.md §3).
type LSBEntry struct {
	Busy          bool
	Op            isa.Op // OpLW or OpSW
	Base          Operand
	Offset        int
	Address       int64
	AddressReady  bool
	Data          Operand // meaningful for OpSW
	RobID         int
	InstrIndex    int
	Seq           int // program-order issue sequence, for the ordering rule
	Dispatched    bool
	ExecRemaining uint64
	Writable      bool
}

// LSB is the fixed-capacity load/store buffer.
type LSB struct {
	entries [LSBCapacity]LSBEntry
}

// NewLSB returns an empty load/store buffer.
func NewLSB() *LSB {
	return &LSB{}
}

// HasFreeSlot reports whether any entry is free.
func (l *LSB) HasFreeSlot() bool {
	for i := range l.entries {
		if !l.entries[i].Busy {
			return true
		}
	}
	return false
}

// Issue occupies the lowest-id free entry with the load or store's
// operands and program-order sequence number.
func (l *LSB) Issue(op isa.Op, robID, instrIndex, offset, seq int, base, data Operand) (int, bool) {
	for i := range l.entries {
		if l.entries[i].Busy {
			continue
		}
		e := LSBEntry{
			Busy:       true,
			Op:         op,
			Base:       base,
			Offset:     offset,
			Data:       data,
			RobID:      robID,
			InstrIndex: instrIndex,
			Seq:        seq,
		}
		if e.Base.Ready() {
			e.Address = e.Base.Value() + int64(e.Offset)
			e.AddressReady = true
		}
		l.entries[i] = e
		return i, true
	}
	return 0, false
}

// Snoop resolves any waiting base/data operand naming robID, and computes
// the address once the base becomes ready.
func (l *LSB) Snoop(robID int, value int64) {
	for i := range l.entries {
		e := &l.entries[i]
		if !e.Busy {
			continue
		}
		if e.Base.Resolve(robID, value) {
			e.Address = e.Base.Value() + int64(e.Offset)
			e.AddressReady = true
		}
		e.Data.Resolve(robID, value)
		if e.Base.Ready() && !e.AddressReady {
			e.Address = e.Base.Value() + int64(e.Offset)
			e.AddressReady = true
		}
	}
}

// canProceed applies spec.md §4.E's conservative memory-ordering rule: a
// load may not bypass an older store with an unresolved or aliasing
// address.
func (l *LSB) canProceed(e *LSBEntry) bool {
	if e.Op == isa.OpSW {
		return e.AddressReady && e.Data.Ready()
	}
	if !e.AddressReady {
		return false
	}
	for i := range l.entries {
		older := &l.entries[i]
		if !older.Busy || older.Op != isa.OpSW || older.Seq >= e.Seq {
			continue
		}
		if !older.AddressReady {
			return false
		}
		if older.Address == e.Address {
			return false
		}
	}
	return true
}

// DispatchReady selects the lowest-id entry eligible to proceed to memory
// this cycle and starts it executing.
func (l *LSB) DispatchReady(latency func(isa.Op) uint64) (int, bool) {
	for i := range l.entries {
		e := &l.entries[i]
		if !e.Busy || e.Dispatched {
			continue
		}
		if !l.canProceed(e) {
			continue
		}
		e.Dispatched = true
		e.ExecRemaining = latency(e.Op)
		if e.ExecRemaining > 0 {
			e.ExecRemaining-- // the dispatch cycle itself counts as the first execute cycle
		}
		if e.ExecRemaining == 0 {
			e.Writable = true
		}
		return i, true
	}
	return 0, false
}

// AdvanceExecuting decrements every dispatched entry's remaining latency,
// marking it writable once it reaches zero.
func (l *LSB) AdvanceExecuting() {
	for i := range l.entries {
		e := &l.entries[i]
		if !e.Busy || !e.Dispatched || e.Writable {
			continue
		}
		if e.ExecRemaining > 0 {
			e.ExecRemaining--
		}
		if e.ExecRemaining == 0 {
			e.Writable = true
		}
	}
}

// WritableLoads returns the ids of writable load entries, lowest id
// first; loads broadcast on the CDB and free immediately.
func (l *LSB) WritableLoads() []int {
	var ids []int
	for i := range l.entries {
		e := &l.entries[i]
		if e.Busy && e.Writable && e.Op == isa.OpLW {
			ids = append(ids, i)
		}
	}
	return ids
}

// WritableStores returns the ids of writable store entries, lowest id
// first; stores stay busy in the LSB until commit (spec.md §4.E).
func (l *LSB) WritableStores() []int {
	var ids []int
	for i := range l.entries {
		e := &l.entries[i]
		if e.Busy && e.Writable && e.Op == isa.OpSW {
			ids = append(ids, i)
		}
	}
	return ids
}

// Entry returns a copy of the entry at id.
func (l *LSB) Entry(id int) LSBEntry {
	return l.entries[id]
}

// Free clears the entry at id, returning it to the pool.
func (l *LSB) Free(id int) {
	l.entries[id] = LSBEntry{}
}

// FreeByRobID frees every busy entry with the given ROB id, used during
// misprediction flush.
func (l *LSB) FreeByRobID(robID int) {
	for i := range l.entries {
		if l.entries[i].Busy && l.entries[i].RobID == robID {
			l.entries[i] = LSBEntry{}
		}
	}
}

// FindByRobID locates the busy entry with the given ROB id, used at
// commit to retrieve a store's address and data.
func (l *LSB) FindByRobID(robID int) (int, bool) {
	for i := range l.entries {
		if l.entries[i].Busy && l.entries[i].RobID == robID {
			return i, true
		}
	}
	return 0, false
}

// BusyRobIDs returns the ROB id of every busy entry, for display-stage
// bookkeeping.
func (l *LSB) BusyRobIDs() []int {
	var ids []int
	for i := range l.entries {
		if l.entries[i].Busy {
			ids = append(ids, l.entries[i].RobID)
		}
	}
	return ids
}

// Snapshot returns every busy entry, for the viewer boundary.
func (l *LSB) Snapshot() []LSBEntry {
	var out []LSBEntry
	for i := range l.entries {
		if l.entries[i].Busy {
			out = append(out, l.entries[i])
		}
	}
	return out
}
