package engine

import "github.com/gopherarch/tomasulo-sim/isa"

// RSCapacity is the fixed number of reservation stations (spec.md §4.D).
const RSCapacity = 8

// ReservationStation holds one issued arithmetic or branch op awaiting
// operands, dispatch, or drain (spec.md §3).
type ReservationStation struct {
	Busy          bool
	Op            isa.Op
	Vj, Vk        Operand
	RobID         int
	InstrIndex    int
	Dispatched    bool
	ExecRemaining uint64
	Writable      bool
}

// RS is the fixed-capacity set of reservation stations.
type RS struct {
	stations [RSCapacity]ReservationStation
}

// NewRS returns an empty reservation station set.
func NewRS() *RS {
	return &RS{}
}

// HasFreeSlot reports whether any station is free.
func (rs *RS) HasFreeSlot() bool {
	for i := range rs.stations {
		if !rs.stations[i].Busy {
			return true
		}
	}
	return false
}

// Issue occupies the lowest-id free station with op, its ROB id, and its
// operands (already resolved to Ready or Waiting per spec.md §4.D).
func (rs *RS) Issue(op isa.Op, robID, instrIndex int, vj, vk Operand) (int, bool) {
	for i := range rs.stations {
		if rs.stations[i].Busy {
			continue
		}
		rs.stations[i] = ReservationStation{
			Busy:       true,
			Op:         op,
			Vj:         vj,
			Vk:         vk,
			RobID:      robID,
			InstrIndex: instrIndex,
		}
		return i, true
	}
	return 0, false
}

// Snoop resolves any waiting operand naming robID, across all busy
// stations (spec.md §4.D).
func (rs *RS) Snoop(robID int, value int64) {
	for i := range rs.stations {
		if !rs.stations[i].Busy {
			continue
		}
		rs.stations[i].Vj.Resolve(robID, value)
		rs.stations[i].Vk.Resolve(robID, value)
	}
}

// DispatchReady selects the lowest-id station whose operands are both
// ready and which has not yet begun executing, and starts it executing
// for latency cycles.
func (rs *RS) DispatchReady(latency func(isa.Op) uint64) (int, bool) {
	for i := range rs.stations {
		s := &rs.stations[i]
		if !s.Busy || s.Dispatched {
			continue
		}
		if !s.Vj.Ready() || !s.Vk.Ready() {
			continue
		}
		s.Dispatched = true
		s.ExecRemaining = latency(s.Op)
		if s.ExecRemaining > 0 {
			s.ExecRemaining-- // the dispatch cycle itself counts as the first execute cycle
		}
		if s.ExecRemaining == 0 {
			s.Writable = true
		}
		return i, true
	}
	return 0, false
}

// AdvanceExecuting decrements every dispatched station's remaining
// latency, marking it writable once it reaches zero.
func (rs *RS) AdvanceExecuting() {
	for i := range rs.stations {
		s := &rs.stations[i]
		if !s.Busy || !s.Dispatched || s.Writable {
			continue
		}
		if s.ExecRemaining > 0 {
			s.ExecRemaining--
		}
		if s.ExecRemaining == 0 {
			s.Writable = true
		}
	}
}

// WritableArithmetic returns the ids of writable non-branch stations,
// lowest id first, for the write-result stage to drain.
func (rs *RS) WritableArithmetic() []int {
	var ids []int
	for i := range rs.stations {
		s := &rs.stations[i]
		if s.Busy && s.Writable && s.Op != isa.OpBEQ {
			ids = append(ids, i)
		}
	}
	return ids
}

// WritableBranches returns the ids of writable BEQ stations, lowest id
// first, for the branch-resolve stage (spec.md §4.H step 5).
func (rs *RS) WritableBranches() []int {
	var ids []int
	for i := range rs.stations {
		s := &rs.stations[i]
		if s.Busy && s.Writable && s.Op == isa.OpBEQ {
			ids = append(ids, i)
		}
	}
	return ids
}

// Station returns a copy of the station at id.
func (rs *RS) Station(id int) ReservationStation {
	return rs.stations[id]
}

// Free clears the station at id, returning it to the pool.
func (rs *RS) Free(id int) {
	rs.stations[id] = ReservationStation{}
}

// FreeByRobID frees every busy station with the given ROB id, used during
// misprediction flush.
func (rs *RS) FreeByRobID(robID int) {
	for i := range rs.stations {
		if rs.stations[i].Busy && rs.stations[i].RobID == robID {
			rs.stations[i] = ReservationStation{}
		}
	}
}

// BusyRobIDs returns the ROB id of every busy station, for display-stage
// bookkeeping.
func (rs *RS) BusyRobIDs() []int {
	var ids []int
	for i := range rs.stations {
		if rs.stations[i].Busy {
			ids = append(ids, rs.stations[i].RobID)
		}
	}
	return ids
}

// Snapshot returns every busy station, for the viewer boundary.
func (rs *RS) Snapshot() []ReservationStation {
	var out []ReservationStation
	for i := range rs.stations {
		if rs.stations[i].Busy {
			out = append(out, rs.stations[i])
		}
	}
	return out
}
