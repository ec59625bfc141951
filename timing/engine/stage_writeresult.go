package engine

import "github.com/gopherarch/tomasulo-sim/isa"

// writeResultStage implements spec.md §4.H step 2. It drains every
// writable non-branch station and every writable load, computing a
// result, publishing it on the simulated CDB, and freeing the producer.
// BEQ stations are left for the branch-resolve stage (step 5): they have
// no register destination to broadcast. Stores are left busy in the LSB
// until commit (spec.md §4.E) even once writable.
func (e *Engine) writeResultStage() {
	type publication struct {
		robID int
		value int64
	}
	var pubs []publication

	for _, id := range e.rs.WritableArithmetic() {
		s := e.rs.Station(id)
		value := computeArithmetic(s.Op, s.Vj.Value(), s.Vk.Value())
		pubs = append(pubs, publication{robID: s.RobID, value: value})
		e.rs.Free(id)
	}

	for _, id := range e.lsb.WritableLoads() {
		l := e.lsb.Entry(id)
		value, err := e.mem.Read(int(l.Address))
		if err != nil {
			e.fail(&FatalError{Cycle: e.metrics.Cycle, Err: err})
			return
		}
		pubs = append(pubs, publication{robID: l.RobID, value: value})
		e.lsb.Free(id)
	}

	for _, id := range e.lsb.WritableStores() {
		l := e.lsb.Entry(id)
		pubs = append(pubs, publication{robID: l.RobID, value: l.Data.Value()})
	}

	for _, p := range pubs {
		e.rob.MarkReady(p.robID, p.value)
		e.rob.SetStage(p.robID, StageWriteResult)
		e.rs.Snoop(p.robID, p.value)
		e.lsb.Snoop(p.robID, p.value)
	}
}

// computeArithmetic evaluates an ALU op. DIV by zero yields 0 silently
// (spec.md §7, DivideByZero); BEQ has no arithmetic result and is never
// passed here.
func computeArithmetic(op isa.Op, vj, vk int64) int64 {
	switch op {
	case isa.OpADD:
		return vj + vk
	case isa.OpSUB:
		return vj - vk
	case isa.OpMUL:
		return vj * vk
	case isa.OpDIV:
		if vk == 0 {
			return 0
		}
		return vj / vk
	default:
		return 0
	}
}
