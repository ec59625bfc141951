package engine

import "errors"

// commitStage implements spec.md §4.H step 1. If the ROB head is busy
// and ready, it applies the instruction's architectural side effect,
// pops it, and updates metrics.
func (e *Engine) commitStage() {
	id, ok := e.rob.HeadReady()
	if !ok {
		return
	}
	entry := e.rob.Entry(id)

	switch entry.Kind {
	case ROBReg:
		e.regs.Write(entry.Dest, entry.Value, entry.InstrIndex)
		e.rat.ClearIfPointsTo(entry.Dest, id)

	case ROBStore:
		lsbID, found := e.lsb.FindByRobID(id)
		if !found {
			e.fail(&FatalError{Cycle: e.metrics.Cycle, Err: errStoreMissing})
			return
		}
		storeEntry := e.lsb.Entry(lsbID)
		if err := e.mem.Write(int(storeEntry.Address), storeEntry.Data.Value()); err != nil {
			e.fail(&FatalError{Cycle: e.metrics.Cycle, Err: err})
			return
		}
		e.lsb.Free(lsbID)

	case ROBBranch:
		// Resolution already happened in a prior tick's branch-resolve
		// stage; committing a branch has no architectural side effect.
	}

	e.rob.SetStage(id, StageCommit)
	e.rob.CommitHead()
	e.metrics.Committed++
}

var errStoreMissing = errors.New("committed store has no matching load/store buffer entry")
