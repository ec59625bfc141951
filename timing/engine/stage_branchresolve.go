package engine

import "sort"

// branchResolveStage implements spec.md §4.H step 5. Every BEQ whose RS
// entry became writable this cycle is resolved in program order: the
// actual direction is compared to the prediction taken at issue, the
// predictor is updated, and a misprediction triggers a flush.
func (e *Engine) branchResolveStage() {
	ids := e.rs.WritableBranches()
	age := func(id int) int {
		return (e.rs.Station(id).RobID - e.rob.head + RobCapacity) % RobCapacity
	}
	sort.Slice(ids, func(i, j int) bool {
		return age(ids[i]) < age(ids[j])
	})

	for _, id := range ids {
		station := e.rs.Station(id)
		if !station.Busy {
			continue // already dropped by an earlier flush this cycle
		}

		actual := station.Vj.Value() == station.Vk.Value()
		e.rob.MarkReady(station.RobID, boolToInt64(actual))
		e.rob.SetStage(station.RobID, StageWriteResult)
		e.rs.Free(id)

		cp, ok := e.checkpoints.Find(station.RobID)
		if !ok {
			continue
		}
		e.predictor.Update(station.InstrIndex, actual)
		e.logger.Debug("branch resolved",
			"instr", e.program[station.InstrIndex].Label(),
			"predicted", cp.PredictedDirection,
			"actual", actual)

		if actual == cp.PredictedDirection {
			next, hasNext := e.checkpoints.NextAfter(station.RobID)
			e.checkpoints.DiscardByID(station.RobID)
			e.rob.ClearSpeculativeRange(station.RobID, next.BranchRobID, hasNext)
		} else {
			e.metrics.Mispredictions++
			e.flush(cp, actual, station.InstrIndex)
		}
	}
}

// flush implements spec.md §4.H's misprediction flush procedure.
func (e *Engine) flush(cp Checkpoint, actual bool, instrIndex int) {
	e.rob.FlushSpeculative(cp.BranchRobID)
	for _, flushed := range e.rob.LastFlushed() {
		e.rs.FreeByRobID(flushed.RobID)
		e.lsb.FreeByRobID(flushed.RobID)
	}

	e.rat.Restore(cp.RATSnapshot)
	e.checkpoints.DiscardFrom(cp.BranchRobID)
	e.fetchPC = e.correctTarget(cp, actual, instrIndex)
}

// correctTarget returns the fetch target the mispredicted branch should
// have taken: the branch's immediate target if it was actually taken,
// otherwise the instruction right after it.
func (e *Engine) correctTarget(cp Checkpoint, actual bool, instrIndex int) int {
	if actual {
		return e.program[instrIndex].Immediate
	}
	return cp.FetchPC + 1
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
