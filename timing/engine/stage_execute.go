package engine

// executeStage implements spec.md §4.H step 3: advance every currently
// executing entry, then dispatch every newly ready arithmetic station and
// load/store entry, not just one of each.
func (e *Engine) executeStage() {
	e.rs.AdvanceExecuting()
	e.lsb.AdvanceExecuting()

	for {
		if _, ok := e.rs.DispatchReady(e.latency.GetLatency); !ok {
			break
		}
	}
	for {
		if _, ok := e.lsb.DispatchReady(e.latency.GetLatency); !ok {
			break
		}
	}

	for _, s := range e.rs.Snapshot() {
		if s.Dispatched && !s.Writable {
			e.rob.SetStage(s.RobID, StageExecute)
		}
	}
	for _, l := range e.lsb.Snapshot() {
		if l.Dispatched && !l.Writable {
			e.rob.SetStage(l.RobID, StageExecute)
		}
	}
}
