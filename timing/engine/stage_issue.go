package engine

import "github.com/gopherarch/tomasulo-sim/isa"

// issueStage implements spec.md §4.H step 4. It issues at most one
// instruction from fetchPC when the ROB and the instruction's target
// structure (RS or LSB) both have room, renaming its destination in the
// RAT and taking a checkpoint for BEQ. Reports whether it issued.
func (e *Engine) issueStage() bool {
	if e.fetchPC < 0 || e.fetchPC >= len(e.program) {
		return false
	}
	inst := e.program[e.fetchPC]

	if !e.rob.CanIssue() {
		return false
	}
	if inst.Op.IsArithmetic() && !e.rs.HasFreeSlot() {
		return false
	}
	if inst.Op.IsMemory() && !e.lsb.HasFreeSlot() {
		return false
	}

	speculative := e.checkpoints.Live()

	switch {
	case inst.Op.IsMemory():
		e.issueMemory(inst, speculative)
	case inst.Op == isa.OpBEQ:
		e.issueBranch(inst, speculative)
		e.metrics.TotalInstructions++
		return true
	default:
		e.issueArithmetic(inst, speculative)
	}

	e.metrics.TotalInstructions++
	e.fetchPC++
	return true
}

// operandFor resolves a source register to a ready value or a waiting
// tag, per spec.md §4.D: architectural registers are copied directly; an
// in-flight producer is copied if already ready, else waited on.
func (e *Engine) operandFor(reg int) Operand {
	if reg == isa.NoRegister {
		return ReadyOperand(0)
	}
	robID := e.rat.Read(reg)
	if robID == Architectural {
		return ReadyOperand(e.regs.Read(reg))
	}
	entry := e.rob.Entry(robID)
	if entry.Ready {
		return ReadyOperand(entry.Value)
	}
	return WaitingOperand(robID)
}

func (e *Engine) issueArithmetic(inst isa.Instruction, speculative bool) {
	robID := e.rob.Allocate(ROBReg, inst.Dest, inst.Index, speculative)
	vj := e.operandFor(inst.Src1)
	vk := e.operandFor(inst.Src2)
	e.rs.Issue(inst.Op, robID, inst.Index, vj, vk)
	e.rat.Rename(inst.Dest, robID)
}

func (e *Engine) issueMemory(inst isa.Instruction, speculative bool) {
	base := e.operandFor(inst.Src1)

	if inst.Op == isa.OpLW {
		robID := e.rob.Allocate(ROBReg, inst.Dest, inst.Index, speculative)
		e.lsb.Issue(inst.Op, robID, inst.Index, inst.Immediate, e.nextSeq, base, ReadyOperand(0))
		e.rat.Rename(inst.Dest, robID)
	} else {
		robID := e.rob.Allocate(ROBStore, isa.NoRegister, inst.Index, speculative)
		data := e.operandFor(inst.Src2)
		e.lsb.Issue(inst.Op, robID, inst.Index, inst.Immediate, e.nextSeq, base, data)
	}
	e.nextSeq++
}

func (e *Engine) issueBranch(inst isa.Instruction, speculative bool) {
	robID := e.rob.Allocate(ROBBranch, isa.NoRegister, inst.Index, speculative)
	vj := e.operandFor(inst.Src1)
	vk := e.operandFor(inst.Src2)
	e.rs.Issue(inst.Op, robID, inst.Index, vj, vk)

	predicted := e.predictor.Predict(inst.Index)
	nextPC := e.fetchPC + 1
	if predicted {
		nextPC = inst.Immediate
	}
	e.checkpoints.Push(robID, predicted, nextPC, e.rat.Snapshot(), e.fetchPC)
	e.fetchPC = nextPC
}
