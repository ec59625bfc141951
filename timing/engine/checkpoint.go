package engine

import "github.com/gopherarch/tomasulo-sim/isa"

// Checkpoint captures enough state at a BEQ's issue to roll back a
// misprediction (spec.md §4.G).
type Checkpoint struct {
	ID                 int
	BranchRobID        int
	PredictedDirection bool
	SpeculatedNextPC   int
	RATSnapshot        [isa.NumRegisters]int
	FetchPC            int
}

// CheckpointStack holds live checkpoints in program order, oldest first —
// a flush truncates it from the named checkpoint to the youngest end,
// while a correct resolution removes just one entry — modeled on the original
// tool's queued checkpoints with a single "active" (most recent) one
// governing new speculative entries (SPEC_FULL.md §4).
type CheckpointStack struct {
	checkpoints []Checkpoint
	nextID      int
}

// NewCheckpointStack returns an empty checkpoint stack.
func NewCheckpointStack() *CheckpointStack {
	return &CheckpointStack{}
}

// Push records a new checkpoint, returning its id.
func (c *CheckpointStack) Push(branchRobID int, predicted bool, nextPC int, rat [isa.NumRegisters]int, fetchPC int) int {
	id := c.nextID
	c.nextID++
	c.checkpoints = append(c.checkpoints, Checkpoint{
		ID:                 id,
		BranchRobID:        branchRobID,
		PredictedDirection: predicted,
		SpeculatedNextPC:   nextPC,
		RATSnapshot:        rat,
		FetchPC:            fetchPC,
	})
	return id
}

// Live reports whether any checkpoint is outstanding — i.e. whether a
// newly issued entry must be marked speculative.
func (c *CheckpointStack) Live() bool {
	return len(c.checkpoints) > 0
}

// Depth returns the number of outstanding checkpoints, the nesting depth
// of live speculation.
func (c *CheckpointStack) Depth() int {
	return len(c.checkpoints)
}

// Oldest returns the oldest outstanding checkpoint, the next one eligible
// to resolve.
func (c *CheckpointStack) Oldest() (Checkpoint, bool) {
	if len(c.checkpoints) == 0 {
		return Checkpoint{}, false
	}
	return c.checkpoints[0], true
}

// DiscardOldest drops the oldest checkpoint on a correct resolution.
func (c *CheckpointStack) DiscardOldest() {
	if len(c.checkpoints) == 0 {
		return
	}
	c.checkpoints = c.checkpoints[1:]
}

// Find locates the checkpoint for branchRobID.
func (c *CheckpointStack) Find(branchRobID int) (Checkpoint, bool) {
	for _, cp := range c.checkpoints {
		if cp.BranchRobID == branchRobID {
			return cp, true
		}
	}
	return Checkpoint{}, false
}

// DiscardByID removes exactly the checkpoint for branchRobID, on a
// correct resolution that is not necessarily the oldest outstanding one.
func (c *CheckpointStack) DiscardByID(branchRobID int) {
	for i, cp := range c.checkpoints {
		if cp.BranchRobID == branchRobID {
			c.checkpoints = append(c.checkpoints[:i], c.checkpoints[i+1:]...)
			return
		}
	}
}

// NextAfter returns the checkpoint immediately following branchRobID in
// program order, if any — the checkpoint that still governs speculation
// once branchRobID's is discarded.
func (c *CheckpointStack) NextAfter(branchRobID int) (Checkpoint, bool) {
	for i, cp := range c.checkpoints {
		if cp.BranchRobID == branchRobID {
			if i+1 < len(c.checkpoints) {
				return c.checkpoints[i+1], true
			}
			return Checkpoint{}, false
		}
	}
	return Checkpoint{}, false
}

// DiscardFrom drops the checkpoint matching branchRobID and every
// checkpoint nested inside it, on a misprediction flush.
func (c *CheckpointStack) DiscardFrom(branchRobID int) {
	for i, cp := range c.checkpoints {
		if cp.BranchRobID == branchRobID {
			c.checkpoints = c.checkpoints[:i]
			return
		}
	}
}

// All returns every outstanding checkpoint, oldest first, for the viewer
// boundary.
func (c *CheckpointStack) All() []Checkpoint {
	return c.checkpoints
}
