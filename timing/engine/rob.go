package engine

// RobCapacity is the fixed number of ROB entries (spec.md §4.B).
const RobCapacity = 16

// ROBKind tags the architectural side effect a ROB entry will have at
// commit.
type ROBKind uint8

// Recognized ROB entry kinds.
const (
	ROBReg ROBKind = iota
	ROBStore
	ROBBranch
)

// String renders the kind for logging and CLI display.
func (k ROBKind) String() string {
	switch k {
	case ROBReg:
		return "REG"
	case ROBStore:
		return "STORE"
	case ROBBranch:
		return "BRANCH"
	default:
		return "UNKNOWN"
	}
}

// PipelineStage is cold display metadata for one instruction's position in
// the pipeline (spec.md §9, "display stage as cold metadata"). The engine
// never branches on it.
type PipelineStage uint8

// Recognized display stages.
const (
	StageIssue PipelineStage = iota
	StageExecute
	StageWriteResult
	StageCommit
	StageFlushed
)

// String renders the stage for logging and CLI display.
func (s PipelineStage) String() string {
	switch s {
	case StageIssue:
		return "ISSUE"
	case StageExecute:
		return "EXECUTE"
	case StageWriteResult:
		return "WRITE_RESULT"
	case StageCommit:
		return "COMMIT"
	case StageFlushed:
		return "FLUSHED"
	default:
		return "UNKNOWN"
	}
}

// ROBEntry is one slot of the reorder buffer (spec.md §3).
type ROBEntry struct {
	Busy        bool
	RobID       int
	Kind        ROBKind
	Dest        int // register id (ROBReg) or NoRegister (ROBStore, ROBBranch)
	Value       int64
	Ready       bool
	Speculative bool
	InstrIndex  int
	Stage       PipelineStage
}

// ROB is the circular, fixed-capacity reorder buffer (spec.md §4.B).
type ROB struct {
	entries [RobCapacity]ROBEntry
	head    int
	tail    int
	count   int

	// lastFlushed holds the entries dropped by the most recent
	// FlushSpeculative call, tagged FLUSHED (spec.md §4.H). It is replaced
	// by the next flush and is not part of Snapshot.
	lastFlushed []ROBEntry
}

// NewROB returns an empty reorder buffer.
func NewROB() *ROB {
	return &ROB{}
}

// CanIssue reports whether the ROB has room for another entry.
func (r *ROB) CanIssue() bool {
	return r.count < RobCapacity
}

// Allocate places a new entry at the tail. The caller must check
// CanIssue first; Allocate panics on a full ROB, matching the
// precondition-failure contract of spec.md §4.B.
func (r *ROB) Allocate(kind ROBKind, dest, instrIndex int, speculative bool) int {
	if !r.CanIssue() {
		panic("engine: Allocate called on a full ROB")
	}
	id := r.tail
	r.entries[id] = ROBEntry{
		Busy:        true,
		RobID:       id,
		Kind:        kind,
		Dest:        dest,
		InstrIndex:  instrIndex,
		Speculative: speculative,
		Stage:       StageIssue,
	}
	r.tail = (r.tail + 1) % RobCapacity
	r.count++
	return id
}

// MarkReady records a produced value for rob id, idempotently.
func (r *ROB) MarkReady(id int, value int64) {
	r.entries[id].Ready = true
	r.entries[id].Value = value
}

// SetStage updates an entry's display stage.
func (r *ROB) SetStage(id int, stage PipelineStage) {
	r.entries[id].Stage = stage
}

// ClearSpeculative promotes an entry out of speculative state, used when
// its governing branch resolves correctly.
func (r *ROB) ClearSpeculative(id int) {
	r.entries[id].Speculative = false
}

// Entry returns a copy of the entry at id.
func (r *ROB) Entry(id int) ROBEntry {
	return r.entries[id]
}

// HeadReady reports whether the oldest entry is busy and ready to commit.
func (r *ROB) HeadReady() (id int, ok bool) {
	if r.count == 0 {
		return 0, false
	}
	if !r.entries[r.head].Busy || !r.entries[r.head].Ready {
		return 0, false
	}
	return r.head, true
}

// CommitHead pops the oldest entry. The caller applies its architectural
// side effect before calling this.
func (r *ROB) CommitHead() (ROBEntry, bool) {
	if r.count == 0 {
		return ROBEntry{}, false
	}
	entry := r.entries[r.head]
	r.entries[r.head] = ROBEntry{}
	r.head = (r.head + 1) % RobCapacity
	r.count--
	return entry, true
}

// ClearSpeculativeRange promotes every entry strictly younger than
// fromBranchID out of speculative state, up to and including toBranchID
// if hasTo, or through the tail otherwise. Used when a branch's
// checkpoint is discarded on correct resolution: entries it alone made
// speculative stop being speculative, including the nested branch at
// toBranchID itself, but entries younger than toBranchID, still governed
// by its live checkpoint, are untouched.
func (r *ROB) ClearSpeculativeRange(fromBranchID, toBranchID int, hasTo bool) {
	fromPos := (fromBranchID - r.head + RobCapacity) % RobCapacity
	end := r.count
	if hasTo {
		end = (toBranchID-r.head+RobCapacity)%RobCapacity + 1
	}
	for pos := fromPos + 1; pos < end; pos++ {
		slot := (r.head + pos) % RobCapacity
		r.entries[slot].Speculative = false
	}
}

// FlushSpeculative drops every entry younger than branchID and resets the
// tail to one past it, per the flush procedure of spec.md §4.H.
func (r *ROB) FlushSpeculative(branchID int) {
	branchPos := (branchID - r.head + RobCapacity) % RobCapacity

	r.lastFlushed = r.lastFlushed[:0]
	for pos := branchPos + 1; pos < r.count; pos++ {
		slot := (r.head + pos) % RobCapacity
		flushed := r.entries[slot]
		flushed.Stage = StageFlushed
		r.lastFlushed = append(r.lastFlushed, flushed)
		r.entries[slot] = ROBEntry{}
	}
	r.count = branchPos + 1
	r.tail = (r.head + r.count) % RobCapacity
}

// LastFlushed returns the entries dropped by the most recent
// FlushSpeculative call.
func (r *ROB) LastFlushed() []ROBEntry {
	return r.lastFlushed
}

// Len returns the number of busy entries.
func (r *ROB) Len() int {
	return r.count
}

// Snapshot returns every busy entry in program (oldest-first) order, for
// the viewer boundary.
func (r *ROB) Snapshot() []ROBEntry {
	out := make([]ROBEntry, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.entries[(r.head+i)%RobCapacity]
	}
	return out
}
