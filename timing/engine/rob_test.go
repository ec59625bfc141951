package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gopherarch/tomasulo-sim/timing/engine"
)

var _ = Describe("ROB", func() {
	var rob *engine.ROB

	BeforeEach(func() {
		rob = engine.NewROB()
	})

	It("starts empty and issuable", func() {
		Expect(rob.Len()).To(Equal(0))
		Expect(rob.CanIssue()).To(BeTrue())
	})

	It("allocates entries at increasing ids until full", func() {
		for i := 0; i < engine.RobCapacity; i++ {
			Expect(rob.CanIssue()).To(BeTrue())
			id := rob.Allocate(engine.ROBReg, 1, i, false)
			Expect(id).To(Equal(i))
		}
		Expect(rob.CanIssue()).To(BeFalse())
		Expect(rob.Len()).To(Equal(engine.RobCapacity))
	})

	It("panics when Allocate is called on a full ROB", func() {
		for i := 0; i < engine.RobCapacity; i++ {
			rob.Allocate(engine.ROBReg, 1, i, false)
		}
		Expect(func() { rob.Allocate(engine.ROBReg, 1, 99, false) }).To(Panic())
	})

	It("is not ready to commit until marked ready", func() {
		rob.Allocate(engine.ROBReg, 1, 0, false)
		_, ok := rob.HeadReady()
		Expect(ok).To(BeFalse())

		rob.MarkReady(0, 42)
		id, ok := rob.HeadReady()
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(0))
		Expect(rob.Entry(0).Value).To(Equal(int64(42)))
	})

	It("commits the head and advances it", func() {
		rob.Allocate(engine.ROBReg, 1, 0, false)
		rob.Allocate(engine.ROBReg, 2, 1, false)
		rob.MarkReady(0, 10)

		entry, ok := rob.CommitHead()
		Expect(ok).To(BeTrue())
		Expect(entry.Dest).To(Equal(1))
		Expect(rob.Len()).To(Equal(1))

		_, ok = rob.HeadReady()
		Expect(ok).To(BeFalse()) // second entry not yet ready
	})

	It("wraps around the circular buffer", func() {
		for i := 0; i < engine.RobCapacity; i++ {
			rob.Allocate(engine.ROBReg, 1, i, false)
		}
		rob.MarkReady(0, 1)
		rob.CommitHead()

		id := rob.Allocate(engine.ROBReg, 1, 100, false)
		Expect(id).To(Equal(0)) // reused slot after wraparound
	})

	Describe("FlushSpeculative", func() {
		It("drops every entry younger than the branch and tags them flushed", func() {
			rob.Allocate(engine.ROBReg, 1, 0, false)  // 0: survives
			branchID := rob.Allocate(engine.ROBBranch, -1, 1, false) // 1: survives
			rob.Allocate(engine.ROBReg, 2, 2, true)   // 2: flushed
			rob.Allocate(engine.ROBReg, 3, 3, true)   // 3: flushed

			rob.FlushSpeculative(branchID)

			Expect(rob.Len()).To(Equal(2))
			flushed := rob.LastFlushed()
			Expect(flushed).To(HaveLen(2))
			for _, f := range flushed {
				Expect(f.Stage).To(Equal(engine.StageFlushed))
			}
		})

		It("allows re-allocation into the freed tail slots", func() {
			rob.Allocate(engine.ROBReg, 1, 0, false)
			branchID := rob.Allocate(engine.ROBBranch, -1, 1, false)
			rob.Allocate(engine.ROBReg, 2, 2, true)

			rob.FlushSpeculative(branchID)
			Expect(rob.CanIssue()).To(BeTrue())

			id := rob.Allocate(engine.ROBReg, 9, 50, false)
			Expect(id).To(Equal(2))
		})
	})

	Describe("ClearSpeculativeRange", func() {
		It("promotes entries between two branches, leaving the rest untouched", func() {
			outer := rob.Allocate(engine.ROBBranch, -1, 0, false)
			a := rob.Allocate(engine.ROBReg, 1, 1, true)
			inner := rob.Allocate(engine.ROBBranch, -1, 2, true)
			b := rob.Allocate(engine.ROBReg, 2, 3, true)

			rob.ClearSpeculativeRange(outer, inner, true)

			Expect(rob.Entry(a).Speculative).To(BeFalse())
			Expect(rob.Entry(inner).Speculative).To(BeTrue())
			Expect(rob.Entry(b).Speculative).To(BeTrue())
		})

		It("promotes through the tail when there is no next branch", func() {
			outer := rob.Allocate(engine.ROBBranch, -1, 0, false)
			a := rob.Allocate(engine.ROBReg, 1, 1, true)
			b := rob.Allocate(engine.ROBReg, 2, 2, true)

			rob.ClearSpeculativeRange(outer, 0, false)

			Expect(rob.Entry(a).Speculative).To(BeFalse())
			Expect(rob.Entry(b).Speculative).To(BeFalse())
		})
	})

	It("records its own slot id on each entry", func() {
		id := rob.Allocate(engine.ROBReg, 5, 0, false)
		Expect(rob.Entry(id).RobID).To(Equal(id))
	})

	It("renders kinds and stages for display", func() {
		Expect(engine.ROBReg.String()).To(Equal("REG"))
		Expect(engine.ROBStore.String()).To(Equal("STORE"))
		Expect(engine.ROBBranch.String()).To(Equal("BRANCH"))

		Expect(engine.StageIssue.String()).To(Equal("ISSUE"))
		Expect(engine.StageExecute.String()).To(Equal("EXECUTE"))
		Expect(engine.StageWriteResult.String()).To(Equal("WRITE_RESULT"))
		Expect(engine.StageCommit.String()).To(Equal("COMMIT"))
		Expect(engine.StageFlushed.String()).To(Equal("FLUSHED"))
	})
})
