package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gopherarch/tomasulo-sim/timing/engine"
)

var _ = Describe("RAT", func() {
	var rat *engine.RAT

	BeforeEach(func() {
		rat = engine.NewRAT()
	})

	It("starts with every register pointing at the architectural file", func() {
		for reg := 0; reg < 32; reg++ {
			Expect(rat.Read(reg)).To(Equal(engine.Architectural))
		}
	})

	It("renames a register to an in-flight producer", func() {
		rat.Rename(3, 7)
		Expect(rat.Read(3)).To(Equal(7))
	})

	It("never renames R0", func() {
		rat.Rename(0, 7)
		Expect(rat.Read(0)).To(Equal(engine.Architectural))
	})

	It("clears a mapping only if it still points at the given producer", func() {
		rat.Rename(3, 7)
		rat.ClearIfPointsTo(3, 9) // stale producer, no effect
		Expect(rat.Read(3)).To(Equal(7))

		rat.ClearIfPointsTo(3, 7)
		Expect(rat.Read(3)).To(Equal(engine.Architectural))
	})

	It("snapshots and restores the full mapping", func() {
		rat.Rename(1, 2)
		rat.Rename(3, 4)
		snap := rat.Snapshot()

		rat.Rename(1, 99)
		rat.Restore(snap)

		Expect(rat.Read(1)).To(Equal(2))
		Expect(rat.Read(3)).To(Equal(4))
	})
})
