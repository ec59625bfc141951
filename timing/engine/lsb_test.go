package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gopherarch/tomasulo-sim/isa"
	"github.com/gopherarch/tomasulo-sim/timing/engine"
)

var _ = Describe("LSB", func() {
	var lsb *engine.LSB

	BeforeEach(func() {
		lsb = engine.NewLSB()
	})

	It("computes the address immediately when the base is already ready", func() {
		id, ok := lsb.Issue(isa.OpLW, 3, 0, 8, 0, engine.ReadyOperand(100), engine.ReadyOperand(0))
		Expect(ok).To(BeTrue())
		entry := lsb.Entry(id)
		Expect(entry.AddressReady).To(BeTrue())
		Expect(entry.Address).To(Equal(int64(108)))
	})

	It("computes the address once a waiting base resolves", func() {
		id, _ := lsb.Issue(isa.OpLW, 3, 0, 8, 0, engine.WaitingOperand(1), engine.ReadyOperand(0))
		Expect(lsb.Entry(id).AddressReady).To(BeFalse())

		lsb.Snoop(1, 100)
		entry := lsb.Entry(id)
		Expect(entry.AddressReady).To(BeTrue())
		Expect(entry.Address).To(Equal(int64(108)))
	})

	It("resolves a waiting store data operand on snoop", func() {
		id, _ := lsb.Issue(isa.OpSW, 3, 0, 0, 0, engine.ReadyOperand(0), engine.WaitingOperand(2))
		lsb.Snoop(2, 77)
		Expect(lsb.Entry(id).Data.Ready()).To(BeTrue())
		Expect(lsb.Entry(id).Data.Value()).To(Equal(int64(77)))
	})

	Describe("memory-ordering rule", func() {
		It("blocks a load behind an older store with an unresolved address", func() {
			lsb.Issue(isa.OpSW, 1, 0, 0, 0, engine.WaitingOperand(9), engine.ReadyOperand(5)) // seq 0, address unknown
			lsb.Issue(isa.OpLW, 2, 1, 0, 1, engine.ReadyOperand(100), engine.ReadyOperand(0)) // seq 1, ready

			_, ok := lsb.DispatchReady(fixedLatency(1))
			Expect(ok).To(BeFalse())
		})

		It("blocks a load behind an older store with an aliasing address", func() {
			lsb.Issue(isa.OpSW, 1, 0, 0, 0, engine.ReadyOperand(100), engine.ReadyOperand(5)) // seq 0, addr 100
			lsb.Issue(isa.OpLW, 2, 1, 0, 1, engine.ReadyOperand(100), engine.ReadyOperand(0)) // seq 1, addr 100

			id, ok := lsb.DispatchReady(fixedLatency(1))
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(0)) // the store itself may proceed

			_, ok = lsb.DispatchReady(fixedLatency(1))
			Expect(ok).To(BeFalse()) // the aliasing load stays blocked
		})

		It("allows a load to proceed past an older store to a different address", func() {
			lsb.Issue(isa.OpSW, 1, 0, 0, 0, engine.ReadyOperand(200), engine.ReadyOperand(5)) // seq 0, addr 200
			lsb.Issue(isa.OpLW, 2, 1, 0, 1, engine.ReadyOperand(100), engine.ReadyOperand(0)) // seq 1, addr 100

			first, ok := lsb.DispatchReady(fixedLatency(1))
			Expect(ok).To(BeTrue())
			second, ok := lsb.DispatchReady(fixedLatency(1))
			Expect(ok).To(BeTrue())
			Expect([]int{first, second}).To(ConsistOf(0, 1))
		})

		It("does not block a load behind a younger store", func() {
			lsb.Issue(isa.OpLW, 2, 0, 0, 0, engine.ReadyOperand(100), engine.ReadyOperand(0))     // seq 0
			lsb.Issue(isa.OpSW, 1, 1, 0, 1, engine.WaitingOperand(9), engine.ReadyOperand(5))     // seq 1, unresolved

			id, ok := lsb.DispatchReady(fixedLatency(1))
			Expect(ok).To(BeTrue())
			Expect(id).To(Equal(0))
		})
	})

	Describe("commit-time draining", func() {
		It("keeps a writable store busy until explicitly freed", func() {
			id, _ := lsb.Issue(isa.OpSW, 1, 0, 0, 0, engine.ReadyOperand(100), engine.ReadyOperand(5))
			lsb.DispatchReady(fixedLatency(0))

			Expect(lsb.WritableStores()).To(ConsistOf(id))
			Expect(lsb.Entry(id).Busy).To(BeTrue())

			lsb.Free(id)
			Expect(lsb.Entry(id).Busy).To(BeFalse())
		})

		It("finds a busy entry by its ROB id", func() {
			lsb.Issue(isa.OpSW, 42, 0, 0, 0, engine.ReadyOperand(100), engine.ReadyOperand(5))
			id, ok := lsb.FindByRobID(42)
			Expect(ok).To(BeTrue())
			Expect(lsb.Entry(id).RobID).To(Equal(42))
		})
	})

	It("frees every entry matching a ROB id on a flush", func() {
		lsb.Issue(isa.OpLW, 5, 0, 0, 0, engine.ReadyOperand(100), engine.ReadyOperand(0))
		lsb.FreeByRobID(5)
		Expect(lsb.Entry(0).Busy).To(BeFalse())
	})
})
