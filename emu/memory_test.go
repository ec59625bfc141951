package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gopherarch/tomasulo-sim/emu"
)

var _ = Describe("Memory", func() {
	It("defaults to DefaultWords when given a non-positive size", func() {
		mem := emu.NewMemory(0)
		Expect(mem.Size()).To(Equal(emu.DefaultWords))
	})

	It("reads back a written word", func() {
		mem := emu.NewMemory(16)
		Expect(mem.Write(4, 99)).To(Succeed())

		v, err := mem.Read(4)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(int64(99)))
	})

	It("rejects a misaligned address", func() {
		mem := emu.NewMemory(16)
		_, err := mem.Read(1)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an address past the configured size", func() {
		mem := emu.NewMemory(4)
		_, err := mem.Read(4 * emu.WordSize)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a negative address", func() {
		mem := emu.NewMemory(16)
		_, err := mem.Read(-4)
		Expect(err).To(HaveOccurred())
	})

	It("snapshots a copy independent of further writes", func() {
		mem := emu.NewMemory(4)
		Expect(mem.Write(0, 7)).To(Succeed())

		snap := mem.Snapshot()
		Expect(mem.Write(0, 8)).To(Succeed())

		Expect(snap[0]).To(Equal(int64(7)))
	})
})
