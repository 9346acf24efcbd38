package kernel_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/golang/mock/gomock"

	"github.com/gatesim/gatesim/component"
	"github.com/gatesim/gatesim/kernel"
	"github.com/gatesim/gatesim/netlist"
	"github.com/gatesim/gatesim/value"
)

func wireDescriptor(id, src string, srcPort int, dst string, dstPort int) netlist.Descriptor {
	return netlist.Descriptor{
		ID:              id,
		SourceGateID:    src,
		SourcePortIndex: srcPort,
		TargetGateID:    dst,
		TargetPortIndex: dstPort,
	}
}

var _ = Describe("Kernel", func() {
	var k *kernel.Kernel

	BeforeEach(func() {
		k = kernel.New(kernel.DefaultConfig())
	})

	Describe("NOT propagation", func() {
		It("settles within 10 steps and flips on toggle", func() {
			err := k.Initialize(
				[]component.Descriptor{
					{ID: "t", Type: "TOGGLE"},
					{ID: "n", Type: "NOT"},
					{ID: "l", Type: "LED"},
				},
				[]netlist.Descriptor{
					wireDescriptor("w1", "t", 0, "n", 0),
					wireDescriptor("w2", "n", 0, "l", 0),
				},
			)
			Expect(err).NotTo(HaveOccurred())

			k.Step(10)

			n, _ := k.Netlist().Component("n")
			l, _ := k.Netlist().Component("l")
			Expect(n.Outputs[0].State).To(Equal(value.ONE))
			Expect(l.Inputs[0].State).To(Equal(value.ONE))

			Expect(k.Toggle("t")).To(Succeed())
			k.Step(10)

			Expect(n.Outputs[0].State).To(Equal(value.ZERO))
			Expect(l.Inputs[0].State).To(Equal(value.ZERO))
		})
	})

	Describe("2-input AND truth table", func() {
		DescribeTable("reaches the expected steady state",
			func(v1, v2, want value.State) {
				err := k.Initialize(
					[]component.Descriptor{
						{ID: "t1", Type: "TOGGLE", OutputStates: []value.State{v1}},
						{ID: "t2", Type: "TOGGLE", OutputStates: []value.State{v2}},
						{ID: "a", Type: "AND"},
					},
					[]netlist.Descriptor{
						wireDescriptor("w1", "t1", 0, "a", 0),
						wireDescriptor("w2", "t2", 0, "a", 1),
					},
				)
				Expect(err).NotTo(HaveOccurred())

				k.Step(10)

				a, _ := k.Netlist().Component("a")
				Expect(a.Outputs[0].State).To(Equal(want))
			},
			Entry("0,0 -> 0", value.ZERO, value.ZERO, value.ZERO),
			Entry("1,0 -> 0", value.ONE, value.ZERO, value.ZERO),
			Entry("0,1 -> 0", value.ZERO, value.ONE, value.ZERO),
			Entry("1,1 -> 1", value.ONE, value.ONE, value.ONE),
		)
	})

	Describe("D flip-flop capture", func() {
		It("captures D on the clock's rising edge", func() {
			err := k.Initialize(
				[]component.Descriptor{
					{ID: "d", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
					{ID: "clk", Type: "CLOCK", Params: map[string]any{"period": 4, "dutyCycle": 0.5}},
					{ID: "ff", Type: "D_FLIPFLOP"},
				},
				[]netlist.Descriptor{
					wireDescriptor("w1", "d", 0, "ff", 0),
					wireDescriptor("w2", "clk", 0, "ff", 1),
				},
			)
			Expect(err).NotTo(HaveOccurred())

			// Several full clock periods guarantee at least one real
			// ZERO->ONE transition reaches the flip-flop, regardless of
			// the clock's starting phase.
			k.Step(20)

			ff, _ := k.Netlist().Component("ff")
			Expect(ff.Outputs[0].State).To(Equal(value.ONE))
			Expect(ff.Outputs[1].State).To(Equal(value.ZERO))

			Expect(k.SetInput("d", value.ZERO)).To(Succeed())
			k.Step(20)

			Expect(ff.Outputs[0].State).To(Equal(value.ZERO))
			Expect(ff.Outputs[1].State).To(Equal(value.ONE))
		})
	})

	Describe("tri-state bus conflict", func() {
		It("resolves CONFLICT when two enabled drivers disagree", func() {
			err := k.Initialize(
				[]component.Descriptor{
					{ID: "d1", Type: "TOGGLE", OutputStates: []value.State{value.ZERO}},
					{ID: "d2", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
					{ID: "en1", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
					{ID: "en2", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
					{ID: "b1", Type: "TRI_BUFFER"},
					{ID: "b2", Type: "TRI_BUFFER"},
					{ID: "target", Type: "BUFFER"},
				},
				[]netlist.Descriptor{
					wireDescriptor("wd1", "d1", 0, "b1", 0),
					wireDescriptor("we1", "en1", 0, "b1", 1),
					wireDescriptor("wd2", "d2", 0, "b2", 0),
					wireDescriptor("we2", "en2", 0, "b2", 1),
					wireDescriptor("wj1", "b1", 0, "target", 0),
					wireDescriptor("wj2", "b2", 0, "target", 0),
				},
			)
			Expect(err).NotTo(HaveOccurred())

			k.Step(10)
			target, _ := k.Netlist().Component("target")
			Expect(target.Inputs[0].State).To(Equal(value.Conflict))

			Expect(k.SetInput("en2", value.ZERO)).To(Succeed())
			k.Step(10)
			Expect(target.Inputs[0].State).To(Equal(value.ZERO))
		})
	})

	Describe("ripple counter", func() {
		It("wraps at 16 and asserts CARRY exactly once", func() {
			// Clocked by hand (toggle/step pairs) rather than a free-
			// running CLOCK component, so each rising edge is exactly
			// accounted for.
			err := k.Initialize(
				[]component.Descriptor{
					{ID: "clk", Type: "TOGGLE", OutputStates: []value.State{value.ZERO}},
					{ID: "clr", Type: "TOGGLE", OutputStates: []value.State{value.ZERO}},
					{ID: "en", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
					{ID: "load", Type: "TOGGLE", OutputStates: []value.State{value.ZERO}},
					{ID: "updown", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
					{ID: "d0", Type: "TOGGLE"},
					{ID: "d1", Type: "TOGGLE"},
					{ID: "d2", Type: "TOGGLE"},
					{ID: "d3", Type: "TOGGLE"},
					{ID: "cnt", Type: "COUNTER_4BIT"},
				},
				[]netlist.Descriptor{
					wireDescriptor("wclk", "clk", 0, "cnt", 0),
					wireDescriptor("wclr", "clr", 0, "cnt", 1),
					wireDescriptor("wen", "en", 0, "cnt", 2),
					wireDescriptor("wload", "load", 0, "cnt", 3),
					wireDescriptor("wud", "updown", 0, "cnt", 4),
					wireDescriptor("wd0", "d0", 0, "cnt", 5),
					wireDescriptor("wd1", "d1", 0, "cnt", 6),
					wireDescriptor("wd2", "d2", 0, "cnt", 7),
					wireDescriptor("wd3", "d3", 0, "cnt", 8),
				},
			)
			Expect(err).NotTo(HaveOccurred())

			k.Step(1) // establish a CLK=ZERO baseline before the first real edge

			cnt, _ := k.Netlist().Component("cnt")
			carryAsserted := 0
			prevCarry := cnt.Outputs[4].State

			for i := 0; i < 16; i++ {
				Expect(k.SetInput("clk", value.ONE)).To(Succeed()) // rising edge
				k.Step(2)
				if cnt.Outputs[4].State == value.ONE && prevCarry != value.ONE {
					carryAsserted++
				}
				prevCarry = cnt.Outputs[4].State

				Expect(k.SetInput("clk", value.ZERO)).To(Succeed()) // falling edge
				k.Step(2)
			}

			Expect(carryAsserted).To(Equal(1))
			Expect(cnt.Outputs[0].State).To(Equal(value.ZERO))
			Expect(cnt.Outputs[1].State).To(Equal(value.ZERO))
			Expect(cnt.Outputs[2].State).To(Equal(value.ZERO))
			Expect(cnt.Outputs[3].State).To(Equal(value.ZERO))
		})
	})

	Describe("RAM write/read round-trip", func() {
		It("reads back a synchronously written word", func() {
			err := k.Initialize(
				[]component.Descriptor{
					{ID: "a0", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
					{ID: "a1", Type: "TOGGLE", OutputStates: []value.State{value.ZERO}},
					{ID: "a2", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
					{ID: "a3", Type: "TOGGLE", OutputStates: []value.State{value.ZERO}},
					{ID: "din0", Type: "TOGGLE", OutputStates: []value.State{value.ZERO}},
					{ID: "din1", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
					{ID: "din2", Type: "TOGGLE", OutputStates: []value.State{value.ZERO}},
					{ID: "din3", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
					{ID: "we", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
					{ID: "clk", Type: "TOGGLE", OutputStates: []value.State{value.ZERO}},
					{ID: "ram", Type: "RAM_16X4"},
				},
				[]netlist.Descriptor{
					wireDescriptor("wa0", "a0", 0, "ram", 0),
					wireDescriptor("wa1", "a1", 0, "ram", 1),
					wireDescriptor("wa2", "a2", 0, "ram", 2),
					wireDescriptor("wa3", "a3", 0, "ram", 3),
					wireDescriptor("wdin0", "din0", 0, "ram", 4),
					wireDescriptor("wdin1", "din1", 0, "ram", 5),
					wireDescriptor("wdin2", "din2", 0, "ram", 6),
					wireDescriptor("wdin3", "din3", 0, "ram", 7),
					wireDescriptor("wwe", "we", 0, "ram", 8),
					wireDescriptor("wclk", "clk", 0, "ram", 9),
				},
			)
			Expect(err).NotTo(HaveOccurred())

			k.Step(1) // establish a CLK=ZERO baseline before the first real edge

			Expect(k.SetInput("clk", value.ONE)).To(Succeed()) // rising edge, WE=ONE: synchronous write
			k.Step(2)

			Expect(k.SetInput("we", value.ZERO)).To(Succeed())
			k.Step(2)

			ram, _ := k.Netlist().Component("ram")
			Expect(ram.Outputs[0].State).To(Equal(value.ZERO))
			Expect(ram.Outputs[1].State).To(Equal(value.ONE))
			Expect(ram.Outputs[2].State).To(Equal(value.ZERO))
			Expect(ram.Outputs[3].State).To(Equal(value.ONE))
		})
	})

	Describe("invariants", func() {
		It("never decreases currentTime (property 2)", func() {
			Expect(k.Initialize(nil, nil)).To(Succeed())
			last := k.CurrentTime()
			for i := 0; i < 20; i++ {
				k.Step(1)
				Expect(k.CurrentTime()).To(BeNumerically(">=", last))
				last = k.CurrentTime()
			}
		})

		It("restores every non-ROM component and zeroes time on reset (property 3)", func() {
			Expect(k.Initialize(
				[]component.Descriptor{{ID: "t", Type: "TOGGLE"}},
				nil,
			)).To(Succeed())
			Expect(k.Toggle("t")).To(Succeed())
			k.Step(5)

			k.Reset()

			Expect(k.CurrentTime()).To(BeNumerically("==", 0))
			t, _ := k.Netlist().Component("t")
			Expect(t.Outputs[0].State).To(Equal(value.ZERO))
			Expect(k.State()).To(Equal(kernel.Idle))
		})

		It("drops a removed gate and leaves no wire referencing it (property 4)", func() {
			Expect(k.Initialize(
				[]component.Descriptor{
					{ID: "t", Type: "TOGGLE"},
					{ID: "n", Type: "NOT"},
				},
				[]netlist.Descriptor{wireDescriptor("w1", "t", 0, "n", 0)},
			)).To(Succeed())

			k.RemoveGate("t")

			Expect(k.Netlist().WireIDs()).To(BeEmpty())
			_, stillThere := k.Netlist().Component("t")
			Expect(stillThere).To(BeFalse())
		})
	})

	Describe("Observer", func() {
		It("is notified of every changed output during a step", func() {
			ctrl := gomock.NewController(GinkgoT())
			defer ctrl.Finish()

			obs := NewMockObserver(ctrl)
			obs.EXPECT().OnPortChange("n", 0, value.Unknown, value.ZERO)
			obs.EXPECT().OnComponentEvaluated(gomock.Any()).AnyTimes()

			k := kernel.NewBuilder().WithObserver(obs).Build()
			Expect(k.Initialize(
				[]component.Descriptor{
					{ID: "t", Type: "TOGGLE", OutputStates: []value.State{value.ONE}},
					{ID: "n", Type: "NOT"},
				},
				[]netlist.Descriptor{wireDescriptor("w1", "t", 0, "n", 0)},
			)).To(Succeed())

			k.Step(3)
		})
	})

	Describe("Dispatch", func() {
		It("replies ready to init and stateUpdate to step", func() {
			resp := k.Dispatch(kernel.Message{
				Kind:  "init",
				Gates: []component.Descriptor{{ID: "t", Type: "TOGGLE"}},
			})
			Expect(resp.Kind).To(Equal("ready"))

			resp = k.Dispatch(kernel.Message{Kind: "step", Count: 1})
			Expect(resp.Kind).To(Equal("stateUpdate"))
			Expect(resp.Snapshot.Gates).To(HaveLen(1))
		})

		It("replies error to an unrecognized message kind", func() {
			resp := k.Dispatch(kernel.Message{Kind: "bogus"})
			Expect(resp.Kind).To(Equal("error"))
		})
	})
})
