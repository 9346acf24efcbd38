package driver_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gatesim/gatesim/component"
	"github.com/gatesim/gatesim/driver"
	"github.com/gatesim/gatesim/kernel"
)

// recordingPublisher counts how many snapshots it has received and
// keeps the last one, standing in for a real UI subscriber.
type recordingPublisher struct {
	count int
	last  kernel.Snapshot
}

func (p *recordingPublisher) Publish(s kernel.Snapshot) {
	p.count++
	p.last = s
}

func newTestDriver(pub driver.Publisher) *driver.Driver {
	k := kernel.New(kernel.DefaultConfig())
	Expect(k.Initialize(
		[]component.Descriptor{{ID: "t", Type: "TOGGLE"}},
		nil,
	)).To(Succeed())
	return driver.New(k, pub)
}

var _ = Describe("Driver", func() {
	Describe("Tick", func() {
		It("is a no-op before Start is called", func() {
			pub := &recordingPublisher{}
			d := newTestDriver(pub)

			n := d.Tick(1000)
			Expect(n).To(Equal(0))
			Expect(pub.count).To(Equal(0))
		})

		It("steps once elapsed time reaches msPerTick and publishes a snapshot", func() {
			pub := &recordingPublisher{}
			d := newTestDriver(pub)
			d.SetSpeed(10)

			d.Start(0)
			n := d.Tick(25)

			Expect(n).To(Equal(2))
			Expect(pub.count).To(Equal(1))
			Expect(pub.last.Time).To(Equal(uint64(2)))
		})

		It("carries a fractional remainder into the next tick", func() {
			pub := &recordingPublisher{}
			d := newTestDriver(pub)
			d.SetSpeed(10)
			d.Start(0)

			Expect(d.Tick(9)).To(Equal(0))  // 9ms elapsed, 1ms short of a tick
			Expect(d.Tick(15)).To(Equal(1)) // +6ms = 15ms accumulated -> one tick, 5ms carried
		})

		It("clamps to MaxStepsPerFrame after a long stall", func() {
			pub := &recordingPublisher{}
			d := newTestDriver(pub)
			d.SetSpeed(1)
			d.Start(0)

			n := d.Tick(int64(driver.MaxStepsPerFrame) * 10)
			Expect(n).To(Equal(driver.MaxStepsPerFrame))
		})
	})

	Describe("SetSpeed", func() {
		It("clamps below the minimum", func() {
			d := newTestDriver(nil)
			d.SetSpeed(0)
			d.Start(0)
			Expect(d.Tick(1)).To(Equal(1))
		})
	})

	Describe("Dispatch", func() {
		It("intercepts setSpeed instead of forwarding to the kernel", func() {
			d := newTestDriver(nil)
			resp := d.Dispatch(kernel.Message{Kind: "setSpeed", MsPerTick: 50})
			Expect(resp.Kind).To(Equal("ready"))
		})

		It("forwards every other message kind to the kernel", func() {
			d := newTestDriver(nil)
			resp := d.Dispatch(kernel.Message{Kind: "step", Count: 1})
			Expect(resp.Kind).To(Equal("stateUpdate"))
		})
	})
})
