// Package driver adapts wall-clock time to simulated ticks. It owns
// the accumulator pattern that turns irregular Tick() calls into a
// deterministic count of kernel.Step calls, and publishes the
// resulting Snapshot to a Publisher after every tick.
//
// Grounded on a Tick-driven component pair elsewhere in the corpus
// (api/driver.go's driverImpl, core's TickingComponent shape): where
// that driver ticks an akita-scheduled component on a float VTimeInSec,
// this driver ticks on a caller-supplied wall-clock reading and steps
// the integer-time kernel instead.
package driver

import (
	"fmt"

	"github.com/gatesim/gatesim/kernel"
)

// MaxStepsPerFrame bounds how many kernel steps one Tick call may
// request, backpressure against CPU saturation after a long stall.
const MaxStepsPerFrame = 100

const (
	minMsPerTick = 1
	maxMsPerTick = 1000
)

// Publisher receives a snapshot after every Tick: snapshots are
// published by the driver, never on every individual mutation.
type Publisher interface {
	Publish(kernel.Snapshot)
}

// PublisherFunc adapts a plain function to a Publisher.
type PublisherFunc func(kernel.Snapshot)

// Publish calls f.
func (f PublisherFunc) Publish(s kernel.Snapshot) { f(s) }

// Driver paces a Kernel's Step calls to wall-clock time using an
// accumulator. It holds no goroutines of its own: the caller drives
// Tick from its own event loop, matching the kernel's single-threaded,
// cooperative model.
type Driver struct {
	kernel *kernel.Kernel
	pub    Publisher

	msPerTick   int
	lastTimeMS  int64
	accumulator int64
	started     bool
}

// New returns a Driver over k publishing to pub, with the default
// pacing of 16ms/tick (~60Hz).
func New(k *kernel.Kernel, pub Publisher) *Driver {
	return &Driver{
		kernel:    k,
		pub:       pub,
		msPerTick: 16,
	}
}

// SetSpeed adjusts the driver's pacing, clamped to [1, 1000] ms/tick.
func (d *Driver) SetSpeed(msPerTick int) {
	if msPerTick < minMsPerTick {
		msPerTick = minMsPerTick
	}
	if msPerTick > maxMsPerTick {
		msPerTick = maxMsPerTick
	}
	d.msPerTick = msPerTick
}

// Start records the starting wall-clock reading. nowMS is
// milliseconds on an arbitrary monotonic epoch; callers typically pass
// time.Now().UnixMilli().
func (d *Driver) Start(nowMS int64) {
	d.lastTimeMS = nowMS
	d.accumulator = 0
	d.started = true
}

// Tick converts the elapsed wall-clock time since the last Tick (or
// Start) into a whole number of kernel steps, runs them, and publishes
// a snapshot. It is a no-op, returning 0, until Start has been called.
func (d *Driver) Tick(nowMS int64) int {
	if !d.started {
		return 0
	}

	dt := nowMS - d.lastTimeMS
	d.lastTimeMS = nowMS
	if dt < 0 {
		dt = 0
	}
	d.accumulator += dt

	n := int(d.accumulator / int64(d.msPerTick))
	d.accumulator -= int64(n) * int64(d.msPerTick)

	if n > MaxStepsPerFrame {
		n = MaxStepsPerFrame
		d.accumulator = 0
	}

	if n > 0 {
		d.kernel.Step(n)
	}
	if d.pub != nil {
		d.pub.Publish(d.kernel.Snapshot())
	}
	return n
}

// Dispatch forwards msg to the underlying kernel, so callers that own
// a Driver do not need to also hold a *kernel.Kernel reference just to
// issue control messages.
func (d *Driver) Dispatch(msg kernel.Message) kernel.Response {
	if msg.Kind == "setSpeed" {
		d.SetSpeed(msg.MsPerTick)
		return kernel.Response{Kind: "ready"}
	}
	return d.kernel.Dispatch(msg)
}

// Kernel exposes the underlying kernel for read-only inspection.
func (d *Driver) Kernel() *kernel.Kernel { return d.kernel }

func (d *Driver) String() string {
	return fmt.Sprintf("driver(msPerTick=%d, accumulator=%dms)", d.msPerTick, d.accumulator)
}
