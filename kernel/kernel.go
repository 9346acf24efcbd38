// Package kernel implements the simulation kernel: it binds
// the event queue, the netlist store and the component catalogue,
// schedules evaluations, propagates output changes across wires,
// aggregates multi-driver nets, and advances simulated time.
//
// The kernel is single-threaded and cooperative: every exported method
// either returns synchronously or only enqueues state for a later
// step; nothing here spawns a goroutine. This is the one deliberate
// point of departure from a concurrent, akita-style engine (see
// DESIGN.md "engine-shape") — everything else about its shape (a
// Builder to construct it, Tick-style stepping, named/observable
// ports) is carried over.
package kernel

import (
	"fmt"

	"github.com/gatesim/gatesim/component"
	"github.com/gatesim/gatesim/event"
	"github.com/gatesim/gatesim/netlist"
	"github.com/gatesim/gatesim/value"
)

// RunState is the kernel's own state machine.
type RunState int

const (
	Idle RunState = iota
	Running
	Paused
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	default:
		return "Invalid"
	}
}

// Config enumerates the kernel's tunables.
type Config struct {
	// MaxEventsPerStep caps the number of events processed in one
	// processOneStep call: backpressure against unstable feedback
	// loops.
	MaxEventsPerStep int

	// MaxTimePerStep is reserved for future use.
	MaxTimePerStep int
}

// DefaultConfig returns the simulator's documented default tunables.
func DefaultConfig() Config {
	return Config{MaxEventsPerStep: 10000, MaxTimePerStep: 1000}
}

// Update is one observable (componentId, portIndex, old, new) output
// change produced by a processOneStep call.
type Update struct {
	ComponentID string
	PortIndex   int
	Old         value.State
	New         value.State
}

// Kernel is the simulation kernel.
type Kernel struct {
	netlist *netlist.Netlist
	queue   *event.Queue

	currentTime event.Time

	clockRegister []string
	pulseRegister []string

	state  RunState
	config Config

	observer Observer
	stats    Stats
}

// New returns an empty, Idle kernel with the given config.
func New(cfg Config) *Kernel {
	return &Kernel{
		netlist: netlist.New(),
		queue:   event.NewQueue(),
		state:   Idle,
		config:  cfg,
	}
}

// Builder assembles a Kernel via chained With* calls, the pattern
// config.DeviceBuilder and core.Builder both use elsewhere in the
// corpus.
type Builder struct {
	cfg      Config
	observer Observer
}

// NewBuilder returns a Builder seeded with DefaultConfig.
func NewBuilder() Builder {
	return Builder{cfg: DefaultConfig()}
}

// WithMaxEventsPerStep overrides Config.MaxEventsPerStep.
func (b Builder) WithMaxEventsPerStep(n int) Builder {
	b.cfg.MaxEventsPerStep = n
	return b
}

// WithMaxTimePerStep overrides Config.MaxTimePerStep.
func (b Builder) WithMaxTimePerStep(n int) Builder {
	b.cfg.MaxTimePerStep = n
	return b
}

// WithObserver registers an Observer that receives incremental updates
// as processOneStep computes them.
func (b Builder) WithObserver(o Observer) Builder {
	b.observer = o
	return b
}

// Build constructs the Kernel.
func (b Builder) Build() *Kernel {
	k := New(b.cfg)
	k.observer = b.observer
	return k
}

// State returns the kernel's current run state.
func (k *Kernel) State() RunState { return k.state }

// CurrentTime returns the kernel's current simulated time.
func (k *Kernel) CurrentTime() event.Time { return k.currentTime }

// Run transitions Idle/Paused -> Running.
func (k *Kernel) Run() {
	if k.state != Running {
		k.state = Running
	}
}

// Pause transitions Running -> Paused. It is a no-op from any other
// state.
func (k *Kernel) Pause() {
	if k.state == Running {
		k.state = Paused
	}
}

// componentOrNil is a small helper used throughout the kernel package
// so a removed/unknown component id degrades to a silent no-op:
// events for removed components are silently skipped.
func (k *Kernel) componentOrNil(id string) *component.Component {
	c, ok := k.netlist.Component(id)
	if !ok {
		return nil
	}
	return c
}

// Netlist exposes the underlying store for read-only inspection (e.g.
// by cmd/gatesimview). Mutation must go through the kernel's own
// methods so events/time stay consistent.
func (k *Kernel) Netlist() *netlist.Netlist { return k.netlist }

func (k *Kernel) errorf(format string, args ...any) error {
	return fmt.Errorf("kernel: "+format, args...)
}
