// Package component implements the component catalogue: a tagged
// family of gate/flip-flop/register/memory/IO variants sharing one
// Component shape, each with a typed evaluate function instead of a
// virtual method — an instr.ISA name-to-behavior registry (instr/isa.go)
// generalized from instruction mnemonics to component types.
package component

import (
	"github.com/gatesim/gatesim/catalogue"
	"github.com/gatesim/gatesim/event"
	"github.com/gatesim/gatesim/value"
)

// Registry is the process-wide catalogue of every component type this
// package registers. Kernel/netlist code looks types up here; nothing
// outside this package calls Register directly.
var Registry = catalogue.NewRegistry[*Component, Descriptor]()

// Construct builds a new Component of the named type from d. It is the
// single entry point netlist/kernel code uses: unknown types are
// reported via catalogue.ErrUnknownType, never panic.
func Construct(d Descriptor) (*Component, error) {
	spec, ok := Registry.Lookup(d.Type)
	if !ok {
		return nil, &catalogue.ErrUnknownType{Type: d.Type}
	}
	return spec.Construct(d)
}

// Evaluate runs c's registered evaluator at time now. It is a no-op
// (not an error) if c's type has since vanished from the registry — the
// component is just skipped.
func Evaluate(c *Component, now event.Time) {
	spec, ok := Registry.Lookup(c.Type)
	if !ok {
		return
	}
	spec.Evaluate(c, now)
}

// Reset restores c's internal state to its constructor default (ROM
// memory excepted) and clears edge-detection history.
func Reset(c *Component) {
	spec, ok := Registry.Lookup(c.Type)
	if ok && spec.Reset != nil {
		spec.Reset(c)
	}
	c.PrevInputs = nil
}

// Port is an indexed input or output position on a Component: it
// carries the current resolved State and the ids of every wire
// connected to it.
type Port struct {
	State value.State
	Wires []string
}

// Descriptor is the wire-format shape a Component is constructed from
// or snapshotted into.
type Descriptor struct {
	ID            string
	Type          string
	InputStates   []value.State
	OutputStates  []value.State
	InternalState any
	Params        map[string]any
}

// Component is one instance of a catalogue variant: a fixed input/output
// arity, optional internal state, a propagation delay, and construction
// parameters.
type Component struct {
	ID    string
	Type  string
	Delay int

	Inputs  []Port
	Outputs []Port

	// PrevInputs is the snapshot of Inputs[i].State taken after the
	// previous evaluation, used for edge detection.
	PrevInputs []value.State

	// Internal holds the variant-specific internal-state record (flip-
	// flop Q, counter value, shift-register contents, RAM/ROM memory
	// map, clock phase, pulse expiry, toggle value). nil for purely
	// combinational variants.
	Internal any

	Params map[string]any
}

// InputStates returns the current state of every input port, in order.
func (c *Component) InputStates() []value.State {
	out := make([]value.State, len(c.Inputs))
	for i, p := range c.Inputs {
		out[i] = p.State
	}
	return out
}

// OutputStates returns the current state of every output port, in order.
func (c *Component) OutputStates() []value.State {
	out := make([]value.State, len(c.Outputs))
	for i, p := range c.Outputs {
		out[i] = p.State
	}
	return out
}

// SnapshotInputs copies the current input states into PrevInputs, done
// once per evaluation so the *next* evaluation can detect edges.
func (c *Component) SnapshotInputs() {
	if cap(c.PrevInputs) < len(c.Inputs) {
		c.PrevInputs = make([]value.State, len(c.Inputs))
	}
	c.PrevInputs = c.PrevInputs[:len(c.Inputs)]
	for i, p := range c.Inputs {
		c.PrevInputs[i] = p.State
	}
}

// RisingEdge reports whether input i made a strict ZERO->ONE transition
// since the last SnapshotInputs call.
func (c *Component) RisingEdge(i int) bool {
	if i < 0 || i >= len(c.PrevInputs) || i >= len(c.Inputs) {
		return false
	}
	return c.PrevInputs[i] == value.ZERO && c.Inputs[i].State == value.ONE
}

// FallingEdge reports whether input i made a strict ONE->ZERO transition
// since the last SnapshotInputs call.
func (c *Component) FallingEdge(i int) bool {
	if i < 0 || i >= len(c.PrevInputs) || i >= len(c.Inputs) {
		return false
	}
	return c.PrevInputs[i] == value.ONE && c.Inputs[i].State == value.ZERO
}

// ToDescriptor snapshots c into the wire-format Descriptor shape.
func (c *Component) ToDescriptor() Descriptor {
	return Descriptor{
		ID:            c.ID,
		Type:          c.Type,
		InputStates:   c.InputStates(),
		OutputStates:  c.OutputStates(),
		InternalState: c.Internal,
		Params:        c.Params,
	}
}

func makePorts(n int) []Port {
	ports := make([]Port, n)
	for i := range ports {
		ports[i] = Port{State: value.Unknown}
	}
	return ports
}
