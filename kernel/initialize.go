package kernel

import (
	"github.com/gatesim/gatesim/component"
	"github.com/gatesim/gatesim/event"
	"github.com/gatesim/gatesim/netlist"
)

// Initialize replaces the entire kernel state with the given components
// and wires, registers clocks/pulses, and schedules an initial full
// evaluation for every component at time 0. An unknown component type
// during Initialize is fatal to the whole operation: the kernel keeps
// its previous state rather than being left half-built.
func (k *Kernel) Initialize(components []component.Descriptor, wires []netlist.Descriptor) error {
	newNet := netlist.New()
	var clocks, pulses []string

	for _, d := range components {
		c, err := newNet.AddComponent(d)
		if err != nil {
			return k.errorf("initialize: %w", err)
		}
		switch c.Type {
		case "CLOCK":
			clocks = append(clocks, d.ID)
		case "PULSE":
			pulses = append(pulses, d.ID)
		}
	}

	for _, d := range wires {
		if _, err := newNet.AddWire(d); err != nil {
			return k.errorf("initialize: %w", err)
		}
	}

	// Every input port's state must equal the wire-resolver applied to
	// its connection list before the first evaluation runs: AddWire only
	// links the connection lists, it does not itself resolve a port's
	// State.
	for _, id := range newNet.ComponentIDs() {
		c, _ := newNet.Component(id)
		for i := range c.Inputs {
			c.Inputs[i].State = newNet.ResolveInput(id, i)
		}
	}

	k.netlist = newNet
	k.clockRegister = clocks
	k.pulseRegister = pulses
	k.queue.Clear()
	k.currentTime = 0
	k.stats = Stats{}
	k.state = Idle

	for _, id := range newNet.ComponentIDs() {
		k.queue.Push(event.Event{Time: 0, ComponentID: id, PortIndex: event.NoPort})
	}

	return nil
}
