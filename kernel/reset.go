package kernel

import (
	"github.com/gatesim/gatesim/component"
	"github.com/gatesim/gatesim/event"
)

// Reset clears the event queue, resets every component's internal
// state to its constructor default (ROM memory excepted), zeroes
// simulated time, re-reads every wire's cached state from its source's
// output and re-resolves every input port, and re-schedules the initial
// full evaluations at time 0.
func (k *Kernel) Reset() {
	k.queue.Clear()
	k.currentTime = 0
	k.state = Idle

	for _, id := range k.netlist.ComponentIDs() {
		c, ok := k.netlist.Component(id)
		if !ok {
			continue
		}
		component.Reset(c)
		k.queue.Push(event.Event{Time: 0, ComponentID: id, PortIndex: event.NoPort})
	}

	for _, wid := range k.netlist.WireIDs() {
		w, _ := k.netlist.Wire(wid)
		if src, ok := k.netlist.Component(w.SourceComponentID); ok &&
			w.SourceOutputIndex >= 0 && w.SourceOutputIndex < len(src.Outputs) {
			w.State = src.Outputs[w.SourceOutputIndex].State
		}
	}
	for _, id := range k.netlist.ComponentIDs() {
		c, _ := k.netlist.Component(id)
		for i := range c.Inputs {
			c.Inputs[i].State = k.netlist.ResolveInput(id, i)
		}
	}
}
