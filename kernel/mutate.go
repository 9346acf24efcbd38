package kernel

import (
	"github.com/gatesim/gatesim/component"
	"github.com/gatesim/gatesim/event"
	"github.com/gatesim/gatesim/netlist"
	"github.com/gatesim/gatesim/value"
)

// AddGate constructs and registers a new component, scheduling its
// first evaluation at currentTime. Unlike
// Initialize, a failure here only rejects this one operation; the rest
// of the netlist is untouched.
func (k *Kernel) AddGate(d component.Descriptor) error {
	c, err := k.netlist.AddComponent(d)
	if err != nil {
		return k.errorf("addGate: %w", err)
	}
	switch c.Type {
	case "CLOCK":
		k.clockRegister = append(k.clockRegister, d.ID)
	case "PULSE":
		k.pulseRegister = append(k.pulseRegister, d.ID)
	}
	k.queue.Push(event.Event{Time: k.currentTime, ComponentID: d.ID, PortIndex: event.NoPort})
	return nil
}

// RemoveGate removes a component, every wire incident to it, and its
// pending events.
func (k *Kernel) RemoveGate(id string) {
	k.netlist.RemoveComponent(id)
	k.queue.RemoveEventsFor(id)
	k.clockRegister = removeString(k.clockRegister, id)
	k.pulseRegister = removeString(k.pulseRegister, id)
}

// AddWire creates a wire, wires up both endpoints' connection lists,
// then propagates the source's current output onto the new wire so the
// downstream input re-resolves and the target re-schedules.
func (k *Kernel) AddWire(d netlist.Descriptor) error {
	w, err := k.netlist.AddWire(d)
	if err != nil {
		return k.errorf("addWire: %w", err)
	}
	// netlist.AddWire already cached the source's output on w, so
	// propagateWire would see no change; resolve and schedule directly.
	target := k.componentOrNil(w.TargetComponentID)
	if target == nil || w.TargetInputIndex < 0 || w.TargetInputIndex >= len(target.Inputs) {
		return nil
	}
	target.Inputs[w.TargetInputIndex].State = k.netlist.ResolveInput(w.TargetComponentID, w.TargetInputIndex)
	k.queue.Push(event.Event{
		Time:        k.currentTime + 1,
		ComponentID: w.TargetComponentID,
		PortIndex:   w.TargetInputIndex,
	})
	return nil
}

// RemoveWire drops a wire and schedules the target for re-evaluation
// one tick later, since its input resolves differently without this
// driver.
func (k *Kernel) RemoveWire(id string) {
	targetID, targetIdx, ok := k.netlist.RemoveWire(id)
	if !ok {
		return
	}
	if target := k.componentOrNil(targetID); target != nil {
		target.Inputs[targetIdx].State = k.netlist.ResolveInput(targetID, targetIdx)
	}
	k.queue.Push(event.Event{
		Time:        k.currentTime + 1,
		ComponentID: targetID,
		PortIndex:   event.NoPort,
	})
}

// Toggle flips a TOGGLE component's value and schedules its
// re-evaluation at currentTime.
func (k *Kernel) Toggle(id string) error {
	c := k.componentOrNil(id)
	if c == nil || c.Type != "TOGGLE" {
		return k.errorf("toggle: %q is not a TOGGLE component", id)
	}
	component.Toggle(c)
	k.scheduleNow(id)
	return nil
}

// SetInput sets a TOGGLE component's value and schedules its
// re-evaluation at currentTime.
func (k *Kernel) SetInput(id string, v value.State) error {
	c := k.componentOrNil(id)
	if c == nil || c.Type != "TOGGLE" {
		return k.errorf("setInput: %q is not a TOGGLE component", id)
	}
	component.SetToggleValue(c, v)
	k.scheduleNow(id)
	return nil
}

// TriggerPulse arms a PULSE component and schedules its re-evaluation
// at currentTime.
func (k *Kernel) TriggerPulse(id string) error {
	c := k.componentOrNil(id)
	if c == nil || c.Type != "PULSE" {
		return k.errorf("triggerPulse: %q is not a PULSE component", id)
	}
	component.TriggerPulse(c, k.currentTime)
	k.scheduleNow(id)
	return nil
}

// SetKeypadValue sets a KEYPAD component's stored value.
func (k *Kernel) SetKeypadValue(id string, v int) error {
	c := k.componentOrNil(id)
	if c == nil || c.Type != "KEYPAD" {
		return k.errorf("setKeypadValue: %q is not a KEYPAD component", id)
	}
	component.SetKeypadValue(c, v)
	k.scheduleNow(id)
	return nil
}

// SetMemoryData replaces a RAM/ROM component's memory map.
func (k *Kernel) SetMemoryData(id string, memory map[int][]value.State) error {
	c := k.componentOrNil(id)
	if c == nil {
		return k.errorf("setMemoryData: unknown component %q", id)
	}
	switch c.Type {
	case "RAM_16X4", "RAM_16X8", "ROM_16X4", "ROM_16X8":
		component.SetMemoryData(c, memory)
	default:
		return k.errorf("setMemoryData: %q is not a memory component", id)
	}
	k.scheduleNow(id)
	return nil
}

func (k *Kernel) scheduleNow(componentID string) {
	k.queue.Push(event.Event{Time: k.currentTime, ComponentID: componentID, PortIndex: event.NoPort})
}

func removeString(ss []string, target string) []string {
	for i, s := range ss {
		if s == target {
			return append(ss[:i], ss[i+1:]...)
		}
	}
	return ss
}
