package netlist

import (
	"fmt"

	"github.com/gatesim/gatesim/component"
	"github.com/gatesim/gatesim/value"
)

// Netlist owns every component and wire of a circuit, by id, and keeps
// the bidirectional port<->wire indices consistent as components and
// wires are added and removed.
//
// Iteration order is always insertion order: hash-map iteration order
// must never leak into observable behavior, so replay is reproducible.
type Netlist struct {
	components   map[string]*component.Component
	componentIDs []string

	wires   map[string]*Wire
	wireIDs []string
}

// New returns an empty netlist.
func New() *Netlist {
	return &Netlist{
		components: make(map[string]*component.Component),
		wires:      make(map[string]*Wire),
	}
}

// Component returns the component with the given id.
func (n *Netlist) Component(id string) (*component.Component, bool) {
	c, ok := n.components[id]
	return c, ok
}

// Wire returns the wire with the given id.
func (n *Netlist) Wire(id string) (*Wire, bool) {
	w, ok := n.wires[id]
	return w, ok
}

// ComponentIDs returns every component id in insertion order.
func (n *Netlist) ComponentIDs() []string {
	return append([]string(nil), n.componentIDs...)
}

// WireIDs returns every wire id in insertion order.
func (n *Netlist) WireIDs() []string {
	return append([]string(nil), n.wireIDs...)
}

// Clear removes every component and wire.
func (n *Netlist) Clear() {
	n.components = make(map[string]*component.Component)
	n.componentIDs = nil
	n.wires = make(map[string]*Wire)
	n.wireIDs = nil
}

// AddComponent constructs and registers a new component from d. It is
// the only way new components enter the netlist.
func (n *Netlist) AddComponent(d component.Descriptor) (*component.Component, error) {
	if _, exists := n.components[d.ID]; exists {
		return nil, fmt.Errorf("netlist: component %q already exists", d.ID)
	}
	c, err := component.Construct(d)
	if err != nil {
		return nil, err
	}
	n.components[d.ID] = c
	n.componentIDs = append(n.componentIDs, d.ID)
	return c, nil
}

// RemoveComponent removes every wire incident to id (via RemoveWire)
// and then drops the component itself. It returns the list of removed
// wire ids, for callers that also need to purge pending events for
// them.
func (n *Netlist) RemoveComponent(id string) []string {
	var removedWires []string
	for _, wid := range n.WireIDs() {
		w := n.wires[wid]
		if w.SourceComponentID == id || w.TargetComponentID == id {
			n.RemoveWire(wid)
			removedWires = append(removedWires, wid)
		}
	}
	delete(n.components, id)
	n.componentIDs = removeString(n.componentIDs, id)
	return removedWires
}

// AddWire creates a new wire record and updates both endpoints'
// connection lists. A missing endpoint component makes the wire inert,
// not an error; a port index outside its component's arity is silently
// clamped out of the connection list while the wire record still
// exists.
func (n *Netlist) AddWire(d Descriptor) (*Wire, error) {
	if _, exists := n.wires[d.ID]; exists {
		return nil, fmt.Errorf("netlist: wire %q already exists", d.ID)
	}

	w := &Wire{
		ID:                 d.ID,
		SourceComponentID:  d.SourceGateID,
		SourceOutputIndex:  d.SourcePortIndex,
		TargetComponentID:  d.TargetGateID,
		TargetInputIndex:   d.TargetPortIndex,
		State:              value.HiZ,
	}
	if d.State != nil {
		w.State = *d.State
	}

	src, srcOK := n.components[d.SourceGateID]
	dst, dstOK := n.components[d.TargetGateID]
	w.dangling = !srcOK || !dstOK

	if srcOK && d.SourcePortIndex >= 0 && d.SourcePortIndex < len(src.Outputs) {
		src.Outputs[d.SourcePortIndex].Wires = append(src.Outputs[d.SourcePortIndex].Wires, d.ID)
		if d.State == nil {
			w.State = src.Outputs[d.SourcePortIndex].State
		}
	}
	if dstOK && d.TargetPortIndex >= 0 && d.TargetPortIndex < len(dst.Inputs) {
		dst.Inputs[d.TargetPortIndex].Wires = append(dst.Inputs[d.TargetPortIndex].Wires, d.ID)
	}

	n.wires[d.ID] = w
	n.wireIDs = append(n.wireIDs, d.ID)
	return w, nil
}

// RemoveWire updates both endpoints' connection lists and drops the
// wire record. It returns the target component id and input index that
// need re-resolving, and whether that target connection actually
// existed.
func (n *Netlist) RemoveWire(id string) (targetComponentID string, targetInputIndex int, ok bool) {
	w, exists := n.wires[id]
	if !exists {
		return "", 0, false
	}

	if src, srcOK := n.components[w.SourceComponentID]; srcOK &&
		w.SourceOutputIndex >= 0 && w.SourceOutputIndex < len(src.Outputs) {
		src.Outputs[w.SourceOutputIndex].Wires = removeString(src.Outputs[w.SourceOutputIndex].Wires, id)
	}

	targetOK := false
	if dst, dstOK := n.components[w.TargetComponentID]; dstOK &&
		w.TargetInputIndex >= 0 && w.TargetInputIndex < len(dst.Inputs) {
		dst.Inputs[w.TargetInputIndex].Wires = removeString(dst.Inputs[w.TargetInputIndex].Wires, id)
		targetOK = true
	}

	delete(n.wires, id)
	n.wireIDs = removeString(n.wireIDs, id)

	return w.TargetComponentID, w.TargetInputIndex, targetOK
}

// ResolveInput recomputes a component's input port state from the
// current cached states of every wire in its connection list. An empty
// connection list resolves to Unknown.
func (n *Netlist) ResolveInput(componentID string, portIndex int) value.State {
	c, ok := n.components[componentID]
	if !ok || portIndex < 0 || portIndex >= len(c.Inputs) {
		return value.Unknown
	}
	wireIDs := c.Inputs[portIndex].Wires
	if len(wireIDs) == 0 {
		return value.Unknown
	}
	states := make([]value.State, len(wireIDs))
	for i, wid := range wireIDs {
		if w, ok := n.wires[wid]; ok {
			states[i] = w.State
		} else {
			states[i] = value.HiZ
		}
	}
	return value.Resolve(states)
}

func removeString(ss []string, target string) []string {
	for i, s := range ss {
		if s == target {
			return append(ss[:i], ss[i+1:]...)
		}
	}
	return ss
}
