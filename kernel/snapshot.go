package kernel

import (
	"github.com/gatesim/gatesim/component"
	"github.com/gatesim/gatesim/value"
)

// Observer receives incremental updates as the kernel computes them,
// between the periodic Snapshots the driver publishes. It is optional:
// a nil observer costs nothing. Grounded on a Hookable/HookPos pattern
// (sim.Hookable, core/port.go), adapted to plain synchronous callbacks
// since this kernel has no concurrent hook-dispatch machinery to
// protect.
type Observer interface {
	OnPortChange(componentID string, portIndex int, old, new value.State)
	OnComponentEvaluated(componentID string)
}

// Stats are simulator-health counters exposed on a Snapshot, grounded
// on the role a monitoring.Monitor plays elsewhere in the corpus (not
// imported — see DESIGN.md "engine-shape" — but kept as a plain struct
// here).
type Stats struct {
	EventsProcessed int
	StepsRun        int
	MaxQueueDepth   int
}

// GateSnapshot is one component's observable state.
type GateSnapshot struct {
	ID            string
	Type          string
	InputStates   []value.State
	OutputStates  []value.State
	InternalState any
}

// WireSnapshot is one wire's observable state.
type WireSnapshot struct {
	ID              string
	State           value.State
	SourceGateID    string
	SourcePortIndex int
	TargetGateID    string
	TargetPortIndex int
}

// Snapshot is a read-only copy of kernel state published to observers
// at frame boundaries: a full picture every time, never a diff.
type Snapshot struct {
	Time  uint64
	Gates []GateSnapshot
	Wires []WireSnapshot
	Stats Stats
}

// Snapshot takes a full, independent copy of the current kernel state.
// External observers never see live pointers into the kernel's own
// maps.
func (k *Kernel) Snapshot() Snapshot {
	gates := make([]GateSnapshot, 0, len(k.netlist.ComponentIDs()))
	for _, id := range k.netlist.ComponentIDs() {
		c, ok := k.netlist.Component(id)
		if !ok {
			continue
		}
		gates = append(gates, gateSnapshotOf(c))
	}

	wires := make([]WireSnapshot, 0, len(k.netlist.WireIDs()))
	for _, id := range k.netlist.WireIDs() {
		w, ok := k.netlist.Wire(id)
		if !ok {
			continue
		}
		wires = append(wires, WireSnapshot{
			ID:              w.ID,
			State:           w.State,
			SourceGateID:    w.SourceComponentID,
			SourcePortIndex: w.SourceOutputIndex,
			TargetGateID:    w.TargetComponentID,
			TargetPortIndex: w.TargetInputIndex,
		})
	}

	return Snapshot{
		Time:  uint64(k.currentTime),
		Gates: gates,
		Wires: wires,
		Stats: k.stats,
	}
}

func gateSnapshotOf(c *component.Component) GateSnapshot {
	internal := c.Internal
	switch st := internal.(type) {
	case component.BitsState:
		internal = component.BitsState{Bits: append([]value.State(nil), st.Bits...)}
	case component.MemoryState:
		mem := make(map[int][]value.State, len(st.Memory))
		for addr, word := range st.Memory {
			mem[addr] = append([]value.State(nil), word...)
		}
		internal = component.MemoryState{Width: st.Width, Memory: mem}
	}
	return GateSnapshot{
		ID:            c.ID,
		Type:          c.Type,
		InputStates:   c.InputStates(),
		OutputStates:  c.OutputStates(),
		InternalState: internal,
	}
}

// Validate runs a non-fatal structural pre-flight check: dangling wires
// and out-of-range port indices are surfaced as warnings rather than
// silently tolerated, without changing their non-fatal effect on
// simulation.
func (k *Kernel) Validate() []string {
	var warnings []string
	for _, id := range k.netlist.WireIDs() {
		w, ok := k.netlist.Wire(id)
		if !ok {
			continue
		}
		src, srcOK := k.netlist.Component(w.SourceComponentID)
		dst, dstOK := k.netlist.Component(w.TargetComponentID)
		if !srcOK {
			warnings = append(warnings, "wire "+id+": dangling source "+w.SourceComponentID)
		} else if w.SourceOutputIndex < 0 || w.SourceOutputIndex >= len(src.Outputs) {
			warnings = append(warnings, "wire "+id+": source port index out of range")
		}
		if !dstOK {
			warnings = append(warnings, "wire "+id+": dangling target "+w.TargetComponentID)
		} else if w.TargetInputIndex < 0 || w.TargetInputIndex >= len(dst.Inputs) {
			warnings = append(warnings, "wire "+id+": target port index out of range")
		}
	}
	return warnings
}
