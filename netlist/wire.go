// Package netlist owns the components and wires of a circuit and
// maintains the bidirectional port<->wire indices needed to propagate
// values. Grounded on a Tile mesh / DeviceBuilder pair (cgra.Device,
// config.DeviceBuilder): here the "mesh" is an arbitrary point-to-point
// netlist instead of a fixed grid, and wires replace mesh connections.
package netlist

import "github.com/gatesim/gatesim/value"

// Wire is a point-to-point connection from one component's output port
// to another's input port. A source output may drive many wires
// (fan-out); a target input may be driven by many wires (multi-driver
// net, requiring resolution).
type Wire struct {
	ID string

	SourceComponentID string
	SourceOutputIndex int

	TargetComponentID string
	TargetInputIndex  int

	// State is the most recently resolved value observed on this wire.
	State value.State

	// dangling is true when SourceComponentID or TargetComponentID did
	// not resolve to a live component at the time the wire was added:
	// the wire exists but stays inert.
	dangling bool
}

// Descriptor is the wire-format shape a Wire is constructed from or
// snapshotted into.
type Descriptor struct {
	ID              string
	SourceGateID    string
	SourcePortIndex int
	TargetGateID    string
	TargetPortIndex int
	State           *value.State
}

// ToDescriptor snapshots w into the wire-format Descriptor shape.
func (w *Wire) ToDescriptor() Descriptor {
	s := w.State
	return Descriptor{
		ID:              w.ID,
		SourceGateID:    w.SourceComponentID,
		SourcePortIndex: w.SourceOutputIndex,
		TargetGateID:    w.TargetComponentID,
		TargetPortIndex: w.TargetInputIndex,
		State:           &s,
	}
}
