package kernel

import (
	"github.com/gatesim/gatesim/component"
	"github.com/gatesim/gatesim/netlist"
	"github.com/gatesim/gatesim/value"
)

// Message is a request sent to a Kernel across a worker-isolate
// boundary. Only the fields grouped below under the message's Kind are
// populated; this keeps every message a plain value
// with no shared references, safe to hand across that boundary.
type Message struct {
	Kind string

	// init
	Gates []component.Descriptor
	Wires []netlist.Descriptor

	// step
	Count int

	// toggle, triggerPulse, setInput, setKeypadValue, setMemoryData,
	// addGate, removeGate, addWire, removeWire
	GateID string
	WireID string
	Value  value.State
	Keypad int
	Memory map[int][]value.State
	Gate   component.Descriptor
	Wire   netlist.Descriptor

	// setSpeed
	MsPerTick int
}

// Response is what a Kernel emits in reply to a Message.
type Response struct {
	Kind string

	// stateUpdate
	Snapshot Snapshot

	// error
	Message string
}

func ready() Response         { return Response{Kind: "ready"} }
func errResponse(err error) Response {
	return Response{Kind: "error", Message: err.Error()}
}
func stateUpdate(k *Kernel) Response {
	return Response{Kind: "stateUpdate", Snapshot: k.Snapshot()}
}

// Dispatch handles one Message to completion and returns the Response.
// Dispatch never suspends and never dispatches a second message while
// one is in flight: callers are expected to serialize calls
// themselves, e.g. by running a single Dispatch loop per kernel
// instance.
func (k *Kernel) Dispatch(msg Message) Response {
	switch msg.Kind {
	case "init":
		if err := k.Initialize(msg.Gates, msg.Wires); err != nil {
			return errResponse(err)
		}
		return ready()

	case "run":
		k.Run()
		return ready()

	case "pause":
		k.Pause()
		return ready()

	case "step":
		k.Step(msg.Count)
		return stateUpdate(k)

	case "reset":
		k.Reset()
		return ready()

	case "toggle":
		if err := k.Toggle(msg.GateID); err != nil {
			return errResponse(err)
		}
		k.Step(1)
		return stateUpdate(k)

	case "triggerPulse":
		if err := k.TriggerPulse(msg.GateID); err != nil {
			return errResponse(err)
		}
		k.Step(1)
		return stateUpdate(k)

	case "setInput":
		if err := k.SetInput(msg.GateID, msg.Value); err != nil {
			return errResponse(err)
		}
		k.Step(1)
		return stateUpdate(k)

	case "setKeypadValue":
		if err := k.SetKeypadValue(msg.GateID, msg.Keypad); err != nil {
			return errResponse(err)
		}
		k.Step(1)
		return stateUpdate(k)

	case "setMemoryData":
		if err := k.SetMemoryData(msg.GateID, msg.Memory); err != nil {
			return errResponse(err)
		}
		return ready()

	case "setSpeed":
		// Pacing itself is the driver's concern; the kernel only
		// acknowledges the message here.
		return ready()

	case "addGate":
		if err := k.AddGate(msg.Gate); err != nil {
			return errResponse(err)
		}
		return ready()

	case "removeGate":
		k.RemoveGate(msg.GateID)
		return ready()

	case "addWire":
		if err := k.AddWire(msg.Wire); err != nil {
			return errResponse(err)
		}
		return ready()

	case "removeWire":
		k.RemoveWire(msg.WireID)
		return ready()

	case "getState":
		return stateUpdate(k)

	default:
		return errResponse(k.errorf("unrecognized message kind %q", msg.Kind))
	}
}
