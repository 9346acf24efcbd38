package component

import (
	"github.com/gatesim/gatesim/catalogue"
	"github.com/gatesim/gatesim/event"
	"github.com/gatesim/gatesim/value"
)

// FlipFlopState is the internal Q record shared by every flip-flop
// variant, constructed with Q=ZERO unless the descriptor's
// InternalState supplies one.
type FlipFlopState struct {
	Q value.State
}

func init() {
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type:      "D_FLIPFLOP",
		Construct: constructFlipFlop(2, 2),
		Evaluate:  evalDFlipFlop,
		Reset:     resetFlipFlop,
	})
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type:      "D_FLIPFLOP_SR",
		Construct: constructFlipFlop(4, 2),
		Evaluate:  evalDFlipFlopSR,
		Reset:     resetFlipFlop,
	})
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type:      "JK_FLIPFLOP",
		Construct: constructFlipFlop(3, 2),
		Evaluate:  evalJKFlipFlop,
		Reset:     resetFlipFlop,
	})
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type:      "JK_FLIPFLOP_SR",
		Construct: constructFlipFlop(5, 2),
		Evaluate:  evalJKFlipFlopSR,
		Reset:     resetFlipFlop,
	})
}

func constructFlipFlop(numInputs, numOutputs int) func(Descriptor) (*Component, error) {
	return func(d Descriptor) (*Component, error) {
		c := newComponent(d, numInputs, numOutputs, 1)
		q := value.ZERO
		if st, ok := d.InternalState.(FlipFlopState); ok {
			q = st.Q
		}
		c.Internal = FlipFlopState{Q: q}
		c.Outputs[0].State = q
		c.Outputs[1].State = value.Not(q)
		return c, nil
	}
}

func resetFlipFlop(c *Component) {
	c.Internal = FlipFlopState{Q: value.ZERO}
	c.Outputs[0].State = value.ZERO
	c.Outputs[1].State = value.ONE
}

func setQ(c *Component, q value.State) {
	c.Internal = FlipFlopState{Q: q}
	c.Outputs[0].State = q
	c.Outputs[1].State = value.Not(q)
}

// qNext implements the D input -> next-Q mapping common to every D
// flip-flop variant.
func qNext(d value.State) value.State {
	switch {
	case d.Valid():
		return d
	case d == value.Conflict:
		return value.Conflict
	default:
		return value.Unknown
	}
}

// D_FLIPFLOP inputs: (D, CLK).
func evalDFlipFlop(c *Component, _ event.Time) {
	if c.RisingEdge(1) {
		setQ(c, qNext(c.Inputs[0].State))
	}
}

// D_FLIPFLOP_SR inputs: (D, CLK, SET, RESET), both active-low with
// priority over the clock; both asserted simultaneously -> CONFLICT.
func evalDFlipFlopSR(c *Component, _ event.Time) {
	set, reset := c.Inputs[2].State, c.Inputs[3].State
	switch {
	case set == value.ZERO && reset == value.ZERO:
		setQ(c, value.Conflict)
	case set == value.ZERO:
		setQ(c, value.ONE)
	case reset == value.ZERO:
		setQ(c, value.ZERO)
	case c.RisingEdge(1):
		setQ(c, qNext(c.Inputs[0].State))
	}
}

// JK_FLIPFLOP inputs: (J, K, CLK).
func evalJKFlipFlop(c *Component, _ event.Time) {
	if c.RisingEdge(2) {
		setQ(c, jkNext(c, c.Inputs[0].State, c.Inputs[1].State))
	}
}

// JK_FLIPFLOP_SR inputs: (J, K, CLK, SET, RESET).
func evalJKFlipFlopSR(c *Component, _ event.Time) {
	set, reset := c.Inputs[3].State, c.Inputs[4].State
	switch {
	case set == value.ZERO && reset == value.ZERO:
		setQ(c, value.Conflict)
	case set == value.ZERO:
		setQ(c, value.ONE)
	case reset == value.ZERO:
		setQ(c, value.ZERO)
	case c.RisingEdge(2):
		setQ(c, jkNext(c, c.Inputs[0].State, c.Inputs[1].State))
	}
}

// jkNext implements the JK truth table: (0,0) hold, (0,1) reset,
// (1,0) set, (1,1) toggle; invalid J/K propagate the usual
// Conflict-dominates / else-Unknown rule.
func jkNext(c *Component, j, k value.State) value.State {
	if !allValid(j, k) {
		if j == value.Conflict || k == value.Conflict {
			return value.Conflict
		}
		return value.Unknown
	}
	q := c.Internal.(FlipFlopState).Q
	switch {
	case j == value.ZERO && k == value.ZERO:
		return q
	case j == value.ZERO && k == value.ONE:
		return value.ZERO
	case j == value.ONE && k == value.ZERO:
		return value.ONE
	default: // j == ONE && k == ONE
		return value.Not(q)
	}
}
