package component

import (
	"github.com/gatesim/gatesim/catalogue"
	"github.com/gatesim/gatesim/event"
)

// KeypadState is the internal record of a KEYPAD source.
type KeypadState struct {
	Value int // 0..15
}

func init() {
	registerObserver("LED", 1)
	registerObserver("DISPLAY_1D", 4)
	registerObserver("DISPLAY_2D", 8)

	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type:      "KEYPAD",
		Construct: constructKeypad,
		Evaluate:  evalKeypad,
		Reset:     resetKeypad,
	})
}

// registerObserver registers an I/O marker type with n inputs and no
// outputs: it has no effect on the rest of the circuit.
func registerObserver(typ string, n int) {
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: typ,
		Construct: func(d Descriptor) (*Component, error) {
			return newComponent(d, n, 0, 0), nil
		},
		Evaluate: func(*Component, event.Time) {},
		Reset:    noReset,
	})
}

// DecodedValue reads an I/O marker's current inputs as a little-endian
// binary integer, for external rendering (DISPLAY_1D/DISPLAY_2D). It
// returns ok=false if any input is indeterminate.
func DecodedValue(c *Component) (value int, ok bool) {
	in := c.InputStates()
	if !allValid(in...) {
		return 0, false
	}
	return bitsToIndex(in), true
}

func constructKeypad(d Descriptor) (*Component, error) {
	c := newComponent(d, 0, 4, 0)
	v := 0
	if st, ok := d.InternalState.(KeypadState); ok {
		v = st.Value
	}
	c.Internal = KeypadState{Value: clampKeypad(v)}
	indexToBits(c.Internal.(KeypadState).Value, c.Outputs)
	return c, nil
}

func evalKeypad(c *Component, _ event.Time) {
	st := c.Internal.(KeypadState)
	indexToBits(st.Value, c.Outputs)
}

func resetKeypad(c *Component) {
	c.Internal = KeypadState{Value: 0}
	fillZero(c.Outputs)
}

// SetKeypadValue sets a KEYPAD component's stored value, clamped to
// 0..15.
func SetKeypadValue(c *Component, v int) {
	c.Internal = KeypadState{Value: clampKeypad(v)}
}

func clampKeypad(v int) int {
	if v < 0 {
		return 0
	}
	if v > 15 {
		return 15
	}
	return v
}
