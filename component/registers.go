package component

import (
	"github.com/gatesim/gatesim/catalogue"
	"github.com/gatesim/gatesim/event"
	"github.com/gatesim/gatesim/value"
)

// BitsState is the internal record of REGISTER_*BIT and SHIFT_REG_4BIT:
// a stored vector of bits, LSB-first.
type BitsState struct {
	Bits []value.State
}

// CounterState is the internal record of COUNTER_4BIT.
type CounterState struct {
	Value int // 0..15
	Carry value.State
}

func init() {
	registerRegister("REGISTER_4BIT", 4)
	registerRegister("REGISTER_8BIT", 8)

	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: "SHIFT_REG_4BIT",
		Construct: func(d Descriptor) (*Component, error) {
			c := newComponent(d, 5, 5, 1)
			bits := initialBits(d, 4)
			c.Internal = BitsState{Bits: bits}
			for i, b := range bits {
				c.Outputs[i].State = b
			}
			c.Outputs[4].State = value.ZERO
			return c, nil
		},
		Evaluate: evalShiftReg4Bit,
		Reset:    resetShiftReg,
	})

	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: "COUNTER_4BIT",
		Construct: func(d Descriptor) (*Component, error) {
			c := newComponent(d, 9, 5, 1)
			v := 0
			if st, ok := d.InternalState.(CounterState); ok {
				v = st.Value
			}
			c.Internal = CounterState{Value: v, Carry: value.ZERO}
			indexToBits(v, c.Outputs[:4])
			c.Outputs[4].State = value.ZERO
			return c, nil
		},
		Evaluate: evalCounter4Bit,
		Reset:    resetCounter,
	})
}

func initialBits(d Descriptor, n int) []value.State {
	if st, ok := d.InternalState.(BitsState); ok && len(st.Bits) == n {
		return append([]value.State(nil), st.Bits...)
	}
	bits := make([]value.State, n)
	for i := range bits {
		bits[i] = value.ZERO
	}
	return bits
}

// --- REGISTER_4BIT / REGISTER_8BIT ---
// Inputs: data bits (n) then CLK, CLR, LOAD. Outputs: the n stored bits.

func registerRegister(typ string, n int) {
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: typ,
		Construct: func(d Descriptor) (*Component, error) {
			c := newComponent(d, n+3, n, 1)
			bits := initialBits(d, n)
			c.Internal = BitsState{Bits: bits}
			for i, b := range bits {
				c.Outputs[i].State = b
			}
			return c, nil
		},
		Evaluate: func(c *Component, _ event.Time) {
			evalRegister(c, n)
		},
		Reset: func(c *Component) {
			bits := make([]value.State, n)
			for i := range bits {
				bits[i] = value.ZERO
			}
			c.Internal = BitsState{Bits: bits}
			for i := range c.Outputs {
				c.Outputs[i].State = value.ZERO
			}
		},
	})
}

func evalRegister(c *Component, n int) {
	clk, clr, load := n, n+1, n+2
	if !c.RisingEdge(clk) {
		return
	}
	st := c.Internal.(BitsState)
	switch {
	case c.Inputs[clr].State == value.ONE:
		for i := range st.Bits {
			st.Bits[i] = value.ZERO
		}
	case c.Inputs[load].State == value.ONE:
		for i := 0; i < n; i++ {
			st.Bits[i] = c.Inputs[i].State
		}
	default:
		// hold
	}
	c.Internal = st
	for i, b := range st.Bits {
		c.Outputs[i].State = b
	}
}

// --- SHIFT_REG_4BIT ---
// Inputs: (SER_IN, CLK, CLR, SHIFT_EN, DIR). Outputs: Q0..Q3, SER_OUT.

func evalShiftReg4Bit(c *Component, _ event.Time) {
	if !c.RisingEdge(1) {
		return
	}
	serIn, clr, shiftEn, dir := c.Inputs[0].State, c.Inputs[2].State, c.Inputs[3].State, c.Inputs[4].State
	st := c.Internal.(BitsState)

	switch {
	case clr == value.ONE:
		for i := range st.Bits {
			st.Bits[i] = value.ZERO
		}
	case shiftEn == value.ONE && dir == value.ONE: // left
		serOut := st.Bits[3]
		st.Bits[3], st.Bits[2], st.Bits[1], st.Bits[0] = st.Bits[2], st.Bits[1], st.Bits[0], serIn
		c.Outputs[4].State = serOut
	case shiftEn == value.ONE && dir == value.ZERO: // right
		serOut := st.Bits[0]
		st.Bits[0], st.Bits[1], st.Bits[2], st.Bits[3] = st.Bits[1], st.Bits[2], st.Bits[3], serIn
		c.Outputs[4].State = serOut
	default:
		// hold (covers shiftEn != ONE, or an invalid DIR)
	}

	c.Internal = st
	for i, b := range st.Bits {
		c.Outputs[i].State = b
	}
}

func resetShiftReg(c *Component) {
	bits := make([]value.State, 4)
	c.Internal = BitsState{Bits: bits}
	for i := 0; i < 4; i++ {
		c.Outputs[i].State = value.ZERO
	}
	c.Outputs[4].State = value.ZERO
}

// --- COUNTER_4BIT ---
// Inputs: (CLK, CLR, EN, LOAD, UP_DOWN, D0..D3). Outputs: Q0..Q3, CARRY.

func evalCounter4Bit(c *Component, _ event.Time) {
	if !c.RisingEdge(0) {
		return
	}
	clr, en, load, upDown := c.Inputs[1].State, c.Inputs[2].State, c.Inputs[3].State, c.Inputs[4].State
	st := c.Internal.(CounterState)

	switch {
	case clr == value.ONE:
		st.Value, st.Carry = 0, value.ZERO
	case load == value.ONE:
		st.Value = bitsToIndex(c.InputStates()[5:9])
		st.Carry = value.ZERO
	case en == value.ONE && upDown == value.ONE: // up
		st.Value = (st.Value + 1) % 16
		st.Carry = value.FromBool(st.Value == 0)
	case en == value.ONE && upDown == value.ZERO: // down
		st.Carry = value.FromBool(st.Value == 0)
		st.Value = (st.Value + 15) % 16
	default:
		// hold
	}

	c.Internal = st
	indexToBits(st.Value, c.Outputs[:4])
	c.Outputs[4].State = st.Carry
}

func resetCounter(c *Component) {
	c.Internal = CounterState{Value: 0, Carry: value.ZERO}
	for i := 0; i < 4; i++ {
		c.Outputs[i].State = value.ZERO
	}
	c.Outputs[4].State = value.ZERO
}
