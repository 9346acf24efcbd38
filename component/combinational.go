package component

import (
	"github.com/gatesim/gatesim/catalogue"
	"github.com/gatesim/gatesim/event"
	"github.com/gatesim/gatesim/value"
)

func init() {
	registerMux(2, 1)
	registerMux(4, 2)
	registerMux(8, 3)

	registerDemux(2, 1)
	registerDemux(4, 2)

	registerDecoder("DECODER_2TO4", 2, 4)
	registerDecoder("DECODER_3TO8", 3, 8)

	registerEncoder("ENCODER_4TO2", 4, 2)
	registerEncoder("ENCODER_8TO3", 8, 3)

	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: "FULL_ADDER",
		Construct: func(d Descriptor) (*Component, error) {
			return newComponent(d, 3, 2, 1), nil
		},
		Evaluate: evalFullAdder,
		Reset:    noReset,
	})

	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: "ADDER_4BIT",
		Construct: func(d Descriptor) (*Component, error) {
			return newComponent(d, 9, 6, 1), nil
		},
		Evaluate: evalAdder4Bit,
		Reset:    noReset,
	})

	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: "COMPARATOR_1BIT",
		Construct: func(d Descriptor) (*Component, error) {
			return newComponent(d, 5, 3, 1), nil
		},
		Evaluate: evalComparator1Bit,
		Reset:    noReset,
	})

	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: "COMPARATOR_4BIT",
		Construct: func(d Descriptor) (*Component, error) {
			return newComponent(d, 11, 3, 1), nil
		},
		Evaluate: evalComparator4Bit,
		Reset:    noReset,
	})
}

// --- MUX_{2,4,8}TO1: data inputs then select inputs LSB-first. ---

func registerMux(numData, numSelect int) {
	typ := map[int]string{2: "MUX_2TO1", 4: "MUX_4TO1", 8: "MUX_8TO1"}[numData]
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: typ,
		Construct: func(d Descriptor) (*Component, error) {
			return newComponent(d, numData+numSelect, 1, 1), nil
		},
		Evaluate: func(c *Component, _ event.Time) {
			sel := c.InputStates()[numData : numData+numSelect]
			if !allValid(sel...) {
				c.Outputs[0].State = value.Unknown
				return
			}
			c.Outputs[0].State = c.Inputs[bitsToIndex(sel)].State
		},
		Reset: noReset,
	})
}

// --- DEMUX_1TO{2,4}: data then selects LSB-first. ---

func registerDemux(numOut, numSelect int) {
	typ := map[int]string{2: "DEMUX_1TO2", 4: "DEMUX_1TO4"}[numOut]
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: typ,
		Construct: func(d Descriptor) (*Component, error) {
			return newComponent(d, 1+numSelect, numOut, 1), nil
		},
		Evaluate: func(c *Component, _ event.Time) {
			data := c.Inputs[0].State
			sel := c.InputStates()[1 : 1+numSelect]
			if !allValid(sel...) {
				fillUnknown(c.Outputs)
				return
			}
			fillZero(c.Outputs)
			c.Outputs[bitsToIndex(sel)].State = data
		},
		Reset: noReset,
	})
}

// --- DECODER_{2TO4,3TO8}: address bits then enable. ---

func registerDecoder(typ string, numAddr, numOut int) {
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: typ,
		Construct: func(d Descriptor) (*Component, error) {
			return newComponent(d, numAddr+1, numOut, 1), nil
		},
		Evaluate: func(c *Component, _ event.Time) {
			addr := c.InputStates()[:numAddr]
			enable := c.Inputs[numAddr].State
			switch {
			case enable == value.ZERO:
				fillZero(c.Outputs)
			case enable == value.ONE && allValid(addr...):
				fillZero(c.Outputs)
				c.Outputs[bitsToIndex(addr)].State = value.ONE
			default:
				fillUnknown(c.Outputs)
			}
		},
		Reset: noReset,
	})
}

// --- ENCODER_{4TO2,8TO3}: priority encoder, highest-index ONE wins. ---

func registerEncoder(typ string, numIn, numBits int) {
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: typ,
		Construct: func(d Descriptor) (*Component, error) {
			return newComponent(d, numIn, numBits+1, 1), nil
		},
		Evaluate: func(c *Component, _ event.Time) {
			in := c.InputStates()
			if !allValid(in...) {
				fillUnknown(c.Outputs)
				return
			}
			anyOne := false
			highest := 0
			for i := len(in) - 1; i >= 0; i-- {
				if in[i] == value.ONE {
					anyOne = true
					highest = i
					break
				}
			}
			indexToBits(highest, c.Outputs[:numBits])
			if !anyOne {
				for i := 0; i < numBits; i++ {
					c.Outputs[i].State = value.ZERO
				}
			}
			c.Outputs[numBits].State = value.FromBool(anyOne)
		},
		Reset: noReset,
	})
}

// --- FULL_ADDER: inputs (a, b, cin); outputs (sum, cout). ---

func fullAdd(a, b, cin value.State) (sum, cout value.State) {
	sum = value.Xor(value.Xor(a, b), cin)
	cout = value.Or(value.And(a, b), value.And(cin, value.Xor(a, b)))
	return
}

func evalFullAdder(c *Component, _ event.Time) {
	sum, cout := fullAdd(c.Inputs[0].State, c.Inputs[1].State, c.Inputs[2].State)
	c.Outputs[0].State = sum
	c.Outputs[1].State = cout
}

// --- ADDER_4BIT: ripple-carry of four full adders. ---
// Inputs: A0..A3, B0..B3, Cin. Outputs: S0..S3, Cout, Overflow.

func evalAdder4Bit(c *Component, _ event.Time) {
	a := c.InputStates()[0:4]
	b := c.InputStates()[4:8]
	cin := c.Inputs[8].State

	carry := cin
	var carries [4]value.State
	for i := 0; i < 4; i++ {
		sum, cout := fullAdd(a[i], b[i], carry)
		c.Outputs[i].State = sum
		carries[i] = cout
		carry = cout
	}
	c.Outputs[4].State = carries[3]
	c.Outputs[5].State = value.Xor(carries[2], carries[3])
}

// --- COMPARATOR_1BIT: inputs (A, B, GTin, EQin, LTin); outputs (GT, EQ, LT). ---

func compare1Bit(a, b, gtIn, eqIn, ltIn value.State) (gt, eq, lt value.State) {
	if !allValid(a, b) {
		return value.Unknown, value.Unknown, value.Unknown
	}
	if a == b {
		return gtIn, eqIn, ltIn
	}
	if a == value.ONE {
		return value.ONE, value.ZERO, value.ZERO
	}
	return value.ZERO, value.ZERO, value.ONE
}

func evalComparator1Bit(c *Component, _ event.Time) {
	in := c.InputStates()
	gt, eq, lt := compare1Bit(in[0], in[1], in[2], in[3], in[4])
	c.Outputs[0].State, c.Outputs[1].State, c.Outputs[2].State = gt, eq, lt
}

// --- COMPARATOR_4BIT: compare MSB->LSB, first differing bit decides. ---
// Inputs: A0..A3, B0..B3, GTin, EQin, LTin (A3/B3 are the MSBs).

func evalComparator4Bit(c *Component, _ event.Time) {
	in := c.InputStates()
	a := in[0:4]
	b := in[4:8]
	gt, eq, lt := in[8], in[9], in[10]

	for i := 3; i >= 0; i-- {
		if !allValid(a[i], b[i]) {
			gt, eq, lt = value.Unknown, value.Unknown, value.Unknown
			break
		}
		if a[i] != b[i] {
			gt, eq, lt = compare1Bit(a[i], b[i], gt, eq, lt)
			break
		}
		// equal at this bit: cascade unchanged, keep comparing lower bits
	}
	c.Outputs[0].State, c.Outputs[1].State, c.Outputs[2].State = gt, eq, lt
}
