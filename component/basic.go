package component

import (
	"github.com/gatesim/gatesim/catalogue"
	"github.com/gatesim/gatesim/event"
	"github.com/gatesim/gatesim/value"
)

func init() {
	register1in := func(typ string, fn func(value.State) value.State) {
		Registry.Register(catalogue.Spec[*Component, Descriptor]{
			Type: typ,
			Construct: func(d Descriptor) (*Component, error) {
				return newComponent(d, 1, 1, 1), nil
			},
			Evaluate: func(c *Component, _ event.Time) {
				c.Outputs[0].State = fn(c.Inputs[0].State)
			},
			Reset: noReset,
		})
	}
	register1in("NOT", value.Not)
	register1in("BUFFER", func(s value.State) value.State { return s })

	registerNary := func(typ string, fn func(...value.State) value.State) {
		Registry.Register(catalogue.Spec[*Component, Descriptor]{
			Type: typ,
			Construct: func(d Descriptor) (*Component, error) {
				return newComponent(d, width(d, 2), 1, 1), nil
			},
			Evaluate: func(c *Component, _ event.Time) {
				c.Outputs[0].State = fn(c.InputStates()...)
			},
			Reset: noReset,
		})
	}
	registerNary("AND", value.AndN)
	registerNary("OR", value.OrN)
	registerNary("XOR", value.XorN)
	registerNary("NAND", value.NandN)
	registerNary("NOR", value.NorN)
	registerNary("XNOR", value.XnorN)

	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: "TRI_BUFFER",
		Construct: func(d Descriptor) (*Component, error) {
			return newComponent(d, 2, 1, 1), nil
		},
		Evaluate: evalTriBuffer,
		Reset:    noReset,
	})
}

// TriBuffer input order: (data, enable).
func evalTriBuffer(c *Component, _ event.Time) {
	data, enable := c.Inputs[0].State, c.Inputs[1].State
	switch enable {
	case value.ONE:
		c.Outputs[0].State = data
	case value.ZERO:
		c.Outputs[0].State = value.HiZ
	default:
		c.Outputs[0].State = value.Unknown
	}
}
