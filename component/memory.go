package component

import (
	"github.com/gatesim/gatesim/catalogue"
	"github.com/gatesim/gatesim/event"
	"github.com/gatesim/gatesim/value"
)

// MemoryState is the internal record shared by RAM_16Xn and ROM_16Xn: a
// 16-word memory map addressed 0..15, each word Width bits wide.
type MemoryState struct {
	Width  int
	Memory map[int][]value.State
}

func newMemoryState(width int) MemoryState {
	return MemoryState{Width: width, Memory: make(map[int][]value.State)}
}

// Read returns addr's stored word, or all-ZERO if addr was never
// written.
func (m MemoryState) Read(addr int) []value.State {
	if word, ok := m.Memory[addr]; ok {
		return word
	}
	word := make([]value.State, m.Width)
	for i := range word {
		word[i] = value.ZERO
	}
	return word
}

func (m MemoryState) Write(addr int, word []value.State) {
	stored := make([]value.State, m.Width)
	copy(stored, word)
	m.Memory[addr] = stored
}

// SetMemoryData replaces a RAM/ROM component's entire memory map.
func SetMemoryData(c *Component, memory map[int][]value.State) {
	st := c.Internal.(MemoryState)
	st.Memory = make(map[int][]value.State, len(memory))
	for addr, word := range memory {
		st.Write(addr, word)
	}
	c.Internal = st
}

func init() {
	registerRAM("RAM_16X4", 4)
	registerRAM("RAM_16X8", 8)
	registerROM("ROM_16X4", 4)
	registerROM("ROM_16X8", 8)
}

// --- RAM_16Xn: inputs (A0..A3, DIN0..DINn-1, WE, CLK); outputs: n bits. ---

func registerRAM(typ string, n int) {
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: typ,
		Construct: func(d Descriptor) (*Component, error) {
			c := newComponent(d, 4+n+2, n, 1)
			st := newMemoryState(n)
			if init, ok := d.InternalState.(MemoryState); ok {
				for addr, word := range init.Memory {
					st.Write(addr, word)
				}
			}
			c.Internal = st
			return c, nil
		},
		Evaluate: func(c *Component, _ event.Time) {
			evalRAM(c, n)
		},
		Reset: func(c *Component) {
			c.Internal = newMemoryState(n)
		},
	})
}

func evalRAM(c *Component, n int) {
	addrIdx := 0
	dinIdx := 4
	we := 4 + n
	clk := 4 + n + 1

	addr := c.InputStates()[addrIdx : addrIdx+4]
	st := c.Internal.(MemoryState)

	if c.RisingEdge(clk) && c.Inputs[we].State == value.ONE && allValid(addr...) {
		st.Write(bitsToIndex(addr), c.InputStates()[dinIdx:dinIdx+n])
		c.Internal = st
	}

	if !allValid(addr...) {
		fillUnknown(c.Outputs)
		return
	}
	word := st.Read(bitsToIndex(addr))
	for i, b := range word {
		c.Outputs[i].State = b
	}
}

// --- ROM_16Xn: inputs (A0..A3, EN); outputs: n bits, loaded at
// construction and preserved across reset. ---

func registerROM(typ string, n int) {
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type: typ,
		Construct: func(d Descriptor) (*Component, error) {
			c := newComponent(d, 5, n, 1)
			st := newMemoryState(n)
			if words, ok := d.Params["memory"].(map[int][]value.State); ok {
				for addr, word := range words {
					st.Write(addr, word)
				}
			}
			if init, ok := d.InternalState.(MemoryState); ok {
				for addr, word := range init.Memory {
					st.Write(addr, word)
				}
			}
			c.Internal = st
			return c, nil
		},
		Evaluate: func(c *Component, _ event.Time) {
			evalROM(c, n)
		},
		// ROM memory persists across reset.
		Reset: noReset,
	})
}

func evalROM(c *Component, n int) {
	addr := c.InputStates()[0:4]
	en := c.Inputs[4].State
	st := c.Internal.(MemoryState)

	switch {
	case en == value.ZERO:
		fillHiZ(c.Outputs)
	case en == value.ONE && allValid(addr...):
		word := st.Read(bitsToIndex(addr))
		for i, b := range word {
			c.Outputs[i].State = b
		}
	default:
		fillUnknown(c.Outputs)
	}
}
