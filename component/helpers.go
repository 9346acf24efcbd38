package component

import "github.com/gatesim/gatesim/value"

// newComponent builds the common Component shell: ports sized to
// numInputs/numOutputs, the given propagation delay, and d's params
// carried through.
func newComponent(d Descriptor, numInputs, numOutputs, delay int) *Component {
	return &Component{
		ID:      d.ID,
		Type:    d.Type,
		Delay:   delay,
		Inputs:  makePorts(numInputs),
		Outputs: makePorts(numOutputs),
		Params:  d.Params,
	}
}

// width resolves a variable-arity gate's input count: the descriptor's
// InputStates length if given, else a "width" param, else fallback.
func width(d Descriptor, fallback int) int {
	if len(d.InputStates) > 0 {
		return len(d.InputStates)
	}
	if w, ok := d.Params["width"].(int); ok && w > 0 {
		return w
	}
	return fallback
}

// seedOutputs copies d.OutputStates onto c.Outputs where available,
// leaving freshly-constructed ports at their Unknown default otherwise.
func seedOutputs(c *Component, d Descriptor) {
	for i := 0; i < len(c.Outputs) && i < len(d.OutputStates); i++ {
		c.Outputs[i].State = d.OutputStates[i]
	}
}

// allValid reports whether every state in ss is ZERO or ONE.
func allValid(ss ...value.State) bool {
	for _, s := range ss {
		if !s.Valid() {
			return false
		}
	}
	return true
}

// bitsToIndex reads a little-endian (LSB-first) group of valid bits
// into an int. Callers must check allValid first.
func bitsToIndex(bits []value.State) int {
	idx := 0
	for i, b := range bits {
		if b == value.ONE {
			idx |= 1 << uint(i)
		}
	}
	return idx
}

// indexToBits writes n's low len(out) bits into out, LSB-first.
func indexToBits(n int, out []Port) {
	for i := range out {
		if n&(1<<uint(i)) != 0 {
			out[i].State = value.ONE
		} else {
			out[i].State = value.ZERO
		}
	}
}

// fillUnknown sets every port in ports to Unknown.
func fillUnknown(ports []Port) {
	for i := range ports {
		ports[i].State = value.Unknown
	}
}

// fillZero sets every port in ports to ZERO.
func fillZero(ports []Port) {
	for i := range ports {
		ports[i].State = value.ZERO
	}
}

// fillHiZ sets every port in ports to HiZ.
func fillHiZ(ports []Port) {
	for i := range ports {
		ports[i].State = value.HiZ
	}
}

// noReset is a catalogue.Spec.Reset for variants with no internal
// state to restore (purely combinational gates): only PrevInputs needs
// clearing, which Reset (component.go) already does unconditionally.
func noReset(*Component) {}
