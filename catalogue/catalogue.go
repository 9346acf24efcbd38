// Package catalogue is the component-type registry: a map from type
// name to constructor/evaluator, replacing the runtime polymorphism a
// Gate class hierarchy would need. Grounded on an instr.ISA registry
// (instr/isa.go) elsewhere in the corpus, which maps an instruction
// mnemonic to its behavior function the same way this maps a
// component type name to its construction and evaluation behavior.
package catalogue

import (
	"fmt"

	"github.com/gatesim/gatesim/event"
)

// Spec is the catalogue entry for one component type. T is the concrete
// component representation and D its descriptor representation
// (component.Component / component.Descriptor); the catalogue package
// itself stays representation-agnostic, via generics, so component can
// depend on it without an import cycle.
type Spec[T any, D any] struct {
	Type string

	// Construct builds a new instance of T from a descriptor d.
	Construct func(d D) (T, error)

	// Evaluate computes new outputs (and internal state) from current
	// inputs and the current simulation time.
	Evaluate func(c T, now event.Time)

	// Reset restores internal state to its constructor default. ROM
	// variants override this to preserve memory.
	Reset func(c T)
}

// Registry is a name -> Spec catalogue, populated at init time by the
// component package's per-variant files.
type Registry[T any, D any] struct {
	specs map[string]Spec[T, D]
}

// NewRegistry returns an empty registry.
func NewRegistry[T any, D any]() *Registry[T, D] {
	return &Registry[T, D]{specs: make(map[string]Spec[T, D])}
}

// Register adds spec to the registry. It panics on a duplicate type
// name: that is a programmer error, caught at init time, never at
// runtime — construction failures are errors, init-time catalogue
// collisions are bugs.
func (r *Registry[T, D]) Register(spec Spec[T, D]) {
	if _, exists := r.specs[spec.Type]; exists {
		panic(fmt.Sprintf("catalogue: duplicate registration for type %q", spec.Type))
	}
	r.specs[spec.Type] = spec
}

// Lookup returns the Spec for typeName and whether it was found.
func (r *Registry[T, D]) Lookup(typeName string) (Spec[T, D], bool) {
	spec, ok := r.specs[typeName]
	return spec, ok
}

// Types returns every registered type name, for diagnostics.
func (r *Registry[T, D]) Types() []string {
	out := make([]string, 0, len(r.specs))
	for t := range r.specs {
		out = append(out, t)
	}
	return out
}

// ErrUnknownType is returned by Construct when a descriptor names a
// type absent from the registry.
type ErrUnknownType struct {
	Type string
}

func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("catalogue: unknown component type %q", e.Type)
}
