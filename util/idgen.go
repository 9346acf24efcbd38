// Package valgen provides small closure-based generators used where a
// caller needs a fresh value on each call without carrying its own
// counter field.
package valgen

import "fmt"

// MakeConstGen returns a generator that always yields constant.
func MakeConstGen(constant int) func() int {
	return func() int {
		return constant
	}
}

// MakeIncreasingGen returns a generator that yields start+1, start+2,
// ... on successive calls.
func MakeIncreasingGen(start int) func() int {
	current := start
	return func() int {
		current++
		return current
	}
}

// MakeGateIDGen returns a generator of gate IDs of the form prefix+N
// for an interactive session adding gates without asking the operator
// to name each one: addGate takes a full descriptor including an ID,
// so gatesimctl synthesizes one.
func MakeGateIDGen(prefix string) func() string {
	next := MakeIncreasingGen(0)
	return func() string {
		return fmt.Sprintf("%s%d", prefix, next())
	}
}
