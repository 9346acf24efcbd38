package component

import (
	"github.com/gatesim/gatesim/catalogue"
	"github.com/gatesim/gatesim/event"
	"github.com/gatesim/gatesim/value"
)

// ToggleState is the internal record of a TOGGLE source.
type ToggleState struct {
	Value value.State
}

// ClockState is the internal record of a CLOCK source.
type ClockState struct {
	Period     int
	DutyCycle  float64
	PrevOutput value.State
}

// PulseState is the internal record of a PULSE source.
type PulseState struct {
	Duration int
	Armed    bool
	End      event.Time
}

func init() {
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type:      "TOGGLE",
		Construct: constructToggle,
		Evaluate:  evalToggle,
		Reset:     resetToggle,
	})
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type:      "CLOCK",
		Construct: constructClock,
		Evaluate:  evalClock,
		Reset:     resetClock,
	})
	Registry.Register(catalogue.Spec[*Component, Descriptor]{
		Type:      "PULSE",
		Construct: constructPulse,
		Evaluate:  evalPulse,
		Reset:     resetPulse,
	})
}

func constructToggle(d Descriptor) (*Component, error) {
	c := newComponent(d, 0, 1, 0)
	initial := value.ZERO
	if st, ok := d.InternalState.(ToggleState); ok {
		initial = st.Value
	} else if len(d.OutputStates) > 0 && d.OutputStates[0].Valid() {
		initial = d.OutputStates[0]
	}
	c.Internal = ToggleState{Value: initial}
	c.Outputs[0].State = initial
	return c, nil
}

func evalToggle(c *Component, _ event.Time) {
	st := c.Internal.(ToggleState)
	c.Outputs[0].State = st.Value
}

func resetToggle(c *Component) {
	c.Internal = ToggleState{Value: value.ZERO}
	c.Outputs[0].State = value.ZERO
}

// Toggle flips a TOGGLE component's stored value.
func Toggle(c *Component) {
	st := c.Internal.(ToggleState)
	if st.Value == value.ONE {
		st.Value = value.ZERO
	} else {
		st.Value = value.ONE
	}
	c.Internal = st
}

// SetToggleValue forces a TOGGLE component's stored value.
func SetToggleValue(c *Component, v value.State) {
	c.Internal = ToggleState{Value: v}
}

func constructClock(d Descriptor) (*Component, error) {
	c := newComponent(d, 0, 1, 0)
	period := 2
	duty := 0.5
	if p, ok := d.Params["period"].(int); ok && p > 0 {
		period = p
	}
	if dc, ok := d.Params["dutyCycle"].(float64); ok && dc > 0 && dc < 1 {
		duty = dc
	}
	c.Internal = ClockState{Period: period, DutyCycle: duty, PrevOutput: value.ZERO}
	return c, nil
}

// clockOutputAt computes a CLOCK's output at time t: ONE iff t mod
// period < floor(period*dutyCycle).
func clockOutputAt(st ClockState, t event.Time) value.State {
	if st.Period <= 0 {
		return value.ZERO
	}
	phase := int(uint64(t) % uint64(st.Period))
	threshold := int(float64(st.Period) * st.DutyCycle)
	if phase < threshold {
		return value.ONE
	}
	return value.ZERO
}

func evalClock(c *Component, now event.Time) {
	st := c.Internal.(ClockState)
	out := clockOutputAt(st, now)
	st.PrevOutput = out
	c.Internal = st
	c.Outputs[0].State = out
}

func resetClock(c *Component) {
	st := c.Internal.(ClockState)
	st.PrevOutput = value.ZERO
	c.Internal = st
	c.Outputs[0].State = value.ZERO
}

func constructPulse(d Descriptor) (*Component, error) {
	c := newComponent(d, 0, 1, 0)
	duration := 1
	if dur, ok := d.Params["duration"].(int); ok && dur > 0 {
		duration = dur
	}
	c.Internal = PulseState{Duration: duration}
	c.Outputs[0].State = value.ZERO
	return c, nil
}

func evalPulse(c *Component, _ event.Time) {
	st := c.Internal.(PulseState)
	if st.Armed {
		c.Outputs[0].State = value.ONE
	} else {
		c.Outputs[0].State = value.ZERO
	}
}

func resetPulse(c *Component) {
	st := c.Internal.(PulseState)
	st.Armed = false
	c.Internal = st
	c.Outputs[0].State = value.ZERO
}

// TriggerPulse arms a PULSE component at time now: the output becomes
// ONE and expires at now+duration. The kernel checks every armed pulse
// at the start of each step and disarms and re-evaluates one whose end
// time has arrived (kernel.scheduleExpiredPulses).
func TriggerPulse(c *Component, now event.Time) {
	st := c.Internal.(PulseState)
	st.Armed = true
	st.End = now + event.Time(st.Duration)
	c.Internal = st
}

// NextClockOutput computes what a CLOCK component's output would be at
// time t, without mutating it.
func NextClockOutput(c *Component, t event.Time) value.State {
	return clockOutputAt(c.Internal.(ClockState), t)
}

// LastClockOutput returns the output a CLOCK last computed during an
// evaluation.
func LastClockOutput(c *Component) value.State {
	return c.Internal.(ClockState).PrevOutput
}

// PulseEnd returns the time a currently-armed PULSE should expire.
func PulseEnd(c *Component) (event.Time, bool) {
	st := c.Internal.(PulseState)
	return st.End, st.Armed
}

// DisarmPulse clears a PULSE's armed flag once its expiry has fired.
func DisarmPulse(c *Component) {
	st := c.Internal.(PulseState)
	st.Armed = false
	c.Internal = st
}
