package kernel

import (
	"github.com/gatesim/gatesim/component"
	"github.com/gatesim/gatesim/event"
	"github.com/gatesim/gatesim/value"
)

// Step runs processOneStep count times (default 1) and returns every
// observable update produced, in order.
func (k *Kernel) Step(count int) []Update {
	if count <= 0 {
		count = 1
	}
	var all []Update
	for i := 0; i < count; i++ {
		all = append(all, k.processOneStep()...)
	}
	return all
}

// processOneStep is the kernel's per-tick time-slice.
func (k *Kernel) processOneStep() []Update {
	k.scheduleClockChanges()
	k.scheduleExpiredPulses()

	var updates []Update
	processed := 0

	for processed < k.config.MaxEventsPerStep {
		ev, ok := k.queue.Peek()
		if !ok || ev.Time > k.currentTime {
			break
		}
		ev, _ = k.queue.Pop()
		processed++

		c := k.componentOrNil(ev.ComponentID)
		if c == nil {
			continue // removed component: silently skipped
		}

		before := c.OutputStates()
		component.Evaluate(c, k.currentTime)
		c.SnapshotInputs()
		k.stats.EventsProcessed++

		for i, after := range c.OutputStates() {
			if after == before[i] {
				continue
			}
			updates = append(updates, Update{ComponentID: c.ID, PortIndex: i, Old: before[i], New: after})
			if k.observer != nil {
				k.observer.OnPortChange(c.ID, i, before[i], after)
			}
			for _, wid := range c.Outputs[i].Wires {
				k.propagateWire(wid, after)
			}
		}

		if k.observer != nil {
			k.observer.OnComponentEvaluated(c.ID)
		}
	}

	k.advanceTime()
	k.stats.StepsRun++
	if q := k.queue.Size(); q > k.stats.MaxQueueDepth {
		k.stats.MaxQueueDepth = q
	}

	return updates
}

// scheduleClockChanges recomputes every clock's next output; if it
// differs from the output it last computed, schedule it for
// (re-)evaluation this tick.
func (k *Kernel) scheduleClockChanges() {
	for _, id := range k.clockRegister {
		c := k.componentOrNil(id)
		if c == nil {
			continue
		}
		next := component.NextClockOutput(c, k.currentTime)
		if next != component.LastClockOutput(c) {
			k.scheduleNow(id)
		}
	}
}

// scheduleExpiredPulses disarms any pulse whose end time has arrived
// and schedules it for re-evaluation.
func (k *Kernel) scheduleExpiredPulses() {
	for _, id := range k.pulseRegister {
		c := k.componentOrNil(id)
		if c == nil {
			continue
		}
		end, armed := component.PulseEnd(c)
		if armed && k.currentTime >= end {
			component.DisarmPulse(c)
			k.scheduleNow(id)
		}
	}
}

// propagateWire updates the wire's cached state; if unchanged, stop.
// Otherwise resolve the target port from every wire feeding it and
// schedule the target one tick out.
func (k *Kernel) propagateWire(wireID string, newSourceState value.State) {
	w, ok := k.netlist.Wire(wireID)
	if !ok {
		return
	}
	if w.State == newSourceState {
		return
	}
	w.State = newSourceState

	target := k.componentOrNil(w.TargetComponentID)
	if target == nil || w.TargetInputIndex < 0 || w.TargetInputIndex >= len(target.Inputs) {
		return
	}
	target.Inputs[w.TargetInputIndex].State = k.netlist.ResolveInput(w.TargetComponentID, w.TargetInputIndex)
	k.queue.Push(event.Event{
		Time:        k.currentTime + 1,
		ComponentID: w.TargetComponentID,
		PortIndex:   w.TargetInputIndex,
	})
}

// advanceTime moves simulated time forward to the next event, or by
// one tick if the queue is empty.
func (k *Kernel) advanceTime() {
	if head, ok := k.queue.Peek(); ok {
		next := k.currentTime + 1
		if head.Time > next {
			next = head.Time
		}
		k.currentTime = next
		return
	}
	k.currentTime++
}
