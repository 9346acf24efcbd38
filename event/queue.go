package event

import "container/heap"

// Queue is a priority queue over Events ordered by (Time, Sequence):
// among events with equal Time, pop order equals push order, so two
// runs over the same netlist and inputs always produce the same
// sequence of evaluations.
type Queue struct {
	h       eventHeap
	nextSeq uint64
	byID    map[string][]*Event
}

// NewQueue returns an empty event queue.
func NewQueue() *Queue {
	return &Queue{
		byID: make(map[string][]*Event),
	}
}

// Push assigns the next monotonic sequence number to ev and inserts it.
func (q *Queue) Push(ev Event) *Event {
	ev.Sequence = q.nextSeq
	q.nextSeq++

	stored := &ev
	heap.Push(&q.h, stored)
	q.byID[ev.ComponentID] = append(q.byID[ev.ComponentID], stored)

	return stored
}

// Peek returns the head event (lowest (Time, Sequence)) without removing
// it, and false if the queue is empty.
func (q *Queue) Peek() (Event, bool) {
	if len(q.h) == 0 {
		return Event{}, false
	}
	return *q.h[0], true
}

// Pop removes and returns the head event.
func (q *Queue) Pop() (Event, bool) {
	if len(q.h) == 0 {
		return Event{}, false
	}
	item := heap.Pop(&q.h).(*Event)
	q.forget(item)
	return *item, true
}

// RemoveEventsFor purges every pending event scheduled for componentID.
func (q *Queue) RemoveEventsFor(componentID string) {
	pending, ok := q.byID[componentID]
	if !ok {
		return
	}
	for _, ev := range pending {
		if ev.index >= 0 {
			heap.Remove(&q.h, ev.index)
		}
	}
	delete(q.byID, componentID)
}

func (q *Queue) forget(ev *Event) {
	list := q.byID[ev.ComponentID]
	for i, e := range list {
		if e == ev {
			q.byID[ev.ComponentID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(q.byID[ev.ComponentID]) == 0 {
		delete(q.byID, ev.ComponentID)
	}
}

// Clear empties the queue and resets the sequence counter.
func (q *Queue) Clear() {
	q.h = nil
	q.byID = make(map[string][]*Event)
	q.nextSeq = 0
}

// Size returns the number of pending events.
func (q *Queue) Size() int { return len(q.h) }

// Empty reports whether the queue has no pending events.
func (q *Queue) Empty() bool { return len(q.h) == 0 }

// eventHeap is a container/heap.Interface over *Event ordered by
// (Time, Sequence), tracking each event's heap index so RemoveEventsFor
// can heap.Remove in O(log n) instead of a linear rebuild.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].Sequence < h[j].Sequence
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x any) {
	ev := x.(*Event)
	ev.index = len(*h)
	*h = append(*h, ev)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	ev.index = -1
	*h = old[:n-1]
	return ev
}
