package event

import (
	"sync"
)

// EventQueue is a bounded FIFO between the game loop and the systems.
// Pushes beyond capacity are dropped and counted, never blocked on.
type EventQueue struct {
	mu       sync.Mutex
	events   []GameEvent
	capacity int
	dropped  uint64
}

// NewEventQueue creates a queue holding at most capacity events
func NewEventQueue(capacity int) *EventQueue {
	if capacity <= 0 {
		capacity = 64
	}
	return &EventQueue{
		events:   make([]GameEvent, 0, capacity),
		capacity: capacity,
	}
}

// Push appends an event; returns false when the queue is full
func (q *EventQueue) Push(ev GameEvent) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) >= q.capacity {
		q.dropped++
		return false
	}
	q.events = append(q.events, ev)
	return true
}

// Drain hands every queued event to fn in push order and clears the
// queue
func (q *EventQueue) Drain(fn func(GameEvent)) {
	q.mu.Lock()
	batch := q.events
	q.events = make([]GameEvent, 0, q.capacity)
	q.mu.Unlock()

	for _, ev := range batch {
		fn(ev)
	}
}

// Len returns the number of queued events
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Dropped returns the number of events lost to overflow
func (q *EventQueue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
