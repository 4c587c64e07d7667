package event

import (
	"testing"
)

// TestQueuePushDrainOrder verifies FIFO delivery
func TestQueuePushDrainOrder(t *testing.T) {
	q := NewEventQueue(8)
	for i := int64(0); i < 5; i++ {
		if !q.Push(GameEvent{Type: EventFrame, Frame: i}) {
			t.Fatalf("push %d rejected", i)
		}
	}
	if q.Len() != 5 {
		t.Fatalf("Len %d, want 5", q.Len())
	}

	var frames []int64
	q.Drain(func(ev GameEvent) {
		frames = append(frames, ev.Frame)
	})
	for i, f := range frames {
		if f != int64(i) {
			t.Fatalf("drained out of order: %v", frames)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len %d after drain, want 0", q.Len())
	}
}

// TestQueueOverflowDrops verifies pushes beyond capacity are dropped and
// counted
func TestQueueOverflowDrops(t *testing.T) {
	q := NewEventQueue(2)
	q.Push(GameEvent{Frame: 1})
	q.Push(GameEvent{Frame: 2})
	if q.Push(GameEvent{Frame: 3}) {
		t.Error("push beyond capacity accepted")
	}
	if q.Dropped() != 1 {
		t.Errorf("Dropped %d, want 1", q.Dropped())
	}

	// The queue keeps the oldest events
	var frames []int64
	q.Drain(func(ev GameEvent) {
		frames = append(frames, ev.Frame)
	})
	if len(frames) != 2 || frames[0] != 1 || frames[1] != 2 {
		t.Errorf("drained %v, want [1 2]", frames)
	}
}

// TestQueueDefaultCapacity verifies the zero-capacity fallback
func TestQueueDefaultCapacity(t *testing.T) {
	q := NewEventQueue(0)
	for i := 0; i < 64; i++ {
		if !q.Push(GameEvent{}) {
			t.Fatalf("push %d rejected below default capacity", i)
		}
	}
	if q.Push(GameEvent{}) {
		t.Error("push 65 accepted, default capacity should be 64")
	}
}

// TestQueueReusableAfterDrain verifies drain leaves the queue usable
func TestQueueReusableAfterDrain(t *testing.T) {
	q := NewEventQueue(2)
	q.Push(GameEvent{Frame: 1})
	q.Drain(func(GameEvent) {})
	if !q.Push(GameEvent{Frame: 2}) {
		t.Error("push rejected after drain")
	}
}

// TestEventTypeString verifies event names for log output
func TestEventTypeString(t *testing.T) {
	cases := map[EventType]string{
		EventThemeChange: "theme_change",
		EventRouteChange: "route_change",
		EventFrame:       "frame",
		EventGameReset:   "game_reset",
	}
	for ev, want := range cases {
		if got := ev.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", ev, got, want)
		}
	}
}
