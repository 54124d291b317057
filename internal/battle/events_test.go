package battle

import (
	"bytes"
	"log"
	"reflect"
	"strings"
	"testing"
)

func TestDispatcherPreservesOrder(t *testing.T) {
	d := NewDispatcher(nil)
	var calls []int
	for i := 0; i < 3; i++ {
		d.Register(EventResidual, func(Event) { calls = append(calls, i) })
	}
	d.Dispatch(EventResidual, Event{Turn: 4})
	if !reflect.DeepEqual(calls, []int{0, 1, 2}) {
		t.Fatalf("calls = %v, want [0 1 2]", calls)
	}
	if got := d.Count(EventResidual); got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}
}

func TestDispatcherRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	d := NewDispatcher(log.New(&buf, "", 0))
	var after bool
	d.Register(EventSwitchIn, func(Event) { panic("broken extension") })
	d.Register(EventSwitchIn, func(Event) { after = true })

	d.Dispatch(EventSwitchIn, Event{})
	if !after {
		t.Fatal("handler after panicking handler did not run")
	}
	if !strings.Contains(buf.String(), "broken extension") {
		t.Fatalf("log = %q, want panic value", buf.String())
	}
}

func TestDispatcherSetsEventName(t *testing.T) {
	d := NewDispatcher(nil)
	var got EventName
	d.Register(EventFaint, func(e Event) { got = e.Name })
	d.Dispatch(EventFaint, Event{Name: EventDamage})
	if got != EventFaint {
		t.Fatalf("event name = %q, want %q", got, EventFaint)
	}
}

func TestDispatcherSnapshotsHandlers(t *testing.T) {
	d := NewDispatcher(nil)
	calls := 0
	d.Register(EventEndTurn, func(Event) {
		calls++
		d.Register(EventEndTurn, func(Event) { calls++ })
	})
	d.Dispatch(EventEndTurn, Event{})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if got := d.Count(EventEndTurn); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}
}

func TestDispatcherIgnoresNilHandlers(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register(EventStartTurn, nil)
	if got := d.Count(EventStartTurn); got != 0 {
		t.Fatalf("count = %d, want 0", got)
	}
	d.Dispatch(EventBattleEnd, Event{})
}
