package battle

import (
	"io"
	"log"
)

// EventName identifies a lifecycle moment.
type EventName string

const (
	EventStartTurn  EventName = "start_turn"
	EventSwitchIn   EventName = "switch_in"
	EventSwitchOut  EventName = "switch_out"
	EventBeforeMove EventName = "before_move"
	EventAfterMove  EventName = "after_move"
	EventDamage     EventName = "damage"
	EventFaint      EventName = "faint"
	EventResidual   EventName = "residual"
	EventEndTurn    EventName = "end_turn"
	EventBattleEnd  EventName = "battle_end"
)

// Event is the payload passed to every handler. Handlers read the fields they
// need and ignore the rest.
type Event struct {
	Name      EventName
	Battle    *Battle
	Turn      int
	Combatant *Combatant
	Target    *Combatant
	Move      *Move
	Action    *Action
	Damage    int
}

// Handler reacts to a dispatched event.
type Handler func(Event)

// Dispatcher is an order-preserving publish/subscribe bus.
type Dispatcher struct {
	handlers map[EventName][]Handler
	logger   *log.Logger
}

// NewDispatcher returns an empty dispatcher. A nil logger discards output.
func NewDispatcher(logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Dispatcher{handlers: map[EventName][]Handler{}, logger: logger}
}

// Register appends handler to the handlers for name.
func (d *Dispatcher) Register(name EventName, handler Handler) {
	if handler == nil {
		return
	}
	d.handlers[name] = append(d.handlers[name], handler)
}

// Count returns the number of handlers registered for name.
func (d *Dispatcher) Count(name EventName) int {
	return len(d.handlers[name])
}

// Dispatch invokes every handler registered for name when the call starts, in
// registration order. A handler that panics is logged and skipped; the
// remaining handlers still run.
func (d *Dispatcher) Dispatch(name EventName, event Event) {
	event.Name = name
	handlers := d.handlers[name]
	if len(handlers) == 0 {
		return
	}
	snapshot := make([]Handler, len(handlers))
	copy(snapshot, handlers)
	for index, handler := range snapshot {
		d.invoke(name, index, handler, event)
	}
}

func (d *Dispatcher) invoke(name EventName, index int, handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Printf("event %s handler %d panicked: %v", name, index, r)
		}
	}()
	handler(event)
}
