package battle

// Queue holds the actions still to resolve this turn.
//
// Order is never cached: every call to Next re-runs ResolveOrder over the
// remaining actions with current priorities and speeds, so an effect that
// changes speed or priority mid-turn takes effect for the next pick.
// Promoted actions bypass ordering and run next, in promotion order.
type Queue struct {
	actions  []*Action
	promoted []*Action
}

// Add appends an action to the queue.
func (q *Queue) Add(a *Action) {
	q.actions = append(q.actions, a)
}

// Len returns the number of actions not yet resolved.
func (q *Queue) Len() int {
	return len(q.remaining())
}

// Next removes and returns the next action to resolve, or nil.
func (q *Queue) Next(b *Battle) *Action {
	for len(q.promoted) > 0 {
		a := q.promoted[0]
		q.promoted = q.promoted[1:]
		if !a.done {
			a.done = true
			return a
		}
	}
	remaining := q.remaining()
	if len(remaining) == 0 {
		return nil
	}
	entries := make([]OrderEntry, 0, len(remaining))
	for _, a := range remaining {
		entries = append(entries, OrderEntry{
			Slot:     Slot{Participant: a.Actor.index, Position: a.Slot},
			Priority: a.Priority,
			Speed:    b.EffectiveSpeed(a.combatant),
			Action:   a,
		})
	}
	SortSlots(entries)
	ordered := ResolveOrder(entries, b.orderOptions())
	next := ordered[0].Action
	next.done = true
	return next
}

// Find returns the unresolved action of combatant c, or nil.
func (q *Queue) Find(c *Combatant) *Action {
	for _, a := range q.actions {
		if !a.done && a.combatant == c {
			return a
		}
	}
	return nil
}

// Promote moves a to the front of the queue.
func (q *Queue) Promote(a *Action) bool {
	if a == nil || a.done || a.promoted {
		return false
	}
	a.promoted = true
	q.promoted = append(q.promoted, a)
	return true
}

// DropActor marks every unresolved action of p as done.
func (q *Queue) DropActor(p *Participant) {
	for _, a := range q.actions {
		if a.Actor == p {
			a.done = true
		}
	}
}

// DropCombatant marks the unresolved action of c as done.
func (q *Queue) DropCombatant(c *Combatant) {
	for _, a := range q.actions {
		if a.combatant == c {
			a.done = true
		}
	}
}

// Drain marks every unresolved action as done.
func (q *Queue) Drain() {
	for _, a := range q.actions {
		a.done = true
	}
	q.promoted = nil
}

// Reset empties the queue.
func (q *Queue) Reset() {
	q.actions = nil
	q.promoted = nil
}

func (q *Queue) remaining() []*Action {
	var out []*Action
	for _, a := range q.actions {
		if !a.done && !a.promoted {
			out = append(out, a)
		}
	}
	return out
}
