package battle

// startTurn resets per-turn scratch state.
func (b *Battle) startTurn() {
	b.Say(MsgTurnStart, b.Turn)
	b.eachActive(func(c *Combatant) {
		c.resetTransient()
	})
	b.Events.Dispatch(EventStartTurn, Event{Battle: b, Turn: b.Turn})
}

// runSwitch resolves declared switches, fills empty slots, and runs switch-in
// hooks for every combatant entering play.
func (b *Battle) runSwitch() {
	var switches []*Action
	for _, p := range b.Participants {
		for _, a := range p.pending {
			if a.Kind == ActionSwitch {
				a.Priority = PrioritySwitch
				switches = append(switches, a)
			}
		}
	}
	if len(switches) > 0 {
		entries := make([]OrderEntry, 0, len(switches))
		for _, a := range switches {
			entries = append(entries, OrderEntry{
				Slot:     Slot{Participant: a.Actor.index, Position: a.Slot},
				Priority: a.Priority,
				Speed:    b.EffectiveSpeed(a.combatant),
				Action:   a,
			})
		}
		SortSlots(entries)
		for _, entry := range ResolveOrder(entries, b.orderOptions()) {
			b.performSwitch(entry.Action)
			entry.Action.done = true
		}
	}

	for _, p := range b.Participants {
		if p.Lost {
			continue
		}
		for slot, c := range p.Active {
			if c.Active() && c.HP > 0 {
				continue
			}
			bench := p.Bench()
			if len(bench) == 0 {
				continue
			}
			if c != nil {
				c.position = -1
			}
			b.place(p, slot, bench[0])
		}
	}

	entering := b.entering
	b.entering = nil
	for _, c := range entering {
		if !c.Active() {
			continue
		}
		b.enter(c)
	}
}

// enter narrates c entering play and runs its switch-in hooks.
func (b *Battle) enter(c *Combatant) {
	b.Say(MsgSendOut, c.participant.Name, c.Name)
	for _, foe := range b.Foes(c) {
		c.noteOpponent(foe)
		foe.noteOpponent(c)
	}
	b.Events.Dispatch(EventSwitchIn, Event{Battle: b, Turn: b.Turn, Combatant: c})

	for _, bound := range b.sideBindings(c.participant.Side) {
		if hook, ok := bound.effect.(SwitchInHook); ok {
			ctx := bound.context(b, c)
			b.guard(bound.effect.ID(), "switch_in", func() { hook.OnSwitchIn(ctx) })
		}
	}
	if !c.Usable() {
		return
	}
	for _, bound := range b.abilityBinding(c) {
		ctx := bound.context(b, c)
		if hook, ok := bound.effect.(StartHook); ok {
			b.guard(bound.effect.ID(), "start", func() { hook.OnStart(ctx) })
		}
		if hook, ok := bound.effect.(SwitchInHook); ok {
			b.guard(bound.effect.ID(), "switch_in", func() { hook.OnSwitchIn(ctx) })
		}
	}
}

// runAfterSwitch applies effects that trigger once switches have settled.
func (b *Battle) runAfterSwitch() {
	out := b.switchedOut
	b.switchedOut = nil
	for _, c := range out {
		if c.Status == StatusToxic {
			c.Status = StatusPoison
		}
		c.StatusState.ToxicCounter = toxicBaseCounter
	}
}

// runMove lets AI participants declare for the combatants now in play, then
// orders and resolves every pending non-switch action.
func (b *Battle) runMove() {
	b.chooseAIActions()
	b.queue.Reset()
	for _, p := range b.Participants {
		for _, a := range p.pending {
			if a.Kind == ActionSwitch || a.done {
				continue
			}
			b.prepareAction(a)
			b.queue.Add(a)
		}
	}
	for a := b.queue.Next(b); a != nil; a = b.queue.Next(b) {
		if b.Concluded() {
			break
		}
		if a.Actor.Lost {
			continue
		}
		switch a.Kind {
		case ActionMove:
			b.runMoveAction(a)
		case ActionItem:
			b.runItemAction(a)
		case ActionFlee:
			b.runFleeAction(a)
		case ActionForfeit:
			b.runForfeitAction(a)
		}
	}
	b.queue.Drain()
	for _, p := range b.Participants {
		p.pending = nil
	}
}

// prepareAction resolves the acting combatant, the move and the priority.
func (b *Battle) prepareAction(a *Action) {
	if a.combatant == nil {
		a.combatant = a.Actor.At(a.Slot)
	}
	switch a.Kind {
	case ActionMove:
		a.move = b.lookupMove(a.combatant, a.Move)
		if locked := b.lockedMove(a.combatant); locked != nil {
			a.move = locked
		}
		a.Priority = 0
		if a.move != nil {
			a.Priority = a.move.Priority
		}
	case ActionItem:
		a.Priority = PriorityItem
	case ActionFlee:
		a.Priority = PriorityFlee
	case ActionForfeit:
		a.Priority = PriorityForfeit
	}
}

func (b *Battle) lookupMove(c *Combatant, key string) *Move {
	if c != nil {
		if move := c.FindMove(key); move != nil && !move.Unknown {
			return move
		}
	}
	if move, ok := b.lib.Move(NormalizeKey(key)); ok && move != nil && !move.Unknown {
		return move
	}
	return nil
}

// lockedMove returns the move a combatant is forced to repeat, or nil.
func (b *Battle) lockedMove(c *Combatant) *Move {
	if c == nil {
		return nil
	}
	for _, id := range []string{"lockedmove", "choicelock"} {
		if v := c.Volatile(id); v != nil && v.Move != "" {
			if move := b.lookupMove(c, v.Move); move != nil {
				return move
			}
		}
	}
	return nil
}

// runFaint removes combatants at zero hit points from play.
func (b *Battle) runFaint() {
	for _, p := range b.Participants {
		for slot, c := range p.Active {
			if c == nil || c.Fainted || c.HP > 0 {
				continue
			}
			b.faint(p, slot, c)
		}
		if !p.Lost && p.Defeated() {
			p.Lost = true
		}
	}
}

func (b *Battle) faint(p *Participant, slot int, c *Combatant) {
	c.Fainted = true
	b.Say(MsgFainted, c.Name)
	b.Events.Dispatch(EventFaint, Event{Battle: b, Turn: b.Turn, Combatant: c})
	for _, bound := range b.volatileBindings(c) {
		if hook, ok := bound.effect.(EndHook); ok {
			ctx := bound.context(b, c)
			b.guard(bound.effect.ID(), "end", func() { hook.OnEnd(ctx) })
		}
	}
	c.Volatiles = map[string]*Volatile{}
	c.Boosts = Boosts{}
	c.position = -1
	p.Active[slot] = nil
}

// endTurn dispatches end_turn, restores borrowed state, and evaluates the
// win condition.
func (b *Battle) endTurn() {
	b.Events.Dispatch(EventEndTurn, Event{Battle: b, Turn: b.Turn})
	b.runFaint()
	b.checkWinCondition()

	for _, p := range b.Participants {
		if !p.Lost && !b.Concluded() {
			continue
		}
		for _, c := range p.Roster {
			b.RestoreBorrowed(c)
		}
	}

	b.eachActive(func(c *Combatant) {
		for _, id := range sortedKeys(c.Volatiles) {
			if v := c.Volatiles[id]; v != nil && v.Duration < 0 {
				delete(c.Volatiles, id)
			}
		}
		c.resetTransient()
	})
	for _, p := range b.Participants {
		p.pending = nil
	}

	if b.Concluded() {
		b.announceOutcome()
		b.Events.Dispatch(EventBattleEnd, Event{Battle: b, Turn: b.Turn})
	}
}

// checkWinCondition marks defeated participants and concludes the battle when
// at most one participant remains.
func (b *Battle) checkWinCondition() {
	var remaining []*Participant
	for _, p := range b.Participants {
		if !p.Lost && p.Defeated() {
			p.Lost = true
		}
		if !p.Lost {
			remaining = append(remaining, p)
		}
	}
	switch len(remaining) {
	case 0:
		b.conclude(OutcomeDraw, nil)
	case 1:
		b.conclude(OutcomeWin, remaining[0])
	}
}

func (b *Battle) announceOutcome() {
	switch b.outcome {
	case OutcomeWin:
		b.Say(MsgWon, b.winner.Name)
	case OutcomeDraw:
		b.Say(MsgDraw)
	}
}
