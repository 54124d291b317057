package battle

const defaultWeatherDuration = 5

// Damage removes up to amount hit points from target and returns the amount
// removed. Hit points never drop below zero.
func (b *Battle) Damage(target *Combatant, amount int, source *Combatant, move *Move) int {
	if !target.Usable() || amount <= 0 {
		return 0
	}
	dealt := min(amount, target.HP)
	target.setHP(target.HP - dealt)
	target.Transient.TookDamage = true
	target.Transient.DamageTaken += dealt
	b.Events.Dispatch(EventDamage, Event{Battle: b, Turn: b.Turn, Combatant: source, Target: target, Move: move, Damage: dealt})

	if target.HP > 0 {
		for _, bound := range b.itemBinding(target) {
			if hook, ok := bound.effect.(AfterDamageHook); ok {
				ctx := bound.context(b, target)
				ctx.Source = source
				ctx.Move = move
				b.guard(bound.effect.ID(), "after_damage", func() { hook.AfterDamage(ctx) })
			}
		}
	}
	return dealt
}

// Heal restores up to amount hit points to target and returns the amount
// restored. Hit points never exceed MaxHP.
func (b *Battle) Heal(target *Combatant, amount int) int {
	if !target.Usable() || amount <= 0 {
		return 0
	}
	healed := min(amount, target.MaxHP-target.HP)
	target.setHP(target.HP + healed)
	return healed
}

// Boost changes target's stage for stat by delta and narrates the result. It
// reports whether the stage changed.
func (b *Battle) Boost(target *Combatant, stat Stat, delta int, source *Combatant) bool {
	if !target.Usable() || delta == 0 || stat <= StatHP || stat >= statCount {
		return false
	}
	before := target.Stage(stat)
	target.setStage(stat, before+delta)
	change := target.Stage(stat) - before
	if change == 0 {
		if delta > 0 {
			b.Say(MsgStatMax, target.Name, stat.Label())
		} else {
			b.Say(MsgStatMin, target.Name, stat.Label())
		}
		return false
	}
	switch {
	case change >= 3:
		b.Say(MsgStatRoseDrastically, target.Name, stat.Label())
	case change == 2:
		b.Say(MsgStatRoseSharply, target.Name, stat.Label())
	case change == 1:
		b.Say(MsgStatRose, target.Name, stat.Label())
	case change == -1:
		b.Say(MsgStatFell, target.Name, stat.Label())
	case change == -2:
		b.Say(MsgStatFellHarshly, target.Name, stat.Label())
	default:
		b.Say(MsgStatFellSeverely, target.Name, stat.Label())
	}
	return true
}

// BoostAll applies every boost in boosts, in stat order.
func (b *Battle) BoostAll(target *Combatant, boosts map[Stat]int, source *Combatant) bool {
	changed := false
	for _, stat := range BoostableStats {
		if delta, ok := boosts[stat]; ok && b.Boost(target, stat, delta, source) {
			changed = true
		}
	}
	return changed
}

// AddVolatile attaches the volatile id to target. It fails when the volatile
// is already attached or the condition's start hook rejects it. Duration
// zero leaves the length to the condition's start hook.
func (b *Battle) AddVolatile(target *Combatant, id string, source *Combatant, duration int) (*Volatile, bool) {
	if !target.Usable() || id == "" || target.HasVolatile(id) {
		return nil, false
	}
	v := &Volatile{ID: id, Duration: duration, Source: source}
	target.Volatiles[id] = v
	if effect := b.conditionOf(id); effect != nil {
		if hook, ok := effect.(StartHook); ok {
			ctx := boundEffect{effect: effect, volatile: v}.context(b, target)
			accepted := false
			b.guard(effect.ID(), "start", func() { accepted = hook.OnStart(ctx) })
			if !accepted {
				delete(target.Volatiles, id)
				return nil, false
			}
		}
	}
	return v, true
}

// RemoveVolatile detaches the volatile id from target and runs its end hook.
func (b *Battle) RemoveVolatile(target *Combatant, id string) bool {
	v, ok := target.Volatiles[id]
	if !ok {
		return false
	}
	delete(target.Volatiles, id)
	if effect := b.conditionOf(id); effect != nil {
		if hook, ok := effect.(EndHook); ok {
			ctx := boundEffect{effect: effect, volatile: v}.context(b, target)
			b.guard(effect.ID(), "end", func() { hook.OnEnd(ctx) })
		}
	}
	return true
}

// AddSideCondition starts the condition id on side. Re-applying a layered
// condition adds a layer up to its maximum; re-applying any other condition
// fails.
func (b *Battle) AddSideCondition(side *Side, id string, source *Combatant) bool {
	if side == nil || id == "" {
		return false
	}
	effect := b.conditionOf(id)
	if existing := side.Conditions[id]; existing != nil {
		layered, ok := effect.(Layered)
		if !ok || existing.Layers >= layered.MaxLayers() {
			return false
		}
		existing.Layers++
		return true
	}
	cond := &SideCondition{ID: id, Layers: 1, Source: source}
	side.Conditions[id] = cond
	if hook, ok := effect.(SideStartHook); ok {
		ctx := boundEffect{effect: effect, side: side, sideCondition: cond}.context(b, source)
		accepted := false
		b.guard(effect.ID(), "side_start", func() { accepted = hook.OnSideStart(ctx) })
		if !accepted {
			delete(side.Conditions, id)
			return false
		}
	}
	return true
}

// RemoveSideCondition ends the condition id on side.
func (b *Battle) RemoveSideCondition(side *Side, id string) bool {
	cond, ok := side.Conditions[id]
	if !ok {
		return false
	}
	delete(side.Conditions, id)
	if effect := b.conditionOf(id); effect != nil {
		if hook, ok := effect.(EndHook); ok {
			ctx := boundEffect{effect: effect, side: side, sideCondition: cond}.context(b, nil)
			b.guard(effect.ID(), "end", func() { hook.OnEnd(ctx) })
		}
	}
	if side.participant != nil {
		b.Say(MsgSideEnded, side.participant.Name, id)
	}
	return true
}

// AddPseudoWeather starts the field condition id. When it is already active
// the condition's restart hook runs instead; without one the call fails.
func (b *Battle) AddPseudoWeather(id string, source *Combatant) bool {
	if id == "" {
		return false
	}
	effect := b.conditionOf(id)
	if existing := b.Field.PseudoWeather[id]; existing != nil {
		hook, ok := effect.(FieldRestartHook)
		if !ok {
			return false
		}
		ctx := boundEffect{effect: effect, field: existing}.context(b, source)
		ctx.Source = source
		return b.guard(effect.ID(), "field_restart", func() { hook.OnFieldRestart(ctx) })
	}
	cond := &FieldCondition{ID: id, Multiplier: 1, Source: source}
	b.Field.PseudoWeather[id] = cond
	if hook, ok := effect.(FieldStartHook); ok {
		ctx := boundEffect{effect: effect, field: cond}.context(b, source)
		accepted := false
		b.guard(effect.ID(), "field_start", func() { accepted = hook.OnFieldStart(ctx) })
		if !accepted {
			delete(b.Field.PseudoWeather, id)
			return false
		}
	}
	return true
}

// RemovePseudoWeather ends the field condition id.
func (b *Battle) RemovePseudoWeather(id string) bool {
	cond, ok := b.Field.PseudoWeather[id]
	if !ok {
		return false
	}
	delete(b.Field.PseudoWeather, id)
	if effect := b.conditionOf(id); effect != nil {
		if hook, ok := effect.(EndHook); ok {
			ctx := boundEffect{effect: effect, field: cond}.context(b, nil)
			b.guard(effect.ID(), "end", func() { hook.OnEnd(ctx) })
		}
	}
	b.Say(MsgFieldEnded, id)
	return true
}

// SetWeather replaces the current weather with id for five turns, or the
// duration its start hook sets. Setting the active weather again fails.
func (b *Battle) SetWeather(id string, source *Combatant) bool {
	if id == "" || b.Field.Weather == id {
		return false
	}
	cond := &FieldCondition{ID: id, Duration: defaultWeatherDuration, Multiplier: 1, Source: source}
	effect := b.conditionOf(id)
	if hook, ok := effect.(FieldStartHook); ok {
		ctx := boundEffect{effect: effect, field: cond}.context(b, source)
		accepted := false
		b.guard(effect.ID(), "field_start", func() { accepted = hook.OnFieldStart(ctx) })
		if !accepted {
			return false
		}
	}
	b.Field.Weather = id
	b.Field.WeatherDuration = cond.Duration
	return true
}

// ClearWeather ends the current weather.
func (b *Battle) ClearWeather() bool {
	if b.Field.Weather == "" {
		return false
	}
	id := b.Field.Weather
	b.Field.Weather = ""
	b.Field.WeatherDuration = 0
	b.Say(MsgWeatherEnded, id)
	return true
}

// PendingAction returns c's unresolved action for this turn, or nil.
func (b *Battle) PendingAction(c *Combatant) *Action {
	return b.queue.Find(c)
}

// Promote makes target's pending action resolve next. It fails when target
// has already acted.
func (b *Battle) Promote(target *Combatant) bool {
	return b.queue.Promote(b.queue.Find(target))
}

// Quash moves target's pending action to the end of the turn.
func (b *Battle) Quash(target *Combatant) bool {
	a := b.queue.Find(target)
	if a == nil {
		return false
	}
	a.Priority = PriorityQuashed
	return true
}

// SwapPositions exchanges the active slots of two combatants on the same
// side. Their pending actions follow them.
func (b *Battle) SwapPositions(first, second *Combatant) bool {
	if !first.Active() || !second.Active() || first == second || first.participant != second.participant {
		return false
	}
	p := first.participant
	i, j := first.position, second.position
	p.Active[i], p.Active[j] = second, first
	first.position, second.position = j, i
	for _, a := range b.queue.actions {
		switch a.combatant {
		case first:
			a.Slot = j
		case second:
			a.Slot = i
		}
	}
	return true
}

// Transform copies target's species, stats, types, ability, moves and boosts
// onto user. The originals are kept in user.Borrowed until RestoreBorrowed.
func (b *Battle) Transform(user, target *Combatant) bool {
	if !user.Usable() || !target.Usable() || user == target || user.Borrowed != nil || target.Borrowed != nil {
		return false
	}
	user.Borrowed = &Backup{
		Species: user.Species,
		Stats:   user.Stats,
		Types:   user.Types,
		Ability: user.Ability,
		Moves:   user.Moves,
		Boosts:  user.Boosts,
	}
	stats := target.Stats
	stats.HP = user.Stats.HP
	user.Species = target.Species
	user.Stats = stats
	user.Types = append([]Type(nil), target.Types...)
	user.Ability = target.Ability
	user.Boosts = target.Boosts
	user.Moves = make([]*Move, 0, len(target.Moves))
	for _, move := range target.Moves {
		user.Moves = append(user.Moves, move.Clone())
	}
	b.Say(MsgTransformed, user.Name, target.Name)
	return true
}

// RestoreBorrowed puts back the state saved by Transform.
func (b *Battle) RestoreBorrowed(c *Combatant) bool {
	if c == nil || c.Borrowed == nil {
		return false
	}
	backup := c.Borrowed
	c.Borrowed = nil
	c.Species = backup.Species
	c.Stats = backup.Stats
	c.Types = backup.Types
	c.Ability = backup.Ability
	c.Moves = backup.Moves
	c.Boosts = backup.Boosts
	delete(c.Volatiles, "transform")
	b.Say(MsgTransformRestored, c.Name)
	return true
}

// Trapped reports whether c is prevented from switching out or fleeing.
func (b *Battle) Trapped(c *Combatant) bool {
	if !c.Active() {
		return false
	}
	var holders []boundEffect
	holders = append(holders, b.abilityBinding(c)...)
	holders = append(holders, b.itemBinding(c)...)
	holders = append(holders, b.volatileBindings(c)...)
	for _, bound := range holders {
		hook, ok := bound.effect.(SwitchBlocker)
		if !ok {
			continue
		}
		ctx := bound.context(b, c)
		blocked := false
		b.guard(bound.effect.ID(), "blocks_switch", func() { blocked = hook.BlocksSwitch(ctx) })
		if blocked {
			return true
		}
	}
	for _, foe := range b.Foes(c) {
		trapper, ok := b.abilityOf(foe).(Trapper)
		if ok && trapper.Traps(foe, c) {
			return true
		}
	}
	return false
}

// performSwitch resolves a declared switch action.
func (b *Battle) performSwitch(a *Action) {
	p := a.Actor
	if a.Slot < 0 || a.Slot >= len(p.Active) || a.SwitchTo < 0 || a.SwitchTo >= len(p.Roster) {
		b.Say(MsgMoveFailed)
		return
	}
	incoming := p.Roster[a.SwitchTo]
	if !incoming.Usable() || incoming.position >= 0 {
		b.Say(MsgMoveFailed)
		return
	}
	outgoing := p.Active[a.Slot]
	if outgoing.Active() {
		if !b.alwaysEscapes(outgoing) && b.Trapped(outgoing) {
			b.Say(MsgCantSwitch, outgoing.Name)
			return
		}
		b.switchOut(outgoing)
	}
	b.place(p, a.Slot, incoming)
}

// switchOut removes c from play: switch-out hooks run, volatiles and boosts
// are cleared and borrowed state is restored.
func (b *Battle) switchOut(c *Combatant) {
	b.Say(MsgSwitchOut, c.Name)
	b.Events.Dispatch(EventSwitchOut, Event{Battle: b, Turn: b.Turn, Combatant: c})
	for _, bound := range b.abilityBinding(c) {
		if hook, ok := bound.effect.(SwitchOutHook); ok {
			ctx := bound.context(b, c)
			b.guard(bound.effect.ID(), "switch_out", func() { hook.OnSwitchOut(ctx) })
		}
	}
	for _, id := range sortedKeys(c.Volatiles) {
		b.RemoveVolatile(c, id)
	}
	b.RestoreBorrowed(c)
	c.Boosts = Boosts{}
	c.resetTransient()
	b.queue.DropCombatant(c)
	if c.position >= 0 && c.position < len(c.participant.Active) {
		c.participant.Active[c.position] = nil
	}
	c.position = -1
	b.switchedOut = append(b.switchedOut, c)
}
