package battle

import "github.com/louisbranch/creaturebattle/internal/battle/rng"

const (
	paralysisFullStopPercent = 25
	freezeThawPercent        = 20
	minSleepTurns            = 1
	maxSleepTurns            = 3
	toxicBaseCounter         = 1
)

// statusImmuneTypes lists the types that can never receive a status.
var statusImmuneTypes = map[Status][]Type{
	StatusBurn:      {"Fire"},
	StatusPoison:    {"Poison", "Steel"},
	StatusToxic:     {"Poison", "Steel"},
	StatusParalysis: {"Electric"},
	StatusFreeze:    {"Ice"},
}

var statusMessages = map[Status]string{
	StatusBurn:      MsgBurned,
	StatusPoison:    MsgPoisoned,
	StatusToxic:     MsgBadlyPoisoned,
	StatusParalysis: MsgParalyzed,
	StatusFreeze:    MsgFrozen,
	StatusSleep:     MsgFellAsleep,
}

// canAct runs status gating for user. It reports whether the move may go
// ahead this turn.
func (b *Battle) canAct(user *Combatant, move *Move, a *Action) bool {
	if user.HasVolatile("mustrecharge") {
		b.RemoveVolatile(user, "mustrecharge")
		b.Say(MsgMustRecharge, user.Name)
		return false
	}

	switch user.Status {
	case StatusSleep:
		user.StatusState.SleepTurns--
		if user.StatusState.SleepTurns > 0 {
			b.Say(MsgFastAsleep, user.Name)
			return false
		}
		b.clearStatus(user)
		b.Say(MsgWokeUp, user.Name)
	case StatusFreeze:
		if !rng.Percent(b.rng, freezeThawPercent) {
			b.Say(MsgFrozenSolid, user.Name)
			return false
		}
		b.clearStatus(user)
		b.Say(MsgThawed, user.Name)
	}

	if user.HasVolatile("flinch") {
		b.RemoveVolatile(user, "flinch")
		b.Say(MsgFlinched, user.Name)
		return false
	}

	ctx := &MoveContext{Battle: b, User: user, Move: move, Action: a}
	var gates []boundEffect
	gates = append(gates, b.abilityBinding(user)...)
	gates = append(gates, b.itemBinding(user)...)
	gates = append(gates, b.volatileBindings(user)...)
	for _, bound := range gates {
		hook, ok := bound.effect.(BeforeMoveHook)
		if !ok {
			continue
		}
		proceed := true
		b.guard(bound.effect.ID(), "before_move", func() { proceed = hook.BeforeMove(ctx) })
		if !proceed {
			return false
		}
		if !user.Usable() {
			return false
		}
	}

	if user.Status == StatusParalysis && rng.Percent(b.rng, paralysisFullStopPercent) {
		b.Say(MsgFullyParalyzed, user.Name)
		return false
	}
	return true
}

// SetStatus applies a major status to target. It fails when target already
// has a status, its types are immune, or an ability or side condition blocks
// it.
func (b *Battle) SetStatus(target *Combatant, status Status, source *Combatant) bool {
	if status == StatusNone || !target.Usable() {
		return false
	}
	if target.Status != StatusNone {
		if source != target {
			b.Say(MsgAlreadyStatused, target.Name)
		}
		return false
	}
	for _, t := range statusImmuneTypes[status] {
		if target.HasType(t) {
			return false
		}
	}
	for _, bound := range b.statusGuards(target) {
		hook, ok := bound.effect.(StatusImmunityHook)
		if !ok {
			continue
		}
		ctx := bound.context(b, target)
		ctx.Source = source
		blocked := false
		b.guard(bound.effect.ID(), "status_immunity", func() { blocked = hook.BlocksStatus(ctx, status) })
		if blocked {
			return false
		}
	}

	target.Status = status
	target.StatusState = StatusState{}
	switch status {
	case StatusToxic:
		target.StatusState.ToxicCounter = toxicBaseCounter
	case StatusSleep:
		target.StatusState.SleepTurns = rng.Range(b.rng, minSleepTurns, maxSleepTurns)
	}
	b.Say(statusMessages[status], target.Name)
	return true
}

// CureStatus removes target's major status.
func (b *Battle) CureStatus(target *Combatant) bool {
	if target == nil || target.Status == StatusNone {
		return false
	}
	b.clearStatus(target)
	b.Say(MsgStatusCured, target.Name)
	return true
}

func (b *Battle) clearStatus(c *Combatant) {
	c.Status = StatusNone
	c.StatusState = StatusState{}
}

// statusResidual applies burn, poison and toxic damage to c.
func (b *Battle) statusResidual(c *Combatant) {
	switch c.Status {
	case StatusBurn:
		b.Damage(c, fraction(c.MaxHP, 1, 16), nil, nil)
		b.Say(MsgHurtByBurn, c.Name)
	case StatusPoison:
		b.Damage(c, fraction(c.MaxHP, 1, 8), nil, nil)
		b.Say(MsgHurtByPoison, c.Name)
	case StatusToxic:
		counter := max(c.StatusState.ToxicCounter, toxicBaseCounter)
		b.Damage(c, fraction(c.MaxHP, counter, 16), nil, nil)
		c.StatusState.ToxicCounter = counter + 1
		b.Say(MsgHurtByPoison, c.Name)
	}
}
