package battle

const (
	fleeSpeedFactor    = 128
	fleeAttemptBonus   = 30
	fleeGuaranteedRoll = 255
)

// runFleeAction resolves a flee attempt. Only wild battles can be fled. A
// successful escape concludes the battle and no further actions resolve.
func (b *Battle) runFleeAction(a *Action) {
	p := a.Actor
	runner := a.combatant
	if !runner.Active() {
		if active := p.ActiveCombatants(); len(active) > 0 {
			runner = active[0]
		}
	}
	attempts := p.FleeAttempts
	p.FleeAttempts++
	b.RecordDecision("turn %d: %s tried to flee", b.Turn, p.Name)

	if b.Kind != KindWild {
		b.Say(MsgNoRunning)
		return
	}
	if !b.canFlee(runner, attempts) {
		return
	}
	b.Say(MsgGotAway)
	b.conclude(OutcomeFled, nil)
}

func (b *Battle) canFlee(runner *Combatant, attempts int) bool {
	if runner == nil {
		return true
	}
	if b.alwaysEscapes(runner) {
		return true
	}
	if b.Trapped(runner) {
		b.Say(MsgTrapped, runner.Name)
		return false
	}

	speed := b.EffectiveSpeed(runner)
	foeSpeed := 0
	for _, foe := range b.Foes(runner) {
		foeSpeed = max(foeSpeed, b.EffectiveSpeed(foe))
	}
	if speed > foeSpeed {
		return true
	}
	threshold := speed*fleeSpeedFactor/max(foeSpeed, 1) + attempts*fleeAttemptBonus
	if threshold >= fleeGuaranteedRoll || b.rng.Intn(fleeGuaranteedRoll+1) < threshold {
		return true
	}
	b.Say(MsgCouldntEscape)
	return false
}

// runForfeitAction marks the actor as lost. Its remaining actions are dropped;
// other participants keep acting unless the battle is over.
func (b *Battle) runForfeitAction(a *Action) {
	p := a.Actor
	if p.Lost {
		return
	}
	p.Lost = true
	p.Forfeited = true
	b.Say(MsgForfeit, p.Name)
	b.RecordDecision("turn %d: %s forfeited", b.Turn, p.Name)
	b.queue.DropActor(p)
	b.checkWinCondition()
}

// runItemAction uses an item from the actor's bag.
func (b *Battle) runItemAction(a *Action) {
	b.RecordDecision("turn %d: %s used item %s", b.Turn, a.Actor.Name, a.Item)
	var effect Effect
	if b.lib != nil {
		effect = b.lib.Item(NormalizeKey(a.Item))
	}
	user, ok := effect.(ItemUser)
	if !ok {
		b.Say(MsgItemNoEffect)
		return
	}
	holder := a.Target
	if holder == nil {
		holder = a.Actor
	}
	ctx := &ItemContext{Battle: b, User: a.Actor, Target: holder.At(a.TargetSlot), Action: a}
	used := false
	b.guard(effect.ID(), "use", func() { used = user.Use(ctx) })
	if !used {
		b.Say(MsgItemNoEffect)
	}
}
