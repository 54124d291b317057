package battle

import "github.com/louisbranch/creaturebattle/internal/battle/rng"

// runMoveAction resolves one declared move, including status gating and the
// before_move/after_move events around the attempt.
func (b *Battle) runMoveAction(a *Action) {
	user := a.combatant
	if user == nil {
		// Empty or out-of-range slot.
		b.Say(MsgMoveFailed)
		return
	}
	if !user.Active() || !user.Usable() || user.participant != a.Actor {
		return
	}
	move := a.move
	if move == nil {
		user.Transient.Moved = true
		b.Say(MsgUnknownMove, user.Name)
		return
	}

	b.Events.Dispatch(EventBeforeMove, Event{Battle: b, Turn: b.Turn, Combatant: user, Move: move, Action: a})
	if b.canAct(user, move, a) {
		b.useMove(user, move, a)
	}
	user.Transient.Moved = true
	b.Events.Dispatch(EventAfterMove, Event{Battle: b, Turn: b.Turn, Combatant: user, Target: user.Transient.LastTarget, Move: move, Action: a})
}

// useMove resolves move for user: targets, accuracy, the Try hook, damage or
// status effects, and hit hooks.
func (b *Battle) useMove(user *Combatant, move *Move, a *Action) {
	b.Say(MsgMoveUsed, user.Name, move.DisplayName())
	user.Transient.LastMove = move.Key
	b.RecordDecision("turn %d: %s used %s", b.Turn, user.ID, move.Key)
	b.lockChoice(user, move)

	targets, ok := b.resolveTargets(user, move, a)
	if !ok {
		b.Say(MsgNoTarget)
		return
	}

	hit := make([]*Combatant, 0, len(targets))
	for _, target := range targets {
		if target != user {
			if move.Flags.Protect && target.HasVolatile("protect") {
				b.Say(MsgProtected, target.Name)
				continue
			}
			if b.immune(user, target, move, a) {
				b.Say(MsgNoEffect, target.Name)
				continue
			}
			if !b.accuracyCheck(user, target, move) {
				b.Say(MsgMissed, user.Name)
				continue
			}
		}
		hit = append(hit, target)
	}
	if len(targets) > 0 && len(hit) == 0 {
		return
	}

	ctx := &MoveContext{Battle: b, User: user, Move: move, Action: a, Targets: hit}
	if len(hit) > 0 {
		ctx.Target = hit[0]
	}
	if hook, ok := move.Effect.(TryHook); ok {
		proceed := false
		if !b.guard(move.Effect.ID(), "try", func() { proceed = hook.Try(ctx) }) || !proceed {
			b.Say(MsgMoveFailed)
			return
		}
	}

	if move.Damaging() {
		b.resolveDamagingMove(ctx, hit)
	} else {
		b.resolveStatusMove(ctx, hit)
	}
}

// resolveTargets returns the combatants move acts on. Field- and side-wide
// shapes return no targets. The boolean is false when a targeted move has no
// valid target.
func (b *Battle) resolveTargets(user *Combatant, move *Move, a *Action) ([]*Combatant, bool) {
	switch move.Target {
	case TargetSelf:
		return []*Combatant{user}, true
	case TargetAllySide, TargetFoeSide, TargetAll:
		return nil, true
	case TargetAdjacentAlly:
		ally := b.chosenAlly(user, a)
		if ally == nil {
			return nil, false
		}
		return []*Combatant{ally}, true
	case TargetAdjacentAllyOrMe:
		if ally := b.chosenAlly(user, a); ally != nil {
			return []*Combatant{ally}, true
		}
		return []*Combatant{user}, true
	case TargetAllAdjacentFoes, TargetAllAdjacent:
		foes := b.Foes(user)
		primary := b.chosenTarget(user, a)
		out := make([]*Combatant, 0, len(foes)+1)
		if primary != nil && primary.participant != user.participant {
			out = append(out, primary)
		}
		for _, foe := range foes {
			if foe != primary {
				out = append(out, foe)
			}
		}
		if move.Target == TargetAllAdjacent {
			out = append(out, b.Allies(user)...)
		}
		return out, len(out) > 0
	case TargetRandomNormal:
		foes := b.Foes(user)
		if len(foes) == 0 {
			return nil, false
		}
		return []*Combatant{foes[rng.Pick(b.rng, len(foes))]}, true
	default:
		target := b.chosenTarget(user, a)
		if target == nil {
			return nil, false
		}
		if target.participant != user.participant {
			target = b.redirect(user, target)
		}
		return []*Combatant{target}, true
	}
}

// chosenTarget returns the declared target, retargeting to the first foe when
// the declared slot is empty.
func (b *Battle) chosenTarget(user *Combatant, a *Action) *Combatant {
	if a != nil && a.Target != nil {
		if target := a.Target.At(a.TargetSlot); target != nil {
			return target
		}
		if a.Target == user.participant {
			return nil
		}
	}
	foes := b.Foes(user)
	if len(foes) == 0 {
		return nil
	}
	return foes[0]
}

func (b *Battle) chosenAlly(user *Combatant, a *Action) *Combatant {
	allies := b.Allies(user)
	if a != nil && a.Target == user.participant {
		if ally := a.Target.At(a.TargetSlot); ally != nil && ally != user {
			return ally
		}
	}
	if len(allies) == 0 {
		return nil
	}
	return allies[0]
}

// redirect applies follow-me style redirection on target's side.
func (b *Battle) redirect(user, target *Combatant) *Combatant {
	for _, candidate := range target.participant.ActiveCombatants() {
		if candidate.HasVolatile("followme") {
			return candidate
		}
	}
	return target
}

// immune reports whether target's ability or volatiles nullify move.
func (b *Battle) immune(user, target *Combatant, move *Move, a *Action) bool {
	ctx := &MoveContext{Battle: b, User: user, Target: target, Move: move, Action: a}
	for _, bound := range b.defenseEffects(target) {
		hook, ok := bound.effect.(ImmunityHook)
		if !ok {
			continue
		}
		blocked := false
		b.guard(bound.effect.ID(), "immune", func() { blocked = hook.Immune(ctx) })
		if blocked {
			return true
		}
	}
	return false
}

// accuracyCheck rolls move's accuracy adjusted by the accuracy and evasion
// stages. Always-hit moves skip the roll.
func (b *Battle) accuracyCheck(user, target *Combatant, move *Move) bool {
	if move.AlwaysHits || move.Accuracy <= 0 {
		return true
	}
	stage := clampInt(user.Stage(StatAccuracy)-target.Stage(StatEvasion), MinStage, MaxStage)
	chance := float64(move.Accuracy) * AccuracyMultiplier(stage)
	return rng.Percent(b.rng, int(chance))
}

func (b *Battle) resolveDamagingMove(ctx *MoveContext, hit []*Combatant) {
	spread := ctx.Move.Target.Spread() && len(hit) > 1
	primary := -1
	for _, target := range hit {
		if !target.Usable() {
			continue
		}
		result := CalculateDamage(ctx.User, target, ctx.Move, b, b.rng)
		if result.Immune() {
			b.Say(MsgNoEffect, target.Name)
			continue
		}
		damage := result.Damage
		if spread {
			if primary < 0 {
				primary = damage
			} else {
				damage = SpreadDamage(primary)
			}
		}
		if result.Critical {
			b.Say(MsgCritical)
		}
		switch {
		case result.Effectiveness > 1:
			b.Say(MsgSuperEffective)
		case result.Effectiveness < 1:
			b.Say(MsgNotVeryEffective)
		}

		damage = b.endure(target, damage)
		dealt := b.Damage(target, damage, ctx.User, ctx.Move)
		ctx.User.Transient.LastTarget = target

		hitCtx := *ctx
		hitCtx.Target = target
		hitCtx.Damage = dealt
		hitCtx.Critical = result.Critical

		if ctx.Move.Flags.Contact {
			b.contact(&hitCtx)
		}
		if ctx.Move.Drain > 0 && dealt > 0 && ctx.User.Usable() {
			if b.Heal(ctx.User, max(1, int(float64(dealt)*ctx.Move.Drain))) > 0 {
				b.Say(MsgDrained, target.Name)
			}
		}
		if ctx.Move.Recoil > 0 && dealt > 0 && ctx.User.Usable() {
			b.Damage(ctx.User, max(1, int(float64(dealt)*ctx.Move.Recoil)), ctx.User, nil)
			b.Say(MsgRecoil, ctx.User.Name)
		}
		b.applyHitEffects(&hitCtx, target)
		b.applySecondary(&hitCtx, target)
		b.hitHooks(&hitCtx)
	}
	b.applySelfEffects(ctx)
}

func (b *Battle) resolveStatusMove(ctx *MoveContext, hit []*Combatant) {
	changed := false
	for _, target := range hit {
		hitCtx := *ctx
		hitCtx.Target = target
		ctx.User.Transient.LastTarget = target
		if b.applyHitEffects(&hitCtx, target) {
			changed = true
		}
		if b.hitHooks(&hitCtx) {
			changed = true
		}
	}
	if len(hit) == 0 && b.hitHooks(ctx) {
		changed = true
	}
	if b.applySelfEffects(ctx) {
		changed = true
	}
	if !changed {
		b.Say(MsgMoveFailed)
	}
}

// applyHitEffects applies the declared stat, status and volatile effects of
// the move to target.
func (b *Battle) applyHitEffects(ctx *MoveContext, target *Combatant) bool {
	if !target.Usable() {
		return false
	}
	move := ctx.Move
	changed := false
	if len(move.Boosts) > 0 && b.BoostAll(target, move.Boosts, ctx.User) {
		changed = true
	}
	if move.Status != StatusNone && b.SetStatus(target, move.Status, ctx.User) {
		changed = true
	}
	if move.Volatile != "" {
		if _, ok := b.AddVolatile(target, move.Volatile, ctx.User, 0); ok {
			changed = true
		}
	}
	return changed
}

// applySelfEffects applies user-side, side-wide and field-wide effects once
// per use.
func (b *Battle) applySelfEffects(ctx *MoveContext) bool {
	user, move := ctx.User, ctx.Move
	changed := false
	if user.Usable() {
		if len(move.SelfBoosts) > 0 && b.BoostAll(user, move.SelfBoosts, user) {
			changed = true
		}
		if move.SelfVolatile != "" {
			if _, ok := b.AddVolatile(user, move.SelfVolatile, user, 0); ok {
				changed = true
			}
		}
		if move.Heal > 0 && b.Heal(user, max(1, int(float64(user.MaxHP)*move.Heal))) > 0 {
			b.Say(MsgHealed, user.Name)
			changed = true
		}
	}
	if move.SideCondition != "" {
		side := b.sideOf(user)
		if move.Target == TargetFoeSide {
			side = nil
			if foe := b.Opponent(user.participant); foe != nil {
				side = foe.Side
			}
		}
		if side != nil && b.AddSideCondition(side, move.SideCondition, user) {
			changed = true
		}
	}
	if move.PseudoWeather != "" && b.AddPseudoWeather(move.PseudoWeather, user) {
		changed = true
	}
	if move.Weather != "" && b.SetWeather(move.Weather, user) {
		changed = true
	}
	return changed
}

// applySecondary rolls a damaging move's secondary effect against target.
func (b *Battle) applySecondary(ctx *MoveContext, target *Combatant) {
	sec := ctx.Move.Secondary
	if sec == nil || !rng.Percent(b.rng, sec.Chance) {
		return
	}
	if target.Usable() {
		if sec.Status != StatusNone {
			b.SetStatus(target, sec.Status, ctx.User)
		}
		if sec.Volatile != "" {
			duration := 0
			if sec.Volatile == "flinch" {
				duration = DurationTurn
			}
			b.AddVolatile(target, sec.Volatile, ctx.User, duration)
		}
		if len(sec.Boosts) > 0 {
			b.BoostAll(target, sec.Boosts, ctx.User)
		}
	}
	if len(sec.SelfBoosts) > 0 && ctx.User.Usable() {
		b.BoostAll(ctx.User, sec.SelfBoosts, ctx.User)
	}
}

// hitHooks runs the move's OnHit and the user's held item OnHit. It reports
// whether a move hook ran.
func (b *Battle) hitHooks(ctx *MoveContext) bool {
	ran := false
	if hook, ok := ctx.Move.Effect.(HitHook); ok {
		ran = b.guard(ctx.Move.Effect.ID(), "hit", func() { hook.OnHit(ctx) })
	}
	for _, bound := range b.itemBinding(ctx.User) {
		if hook, ok := bound.effect.(HitHook); ok {
			b.guard(bound.effect.ID(), "hit", func() { hook.OnHit(ctx) })
		}
	}
	return ran
}

// contact runs the contact hooks of the target's ability and held item.
func (b *Battle) contact(ctx *MoveContext) {
	for _, bound := range b.heldBindings(ctx.Target) {
		if hook, ok := bound.effect.(ContactHook); ok {
			b.guard(bound.effect.ID(), "contact", func() { hook.OnContact(ctx) })
		}
	}
}

// endure lets target's ability or held item keep it at 1 hp against a
// knockout. The ability is asked first so a single-use item is kept.
func (b *Battle) endure(target *Combatant, damage int) int {
	if damage < target.HP {
		return damage
	}
	for _, bound := range b.heldBindings(target) {
		hook, ok := bound.effect.(EndureHook)
		if !ok {
			continue
		}
		ctx := bound.context(b, target)
		endured := false
		b.guard(bound.effect.ID(), "endure", func() { endured = hook.Endure(ctx, damage) })
		if endured {
			return target.HP - 1
		}
	}
	return damage
}

// lockChoice records the first move used while holding a choice item.
func (b *Battle) lockChoice(user *Combatant, move *Move) {
	if _, ok := b.itemOf(user).(ChoiceItem); !ok || user.HasVolatile("choicelock") {
		return
	}
	if v, ok := b.AddVolatile(user, "choicelock", user, 0); ok {
		v.Move = move.Key
	}
}
