package effects

import (
	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/battle/rng"
)

const (
	confusionMinTurns   = 2
	confusionMaxTurns   = 5
	confusionSelfHit    = 33
	attractBlockPercent = 50
	trapMinTurns        = 4
	trapMaxTurns        = 5
	yawnTurns           = 2
)

// portion returns 1/den of c's max hp, at least 1.
func portion(c *battle.Combatant, den int) int {
	return max(1, c.MaxHP/den)
}

// sourceFainted reports whether the combatant that applied a volatile can no
// longer sustain it. Switching out does not count.
func sourceFainted(source *battle.Combatant) bool {
	return source == nil || source.Fainted || source.HP <= 0
}

// sourceLeft reports whether the combatant that applied a volatile left play.
func sourceLeft(source *battle.Combatant) bool {
	return !source.Active() || !source.Usable()
}

// seedRecipient is whoever holds the seeder's slot now. The slot is kept in
// the volatile's counter.
func seedRecipient(source *battle.Combatant, v *battle.Volatile) *battle.Combatant {
	if source.Active() {
		return source
	}
	if p := source.Participant(); p != nil && v != nil {
		return p.At(v.Counter)
	}
	return nil
}

type leechSeed struct{}

func (leechSeed) ID() string { return "leechseed" }

func (leechSeed) OnStart(ctx *battle.EffectContext) bool {
	if ctx.Target.HasType("Grass") {
		return false
	}
	ctx.Battle.Say(MsgSeeded, ctx.Target.Name)
	if ctx.Source != nil && ctx.Volatile != nil {
		ctx.Volatile.Counter = ctx.Source.Position()
	}
	return true
}

func (leechSeed) OnResidual(ctx *battle.EffectContext) {
	if sourceFainted(ctx.Source) {
		ctx.Battle.RemoveVolatile(ctx.Target, "leechseed")
		return
	}
	drained := ctx.Battle.Damage(ctx.Target, portion(ctx.Target, 8), ctx.Source, nil)
	if drained == 0 {
		return
	}
	ctx.Battle.Say(MsgSapped, ctx.Target.Name)
	if recipient := seedRecipient(ctx.Source, ctx.Volatile); recipient.Usable() {
		ctx.Battle.Heal(recipient, drained)
	}
}

type aquaRing struct{}

func (aquaRing) ID() string { return "aquaring" }

func (aquaRing) OnStart(ctx *battle.EffectContext) bool {
	ctx.Battle.Say(MsgAquaRing, ctx.Target.Name)
	return true
}

func (aquaRing) OnResidual(ctx *battle.EffectContext) {
	if ctx.Battle.Heal(ctx.Target, portion(ctx.Target, 16)) > 0 {
		ctx.Battle.Say(MsgAquaRingHeal, ctx.Target.Name)
	}
}

// partiallyTrapped is left by binding moves: damage every turn and no
// switching while it lasts.
type partiallyTrapped struct{}

func (partiallyTrapped) ID() string { return "partiallytrapped" }

func (partiallyTrapped) OnStart(ctx *battle.EffectContext) bool {
	if ctx.Volatile.Duration == 0 {
		ctx.Volatile.Duration = rng.Range(ctx.Battle.Rand(), trapMinTurns, trapMaxTurns)
	}
	ctx.Battle.Say(MsgBound, ctx.Target.Name)
	return true
}

func (partiallyTrapped) OnResidual(ctx *battle.EffectContext) {
	if sourceFainted(ctx.Source) {
		ctx.Battle.RemoveVolatile(ctx.Target, "partiallytrapped")
		return
	}
	ctx.Battle.Damage(ctx.Target, portion(ctx.Target, 8), ctx.Source, nil)
	ctx.Battle.Say(MsgHurtByTrap, ctx.Target.Name)
}

func (partiallyTrapped) BlocksSwitch(*battle.EffectContext) bool { return true }

// confusion counts down on move attempts rather than turns.
type confusion struct{}

func (confusion) ID() string { return "confusion" }

func (confusion) OnStart(ctx *battle.EffectContext) bool {
	ctx.Volatile.Counter = rng.Range(ctx.Battle.Rand(), confusionMinTurns, confusionMaxTurns)
	ctx.Battle.Say(MsgConfused, ctx.Target.Name)
	return true
}

func (confusion) BeforeMove(ctx *battle.MoveContext) bool {
	user := ctx.User
	v := user.Volatile("confusion")
	if v == nil {
		return true
	}
	v.Counter--
	if v.Counter <= 0 {
		ctx.Battle.RemoveVolatile(user, "confusion")
		ctx.Battle.Say(MsgSnappedOut, user.Name)
		return true
	}
	ctx.Battle.Say(MsgIsConfused, user.Name)
	if !rng.Percent(ctx.Battle.Rand(), confusionSelfHit) {
		return true
	}
	ctx.Battle.Say(MsgHurtInConfusion)
	ctx.Battle.Damage(user, portion(user, 8), user, nil)
	return false
}

type attract struct{}

func (attract) ID() string { return "attract" }

func (attract) OnStart(ctx *battle.EffectContext) bool {
	if ctx.Source == nil || ctx.Source == ctx.Target {
		return false
	}
	ctx.Battle.Say(MsgInLove, ctx.Target.Name)
	return true
}

func (attract) BeforeMove(ctx *battle.MoveContext) bool {
	user := ctx.User
	v := user.Volatile("attract")
	if v == nil {
		return true
	}
	if sourceLeft(v.Source) {
		ctx.Battle.RemoveVolatile(user, "attract")
		return true
	}
	if rng.Percent(ctx.Battle.Rand(), attractBlockPercent) {
		ctx.Battle.Say(MsgImmobilized, user.Name)
		return false
	}
	return true
}

// protect blocks protectable moves for the rest of the turn.
type protect struct{}

func (protect) ID() string { return "protect" }

func (protect) OnStart(ctx *battle.EffectContext) bool {
	ctx.Volatile.Duration = battle.DurationTurn
	ctx.Battle.Say(MsgProtecting, ctx.Target.Name)
	return true
}

// trapped keeps its holder in play while the combatant that trapped it stays
// in.
type trapped struct{}

func (trapped) ID() string { return "trapped" }

func (trapped) OnStart(ctx *battle.EffectContext) bool {
	ctx.Battle.Say(MsgCantEscape, ctx.Target.Name)
	return true
}

func (trapped) BlocksSwitch(ctx *battle.EffectContext) bool {
	return !sourceLeft(ctx.Source)
}

// yawn puts its holder to sleep at the end of the next turn.
type yawn struct{}

func (yawn) ID() string { return "yawn" }

func (yawn) OnStart(ctx *battle.EffectContext) bool {
	if ctx.Target.Status != battle.StatusNone {
		return false
	}
	ctx.Volatile.Duration = yawnTurns
	ctx.Battle.Say(MsgDrowsy, ctx.Target.Name)
	return true
}

func (yawn) OnEnd(ctx *battle.EffectContext) {
	if ctx.Volatile == nil || ctx.Volatile.Duration != 0 || !ctx.Target.Usable() {
		return
	}
	ctx.Battle.SetStatus(ctx.Target, battle.StatusSleep, ctx.Source)
}

// focusEnergy raises the critical-hit stage. The damage calculator reads the
// volatile directly.
type focusEnergy struct{}

func (focusEnergy) ID() string { return "focusenergy" }

func (focusEnergy) OnStart(ctx *battle.EffectContext) bool {
	ctx.Battle.Say(MsgPumped, ctx.Target.Name)
	return true
}

// lockedMove confuses its holder when the rampage runs out on its own.
type lockedMove struct{}

func (lockedMove) ID() string { return "lockedmove" }

func (lockedMove) OnEnd(ctx *battle.EffectContext) {
	if ctx.Volatile == nil || ctx.Volatile.Duration != 0 || !ctx.Target.Usable() {
		return
	}
	if _, ok := ctx.Battle.AddVolatile(ctx.Target, "confusion", ctx.Target, 0); ok {
		ctx.Battle.Say(MsgFatigueConfusion, ctx.Target.Name)
	}
}

// flashFireBoost marks a holder whose fire moves were powered up.
type flashFireBoost struct{}

func (flashFireBoost) ID() string { return "flashfire" }

func (flashFireBoost) OnStart(ctx *battle.EffectContext) bool {
	ctx.Battle.Say(MsgFlashFire, ctx.Target.Name)
	return true
}
