package effects

import (
	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/battle/rng"
)

const (
	contactStatusPercent = 30
	gutsMultiplier       = 1.5
	flashFireMultiplier  = 1.5
	regeneratorDivisor   = 3
)

type intimidate struct{}

func (intimidate) ID() string { return "intimidate" }

func (intimidate) OnStart(ctx *battle.EffectContext) bool {
	foes := ctx.Battle.Foes(ctx.Target)
	if len(foes) == 0 {
		return true
	}
	ctx.Battle.Say(MsgIntimidate, ctx.Target.Name)
	for _, foe := range foes {
		ctx.Battle.Boost(foe, battle.StatAttack, -1, ctx.Target)
	}
	return true
}

type speedBoost struct{}

func (speedBoost) ID() string { return "speedboost" }

func (speedBoost) OnResidual(ctx *battle.EffectContext) {
	ctx.Battle.Boost(ctx.Target, battle.StatSpeed, 1, ctx.Target)
}

// weatherSetter summons weather when its holder enters play.
type weatherSetter struct {
	id      string
	weather string
}

func (w weatherSetter) ID() string { return w.id }

func (w weatherSetter) OnSwitchIn(ctx *battle.EffectContext) {
	ctx.Battle.SetWeather(w.weather, ctx.Target)
}

type levitate struct{}

func (levitate) ID() string { return "levitate" }

func (levitate) Immune(ctx *battle.MoveContext) bool {
	return ctx.Move.Type == "Ground"
}

type runAway struct{}

func (runAway) ID() string { return "runaway" }

func (runAway) AlwaysEscapes() bool { return true }

type arenaTrap struct{}

func (arenaTrap) ID() string { return "arenatrap" }

func (arenaTrap) Traps(_, foe *battle.Combatant) bool {
	return grounded(foe)
}

type shadowTag struct{}

func (shadowTag) ID() string { return "shadowtag" }

func (shadowTag) Traps(_, foe *battle.Combatant) bool {
	return battle.NormalizeKey(foe.Ability) != "shadowtag"
}

// contactStatus may inflict status on attackers that make contact.
type contactStatus struct {
	id     string
	status battle.Status
}

func (c contactStatus) ID() string { return c.id }

func (c contactStatus) OnContact(ctx *battle.MoveContext) {
	if !ctx.User.Usable() || ctx.User.Status != battle.StatusNone {
		return
	}
	if rng.Percent(ctx.Battle.Rand(), contactStatusPercent) {
		ctx.Battle.SetStatus(ctx.User, c.status, ctx.Target)
	}
}

// flashFire absorbs fire moves and powers up the holder's own.
type flashFire struct{}

func (flashFire) ID() string { return "flashfire" }

func (flashFire) Immune(ctx *battle.MoveContext) bool {
	if ctx.Move.Type != "Fire" {
		return false
	}
	ctx.Battle.AddVolatile(ctx.Target, "flashfire", ctx.Target, 0)
	return true
}

func (flashFire) ModifyDamage(ctx *battle.MoveContext, damage float64) float64 {
	if ctx.Move.Type == "Fire" && ctx.User.HasVolatile("flashfire") {
		return damage * flashFireMultiplier
	}
	return damage
}

type guts struct{}

func (guts) ID() string { return "guts" }

func (guts) ModifyStat(c *battle.Combatant, stat battle.Stat, value int) int {
	if stat != battle.StatAttack || c.Status == battle.StatusNone {
		return value
	}
	return int(float64(value) * gutsMultiplier)
}

func (guts) IgnoresBurnPenalty() bool { return true }

type insomnia struct{}

func (insomnia) ID() string { return "insomnia" }

func (insomnia) BlocksStatus(_ *battle.EffectContext, status battle.Status) bool {
	return status == battle.StatusSleep
}

type regenerator struct{}

func (regenerator) ID() string { return "regenerator" }

func (regenerator) OnSwitchOut(ctx *battle.EffectContext) {
	ctx.Battle.Heal(ctx.Target, ctx.Target.MaxHP/regeneratorDivisor)
}

type naturalCure struct{}

func (naturalCure) ID() string { return "naturalcure" }

func (naturalCure) OnSwitchOut(ctx *battle.EffectContext) {
	ctx.Battle.CureStatus(ctx.Target)
}

// sturdy survives a knockout from full hp with 1 hp left.
type sturdy struct{}

func (sturdy) ID() string { return "sturdy" }

func (sturdy) Endure(ctx *battle.EffectContext, _ int) bool {
	holder := ctx.Target
	if holder.HP != holder.MaxHP || holder.MaxHP <= 1 {
		return false
	}
	ctx.Battle.Say(MsgSturdy, holder.Name)
	return true
}
