package effects

import (
	"slices"

	"github.com/louisbranch/creaturebattle/internal/battle"
)

const (
	choiceMultiplier  = 1.5
	lifeOrbMultiplier = 1.3
	lifeOrbRecoil     = 10
	sitrusThreshold   = 2
	sitrusHeal        = 4

	rockyHelmetDivisor   = 6
	weaknessPolicyStages = 2
)

// consume removes a single-use held item.
func consume(c *battle.Combatant) {
	c.Item = ""
	c.Transient.ItemConsumed = true
}

type leftovers struct{}

func (leftovers) ID() string { return "leftovers" }

func (leftovers) OnResidual(ctx *battle.EffectContext) {
	if ctx.Battle.Heal(ctx.Target, portion(ctx.Target, 16)) > 0 {
		ctx.Battle.Say(MsgLeftovers, ctx.Target.Name)
	}
}

// blackSludge heals poison types and hurts everyone else.
type blackSludge struct{}

func (blackSludge) ID() string { return "blacksludge" }

func (blackSludge) OnResidual(ctx *battle.EffectContext) {
	holder := ctx.Target
	if holder.HasType("Poison") {
		if ctx.Battle.Heal(holder, portion(holder, 16)) > 0 {
			ctx.Battle.Say(MsgBlackSludgeHeal, holder.Name)
		}
		return
	}
	ctx.Battle.Damage(holder, portion(holder, 8), nil, nil)
	ctx.Battle.Say(MsgBlackSludgeHurt, holder.Name)
}

// choiceItem boosts one stat and locks the holder into its first move.
type choiceItem struct {
	id   string
	stat battle.Stat
}

func (c choiceItem) ID() string { return c.id }

func (choiceItem) ChoiceLock() {}

func (c choiceItem) ModifyStat(_ *battle.Combatant, stat battle.Stat, value int) int {
	if stat != c.stat {
		return value
	}
	return int(float64(value) * choiceMultiplier)
}

// lifeOrb boosts damage at the cost of 1/10 max hp once per move.
type lifeOrb struct{}

func (lifeOrb) ID() string { return "lifeorb" }

func (lifeOrb) ModifyDamage(_ *battle.MoveContext, damage float64) float64 {
	return damage * lifeOrbMultiplier
}

func (lifeOrb) OnHit(ctx *battle.MoveContext) {
	if ctx.Damage <= 0 || ctx.Target != firstTarget(ctx) || !ctx.User.Usable() {
		return
	}
	ctx.Battle.Damage(ctx.User, portion(ctx.User, lifeOrbRecoil), ctx.User, nil)
	ctx.Battle.Say(MsgLifeOrb, ctx.User.Name)
}

type focusSash struct{}

func (focusSash) ID() string { return "focussash" }

func (focusSash) Endure(ctx *battle.EffectContext, _ int) bool {
	holder := ctx.Target
	if holder.HP != holder.MaxHP || holder.MaxHP <= 1 {
		return false
	}
	consume(holder)
	ctx.Battle.Say(MsgFocusSash, holder.Name)
	return true
}

// rockyHelmet hurts attackers that make contact with its holder.
type rockyHelmet struct{}

func (rockyHelmet) ID() string { return "rockyhelmet" }

func (rockyHelmet) OnContact(ctx *battle.MoveContext) {
	if ctx.User == ctx.Target || !ctx.User.Usable() {
		return
	}
	ctx.Battle.Damage(ctx.User, portion(ctx.User, rockyHelmetDivisor), ctx.Target, nil)
	ctx.Battle.Say(MsgRockyHelmet, ctx.User.Name)
}

type smokeBall struct{}

func (smokeBall) ID() string { return "smokeball" }

func (smokeBall) AlwaysEscapes() bool { return true }

// weaknessPolicy sharply raises both attacking stats after a super effective
// hit, then is used up.
type weaknessPolicy struct{}

func (weaknessPolicy) ID() string { return "weaknesspolicy" }

func (weaknessPolicy) AfterDamage(ctx *battle.EffectContext) {
	holder := ctx.Target
	lib := ctx.Battle.Library()
	if ctx.Move == nil || !ctx.Move.Damaging() || lib == nil {
		return
	}
	if lib.Effectiveness(ctx.Move.Type, holder.Types) <= 1 {
		return
	}
	consume(holder)
	ctx.Battle.Say(MsgWeaknessPolicy, holder.Name)
	ctx.Battle.BoostAll(holder, map[battle.Stat]int{
		battle.StatAttack:   weaknessPolicyStages,
		battle.StatSpAttack: weaknessPolicyStages,
	}, holder)
}

type sitrusBerry struct{}

func (sitrusBerry) ID() string { return "sitrusberry" }

func (sitrusBerry) AfterDamage(ctx *battle.EffectContext) {
	holder := ctx.Target
	if holder.HP > holder.MaxHP/sitrusThreshold {
		return
	}
	consume(holder)
	ctx.Battle.Heal(holder, portion(holder, sitrusHeal))
	ctx.Battle.Say(MsgSitrusBerry, holder.Name)
}

// lumBerry cures any major status at the end of the turn it was applied.
type lumBerry struct{}

func (lumBerry) ID() string { return "lumberry" }

func (lumBerry) OnResidual(ctx *battle.EffectContext) {
	holder := ctx.Target
	if holder.Status == battle.StatusNone {
		return
	}
	consume(holder)
	ctx.Battle.Say(MsgLumBerry, holder.Name)
	ctx.Battle.CureStatus(holder)
}

// potion restores a fixed amount of hp.
type potion struct {
	id     string
	amount int
}

func (p potion) ID() string { return p.id }

func (p potion) Use(ctx *battle.ItemContext) bool {
	target := ctx.Target
	if !usableOwn(ctx) {
		return false
	}
	healed := ctx.Battle.Heal(target, p.amount)
	if healed == 0 {
		return false
	}
	ctx.Battle.Say(MsgItemHealed, target.Name, healed)
	return true
}

type fullRestore struct{}

func (fullRestore) ID() string { return "fullrestore" }

func (fullRestore) Use(ctx *battle.ItemContext) bool {
	target := ctx.Target
	if !usableOwn(ctx) {
		return false
	}
	healed := ctx.Battle.Heal(target, target.MaxHP)
	if healed > 0 {
		ctx.Battle.Say(MsgItemHealed, target.Name, healed)
	}
	cured := ctx.Battle.CureStatus(target)
	return healed > 0 || cured
}

// statusCure removes the listed statuses, or any status when cures is empty.
type statusCure struct {
	id    string
	cures []battle.Status
}

func (s statusCure) ID() string { return s.id }

func (s statusCure) Use(ctx *battle.ItemContext) bool {
	target := ctx.Target
	if !usableOwn(ctx) || target.Status == battle.StatusNone {
		return false
	}
	if len(s.cures) > 0 && !slices.Contains(s.cures, target.Status) {
		return false
	}
	return ctx.Battle.CureStatus(target)
}

// ball attempts a capture with its catch multiplier.
type ball struct {
	id         string
	multiplier float64
}

func (b ball) ID() string { return b.id }

func (b ball) Use(ctx *battle.ItemContext) bool {
	if ctx.Target == nil {
		return false
	}
	thrown := ctx.Battle.AttemptCapture(ctx.User, ctx.Target, b.multiplier)
	return thrown || ctx.Battle.Kind != battle.KindWild
}

// usableOwn reports whether a bag item targets a living combatant of the user.
func usableOwn(ctx *battle.ItemContext) bool {
	return ctx.Target != nil && ctx.Target.Usable() && ctx.Target.Participant() == ctx.User
}
