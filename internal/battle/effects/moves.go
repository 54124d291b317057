package effects

import (
	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/battle/rng"
)

const (
	acupressureBoost = 2
	rampageMinTurns  = 2
	rampageMaxTurns  = 3
	restSleepTurns   = 2
	facadeMultiplier = 2
)

// acupressureStats are the stats acupressure may raise.
var acupressureStats = []battle.Stat{
	battle.StatAttack, battle.StatDefense, battle.StatSpAttack, battle.StatSpDefense,
	battle.StatSpeed, battle.StatAccuracy, battle.StatEvasion,
}

// acupressure sharply raises one random stat of the target that is not
// already maxed.
type acupressure struct{}

func (acupressure) ID() string { return "acupressure" }

func (acupressure) Try(ctx *battle.MoveContext) bool {
	return ctx.Target != nil && len(raisable(ctx.Target)) > 0
}

func (acupressure) OnHit(ctx *battle.MoveContext) {
	stats := raisable(ctx.Target)
	if len(stats) == 0 {
		return
	}
	stat := stats[rng.Pick(ctx.Battle.Rand(), len(stats))]
	ctx.Battle.Boost(ctx.Target, stat, acupressureBoost, ctx.User)
}

func raisable(c *battle.Combatant) []battle.Stat {
	var out []battle.Stat
	for _, stat := range acupressureStats {
		if c.Stage(stat) < battle.MaxStage {
			out = append(out, stat)
		}
	}
	return out
}

// echoedVoice grows stronger each consecutive turn it is used by anyone.
type echoedVoice struct{}

func (echoedVoice) ID() string { return "echoedvoice" }

func (echoedVoice) Try(ctx *battle.MoveContext) bool {
	ctx.Battle.AddPseudoWeather("echoedvoice", ctx.User)
	return true
}

func (echoedVoice) BasePower(ctx *battle.MoveContext) int {
	multiplier := 1
	if ctx.Battle != nil {
		if cond := ctx.Battle.Field.GetPseudoWeather("echoedvoice"); cond != nil && cond.Multiplier > 0 {
			multiplier = cond.Multiplier
		}
	}
	return ctx.Move.Power * multiplier
}

// afterYou makes the target act right after the user.
type afterYou struct{}

func (afterYou) ID() string { return "afteryou" }

func (afterYou) Try(ctx *battle.MoveContext) bool {
	if ctx.Battle.ActivePerSide < 2 || ctx.Target == nil {
		return false
	}
	return ctx.Battle.PendingAction(ctx.Target) != nil
}

func (afterYou) OnHit(ctx *battle.MoveContext) {
	if ctx.Battle.Promote(ctx.Target) {
		ctx.Battle.Say(MsgAfterYou, ctx.Target.Name)
	}
}

// quash makes the target act last this turn.
type quash struct{}

func (quash) ID() string { return "quash" }

func (quash) Try(ctx *battle.MoveContext) bool {
	return ctx.Target != nil && ctx.Battle.PendingAction(ctx.Target) != nil
}

func (quash) OnHit(ctx *battle.MoveContext) {
	if ctx.Battle.Quash(ctx.Target) {
		ctx.Battle.Say(MsgQuashed, ctx.Target.Name)
	}
}

// allySwitch swaps the user with its ally.
type allySwitch struct{}

func (allySwitch) ID() string { return "allyswitch" }

func (allySwitch) Try(ctx *battle.MoveContext) bool {
	return ctx.Battle.ActivePerSide >= 2 && len(ctx.Battle.Allies(ctx.User)) > 0
}

func (allySwitch) OnHit(ctx *battle.MoveContext) {
	allies := ctx.Battle.Allies(ctx.User)
	if len(allies) == 0 {
		return
	}
	if ctx.Battle.SwapPositions(ctx.User, allies[0]) {
		ctx.Battle.Say(MsgAllySwitch, ctx.User.Name, allies[0].Name)
	}
}

// followMe draws single-target moves from the foe's side this turn.
type followMe struct{}

func (followMe) ID() string { return "followme" }

func (followMe) Try(ctx *battle.MoveContext) bool {
	return ctx.Battle.ActivePerSide >= 2
}

func (followMe) OnHit(ctx *battle.MoveContext) {
	if _, ok := ctx.Battle.AddVolatile(ctx.User, "followme", ctx.User, battle.DurationTurn); ok {
		ctx.Battle.Say(MsgFollowMe, ctx.User.Name)
	}
}

// recharge moves leave the user unable to act on its next turn.
type recharge struct {
	id string
}

func (r recharge) ID() string { return r.id }

func (recharge) OnHit(ctx *battle.MoveContext) {
	if ctx.Target == firstTarget(ctx) {
		ctx.Battle.AddVolatile(ctx.User, "mustrecharge", ctx.User, 0)
	}
}

// rampage moves lock the user in for two or three turns, then confuse it.
type rampage struct {
	id string
}

func (r rampage) ID() string { return r.id }

func (rampage) OnHit(ctx *battle.MoveContext) {
	if ctx.User.HasVolatile("lockedmove") {
		return
	}
	turns := rng.Range(ctx.Battle.Rand(), rampageMinTurns, rampageMaxTurns)
	if v, ok := ctx.Battle.AddVolatile(ctx.User, "lockedmove", ctx.User, turns); ok {
		v.Move = ctx.Move.Key
	}
}

// rest fully heals the user and puts it to sleep for two turns.
type rest struct{}

func (rest) ID() string { return "rest" }

func (rest) Try(ctx *battle.MoveContext) bool {
	user := ctx.User
	return user.HP < user.MaxHP && user.Status != battle.StatusSleep
}

func (rest) OnHit(ctx *battle.MoveContext) {
	user := ctx.User
	previous, state := user.Status, user.StatusState
	user.Status, user.StatusState = battle.StatusNone, battle.StatusState{}
	if !ctx.Battle.SetStatus(user, battle.StatusSleep, user) {
		user.Status, user.StatusState = previous, state
		return
	}
	user.StatusState.SleepTurns = restSleepTurns
	ctx.Battle.Heal(user, user.MaxHP)
	ctx.Battle.Say(MsgRest, user.Name)
}

// transform copies the target until the user leaves play or the battle ends.
type transform struct{}

func (transform) ID() string { return "transform" }

func (transform) Try(ctx *battle.MoveContext) bool {
	return ctx.Target != nil && ctx.Target != ctx.User && ctx.User.Borrowed == nil && ctx.Target.Borrowed == nil
}

func (transform) OnHit(ctx *battle.MoveContext) {
	if ctx.Battle.Transform(ctx.User, ctx.Target) {
		ctx.Battle.AddVolatile(ctx.User, "transform", ctx.Target, 0)
	}
}

func firstTarget(ctx *battle.MoveContext) *battle.Combatant {
	if len(ctx.Targets) == 0 {
		return ctx.Target
	}
	return ctx.Targets[0]
}

// facade doubles its power while the user has a major status.
type facade struct{}

func (facade) ID() string { return "facade" }

func (facade) BasePower(ctx *battle.MoveContext) int {
	if ctx.User.Status != battle.StatusNone {
		return ctx.Move.Power * facadeMultiplier
	}
	return ctx.Move.Power
}
