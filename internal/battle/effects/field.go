package effects

import "github.com/louisbranch/creaturebattle/internal/battle"

// Weather ids.
const (
	WeatherRain      = "rain"
	WeatherSun       = "sun"
	WeatherSandstorm = "sandstorm"
)

const (
	screenTurns      = 5
	screenMultiplier = 0.5
	tailwindTurns    = 4
	safeguardTurns   = 5
	trickRoomTurns   = 5
	echoedVoiceTurns = 2
	echoedVoiceMax   = 5
	weatherBoost     = 1.5
	weatherWeaken    = 0.5
	spikesMaxLayers  = 3

	toxicSpikesMaxLayers = 2
)

// spikesDivisors maps layer count to the max hp divisor of entry damage.
var spikesDivisors = [spikesMaxLayers + 1]int{0, 8, 6, 4}

func ownerName(side *battle.Side) string {
	if side == nil || side.Participant() == nil {
		return ""
	}
	return side.Participant().Name
}

// grounded reports whether c touches the ground for hazards and traps.
func grounded(c *battle.Combatant) bool {
	return !c.HasType("Flying") && battle.NormalizeKey(c.Ability) != "levitate"
}

// screen halves damage of one category against its side unless the hit is
// critical.
type screen struct {
	id       string
	category battle.Category
	message  string
}

func (s screen) ID() string { return s.id }

func (s screen) OnSideStart(ctx *battle.EffectContext) bool {
	ctx.SideCondition.Duration = screenTurns
	ctx.Battle.Say(s.message, ownerName(ctx.Side))
	return true
}

func (s screen) ModifyDamage(ctx *battle.MoveContext, damage float64) float64 {
	if ctx.Critical || ctx.Move.Category != s.category {
		return damage
	}
	return damage * screenMultiplier
}

type tailwind struct{}

func (tailwind) ID() string { return "tailwind" }

func (tailwind) OnSideStart(ctx *battle.EffectContext) bool {
	ctx.SideCondition.Duration = tailwindTurns
	ctx.Battle.Say(MsgTailwind, ownerName(ctx.Side))
	return true
}

func (tailwind) ModifyStat(_ *battle.Combatant, stat battle.Stat, value int) int {
	if stat != battle.StatSpeed {
		return value
	}
	return value * 2
}

// safeguard blocks major statuses inflicted by other sides.
type safeguard struct{}

func (safeguard) ID() string { return "safeguard" }

func (safeguard) OnSideStart(ctx *battle.EffectContext) bool {
	ctx.SideCondition.Duration = safeguardTurns
	ctx.Battle.Say(MsgSafeguard, ownerName(ctx.Side))
	return true
}

func (safeguard) BlocksStatus(ctx *battle.EffectContext, _ battle.Status) bool {
	if ctx.Source != nil && ctx.Source.Participant() == ctx.Target.Participant() {
		return false
	}
	ctx.Battle.Say(MsgSafeguarded, ctx.Target.Name)
	return true
}

// stealthRock damages every entrant by its rock effectiveness.
type stealthRock struct{}

func (stealthRock) ID() string { return "stealthrock" }

func (stealthRock) OnSideStart(ctx *battle.EffectContext) bool {
	ctx.Battle.Say(MsgStealthRock, ownerName(ctx.Side))
	return true
}

func (stealthRock) OnSwitchIn(ctx *battle.EffectContext) {
	target := ctx.Target
	multiplier := 1.0
	if lib := ctx.Battle.Library(); lib != nil {
		multiplier = lib.Effectiveness("Rock", target.Types)
	}
	if multiplier == 0 {
		return
	}
	damage := max(1, int(float64(target.MaxHP)*multiplier/8))
	ctx.Battle.Damage(target, damage, nil, nil)
	ctx.Battle.Say(MsgHurtByRocks, target.Name)
}

// spikes stacks up to three layers and only hurts grounded entrants.
type spikes struct{}

func (spikes) ID() string { return "spikes" }

func (spikes) MaxLayers() int { return spikesMaxLayers }

func (spikes) OnSideStart(ctx *battle.EffectContext) bool {
	ctx.Battle.Say(MsgSpikes, ownerName(ctx.Side))
	return true
}

func (spikes) OnSwitchIn(ctx *battle.EffectContext) {
	target := ctx.Target
	if !grounded(target) {
		return
	}
	layers := min(max(ctx.SideCondition.Layers, 1), spikesMaxLayers)
	ctx.Battle.Damage(target, portion(target, spikesDivisors[layers]), nil, nil)
	ctx.Battle.Say(MsgHurtBySpikes, target.Name)
}

// toxicSpikes poisons grounded entrants, badly at two layers. A grounded
// poison type absorbs them.
type toxicSpikes struct{}

func (toxicSpikes) ID() string { return "toxicspikes" }

func (toxicSpikes) MaxLayers() int { return toxicSpikesMaxLayers }

func (toxicSpikes) OnSideStart(ctx *battle.EffectContext) bool {
	ctx.Battle.Say(MsgToxicSpikes, ownerName(ctx.Side))
	return true
}

func (toxicSpikes) OnSwitchIn(ctx *battle.EffectContext) {
	target := ctx.Target
	if !grounded(target) {
		return
	}
	if target.HasType("Poison") {
		ctx.Battle.Say(MsgAbsorbedSpikes, target.Name)
		ctx.Battle.RemoveSideCondition(ctx.Side, "toxicspikes")
		return
	}
	if target.Status != battle.StatusNone {
		return
	}
	status := battle.StatusPoison
	if ctx.SideCondition.Layers >= toxicSpikesMaxLayers {
		status = battle.StatusToxic
	}
	ctx.Battle.SetStatus(target, status, nil)
}

// trickRoom reverses speed order within a priority bracket. Using it again
// while active ends it.
type trickRoom struct{}

func (trickRoom) ID() string { return "trickroom" }

func (trickRoom) OnFieldStart(ctx *battle.EffectContext) bool {
	ctx.Field.Duration = trickRoomTurns
	name := ""
	if ctx.Source != nil {
		name = ctx.Source.Name
	}
	ctx.Battle.Say(MsgTrickRoom, name)
	return true
}

func (trickRoom) OnFieldRestart(ctx *battle.EffectContext) {
	ctx.Battle.RemovePseudoWeather("trickroom")
}

// echoedVoiceField tracks consecutive turns of echoed voice. A restart in a
// later turn refreshes the duration and raises the multiplier.
type echoedVoiceField struct{}

func (echoedVoiceField) ID() string { return "echoedvoice" }

func (echoedVoiceField) OnFieldStart(ctx *battle.EffectContext) bool {
	ctx.Field.Duration = echoedVoiceTurns
	ctx.Field.Multiplier = 1
	return true
}

func (echoedVoiceField) OnFieldRestart(ctx *battle.EffectContext) {
	if ctx.Field.Duration == echoedVoiceTurns {
		return
	}
	ctx.Field.Duration = echoedVoiceTurns
	ctx.Field.Multiplier = min(ctx.Field.Multiplier+1, echoedVoiceMax)
}

// weather boosts one move type and weakens another.
type weather struct {
	id       string
	message  string
	boosted  battle.Type
	weakened battle.Type
}

func (w weather) ID() string { return w.id }

func (w weather) OnFieldStart(ctx *battle.EffectContext) bool {
	ctx.Battle.Say(w.message)
	return true
}

func (w weather) ModifyDamage(ctx *battle.MoveContext, damage float64) float64 {
	switch ctx.Move.Type {
	case w.boosted:
		return damage * weatherBoost
	case w.weakened:
		return damage * weatherWeaken
	}
	return damage
}

type sandstorm struct{}

func (sandstorm) ID() string { return WeatherSandstorm }

func (sandstorm) OnFieldStart(ctx *battle.EffectContext) bool {
	ctx.Battle.Say(MsgSandstormStarted)
	return true
}

func (sandstorm) OnResidual(ctx *battle.EffectContext) {
	for _, c := range ctx.Battle.ActiveCombatants() {
		if !c.Usable() || c.HasType("Rock") || c.HasType("Ground") || c.HasType("Steel") {
			continue
		}
		ctx.Battle.Damage(c, portion(c, 16), nil, nil)
		ctx.Battle.Say(MsgBuffetedBySand, c.Name)
	}
}
