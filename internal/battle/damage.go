package battle

import (
	"math"

	"github.com/louisbranch/creaturebattle/internal/battle/rng"
)

const (
	stabMultiplier     = 1.5
	critMultiplier     = 1.5
	burnMultiplier     = 0.5
	spreadMultiplier   = 0.75
	minDamageRoll      = 85
	maxDamageRoll      = 100
	focusEnergyCritAdd = 2
)

// critChances maps a critical-hit stage to its probability.
var critChances = []float64{1.0 / 24, 1.0 / 8, 1.0 / 2, 1}

// StageMultiplier returns the multiplier for a battle stat stage:
// (2+s)/2 for non-negative stages and 2/(2-s) for negative ones.
func StageMultiplier(stage int) float64 {
	stage = clampInt(stage, MinStage, MaxStage)
	if stage >= 0 {
		return float64(2+stage) / 2
	}
	return 2 / float64(2-stage)
}

// AccuracyMultiplier returns the multiplier for an accuracy or evasion stage:
// (3+s)/3 for non-negative stages and 3/(3-s) for negative ones.
func AccuracyMultiplier(stage int) float64 {
	stage = clampInt(stage, MinStage, MaxStage)
	if stage >= 0 {
		return float64(3+stage) / 3
	}
	return 3 / float64(3-stage)
}

// CritChance returns the critical-hit probability for stage.
func CritChance(stage int) float64 {
	if stage < 0 {
		stage = 0
	}
	if stage >= len(critChances) {
		stage = len(critChances) - 1
	}
	return critChances[stage]
}

// DamageResult is the detailed outcome of a damage calculation.
type DamageResult struct {
	Damage        int
	BasePower     int
	Critical      bool
	Effectiveness float64
	Roll          int
}

// Immune reports whether the type chart nullified the hit.
func (r DamageResult) Immune() bool {
	return r.Effectiveness == 0
}

// ComputeDamage returns the damage attacker deals to defender with move.
// The result is never negative. Status moves deal zero damage.
func ComputeDamage(attacker, defender *Combatant, move *Move, b *Battle, src rng.Source) int {
	return CalculateDamage(attacker, defender, move, b, src).Damage
}

// CalculateDamage computes damage and reports how it was reached.
//
// Steps, in order: base power (static or from a BasePowerHook), attack and
// defense stats chosen by category with stage multipliers and stat hooks,
// the base formula floor(floor(floor(2L/5+2)*P*A/D)/50)+2, critical hit
// (1.5x on a staged roll), random roll in [85, 100]%, same-type bonus, type
// effectiveness, the burned physical attacker cut, then damage hooks. The
// calculation reads battle state but never mutates it. b may be nil, in which
// case no hooks run and every matchup is neutral.
func CalculateDamage(attacker, defender *Combatant, move *Move, b *Battle, src rng.Source) DamageResult {
	result := DamageResult{Effectiveness: 1}
	if attacker == nil || defender == nil || move == nil || move.Category == CategoryStatus {
		return result
	}
	if src == nil {
		src = rng.Fixed{}
	}

	ctx := &MoveContext{Battle: b, User: attacker, Target: defender, Move: move}
	power := b.basePower(ctx)
	result.BasePower = power
	if power <= 0 {
		return result
	}

	result.Effectiveness = b.effectiveness(move.Type, defender.Types)
	if result.Effectiveness == 0 {
		return result
	}

	critStage := move.CritRatio
	if attacker.HasVolatile("focusenergy") {
		critStage += focusEnergyCritAdd
	}
	result.Critical = rng.Chance(src, CritChance(critStage))
	ctx.Critical = result.Critical

	attackStat, defenseStat := StatAttack, StatDefense
	if move.Category == CategorySpecial {
		attackStat, defenseStat = StatSpAttack, StatSpDefense
	}
	attackStage := attacker.Stage(attackStat)
	defenseStage := defender.Stage(defenseStat)
	if result.Critical {
		if attackStage < 0 {
			attackStage = 0
		}
		if defenseStage > 0 {
			defenseStage = 0
		}
	}
	attack := b.statAtStage(attacker, attackStat, attackStage)
	defense := b.statAtStage(defender, defenseStat, defenseStage)
	if attack < 1 {
		attack = 1
	}
	if defense < 1 {
		defense = 1
	}

	level := attacker.Level
	if level < 1 {
		level = 1
	}
	base := (2*level/5 + 2) * power * attack / defense
	base = base/50 + 2

	damage := float64(base)
	if result.Critical {
		damage = math.Floor(damage * critMultiplier)
	}
	result.Roll = rng.Range(src, minDamageRoll, maxDamageRoll)
	damage = math.Floor(damage * float64(result.Roll) / 100)
	if attacker.HasType(move.Type) {
		damage = math.Floor(damage * stabMultiplier)
	}
	damage = math.Floor(damage * result.Effectiveness)
	if attacker.Status == StatusBurn && move.Category == CategoryPhysical && !b.ignoresBurn(attacker) {
		damage = math.Floor(damage * burnMultiplier)
	}
	damage = b.modifyDamage(ctx, damage)

	final := int(math.Floor(damage))
	if final < 1 {
		final = 1
	}
	result.Damage = final
	return result
}

// SpreadDamage returns the damage a non-primary target of a spread move takes.
func SpreadDamage(primary int) int {
	if primary <= 0 {
		return 0
	}
	return int(float64(primary) * spreadMultiplier)
}

// statAtStage returns stat with the given stage and stat hooks applied.
func (b *Battle) statAtStage(c *Combatant, stat Stat, stage int) int {
	value := int(math.Floor(float64(c.Stats.Get(stat)) * StageMultiplier(stage)))
	return b.modifyStat(c, stat, value)
}

func (b *Battle) basePower(ctx *MoveContext) int {
	power := ctx.Move.Power
	if b == nil || ctx.Move.Effect == nil {
		return power
	}
	hook, ok := ctx.Move.Effect.(BasePowerHook)
	if !ok {
		return power
	}
	b.guard(ctx.Move.Effect.ID(), "base_power", func() {
		power = hook.BasePower(ctx)
	})
	return power
}

func (b *Battle) effectiveness(moveType Type, defender []Type) float64 {
	if b == nil || b.lib == nil || moveType == "" {
		return 1
	}
	return b.lib.Effectiveness(moveType, defender)
}

func (b *Battle) ignoresBurn(c *Combatant) bool {
	if b == nil {
		return false
	}
	ignorer, ok := b.abilityOf(c).(BurnPenaltyIgnorer)
	return ok && ignorer.IgnoresBurnPenalty()
}

func (b *Battle) modifyStat(c *Combatant, stat Stat, value int) int {
	if b == nil {
		return value
	}
	for _, bound := range b.statEffects(c) {
		hook, ok := bound.effect.(StatModifierHook)
		if !ok {
			continue
		}
		current := value
		b.guard(bound.effect.ID(), "modify_stat", func() {
			current = hook.ModifyStat(c, stat, current)
		})
		value = current
	}
	return value
}

func (b *Battle) modifyDamage(ctx *MoveContext, damage float64) float64 {
	if b == nil {
		return damage
	}
	for _, bound := range b.damageEffects(ctx.User, ctx.Target) {
		hook, ok := bound.effect.(DamageModifierHook)
		if !ok {
			continue
		}
		current := damage
		b.guard(bound.effect.ID(), "modify_damage", func() {
			current = hook.ModifyDamage(ctx, current)
		})
		damage = current
	}
	return damage
}
