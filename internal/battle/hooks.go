package battle

// Effect is one unit of the callback library: a move, ability, item or
// condition that deviates from default resolution. An effect implements only
// the hook interfaces below that it needs.
type Effect interface {
	ID() string
}

// MoveContext is passed to hooks that run while a move resolves.
type MoveContext struct {
	Battle  *Battle
	User    *Combatant
	Target  *Combatant
	Move    *Move
	Action  *Action
	Targets []*Combatant
	// Damage is the damage dealt to Target, set before hit hooks run.
	Damage int
	// Critical reports whether the hit on Target was critical.
	Critical bool
}

// EffectContext is passed to lifecycle hooks of abilities, items and
// conditions.
type EffectContext struct {
	Battle *Battle
	// Target is the combatant the effect is attached to or acting on.
	Target *Combatant
	// Source is the combatant that caused the effect, when known.
	Source *Combatant
	Move   *Move

	Volatile      *Volatile
	Side          *Side
	SideCondition *SideCondition
	Field         *FieldCondition
}

// TryHook runs before a move resolves. Returning false cancels the move.
type TryHook interface {
	Try(ctx *MoveContext) bool
}

// BasePowerHook computes base power from battle state.
type BasePowerHook interface {
	BasePower(ctx *MoveContext) int
}

// HitHook runs after a move hits ctx.Target. Held items of the user also
// receive it.
type HitHook interface {
	OnHit(ctx *MoveContext)
}

// BeforeMoveHook runs before a combatant acts. Returning false prevents the
// move for this turn.
type BeforeMoveHook interface {
	BeforeMove(ctx *MoveContext) bool
}

// ImmunityHook lets a target's ability or volatile nullify an incoming move.
type ImmunityHook interface {
	Immune(ctx *MoveContext) bool
}

// ContactHook runs on the target's ability and held item after a contact
// move hits it.
type ContactHook interface {
	OnContact(ctx *MoveContext)
}

// StartHook runs when the effect begins: an ability enters play or a volatile
// is attached. Returning false rejects a volatile.
type StartHook interface {
	OnStart(ctx *EffectContext) bool
}

// SwitchInHook runs when a combatant enters play. Abilities receive it for
// their holder; side conditions receive it for every entrant on their side.
type SwitchInHook interface {
	OnSwitchIn(ctx *EffectContext)
}

// SwitchOutHook runs when a combatant leaves play by switching.
type SwitchOutHook interface {
	OnSwitchOut(ctx *EffectContext)
}

// EndHook runs when the effect is removed or expires.
type EndHook interface {
	OnEnd(ctx *EffectContext)
}

// ResidualHook runs once per residual phase.
type ResidualHook interface {
	OnResidual(ctx *EffectContext)
}

// SideStartHook runs when a side condition is created. Returning false
// rejects it.
type SideStartHook interface {
	OnSideStart(ctx *EffectContext) bool
}

// FieldStartHook runs when weather or pseudo-weather is created. Returning
// false rejects it.
type FieldStartHook interface {
	OnFieldStart(ctx *EffectContext) bool
}

// FieldRestartHook runs when a move re-adds an active pseudo-weather.
type FieldRestartHook interface {
	OnFieldRestart(ctx *EffectContext)
}

// StatModifierHook adjusts an effective stat of its holder.
type StatModifierHook interface {
	ModifyStat(c *Combatant, stat Stat, value int) int
}

// DamageModifierHook adjusts computed damage. It must not mutate state.
type DamageModifierHook interface {
	ModifyDamage(ctx *MoveContext, damage float64) float64
}

// EndureHook lets an ability or held item keep its holder at 1 hp against a
// knockout.
// Returning true consumes the endure.
type EndureHook interface {
	Endure(ctx *EffectContext, damage int) bool
}

// AfterDamageHook runs on the holder's item after it loses hit points.
type AfterDamageHook interface {
	AfterDamage(ctx *EffectContext)
}

// StatusImmunityHook blocks a major status from being applied.
type StatusImmunityHook interface {
	BlocksStatus(ctx *EffectContext, status Status) bool
}

// BurnPenaltyIgnorer exempts its holder from the burned physical damage cut.
type BurnPenaltyIgnorer interface {
	IgnoresBurnPenalty() bool
}

// SwitchBlocker prevents its holder from switching out or fleeing.
type SwitchBlocker interface {
	BlocksSwitch(ctx *EffectContext) bool
}

// Trapper is implemented by abilities that keep foes from fleeing.
type Trapper interface {
	Traps(holder, foe *Combatant) bool
}

// Escaper is implemented by abilities and held items that guarantee a
// successful flee or switch.
type Escaper interface {
	AlwaysEscapes() bool
}

// ChoiceItem is implemented by held items that lock their holder into the
// first move it uses.
type ChoiceItem interface {
	ChoiceLock()
}

// Layered is implemented by side conditions that stack up to a maximum
// number of layers when re-applied.
type Layered interface {
	MaxLayers() int
}

// ItemContext is passed to items used from the bag.
type ItemContext struct {
	Battle *Battle
	User   *Participant
	Target *Combatant
	Action *Action
}

// ItemUser is implemented by items usable as an action.
type ItemUser interface {
	Use(ctx *ItemContext) bool
}

// Library is the read-only reference data a battle is built with.
//
// Unknown keys return nil or false and are treated as neutral no-ops.
type Library interface {
	Move(key string) (*Move, bool)
	Ability(key string) Effect
	Item(key string) Effect
	Condition(key string) Effect
	// Effectiveness returns the type multiplier of moveType against defender.
	Effectiveness(moveType Type, defender []Type) float64
}

// MessageSink receives narrated, battle-scoped text.
type MessageSink interface {
	Message(battleID, text string)
}

// MessageFunc adapts a function to MessageSink.
type MessageFunc func(battleID, text string)

// Message calls f.
func (f MessageFunc) Message(battleID, text string) {
	f(battleID, text)
}

// DecisionLogger records AI choices and move usage for offline analysis.
type DecisionLogger interface {
	Record(line string)
}
