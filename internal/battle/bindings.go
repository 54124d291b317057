package battle

import "sort"

// boundEffect is an effect together with the state it is attached to.
type boundEffect struct {
	effect        Effect
	volatile      *Volatile
	side          *Side
	sideCondition *SideCondition
	field         *FieldCondition
}

func (be boundEffect) context(b *Battle, target *Combatant) *EffectContext {
	ctx := &EffectContext{
		Battle:        b,
		Target:        target,
		Volatile:      be.volatile,
		Side:          be.side,
		SideCondition: be.sideCondition,
		Field:         be.field,
	}
	switch {
	case be.volatile != nil:
		ctx.Source = be.volatile.Source
	case be.sideCondition != nil:
		ctx.Source = be.sideCondition.Source
	case be.field != nil:
		ctx.Source = be.field.Source
	default:
		ctx.Source = target
	}
	return ctx
}

// guard runs fn and recovers a panic from an effect hook. It reports whether
// fn completed.
func (b *Battle) guard(effectID, hook string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("battle %s: effect %s hook %s panicked: %v", b.ID, effectID, hook, r)
			ok = false
		}
	}()
	fn()
	return true
}

func (b *Battle) abilityOf(c *Combatant) Effect {
	if b == nil || b.lib == nil || c == nil || c.Ability == "" {
		return nil
	}
	return b.lib.Ability(c.Ability)
}

func (b *Battle) itemOf(c *Combatant) Effect {
	if b == nil || b.lib == nil || c == nil || c.Item == "" {
		return nil
	}
	return b.lib.Item(c.Item)
}

func (b *Battle) conditionOf(id string) Effect {
	if b == nil || b.lib == nil || id == "" {
		return nil
	}
	return b.lib.Condition(id)
}

func (b *Battle) abilityBinding(c *Combatant) []boundEffect {
	if effect := b.abilityOf(c); effect != nil {
		return []boundEffect{{effect: effect}}
	}
	return nil
}

func (b *Battle) itemBinding(c *Combatant) []boundEffect {
	if effect := b.itemOf(c); effect != nil {
		return []boundEffect{{effect: effect}}
	}
	return nil
}

// heldBindings are c's ability followed by its held item.
func (b *Battle) heldBindings(c *Combatant) []boundEffect {
	var out []boundEffect
	out = append(out, b.abilityBinding(c)...)
	out = append(out, b.itemBinding(c)...)
	return out
}

// alwaysEscapes reports whether c's ability or item ignores trapping and
// failed flee rolls.
func (b *Battle) alwaysEscapes(c *Combatant) bool {
	for _, bound := range b.heldBindings(c) {
		if escaper, ok := bound.effect.(Escaper); ok && escaper.AlwaysEscapes() {
			return true
		}
	}
	return false
}

func (b *Battle) volatileBindings(c *Combatant) []boundEffect {
	ids := sortedKeys(c.Volatiles)
	out := make([]boundEffect, 0, len(ids))
	for _, id := range ids {
		if effect := b.conditionOf(id); effect != nil {
			out = append(out, boundEffect{effect: effect, volatile: c.Volatiles[id]})
		}
	}
	return out
}

func (b *Battle) sideBindings(side *Side) []boundEffect {
	if side == nil {
		return nil
	}
	ids := sortedKeys(side.Conditions)
	out := make([]boundEffect, 0, len(ids))
	for _, id := range ids {
		if effect := b.conditionOf(id); effect != nil {
			out = append(out, boundEffect{effect: effect, side: side, sideCondition: side.Conditions[id]})
		}
	}
	return out
}

func (b *Battle) fieldBindings() []boundEffect {
	var out []boundEffect
	if b.Field.Weather != "" {
		if effect := b.conditionOf(b.Field.Weather); effect != nil {
			out = append(out, boundEffect{effect: effect, field: &FieldCondition{ID: b.Field.Weather, Duration: b.Field.WeatherDuration}})
		}
	}
	for _, id := range sortedKeys(b.Field.PseudoWeather) {
		if effect := b.conditionOf(id); effect != nil {
			out = append(out, boundEffect{effect: effect, field: b.Field.PseudoWeather[id]})
		}
	}
	return out
}

func (b *Battle) sideOf(c *Combatant) *Side {
	if c == nil || c.participant == nil {
		return nil
	}
	return c.participant.Side
}

// statEffects are consulted for a combatant's effective stats.
func (b *Battle) statEffects(c *Combatant) []boundEffect {
	var out []boundEffect
	out = append(out, b.abilityBinding(c)...)
	out = append(out, b.itemBinding(c)...)
	out = append(out, b.sideBindings(b.sideOf(c))...)
	return out
}

// damageEffects are consulted when user damages target.
func (b *Battle) damageEffects(user, target *Combatant) []boundEffect {
	var out []boundEffect
	out = append(out, b.abilityBinding(user)...)
	out = append(out, b.itemBinding(user)...)
	out = append(out, b.sideBindings(b.sideOf(target))...)
	out = append(out, b.fieldBindings()...)
	return out
}

// defenseEffects are consulted for immunities of target.
func (b *Battle) defenseEffects(target *Combatant) []boundEffect {
	var out []boundEffect
	out = append(out, b.abilityBinding(target)...)
	out = append(out, b.volatileBindings(target)...)
	return out
}

// statusGuards are consulted before a major status is applied to target.
func (b *Battle) statusGuards(target *Combatant) []boundEffect {
	var out []boundEffect
	out = append(out, b.abilityBinding(target)...)
	out = append(out, b.sideBindings(b.sideOf(target))...)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
