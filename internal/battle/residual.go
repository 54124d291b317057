package battle

// residual applies recurring end-of-turn effects in a fixed order: the
// residual event, status damage, volatile ticks, ability and item ticks, then
// side and field durations.
func (b *Battle) residual() {
	b.Events.Dispatch(EventResidual, Event{Battle: b, Turn: b.Turn})

	b.eachActive(func(c *Combatant) {
		if c.Usable() {
			b.statusResidual(c)
		}
	})
	b.eachActive(b.tickVolatiles)
	b.eachActive(func(c *Combatant) {
		if !c.Usable() {
			return
		}
		var holders []boundEffect
		holders = append(holders, b.abilityBinding(c)...)
		holders = append(holders, b.itemBinding(c)...)
		for _, bound := range holders {
			if !c.Usable() {
				return
			}
			if hook, ok := bound.effect.(ResidualHook); ok {
				ctx := bound.context(b, c)
				b.guard(bound.effect.ID(), "residual", func() { hook.OnResidual(ctx) })
			}
		}
	})

	for _, p := range b.Participants {
		b.tickSide(p.Side)
	}
	b.tickField()
}

// tickVolatiles runs residual hooks of c's volatiles and expires the ones
// whose duration ran out.
func (b *Battle) tickVolatiles(c *Combatant) {
	for _, bound := range b.volatileBindings(c) {
		if !c.Usable() {
			return
		}
		if c.Volatiles[bound.volatile.ID] != bound.volatile {
			continue
		}
		if hook, ok := bound.effect.(ResidualHook); ok {
			ctx := bound.context(b, c)
			b.guard(bound.effect.ID(), "residual", func() { hook.OnResidual(ctx) })
		}
	}
	for _, id := range sortedKeys(c.Volatiles) {
		v := c.Volatiles[id]
		if v == nil || v.Duration <= 0 {
			continue
		}
		v.Duration--
		if v.Duration == 0 {
			b.RemoveVolatile(c, id)
		}
	}
}

func (b *Battle) tickSide(side *Side) {
	if side == nil {
		return
	}
	for _, bound := range b.sideBindings(side) {
		if hook, ok := bound.effect.(ResidualHook); ok {
			ctx := bound.context(b, nil)
			b.guard(bound.effect.ID(), "residual", func() { hook.OnResidual(ctx) })
		}
	}
	for _, id := range sortedKeys(side.Conditions) {
		cond := side.Conditions[id]
		if cond == nil || cond.Duration <= 0 {
			continue
		}
		cond.Duration--
		if cond.Duration == 0 {
			b.RemoveSideCondition(side, id)
		}
	}
}

func (b *Battle) tickField() {
	for _, bound := range b.fieldBindings() {
		if hook, ok := bound.effect.(ResidualHook); ok {
			ctx := bound.context(b, nil)
			b.guard(bound.effect.ID(), "residual", func() { hook.OnResidual(ctx) })
		}
	}
	if b.Field.Weather != "" && b.Field.WeatherDuration > 0 {
		b.Field.WeatherDuration--
		if b.Field.WeatherDuration == 0 {
			b.ClearWeather()
		}
	}
	for _, id := range sortedKeys(b.Field.PseudoWeather) {
		cond := b.Field.PseudoWeather[id]
		if cond == nil || cond.Duration <= 0 {
			continue
		}
		cond.Duration--
		if cond.Duration == 0 {
			b.RemovePseudoWeather(id)
		}
	}
}
