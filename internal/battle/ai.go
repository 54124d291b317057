package battle

import "github.com/louisbranch/creaturebattle/internal/battle/rng"

// estimateRand pins the damage roll to its maximum with no critical hit, so
// estimates never draw from the battle's random source.
var estimateRand = rng.Fixed{Int: maxDamageRoll, Float: 1}

// chooseAIActions declares a move for every AI-controlled active slot that
// has no pending action.
func (b *Battle) chooseAIActions() {
	for _, p := range b.Participants {
		if !p.AI || p.Lost {
			continue
		}
		for slot, c := range p.Active {
			if !c.Active() || hasPendingSlot(p, slot) {
				continue
			}
			if a := b.chooseMove(p, slot, c); a != nil {
				p.pending = append(p.pending, a)
			}
		}
	}
}

func hasPendingSlot(p *Participant, slot int) bool {
	for _, a := range p.pending {
		if a.Slot == slot {
			return true
		}
	}
	return false
}

// chooseMove picks the damaging move with the best estimated damage against
// the first foe, breaking ties at random. Without a damaging move it picks
// any move at random.
func (b *Battle) chooseMove(p *Participant, slot int, c *Combatant) *Action {
	foes := b.Foes(c)
	if len(foes) == 0 || len(c.Moves) == 0 {
		return nil
	}
	foe := foes[0]

	var candidates []*Move
	best := 0
	if locked := b.lockedMove(c); locked != nil {
		candidates = []*Move{locked}
	} else {
		for _, move := range c.Moves {
			if !move.Damaging() {
				continue
			}
			estimate := CalculateDamage(c, foe, move, b, estimateRand).Damage
			switch {
			case estimate > best:
				best = estimate
				candidates = []*Move{move}
			case estimate == best && estimate > 0:
				candidates = append(candidates, move)
			}
		}
	}
	if len(candidates) == 0 {
		for _, move := range c.Moves {
			if move != nil && !move.Unknown {
				candidates = append(candidates, move)
			}
		}
	}
	if len(candidates) == 0 {
		// Only placeholders left; using one narrates a hesitation.
		for _, move := range c.Moves {
			if move != nil {
				candidates = append(candidates, move)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	choice := candidates[0]
	if len(candidates) > 1 {
		choice = candidates[rng.Pick(b.rng, len(candidates))]
	}
	b.RecordDecision("turn %d: %s chose %s against %s (estimate %d)", b.Turn, c.ID, choice.Key, foe.ID, best)
	return &Action{
		Kind:       ActionMove,
		Actor:      p,
		Slot:       slot,
		Target:     foe.participant,
		TargetSlot: foe.position,
		Move:       choice.Key,
		combatant:  c,
	}
}
