package battle

import (
	"math"
	"sort"
)

// Slot identifies an active position: a participant and one of its active
// slots. Slots order by participant index, then position.
type Slot struct {
	Participant int
	Position    int
}

// Less reports whether s comes before other in canonical slot order.
func (s Slot) Less(other Slot) bool {
	if s.Participant != other.Participant {
		return s.Participant < other.Participant
	}
	return s.Position < other.Position
}

// OrderEntry is one declared action as seen by the turn-order resolver.
type OrderEntry struct {
	Slot     Slot
	Priority int
	Speed    int
	Action   *Action
}

// OrderOptions adjusts ordering rules for the current field.
type OrderOptions struct {
	// TrickRoom makes slower actors move first within a priority tier.
	TrickRoom bool
}

// ResolveOrder returns entries in execution order.
//
// Higher priority goes first. Within a priority tier, higher effective speed
// goes first (lower under trick room). Entries that tie on both keep their
// relative input order, so callers that pass entries in canonical slot order
// get ties broken by participant index and then active slot. The input slice
// is not modified.
func ResolveOrder(entries []OrderEntry, opts OrderOptions) []OrderEntry {
	out := make([]OrderEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		if out[i].Speed != out[j].Speed {
			if opts.TrickRoom {
				return out[i].Speed < out[j].Speed
			}
			return out[i].Speed > out[j].Speed
		}
		return false
	})
	return out
}

// SortSlots sorts entries into canonical slot order in place.
func SortSlots(entries []OrderEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Slot.Less(entries[j].Slot)
	})
}

// EffectiveSpeed returns speed with stage boosts and paralysis applied,
// without consulting any effect hooks.
func EffectiveSpeed(c *Combatant) int {
	if c == nil {
		return 0
	}
	speed := int(math.Floor(float64(c.Stats.Speed) * StageMultiplier(c.Stage(StatSpeed))))
	if c.Status == StatusParalysis {
		speed /= 2
	}
	return speed
}

// EffectiveSpeed returns c's speed with stage boosts, stat hooks (items,
// abilities, side conditions) and paralysis applied.
func (b *Battle) EffectiveSpeed(c *Combatant) int {
	if c == nil {
		return 0
	}
	speed := b.statAtStage(c, StatSpeed, c.Stage(StatSpeed))
	if c.Status == StatusParalysis {
		speed /= 2
	}
	return speed
}

// EffectiveStat returns c's stat with its current stage and stat hooks applied.
func (b *Battle) EffectiveStat(c *Combatant, stat Stat) int {
	if stat == StatSpeed {
		return b.EffectiveSpeed(c)
	}
	return b.statAtStage(c, stat, c.Stage(stat))
}
