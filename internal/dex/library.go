package dex

import (
	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/battle/effects"
)

var _ battle.Library = (*Dex)(nil)

// Move returns a fresh copy of the move for key with its callback attached.
func (d *Dex) Move(key string) (*battle.Move, bool) {
	move, ok := d.moves[battle.NormalizeKey(key)]
	if !ok {
		return nil, false
	}
	clone := move.Clone()
	clone.Effect = effects.Move(clone.Key)
	return clone, true
}

// Ability returns the callback unit for an ability, or nil.
func (d *Dex) Ability(key string) battle.Effect {
	return effects.Ability(key)
}

// Item returns the callback unit for an item, or nil.
func (d *Dex) Item(key string) battle.Effect {
	return effects.Item(key)
}

// Condition returns the callback unit for a volatile, side condition,
// pseudo-weather or weather, or nil.
func (d *Dex) Condition(key string) battle.Effect {
	return effects.Condition(key)
}

// Effectiveness returns the product of the chart multipliers of moveType
// against each defending type. Unknown types are neutral.
func (d *Dex) Effectiveness(moveType battle.Type, defender []battle.Type) float64 {
	multiplier := 1.0
	row := d.chart[moveType]
	for _, t := range defender {
		if value, ok := row[t]; ok {
			multiplier *= value
		}
	}
	return multiplier
}
