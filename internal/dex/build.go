package dex

import (
	"fmt"

	"github.com/louisbranch/creaturebattle/internal/battle"
	apperrors "github.com/louisbranch/creaturebattle/internal/platform/errors"
)

const (
	minLevel = 1
	maxLevel = 100
	maxIV    = 31
	maxEV    = 255
	maxMoves = 4

	// fallbackBaseStat is every base stat of a species the dex does not know.
	fallbackBaseStat = 50
)

// Record is a persistent creature as the outside world stores it. Build turns
// it into a fresh battle combatant; Outcome reads the result back.
type Record struct {
	ID       string
	Nickname string
	Species  string
	Level    int
	Moves    []string
	// Ability defaults to the species' first ability.
	Ability string
	Item    string
	IVs     battle.Stats
	EVs     battle.Stats
	// HP is the current hit points. Zero or negative means full health.
	HP     int
	Status battle.Status
}

// Result is the state a combatant ended the battle in.
type Result struct {
	ID        string
	Species   string
	Level     int
	HP        int
	MaxHP     int
	Status    battle.Status
	Fainted   bool
	Opponents []string
}

// CalcStats returns the stat line for base stats at level with the given
// individual and effort values.
func CalcStats(base battle.Stats, level int, ivs, evs battle.Stats) battle.Stats {
	calc := func(b, iv, ev int) int {
		return (2*b + iv + ev/4) * level / 100
	}
	return battle.Stats{
		HP:        calc(base.HP, ivs.HP, evs.HP) + level + 10,
		Attack:    calc(base.Attack, ivs.Attack, evs.Attack) + 5,
		Defense:   calc(base.Defense, ivs.Defense, evs.Defense) + 5,
		SpAttack:  calc(base.SpAttack, ivs.SpAttack, evs.SpAttack) + 5,
		SpDefense: calc(base.SpDefense, ivs.SpDefense, evs.SpDefense) + 5,
		Speed:     calc(base.Speed, ivs.Speed, evs.Speed) + 5,
	}
}

// fallbackSpecies stands in for a species key the dex does not know: neutral
// base stats, no types and no abilities.
func fallbackSpecies(key string) *Species {
	key = battle.NormalizeKey(key)
	base := battle.Stats{
		HP:        fallbackBaseStat,
		Attack:    fallbackBaseStat,
		Defense:   fallbackBaseStat,
		SpAttack:  fallbackBaseStat,
		SpDefense: fallbackBaseStat,
		Speed:     fallbackBaseStat,
	}
	return &Species{Key: key, Name: key, BaseStats: base}
}

// unknownMove is the placeholder kept in a moveset for a key the dex does
// not know. Using it narrates a hesitation instead of failing the battle.
func unknownMove(key string) *battle.Move {
	return &battle.Move{
		Key:      battle.NormalizeKey(key),
		Name:     key,
		Category: battle.CategoryStatus,
		Unknown:  true,
	}
}

// Build creates a battle combatant from rec. Moves are copied so the battle
// never touches the dex tables. Unknown species and moves degrade to
// placeholders; only a malformed record is an error.
func (d *Dex) Build(rec Record) (*battle.Combatant, error) {
	invalid := func(reason string) error {
		return apperrors.WithMetadata(apperrors.CodeDexInvalidRecord, reason, map[string]string{"ID": rec.ID})
	}
	if battle.NormalizeKey(rec.Species) == "" {
		return nil, invalid("species is required")
	}
	sp, ok := d.Species(rec.Species)
	if !ok {
		sp = fallbackSpecies(rec.Species)
	}
	if rec.Level < minLevel || rec.Level > maxLevel {
		return nil, invalid(fmt.Sprintf("level %d out of range", rec.Level))
	}
	if len(rec.Moves) == 0 || len(rec.Moves) > maxMoves {
		return nil, invalid(fmt.Sprintf("record needs 1 to %d moves", maxMoves))
	}
	for _, stat := range []battle.Stat{battle.StatHP, battle.StatAttack, battle.StatDefense, battle.StatSpAttack, battle.StatSpDefense, battle.StatSpeed} {
		if iv := rec.IVs.Get(stat); iv < 0 || iv > maxIV {
			return nil, invalid(fmt.Sprintf("iv %s out of range", stat))
		}
		if ev := rec.EVs.Get(stat); ev < 0 || ev > maxEV {
			return nil, invalid(fmt.Sprintf("ev %s out of range", stat))
		}
	}

	name := rec.Nickname
	if name == "" {
		name = sp.Name
	}
	c := battle.NewCombatant(rec.ID, name, rec.Level, CalcStats(sp.BaseStats, rec.Level, rec.IVs, rec.EVs), sp.Types)
	c.Species = sp.Key
	c.CatchRate = sp.CatchRate
	c.Item = battle.NormalizeKey(rec.Item)
	c.Ability = battle.NormalizeKey(rec.Ability)
	if c.Ability == "" && len(sp.Abilities) > 0 {
		c.Ability = sp.Abilities[0]
	}

	for _, key := range rec.Moves {
		move, ok := d.Move(key)
		if !ok {
			move = unknownMove(key)
		}
		c.Moves = append(c.Moves, move)
	}

	if rec.HP > 0 {
		c.HP = min(rec.HP, c.MaxHP)
	}
	if rec.Status != battle.StatusNone {
		c.Status = rec.Status
		switch rec.Status {
		case battle.StatusToxic:
			c.StatusState.ToxicCounter = 1
		case battle.StatusSleep:
			c.StatusState.SleepTurns = 2
		}
	}
	return c, nil
}

// Outcome reads back the state of c after a battle. A combatant still
// carrying a copied form reports its own species.
func Outcome(c *battle.Combatant) Result {
	species := c.Species
	if c.Borrowed != nil {
		species = c.Borrowed.Species
	}
	return Result{
		ID:        c.ID,
		Species:   species,
		Level:     c.Level,
		HP:        c.HP,
		MaxHP:     c.MaxHP,
		Status:    c.Status,
		Fainted:   c.Fainted || c.HP == 0,
		Opponents: append([]string(nil), c.Opponents...),
	}
}
