package battle

// Combatant is the in-battle copy of a creature.
//
// Combatants are built fresh for every battle and discarded afterwards. The
// engine keeps 0 <= HP <= MaxHP and every stage boost within
// [MinStage, MaxStage] at all times.
type Combatant struct {
	ID      string
	Name    string
	Species string
	Level   int

	HP    int
	MaxHP int

	Stats   Stats
	Boosts  Boosts
	Types   []Type
	Ability string
	Item    string
	Moves   []*Move

	Status      Status
	StatusState StatusState
	Volatiles   map[string]*Volatile

	// Transient is reset when a turn starts and cleared when it ends.
	Transient Transient
	// Borrowed holds state copied from another combatant that must be put back
	// once the battle no longer needs it.
	Borrowed *Backup

	Fainted bool
	// CatchRate is the species capture rate in [1, 255]. Zero is treated as 255.
	CatchRate int

	// Opponents lists the ids of foes this combatant has faced while active.
	Opponents []string

	participant *Participant
	position    int
}

// StatusState carries the counters that belong to the major status.
type StatusState struct {
	ToxicCounter int
	SleepTurns   int
}

// Volatile is a battle-scoped condition attached to one combatant.
type Volatile struct {
	ID string
	// Duration counts remaining turns. Zero means the volatile lasts until
	// something removes it; DurationTurn means it ends with the current turn.
	Duration int
	Counter  int
	Source   *Combatant
	Move     string
}

// DurationTurn marks a volatile that is removed when the turn ends.
const DurationTurn = -1

// Transient is per-turn scratch state.
type Transient struct {
	Moved        bool
	TookDamage   bool
	DamageTaken  int
	LastMove     string
	LastTarget   *Combatant
	SwitchedIn   bool
	ItemConsumed bool
}

// Backup stores the original values replaced by a copy effect.
type Backup struct {
	Species string
	Stats   Stats
	Types   []Type
	Ability string
	Moves   []*Move
	Boosts  Boosts
}

// NewCombatant returns a combatant with full hit points and an empty volatile set.
func NewCombatant(id, name string, level int, stats Stats, types []Type) *Combatant {
	if level <= 0 {
		level = 1
	}
	if stats.HP < 1 {
		stats.HP = 1
	}
	return &Combatant{
		ID:        id,
		Name:      name,
		Species:   name,
		Level:     level,
		HP:        stats.HP,
		MaxHP:     stats.HP,
		Stats:     stats,
		Types:     append([]Type(nil), types...),
		Volatiles: map[string]*Volatile{},
		position:  -1,
	}
}

// Participant returns the owning participant.
func (c *Combatant) Participant() *Participant {
	return c.participant
}

// Position returns the active slot index, or -1 when not in play.
func (c *Combatant) Position() int {
	return c.position
}

// Active reports whether the combatant is currently in play.
func (c *Combatant) Active() bool {
	return c != nil && c.position >= 0 && !c.Fainted
}

// Usable reports whether the combatant can still battle.
func (c *Combatant) Usable() bool {
	return c != nil && !c.Fainted && c.HP > 0
}

// HasType reports whether the combatant currently has type t.
func (c *Combatant) HasType(t Type) bool {
	return HasType(c.Types, t)
}

// HasVolatile reports whether the volatile id is attached.
func (c *Combatant) HasVolatile(id string) bool {
	_, ok := c.Volatiles[id]
	return ok
}

// Volatile returns the volatile with id, or nil.
func (c *Combatant) Volatile(id string) *Volatile {
	return c.Volatiles[id]
}

// Stage returns the current stage boost for stat.
func (c *Combatant) Stage(stat Stat) int {
	return c.Boosts.Get(stat)
}

// FindMove returns the moveset entry with the given key.
func (c *Combatant) FindMove(key string) *Move {
	key = NormalizeKey(key)
	for _, move := range c.Moves {
		if move != nil && NormalizeKey(move.Key) == key {
			return move
		}
	}
	return nil
}

// setHP writes hit points clamped to [0, MaxHP].
func (c *Combatant) setHP(hp int) {
	switch {
	case hp < 0:
		hp = 0
	case hp > c.MaxHP:
		hp = c.MaxHP
	}
	c.HP = hp
}

// setStage writes a stage boost clamped to [MinStage, MaxStage].
func (c *Combatant) setStage(stat Stat, stage int) {
	if stat <= StatHP || stat >= statCount {
		return
	}
	c.Boosts[stat] = clampInt(stage, MinStage, MaxStage)
}

func (c *Combatant) resetTransient() {
	c.Transient = Transient{}
}

func (c *Combatant) noteOpponent(foe *Combatant) {
	if foe == nil {
		return
	}
	for _, id := range c.Opponents {
		if id == foe.ID {
			return
		}
	}
	c.Opponents = append(c.Opponents, foe.ID)
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// fraction returns max(1, whole*num/den).
func fraction(whole, num, den int) int {
	if den <= 0 {
		return 0
	}
	value := whole * num / den
	if value < 1 {
		return 1
	}
	return value
}
