package battle

import "strings"

// Stat identifies a combatant statistic or a stage-only stat.
type Stat int

const (
	StatHP Stat = iota
	StatAttack
	StatDefense
	StatSpAttack
	StatSpDefense
	StatSpeed
	StatAccuracy
	StatEvasion
	statCount
)

// MinStage and MaxStage bound every stat stage boost.
const (
	MinStage = -6
	MaxStage = 6
)

var statNames = [statCount]string{"hp", "atk", "def", "spa", "spd", "spe", "accuracy", "evasion"}

// String returns the short stat key.
func (s Stat) String() string {
	if s < 0 || s >= statCount {
		return "unknown"
	}
	return statNames[s]
}

var statLabels = [statCount]string{"HP", "Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed", "accuracy", "evasiveness"}

// Label returns the stat name used in narration.
func (s Stat) Label() string {
	if s < 0 || s >= statCount {
		return "stat"
	}
	return statLabels[s]
}

// ParseStat parses a short or long stat key.
func ParseStat(value string) (Stat, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "hp":
		return StatHP, true
	case "atk", "attack":
		return StatAttack, true
	case "def", "defense":
		return StatDefense, true
	case "spa", "special_attack", "spatk":
		return StatSpAttack, true
	case "spd", "special_defense", "spdef":
		return StatSpDefense, true
	case "spe", "speed":
		return StatSpeed, true
	case "accuracy", "acc":
		return StatAccuracy, true
	case "evasion", "eva":
		return StatEvasion, true
	default:
		return 0, false
	}
}

// BoostableStats lists the stats that carry stage boosts, in display order.
var BoostableStats = []Stat{StatAttack, StatDefense, StatSpAttack, StatSpDefense, StatSpeed, StatAccuracy, StatEvasion}

// Stats is a full six-stat line.
type Stats struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

// Get returns the value for stat. Stage-only stats return zero.
func (s Stats) Get(stat Stat) int {
	switch stat {
	case StatHP:
		return s.HP
	case StatAttack:
		return s.Attack
	case StatDefense:
		return s.Defense
	case StatSpAttack:
		return s.SpAttack
	case StatSpDefense:
		return s.SpDefense
	case StatSpeed:
		return s.Speed
	default:
		return 0
	}
}

// Boosts holds stat stage boosts indexed by Stat.
type Boosts [statCount]int

// Get returns the stage for stat.
func (b Boosts) Get(stat Stat) int {
	if stat < 0 || stat >= statCount {
		return 0
	}
	return b[stat]
}

// Type is an elemental type such as "Normal" or "Fire".
type Type string

// NormalizeType returns the canonical capitalization of a type name.
func NormalizeType(value string) Type {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return Type(strings.ToUpper(value[:1]) + strings.ToLower(value[1:]))
}

// HasType reports whether types contains t.
func HasType(types []Type, t Type) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

// Category is the damage class of a move.
type Category int

const (
	CategoryPhysical Category = iota
	CategorySpecial
	CategoryStatus
)

// String returns the category label.
func (c Category) String() string {
	switch c {
	case CategoryPhysical:
		return "physical"
	case CategorySpecial:
		return "special"
	case CategoryStatus:
		return "status"
	default:
		return "unknown"
	}
}

// ParseCategory parses a category label.
func ParseCategory(value string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "physical":
		return CategoryPhysical, true
	case "special":
		return CategorySpecial, true
	case "status":
		return CategoryStatus, true
	default:
		return 0, false
	}
}

// Status is a major status. At most one applies to a combatant.
type Status string

const (
	StatusNone      Status = ""
	StatusBurn      Status = "brn"
	StatusPoison    Status = "psn"
	StatusToxic     Status = "tox"
	StatusParalysis Status = "par"
	StatusFreeze    Status = "frz"
	StatusSleep     Status = "slp"
)

// ParseStatus parses a status key. The empty string and "none" parse to StatusNone.
func ParseStatus(value string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return StatusNone, true
	case "brn", "burn":
		return StatusBurn, true
	case "psn", "poison":
		return StatusPoison, true
	case "tox", "toxic":
		return StatusToxic, true
	case "par", "paralysis":
		return StatusParalysis, true
	case "frz", "freeze":
		return StatusFreeze, true
	case "slp", "sleep":
		return StatusSleep, true
	default:
		return StatusNone, false
	}
}

// Target is the target shape of a move.
type Target string

const (
	TargetNormal           Target = "normal"
	TargetAny              Target = "any"
	TargetSelf             Target = "self"
	TargetAdjacentAlly     Target = "adjacentAlly"
	TargetAllAdjacentFoes  Target = "allAdjacentFoes"
	TargetAllAdjacent      Target = "allAdjacent"
	TargetAllySide         Target = "allySide"
	TargetFoeSide          Target = "foeSide"
	TargetAll              Target = "all"
	TargetRandomNormal     Target = "randomNormal"
	TargetAdjacentAllyOrMe Target = "adjacentAllyOrSelf"
)

// Spread reports whether the target shape can strike more than one combatant.
func (t Target) Spread() bool {
	return t == TargetAllAdjacentFoes || t == TargetAllAdjacent
}

// MoveFlags are boolean properties of a move.
type MoveFlags struct {
	Contact bool
	Protect bool
	Sound   bool
}

// Secondary is a chance-based extra effect of a damaging move.
type Secondary struct {
	Chance     int
	Status     Status
	Volatile   string
	Boosts     map[Stat]int
	SelfBoosts map[Stat]int
}

// Move is a move definition or a move instance attached to a moveset.
type Move struct {
	Key        string
	Name       string
	Type       Type
	Category   Category
	Power      int
	Accuracy   int
	AlwaysHits bool
	Priority   int
	Target     Target
	CritRatio  int
	Flags      MoveFlags

	// Effects applied on a successful hit.
	Boosts        map[Stat]int
	SelfBoosts    map[Stat]int
	Status        Status
	Volatile      string
	SelfVolatile  string
	SideCondition string
	PseudoWeather string
	Weather       string
	Secondary     *Secondary
	Drain         float64
	Recoil        float64
	Heal          float64

	// Effect carries the move's hook overrides. Nil means default resolution.
	Effect Effect

	// Unknown marks a moveset placeholder for a key no library defines.
	Unknown bool
}

// Clone returns a copy of m that shares its read-only effect and maps.
func (m *Move) Clone() *Move {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

// DisplayName returns the move name, falling back to its key.
func (m *Move) DisplayName() string {
	if m == nil {
		return ""
	}
	if m.Name != "" {
		return m.Name
	}
	return m.Key
}

// Damaging reports whether the move deals direct damage.
func (m *Move) Damaging() bool {
	return m != nil && m.Category != CategoryStatus
}

// NormalizeKey lowercases a display name and strips separators so that
// "Echoed Voice", "echoed-voice" and "echoedvoice" share a key.
func NormalizeKey(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
