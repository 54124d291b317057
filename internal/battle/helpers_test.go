package battle

import (
	"context"
	"testing"

	"github.com/louisbranch/creaturebattle/internal/battle/rng"
)

type testLibrary struct {
	moves      map[string]*Move
	abilities  map[string]Effect
	items      map[string]Effect
	conditions map[string]Effect
	chart      map[Type]map[Type]float64
}

func newTestLibrary() *testLibrary {
	return &testLibrary{
		moves: map[string]*Move{
			"tackle":      tackleMove(),
			"growl":       {Key: "growl", Name: "Growl", Type: "Normal", Category: CategoryStatus, Accuracy: 100, Target: TargetAllAdjacentFoes, Boosts: map[Stat]int{StatAttack: -1}},
			"swordsdance": {Key: "swordsdance", Name: "Swords Dance", Type: "Normal", Category: CategoryStatus, Target: TargetSelf, SelfBoosts: map[Stat]int{StatAttack: 2}},
			"surf":        {Key: "surf", Name: "Surf", Type: "Water", Category: CategorySpecial, Power: 40, Accuracy: 100, Target: TargetAllAdjacentFoes},
			"quickattack": {Key: "quickattack", Name: "Quick Attack", Type: "Normal", Category: CategoryPhysical, Power: 40, Accuracy: 100, Priority: 1, Target: TargetNormal},
		},
		abilities:  map[string]Effect{},
		items:      map[string]Effect{},
		conditions: map[string]Effect{},
		chart: map[Type]map[Type]float64{
			"Normal": {"Ghost": 0, "Rock": 0.5},
			"Water":  {"Fire": 2, "Water": 0.5},
		},
	}
}

func (l *testLibrary) Move(key string) (*Move, bool) {
	move, ok := l.moves[NormalizeKey(key)]
	return move, ok
}

func (l *testLibrary) Ability(key string) Effect   { return l.abilities[NormalizeKey(key)] }
func (l *testLibrary) Item(key string) Effect      { return l.items[NormalizeKey(key)] }
func (l *testLibrary) Condition(key string) Effect { return l.conditions[NormalizeKey(key)] }

func (l *testLibrary) Effectiveness(moveType Type, defender []Type) float64 {
	multiplier := 1.0
	row := l.chart[moveType]
	for _, t := range defender {
		if value, ok := row[t]; ok {
			multiplier *= value
		}
	}
	return multiplier
}

func tackleMove() *Move {
	return &Move{
		Key:      "tackle",
		Name:     "Tackle",
		Type:     "Normal",
		Category: CategoryPhysical,
		Power:    40,
		Accuracy: 100,
		Target:   TargetNormal,
		Flags:    MoveFlags{Contact: true, Protect: true},
	}
}

func baseStats() Stats {
	return Stats{HP: 100, Attack: 50, Defense: 50, SpAttack: 50, SpDefense: 50, Speed: 50}
}

func newTestCombatant(name string, types ...Type) *Combatant {
	if len(types) == 0 {
		types = []Type{"Normal"}
	}
	c := NewCombatant("", name, 50, baseStats(), types)
	c.Moves = []*Move{tackleMove()}
	return c
}

type testBattle struct {
	*Battle
	p1, p2 *Participant
	lib    *testLibrary
}

type battleOption func(*Config)

func withKind(kind Kind) battleOption {
	return func(cfg *Config) { cfg.Kind = kind }
}

func withActive(n int) battleOption {
	return func(cfg *Config) { cfg.ActivePerSide = n }
}

func withDecisions(logger DecisionLogger) battleOption {
	return func(cfg *Config) { cfg.Decisions = logger }
}

func newTestBattle(t *testing.T, src rng.Source, first, second []*Combatant, opts ...battleOption) *testBattle {
	t.Helper()
	lib := newTestLibrary()
	p1 := NewParticipant("Red", first, false)
	p2 := NewParticipant("Blue", second, false)
	cfg := Config{
		ID:           "test",
		Kind:         KindWild,
		Participants: []*Participant{p1, p2},
		Library:      lib,
		Rand:         src,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	b, err := New(cfg)
	if err != nil {
		t.Fatalf("new battle: %v", err)
	}
	return &testBattle{Battle: b, p1: p1, p2: p2, lib: lib}
}

func (tb *testBattle) submit(t *testing.T, a Action) {
	t.Helper()
	if err := tb.Submit(a); err != nil {
		t.Fatalf("submit %v: %v", a.Kind, err)
	}
}

func (tb *testBattle) turn(t *testing.T) {
	t.Helper()
	if err := tb.RunTurn(context.Background()); err != nil {
		t.Fatalf("run turn: %v", err)
	}
}

type decisionLog struct {
	lines []string
}

func (d *decisionLog) Record(line string) {
	d.lines = append(d.lines, line)
}

func containsLine(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}
