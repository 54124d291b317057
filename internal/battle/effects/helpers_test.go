package effects_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/battle/rng"
	"github.com/louisbranch/creaturebattle/internal/dex"
)

// steady never crits, rolls max damage, hits anything at 90% accuracy or
// better and skips every secondary chance under 50%.
var steady = rng.Fixed{Int: 50, Float: 0.99}

func library(t *testing.T) *dex.Dex {
	t.Helper()
	d, err := dex.Default()
	if err != nil {
		t.Fatalf("load dex: %v", err)
	}
	return d
}

type mon struct {
	species string
	level   int
	moves   []string
	item    string
	ability string
	hp      int
	status  battle.Status
}

func creature(t *testing.T, s mon) *battle.Combatant {
	t.Helper()
	if s.level == 0 {
		s.level = 50
	}
	if len(s.moves) == 0 {
		s.moves = []string{"tackle"}
	}
	if _, ok := library(t).Species(s.species); !ok {
		t.Fatalf("unknown species %q", s.species)
	}
	c, err := library(t).Build(dex.Record{
		Species: s.species,
		Level:   s.level,
		Moves:   s.moves,
		Item:    s.item,
		Ability: s.ability,
		HP:      s.hp,
		Status:  s.status,
	})
	if err != nil {
		t.Fatalf("build %s: %v", s.species, err)
	}
	return c
}

type arena struct {
	*battle.Battle
	red, blue *battle.Participant
}

type arenaOption func(*battle.Config)

func doubles(cfg *battle.Config) { cfg.ActivePerSide = 2 }

func trainer(cfg *battle.Config) { cfg.Kind = battle.KindTrainer }

func newArena(t *testing.T, src rng.Source, red, blue []*battle.Combatant, opts ...arenaOption) *arena {
	t.Helper()
	p1 := battle.NewParticipant("Red", red, false)
	p2 := battle.NewParticipant("Blue", blue, false)
	cfg := battle.Config{
		ID:           "effects",
		Kind:         battle.KindWild,
		Participants: []*battle.Participant{p1, p2},
		Library:      library(t),
		Rand:         src,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	b, err := battle.New(cfg)
	if err != nil {
		t.Fatalf("new battle: %v", err)
	}
	return &arena{Battle: b, red: p1, blue: p2}
}

func (a *arena) use(t *testing.T, actor *battle.Participant, slot int, move string, target *battle.Participant, targetSlot int) {
	t.Helper()
	err := a.Submit(battle.Action{
		Kind:       battle.ActionMove,
		Actor:      actor,
		Slot:       slot,
		Move:       move,
		Target:     target,
		TargetSlot: targetSlot,
	})
	if err != nil {
		t.Fatalf("submit %s: %v", move, err)
	}
}

func (a *arena) submit(t *testing.T, action battle.Action) {
	t.Helper()
	if err := a.Submit(action); err != nil {
		t.Fatalf("submit %v: %v", action.Kind, err)
	}
}

func (a *arena) turn(t *testing.T) {
	t.Helper()
	if err := a.RunTurn(context.Background()); err != nil {
		t.Fatalf("run turn: %v", err)
	}
}

func (a *arena) said(format string, args ...any) bool {
	want := fmt.Sprintf(format, args...)
	for _, line := range a.Transcript() {
		if line == want {
			return true
		}
	}
	return false
}

func (a *arena) lineIndex(format string, args ...any) int {
	want := fmt.Sprintf(format, args...)
	for i, line := range a.Transcript() {
		if line == want {
			return i
		}
	}
	return -1
}

func move(t *testing.T, key string) *battle.Move {
	t.Helper()
	m, ok := library(t).Move(key)
	if !ok {
		t.Fatalf("unknown move %q", key)
	}
	return m
}
