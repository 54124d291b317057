package battle

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/creaturebattle/internal/battle/rng"
)

func TestNewValidatesConfig(t *testing.T) {
	lib := newTestLibrary()
	src := rng.New(1)
	player := func() *Participant {
		return NewParticipant("Red", []*Combatant{newTestCombatant("Alpha")}, false)
	}

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{
			name: "no participants",
			cfg:  Config{Library: lib, Rand: src},
			want: ErrNoParticipants,
		},
		{
			name: "single participant",
			cfg:  Config{Participants: []*Participant{player()}, Library: lib, Rand: src},
			want: ErrTooFewParticipants,
		},
		{
			name: "missing library",
			cfg:  Config{Participants: []*Participant{player(), player()}, Rand: src},
			want: ErrNoLibrary,
		},
		{
			name: "missing rand",
			cfg:  Config{Participants: []*Participant{player(), player()}, Library: lib},
			want: ErrNoRandSource,
		},
		{
			name: "too many active slots",
			cfg:  Config{Participants: []*Participant{player(), player()}, Library: lib, Rand: src, ActivePerSide: 4},
			want: ErrInvalidActiveCount,
		},
		{
			name: "empty roster",
			cfg:  Config{Participants: []*Participant{player(), NewParticipant("Blue", nil, false)}, Library: lib, Rand: src},
			want: ErrEmptyRoster,
		},
		{
			name: "fainted roster",
			cfg: Config{Participants: []*Participant{player(), NewParticipant("Blue", []*Combatant{{Name: "Ghost", MaxHP: 10}}, false)},
				Library: lib, Rand: src},
			want: ErrEmptyRoster,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewPlacesLeads(t *testing.T) {
	tb := newTestBattle(t, rng.New(1),
		[]*Combatant{newTestCombatant("Alpha"), newTestCombatant("Beta"), newTestCombatant("Gamma")},
		[]*Combatant{newTestCombatant("Delta"), newTestCombatant("Epsilon")},
		withActive(2),
	)
	if got := tb.p1.At(0).Name; got != "Alpha" {
		t.Fatalf("p1 slot 0 = %q, want Alpha", got)
	}
	if got := tb.p1.At(1).Name; got != "Beta" {
		t.Fatalf("p1 slot 1 = %q, want Beta", got)
	}
	if got := len(tb.p1.Bench()); got != 1 {
		t.Fatalf("p1 bench = %d, want 1", got)
	}
	if got := tb.p1.Roster[2].ID; got != "p1-3" {
		t.Fatalf("generated id = %q, want p1-3", got)
	}
	if tb.Phase() != PhaseIdle {
		t.Fatalf("phase = %q, want idle", tb.Phase())
	}
}

func TestRunTurnEndToEnd(t *testing.T) {
	run := func() (int, []EventName) {
		tb := newTestBattle(t, rng.New(42),
			[]*Combatant{newTestCombatant("Alpha")},
			[]*Combatant{newTestCombatant("Beta")},
		)
		var events []EventName
		for _, name := range []EventName{EventSwitchIn, EventBeforeMove, EventAfterMove, EventEndTurn} {
			tb.Events.Register(name, func(e Event) {
				events = append(events, e.Name)
			})
		}
		tb.submit(t, Action{Kind: ActionMove, Actor: tb.p1, Target: tb.p2, Move: "tackle"})
		tb.turn(t)
		return tb.p2.Roster[0].HP, events
	}

	hp, events := run()
	want := []EventName{EventSwitchIn, EventSwitchIn, EventBeforeMove, EventAfterMove, EventEndTurn}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	damage := 100 - hp
	if damage < 24 || damage > 42 {
		t.Fatalf("damage = %d, want within [24, 42]", damage)
	}
	again, _ := run()
	if again != hp {
		t.Fatalf("replayed hp = %d, want %d", again, hp)
	}
}

func TestRunTurnNarrates(t *testing.T) {
	tb := newTestBattle(t, rng.New(7),
		[]*Combatant{newTestCombatant("Alpha")},
		[]*Combatant{newTestCombatant("Beta")},
	)
	var sunk []string
	tb.sink = MessageFunc(func(battleID, text string) {
		if battleID != "test" {
			t.Fatalf("battle id = %q, want test", battleID)
		}
		sunk = append(sunk, text)
	})
	tb.submit(t, Action{Kind: ActionMove, Actor: tb.p1, Target: tb.p2, Move: "tackle"})
	tb.turn(t)

	lines := tb.Transcript()
	for _, want := range []string{"Turn 1.", "Red sent out Alpha!", "Blue sent out Beta!", "Alpha used Tackle!"} {
		if !containsLine(lines, want) {
			t.Fatalf("transcript %q missing %q", lines, want)
		}
	}
	if !reflect.DeepEqual(sunk, lines) {
		t.Fatalf("sink = %q, want %q", sunk, lines)
	}
}

func TestInvariantsHoldAtEveryEvent(t *testing.T) {
	first := newTestCombatant("Alpha")
	first.Moves = append(first.Moves, &Move{Key: "swordsdance", Name: "Swords Dance", Category: CategoryStatus, Target: TargetSelf, SelfBoosts: map[Stat]int{StatAttack: 2}})
	first.MaxHP, first.HP = 400, 400
	second := newTestCombatant("Beta")
	tb := newTestBattle(t, rng.New(3), []*Combatant{first}, []*Combatant{second})
	tb.p2.AI = true

	check := func(e Event) {
		for _, p := range tb.Participants {
			for _, c := range p.Roster {
				if c.HP < 0 || c.HP > c.MaxHP {
					t.Fatalf("%s: %s hp = %d, want within [0, %d]", e.Name, c.Name, c.HP, c.MaxHP)
				}
				for _, stat := range BoostableStats {
					if stage := c.Stage(stat); stage < MinStage || stage > MaxStage {
						t.Fatalf("%s: %s %s stage = %d", e.Name, c.Name, stat, stage)
					}
				}
			}
		}
	}
	for _, name := range []EventName{EventStartTurn, EventSwitchIn, EventBeforeMove, EventAfterMove, EventDamage, EventFaint, EventResidual, EventEndTurn, EventBattleEnd} {
		tb.Events.Register(name, check)
	}

	for i := 0; i < 5 && !tb.Concluded(); i++ {
		tb.submit(t, Action{Kind: ActionMove, Actor: tb.p1, Move: "swordsdance"})
		tb.turn(t)
	}
	if got := first.Stage(StatAttack); got != MaxStage {
		t.Fatalf("attack stage = %d, want %d", got, MaxStage)
	}
	if !containsLine(tb.Transcript(), "Alpha's Attack won't go any higher!") {
		t.Fatalf("transcript missing stat cap narration")
	}
}

func TestRunConcludesWithWinner(t *testing.T) {
	tb := newTestBattle(t, rng.New(11),
		[]*Combatant{newTestCombatant("Alpha")},
		[]*Combatant{newTestCombatant("Beta")},
	)
	tb.p1.AI = true
	tb.p2.AI = true
	ended := 0
	tb.Events.Register(EventBattleEnd, func(Event) { ended++ })

	if err := tb.Run(context.Background(), 50); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !tb.Concluded() {
		t.Fatal("battle did not conclude")
	}
	if tb.Outcome() != OutcomeWin {
		t.Fatalf("outcome = %q, want win", tb.Outcome())
	}
	winner := tb.Winner()
	if winner == nil {
		t.Fatal("winner = nil")
	}
	loser := tb.Opponent(winner)
	if loser != nil {
		t.Fatalf("opponent of winner = %v, want nil once the loser has lost", loser.Name)
	}
	if ended != 1 {
		t.Fatalf("battle_end dispatched %d times, want 1", ended)
	}
	if tb.Phase() != PhaseConcluded {
		t.Fatalf("phase = %q, want concluded", tb.Phase())
	}
	if err := tb.RunTurn(context.Background()); !errors.Is(err, ErrBattleConcluded) {
		t.Fatalf("RunTurn after conclusion = %v, want ErrBattleConcluded", err)
	}
	if err := tb.Submit(Action{Kind: ActionMove, Actor: winner, Move: "tackle"}); !errors.Is(err, ErrBattleConcluded) {
		t.Fatalf("Submit after conclusion = %v, want ErrBattleConcluded", err)
	}
}

func TestSubmitRejectsUnknownParticipant(t *testing.T) {
	tb := newTestBattle(t, rng.New(1),
		[]*Combatant{newTestCombatant("Alpha")},
		[]*Combatant{newTestCombatant("Beta")},
	)
	stranger := NewParticipant("Green", []*Combatant{newTestCombatant("Gamma")}, false)
	if err := tb.Submit(Action{Kind: ActionMove, Actor: stranger, Move: "tackle"}); !errors.Is(err, ErrUnknownParticipant) {
		t.Fatalf("Submit = %v, want ErrUnknownParticipant", err)
	}
}

func TestSubmitReplacesSlotAction(t *testing.T) {
	tb := newTestBattle(t, rng.New(1),
		[]*Combatant{newTestCombatant("Alpha")},
		[]*Combatant{newTestCombatant("Beta")},
	)
	tb.submit(t, Action{Kind: ActionMove, Actor: tb.p1, Move: "tackle"})
	tb.submit(t, Action{Kind: ActionMove, Actor: tb.p1, Move: "growl"})
	pending := tb.p1.Pending()
	if len(pending) != 1 || pending[0].Move != "growl" {
		t.Fatalf("pending = %+v, want single growl action", pending)
	}
}

func TestRunTurnHonorsCanceledContext(t *testing.T) {
	tb := newTestBattle(t, rng.New(1),
		[]*Combatant{newTestCombatant("Alpha")},
		[]*Combatant{newTestCombatant("Beta")},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tb.RunTurn(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("RunTurn = %v, want context.Canceled", err)
	}
	if tb.Turn != 0 {
		t.Fatalf("turn = %d, want 0", tb.Turn)
	}
}

func TestUnknownMoveIsNarratedFailure(t *testing.T) {
	tb := newTestBattle(t, rng.New(1),
		[]*Combatant{newTestCombatant("Alpha")},
		[]*Combatant{newTestCombatant("Beta")},
	)
	tb.submit(t, Action{Kind: ActionMove, Actor: tb.p1, Target: tb.p2, Move: "does-not-exist"})
	tb.turn(t)
	if !containsLine(tb.Transcript(), "Alpha hesitated and did nothing.") {
		t.Fatalf("transcript %q missing hesitation", tb.Transcript())
	}
	if hp := tb.p2.Roster[0].HP; hp != 100 {
		t.Fatalf("target hp = %d, want 100", hp)
	}
}

func TestFaintedCombatantIsReplaced(t *testing.T) {
	lead := newTestCombatant("Alpha")
	lead.HP = 1
	tb := newTestBattle(t, rng.New(5),
		[]*Combatant{lead, newTestCombatant("Beta")},
		[]*Combatant{newTestCombatant("Gamma")},
	)
	tb.submit(t, Action{Kind: ActionMove, Actor: tb.p2, Target: tb.p1, Move: "tackle"})
	tb.turn(t)
	if !lead.Fainted {
		t.Fatal("lead did not faint")
	}
	if tb.p1.Lost || tb.Concluded() {
		t.Fatal("participant with a usable bench lost")
	}
	tb.turn(t)
	if got := tb.p1.At(0); got == nil || got.Name != "Beta" {
		t.Fatalf("replacement = %v, want Beta", got)
	}
}

func TestDecisionLoggerRecordsMoves(t *testing.T) {
	decisions := &decisionLog{}
	tb := newTestBattle(t, rng.New(1),
		[]*Combatant{newTestCombatant("Alpha")},
		[]*Combatant{newTestCombatant("Beta")},
		withDecisions(decisions),
	)
	tb.p2.AI = true
	tb.submit(t, Action{Kind: ActionMove, Actor: tb.p1, Target: tb.p2, Move: "tackle"})
	tb.turn(t)
	if !containsLine(decisions.lines, "turn 1: p1-1 used tackle") {
		t.Fatalf("decisions = %q, want p1 move usage", decisions.lines)
	}
	if !containsLine(decisions.lines, "turn 1: p2-1 used tackle") {
		t.Fatalf("decisions = %q, want AI move usage", decisions.lines)
	}
}

func TestAIKeepsActingAfterKnockout(t *testing.T) {
	decisions := &decisionLog{}
	lead := newTestCombatant("Alpha")
	lead.HP = 1
	foe := newTestCombatant("Gamma")
	tb := newTestBattle(t, rng.New(5),
		[]*Combatant{lead, newTestCombatant("Beta")},
		[]*Combatant{foe},
		withDecisions(decisions),
	)
	tb.p1.AI = true
	tb.p2.AI = true

	tb.turn(t)
	if !lead.Fainted {
		t.Fatal("lead did not faint")
	}
	hp := foe.HP

	tb.turn(t)
	if got := tb.p1.At(0); got == nil || got.Name != "Beta" {
		t.Fatalf("replacement = %v, want Beta", got)
	}
	if !containsLine(decisions.lines, "turn 2: p1-2 used tackle") {
		t.Fatalf("decisions = %q, want the replacement to act", decisions.lines)
	}
	if !containsLine(decisions.lines, "turn 2: p2-1 used tackle") {
		t.Fatalf("decisions = %q, want the foe to act", decisions.lines)
	}
	if foe.HP >= hp {
		t.Fatalf("foe hp = %d, want below %d", foe.HP, hp)
	}
	if tb.p1.At(0).HP >= tb.p1.At(0).MaxHP {
		t.Fatal("replacement took no damage")
	}
}

func TestMoveFromEmptySlotFails(t *testing.T) {
	foe := newTestCombatant("Beta")
	tb := newTestBattle(t, rng.New(1),
		[]*Combatant{newTestCombatant("Alpha")},
		[]*Combatant{foe},
	)
	tb.submit(t, Action{Kind: ActionMove, Actor: tb.p1, Slot: 3, Target: tb.p2, Move: "tackle"})
	tb.turn(t)

	if !containsLine(tb.Transcript(), MsgMoveFailed) {
		t.Fatalf("transcript = %q, want %q", tb.Transcript(), MsgMoveFailed)
	}
	if foe.HP != foe.MaxHP {
		t.Fatalf("foe hp = %d, want %d", foe.HP, foe.MaxHP)
	}
}
