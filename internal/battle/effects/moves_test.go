package effects_test

import (
	"testing"

	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/battle/effects"
)

func TestEchoedVoiceMultiplier(t *testing.T) {
	a := newArena(t, steady,
		[]*battle.Combatant{creature(t, mon{species: "rattata", level: 5, moves: []string{"echoedvoice"}})},
		[]*battle.Combatant{creature(t, mon{species: "shuckle", level: 100})},
	)
	for i, want := range []int{1, 2, 3, 4, 5, 5} {
		a.use(t, a.red, 0, "echoedvoice", a.blue, 0)
		a.turn(t)
		cond := a.Field.GetPseudoWeather("echoedvoice")
		if cond == nil {
			t.Fatalf("turn %d: echoed voice field missing", i+1)
		}
		if cond.Multiplier != want {
			t.Fatalf("turn %d: multiplier = %d, want %d", i+1, cond.Multiplier, want)
		}
	}

	hook := effects.Move("echoedvoice").(battle.BasePowerHook)
	if got := hook.BasePower(&battle.MoveContext{Battle: a.Battle, Move: move(t, "echoedvoice")}); got != 200 {
		t.Fatalf("base power = %d, want 200", got)
	}

	a.turn(t)
	if a.Field.GetPseudoWeather("echoedvoice") != nil {
		t.Fatal("expected echoed voice to end after a turn without it")
	}
}

func TestEchoedVoiceTwiceInOneTurn(t *testing.T) {
	a := newArena(t, steady,
		[]*battle.Combatant{creature(t, mon{species: "rattata", level: 5, moves: []string{"echoedvoice"}})},
		[]*battle.Combatant{creature(t, mon{species: "pidgey", level: 5, moves: []string{"echoedvoice"}})},
	)
	a.use(t, a.red, 0, "echoedvoice", a.blue, 0)
	a.use(t, a.blue, 0, "echoedvoice", a.red, 0)
	a.turn(t)
	if got := a.Field.GetPseudoWeather("echoedvoice").Multiplier; got != 1 {
		t.Fatalf("multiplier = %d, want 1", got)
	}
}

func TestAcupressure(t *testing.T) {
	user := creature(t, mon{species: "shuckle", moves: []string{"acupressure"}})
	a := newArena(t, steady, []*battle.Combatant{user}, []*battle.Combatant{creature(t, mon{species: "chansey"})})

	a.use(t, a.red, 0, "acupressure", a.red, 0)
	a.turn(t)
	if got := user.Stage(battle.StatEvasion); got != 2 {
		t.Fatalf("evasion stage = %d, want 2", got)
	}

	for _, stat := range battle.BoostableStats {
		user.Boosts[stat] = battle.MaxStage
	}
	a.use(t, a.red, 0, "acupressure", a.red, 0)
	a.turn(t)
	if !a.said(battle.MsgMoveFailed) {
		t.Fatalf("transcript %q missing failure", a.Transcript())
	}
}

func TestAfterYouPromotesAlly(t *testing.T) {
	a := newArena(t, steady,
		[]*battle.Combatant{
			creature(t, mon{species: "ninjask", moves: []string{"afteryou"}}),
			creature(t, mon{species: "snorlax", moves: []string{"tackle"}}),
		},
		[]*battle.Combatant{
			creature(t, mon{species: "chansey", moves: []string{"growl"}}),
			creature(t, mon{species: "clefairy"}),
		},
		doubles,
	)
	a.use(t, a.red, 0, "afteryou", a.red, 1)
	a.use(t, a.red, 1, "tackle", a.blue, 1)
	a.use(t, a.blue, 0, "growl", a.red, 0)
	a.turn(t)

	if !a.said(effects.MsgAfterYou, "Snorlax") {
		t.Fatalf("transcript %q missing after you", a.Transcript())
	}
	tackle := a.lineIndex(battle.MsgMoveUsed, "Snorlax", "Tackle")
	growl := a.lineIndex(battle.MsgMoveUsed, "Chansey", "Growl")
	if tackle < 0 || growl < 0 || tackle > growl {
		t.Fatalf("tackle at %d, growl at %d, want tackle first", tackle, growl)
	}
}

func TestAfterYouFailsInSingles(t *testing.T) {
	a := newArena(t, steady,
		[]*battle.Combatant{creature(t, mon{species: "ninjask", moves: []string{"afteryou"}})},
		[]*battle.Combatant{creature(t, mon{species: "chansey", moves: []string{"growl"}})},
	)
	a.use(t, a.red, 0, "afteryou", a.blue, 0)
	a.use(t, a.blue, 0, "growl", a.red, 0)
	a.turn(t)
	if !a.said(battle.MsgMoveFailed) {
		t.Fatalf("transcript %q missing failure", a.Transcript())
	}
}

func TestQuashMovesTargetLast(t *testing.T) {
	a := newArena(t, steady,
		[]*battle.Combatant{
			creature(t, mon{species: "ninjask", moves: []string{"quash"}}),
			creature(t, mon{species: "snorlax", moves: []string{"tackle"}}),
		},
		[]*battle.Combatant{
			creature(t, mon{species: "chansey", moves: []string{"growl"}}),
			creature(t, mon{species: "clefairy"}),
		},
		doubles,
	)
	a.use(t, a.red, 0, "quash", a.blue, 0)
	a.use(t, a.red, 1, "tackle", a.blue, 1)
	a.use(t, a.blue, 0, "growl", a.red, 0)
	a.turn(t)

	if !a.said(effects.MsgQuashed, "Chansey") {
		t.Fatalf("transcript %q missing quash", a.Transcript())
	}
	tackle := a.lineIndex(battle.MsgMoveUsed, "Snorlax", "Tackle")
	growl := a.lineIndex(battle.MsgMoveUsed, "Chansey", "Growl")
	if tackle < 0 || growl < 0 || tackle > growl {
		t.Fatalf("tackle at %d, growl at %d, want growl last", tackle, growl)
	}
}

func TestDoublesOnlyMovesFailInSingles(t *testing.T) {
	for _, key := range []string{"allyswitch", "followme"} {
		t.Run(key, func(t *testing.T) {
			a := newArena(t, steady,
				[]*battle.Combatant{creature(t, mon{species: "clefairy", moves: []string{key}})},
				[]*battle.Combatant{creature(t, mon{species: "chansey"})},
			)
			a.use(t, a.red, 0, key, a.red, 0)
			a.turn(t)
			if !a.said(battle.MsgMoveFailed) {
				t.Fatalf("transcript %q missing failure", a.Transcript())
			}
		})
	}
}

func TestFollowMeRedirects(t *testing.T) {
	a := newArena(t, steady,
		[]*battle.Combatant{
			creature(t, mon{species: "rattata", moves: []string{"tackle"}}),
			creature(t, mon{species: "pidgey"}),
		},
		[]*battle.Combatant{
			creature(t, mon{species: "clefairy", moves: []string{"followme"}}),
			creature(t, mon{species: "chansey"}),
		},
		doubles,
	)
	chansey := a.blue.At(1)
	clefairy := a.blue.At(0)
	a.use(t, a.blue, 0, "followme", a.blue, 0)
	a.use(t, a.red, 0, "tackle", a.blue, 1)
	a.turn(t)

	if chansey.HP != chansey.MaxHP {
		t.Fatalf("chansey hp = %d, want %d", chansey.HP, chansey.MaxHP)
	}
	if clefairy.HP == clefairy.MaxHP {
		t.Fatal("expected clefairy to take the hit")
	}
	if clefairy.HasVolatile("followme") {
		t.Fatal("expected follow me to end with the turn")
	}
}

func TestAllySwitchSwapsSlots(t *testing.T) {
	a := newArena(t, steady,
		[]*battle.Combatant{
			creature(t, mon{species: "slowbro", moves: []string{"allyswitch"}}),
			creature(t, mon{species: "rattata"}),
		},
		[]*battle.Combatant{creature(t, mon{species: "chansey"}), creature(t, mon{species: "clefairy"})},
		doubles,
	)
	slowbro := a.red.At(0)
	a.use(t, a.red, 0, "allyswitch", a.red, 0)
	a.turn(t)
	if a.red.At(1) != slowbro || slowbro.Position() != 1 {
		t.Fatalf("slowbro position = %d, want 1", slowbro.Position())
	}
}

func TestRechargeSkipsNextTurn(t *testing.T) {
	a := newArena(t, steady,
		[]*battle.Combatant{creature(t, mon{species: "snorlax", moves: []string{"hyperbeam"}})},
		[]*battle.Combatant{creature(t, mon{species: "shuckle", level: 100})},
	)
	a.use(t, a.red, 0, "hyperbeam", a.blue, 0)
	a.turn(t)
	if !a.red.At(0).HasVolatile("mustrecharge") {
		t.Fatal("expected the user to need a recharge")
	}
	a.use(t, a.red, 0, "hyperbeam", a.blue, 0)
	a.turn(t)
	if !a.said(battle.MsgMustRecharge, "Snorlax") {
		t.Fatalf("transcript %q missing recharge", a.Transcript())
	}
}

func TestRampageConfusesWhenItRunsOut(t *testing.T) {
	user := creature(t, mon{species: "snorlax", moves: []string{"thrash"}})
	a := newArena(t, steady, []*battle.Combatant{user}, []*battle.Combatant{creature(t, mon{species: "shuckle", level: 100})})

	for turn := 1; turn <= 2; turn++ {
		a.use(t, a.red, 0, "thrash", a.blue, 0)
		a.turn(t)
		if !user.HasVolatile("lockedmove") {
			t.Fatalf("turn %d: expected the user to be locked in", turn)
		}
	}
	a.use(t, a.red, 0, "thrash", a.blue, 0)
	a.turn(t)
	if user.HasVolatile("lockedmove") {
		t.Fatal("expected the lock to end")
	}
	if !user.HasVolatile("confusion") {
		t.Fatal("expected fatigue confusion")
	}
	if !a.said(effects.MsgFatigueConfusion, "Snorlax") {
		t.Fatalf("transcript %q missing fatigue", a.Transcript())
	}
}

func TestRest(t *testing.T) {
	user := creature(t, mon{species: "snorlax", moves: []string{"rest"}, hp: 50, status: battle.StatusBurn})
	a := newArena(t, steady, []*battle.Combatant{user}, []*battle.Combatant{creature(t, mon{species: "chansey"})})

	a.use(t, a.red, 0, "rest", a.red, 0)
	a.turn(t)
	if user.Status != battle.StatusSleep || user.StatusState.SleepTurns != 2 {
		t.Fatalf("status = %q/%d, want slp/2", user.Status, user.StatusState.SleepTurns)
	}
	if user.HP != user.MaxHP {
		t.Fatalf("hp = %d, want %d", user.HP, user.MaxHP)
	}

	a.use(t, a.red, 0, "rest", a.red, 0)
	a.turn(t)
	if user.StatusState.SleepTurns != 1 {
		t.Fatalf("sleep turns = %d, want 1", user.StatusState.SleepTurns)
	}
}

func TestRestFailsAtFullHealth(t *testing.T) {
	user := creature(t, mon{species: "snorlax", moves: []string{"rest"}})
	a := newArena(t, steady, []*battle.Combatant{user}, []*battle.Combatant{creature(t, mon{species: "chansey"})})
	a.use(t, a.red, 0, "rest", a.red, 0)
	a.turn(t)
	if user.Status != battle.StatusNone {
		t.Fatalf("status = %q, want none", user.Status)
	}
	if !a.said(battle.MsgMoveFailed) {
		t.Fatalf("transcript %q missing failure", a.Transcript())
	}
}

func TestTransformCopiesTarget(t *testing.T) {
	ditto := creature(t, mon{species: "ditto", moves: []string{"transform"}})
	a := newArena(t, steady, []*battle.Combatant{ditto}, []*battle.Combatant{creature(t, mon{species: "snorlax", moves: []string{"bodyslam"}})})
	a.use(t, a.red, 0, "transform", a.blue, 0)
	a.turn(t)
	if !ditto.HasVolatile("transform") || ditto.Borrowed == nil {
		t.Fatal("expected ditto to transform")
	}
	if ditto.Species != "snorlax" {
		t.Fatalf("species = %q, want snorlax", ditto.Species)
	}
}

func TestMoveRegistryIgnoresUnknownKeys(t *testing.T) {
	if effects.Move("splash") != nil {
		t.Fatal("expected no callbacks for splash")
	}
	if effects.Move("After You") == nil {
		t.Fatal("expected lookups to normalize display names")
	}
	if _, ok := effects.Move("acupressure").(battle.TryHook); !ok {
		t.Fatal("expected acupressure to implement TryHook")
	}
}

func TestFacadeDoublesWhileStatused(t *testing.T) {
	healthy := creature(t, mon{species: "rattata"})
	paralyzed := creature(t, mon{species: "rattata", status: battle.StatusParalysis})
	defender := creature(t, mon{species: "snorlax"})
	a := newArena(t, steady, []*battle.Combatant{healthy, paralyzed}, []*battle.Combatant{defender})
	facade := move(t, "facade")

	plain := battle.ComputeDamage(healthy, defender, facade, a.Battle, steady)
	boosted := battle.ComputeDamage(paralyzed, defender, facade, a.Battle, steady)
	if boosted <= plain*3/2 {
		t.Fatalf("statused damage = %d, plain = %d, want close to double", boosted, plain)
	}
}
