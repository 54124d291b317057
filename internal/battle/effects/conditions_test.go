package effects_test

import (
	"testing"

	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/battle/effects"
	"github.com/louisbranch/creaturebattle/internal/battle/rng"
)

func TestLeechSeed(t *testing.T) {
	t.Run("drains to the source", func(t *testing.T) {
		seeder := creature(t, mon{species: "bulbasaur", moves: []string{"leechseed"}, hp: 50})
		target := creature(t, mon{species: "rattata"})
		a := newArena(t, steady, []*battle.Combatant{seeder}, []*battle.Combatant{target})

		a.use(t, a.red, 0, "leechseed", a.blue, 0)
		a.turn(t)
		if target.HP != 79 {
			t.Fatalf("target hp = %d, want 79", target.HP)
		}
		if seeder.HP != 61 {
			t.Fatalf("seeder hp = %d, want 61", seeder.HP)
		}
	})

	t.Run("outlasts the seeder switching out", func(t *testing.T) {
		seeder := creature(t, mon{species: "bulbasaur", moves: []string{"leechseed"}})
		bench := creature(t, mon{species: "chansey", hp: 20})
		target := creature(t, mon{species: "rattata"})
		a := newArena(t, steady, []*battle.Combatant{seeder, bench}, []*battle.Combatant{target})

		a.use(t, a.red, 0, "leechseed", a.blue, 0)
		a.turn(t)
		seeded := target.HP

		a.submit(t, battle.Action{Kind: battle.ActionSwitch, Actor: a.red, Slot: 0, SwitchTo: 1})
		a.turn(t)
		if !target.HasVolatile("leechseed") {
			t.Fatal("expected the seed to persist after the seeder switched out")
		}
		if target.HP >= seeded {
			t.Fatalf("target hp = %d, want below %d", target.HP, seeded)
		}
		if bench.HP <= 20 {
			t.Fatalf("replacement hp = %d, want healed above 20", bench.HP)
		}
	})

	t.Run("ends when the seeder faints", func(t *testing.T) {
		seeder := creature(t, mon{species: "bulbasaur", moves: []string{"leechseed"}})
		target := creature(t, mon{species: "rattata"})
		a := newArena(t, steady,
			[]*battle.Combatant{seeder, creature(t, mon{species: "chansey"})},
			[]*battle.Combatant{target},
		)
		a.use(t, a.red, 0, "leechseed", a.blue, 0)
		a.turn(t)
		seeder.HP = 0
		seeder.Fainted = true
		seeded := target.HP

		a.turn(t)
		if target.HasVolatile("leechseed") {
			t.Fatal("expected the seed to end with its fainted source")
		}
		if target.HP != seeded {
			t.Fatalf("target hp = %d, want %d", target.HP, seeded)
		}
	})

	t.Run("grass types are immune", func(t *testing.T) {
		target := creature(t, mon{species: "bulbasaur"})
		a := newArena(t, steady,
			[]*battle.Combatant{creature(t, mon{species: "bulbasaur", moves: []string{"leechseed"}})},
			[]*battle.Combatant{target},
		)
		a.use(t, a.red, 0, "leechseed", a.blue, 0)
		a.turn(t)
		if target.HasVolatile("leechseed") {
			t.Fatal("expected grass target to reject leech seed")
		}
		if !a.said(battle.MsgMoveFailed) {
			t.Fatalf("transcript %q missing failure", a.Transcript())
		}
	})
}

func TestConfusionCountsDownOnAttempts(t *testing.T) {
	confused := creature(t, mon{species: "rattata"})
	source := creature(t, mon{species: "shuckle"})
	a := newArena(t, steady, []*battle.Combatant{source}, []*battle.Combatant{confused})
	if _, ok := a.AddVolatile(confused, "confusion", source, 0); !ok {
		t.Fatal("expected confusion to apply")
	}
	if got := confused.Volatile("confusion").Counter; got != 5 {
		t.Fatalf("counter = %d, want 5", got)
	}

	for turn := 1; turn <= 4; turn++ {
		a.use(t, a.blue, 0, "tackle", a.red, 0)
		a.turn(t)
	}
	if got := confused.Volatile("confusion").Counter; got != 1 {
		t.Fatalf("counter = %d, want 1", got)
	}
	a.use(t, a.blue, 0, "tackle", a.red, 0)
	a.turn(t)
	if confused.HasVolatile("confusion") {
		t.Fatal("expected confusion to end")
	}
	if !a.said(effects.MsgSnappedOut, "Rattata") {
		t.Fatalf("transcript %q missing snap out", a.Transcript())
	}
	if confused.HP != confused.MaxHP {
		t.Fatalf("hp = %d, want no self hits", confused.HP)
	}
}

func TestConfusionSelfHit(t *testing.T) {
	confused := creature(t, mon{species: "rattata"})
	source := creature(t, mon{species: "chansey"})
	a := newArena(t, rng.Fixed{Int: 0, Float: 0.99}, []*battle.Combatant{source}, []*battle.Combatant{confused})
	a.AddVolatile(confused, "confusion", source, 0)

	a.use(t, a.blue, 0, "tackle", a.red, 0)
	a.turn(t)
	if confused.HP != 79 {
		t.Fatalf("hp = %d, want 79", confused.HP)
	}
	if source.HP != source.MaxHP {
		t.Fatalf("source hp = %d, want untouched", source.HP)
	}
	if !a.said(effects.MsgHurtInConfusion) {
		t.Fatalf("transcript %q missing self hit", a.Transcript())
	}
}

func TestScreens(t *testing.T) {
	attacker := creature(t, mon{species: "rattata"})
	defender := creature(t, mon{species: "snorlax"})
	a := newArena(t, steady, []*battle.Combatant{attacker}, []*battle.Combatant{defender})
	tackle, waterGun := move(t, "tackle"), move(t, "watergun")

	physical := battle.ComputeDamage(attacker, defender, tackle, a.Battle, steady)
	special := battle.ComputeDamage(attacker, defender, waterGun, a.Battle, steady)
	critical := battle.CalculateDamage(attacker, defender, tackle, a.Battle, rng.Fixed{Int: 50})
	if !critical.Critical {
		t.Fatal("expected a critical hit")
	}

	if !a.AddSideCondition(a.blue.Side, "reflect", defender) {
		t.Fatal("expected reflect to start")
	}
	if got := a.blue.Side.Conditions["reflect"].Duration; got != 5 {
		t.Fatalf("reflect duration = %d, want 5", got)
	}
	if got := battle.ComputeDamage(attacker, defender, tackle, a.Battle, steady); got != physical/2 {
		t.Fatalf("physical damage = %d, want %d", got, physical/2)
	}
	if got := battle.ComputeDamage(attacker, defender, waterGun, a.Battle, steady); got != special {
		t.Fatalf("special damage = %d, want %d", got, special)
	}
	if got := battle.ComputeDamage(attacker, defender, tackle, a.Battle, rng.Fixed{Int: 50}); got != critical.Damage {
		t.Fatalf("critical damage = %d, want %d", got, critical.Damage)
	}
	if a.AddSideCondition(a.blue.Side, "reflect", defender) {
		t.Fatal("expected a second reflect to fail")
	}

	a.AddSideCondition(a.blue.Side, "lightscreen", defender)
	if got := battle.ComputeDamage(attacker, defender, waterGun, a.Battle, steady); got != special/2 {
		t.Fatalf("special damage = %d, want %d", got, special/2)
	}
}

func TestScreenWearsOff(t *testing.T) {
	a := newArena(t, steady,
		[]*battle.Combatant{creature(t, mon{species: "slowbro", moves: []string{"reflect"}})},
		[]*battle.Combatant{creature(t, mon{species: "chansey"})},
	)
	a.use(t, a.red, 0, "reflect", a.red, 0)
	for turn := 0; turn < 5; turn++ {
		a.turn(t)
	}
	if a.red.Side.Has("reflect") {
		t.Fatal("expected reflect to wear off after five turns")
	}
	if !a.said(battle.MsgSideEnded, "Red", "reflect") {
		t.Fatalf("transcript %q missing wear off", a.Transcript())
	}
}

func TestSpikesLayers(t *testing.T) {
	a := newArena(t, steady,
		[]*battle.Combatant{creature(t, mon{species: "geodude"})},
		[]*battle.Combatant{
			creature(t, mon{species: "chansey"}),
			creature(t, mon{species: "pidgey"}),
			creature(t, mon{species: "rattata"}),
		},
	)
	for i := 0; i < 3; i++ {
		if !a.AddSideCondition(a.blue.Side, "spikes", nil) {
			t.Fatalf("layer %d: expected spikes to stack", i+1)
		}
	}
	if a.AddSideCondition(a.blue.Side, "spikes", nil) {
		t.Fatal("expected a fourth layer to fail")
	}
	if got := a.blue.Side.Conditions["spikes"].Layers; got != 3 {
		t.Fatalf("layers = %d, want 3", got)
	}

	rattata, pidgey := a.blue.Roster[2], a.blue.Roster[1]
	a.submit(t, battle.Action{Kind: battle.ActionSwitch, Actor: a.blue, Slot: 0, SwitchTo: 2})
	a.turn(t)
	if rattata.HP != 68 {
		t.Fatalf("rattata hp = %d, want 68", rattata.HP)
	}

	a.submit(t, battle.Action{Kind: battle.ActionSwitch, Actor: a.blue, Slot: 0, SwitchTo: 1})
	a.turn(t)
	if pidgey.HP != pidgey.MaxHP {
		t.Fatalf("pidgey hp = %d, want flying types untouched", pidgey.HP)
	}
}

func TestStealthRock(t *testing.T) {
	a := newArena(t, steady,
		[]*battle.Combatant{creature(t, mon{species: "geodude", moves: []string{"stealthrock"}})},
		[]*battle.Combatant{creature(t, mon{species: "chansey"}), creature(t, mon{species: "pidgey"})},
	)
	a.use(t, a.red, 0, "stealthrock", a.blue, 0)
	a.turn(t)
	if !a.blue.Side.Has("stealthrock") {
		t.Fatal("expected stealth rock on the foe side")
	}

	pidgey := a.blue.Roster[1]
	a.submit(t, battle.Action{Kind: battle.ActionSwitch, Actor: a.blue, Slot: 0, SwitchTo: 1})
	a.turn(t)
	if pidgey.HP != 75 {
		t.Fatalf("pidgey hp = %d, want 75", pidgey.HP)
	}
	if !a.said(effects.MsgHurtByRocks, "Pidgey") {
		t.Fatalf("transcript %q missing rocks", a.Transcript())
	}
}

func TestTrickRoom(t *testing.T) {
	slow := creature(t, mon{species: "snorlax"})
	fast := creature(t, mon{species: "ninjask"})
	a := newArena(t, steady, []*battle.Combatant{slow}, []*battle.Combatant{fast})

	if !a.AddPseudoWeather("trickroom", slow) {
		t.Fatal("expected trick room to start")
	}
	if got := a.Field.GetPseudoWeather("trickroom").Duration; got != 5 {
		t.Fatalf("duration = %d, want 5", got)
	}

	a.use(t, a.red, 0, "tackle", a.blue, 0)
	a.use(t, a.blue, 0, "tackle", a.red, 0)
	a.turn(t)
	snorlax := a.lineIndex(battle.MsgMoveUsed, "Snorlax", "Tackle")
	ninjask := a.lineIndex(battle.MsgMoveUsed, "Ninjask", "Tackle")
	if snorlax < 0 || ninjask < 0 || snorlax > ninjask {
		t.Fatalf("snorlax at %d, ninjask at %d, want the slower first", snorlax, ninjask)
	}

	a.AddPseudoWeather("trickroom", slow)
	if a.Field.HasPseudoWeather("trickroom") {
		t.Fatal("expected a second trick room to end the first")
	}
}

func TestSafeguardBlocksFoeStatus(t *testing.T) {
	target := creature(t, mon{species: "rattata"})
	a := newArena(t, steady,
		[]*battle.Combatant{creature(t, mon{species: "pikachu", moves: []string{"thunderwave"}})},
		[]*battle.Combatant{target},
	)
	a.AddSideCondition(a.blue.Side, "safeguard", target)
	a.use(t, a.red, 0, "thunderwave", a.blue, 0)
	a.turn(t)
	if target.Status != battle.StatusNone {
		t.Fatalf("status = %q, want none", target.Status)
	}
	if !a.said(effects.MsgSafeguarded, "Rattata") {
		t.Fatalf("transcript %q missing safeguard", a.Transcript())
	}
}

func TestTailwindDoublesSpeed(t *testing.T) {
	c := creature(t, mon{species: "snorlax"})
	a := newArena(t, steady, []*battle.Combatant{c}, []*battle.Combatant{creature(t, mon{species: "chansey"})})
	before := a.EffectiveSpeed(c)
	a.AddSideCondition(a.red.Side, "tailwind", c)
	if got := a.EffectiveSpeed(c); got != before*2 {
		t.Fatalf("speed = %d, want %d", got, before*2)
	}
	if got := a.red.Side.Conditions["tailwind"].Duration; got != 4 {
		t.Fatalf("duration = %d, want 4", got)
	}
}

func TestProtectBlocksForOneTurn(t *testing.T) {
	for _, key := range []string{"protect", "detect"} {
		t.Run(key, func(t *testing.T) {
			guard := creature(t, mon{species: "rattata", moves: []string{key}})
			a := newArena(t, steady, []*battle.Combatant{guard}, []*battle.Combatant{creature(t, mon{species: "snorlax"})})
			a.use(t, a.red, 0, key, a.red, 0)
			a.use(t, a.blue, 0, "tackle", a.red, 0)
			a.turn(t)
			if guard.HP != guard.MaxHP {
				t.Fatalf("hp = %d, want %d", guard.HP, guard.MaxHP)
			}
			if !a.said(effects.MsgProtecting, "Rattata") {
				t.Fatalf("transcript %q missing protecting", a.Transcript())
			}
			if !a.said(battle.MsgProtected, "Rattata") {
				t.Fatalf("transcript %q missing protection", a.Transcript())
			}
			if guard.HasVolatile("protect") {
				t.Fatal("expected protect to end with the turn")
			}
		})
	}
}

func TestPartialTrap(t *testing.T) {
	trapped := creature(t, mon{species: "pidgey"})
	a := newArena(t, steady,
		[]*battle.Combatant{creature(t, mon{species: "snorlax", level: 5, moves: []string{"wrap"}})},
		[]*battle.Combatant{trapped, creature(t, mon{species: "chansey"})},
	)
	a.use(t, a.red, 0, "wrap", a.blue, 0)
	a.turn(t)
	v := trapped.Volatile("partiallytrapped")
	if v == nil {
		t.Fatal("expected the target to be trapped")
	}
	if v.Duration != 4 {
		t.Fatalf("duration = %d, want 4", v.Duration)
	}
	if !a.said(effects.MsgHurtByTrap, "Pidgey") {
		t.Fatalf("transcript %q missing trap damage", a.Transcript())
	}

	a.submit(t, battle.Action{Kind: battle.ActionSwitch, Actor: a.blue, Slot: 0, SwitchTo: 1})
	a.turn(t)
	if a.blue.At(0) != trapped {
		t.Fatal("expected the trapped combatant to stay in")
	}
	if !a.said(battle.MsgCantSwitch, "Pidgey") {
		t.Fatalf("transcript %q missing switch failure", a.Transcript())
	}
}

func TestPartialTrapOutlastsTrapperSwitch(t *testing.T) {
	trapped := creature(t, mon{species: "pidgey"})
	a := newArena(t, steady,
		[]*battle.Combatant{
			creature(t, mon{species: "snorlax", level: 5, moves: []string{"wrap"}}),
			creature(t, mon{species: "chansey"}),
		},
		[]*battle.Combatant{trapped},
	)
	a.use(t, a.red, 0, "wrap", a.blue, 0)
	a.turn(t)
	wrapped := trapped.HP

	a.submit(t, battle.Action{Kind: battle.ActionSwitch, Actor: a.red, Slot: 0, SwitchTo: 1})
	a.turn(t)
	if !trapped.HasVolatile("partiallytrapped") {
		t.Fatal("expected the trap to persist after the trapper switched out")
	}
	if trapped.HP >= wrapped {
		t.Fatalf("trapped hp = %d, want below %d", trapped.HP, wrapped)
	}
}

func TestWeatherModifiesDamage(t *testing.T) {
	attacker := creature(t, mon{species: "rattata"})
	defender := creature(t, mon{species: "snorlax"})
	a := newArena(t, steady, []*battle.Combatant{attacker}, []*battle.Combatant{defender})
	waterGun, ember := move(t, "watergun"), move(t, "ember")
	water := battle.ComputeDamage(attacker, defender, waterGun, a.Battle, steady)
	fire := battle.ComputeDamage(attacker, defender, ember, a.Battle, steady)

	if !a.SetWeather(effects.WeatherRain, nil) {
		t.Fatal("expected rain to start")
	}
	if got := battle.ComputeDamage(attacker, defender, waterGun, a.Battle, steady); got != water*3/2 {
		t.Fatalf("water damage = %d, want %d", got, water*3/2)
	}
	if got := battle.ComputeDamage(attacker, defender, ember, a.Battle, steady); got != max(1, fire/2) {
		t.Fatalf("fire damage = %d, want %d", got, max(1, fire/2))
	}
	if !a.said(effects.MsgRainStarted) {
		t.Fatalf("transcript %q missing rain", a.Transcript())
	}
}

func TestSandstormResidual(t *testing.T) {
	exposed := creature(t, mon{species: "rattata"})
	sheltered := creature(t, mon{species: "geodude"})
	a := newArena(t, steady, []*battle.Combatant{exposed}, []*battle.Combatant{sheltered})
	a.SetWeather(effects.WeatherSandstorm, nil)
	a.turn(t)
	if exposed.HP != 85 {
		t.Fatalf("rattata hp = %d, want 85", exposed.HP)
	}
	if sheltered.HP != sheltered.MaxHP {
		t.Fatalf("geodude hp = %d, want %d", sheltered.HP, sheltered.MaxHP)
	}
	if a.Field.WeatherDuration != 4 {
		t.Fatalf("weather duration = %d, want 4", a.Field.WeatherDuration)
	}
}

func TestAttract(t *testing.T) {
	lover := creature(t, mon{species: "rattata"})
	source := creature(t, mon{species: "clefairy"})
	blocked := newArena(t, rng.Fixed{Int: 0, Float: 0.99}, []*battle.Combatant{source}, []*battle.Combatant{lover})
	if _, ok := blocked.AddVolatile(lover, "attract", source, 0); !ok {
		t.Fatal("expected attract to apply")
	}
	blocked.use(t, blocked.blue, 0, "tackle", blocked.red, 0)
	blocked.turn(t)
	if !blocked.said(effects.MsgImmobilized, "Rattata") {
		t.Fatalf("transcript %q missing immobilized", blocked.Transcript())
	}
	if source.HP != source.MaxHP {
		t.Fatalf("source hp = %d, want untouched", source.HP)
	}

	if _, ok := blocked.AddVolatile(source, "attract", source, 0); ok {
		t.Fatal("expected self-inflicted attract to fail")
	}
}

func TestToxicSpikes(t *testing.T) {
	a := newArena(t, steady,
		[]*battle.Combatant{creature(t, mon{species: "geodude"})},
		[]*battle.Combatant{
			creature(t, mon{species: "chansey"}),
			creature(t, mon{species: "rattata"}),
			creature(t, mon{species: "tentacool"}),
			creature(t, mon{species: "pidgey"}),
		},
	)
	chansey, rattata, tentacool, pidgey := a.blue.Roster[0], a.blue.Roster[1], a.blue.Roster[2], a.blue.Roster[3]
	switchTo := func(index int) {
		t.Helper()
		a.submit(t, battle.Action{Kind: battle.ActionSwitch, Actor: a.blue, Slot: 0, SwitchTo: index})
		a.turn(t)
	}

	if !a.AddSideCondition(a.blue.Side, "toxicspikes", nil) {
		t.Fatal("expected toxic spikes to start")
	}
	switchTo(1)
	if rattata.Status != battle.StatusPoison {
		t.Fatalf("rattata status = %q, want poison", rattata.Status)
	}

	if !a.AddSideCondition(a.blue.Side, "toxicspikes", nil) {
		t.Fatal("expected a second layer")
	}
	if a.AddSideCondition(a.blue.Side, "toxicspikes", nil) {
		t.Fatal("expected a third layer to fail")
	}
	switchTo(0)
	if chansey.Status != battle.StatusToxic {
		t.Fatalf("chansey status = %q, want toxic", chansey.Status)
	}

	switchTo(3)
	if pidgey.Status != battle.StatusNone {
		t.Fatalf("pidgey status = %q, want flying types untouched", pidgey.Status)
	}

	switchTo(2)
	if tentacool.Status != battle.StatusNone {
		t.Fatalf("tentacool status = %q, want none", tentacool.Status)
	}
	if a.blue.Side.Has("toxicspikes") {
		t.Fatal("expected a grounded poison type to absorb the spikes")
	}
	if !a.said(effects.MsgAbsorbedSpikes, "Tentacool") {
		t.Fatalf("transcript %q missing absorption", a.Transcript())
	}
}

func TestMeanLookTrapsWhileUserStays(t *testing.T) {
	trapped := creature(t, mon{species: "pidgey"})
	bench := creature(t, mon{species: "chansey"})
	a := newArena(t, steady,
		[]*battle.Combatant{creature(t, mon{species: "gastly", moves: []string{"meanlook"}}), creature(t, mon{species: "snorlax"})},
		[]*battle.Combatant{trapped, bench},
	)
	a.use(t, a.red, 0, "meanlook", a.blue, 0)
	a.turn(t)
	if !trapped.HasVolatile("trapped") {
		t.Fatal("expected the target to be trapped")
	}
	if !a.said(effects.MsgCantEscape, "Pidgey") {
		t.Fatalf("transcript %q missing trap message", a.Transcript())
	}

	a.submit(t, battle.Action{Kind: battle.ActionSwitch, Actor: a.blue, Slot: 0, SwitchTo: 1})
	a.turn(t)
	if a.blue.At(0) != trapped {
		t.Fatal("expected the trapped combatant to stay in")
	}

	a.submit(t, battle.Action{Kind: battle.ActionSwitch, Actor: a.red, Slot: 0, SwitchTo: 1})
	a.turn(t)
	a.submit(t, battle.Action{Kind: battle.ActionSwitch, Actor: a.blue, Slot: 0, SwitchTo: 1})
	a.turn(t)
	if a.blue.At(0) != bench {
		t.Fatal("expected the switch to succeed once the trapper left")
	}
}

func TestYawn(t *testing.T) {
	t.Run("sleeps at the end of the next turn", func(t *testing.T) {
		target := creature(t, mon{species: "snorlax"})
		a := newArena(t, steady,
			[]*battle.Combatant{creature(t, mon{species: "rattata", moves: []string{"yawn"}})},
			[]*battle.Combatant{target},
		)
		a.use(t, a.red, 0, "yawn", a.blue, 0)
		a.turn(t)
		if !a.said(effects.MsgDrowsy, "Snorlax") {
			t.Fatalf("transcript %q missing drowsiness", a.Transcript())
		}
		if target.Status != battle.StatusNone {
			t.Fatalf("status = %q, want none after the first turn", target.Status)
		}
		a.turn(t)
		if target.Status != battle.StatusSleep {
			t.Fatalf("status = %q, want sleep", target.Status)
		}
	})

	t.Run("switching out clears it", func(t *testing.T) {
		target := creature(t, mon{species: "snorlax"})
		a := newArena(t, steady,
			[]*battle.Combatant{creature(t, mon{species: "rattata", moves: []string{"yawn"}})},
			[]*battle.Combatant{target, creature(t, mon{species: "chansey"})},
		)
		a.use(t, a.red, 0, "yawn", a.blue, 0)
		a.turn(t)
		a.submit(t, battle.Action{Kind: battle.ActionSwitch, Actor: a.blue, Slot: 0, SwitchTo: 1})
		a.turn(t)
		if target.Status != battle.StatusNone {
			t.Fatalf("status = %q, want none", target.Status)
		}
	})

	t.Run("fails against a statused target", func(t *testing.T) {
		target := creature(t, mon{species: "snorlax", status: battle.StatusParalysis})
		a := newArena(t, steady,
			[]*battle.Combatant{creature(t, mon{species: "rattata", moves: []string{"yawn"}})},
			[]*battle.Combatant{target},
		)
		a.use(t, a.red, 0, "yawn", a.blue, 0)
		a.turn(t)
		if target.HasVolatile("yawn") {
			t.Fatal("expected yawn to fail")
		}
	})
}
