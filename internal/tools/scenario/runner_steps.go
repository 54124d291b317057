package scenario

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/dex"
)

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	switch step.Kind {
	case "battle":
		return r.runBattleStep(state, step)
	case "participant":
		return r.runParticipantStep(state, step)
	case "combatant":
		return r.runCombatantStep(state, step)
	case "move":
		return r.runMoveStep(state, step)
	case "switch":
		return r.runSwitchStep(state, step)
	case "use_item":
		return r.runUseItemStep(state, step)
	case "flee":
		return r.submitSimple(state, step, battle.ActionFlee)
	case "forfeit":
		return r.submitSimple(state, step, battle.ActionForfeit)
	case "run_turn":
		return r.runTurnStep(ctx, state, step)
	case "set_status":
		return r.runSetStatusStep(state, step)
	case "set_boost":
		return r.runSetBoostStep(state, step)
	case "set_volatile":
		return r.runSetVolatileStep(state, step)
	case "expect_hp":
		return r.runExpectHPStep(state, step)
	case "expect_hp_range":
		return r.runExpectHPRangeStep(state, step)
	case "expect_status":
		return r.runExpectStatusStep(state, step)
	case "expect_boost":
		return r.runExpectBoostStep(state, step)
	case "expect_volatile":
		return r.runExpectVolatileStep(state, step)
	case "expect_events":
		return r.runExpectEventsStep(state, step)
	case "expect_concluded":
		return r.runExpectConcludedStep(state, step)
	case "expect_message":
		return r.runExpectMessageStep(state, step)
	case "expect_field":
		return r.runExpectFieldStep(state, step)
	case "expect_side":
		return r.runExpectSideStep(state, step)
	default:
		return r.failf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) ensureSetup(state *scenarioState, kind string) error {
	if state.battle != nil {
		return r.failf("%s must come before the first action or expectation", kind)
	}
	return nil
}

func (r *Runner) runBattleStep(state *scenarioState, step Step) error {
	if err := r.ensureSetup(state, "battle"); err != nil {
		return err
	}
	if state.declared {
		return r.failf("battle is already declared")
	}
	state.declared = true

	kind, ok := battle.ParseKind(optionalString(step.Args, "kind", ""))
	if !ok {
		return r.failf("unknown battle kind %q", step.Args["kind"])
	}
	state.setup.kind = kind

	seed, err := optionalInt(step.Args, "seed", 1)
	if err != nil {
		return r.failf("%v", err)
	}
	state.setup.seed = int64(seed)

	switch format := strings.ToLower(optionalString(step.Args, "format", "singles")); format {
	case "singles", "single":
		state.setup.active = 1
	case "doubles", "double":
		state.setup.active = 2
	case "triples", "triple":
		state.setup.active = 3
	default:
		return r.failf("unknown battle format %q", format)
	}

	if raw, ok := step.Args["rolls"]; ok {
		table, ok := raw.(map[string]any)
		if !ok {
			return r.failf("rolls must be a table")
		}
		intValue, err := optionalInt(table, "int", 0)
		if err != nil {
			return r.failf("rolls: %v", err)
		}
		floatValue, err := optionalFloat(table, "float", 0)
		if err != nil {
			return r.failf("rolls: %v", err)
		}
		state.setup.rolls = &rollSetup{intValue: intValue, floatValue: floatValue}
	}
	return nil
}

func (r *Runner) runParticipantStep(state *scenarioState, step Step) error {
	if err := r.ensureSetup(state, "participant"); err != nil {
		return err
	}
	name, err := requireString(step.Args, "name")
	if err != nil {
		return r.failf("%v", err)
	}
	if _, exists := state.byName[name]; exists {
		return r.failf("participant %q is already declared", name)
	}
	p := battle.NewParticipant(name, nil, optionalBool(step.Args, "ai", false))
	state.participants = append(state.participants, p)
	state.byName[name] = p
	return nil
}

func (r *Runner) runCombatantStep(state *scenarioState, step Step) error {
	if err := r.ensureSetup(state, "combatant"); err != nil {
		return err
	}
	p, err := r.participant(state, step.Args)
	if err != nil {
		return err
	}
	species, err := requireString(step.Args, "species")
	if err != nil {
		return r.failf("%v", err)
	}
	level, err := optionalInt(step.Args, "level", 50)
	if err != nil {
		return r.failf("%v", err)
	}
	moves, err := readStringList(step.Args, "moves")
	if err != nil {
		return r.failf("%v", err)
	}
	status, ok := battle.ParseStatus(optionalString(step.Args, "status", ""))
	if !ok {
		return r.failf("unknown status %q", step.Args["status"])
	}
	hp, err := optionalInt(step.Args, "hp", 0)
	if err != nil {
		return r.failf("%v", err)
	}

	c, err := r.dex.Build(dex.Record{
		ID:       optionalString(step.Args, "id", ""),
		Nickname: optionalString(step.Args, "name", ""),
		Species:  species,
		Level:    level,
		Moves:    moves,
		Ability:  optionalString(step.Args, "ability", ""),
		Item:     optionalString(step.Args, "item", ""),
		Status:   status,
	})
	if err != nil {
		return fmt.Errorf("build combatant: %w", err)
	}

	stats, overridden, err := readStats(step.Args, "stats", c.Stats)
	if err != nil {
		return r.failf("%v", err)
	}
	if overridden {
		c.Stats = stats
		c.MaxHP = max(stats.HP, 1)
		c.HP = c.MaxHP
	}
	types, err := readStringList(step.Args, "types")
	if err != nil {
		return r.failf("%v", err)
	}
	if len(types) > 0 {
		c.Types = c.Types[:0]
		for _, t := range types {
			c.Types = append(c.Types, battle.NormalizeType(t))
		}
	}
	if hp > 0 {
		c.HP = min(hp, c.MaxHP)
	}
	if rosterIndex(p, c.Name) >= 0 {
		return r.failf("participant %q already has a combatant named %q", p.Name, c.Name)
	}
	p.Roster = append(p.Roster, c)
	return nil
}

func (r *Runner) runMoveStep(state *scenarioState, step Step) error {
	b, err := r.ensureBattle(state)
	if err != nil {
		return err
	}
	actor, err := r.participant(state, step.Args)
	if err != nil {
		return err
	}
	move, err := requireString(step.Args, "move")
	if err != nil {
		return r.failf("%v", err)
	}
	slot, err := optionalInt(step.Args, "slot", 0)
	if err != nil {
		return r.failf("%v", err)
	}
	action := battle.Action{Kind: battle.ActionMove, Actor: actor, Slot: slot, Move: move}
	if err := r.bindTarget(state, step.Args, &action); err != nil {
		return err
	}
	return r.submit(b, action)
}

func (r *Runner) runSwitchStep(state *scenarioState, step Step) error {
	b, err := r.ensureBattle(state)
	if err != nil {
		return err
	}
	actor, err := r.participant(state, step.Args)
	if err != nil {
		return err
	}
	slot, err := optionalInt(step.Args, "slot", 0)
	if err != nil {
		return r.failf("%v", err)
	}
	to, err := requireString(step.Args, "to")
	if err != nil {
		return r.failf("%v", err)
	}
	index := rosterIndex(actor, to)
	if index < 0 {
		return r.failf("participant %q has no combatant %q", actor.Name, to)
	}
	return r.submit(b, battle.Action{Kind: battle.ActionSwitch, Actor: actor, Slot: slot, SwitchTo: index})
}

func (r *Runner) runUseItemStep(state *scenarioState, step Step) error {
	b, err := r.ensureBattle(state)
	if err != nil {
		return err
	}
	actor, err := r.participant(state, step.Args)
	if err != nil {
		return err
	}
	item, err := requireString(step.Args, "item")
	if err != nil {
		return r.failf("%v", err)
	}
	slot, err := optionalInt(step.Args, "slot", 0)
	if err != nil {
		return r.failf("%v", err)
	}
	action := battle.Action{Kind: battle.ActionItem, Actor: actor, Slot: slot, Item: item}
	if err := r.bindTarget(state, step.Args, &action); err != nil {
		return err
	}
	return r.submit(b, action)
}

func (r *Runner) submitSimple(state *scenarioState, step Step, kind battle.ActionKind) error {
	b, err := r.ensureBattle(state)
	if err != nil {
		return err
	}
	actor, err := r.participant(state, step.Args)
	if err != nil {
		return err
	}
	return r.submit(b, battle.Action{Kind: kind, Actor: actor})
}

// bindTarget resolves "target" (a participant name) and "target_slot".
func (r *Runner) bindTarget(state *scenarioState, args map[string]any, action *battle.Action) error {
	slot, err := optionalInt(args, "target_slot", 0)
	if err != nil {
		return r.failf("%v", err)
	}
	action.TargetSlot = slot
	target := optionalString(args, "target", "")
	if target == "" {
		return nil
	}
	p, ok := state.byName[target]
	if !ok {
		return r.failf("unknown target participant %q", target)
	}
	action.Target = p
	return nil
}

func (r *Runner) submit(b *battle.Battle, action battle.Action) error {
	if err := b.Submit(action); err != nil {
		return r.failf("submit %s: %v", action.Kind, err)
	}
	return nil
}

func (r *Runner) runTurnStep(ctx context.Context, state *scenarioState, step Step) error {
	b, err := r.ensureBattle(state)
	if err != nil {
		return err
	}
	count, err := optionalInt(step.Args, "count", 1)
	if err != nil {
		return r.failf("%v", err)
	}
	for i := 0; i < count; i++ {
		if b.Concluded() {
			return r.assertf("battle concluded after turn %d, before %d more turns", b.Turn, count-i)
		}
		if err := b.RunTurn(ctx); err != nil {
			return fmt.Errorf("run turn %d: %w", b.Turn, err)
		}
	}
	return nil
}

func (r *Runner) runSetStatusStep(state *scenarioState, step Step) error {
	b, err := r.ensureBattle(state)
	if err != nil {
		return err
	}
	c, err := r.combatant(state, step.Args)
	if err != nil {
		return err
	}
	status, ok := battle.ParseStatus(optionalString(step.Args, "status", ""))
	if !ok {
		return r.failf("unknown status %q", step.Args["status"])
	}
	if status == battle.StatusNone {
		b.CureStatus(c)
		return nil
	}
	if optionalBool(step.Args, "force", false) {
		c.Status = status
		c.StatusState = battle.StatusState{}
		switch status {
		case battle.StatusToxic:
			c.StatusState.ToxicCounter = 1
		case battle.StatusSleep:
			c.StatusState.SleepTurns = 2
		}
		return nil
	}
	if !b.SetStatus(c, status, c) {
		return r.assertf("%s rejected status %s", c.Name, status)
	}
	return nil
}

func (r *Runner) runSetBoostStep(state *scenarioState, step Step) error {
	if _, err := r.ensureBattle(state); err != nil {
		return err
	}
	c, err := r.combatant(state, step.Args)
	if err != nil {
		return err
	}
	stat, err := r.boostStat(step.Args)
	if err != nil {
		return err
	}
	stage, err := requireInt(step.Args, "stage")
	if err != nil {
		return r.failf("%v", err)
	}
	c.Boosts[stat] = min(max(stage, battle.MinStage), battle.MaxStage)
	return nil
}

func (r *Runner) runSetVolatileStep(state *scenarioState, step Step) error {
	b, err := r.ensureBattle(state)
	if err != nil {
		return err
	}
	c, err := r.combatant(state, step.Args)
	if err != nil {
		return err
	}
	id, err := requireString(step.Args, "volatile")
	if err != nil {
		return r.failf("%v", err)
	}
	id = battle.NormalizeKey(id)
	duration, err := optionalInt(step.Args, "duration", 0)
	if err != nil {
		return r.failf("%v", err)
	}
	if optionalBool(step.Args, "remove", false) {
		b.RemoveVolatile(c, id)
		return nil
	}
	if _, ok := b.AddVolatile(c, id, nil, duration); !ok {
		return r.assertf("%s rejected volatile %s", c.Name, id)
	}
	return nil
}

func (r *Runner) boostStat(args map[string]any) (battle.Stat, error) {
	name, err := requireString(args, "stat")
	if err != nil {
		return 0, r.failf("%v", err)
	}
	stat, ok := battle.ParseStat(name)
	if !ok || stat == battle.StatHP {
		return 0, r.failf("unknown boostable stat %q", name)
	}
	return stat, nil
}

func (r *Runner) runExpectHPStep(state *scenarioState, step Step) error {
	if _, err := r.ensureBattle(state); err != nil {
		return err
	}
	c, err := r.combatant(state, step.Args)
	if err != nil {
		return err
	}
	if _, ok := step.Args["fainted"]; ok {
		if want := optionalBool(step.Args, "fainted", false); c.Fainted != want {
			return r.assertf("%s fainted = %t, want %t", c.Name, c.Fainted, want)
		}
	}
	if _, ok := step.Args["hp"]; !ok {
		return nil
	}
	want, err := requireInt(step.Args, "hp")
	if err != nil {
		return r.failf("%v", err)
	}
	if c.HP != want {
		return r.assertf("%s hp = %d, want %d", c.Name, c.HP, want)
	}
	return nil
}

func (r *Runner) runExpectHPRangeStep(state *scenarioState, step Step) error {
	if _, err := r.ensureBattle(state); err != nil {
		return err
	}
	c, err := r.combatant(state, step.Args)
	if err != nil {
		return err
	}
	low, err := optionalInt(step.Args, "min", 0)
	if err != nil {
		return r.failf("%v", err)
	}
	high, err := optionalInt(step.Args, "max", c.MaxHP)
	if err != nil {
		return r.failf("%v", err)
	}
	if high < low {
		return r.failf("hp range max %d is below min %d", high, low)
	}
	if c.HP < low || c.HP > high {
		return r.assertf("%s hp = %d, want within [%d, %d]", c.Name, c.HP, low, high)
	}
	return nil
}

func (r *Runner) runExpectStatusStep(state *scenarioState, step Step) error {
	if _, err := r.ensureBattle(state); err != nil {
		return err
	}
	c, err := r.combatant(state, step.Args)
	if err != nil {
		return err
	}
	want, ok := battle.ParseStatus(optionalString(step.Args, "status", ""))
	if !ok {
		return r.failf("unknown status %q", step.Args["status"])
	}
	if c.Status != want {
		return r.assertf("%s status = %q, want %q", c.Name, c.Status, want)
	}
	return nil
}

func (r *Runner) runExpectBoostStep(state *scenarioState, step Step) error {
	if _, err := r.ensureBattle(state); err != nil {
		return err
	}
	c, err := r.combatant(state, step.Args)
	if err != nil {
		return err
	}
	stat, err := r.boostStat(step.Args)
	if err != nil {
		return err
	}
	want, err := requireInt(step.Args, "stage")
	if err != nil {
		return r.failf("%v", err)
	}
	if got := c.Stage(stat); got != want {
		return r.assertf("%s %s stage = %d, want %d", c.Name, stat, got, want)
	}
	return nil
}

func (r *Runner) runExpectVolatileStep(state *scenarioState, step Step) error {
	if _, err := r.ensureBattle(state); err != nil {
		return err
	}
	c, err := r.combatant(state, step.Args)
	if err != nil {
		return err
	}
	id, err := requireString(step.Args, "volatile")
	if err != nil {
		return r.failf("%v", err)
	}
	id = battle.NormalizeKey(id)
	want := optionalBool(step.Args, "present", true)
	if got := c.HasVolatile(id); got != want {
		return r.assertf("%s has volatile %s = %t, want %t", c.Name, id, got, want)
	}
	if !want {
		return nil
	}
	if _, ok := step.Args["duration"]; ok {
		duration, err := requireInt(step.Args, "duration")
		if err != nil {
			return r.failf("%v", err)
		}
		if got := c.Volatile(id).Duration; got != duration {
			return r.assertf("%s volatile %s duration = %d, want %d", c.Name, id, got, duration)
		}
	}
	return nil
}

// runExpectEventsStep compares dispatch counts, e.g. {faint = 1, switch_in = 2}.
func (r *Runner) runExpectEventsStep(state *scenarioState, step Step) error {
	if _, err := r.ensureBattle(state); err != nil {
		return err
	}
	names := make([]string, 0, len(step.Args))
	for name := range step.Args {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		event := battle.EventName(name)
		if !slices.Contains(trackedEvents, event) {
			return r.failf("unknown event %q", name)
		}
		want, err := requireInt(step.Args, name)
		if err != nil {
			return r.failf("%v", err)
		}
		if got := state.events[event]; got != want {
			if err := r.assertf("event %s dispatched %d times, want %d", name, got, want); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) runExpectConcludedStep(state *scenarioState, step Step) error {
	b, err := r.ensureBattle(state)
	if err != nil {
		return err
	}
	want := optionalBool(step.Args, "concluded", true)
	if b.Concluded() != want {
		return r.assertf("battle concluded = %t, want %t", b.Concluded(), want)
	}
	if !want {
		return nil
	}
	if outcome := optionalString(step.Args, "outcome", ""); outcome != "" && string(b.Outcome()) != outcome {
		return r.assertf("battle outcome = %q, want %q", b.Outcome(), outcome)
	}
	if winner := optionalString(step.Args, "winner", ""); winner != "" {
		got := ""
		if b.Winner() != nil {
			got = b.Winner().Name
		}
		if got != winner {
			return r.assertf("battle winner = %q, want %q", got, winner)
		}
	}
	return nil
}

// runExpectMessageStep looks for a narrated line. Lines match exactly unless
// "contains" is set; "absent" inverts the expectation.
func (r *Runner) runExpectMessageStep(state *scenarioState, step Step) error {
	if _, err := r.ensureBattle(state); err != nil {
		return err
	}
	text, err := requireString(step.Args, "text")
	if err != nil {
		return r.failf("%v", err)
	}
	partial := optionalBool(step.Args, "contains", false)
	absent := optionalBool(step.Args, "absent", false)

	found := slices.ContainsFunc(state.recorder.Lines(state.name), func(line string) bool {
		if partial {
			return strings.Contains(line, text)
		}
		return line == text
	})
	if found == !absent {
		return nil
	}
	var dump strings.Builder
	transcriptDump(state, &dump)
	if absent {
		return r.assertf("unexpected message %q in transcript:\n%s", text, dump.String())
	}
	return r.assertf("message %q not found in transcript:\n%s", text, dump.String())
}

func (r *Runner) runExpectFieldStep(state *scenarioState, step Step) error {
	b, err := r.ensureBattle(state)
	if err != nil {
		return err
	}
	if _, ok := step.Args["weather"]; ok {
		want := battle.NormalizeKey(optionalString(step.Args, "weather", ""))
		if b.Field.Weather != want {
			return r.assertf("weather = %q, want %q", b.Field.Weather, want)
		}
		if _, ok := step.Args["duration"]; ok {
			duration, err := requireInt(step.Args, "duration")
			if err != nil {
				return r.failf("%v", err)
			}
			if b.Field.WeatherDuration != duration {
				return r.assertf("weather duration = %d, want %d", b.Field.WeatherDuration, duration)
			}
		}
	}
	if _, ok := step.Args["pseudo_weather"]; ok {
		id := battle.NormalizeKey(optionalString(step.Args, "pseudo_weather", ""))
		want := optionalBool(step.Args, "present", true)
		if got := b.Field.HasPseudoWeather(id); got != want {
			return r.assertf("pseudo weather %s active = %t, want %t", id, got, want)
		}
	}
	return nil
}

func (r *Runner) runExpectSideStep(state *scenarioState, step Step) error {
	if _, err := r.ensureBattle(state); err != nil {
		return err
	}
	p, err := r.participant(state, step.Args)
	if err != nil {
		return err
	}
	id, err := requireString(step.Args, "condition")
	if err != nil {
		return r.failf("%v", err)
	}
	id = battle.NormalizeKey(id)
	want := optionalBool(step.Args, "present", true)
	if got := p.Side.Has(id); got != want {
		return r.assertf("%s side condition %s = %t, want %t", p.Name, id, got, want)
	}
	if !want {
		return nil
	}
	cond := p.Side.Condition(id)
	if _, ok := step.Args["layers"]; ok {
		layers, err := requireInt(step.Args, "layers")
		if err != nil {
			return r.failf("%v", err)
		}
		if cond.Layers != layers {
			return r.assertf("%s side condition %s layers = %d, want %d", p.Name, id, cond.Layers, layers)
		}
	}
	if _, ok := step.Args["duration"]; ok {
		duration, err := requireInt(step.Args, "duration")
		if err != nil {
			return r.failf("%v", err)
		}
		if cond.Duration != duration {
			return r.assertf("%s side condition %s duration = %d, want %d", p.Name, id, cond.Duration, duration)
		}
	}
	return nil
}
