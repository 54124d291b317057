package scenario

import (
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/battle/rng"
	"github.com/louisbranch/creaturebattle/internal/narration"
)

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

// ensureBattle builds the battle from the declared setup on first use.
func (r *Runner) ensureBattle(state *scenarioState) (*battle.Battle, error) {
	if state.battle != nil {
		return state.battle, nil
	}
	if len(state.participants) < 2 {
		return nil, r.failf("scenario needs at least two participants")
	}

	var src rng.Source = rng.New(state.setup.seed)
	if rolls := state.setup.rolls; rolls != nil {
		src = rng.Fixed{Int: rolls.intValue, Float: rolls.floatValue}
	}

	state.recorder = narration.NewRecorder()
	sinks := narration.Fanout{state.recorder}
	if r.transcript != nil {
		sinks = append(sinks, narration.NewWriter(r.transcript))
	}

	b, err := battle.New(battle.Config{
		ID:            state.name,
		Kind:          state.setup.kind,
		Participants:  state.participants,
		ActivePerSide: state.setup.active,
		Library:       r.dex,
		Rand:          src,
		Sink:          sinks,
		Logger:        r.logger,
		Printer:       r.catalog.Printer(r.locale),
	})
	if err != nil {
		return nil, r.failf("build battle: %v", err)
	}
	for _, name := range trackedEvents {
		b.Events.Register(name, func(battle.Event) { state.events[name]++ })
	}
	state.battle = b
	return b, nil
}

func (r *Runner) participant(state *scenarioState, args map[string]any) (*battle.Participant, error) {
	name := optionalString(args, "participant", "")
	if name == "" {
		return nil, r.failf("participant is required")
	}
	p, ok := state.byName[name]
	if !ok {
		return nil, r.failf("unknown participant %q", name)
	}
	return p, nil
}

// combatant finds the combatant named by args. "combatant" matches a name
// across every roster; "participant" narrows the search, and with "slot"
// alone it selects the active combatant in that slot.
func (r *Runner) combatant(state *scenarioState, args map[string]any) (*battle.Combatant, error) {
	name := optionalString(args, "combatant", "")
	owner := optionalString(args, "participant", "")

	if name == "" {
		if owner == "" {
			return nil, r.failf("combatant is required")
		}
		p, err := r.participant(state, args)
		if err != nil {
			return nil, err
		}
		slot, err := optionalInt(args, "slot", 0)
		if err != nil {
			return nil, r.failf("%v", err)
		}
		c := p.At(slot)
		if c == nil {
			return nil, r.failf("participant %q has no combatant in slot %d", owner, slot)
		}
		return c, nil
	}

	var found []*battle.Combatant
	for _, p := range state.participants {
		if owner != "" && p.Name != owner {
			continue
		}
		for _, c := range p.Roster {
			if strings.EqualFold(c.Name, name) || c.ID == name {
				found = append(found, c)
			}
		}
	}
	switch len(found) {
	case 0:
		return nil, r.failf("unknown combatant %q", name)
	case 1:
		return found[0], nil
	default:
		return nil, r.failf("combatant %q is ambiguous; name its participant", name)
	}
}

func rosterIndex(p *battle.Participant, name string) int {
	for i, c := range p.Roster {
		if strings.EqualFold(c.Name, name) || c.ID == name {
			return i
		}
	}
	return -1
}

func optionalString(args map[string]any, key, fallback string) string {
	value, ok := args[key]
	if !ok || value == nil {
		return fallback
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(value)
}

func requireString(args map[string]any, key string) (string, error) {
	value := optionalString(args, key, "")
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func optionalInt(args map[string]any, key string, fallback int) (int, error) {
	value, ok := args[key]
	if !ok || value == nil {
		return fallback, nil
	}
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		return 0, fmt.Errorf("%s must be an integer, got %v", key, v)
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, value)
	}
}

func requireInt(args map[string]any, key string) (int, error) {
	if _, ok := args[key]; !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	return optionalInt(args, key, 0)
}

func optionalFloat(args map[string]any, key string, fallback float64) (float64, error) {
	value, ok := args[key]
	if !ok || value == nil {
		return fallback, nil
	}
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, value)
	}
}

func optionalBool(args map[string]any, key string, fallback bool) bool {
	value, ok := args[key].(bool)
	if !ok {
		return fallback
	}
	return value
}

func readStringList(args map[string]any, key string) ([]string, error) {
	value, ok := args[key]
	if !ok || value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s entries must be strings, got %T", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a list of strings, got %T", key, value)
	}
}

// readStats reads a stat table keyed by short stat names (hp, atk, def, spa,
// spd, spe). Missing entries keep the values in base.
func readStats(args map[string]any, key string, base battle.Stats) (battle.Stats, bool, error) {
	value, ok := args[key]
	if !ok || value == nil {
		return base, false, nil
	}
	table, ok := value.(map[string]any)
	if !ok {
		return base, false, fmt.Errorf("%s must be a table, got %T", key, value)
	}
	out := base
	for name := range table {
		stat, ok := battle.ParseStat(name)
		if !ok || stat > battle.StatSpeed {
			return base, false, fmt.Errorf("%s: unknown stat %q", key, name)
		}
		n, err := optionalInt(table, name, 0)
		if err != nil {
			return base, false, fmt.Errorf("%s: %w", key, err)
		}
		setStat(&out, stat, n)
	}
	return out, true, nil
}

func setStat(s *battle.Stats, stat battle.Stat, value int) {
	switch stat {
	case battle.StatHP:
		s.HP = value
	case battle.StatAttack:
		s.Attack = value
	case battle.StatDefense:
		s.Defense = value
	case battle.StatSpAttack:
		s.SpAttack = value
	case battle.StatSpDefense:
		s.SpDefense = value
	case battle.StatSpeed:
		s.Speed = value
	}
}

// transcriptDump renders the recorded narration for failure messages.
func transcriptDump(state *scenarioState, w io.Writer) {
	if state.recorder == nil {
		return
	}
	for _, line := range state.recorder.Lines(state.name) {
		fmt.Fprintln(w, "  "+line)
	}
}
