package dex

import (
	"fmt"

	"github.com/louisbranch/creaturebattle/internal/battle"
	apperrors "github.com/louisbranch/creaturebattle/internal/platform/errors"
)

type speciesRecord struct {
	Name      string         `yaml:"name"`
	Types     []string       `yaml:"types"`
	BaseStats map[string]int `yaml:"base_stats"`
	CatchRate int            `yaml:"catch_rate"`
	Abilities []string       `yaml:"abilities"`
}

type secondaryRecord struct {
	Chance     int            `yaml:"chance"`
	Status     string         `yaml:"status"`
	Volatile   string         `yaml:"volatile"`
	Boosts     map[string]int `yaml:"boosts"`
	SelfBoosts map[string]int `yaml:"self_boosts"`
}

type moveRecord struct {
	Name          string           `yaml:"name"`
	Type          string           `yaml:"type"`
	Category      string           `yaml:"category"`
	Power         int              `yaml:"power"`
	Accuracy      int              `yaml:"accuracy"`
	AlwaysHits    bool             `yaml:"always_hits"`
	Priority      int              `yaml:"priority"`
	Target        string           `yaml:"target"`
	CritRatio     int              `yaml:"crit_ratio"`
	Flags         []string         `yaml:"flags"`
	Boosts        map[string]int   `yaml:"boosts"`
	SelfBoosts    map[string]int   `yaml:"self_boosts"`
	Status        string           `yaml:"status"`
	Volatile      string           `yaml:"volatile"`
	SelfVolatile  string           `yaml:"self_volatile"`
	SideCondition string           `yaml:"side_condition"`
	PseudoWeather string           `yaml:"pseudo_weather"`
	Weather       string           `yaml:"weather"`
	Secondary     *secondaryRecord `yaml:"secondary"`
	Drain         float64          `yaml:"drain"`
	Recoil        float64          `yaml:"recoil"`
	Heal          float64          `yaml:"heal"`
}

type entryRecord struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Held        bool   `yaml:"held"`
	Ball        bool   `yaml:"ball"`
}

func (r entryRecord) entry(key string) Entry {
	return Entry{Key: key, Name: r.Name, Description: r.Description, Held: r.Held, Ball: r.Ball}
}

var validTargets = map[battle.Target]bool{
	battle.TargetNormal:           true,
	battle.TargetAny:              true,
	battle.TargetSelf:             true,
	battle.TargetAdjacentAlly:     true,
	battle.TargetAllAdjacentFoes:  true,
	battle.TargetAllAdjacent:      true,
	battle.TargetAllySide:         true,
	battle.TargetFoeSide:          true,
	battle.TargetAll:              true,
	battle.TargetRandomNormal:     true,
	battle.TargetAdjacentAllyOrMe: true,
}

func invalidMove(key, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeDexInvalidMove, fmt.Sprintf("move %s: %s", key, reason),
		map[string]string{"Move": key})
}

func (d *Dex) buildMove(key string, rec moveRecord) (*battle.Move, error) {
	moveType, err := d.knownType(rec.Type, "move "+key)
	if err != nil {
		return nil, err
	}
	category, ok := battle.ParseCategory(rec.Category)
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeDexInvalidCategory,
			fmt.Sprintf("move %s: unknown category %q", key, rec.Category), map[string]string{"Move": key})
	}
	target := battle.Target(rec.Target)
	if target == "" {
		target = battle.TargetNormal
	}
	if !validTargets[target] {
		return nil, invalidMove(key, fmt.Sprintf("unknown target %q", rec.Target))
	}
	if rec.Power < 0 || rec.Accuracy < 0 || rec.Accuracy > 100 {
		return nil, invalidMove(key, "power and accuracy must be in range")
	}
	if category != battle.CategoryStatus && rec.Power == 0 {
		return nil, invalidMove(key, "damaging move without power")
	}

	move := &battle.Move{
		Key:           key,
		Name:          rec.Name,
		Type:          moveType,
		Category:      category,
		Power:         rec.Power,
		Accuracy:      rec.Accuracy,
		AlwaysHits:    rec.AlwaysHits,
		Priority:      rec.Priority,
		Target:        target,
		CritRatio:     rec.CritRatio,
		Volatile:      rec.Volatile,
		SelfVolatile:  rec.SelfVolatile,
		SideCondition: rec.SideCondition,
		PseudoWeather: rec.PseudoWeather,
		Weather:       rec.Weather,
		Drain:         rec.Drain,
		Recoil:        rec.Recoil,
		Heal:          rec.Heal,
	}
	for _, flag := range rec.Flags {
		switch flag {
		case "contact":
			move.Flags.Contact = true
		case "protect":
			move.Flags.Protect = true
		case "sound":
			move.Flags.Sound = true
		default:
			return nil, invalidMove(key, fmt.Sprintf("unknown flag %q", flag))
		}
	}
	if move.Status, ok = battle.ParseStatus(rec.Status); !ok {
		return nil, invalidMove(key, fmt.Sprintf("unknown status %q", rec.Status))
	}
	if move.Boosts, err = parseBoosts(key, rec.Boosts); err != nil {
		return nil, err
	}
	if move.SelfBoosts, err = parseBoosts(key, rec.SelfBoosts); err != nil {
		return nil, err
	}
	if rec.Secondary != nil {
		if move.Secondary, err = parseSecondary(key, *rec.Secondary); err != nil {
			return nil, err
		}
	}
	return move, nil
}

func parseSecondary(key string, rec secondaryRecord) (*battle.Secondary, error) {
	if rec.Chance <= 0 || rec.Chance > 100 {
		return nil, invalidMove(key, "secondary chance must be in (0, 100]")
	}
	status, ok := battle.ParseStatus(rec.Status)
	if !ok {
		return nil, invalidMove(key, fmt.Sprintf("unknown secondary status %q", rec.Status))
	}
	boosts, err := parseBoosts(key, rec.Boosts)
	if err != nil {
		return nil, err
	}
	selfBoosts, err := parseBoosts(key, rec.SelfBoosts)
	if err != nil {
		return nil, err
	}
	return &battle.Secondary{
		Chance:     rec.Chance,
		Status:     status,
		Volatile:   rec.Volatile,
		Boosts:     boosts,
		SelfBoosts: selfBoosts,
	}, nil
}

func parseBoosts(key string, raw map[string]int) (map[battle.Stat]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[battle.Stat]int, len(raw))
	for name, stages := range raw {
		stat, ok := battle.ParseStat(name)
		if !ok || stat == battle.StatHP {
			return nil, invalidMove(key, fmt.Sprintf("unknown boost stat %q", name))
		}
		out[stat] = stages
	}
	return out, nil
}

func (d *Dex) buildSpecies(key string, rec speciesRecord) (*Species, error) {
	invalid := func(reason string) error {
		return apperrors.WithMetadata(apperrors.CodeDexInvalidSpecies, fmt.Sprintf("species %s: %s", key, reason),
			map[string]string{"Species": key})
	}
	if len(rec.Types) == 0 || len(rec.Types) > 2 {
		return nil, invalid("species needs one or two types")
	}
	sp := &Species{Key: key, Name: rec.Name, CatchRate: rec.CatchRate}
	if sp.Name == "" {
		sp.Name = key
	}
	for _, value := range rec.Types {
		t, err := d.knownType(value, "species "+key)
		if err != nil {
			return nil, err
		}
		sp.Types = append(sp.Types, t)
	}
	for name, value := range rec.BaseStats {
		stat, ok := battle.ParseStat(name)
		if !ok || stat > battle.StatSpeed {
			return nil, invalid(fmt.Sprintf("unknown base stat %q", name))
		}
		if value <= 0 {
			return nil, invalid(fmt.Sprintf("base stat %s must be positive", name))
		}
		setStat(&sp.BaseStats, stat, value)
	}
	if sp.BaseStats.HP == 0 {
		return nil, invalid("missing base hp")
	}
	if sp.CatchRate < 0 || sp.CatchRate > 255 {
		return nil, invalid("catch rate must be in [0, 255]")
	}
	for _, ability := range rec.Abilities {
		key := battle.NormalizeKey(ability)
		if _, ok := d.abilities[key]; !ok {
			return nil, invalid(fmt.Sprintf("unknown ability %q", ability))
		}
		sp.Abilities = append(sp.Abilities, key)
	}
	return sp, nil
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
