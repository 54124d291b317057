// Package dex holds the read-only reference tables battles are built from:
// species, moves, abilities, items and the type chart.
//
// Tables are decoded from YAML once and never mutated afterwards. A *Dex
// implements battle.Library by joining its tables with the callback library
// in internal/battle/effects, and is safe for concurrent use by many battles.
package dex

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/louisbranch/creaturebattle/internal/battle"
	apperrors "github.com/louisbranch/creaturebattle/internal/platform/errors"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// Table file names inside a dex filesystem.
const (
	TypesFile     = "types.yaml"
	SpeciesFile   = "species.yaml"
	MovesFile     = "moves.yaml"
	AbilitiesFile = "abilities.yaml"
	ItemsFile     = "items.yaml"
)

// Species is a creature species definition.
type Species struct {
	Key       string
	Name      string
	Types     []battle.Type
	BaseStats battle.Stats
	CatchRate int
	Abilities []string
}

// Entry is the descriptive record of an ability or item.
type Entry struct {
	Key         string
	Name        string
	Description string
	// Held marks items that are carried into battle rather than used from the bag.
	Held bool
	Ball bool
}

// Dex is a loaded set of reference tables.
type Dex struct {
	species   map[string]*Species
	moves     map[string]*battle.Move
	abilities map[string]Entry
	items     map[string]Entry
	chart     map[battle.Type]map[battle.Type]float64
}

var loadDefault = sync.OnceValues(func() (*Dex, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded tables: %w", err)
	}
	return Load(sub)
})

// Default returns the dex built from the embedded tables. It is loaded once
// per process.
func Default() (*Dex, error) {
	return loadDefault()
}

// Load decodes every table from fsys and validates cross references.
func Load(fsys fs.FS) (*Dex, error) {
	d := &Dex{
		species:   map[string]*Species{},
		moves:     map[string]*battle.Move{},
		abilities: map[string]Entry{},
		items:     map[string]Entry{},
		chart:     map[battle.Type]map[battle.Type]float64{},
	}

	var chart map[string]map[string]float64
	if err := decodeFile(fsys, TypesFile, &chart); err != nil {
		return nil, err
	}
	if err := d.loadChart(chart); err != nil {
		return nil, err
	}

	var moves map[string]moveRecord
	if err := decodeFile(fsys, MovesFile, &moves); err != nil {
		return nil, err
	}
	for key, rec := range moves {
		move, err := d.buildMove(battle.NormalizeKey(key), rec)
		if err != nil {
			return nil, err
		}
		d.moves[move.Key] = move
	}

	var abilities map[string]entryRecord
	if err := decodeFile(fsys, AbilitiesFile, &abilities); err != nil {
		return nil, err
	}
	for key, rec := range abilities {
		entry := rec.entry(battle.NormalizeKey(key))
		d.abilities[entry.Key] = entry
	}

	var items map[string]entryRecord
	if err := decodeFile(fsys, ItemsFile, &items); err != nil {
		return nil, err
	}
	for key, rec := range items {
		entry := rec.entry(battle.NormalizeKey(key))
		d.items[entry.Key] = entry
	}

	var species map[string]speciesRecord
	if err := decodeFile(fsys, SpeciesFile, &species); err != nil {
		return nil, err
	}
	for key, rec := range species {
		sp, err := d.buildSpecies(battle.NormalizeKey(key), rec)
		if err != nil {
			return nil, err
		}
		d.species[sp.Key] = sp
	}
	return d, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	f, err := fsys.Open(name)
	if err != nil {
		return apperrors.WrapWithMetadata(apperrors.CodeDexInvalidTable, "open table", map[string]string{"Table": name}, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return apperrors.WrapWithMetadata(apperrors.CodeDexInvalidTable, "decode "+name, map[string]string{"Table": name}, err)
	}
	return nil
}

func (d *Dex) loadChart(chart map[string]map[string]float64) error {
	for attacking := range chart {
		d.chart[battle.NormalizeType(attacking)] = map[battle.Type]float64{}
	}
	for attacking, row := range chart {
		for defending, multiplier := range row {
			t := battle.NormalizeType(defending)
			if _, ok := d.chart[t]; !ok {
				return unknownType(defending, TypesFile)
			}
			if multiplier < 0 {
				return apperrors.WithMetadata(apperrors.CodeDexInvalidTable, "negative type multiplier",
					map[string]string{"Attacking": attacking, "Defending": defending})
			}
			d.chart[battle.NormalizeType(attacking)][t] = multiplier
		}
	}
	return nil
}

// knownType normalizes value and checks it against the type chart.
func (d *Dex) knownType(value, where string) (battle.Type, error) {
	t := battle.NormalizeType(value)
	if _, ok := d.chart[t]; !ok {
		return "", unknownType(value, where)
	}
	return t, nil
}

func unknownType(value, where string) error {
	return apperrors.WithMetadata(apperrors.CodeDexUnknownType, fmt.Sprintf("unknown type %q", value),
		map[string]string{"Type": value, "Where": where})
}

// Types returns every type in the chart, sorted.
func (d *Dex) Types() []battle.Type {
	out := make([]battle.Type, 0, len(d.chart))
	for t := range d.chart {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Species returns the species for key.
func (d *Dex) Species(key string) (*Species, bool) {
	sp, ok := d.species[battle.NormalizeKey(key)]
	return sp, ok
}

// SpeciesKeys returns every species key, sorted.
func (d *Dex) SpeciesKeys() []string {
	return sortedKeys(d.species)
}

// MoveKeys returns every move key, sorted.
func (d *Dex) MoveKeys() []string {
	return sortedKeys(d.moves)
}

// AbilityEntry returns the descriptive record of an ability.
func (d *Dex) AbilityEntry(key string) (Entry, bool) {
	entry, ok := d.abilities[battle.NormalizeKey(key)]
	return entry, ok
}

// ItemEntry returns the descriptive record of an item.
func (d *Dex) ItemEntry(key string) (Entry, bool) {
	entry, ok := d.items[battle.NormalizeKey(key)]
	return entry, ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
