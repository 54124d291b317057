// Package effects is the callback library of moves, abilities, items and
// conditions whose behavior deviates from default resolution.
//
// Every unit is a small value type that implements battle.Effect plus the
// hook interfaces it needs. The engine finds hooks by type assertion, so a
// unit that only modifies damage never sees residual or switch events.
// Lookups are keyed by battle.NormalizeKey; unknown keys return nil and the
// engine falls back to default behavior.
package effects

import (
	"sort"

	"github.com/louisbranch/creaturebattle/internal/battle"
)

var moves = map[string]battle.Effect{
	"acupressure": acupressure{},
	"afteryou":    afterYou{},
	"allyswitch":  allySwitch{},
	"echoedvoice": echoedVoice{},
	"facade":      facade{},
	"followme":    followMe{},
	"hyperbeam":   recharge{id: "hyperbeam"},
	"gigaimpact":  recharge{id: "gigaimpact"},
	"outrage":     rampage{id: "outrage"},
	"thrash":      rampage{id: "thrash"},
	"quash":       quash{},
	"rest":        rest{},
	"transform":   transform{},
}

var abilities = map[string]battle.Effect{
	"arenatrap":   arenaTrap{},
	"drizzle":     weatherSetter{id: "drizzle", weather: WeatherRain},
	"drought":     weatherSetter{id: "drought", weather: WeatherSun},
	"flashfire":   flashFire{},
	"guts":        guts{},
	"insomnia":    insomnia{},
	"intimidate":  intimidate{},
	"levitate":    levitate{},
	"naturalcure": naturalCure{},
	"poisonpoint": contactStatus{id: "poisonpoint", status: battle.StatusPoison},
	"regenerator": regenerator{},
	"runaway":     runAway{},
	"sandstream":  weatherSetter{id: "sandstream", weather: WeatherSandstorm},
	"shadowtag":   shadowTag{},
	"speedboost":  speedBoost{},
	"static":      contactStatus{id: "static", status: battle.StatusParalysis},
	"sturdy":      sturdy{},
}

var items = map[string]battle.Effect{
	// Held.
	"blacksludge":    blackSludge{},
	"choiceband":     choiceItem{id: "choiceband", stat: battle.StatAttack},
	"choicescarf":    choiceItem{id: "choicescarf", stat: battle.StatSpeed},
	"choicespecs":    choiceItem{id: "choicespecs", stat: battle.StatSpAttack},
	"focussash":      focusSash{},
	"leftovers":      leftovers{},
	"lifeorb":        lifeOrb{},
	"lumberry":       lumBerry{},
	"rockyhelmet":    rockyHelmet{},
	"sitrusberry":    sitrusBerry{},
	"smokeball":      smokeBall{},
	"weaknesspolicy": weaknessPolicy{},

	// Bag.
	"antidote":     statusCure{id: "antidote", cures: []battle.Status{battle.StatusPoison, battle.StatusToxic}},
	"awakening":    statusCure{id: "awakening", cures: []battle.Status{battle.StatusSleep}},
	"burnheal":     statusCure{id: "burnheal", cures: []battle.Status{battle.StatusBurn}},
	"fullheal":     statusCure{id: "fullheal"},
	"fullrestore":  fullRestore{},
	"hyperpotion":  potion{id: "hyperpotion", amount: 200},
	"iceheal":      statusCure{id: "iceheal", cures: []battle.Status{battle.StatusFreeze}},
	"paralyzeheal": statusCure{id: "paralyzeheal", cures: []battle.Status{battle.StatusParalysis}},
	"potion":       potion{id: "potion", amount: 20},
	"superpotion":  potion{id: "superpotion", amount: 50},

	// Balls.
	"greatball":  ball{id: "greatball", multiplier: 1.5},
	"masterball": ball{id: "masterball", multiplier: 765},
	"pokeball":   ball{id: "pokeball", multiplier: 1},
	"ultraball":  ball{id: "ultraball", multiplier: 2},
}

var conditions = map[string]battle.Effect{
	// Volatiles.
	"aquaring":         aquaRing{},
	"attract":          attract{},
	"confusion":        confusion{},
	"flashfire":        flashFireBoost{},
	"focusenergy":      focusEnergy{},
	"leechseed":        leechSeed{},
	"lockedmove":       lockedMove{},
	"partiallytrapped": partiallyTrapped{},
	"protect":          protect{},
	"trapped":          trapped{},
	"yawn":             yawn{},

	// Side conditions.
	"lightscreen": screen{id: "lightscreen", category: battle.CategorySpecial, message: MsgLightScreen},
	"reflect":     screen{id: "reflect", category: battle.CategoryPhysical, message: MsgReflect},
	"safeguard":   safeguard{},
	"spikes":      spikes{},
	"stealthrock": stealthRock{},
	"tailwind":    tailwind{},
	"toxicspikes": toxicSpikes{},

	// Field.
	"echoedvoice":    echoedVoiceField{},
	"trickroom":      trickRoom{},
	WeatherRain:      weather{id: WeatherRain, message: MsgRainStarted, boosted: "Water", weakened: "Fire"},
	WeatherSun:       weather{id: WeatherSun, message: MsgSunStarted, boosted: "Fire", weakened: "Water"},
	WeatherSandstorm: sandstorm{},
}

// Move returns the hook overrides of the move key, or nil.
func Move(key string) battle.Effect {
	return moves[battle.NormalizeKey(key)]
}

// Ability returns the ability key, or nil.
func Ability(key string) battle.Effect {
	return abilities[battle.NormalizeKey(key)]
}

// Item returns the held or bag item key, or nil.
func Item(key string) battle.Effect {
	return items[battle.NormalizeKey(key)]
}

// Condition returns the volatile, side or field condition key, or nil.
func Condition(key string) battle.Effect {
	return conditions[battle.NormalizeKey(key)]
}

// MoveKeys lists every move with hook overrides.
func MoveKeys() []string { return sortedKeys(moves) }

// AbilityKeys lists every ability.
func AbilityKeys() []string { return sortedKeys(abilities) }

// ItemKeys lists every item.
func ItemKeys() []string { return sortedKeys(items) }

// ConditionKeys lists every condition.
func ConditionKeys() []string { return sortedKeys(conditions) }

func sortedKeys(m map[string]battle.Effect) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
