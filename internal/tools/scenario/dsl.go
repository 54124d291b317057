package scenario

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
	apperrors "github.com/louisbranch/creaturebattle/internal/platform/errors"
)

const (
	scenarioTypeName    = "scenario"
	participantTypeName = "scenario_participant"
)

// Scenario is a named list of steps recorded by a Lua script.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one recorded DSL call.
type Step struct {
	Kind string
	Args map[string]any
}

// participantHandle lets scripts chain combatants onto the participant that
// was just declared.
type participantHandle struct {
	scenario *Scenario
	name     string
}

// LoadScenarioFromFile runs the Lua file at path and returns the scenario it
// builds. The scenario name defaults to the file's base name.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := newLuaState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeScenarioInvalid, "load lua",
			map[string]string{"Path": path}, err)
	}
	return runScenarioChunk(state, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// LoadScenario runs source as a scenario script. name is used when the script
// does not name its scenario.
func LoadScenario(name, source string) (*Scenario, error) {
	state := newLuaState()
	if err := lua.LoadBuffer(state, source, name, ""); err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeScenarioInvalid, "load lua",
			map[string]string{"Scenario": name}, err)
	}
	return runScenarioChunk(state, name)
}

func newLuaState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerLuaTypes(state)
	return state
}

func runScenarioChunk(state *lua.State, fallbackName string) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeScenarioInvalid, "run lua", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, apperrors.New(apperrors.CodeScenarioInvalid, "scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, apperrors.New(apperrors.CodeScenarioInvalid, "scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = fallbackName
	}
	return scenario, nil
}

func registerLuaTypes(state *lua.State) {
	registerMetaTable(state, scenarioTypeName, scenarioMethods)
	registerMetaTable(state, participantTypeName, participantMethods)

	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

func registerMetaTable(state *lua.State, name string, methods []lua.RegistryFunction) {
	lua.NewMetaTable(state, name)
	state.NewTable()
	lua.SetFunctions(state, methods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	state.PushUserData(&Scenario{Name: name})
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "battle", Function: tableStep("battle")},
	{Name: "participant", Function: scenarioParticipant},
	{Name: "combatant", Function: tableStep("combatant")},
	{Name: "move", Function: tableStep("move")},
	{Name: "switch", Function: tableStep("switch")},
	{Name: "use_item", Function: tableStep("use_item")},
	{Name: "flee", Function: nameStep("flee", "participant")},
	{Name: "forfeit", Function: nameStep("forfeit", "participant")},
	{Name: "run_turn", Function: scenarioRunTurn},
	{Name: "set_status", Function: tableStep("set_status")},
	{Name: "set_boost", Function: tableStep("set_boost")},
	{Name: "set_volatile", Function: tableStep("set_volatile")},
	{Name: "expect_hp", Function: tableStep("expect_hp")},
	{Name: "expect_hp_range", Function: tableStep("expect_hp_range")},
	{Name: "expect_status", Function: tableStep("expect_status")},
	{Name: "expect_boost", Function: tableStep("expect_boost")},
	{Name: "expect_volatile", Function: tableStep("expect_volatile")},
	{Name: "expect_events", Function: tableStep("expect_events")},
	{Name: "expect_concluded", Function: scenarioExpectConcluded},
	{Name: "expect_message", Function: scenarioExpectMessage},
	{Name: "expect_field", Function: tableStep("expect_field")},
	{Name: "expect_side", Function: tableStep("expect_side")},
}

// tableStep records a method whose only argument is an options table.
func tableStep(kind string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkScenario(state)
		lua.CheckType(state, 2, lua.TypeTable)
		appendStep(scenario, kind, tableToMap(state, 2))
		return 0
	}
}

// nameStep records a method that takes a single name, or an options table.
func nameStep(kind, field string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkScenario(state)
		if state.TypeOf(2) == lua.TypeTable {
			appendStep(scenario, kind, tableToMap(state, 2))
			return 0
		}
		appendStep(scenario, kind, map[string]any{field: lua.CheckString(state, 2)})
		return 0
	}
}

func scenarioParticipant(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	data := tableToMap(state, 2)
	appendStep(scenario, "participant", data)
	name, _ := data["name"].(string)
	state.PushUserData(&participantHandle{scenario: scenario, name: name})
	lua.SetMetaTableNamed(state, participantTypeName)
	return 1
}

func scenarioRunTurn(state *lua.State) int {
	scenario := checkScenario(state)
	count := lua.OptInteger(state, 2, 1)
	if count < 1 {
		lua.ArgumentError(state, 2, "turn count must be positive")
		return 0
	}
	appendStep(scenario, "run_turn", map[string]any{"count": count})
	return 0
}

func scenarioExpectConcluded(state *lua.State) int {
	scenario := checkScenario(state)
	data := optionalTable(state, 2)
	if _, ok := data["concluded"]; !ok {
		data["concluded"] = true
	}
	appendStep(scenario, "expect_concluded", data)
	return 0
}

func scenarioExpectMessage(state *lua.State) int {
	scenario := checkScenario(state)
	if state.TypeOf(2) == lua.TypeTable {
		appendStep(scenario, "expect_message", tableToMap(state, 2))
		return 0
	}
	appendStep(scenario, "expect_message", map[string]any{"text": lua.CheckString(state, 2)})
	return 0
}

var participantMethods = []lua.RegistryFunction{
	{Name: "combatant", Function: participantCombatant},
}

func participantCombatant(state *lua.State) int {
	ud := lua.CheckUserData(state, 1, participantTypeName)
	handle, ok := ud.(*participantHandle)
	if !ok || handle == nil {
		lua.Errorf(state, "invalid participant")
		return 0
	}
	lua.CheckType(state, 2, lua.TypeTable)
	data := tableToMap(state, 2)
	if _, ok := data["participant"]; !ok {
		data["participant"] = handle.name
	}
	appendStep(handle.scenario, "combatant", data)
	state.PushValue(1)
	return 1
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) {
	if scenario == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo returns a []any for sequences and a map for everything else.
func tableToGo(state *lua.State, index int) any {
	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				maxIndex = max(maxIndex, idx)
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}
	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}

// describe renders step args for verbose logs.
func describe(step Step) string {
	if len(step.Args) == 0 {
		return step.Kind
	}
	return fmt.Sprintf("%s %v", step.Kind, step.Args)
}
