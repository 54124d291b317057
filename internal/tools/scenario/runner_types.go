package scenario

import (
	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/narration"
)

// battleSetup is what the battle step declares. Zero values fall back to a
// wild singles battle seeded with 1.
type battleSetup struct {
	kind   battle.Kind
	seed   int64
	active int
	rolls  *rollSetup
}

// rollSetup pins every random draw to fixed values.
type rollSetup struct {
	intValue   int
	floatValue float64
}

type scenarioState struct {
	name     string
	setup    battleSetup
	declared bool

	participants []*battle.Participant
	byName       map[string]*battle.Participant

	battle   *battle.Battle
	recorder *narration.Recorder
	events   map[battle.EventName]int
}

func newScenarioState(name string) *scenarioState {
	return &scenarioState{
		name:   name,
		setup:  battleSetup{seed: 1, active: 1},
		byName: map[string]*battle.Participant{},
		events: map[battle.EventName]int{},
	}
}

// trackedEvents are counted for expect_events.
var trackedEvents = []battle.EventName{
	battle.EventStartTurn,
	battle.EventSwitchIn,
	battle.EventSwitchOut,
	battle.EventBeforeMove,
	battle.EventAfterMove,
	battle.EventDamage,
	battle.EventFaint,
	battle.EventResidual,
	battle.EventEndTurn,
	battle.EventBattleEnd,
}
