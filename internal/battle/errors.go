package battle

import "errors"

// Construction errors. These indicate a caller defect; runtime game
// conditions never surface as errors.
var (
	// ErrNoParticipants indicates a battle built without participants.
	ErrNoParticipants = errors.New("battle requires participants")
	// ErrTooFewParticipants indicates a battle built with a single participant.
	ErrTooFewParticipants = errors.New("battle requires at least two participants")
	// ErrEmptyRoster indicates a participant without usable combatants.
	ErrEmptyRoster = errors.New("participant roster has no usable combatants")
	// ErrNoLibrary indicates a battle built without reference tables.
	ErrNoLibrary = errors.New("battle library is required")
	// ErrNoRandSource indicates a battle built without a random source.
	ErrNoRandSource = errors.New("battle random source is required")
	// ErrInvalidActiveCount indicates an unsupported number of active slots.
	ErrInvalidActiveCount = errors.New("active combatants per side must be between 1 and 3")
)

// Usage errors returned by Submit and RunTurn.
var (
	// ErrUnknownParticipant indicates an action from a participant outside the battle.
	ErrUnknownParticipant = errors.New("participant is not in this battle")
	// ErrBattleConcluded indicates an operation on a finished battle.
	ErrBattleConcluded = errors.New("battle has concluded")
)
