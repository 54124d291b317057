// Package battle resolves turn-based creature battles.
//
// A Battle owns its participants, their combatants, the field, an event
// Dispatcher and the queue of declared actions. RunTurn drives one turn through
// a fixed sequence of phases:
//
//  1. start_turn resets per-turn scratch state.
//  2. run_switch brings combatants into play and fires switch-in hooks.
//  3. run_after_switch applies effects that only trigger once switches settle.
//  4. run_move orders and resolves move, item, flee and forfeit actions.
//  5. run_faint removes fainted combatants from play.
//  6. residual applies recurring status, volatile, side and field effects.
//  7. end_turn restores borrowed state and evaluates the win condition.
//
// Behavior that deviates from default resolution lives outside this package,
// in effect units that implement only the hook interfaces they need (see
// hooks.go). The engine discovers capabilities with type assertions and calls
// every hook through a recover boundary, so one broken effect never corrupts a
// turn in progress.
//
// A Battle is not safe for concurrent use. Independent battles share nothing
// but the read-only Library they were built with.
package battle
