package battle

import "fmt"

// Narration formats. Each format doubles as its message catalog key, so
// untranslated locales fall back to the English text.
const (
	MsgTurnStart           = "Turn %d."
	MsgSendOut             = "%s sent out %s!"
	MsgSwitchOut           = "%s, come back!"
	MsgCantSwitch          = "%s can't be switched out!"
	MsgMoveUsed            = "%s used %s!"
	MsgMoveFailed          = "But it failed!"
	MsgNoTarget            = "But there was no target..."
	MsgUnknownMove         = "%s hesitated and did nothing."
	MsgMissed              = "%s's attack missed!"
	MsgNoEffect            = "It doesn't affect %s..."
	MsgSuperEffective      = "It's super effective!"
	MsgNotVeryEffective    = "It's not very effective..."
	MsgCritical            = "A critical hit!"
	MsgProtected           = "%s protected itself!"
	MsgFainted             = "%s fainted!"
	MsgStatRose            = "%s's %s rose!"
	MsgStatRoseSharply     = "%s's %s rose sharply!"
	MsgStatRoseDrastically = "%s's %s rose drastically!"
	MsgStatFell            = "%s's %s fell!"
	MsgStatFellHarshly     = "%s's %s harshly fell!"
	MsgStatFellSeverely    = "%s's %s severely fell!"
	MsgStatMax             = "%s's %s won't go any higher!"
	MsgStatMin             = "%s's %s won't go any lower!"
	MsgBurned              = "%s was burned!"
	MsgPoisoned            = "%s was poisoned!"
	MsgBadlyPoisoned       = "%s was badly poisoned!"
	MsgParalyzed           = "%s is paralyzed! It may be unable to move!"
	MsgFrozen              = "%s was frozen solid!"
	MsgFellAsleep          = "%s fell asleep!"
	MsgHurtByBurn          = "%s was hurt by its burn!"
	MsgHurtByPoison        = "%s was hurt by poison!"
	MsgFullyParalyzed      = "%s is paralyzed! It can't move!"
	MsgFrozenSolid         = "%s is frozen solid!"
	MsgThawed              = "%s thawed out!"
	MsgFastAsleep          = "%s is fast asleep."
	MsgWokeUp              = "%s woke up!"
	MsgFlinched            = "%s flinched and couldn't move!"
	MsgStatusCured         = "%s's status returned to normal!"
	MsgRecoil              = "%s was damaged by the recoil!"
	MsgDrained             = "%s had its energy drained!"
	MsgHealed              = "%s regained health!"
	MsgCantEscape          = "%s can't escape!"
	MsgCouldntEscape       = "Can't escape!"
	MsgGotAway             = "Got away safely!"
	MsgNoRunning           = "There's no running from this battle!"
	MsgForfeit             = "%s forfeited the battle!"
	MsgItemNoEffect        = "But it had no effect."
	MsgBallBlocked         = "The trainer blocked the ball!"
	MsgBallShake           = "The ball shook..."
	MsgCaught              = "Gotcha! %s was caught!"
	MsgBrokeFree           = "Oh no! %s broke free!"
	MsgWon                 = "%s won the battle!"
	MsgDraw                = "The battle ended in a draw!"
	MsgSideEnded           = "%s's %s wore off!"
	MsgFieldEnded          = "The %s effect ended."
	MsgWeatherEnded        = "The %s subsided."
	MsgTransformRestored   = "%s returned to its original form!"
	MsgTransformed         = "%s transformed into %s!"
	MsgMustRecharge        = "%s must recharge!"
	MsgTrapped             = "%s is trapped and can't escape!"
	MsgAlreadyStatused     = "%s is already affected!"
)

// MessageKeys returns every narration format used by the engine.
func MessageKeys() []string {
	return []string{
		MsgTurnStart, MsgSendOut, MsgSwitchOut, MsgCantSwitch, MsgMoveUsed,
		MsgMoveFailed, MsgNoTarget, MsgUnknownMove, MsgMissed, MsgNoEffect,
		MsgSuperEffective, MsgNotVeryEffective, MsgCritical, MsgProtected,
		MsgFainted, MsgStatRose, MsgStatRoseSharply, MsgStatRoseDrastically,
		MsgStatFell, MsgStatFellHarshly, MsgStatFellSeverely, MsgStatMax,
		MsgStatMin, MsgBurned, MsgPoisoned, MsgBadlyPoisoned, MsgParalyzed,
		MsgFrozen, MsgFellAsleep, MsgHurtByBurn, MsgHurtByPoison,
		MsgFullyParalyzed, MsgFrozenSolid, MsgThawed, MsgFastAsleep,
		MsgWokeUp, MsgFlinched, MsgStatusCured, MsgRecoil, MsgDrained,
		MsgHealed, MsgCantEscape, MsgCouldntEscape, MsgGotAway, MsgNoRunning,
		MsgForfeit, MsgItemNoEffect, MsgBallBlocked, MsgBallShake, MsgCaught,
		MsgBrokeFree, MsgWon, MsgDraw, MsgSideEnded, MsgFieldEnded,
		MsgWeatherEnded, MsgTransformRestored, MsgTransformed, MsgMustRecharge,
		MsgTrapped, MsgAlreadyStatused,
	}
}

// Say formats a narration line with the battle's printer and sends it to the
// message sink.
func (b *Battle) Say(format string, args ...any) {
	text := b.printer.Sprintf(format, args...)
	b.transcript = append(b.transcript, text)
	if b.sink != nil {
		b.sink.Message(b.ID, text)
	}
}

// Transcript returns every narrated line so far.
func (b *Battle) Transcript() []string {
	out := make([]string, len(b.transcript))
	copy(out, b.transcript)
	return out
}

// RecordDecision forwards a line to the decision logger, if any.
func (b *Battle) RecordDecision(format string, args ...any) {
	if b.decisions == nil {
		return
	}
	b.decisions.Record(fmt.Sprintf(format, args...))
}
