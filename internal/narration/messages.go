package narration

// Summary formats printed by the battle simulator.
const (
	MsgSummaryWon        = "Battle %s: %s won in %d turns."
	MsgSummaryDraw       = "Battle %s: draw after %d turns."
	MsgSummaryFled       = "Battle %s: %s fled after %d turns."
	MsgSummaryCaptured   = "Battle %s: %s was caught after %d turns."
	MsgSummaryUnfinished = "Battle %s: unfinished after %d turns."
	MsgSummaryTotals     = "%d battles: %d won, %d drawn, %d unfinished."
)

// SummaryKeys returns every simulator summary format.
func SummaryKeys() []string {
	return []string{
		MsgSummaryWon, MsgSummaryDraw, MsgSummaryFled, MsgSummaryCaptured,
		MsgSummaryUnfinished, MsgSummaryTotals,
	}
}
