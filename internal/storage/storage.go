package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/creaturebattle/internal/platform/errors"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")
	// ErrAlreadyRecorded indicates a concluded battle was recorded again.
	ErrAlreadyRecorded = apperrors.New(apperrors.CodeStorageAlreadyRecorded, "battle already concluded")
)

// BattleRecord summarizes one battle.
type BattleRecord struct {
	ID           string
	Kind         string
	Seed         int64
	Locale       string
	Participants []string
	// Outcome is empty while the battle is still running.
	Outcome    string
	Winner     string
	Turns      int
	CreatedAt  time.Time
	FinishedAt *time.Time
}

// Concluded reports whether the record carries a final outcome.
func (r BattleRecord) Concluded() bool {
	return r.Outcome != ""
}

// BattleFilter narrows a battle listing. Zero fields match everything.
type BattleFilter struct {
	Outcome string
}

// BattlePage is one page of a battle listing, newest first.
type BattlePage struct {
	Battles       []BattleRecord
	NextPageToken string
}

// MessageRecord is one narrated line of a battle transcript.
type MessageRecord struct {
	BattleID string
	Seq      int
	Text     string
}

// DecisionRecord is one AI decision or move-usage line.
type DecisionRecord struct {
	BattleID   string
	Seq        int
	Line       string
	RecordedAt time.Time
}

// TranscriptStore persists battle summaries and their narration.
type TranscriptStore interface {
	RecordBattle(ctx context.Context, record BattleRecord) error
	AppendMessages(ctx context.Context, battleID string, texts []string) error
	GetBattle(ctx context.Context, id string) (BattleRecord, error)
	ListBattles(ctx context.Context, filter BattleFilter, pageSize int, pageToken string) (BattlePage, error)
	ListMessages(ctx context.Context, battleID string) ([]MessageRecord, error)
}

// DecisionStore persists AI decision logs.
type DecisionStore interface {
	RecordDecision(ctx context.Context, battleID, line string) error
	ListDecisions(ctx context.Context, battleID string) ([]DecisionRecord, error)
}
