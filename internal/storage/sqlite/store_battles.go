package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/creaturebattle/internal/platform/errors"
	"github.com/louisbranch/creaturebattle/internal/storage"
	"github.com/louisbranch/creaturebattle/internal/storage/cursor"
)

const battleColumns = "seq, id, kind, seed, locale, participants_json, outcome, winner, turns, created_at, finished_at"

// RecordBattle inserts a battle summary or updates a running one. A summary
// with an outcome is final.
func (s *Store) RecordBattle(ctx context.Context, record storage.BattleRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	record, err := normalizeBattle(record)
	if err != nil {
		return err
	}
	participants, err := json.Marshal(record.Participants)
	if err != nil {
		return fmt.Errorf("marshal participants: %w", err)
	}
	var finishedAt sql.NullInt64
	if record.FinishedAt != nil {
		finishedAt = sql.NullInt64{Int64: toMillis(*record.FinishedAt), Valid: true}
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record battle: %w", err)
	}
	var outcome string
	err = tx.QueryRowContext(ctx, "SELECT outcome FROM battles WHERE id = ?", record.ID).Scan(&outcome)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return rollbackWith(tx, fmt.Errorf("load battle %s: %w", record.ID, err))
	case outcome != "":
		return rollbackWith(tx, storage.ErrAlreadyRecorded)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO battles (id, kind, seed, locale, participants_json, outcome, winner, turns, created_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    kind = excluded.kind,
    seed = excluded.seed,
    locale = excluded.locale,
    participants_json = excluded.participants_json,
    outcome = excluded.outcome,
    winner = excluded.winner,
    turns = excluded.turns,
    finished_at = excluded.finished_at
`, record.ID, record.Kind, record.Seed, record.Locale, string(participants), record.Outcome,
		record.Winner, record.Turns, toMillis(record.CreatedAt), finishedAt); err != nil {
		return rollbackWith(tx, fmt.Errorf("record battle %s: %w", record.ID, err))
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record battle: %w", err)
	}
	return nil
}

// GetBattle loads one battle summary.
func (s *Store) GetBattle(ctx context.Context, id string) (storage.BattleRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.BattleRecord{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.BattleRecord{}, invalidRecord("battle id is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, "SELECT "+battleColumns+" FROM battles WHERE id = ?", id)
	_, record, err := scanBattle(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.BattleRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.BattleRecord{}, fmt.Errorf("get battle %s: %w", id, err)
	}
	return record, nil
}

// ListBattles lists battles newest first.
func (s *Store) ListBattles(ctx context.Context, filter storage.BattleFilter, pageSize int, pageToken string) (storage.BattlePage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.BattlePage{}, err
	}
	if pageSize <= 0 {
		return storage.BattlePage{}, invalidRecord("page size must be greater than zero")
	}
	filterKey := ""
	if filter.Outcome != "" {
		filterKey = "outcome=" + filter.Outcome
	}

	var before uint64
	if pageToken = strings.TrimSpace(pageToken); pageToken != "" {
		c, err := cursor.Decode(pageToken)
		if err != nil {
			return storage.BattlePage{}, apperrors.Wrap(apperrors.CodeStorageInvalidRecord, "invalid page token", err)
		}
		if err := cursor.ValidateFilter(c, filterKey); err != nil {
			return storage.BattlePage{}, apperrors.Wrap(apperrors.CodeStorageInvalidRecord, "invalid page token", err)
		}
		before = c.Seq
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT `+battleColumns+`
FROM battles
WHERE (? = '' OR outcome = ?)
  AND (? = 0 OR seq < ?)
ORDER BY seq DESC
LIMIT ?
`, filter.Outcome, filter.Outcome, before, before, pageSize+1)
	if err != nil {
		return storage.BattlePage{}, fmt.Errorf("list battles: %w", err)
	}
	defer rows.Close()

	var page storage.BattlePage
	var lastSeq uint64
	for rows.Next() {
		seq, record, err := scanBattle(rows.Scan)
		if err != nil {
			return storage.BattlePage{}, fmt.Errorf("scan battle: %w", err)
		}
		if len(page.Battles) == pageSize {
			token, err := cursor.Encode(cursor.New(lastSeq, filterKey))
			if err != nil {
				return storage.BattlePage{}, err
			}
			page.NextPageToken = token
			break
		}
		page.Battles = append(page.Battles, record)
		lastSeq = seq
	}
	if err := rows.Err(); err != nil {
		return storage.BattlePage{}, fmt.Errorf("iterate battles: %w", err)
	}
	return page, nil
}

// AppendMessages adds narrated lines to the end of a battle transcript.
func (s *Store) AppendMessages(ctx context.Context, battleID string, texts []string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	battleID = strings.TrimSpace(battleID)
	if battleID == "" {
		return invalidRecord("battle id is required")
	}
	if len(texts) == 0 {
		return nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append messages: %w", err)
	}
	exists, err := battleExists(ctx, tx, battleID)
	if err != nil {
		return rollbackWith(tx, err)
	}
	if !exists {
		return rollbackWith(tx, storage.ErrNotFound)
	}
	seq, err := nextSeq(ctx, tx, "battle_messages", battleID)
	if err != nil {
		return rollbackWith(tx, err)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO battle_messages (battle_id, seq, text) VALUES (?, ?, ?)")
	if err != nil {
		return rollbackWith(tx, fmt.Errorf("prepare append messages: %w", err))
	}
	defer stmt.Close()
	for i, text := range texts {
		if _, err := stmt.ExecContext(ctx, battleID, seq+i, text); err != nil {
			return rollbackWith(tx, fmt.Errorf("append message: %w", err))
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append messages: %w", err)
	}
	return nil
}

// ListMessages returns a battle transcript in narration order.
func (s *Store) ListMessages(ctx context.Context, battleID string) ([]storage.MessageRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	battleID = strings.TrimSpace(battleID)
	if battleID == "" {
		return nil, invalidRecord("battle id is required")
	}
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT battle_id, seq, text FROM battle_messages WHERE battle_id = ? ORDER BY seq", battleID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []storage.MessageRecord
	for rows.Next() {
		var m storage.MessageRecord
		if err := rows.Scan(&m.BattleID, &m.Seq, &m.Text); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}

func normalizeBattle(record storage.BattleRecord) (storage.BattleRecord, error) {
	record.ID = strings.TrimSpace(record.ID)
	record.Kind = strings.TrimSpace(record.Kind)
	if record.ID == "" {
		return record, invalidRecord("battle id is required")
	}
	if record.Kind == "" {
		return record, invalidRecord("battle kind is required")
	}
	if record.Turns < 0 {
		return record, invalidRecord("turns must not be negative")
	}
	if record.Outcome == "" && record.FinishedAt != nil {
		return record, invalidRecord("a finished battle needs an outcome")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.Participants == nil {
		record.Participants = []string{}
	}
	return record, nil
}

func invalidRecord(message string) error {
	return apperrors.New(apperrors.CodeStorageInvalidRecord, message)
}

func scanBattle(scan func(dest ...any) error) (uint64, storage.BattleRecord, error) {
	var (
		seq          uint64
		record       storage.BattleRecord
		participants string
		createdAt    int64
		finishedAt   sql.NullInt64
	)
	if err := scan(&seq, &record.ID, &record.Kind, &record.Seed, &record.Locale, &participants,
		&record.Outcome, &record.Winner, &record.Turns, &createdAt, &finishedAt); err != nil {
		return 0, storage.BattleRecord{}, err
	}
	if err := json.Unmarshal([]byte(participants), &record.Participants); err != nil {
		return 0, storage.BattleRecord{}, fmt.Errorf("decode participants: %w", err)
	}
	record.CreatedAt = fromMillis(createdAt)
	if finishedAt.Valid {
		finished := fromMillis(finishedAt.Int64)
		record.FinishedAt = &finished
	}
	return seq, record, nil
}
