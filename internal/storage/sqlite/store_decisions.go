package sqlite

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/creaturebattle/internal/battle"
	"github.com/louisbranch/creaturebattle/internal/storage"
)

// RecordDecision appends one decision line to a recorded battle.
func (s *Store) RecordDecision(ctx context.Context, battleID, line string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	battleID = strings.TrimSpace(battleID)
	if battleID == "" {
		return invalidRecord("battle id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record decision: %w", err)
	}
	exists, err := battleExists(ctx, tx, battleID)
	if err != nil {
		return rollbackWith(tx, err)
	}
	if !exists {
		return rollbackWith(tx, storage.ErrNotFound)
	}
	seq, err := nextSeq(ctx, tx, "battle_decisions", battleID)
	if err != nil {
		return rollbackWith(tx, err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO battle_decisions (battle_id, seq, line, recorded_at) VALUES (?, ?, ?, ?)",
		battleID, seq, line, toMillis(time.Now()),
	); err != nil {
		return rollbackWith(tx, fmt.Errorf("record decision: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record decision: %w", err)
	}
	return nil
}

// ListDecisions returns a battle's decision log in recording order.
func (s *Store) ListDecisions(ctx context.Context, battleID string) ([]storage.DecisionRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	battleID = strings.TrimSpace(battleID)
	if battleID == "" {
		return nil, invalidRecord("battle id is required")
	}
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT battle_id, seq, line, recorded_at FROM battle_decisions WHERE battle_id = ? ORDER BY seq", battleID)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var out []storage.DecisionRecord
	for rows.Next() {
		var (
			d          storage.DecisionRecord
			recordedAt int64
		)
		if err := rows.Scan(&d.BattleID, &d.Seq, &d.Line, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		d.RecordedAt = fromMillis(recordedAt)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return out, nil
}

// DecisionLogger adapts the store to battle.DecisionLogger for one battle.
// The battle must already be recorded. Write failures go to logger, or are
// dropped when logger is nil.
func (s *Store) DecisionLogger(ctx context.Context, battleID string, logger *log.Logger) battle.DecisionLogger {
	return decisionLogger{ctx: ctx, store: s, battleID: battleID, logger: logger}
}

type decisionLogger struct {
	ctx      context.Context
	store    storage.DecisionStore
	battleID string
	logger   *log.Logger
}

func (d decisionLogger) Record(line string) {
	if err := d.store.RecordDecision(d.ctx, d.battleID, line); err != nil && d.logger != nil {
		d.logger.Printf("record decision for battle %s: %v", d.battleID, err)
	}
}
