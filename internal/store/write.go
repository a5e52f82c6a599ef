package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/cee/internal/repair"
)

// WriteRun persists one pipeline result: the run row plus every repair
// record, field deletion and warning, in a single transaction.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency - re-writing the same run
// id is silently ignored, child rows included (the whole write is skipped
// when the run row already exists).
func (s *Store) WriteRun(ctx context.Context, result repair.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, valid, error_code, error, input_hash, output_hash,
		 single_goal_applied, outcome_beliefs_filled, decision_branches_normalized)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		result.RunID,
		boolToInt(result.Valid),
		result.ErrorCode,
		result.Error,
		result.InputHash,
		result.OutputHash,
		boolToInt(result.Fixes.SingleGoalApplied),
		boolToInt(result.Fixes.OutcomeBeliefsFilled),
		boolToInt(result.Fixes.DecisionBranchesNormalized),
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Run already recorded; nothing more to do.
		return nil
	}

	for seq, rec := range result.Repairs {
		fromJSON, err := marshalValue(rec.FromValue)
		if err != nil {
			return fmt.Errorf("write repair %d: %w", seq, err)
		}
		toJSON, err := marshalValue(rec.ToValue)
		if err != nil {
			return fmt.Errorf("write repair %d: %w", seq, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO repairs
			(run_id, seq, field, action, from_value, to_value, reason, edge_id, edge_from, edge_to)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, result.RunID, seq, rec.Field, string(rec.Action), fromJSON, toJSON,
			rec.Reason, rec.EdgeID, rec.EdgeFrom, rec.EdgeTo)
		if err != nil {
			return fmt.Errorf("write repair %d: %w", seq, err)
		}
	}

	for seq, del := range result.Deletions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO deletions (run_id, seq, stage, node_id, field, reason)
			VALUES (?, ?, ?, ?, ?, ?)
		`, result.RunID, seq, del.Stage, del.NodeID, del.Field, del.Reason)
		if err != nil {
			return fmt.Errorf("write deletion %d: %w", seq, err)
		}
	}

	for seq, w := range result.Warnings {
		nodeIDs, err := json.Marshal(orEmpty(w.NodeIDs))
		if err != nil {
			return fmt.Errorf("write warning %d: %w", seq, err)
		}
		edgeIDs, err := json.Marshal(orEmpty(w.EdgeIDs))
		if err != nil {
			return fmt.Errorf("write warning %d: %w", seq, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO warnings (run_id, seq, warning_id, severity, node_ids, edge_ids)
			VALUES (?, ?, ?, ?, ?, ?)
		`, result.RunID, seq, w.ID, string(w.Severity), string(nodeIDs), string(edgeIDs))
		if err != nil {
			return fmt.Errorf("write warning %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// marshalValue serializes a repair record value for storage. nil stays SQL
// NULL so "field was absent" round-trips distinguishably from "".
func marshalValue(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
