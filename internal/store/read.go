package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/cee/internal/repair"
)

// ErrRunNotFound indicates the requested run id has no row.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is one row of `audit ls` output.
type RunSummary struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Valid     bool   `json:"valid"`
	ErrorCode string `json:"error_code,omitempty"`
	Repairs   int    `json:"repairs"`
	Warnings  int    `json:"warnings"`
}

// RunDetail is the full audit trail for one run.
type RunDetail struct {
	RunSummary
	Error      string                      `json:"error,omitempty"`
	InputHash  string                      `json:"input_hash,omitempty"`
	OutputHash string                      `json:"output_hash,omitempty"`
	Fixes      repair.Fixes                `json:"fixes"`
	Records    []repair.RepairRecord       `json:"records"`
	Deletions  []repair.FieldDeletionEvent `json:"deletions"`
	Warns      []repair.StructuralWarning  `json:"structural_warnings"`
}

// ListRuns returns run summaries, newest first, capped at limit (<=0 means
// a default of 50). Ordering is by created_at then id so runs written in
// the same millisecond still list deterministically.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, r.valid, r.error_code,
		       (SELECT COUNT(*) FROM repairs WHERE run_id = r.id),
		       (SELECT COUNT(*) FROM warnings WHERE run_id = r.id)
		FROM runs r
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	summaries := []RunSummary{}
	for rows.Next() {
		var sum RunSummary
		var valid int
		if err := rows.Scan(&sum.ID, &sum.CreatedAt, &valid, &sum.ErrorCode, &sum.Repairs, &sum.Warnings); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		sum.Valid = valid != 0
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return summaries, nil
}

// GetRun returns the full audit trail for one run id.
func (s *Store) GetRun(ctx context.Context, runID string) (*RunDetail, error) {
	detail := &RunDetail{
		Records:   []repair.RepairRecord{},
		Deletions: []repair.FieldDeletionEvent{},
		Warns:     []repair.StructuralWarning{},
	}

	var valid, single, filled, normalized int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, valid, error_code, error, input_hash, output_hash,
		       single_goal_applied, outcome_beliefs_filled, decision_branches_normalized
		FROM runs WHERE id = ?
	`, runID).Scan(
		&detail.ID, &detail.CreatedAt, &valid, &detail.ErrorCode, &detail.Error,
		&detail.InputHash, &detail.OutputHash, &single, &filled, &normalized,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	detail.Valid = valid != 0
	detail.Fixes = repair.Fixes{
		SingleGoalApplied:          single != 0,
		OutcomeBeliefsFilled:       filled != 0,
		DecisionBranchesNormalized: normalized != 0,
	}

	if detail.Records, err = s.readRepairs(ctx, runID); err != nil {
		return nil, err
	}
	if detail.Deletions, err = s.readDeletions(ctx, runID); err != nil {
		return nil, err
	}
	if detail.Warns, err = s.readWarnings(ctx, runID); err != nil {
		return nil, err
	}
	detail.Repairs = len(detail.Records)
	detail.Warnings = len(detail.Warns)
	return detail, nil
}

func (s *Store) readRepairs(ctx context.Context, runID string) ([]repair.RepairRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT field, action, from_value, to_value, reason, edge_id, edge_from, edge_to
		FROM repairs WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query repairs: %w", err)
	}
	defer rows.Close()

	records := []repair.RepairRecord{}
	for rows.Next() {
		var rec repair.RepairRecord
		var action string
		var fromJSON sql.NullString
		var toJSON string
		if err := rows.Scan(&rec.Field, &action, &fromJSON, &toJSON,
			&rec.Reason, &rec.EdgeID, &rec.EdgeFrom, &rec.EdgeTo); err != nil {
			return nil, fmt.Errorf("scan repair: %w", err)
		}
		rec.Action = repair.RepairAction(action)
		if fromJSON.Valid {
			if err := json.Unmarshal([]byte(fromJSON.String), &rec.FromValue); err != nil {
				return nil, fmt.Errorf("decode from_value: %w", err)
			}
		}
		if err := json.Unmarshal([]byte(toJSON), &rec.ToValue); err != nil {
			return nil, fmt.Errorf("decode to_value: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate repairs: %w", err)
	}
	return records, nil
}

func (s *Store) readDeletions(ctx context.Context, runID string) ([]repair.FieldDeletionEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT stage, node_id, field, reason
		FROM deletions WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query deletions: %w", err)
	}
	defer rows.Close()

	events := []repair.FieldDeletionEvent{}
	for rows.Next() {
		var ev repair.FieldDeletionEvent
		if err := rows.Scan(&ev.Stage, &ev.NodeID, &ev.Field, &ev.Reason); err != nil {
			return nil, fmt.Errorf("scan deletion: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deletions: %w", err)
	}
	return events, nil
}

func (s *Store) readWarnings(ctx context.Context, runID string) ([]repair.StructuralWarning, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT warning_id, severity, node_ids, edge_ids
		FROM warnings WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query warnings: %w", err)
	}
	defer rows.Close()

	warnings := []repair.StructuralWarning{}
	for rows.Next() {
		var w repair.StructuralWarning
		var severity, nodeIDs, edgeIDs string
		if err := rows.Scan(&w.ID, &severity, &nodeIDs, &edgeIDs); err != nil {
			return nil, fmt.Errorf("scan warning: %w", err)
		}
		w.Severity = repair.Severity(severity)
		if err := json.Unmarshal([]byte(nodeIDs), &w.NodeIDs); err != nil {
			return nil, fmt.Errorf("decode node_ids: %w", err)
		}
		if err := json.Unmarshal([]byte(edgeIDs), &w.EdgeIDs); err != nil {
			return nil, fmt.Errorf("decode edge_ids: %w", err)
		}
		warnings = append(warnings, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate warnings: %w", err)
	}
	return warnings, nil
}
