package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/basket/internal/model"
)

// SaveRun stores a completed mining run with its frequent itemsets and rules in one transaction.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.MiningRun, itemsets []model.FrequentItemset, rules []model.AssociationRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO mining_runs (
			id, created_at, mode, counting, min_support, min_confidence, min_lift,
			min_length, max_length, transaction_count, itemset_count, rule_count, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.CreatedAt,
		run.Mode,
		run.Counting,
		run.MinSupport,
		run.MinConfidence,
		run.MinLift,
		run.MinLength,
		run.MaxLength,
		run.TransactionCount,
		len(itemsets),
		len(rules),
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	itemStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_itemsets (run_id, items, size, support) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = itemStmt.Close() }()

	for _, set := range itemsets {
		items, err := json.Marshal(set.Items)
		if err != nil {
			return fmt.Errorf("failed to encode itemset: %w", err)
		}
		if _, err := itemStmt.ExecContext(ctx, run.ID, string(items), set.Size(), set.Support); err != nil {
			return fmt.Errorf("failed to insert itemset: %w", err)
		}
	}

	ruleStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_rules (run_id, antecedent, consequent, support, confidence, lift)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = ruleStmt.Close() }()

	for _, r := range rules {
		antecedent, err := json.Marshal(r.Antecedent)
		if err != nil {
			return fmt.Errorf("failed to encode antecedent: %w", err)
		}
		consequent, err := json.Marshal(r.Consequent)
		if err != nil {
			return fmt.Errorf("failed to encode consequent: %w", err)
		}
		if _, err := ruleStmt.ExecContext(ctx, run.ID, string(antecedent), string(consequent), r.Support, r.Confidence, r.Lift); err != nil {
			return fmt.Errorf("failed to insert rule %s: %w", r, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}

	run.ItemsetCount = len(itemsets)
	run.RuleCount = len(rules)
	return nil
}

const runColumns = `id, created_at, mode, counting, min_support, min_confidence, min_lift,
	min_length, max_length, transaction_count, itemset_count, rule_count, duration_ms`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.MiningRun, error) {
	var (
		run        model.MiningRun
		durationMS int64
	)
	err := row.Scan(
		&run.ID,
		&run.CreatedAt,
		&run.Mode,
		&run.Counting,
		&run.MinSupport,
		&run.MinConfidence,
		&run.MinLift,
		&run.MinLength,
		&run.MaxLength,
		&run.TransactionCount,
		&run.ItemsetCount,
		&run.RuleCount,
		&durationMS,
	)
	if err != nil {
		return nil, err
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}

// GetRun retrieves a mining run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.MiningRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM mining_runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first. A non-positive limit returns every run.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.MiningRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, "SELECT "+runColumns+" FROM mining_runs ORDER BY created_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.MiningRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRunItemsets returns the frequent itemsets of a run, smallest first.
func (s *SQLiteStorage) GetRunItemsets(ctx context.Context, runID string) ([]model.FrequentItemset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(runID, "runID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT items, support FROM run_itemsets
		WHERE run_id = ?
		ORDER BY size, support DESC, items
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query itemsets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.FrequentItemset
	for rows.Next() {
		var (
			set   model.FrequentItemset
			items string
		)
		if err := rows.Scan(&items, &set.Support); err != nil {
			return nil, fmt.Errorf("failed to scan itemset: %w", err)
		}
		if err := json.Unmarshal([]byte(items), &set.Items); err != nil {
			return nil, fmt.Errorf("failed to decode itemset: %w", err)
		}
		out = append(out, set)
	}
	return out, rows.Err()
}

// GetRunRules returns the rules of a run, strongest lift first.
func (s *SQLiteStorage) GetRunRules(ctx context.Context, runID string) ([]model.AssociationRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(runID, "runID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT antecedent, consequent, support, confidence, lift FROM run_rules
		WHERE run_id = ?
		ORDER BY lift DESC, confidence DESC, id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.AssociationRule
	for rows.Next() {
		var (
			r                      model.AssociationRule
			antecedent, consequent string
		)
		if err := rows.Scan(&antecedent, &consequent, &r.Support, &r.Confidence, &r.Lift); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		if err := json.Unmarshal([]byte(antecedent), &r.Antecedent); err != nil {
			return nil, fmt.Errorf("failed to decode antecedent: %w", err)
		}
		if err := json.Unmarshal([]byte(consequent), &r.Consequent); err != nil {
			return nil, fmt.Errorf("failed to decode consequent: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and everything it produced.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, query := range []string{
		"DELETE FROM run_rules WHERE run_id = ?",
		"DELETE FROM run_itemsets WHERE run_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete run results: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM mining_runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	return tx.Commit()
}
