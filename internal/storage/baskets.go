package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/basket/internal/model"
	"github.com/Veraticus/basket/internal/service"
)

var _ service.Storage = (*SQLiteStorage)(nil)

// SaveBaskets stores baskets and their items, skipping baskets whose hash is already known.
// It returns the number of baskets actually inserted.
func (s *SQLiteStorage) SaveBaskets(ctx context.Context, baskets []model.Basket) (int, error) {
	// Validate inputs
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateBaskets(baskets); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	basketStmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO baskets (id, hash, source, customer, date)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = basketStmt.Close() }()

	itemStmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO basket_items (basket_id, item) VALUES (?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = itemStmt.Close() }()

	inserted := 0
	for _, b := range baskets {
		// Generate hash if not already set
		if b.Hash == "" {
			b.Hash = b.GenerateHash()
		}

		res, err := basketStmt.ExecContext(ctx, b.ID, b.Hash, string(b.Source), b.Customer, b.Date)
		if err != nil {
			return 0, fmt.Errorf("failed to insert basket %s: %w", b.ID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check insert of basket %s: %w", b.ID, err)
		}
		if affected == 0 {
			continue
		}
		inserted++

		for _, item := range b.Items {
			if _, err := itemStmt.ExecContext(ctx, b.ID, item); err != nil {
				return 0, fmt.Errorf("failed to insert item %q of basket %s: %w", item, b.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit baskets: %w", err)
	}
	return inserted, nil
}

// GetBaskets retrieves baskets with their items, oldest first.
func (s *SQLiteStorage) GetBaskets(ctx context.Context, filter service.BasketFilter) ([]model.Basket, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)
	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, string(filter.Source))
	}

	inner := "SELECT id FROM baskets"
	if len(conditions) > 0 {
		inner += " WHERE " + strings.Join(conditions, " AND ")
	}
	inner += " ORDER BY date, id"
	if filter.Limit > 0 {
		inner += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	query := `
		SELECT b.id, b.hash, b.source, b.customer, b.date, i.item
		FROM baskets b
		JOIN basket_items i ON i.basket_id = b.id
		WHERE b.id IN (` + inner + `)
		ORDER BY b.date, b.id, i.item`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query baskets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var baskets []model.Basket
	for rows.Next() {
		var (
			b      model.Basket
			source string
			item   string
		)
		if err := rows.Scan(&b.ID, &b.Hash, &source, &b.Customer, &b.Date, &item); err != nil {
			return nil, fmt.Errorf("failed to scan basket: %w", err)
		}

		if n := len(baskets); n > 0 && baskets[n-1].ID == b.ID {
			baskets[n-1].Items = append(baskets[n-1].Items, item)
			continue
		}
		b.Source = model.BasketSource(source)
		b.Items = []string{item}
		baskets = append(baskets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating baskets: %w", err)
	}

	return baskets, nil
}

// CountBaskets returns the number of stored baskets.
func (s *SQLiteStorage) CountBaskets(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM baskets").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count baskets: %w", err)
	}
	return count, nil
}

// CountDistinctItems returns the number of distinct item labels across all baskets.
func (s *SQLiteStorage) CountDistinctItems(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT item) FROM basket_items").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// GetItemFrequencies returns items ordered by the number of baskets they appear in.
// A non-positive limit returns every item.
func (s *SQLiteStorage) GetItemFrequencies(ctx context.Context, limit int) ([]model.ItemFrequency, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT item, COUNT(*) AS baskets
		FROM basket_items
		GROUP BY item
		ORDER BY baskets DESC, item
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query item frequencies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.ItemFrequency
	for rows.Next() {
		var f model.ItemFrequency
		if err := rows.Scan(&f.Item, &f.Count); err != nil {
			return nil, fmt.Errorf("failed to scan item frequency: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
