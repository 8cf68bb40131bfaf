package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS baskets (
					id TEXT PRIMARY KEY,
					hash TEXT UNIQUE NOT NULL,
					source TEXT NOT NULL,
					customer TEXT NOT NULL,
					date DATETIME NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_baskets_date ON baskets(date)`,
				`CREATE INDEX idx_baskets_source ON baskets(source)`,

				`CREATE TABLE IF NOT EXISTS basket_items (
					basket_id TEXT NOT NULL,
					item TEXT NOT NULL,
					PRIMARY KEY (basket_id, item),
					FOREIGN KEY (basket_id) REFERENCES baskets(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_basket_items_item ON basket_items(item)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Add mining runs and results",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS mining_runs (
					id TEXT PRIMARY KEY,
					created_at DATETIME NOT NULL,
					mode TEXT NOT NULL,
					counting TEXT NOT NULL,
					min_support REAL NOT NULL,
					min_confidence REAL NOT NULL,
					min_lift REAL NOT NULL,
					min_length INTEGER NOT NULL,
					max_length INTEGER NOT NULL,
					transaction_count INTEGER NOT NULL,
					itemset_count INTEGER NOT NULL,
					rule_count INTEGER NOT NULL
				)`,
				`CREATE INDEX idx_mining_runs_created_at ON mining_runs(created_at)`,

				`CREATE TABLE IF NOT EXISTS run_itemsets (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					run_id TEXT NOT NULL,
					items TEXT NOT NULL,
					size INTEGER NOT NULL,
					support REAL NOT NULL,
					FOREIGN KEY (run_id) REFERENCES mining_runs(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_run_itemsets_run_id ON run_itemsets(run_id)`,

				`CREATE TABLE IF NOT EXISTS run_rules (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					run_id TEXT NOT NULL,
					antecedent TEXT NOT NULL,
					consequent TEXT NOT NULL,
					support REAL NOT NULL,
					confidence REAL NOT NULL,
					lift REAL NOT NULL,
					FOREIGN KEY (run_id) REFERENCES mining_runs(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_run_rules_run_id ON run_rules(run_id)`,
			)
		},
	},
	{
		Version:     3,
		Description: "Record mining run duration",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`ALTER TABLE mining_runs ADD COLUMN duration_ms INTEGER NOT NULL DEFAULT 0`,
				`CREATE INDEX idx_run_rules_lift ON run_rules(run_id, lift DESC)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

// Migrate runs all pending database migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// Get current version
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// Apply migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		// Update version
		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Debug("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	// Verify we're at the expected schema version
	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
