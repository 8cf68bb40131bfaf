package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_IsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	var version int
	require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestMigrate_CreatesSchema(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		kind string
		name string
	}{
		{kind: "table", name: "baskets"},
		{kind: "table", name: "basket_items"},
		{kind: "table", name: "mining_runs"},
		{kind: "table", name: "run_itemsets"},
		{kind: "table", name: "run_rules"},
		{kind: "index", name: "idx_basket_items_item"},
		{kind: "index", name: "idx_run_rules_lift"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var count int
			err := store.db.QueryRowContext(ctx,
				"SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?", tt.kind, tt.name).Scan(&count)
			require.NoError(t, err)
			assert.Equal(t, 1, count, "%s %s missing", tt.kind, tt.name)
		})
	}
}

func TestMigrate_DurationColumnDefault(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Rows written before version 3 read back with a zero duration.
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO mining_runs (
			id, created_at, mode, counting, min_support, min_confidence, min_lift,
			min_length, max_length, transaction_count, itemset_count, rule_count
		) VALUES ('legacy', CURRENT_TIMESTAMP, 'classic', 'scan', 0.1, 0.1, 1, 2, 2, 10, 0, 0)
	`)
	require.NoError(t, err)

	run, err := store.GetRun(ctx, "legacy")
	require.NoError(t, err)
	assert.Zero(t, run.Duration)
	assert.Equal(t, "classic", run.Mode)
}

func TestMigrate_NilContext(t *testing.T) {
	store := createTestStorage(t)
	//nolint:staticcheck // nil context is the case under test
	err := store.Migrate(nil)
	require.ErrorIs(t, err, ErrNilContext)
}
