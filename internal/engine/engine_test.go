package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/basket/internal/common"
	"github.com/Veraticus/basket/internal/mining"
	"github.com/Veraticus/basket/internal/model"
	"github.com/Veraticus/basket/internal/service"
	"github.com/Veraticus/basket/internal/sheets"
	"github.com/Veraticus/basket/internal/storage"
	"github.com/Veraticus/basket/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairConfig() mining.Config {
	return mining.Config{
		MinSupport: 0.5,
		RuleConfig: mining.RuleConfig{
			MinConfidence: 0,
			MinLift:       0,
			MinLength:     2,
			MaxLength:     2,
		},
	}
}

func newTestEngine(t *testing.T, baskets ...model.Basket) (*MiningEngine, *testutil.TestDB) {
	t.Helper()
	db := testutil.SetupTestDB(t, baskets...)
	e := New(db.Storage, nil)
	e.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	e.newID = func() string { return "run-fixed" }
	return e, db
}

func TestMine_PersistsRun(t *testing.T) {
	e, db := newTestEngine(t, testutil.BreakfastBaskets()...)
	ctx := context.Background()

	out, err := e.Mine(ctx, pairConfig(), Options{})
	require.NoError(t, err)
	require.True(t, out.Saved)

	assert.Equal(t, "run-fixed", out.Run.ID)
	assert.Equal(t, "uniform", out.Run.Mode)
	assert.Equal(t, "bitmap", out.Run.Counting)
	assert.Equal(t, 4, out.Run.TransactionCount)
	assert.Equal(t, db.MustCountBaskets(), out.Run.TransactionCount, "every stored basket is mined")
	assert.Len(t, out.Itemsets, 5, "three singletons and the two frequent pairs")
	assert.Len(t, out.Rules, 4)

	stored, err := db.Storage.GetRun(ctx, "run-fixed")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.ItemsetCount)
	assert.Equal(t, 4, stored.RuleCount)

	rules, err := db.Storage.GetRunRules(ctx, "run-fixed")
	require.NoError(t, err)
	require.Len(t, rules, 4)
	// Highest lift first: both eggs/bread rules have lift 4/3.
	assert.InDelta(t, 4.0/3.0, rules[0].Lift, 1e-9)
	assert.Equal(t, "{eggs} -> {bread}", rules[0].String(), "ties broken by confidence")
}

func TestMine_DryRun(t *testing.T) {
	e, db := newTestEngine(t, testutil.BreakfastBaskets()...)
	ctx := context.Background()

	out, err := e.Mine(ctx, pairConfig(), Options{DryRun: true})
	require.NoError(t, err)
	assert.False(t, out.Saved)
	assert.Len(t, out.Rules, 4)

	runs, err := db.Storage.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestMine_MatchesAcrossCountingAndModes(t *testing.T) {
	e, _ := newTestEngine(t, testutil.GroceryBaskets()...)
	ctx := context.Background()

	cfg := mining.Config{
		MinSupport: 0.25,
		RuleConfig: mining.RuleConfig{MinConfidence: 0.5, MinLift: 1, MinLength: 2, MaxLength: 3},
	}

	cfg.Counting = mining.CountingBitmap
	bitmap, err := e.Mine(ctx, cfg, Options{DryRun: true})
	require.NoError(t, err)

	cfg.Counting = mining.CountingScan
	scan, err := e.Mine(ctx, cfg, Options{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, bitmap.Itemsets, scan.Itemsets)
	assert.Equal(t, bitmap.Rules, scan.Rules)
	assert.Equal(t, "scan", scan.Run.Counting)

	for _, r := range bitmap.Rules {
		assert.GreaterOrEqual(t, r.Confidence, 0.5)
		assert.GreaterOrEqual(t, r.Lift, 1.0)
	}
}

func TestMine_Filter(t *testing.T) {
	e, _ := newTestEngine(t, testutil.BreakfastBaskets()...)

	// Only the first two baskets: {milk, bread} and {milk, bread, eggs}.
	out, err := e.Mine(context.Background(), pairConfig(), Options{
		DryRun: true,
		Filter: service.BasketFilter{Limit: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Run.TransactionCount)
}

func TestMine_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no baskets", func(t *testing.T) {
		e, _ := newTestEngine(t)
		_, err := e.Mine(ctx, pairConfig(), Options{})
		require.ErrorIs(t, err, common.ErrNoBaskets)

		var userErr *common.UserError
		assert.True(t, errors.As(err, &userErr))
	})

	t.Run("invalid thresholds", func(t *testing.T) {
		e, _ := newTestEngine(t, testutil.BreakfastBaskets()...)
		cfg := pairConfig()
		cfg.MinSupport = 0
		_, err := e.Mine(ctx, cfg, Options{})
		require.ErrorIs(t, err, mining.ErrInvalidConfig)
	})

	t.Run("canceled", func(t *testing.T) {
		e, _ := newTestEngine(t, testutil.BreakfastBaskets()...)
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := e.Mine(canceled, pairConfig(), Options{})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestReportAndExport(t *testing.T) {
	e, _ := newTestEngine(t, testutil.BreakfastBaskets()...)
	ctx := context.Background()

	_, err := e.Mine(ctx, pairConfig(), Options{})
	require.NoError(t, err)

	report, err := e.Report(ctx, "run-fixed")
	require.NoError(t, err)
	assert.Len(t, report.Itemsets, 5)
	assert.Len(t, report.Rules, 4)

	writer := sheets.NewMockWriter()
	require.NoError(t, e.Export(ctx, "run-fixed", writer))
	assert.Equal(t, 1, writer.WriteCallCount)
	assert.Equal(t, "run-fixed", writer.LastReport.Run.ID)

	writer.SetWriteError(common.ErrSheetsConnection)
	require.ErrorIs(t, e.Export(ctx, "run-fixed", writer), common.ErrSheetsConnection)

	_, err = e.Report(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrRunNotFound)
}
