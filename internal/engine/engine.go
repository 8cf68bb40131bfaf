// Package engine runs mining jobs against stored baskets and persists their results.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/basket/internal/common"
	"github.com/Veraticus/basket/internal/mining"
	"github.com/Veraticus/basket/internal/model"
	"github.com/Veraticus/basket/internal/service"
	"github.com/google/uuid"
)

// MiningEngine loads baskets from storage, mines them and records the run.
type MiningEngine struct {
	storage service.Storage
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// Options controls one mining job.
type Options struct {
	Filter service.BasketFilter
	// DryRun skips persisting the run.
	DryRun bool
}

// Outcome is the result of a mining job in both core and storage form.
type Outcome struct {
	Result   *mining.Result
	Run      *model.MiningRun
	Itemsets []model.FrequentItemset
	Rules    []model.AssociationRule
	Saved    bool
}

// New creates a mining engine backed by storage.
func New(storage service.Storage, logger *slog.Logger) *MiningEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &MiningEngine{
		storage: storage,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Mine runs the miner over the baskets matched by opts.Filter.
func (e *MiningEngine) Mine(ctx context.Context, cfg mining.Config, opts Options) (*Outcome, error) {
	miner, err := mining.NewMiner(cfg, e.logger)
	if err != nil {
		return nil, common.NewUserError("Invalid mining thresholds", err)
	}

	baskets, err := e.storage.GetBaskets(ctx, opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load baskets: %w", err)
	}
	if len(baskets) == 0 {
		return nil, common.NewUserError("Import baskets before mining", common.ErrNoBaskets)
	}

	e.logger.Info("Loaded baskets", "count", len(baskets))

	result, err := miner.Run(ctx, ToTransactions(baskets))
	if err != nil {
		return nil, err
	}

	itemsets, err := FrequentItemsets(result)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Result:   result,
		Itemsets: itemsets,
		Rules:    AssociationRules(result.Rules),
		Run: &model.MiningRun{
			ID:               e.newID(),
			CreatedAt:        e.now().UTC(),
			Mode:             string(modeOf(cfg)),
			Counting:         string(countingOf(cfg)),
			MinSupport:       cfg.MinSupport,
			MinConfidence:    cfg.MinConfidence,
			MinLift:          cfg.MinLift,
			MinLength:        cfg.MinLength,
			MaxLength:        cfg.MaxLength,
			TransactionCount: result.Transactions,
			ItemsetCount:     len(itemsets),
			RuleCount:        len(result.Rules),
			Duration:         result.Duration,
		},
	}

	if opts.DryRun {
		return out, nil
	}

	if err := e.storage.SaveRun(ctx, out.Run, out.Itemsets, out.Rules); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	out.Saved = true

	e.logger.Info("Saved mining run", "run_id", out.Run.ID)
	return out, nil
}

// Report loads a stored run with everything it produced.
func (e *MiningEngine) Report(ctx context.Context, runID string) (*service.RunReport, error) {
	run, err := e.storage.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	itemsets, err := e.storage.GetRunItemsets(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load itemsets: %w", err)
	}
	rules, err := e.storage.GetRunRules(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	return &service.RunReport{Run: run, Itemsets: itemsets, Rules: rules}, nil
}

// Export publishes a stored run through writer.
func (e *MiningEngine) Export(ctx context.Context, runID string, writer service.ReportWriter) error {
	report, err := e.Report(ctx, runID)
	if err != nil {
		return err
	}
	if err := writer.Write(ctx, report); err != nil {
		return fmt.Errorf("failed to export run %s: %w", runID, err)
	}
	return nil
}

func modeOf(cfg mining.Config) mining.RuleMode {
	if cfg.Mode == "" {
		return mining.RuleModeUniform
	}
	return cfg.Mode
}

func countingOf(cfg mining.Config) mining.Counting {
	if cfg.Counting == "" {
		return mining.CountingBitmap
	}
	return cfg.Counting
}
