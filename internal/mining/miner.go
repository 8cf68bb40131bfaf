package mining

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Result is the output of one mining run.
type Result struct {
	Supports     SupportTable
	Lattice      Lattice
	Rules        []Rule
	Duration     time.Duration
	Transactions int
}

// Empty reports whether the run produced neither frequent itemsets nor rules.
// An empty result is a normal outcome, not an error.
func (r *Result) Empty() bool {
	return r.Lattice.Len() == 0 && len(r.Rules) == 0
}

// Miner wires the lattice builder, the length filter and the rule deriver together.
type Miner struct {
	logger *slog.Logger
	cfg    Config
}

// NewMiner validates cfg and returns a miner for it.
func NewMiner(cfg Config, logger *slog.Logger) (*Miner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Miner{cfg: cfg, logger: logger}, nil
}

// Config returns the thresholds the miner was built with.
func (m *Miner) Config() Config {
	return m.cfg
}

// Run mines transactions end to end. It either returns a complete result or an error.
func (m *Miner) Run(ctx context.Context, transactions []Transaction) (*Result, error) {
	start := time.Now()

	m.logger.Info("Mining frequent itemsets",
		"transactions", len(transactions),
		"min_support", m.cfg.MinSupport,
		"counting", m.counting())

	lattice, supports, err := BuildLattice(ctx, transactions, m.cfg.MinSupport, m.scanner(transactions))
	if err != nil {
		return nil, fmt.Errorf("failed to build lattice: %w", err)
	}

	filtered := FilterByLength(lattice, m.cfg.MinLength, m.cfg.MaxLength)
	rules, err := DeriveRules(filtered, supports, m.cfg.RuleConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to derive rules: %w", err)
	}

	result := &Result{
		Lattice:      lattice,
		Supports:     supports,
		Rules:        rules,
		Transactions: len(transactions),
		Duration:     time.Since(start),
	}

	m.logger.Info("Mining complete",
		"levels", len(lattice),
		"itemsets", lattice.Len(),
		"rules", len(rules),
		"duration", result.Duration.Round(time.Millisecond))

	return result, nil
}

func (m *Miner) counting() Counting {
	if m.cfg.Counting == "" {
		return CountingBitmap
	}
	return m.cfg.Counting
}

func (m *Miner) scanner(transactions []Transaction) Scanner {
	if m.counting() == CountingScan {
		return NewSubsetScanner(transactions)
	}
	return NewBitmapScanner(transactions)
}
