package mining

import (
	"fmt"
	"math"
)

// RuleMode selects how consequent growth is pruned.
type RuleMode string

const (
	// RuleModeUniform scores singleton consequents of every itemset and applies
	// both min confidence and min lift to every emitted rule. Consequents keep
	// growing while they meet min confidence.
	RuleModeUniform RuleMode = "uniform"
	// RuleModeClassic applies asymmetric pruning: itemsets larger than two start
	// growth at two-item consequents, and growth checks confidence only.
	// Lift gates only the rules of two-item itemsets.
	RuleModeClassic RuleMode = "classic"
)

// Counting selects the support counting strategy.
type Counting string

const (
	// CountingBitmap intersects per-item roaring bitmaps.
	CountingBitmap Counting = "bitmap"
	// CountingScan tests every candidate against every transaction.
	CountingScan Counting = "scan"
)

// RuleConfig holds the rule derivation thresholds.
type RuleConfig struct {
	Mode          RuleMode
	MinConfidence float64
	MinLift       float64
	MinLength     int
	MaxLength     int
}

// Config holds every threshold of a mining run. The miner prescribes no defaults.
type Config struct {
	Counting   Counting
	RuleConfig
	MinSupport float64
}

// Validate checks every threshold and returns an error wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	if math.IsNaN(c.MinSupport) || c.MinSupport <= 0 || c.MinSupport > 1 {
		return fmt.Errorf("%w: min support must be in (0, 1], got %g", ErrInvalidConfig, c.MinSupport)
	}
	switch c.Counting {
	case "", CountingBitmap, CountingScan:
	default:
		return fmt.Errorf("%w: unknown counting strategy %q", ErrInvalidConfig, c.Counting)
	}
	return c.RuleConfig.Validate()
}

// Validate checks the rule thresholds and returns an error wrapping ErrInvalidConfig.
// A min confidence above 1 is accepted; it simply admits no rule.
func (c RuleConfig) Validate() error {
	if math.IsNaN(c.MinConfidence) || c.MinConfidence < 0 {
		return fmt.Errorf("%w: min confidence must be non-negative, got %g", ErrInvalidConfig, c.MinConfidence)
	}
	if math.IsNaN(c.MinLift) || c.MinLift < 0 {
		return fmt.Errorf("%w: min lift must be non-negative, got %g", ErrInvalidConfig, c.MinLift)
	}
	if c.MinLength < 1 {
		return fmt.Errorf("%w: min length must be positive, got %d", ErrInvalidConfig, c.MinLength)
	}
	if c.MinLength > c.MaxLength {
		return fmt.Errorf("%w: min length %d exceeds max length %d", ErrInvalidConfig, c.MinLength, c.MaxLength)
	}
	switch c.Mode {
	case "", RuleModeUniform, RuleModeClassic:
	default:
		return fmt.Errorf("%w: unknown rule mode %q", ErrInvalidConfig, c.Mode)
	}
	return nil
}

func (c RuleConfig) mode() RuleMode {
	if c.Mode == "" {
		return RuleModeUniform
	}
	return c.Mode
}
