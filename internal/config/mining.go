package config

import (
	"fmt"

	"github.com/Veraticus/basket/internal/mining"
	"github.com/spf13/viper"
)

// Mining defaults, matching the thresholds used on the groceries dataset.
const (
	DefaultMinSupport    = 0.0008
	DefaultMinConfidence = 0.0008
	DefaultMinLift       = 1.0
	DefaultMinLength     = 3
	DefaultMaxLength     = 3
	DefaultRuleMode      = mining.RuleModeUniform
	DefaultCounting      = mining.CountingBitmap
)

// SetMiningDefaults registers the mining defaults with v.
func SetMiningDefaults(v *viper.Viper) {
	v.SetDefault("mining.min_support", DefaultMinSupport)
	v.SetDefault("mining.min_confidence", DefaultMinConfidence)
	v.SetDefault("mining.min_lift", DefaultMinLift)
	v.SetDefault("mining.min_length", DefaultMinLength)
	v.SetDefault("mining.max_length", DefaultMaxLength)
	v.SetDefault("mining.mode", string(DefaultRuleMode))
	v.SetDefault("mining.counting", string(DefaultCounting))
}

// LoadMiningConfig reads the mining thresholds from v and validates them.
func LoadMiningConfig(v *viper.Viper) (mining.Config, error) {
	SetMiningDefaults(v)

	cfg := mining.Config{
		MinSupport: v.GetFloat64("mining.min_support"),
		Counting:   mining.Counting(v.GetString("mining.counting")),
		RuleConfig: mining.RuleConfig{
			Mode:          mining.RuleMode(v.GetString("mining.mode")),
			MinConfidence: v.GetFloat64("mining.min_confidence"),
			MinLift:       v.GetFloat64("mining.min_lift"),
			MinLength:     v.GetInt("mining.min_length"),
			MaxLength:     v.GetInt("mining.max_length"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return mining.Config{}, fmt.Errorf("mining configuration: %w", err)
	}
	return cfg, nil
}
