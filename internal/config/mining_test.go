package config

import (
	"testing"

	"github.com/Veraticus/basket/internal/mining"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMiningConfig_Defaults(t *testing.T) {
	cfg, err := LoadMiningConfig(viper.New())
	require.NoError(t, err)

	assert.InDelta(t, 0.0008, cfg.MinSupport, 1e-12)
	assert.InDelta(t, 0.0008, cfg.MinConfidence, 1e-12)
	assert.InDelta(t, 1.0, cfg.MinLift, 1e-12)
	assert.Equal(t, 3, cfg.MinLength)
	assert.Equal(t, 3, cfg.MaxLength)
	assert.Equal(t, mining.RuleModeUniform, cfg.Mode)
	assert.Equal(t, mining.CountingBitmap, cfg.Counting)
}

func TestLoadMiningConfig_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("mining.min_support", 0.5)
	v.Set("mining.min_confidence", 0.1)
	v.Set("mining.min_lift", 0)
	v.Set("mining.min_length", 2)
	v.Set("mining.max_length", 4)
	v.Set("mining.mode", "classic")
	v.Set("mining.counting", "scan")

	cfg, err := LoadMiningConfig(v)
	require.NoError(t, err)

	assert.Equal(t, mining.Config{
		MinSupport: 0.5,
		Counting:   mining.CountingScan,
		RuleConfig: mining.RuleConfig{
			Mode:          mining.RuleModeClassic,
			MinConfidence: 0.1,
			MinLift:       0,
			MinLength:     2,
			MaxLength:     4,
		},
	}, cfg)
}

func TestLoadMiningConfig_Invalid(t *testing.T) {
	tests := []struct {
		value any
		name  string
		key   string
	}{
		{name: "zero support", key: "mining.min_support", value: 0},
		{name: "support above one", key: "mining.min_support", value: 1.5},
		{name: "negative confidence", key: "mining.min_confidence", value: -0.1},
		{name: "inverted lengths", key: "mining.min_length", value: 5},
		{name: "unknown mode", key: "mining.mode", value: "greedy"},
		{name: "unknown counting", key: "mining.counting", value: "gpu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := LoadMiningConfig(v)
			require.ErrorIs(t, err, mining.ErrInvalidConfig)
		})
	}
}
