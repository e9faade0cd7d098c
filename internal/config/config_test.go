package config

import (
	"testing"

	"edakit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"SIGNIFICANCE_LEVEL", "LARGE_SAMPLE_THRESHOLD", "MIN_EXPECTED_COUNT",
		"DATABASE_URL", "PORT", "GIN_MODE", "SWEEP_CONCURRENCY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Engine.SignificanceLevel)
	assert.Equal(t, 5000, cfg.Engine.LargeSampleThreshold)
	assert.Equal(t, 5.0, cfg.Engine.MinExpectedCount)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, 4, cfg.Sweep.Concurrency)
	assert.Error(t, cfg.RequireDatabase())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SIGNIFICANCE_LEVEL", "0.01")
	t.Setenv("LARGE_SAMPLE_THRESHOLD", "200")
	t.Setenv("DATABASE_URL", "postgres://localhost/clinic")
	t.Setenv("SWEEP_CONCURRENCY", "8")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Engine.SignificanceLevel)
	assert.Equal(t, 200, cfg.Engine.LargeSampleThreshold)
	assert.Equal(t, 8, cfg.Sweep.Concurrency)
	assert.NoError(t, cfg.RequireDatabase())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"SIGNIFICANCE_LEVEL":     "1.5",
		"LARGE_SAMPLE_THRESHOLD": "lots",
		"MIN_EXPECTED_COUNT":     "-1",
		"SWEEP_CONCURRENCY":      "0",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoad_ThresholdAboveShapiroLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("LARGE_SAMPLE_THRESHOLD", "6000")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
	assert.Contains(t, err.Error(), "at most 5000")

	clearEnv(t)
	t.Setenv("LARGE_SAMPLE_THRESHOLD", "5000")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Engine.LargeSampleThreshold)
}
