package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./resources/storage_data", cfg.StorageDataPath)
	assert.Equal(t, "./resources/indexes", cfg.IndexSourcePath)
	assert.Equal(t, "uni", cfg.UnidicDict)
	assert.InDelta(t, 0.04, cfg.NativeThreshold, 1e-9)
	assert.InDelta(t, 0.05, cfg.NameThreshold, 1e-9)
	assert.InDelta(t, 0.4, cfg.ForeignThreshold, 1e-9)
	assert.Equal(t, 50, cfg.RomajiFallbackMax)
	assert.Equal(t, "./resources/storage_data/jotoba.db", cfg.DatabasePath())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JOTOBA_STORAGE_DATA", "/data")
	t.Setenv("JOTOBA_UNIDIC_DICT", "ipa")
	t.Setenv("JOTOBA_CONCURRENCY", "100")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data", cfg.StorageDataPath)
	assert.Equal(t, "ipa", cfg.UnidicDict)
	// Concurrency is clamped to a safe range.
	assert.Equal(t, 32, cfg.Concurrency)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("JOTOBA_NATIVE_THRESHOLD", "2.0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JOTOBA_NATIVE_THRESHOLD", "0.04")
	t.Setenv("JOTOBA_UNIDIC_DICT", "mecab")
	_, err = Load()
	assert.Error(t, err)
}
