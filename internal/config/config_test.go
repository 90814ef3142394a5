package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriversReadBackWhatTheyWrite(t *testing.T) {
	cfg := Config{
		Title:           "demo",
		Class:           "demo-class",
		Width:           640,
		Height:          480,
		Font:            "6x13",
		CacheAtoms:      false,
		ProbeIntervalMS: 100,
	}

	for _, name := range []string{"config.yaml", "config.yml", "config.json", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			driver, err := NewDriver(filepath.Join(t.TempDir(), name))
			require.NoError(t, err)

			exists, err := driver.Exists()
			require.NoError(t, err)
			assert.False(t, exists)

			require.NoError(t, driver.Write(cfg))

			exists, err = driver.Exists()
			require.NoError(t, err)
			assert.True(t, exists)

			got, err := driver.Read()
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestNewDriverUnsupported(t *testing.T) {
	_, err := NewDriver("config.ini")
	assert.Error(t, err)
}

func TestNewStoreWritesDefaults(t *testing.T) {
	driver := NewYAML(filepath.Join(t.TempDir(), "config.yaml"))

	store, err := NewStore(driver)
	require.NoError(t, err)

	exists, err := driver.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	cfg, err := store.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestStoreNormalizesZeroFields(t *testing.T) {
	driver := NewJSON(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, driver.Write(Config{Title: "custom"}))

	store, err := NewStore(driver)
	require.NoError(t, err)

	cfg, err := store.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Title)
	assert.Equal(t, Default().Width, cfg.Width)
	assert.Equal(t, Default().Font, cfg.Font)
	assert.Equal(t, Default().ProbeIntervalMS, cfg.ProbeIntervalMS)
	assert.False(t, cfg.CacheAtoms)
}

func TestStoreMissingKeysKeepDefaults(t *testing.T) {
	for name, content := range map[string]string{
		"config.yaml": "title: hi\n",
		"config.json": `{"title": "hi"}`,
		"config.toml": "title = \"hi\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			filePath := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(filePath, []byte(content), 0600))

			driver, err := NewDriver(filePath)
			require.NoError(t, err)
			store, err := NewStore(driver)
			require.NoError(t, err)

			cfg, err := store.GetConfig()
			require.NoError(t, err)
			assert.Equal(t, "hi", cfg.Title)
			assert.True(t, cfg.CacheAtoms)
			assert.Equal(t, Default().ProbeIntervalMS, cfg.ProbeIntervalMS)
		})
	}
}

func TestStoreExplicitFalseCacheAtoms(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(filePath, []byte("cache_atoms: false\n"), 0600))

	store, err := NewStore(NewYAML(filePath))
	require.NoError(t, err)

	cfg, err := store.GetConfig()
	require.NoError(t, err)
	assert.False(t, cfg.CacheAtoms)
	assert.Equal(t, Default().Title, cfg.Title)
}
