package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"fotosort/internal/config"
	"fotosort/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

const (
	validYAML = `
slots: [keep, family, work, maybe, trash]
settings:
  default_mode: Move
  collision: skip
  watch: true
filter:
  include: ["*.{jpg,jpeg,png}"]
  exclude: ["._*"]
theme:
  name: dark
`
	partialYAML = `
settings:
  collision: overwrite
`
	invalidSyntaxYAML = `
slots: [fs1, fs2
settings:
  default_mode: "copy
`
	invalidCollisionYAML = `
settings:
  collision: "delete"
`
	invalidModeYAML = `
settings:
  default_mode: "link"
`
	shortSlotsYAML = `
slots: [a, b, c]
`
	duplicateSlotsYAML = `
slots: [a, b, c, ./a, e]
`
	badGlobYAML = `
filter:
  include: ["[abc"]
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
		require.NoError(t, err)

		assert.Equal(t, []string{"keep", "family", "work", "maybe", "trash"}, cfg.Slots)
		assert.Equal(t, config.ModeMove, cfg.Settings.DefaultMode)
		assert.True(t, cfg.MoveByDefault())
		assert.Equal(t, config.CollisionSkip, cfg.Settings.Collision)
		assert.True(t, cfg.Settings.Watch)
		assert.True(t, cfg.Settings.CreateDirs, "unset keys keep their defaults")
		assert.Equal(t, []string{"*.{jpg,jpeg,png}"}, cfg.Filter.Include)
		assert.Equal(t, "dark", cfg.Theme.Name)
		assert.Equal(t, config.GetTheme("dark")["primary"], cfg.Theme.Primary)
	})

	t.Run("partial config keeps defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, partialYAML))
		require.NoError(t, err)

		defaults := config.New()
		assert.Equal(t, defaults.Slots, cfg.Slots)
		assert.Equal(t, config.ModeCopy, cfg.Settings.DefaultMode)
		assert.Equal(t, config.CollisionOverwrite, cfg.Settings.Collision)
		assert.Equal(t, "default", cfg.Theme.Name)
		assert.NotEmpty(t, cfg.Theme.Primary)
	})

	t.Run("load non-existent file", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "does_not_exist.yaml"))
		require.NoError(t, err, "missing file falls back to defaults")

		defaults := config.New()
		assert.Equal(t, defaults.Slots, cfg.Slots)
		assert.Equal(t, defaults.Settings, cfg.Settings)
	})

	t.Run("invalid YAML syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
	})

	invalid := []struct {
		name    string
		content string
		message string
	}{
		{"collision", invalidCollisionYAML, "invalid collision setting"},
		{"mode", invalidModeYAML, "invalid default mode"},
		{"short slots", shortSlotsYAML, "expected 5 slots"},
		{"duplicate slots", duplicateSlotsYAML, "same folder as slot 1"},
		{"bad glob", badGlobYAML, "invalid filter pattern"},
	}
	for _, tt := range invalid {
		t.Run("invalid "+tt.name, func(t *testing.T) {
			_, err := config.LoadConfigFile(createTestYAML(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), tt.message)
			assert.True(t, errors.IsInvalidConfig(err))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"fs1", "fs2", "fs3", "fs4", "fs5"}, cfg.Slots)
	assert.Equal(t, config.ModeCopy, cfg.Settings.DefaultMode)
	assert.False(t, cfg.MoveByDefault())
	assert.Equal(t, config.CollisionRename, cfg.Settings.Collision)
	assert.True(t, cfg.Settings.CreateDirs)
}

func TestValidateDestinationRoot(t *testing.T) {
	tmp := t.TempDir()

	cfg := config.NewTestConfig(filepath.Join(tmp, "later"))
	assert.NoError(t, cfg.Validate(), "missing root is fine when create_dirs is set")

	cfg.Settings.CreateDirs = false
	assert.ErrorContains(t, cfg.Validate(), "create_dirs is false")

	file := filepath.Join(tmp, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	cfg = config.NewTestConfig(file)
	assert.ErrorContains(t, cfg.Validate(), "not a directory")

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestSlotDir(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.NewTestConfig(tmp)

	dir, err := cfg.SlotDir(3)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "fs3"), dir)

	abs := filepath.Join(tmp, "elsewhere")
	cfg.Slots[4] = abs
	dir, err = cfg.SlotDir(5)
	require.NoError(t, err)
	assert.Equal(t, abs, dir)

	for _, n := range []int{0, 6, -1} {
		_, err := cfg.SlotDir(n)
		assert.ErrorIs(t, err, errors.ErrInvalidSlot)
	}
}

func TestThemes(t *testing.T) {
	for _, name := range config.ListThemes() {
		theme := config.GetTheme(name)
		assert.NotEmpty(t, theme["primary"], name)
	}
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("nope"))

	cfg := config.New()
	cfg.ApplyTheme("light")
	assert.Equal(t, "light", cfg.Theme.Name)
	assert.Equal(t, config.GetTheme("light")["border"], cfg.Theme.Border)
}
