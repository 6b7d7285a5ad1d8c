package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReturnsDefaultWhenFileIsAbsent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyFieldsPresentInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`log-level = "debug"`+"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Default().HierarchyFile, cfg.HierarchyFile, "an absent hierarchy-file key should keep the default")
	assert.True(t, cfg.NonNullableByDefault, "an absent non-nullable-by-default key should keep Default()'s true, not fall to bool's zero value")
}

func TestLoadExplicitFalseOverridesTheDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`non-nullable-by-default = false`+"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.NonNullableByDefault, "an explicit false in the file must still override the default")
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`log-level = "verbose"`+"\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadAcceptsFullySpecifiedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	contents := `
non-nullable-by-default = false
log-level = "warn"
hierarchy-file = "custom.yaml"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		NonNullableByDefault: false,
		LogLevel:              "warn",
		HierarchyFile:          "custom.yaml",
	}, cfg)
}
