package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5, cfg.DefaultPriority)
	assert.Empty(t, cfg.Priorities)
	assert.Empty(t, cfg.Disabled)
}

func TestPriorityFor(t *testing.T) {
	cfg := Config{Priorities: map[string]int{"db.Conn#primary": 1}}

	assert.Equal(t, 1, cfg.PriorityFor("db.Conn#primary", 5))
	assert.Equal(t, 5, cfg.PriorityFor("db.Conn#replica", 5))
}

func TestIsDisabled(t *testing.T) {
	cfg := Config{Disabled: []string{"debug.Probe"}}

	assert.True(t, cfg.IsDisabled("debug.Probe"))
	assert.False(t, cfg.IsDisabled("db.Conn"))
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
default_priority: 3
priorities:
  "db.Conn#primary": 1
  "cache.Store": 2
disabled:
  - "debug.Probe"
`)
	cfg, err := FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.DefaultPriority)
	assert.Equal(t, 1, cfg.Priorities["db.Conn#primary"])
	assert.Equal(t, 2, cfg.Priorities["cache.Store"])
	assert.Equal(t, []string{"debug.Probe"}, cfg.Disabled)
}

func TestFromYAMLPartialKeepsDefaults(t *testing.T) {
	cfg, err := FromYAML([]byte(`priorities: {"x.Y": 1}`))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.DefaultPriority, "omitted fields keep defaults")
	assert.Equal(t, 1, cfg.Priorities["x.Y"])
}

func TestFromYAMLInvalid(t *testing.T) {
	_, err := FromYAML([]byte("{not yaml"))
	assert.Error(t, err)
}

func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"default_priority": 7,
		"priorities": {"db.Conn": 0},
		"disabled": ["x.Y"]
	}`)
	cfg, err := FromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.DefaultPriority)
	assert.Equal(t, 0, cfg.Priorities["db.Conn"])
	assert.Equal(t, []string{"x.Y"}, cfg.Disabled)
}

func TestFromJSONInvalid(t *testing.T) {
	_, err := FromJSON([]byte("{"))
	assert.Error(t, err)
}

func TestFromFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoreg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_priority: 9"), 0o644))

	cfg, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.DefaultPriority)
}

func TestFromFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoreg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"default_priority": 2}`), 0o644))

	cfg, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.DefaultPriority)
}

func TestFromFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoreg.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))

	_, err := FromFile(path)
	assert.ErrorContains(t, err, "unsupported config file extension")
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
