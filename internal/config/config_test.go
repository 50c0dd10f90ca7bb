package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvHistoryDB, "")
	t.Setenv(EnvImageTimeoutMs, "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	def := Defaults()
	assert.Equal(t, def.Report, cfg.Report)
	assert.Equal(t, 10*time.Second, cfg.Print.ImageTimeout())
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "history.db", filepath.Base(cfg.History.Path))
}

func TestLoadFrom_FileMergesOverDefaults(t *testing.T) {
	t.Setenv(EnvHistoryDB, "")
	t.Setenv(EnvImageTimeoutMs, "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
report:
  organisation: Harbour Marine
print:
  image_timeout_ms: 2500
history:
  enabled: false
  path: /var/lib/bfmp/history.db
`), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "Harbour Marine", cfg.Report.Organisation)
	assert.Equal(t, "2 January 2006", cfg.Report.DateLayout)
	assert.Equal(t, 2500*time.Millisecond, cfg.Print.ImageTimeout())
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "/var/lib/bfmp/history.db", cfg.History.Path)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("print:\n  image_timeout_ms: 2500\n"), 0o644))
	t.Setenv(EnvImageTimeoutMs, "400")
	t.Setenv(EnvHistoryDB, "/tmp/override.db")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Print.ImageTimeoutMs)
	assert.Equal(t, "/tmp/override.db", cfg.History.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, EnvHistoryDB, EnvOverrideFor("history.path"))
	assert.Equal(t, "", EnvOverrideFor("report.organisation"))
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report: [unclosed"), 0o644))

	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvHistoryDB, "")
	t.Setenv(EnvImageTimeoutMs, "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Defaults()
	cfg.Report.DateLayout = "02 Jan 2006"
	cfg.History.Path = "/data/h.db"
	require.NoError(t, Save(path, cfg))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "02 Jan 2006", loaded.Report.DateLayout)
	assert.Equal(t, "/data/h.db", loaded.History.Path)
	assert.True(t, loaded.History.Enabled)
}
