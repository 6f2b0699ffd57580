package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultCatalogURL, cfg.CatalogURL)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout())
	assert.Equal(t, DefaultDownloadTimeout, cfg.DownloadTimeout())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Update.Enabled)
	assert.Equal(t, filepath.Join(dir, "mcl", "mcl.json"), cfg.Path())
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcl.json")
	installDir := filepath.Join(dir, "launcher")

	content := `{
  "install_dir": "` + filepath.ToSlash(installDir) + `",
  "catalog_url": "http://localhost:9999/catalog",
  "http_timeout_seconds": 5,
  "search_paths": ["/opt/java", "/opt/java", " "],
  "update": {"enabled": false, "last_check": "2026-01-02T03:04:05Z"}
}`
	// UTF-8 BOM written by some editors must be tolerated
	require.NoError(t, os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, content...), 0o644))

	t.Setenv("MCL_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean(installDir), cfg.InstallDir)
	assert.Equal(t, filepath.Join(filepath.Clean(installDir), "java"), cfg.JavaDir())
	assert.Equal(t, "http://localhost:9999/catalog", cfg.CatalogURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{filepath.Clean("/opt/java")}, cfg.SearchPaths)
	assert.False(t, cfg.Update.Enabled)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), cfg.Update.LastCheck.UTC())
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcl.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mcl.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.AddSearchPath("/srv/runtimes")
	cfg.Update.SkipVersion = "1.2.3"
	require.NoError(t, cfg.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.HasSearchPath("/srv/runtimes"))
	assert.Equal(t, "1.2.3", loaded.Update.SkipVersion)
}

func TestSearchPathHelpers(t *testing.T) {
	cfg := Default()

	cfg.AddSearchPath("/a")
	cfg.AddSearchPath("/A")
	cfg.AddSearchPath("  ")
	cfg.AddSearchPath("/b")
	assert.Len(t, cfg.SearchPaths, 2)

	cfg.RemoveSearchPath("/a")
	assert.False(t, cfg.HasSearchPath("/a"))
	assert.True(t, cfg.HasSearchPath("/b"))
}

func TestTimeoutFallbacks(t *testing.T) {
	cfg := &Config{HTTPTimeoutSeconds: -1}
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout())
	assert.Equal(t, DefaultDownloadTimeout, cfg.DownloadTimeout())
}
