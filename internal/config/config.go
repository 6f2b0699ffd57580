package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultCatalogURL is the Azul metadata endpoint used to look up JRE packages
	DefaultCatalogURL = "https://api.azul.com/metadata/v1/zulu/packages/"

	// DefaultHTTPTimeout bounds catalog queries
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultDownloadTimeout bounds the archive download
	DefaultDownloadTimeout = 300 * time.Second

	// MaxRetries and RetryDelay are declared for the download and catalog paths.
	// Neither path consults them yet.
	MaxRetries = 3
	RetryDelay = 2 * time.Second

	// DefaultUpdateRepository is where release binaries are published
	DefaultUpdateRepository = "mcl-launcher/mcl"

	envPrefix = "MCL"
)

// Config holds the application configuration
type Config struct {
	InstallDir             string       `mapstructure:"install_dir" json:"install_dir"`                           // Root of everything mcl installs
	CatalogURL             string       `mapstructure:"catalog_url" json:"catalog_url"`                           // Runtime package catalog endpoint
	HTTPTimeoutSeconds     int          `mapstructure:"http_timeout_seconds" json:"http_timeout_seconds"`         // Catalog request timeout
	DownloadTimeoutSeconds int          `mapstructure:"download_timeout_seconds" json:"download_timeout_seconds"` // Archive download timeout
	LogLevel               string       `mapstructure:"log_level" json:"log_level"`                               // debug, info, warn, error
	LogFormat              string       `mapstructure:"log_format" json:"log_format"`                             // console or json
	UXPauses               bool         `mapstructure:"ux_pauses" json:"ux_pauses"`                               // Short pauses at the end of an install
	SearchPaths            []string     `mapstructure:"search_paths" json:"search_paths"`                         // Extra directories to scan for runtimes
	Update                 UpdateConfig `mapstructure:"update" json:"update"`                                     // Self-update configuration
	configPath             string
}

// UpdateConfig holds settings for the self-update feature
type UpdateConfig struct {
	Enabled     bool      `mapstructure:"enabled" json:"enabled"`           // Master toggle for update functionality
	AutoCheck   bool      `mapstructure:"auto_check" json:"auto_check"`     // Check for updates on startup
	LastCheck   time.Time `mapstructure:"last_check" json:"last_check"`     // Last time update check was performed
	SkipVersion string    `mapstructure:"skip_version" json:"skip_version"` // Version user chose to skip
	Repository  string    `mapstructure:"repository" json:"repository"`     // GitHub owner/name releases are fetched from
}

// Default returns the configuration used when no file or environment overrides exist
func Default() *Config {
	return &Config{
		InstallDir:             defaultInstallDir(),
		CatalogURL:             DefaultCatalogURL,
		HTTPTimeoutSeconds:     int(DefaultHTTPTimeout / time.Second),
		DownloadTimeoutSeconds: int(DefaultDownloadTimeout / time.Second),
		LogLevel:               "info",
		LogFormat:              "console",
		UXPauses:               true,
		SearchPaths:            make([]string, 0),
		Update: UpdateConfig{
			Enabled:    true,
			AutoCheck:  true,
			Repository: DefaultUpdateRepository,
		},
		configPath: getConfigPath(),
	}
}

// Load reads the configuration file at path (or the default location when empty)
// and applies MCL_* environment overrides on top of it
func Load(path string) (*Config, error) {
	if path == "" {
		path = getConfigPath()
	}

	cfg := Default()
	v := viper.New()
	setDefaults(v, cfg)

	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Remove BOM if present (UTF-8 BOM is EF BB BF)
		data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file yet, defaults and environment only
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hooks); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	expanded, err := homedir.Expand(strings.TrimSpace(cfg.InstallDir))
	if err != nil {
		return nil, fmt.Errorf("invalid install_dir %q: %w", cfg.InstallDir, err)
	}
	cfg.InstallDir = filepath.Clean(expanded)
	cfg.SearchPaths = cleanPaths(cfg.SearchPaths)
	cfg.configPath = path

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("install_dir", cfg.InstallDir)
	v.SetDefault("catalog_url", cfg.CatalogURL)
	v.SetDefault("http_timeout_seconds", cfg.HTTPTimeoutSeconds)
	v.SetDefault("download_timeout_seconds", cfg.DownloadTimeoutSeconds)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("ux_pauses", cfg.UXPauses)
	v.SetDefault("search_paths", cfg.SearchPaths)
	v.SetDefault("update.enabled", cfg.Update.Enabled)
	v.SetDefault("update.auto_check", cfg.Update.AutoCheck)
	v.SetDefault("update.last_check", cfg.Update.LastCheck)
	v.SetDefault("update.skip_version", cfg.Update.SkipVersion)
	v.SetDefault("update.repository", cfg.Update.Repository)
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	// Ensure config directory exists
	configDir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.configPath, data, 0644)
}

// Path returns the file the configuration is loaded from and saved to
func (c *Config) Path() string {
	return c.configPath
}

// JavaDir is the directory runtimes are installed under
func (c *Config) JavaDir() string {
	return filepath.Join(c.InstallDir, "java")
}

// HTTPTimeout returns the catalog timeout, falling back to the default for non-positive values
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return DefaultHTTPTimeout
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// DownloadTimeout returns the download timeout, falling back to the default for non-positive values
func (c *Config) DownloadTimeout() time.Duration {
	if c.DownloadTimeoutSeconds <= 0 {
		return DefaultDownloadTimeout
	}
	return time.Duration(c.DownloadTimeoutSeconds) * time.Second
}

// AddSearchPath adds a search path for runtime detection
func (c *Config) AddSearchPath(path string) {
	path = filepath.Clean(strings.TrimSpace(path))
	if path == "" || path == "." {
		return
	}

	if c.HasSearchPath(path) {
		return
	}

	c.SearchPaths = append(c.SearchPaths, path)
}

// RemoveSearchPath removes a search path
func (c *Config) RemoveSearchPath(path string) {
	path = filepath.Clean(path)

	for i, p := range c.SearchPaths {
		if strings.EqualFold(p, path) {
			c.SearchPaths = append(c.SearchPaths[:i], c.SearchPaths[i+1:]...)
			return
		}
	}
}

// HasSearchPath checks if a path exists in search paths
func (c *Config) HasSearchPath(path string) bool {
	path = filepath.Clean(path)

	for _, p := range c.SearchPaths {
		if strings.EqualFold(p, path) {
			return true
		}
	}
	return false
}

// cleanPaths drops empty entries and case-insensitive duplicates
func cleanPaths(paths []string) []string {
	cleaned := make([]string, 0, len(paths))
	seen := make(map[string]bool)
	for _, p := range paths {
		p = filepath.Clean(strings.TrimSpace(p))
		if p == "" || p == "." {
			continue
		}
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, p)
	}
	return cleaned
}

func defaultInstallDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".mcl")
}

// getConfigPath returns the path to the configuration file
// Following XDG Base Directory specification
func getConfigPath() string {
	// Try XDG_CONFIG_HOME first (standard on Unix systems)
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome != "" {
		return filepath.Join(configHome, "mcl", "mcl.json")
	}

	// Fallback to $HOME/.config/mcl/mcl.json (XDG default)
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return filepath.Join(homeDir, ".config", "mcl", "mcl.json")
}
