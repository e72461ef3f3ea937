package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Trigger kinds accepted by inventory.trigger.
const (
	TriggerCommand = "command"
	TriggerFolders = "folders"
	TriggerNone    = "none"
)

// Paths contains file and directory locations.
type Paths struct {
	CatalogDB     string `toml:"catalog_db"`
	InventoryFile string `toml:"inventory_file"`
	LogDir        string `toml:"log_dir"`
}

// Matching contains the match resolver settings.
type Matching struct {
	// FuzzyThreshold is the minimum averaged partial-ratio score (0-100) for a
	// fuzzy candidate. Default: 85
	FuzzyThreshold int `toml:"fuzzy_threshold"`
}

// Inventory contains settings for producing and reading the local listing.
type Inventory struct {
	StabilizationTimeout int      `toml:"stabilization_timeout"`
	PollIntervalMS       int      `toml:"poll_interval_ms"`
	Trigger              string   `toml:"trigger"`
	TriggerCommand       []string `toml:"trigger_command"`
	MusicRoot            string   `toml:"music_root"`
	RemoveStale          bool     `toml:"remove_stale"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for albumcheck.
//
// Configuration sections:
//   - Paths: catalog database, inventory listing, and log directory
//   - Matching: fuzzy threshold
//   - Inventory: stabilization wait and listing trigger
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Matching  Matching  `toml:"matching"`
	Inventory Inventory `toml:"inventory"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/albumcheck/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("albumcheck.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory. The inventory directory is
// created on a best-effort basis because it usually lives on shared storage
// owned by the listing producer.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
		}
	}
	if strings.TrimSpace(c.Paths.InventoryFile) != "" {
		// Best-effort; shared storage may be unmounted.
		_ = os.MkdirAll(filepath.Dir(c.Paths.InventoryFile), 0o755)
	}
	return nil
}

// StabilizationTimeout returns the listing wait budget.
func (c *Config) StabilizationTimeout() time.Duration {
	return time.Duration(c.Inventory.StabilizationTimeout) * time.Second
}

// PollInterval returns the delay between listing size checks.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Inventory.PollIntervalMS) * time.Millisecond
}

// LockPath returns the advisory lock guarding a reconciliation run.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "albumcheck.lock")
}

// LogPath returns the log file written alongside console output.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "albumcheck.log")
}

// TriggerBinary returns the executable the command trigger runs, or "" when
// no external command is involved.
func (c *Config) TriggerBinary() string {
	if c.Inventory.Trigger != TriggerCommand || len(c.Inventory.TriggerCommand) == 0 {
		return ""
	}
	return c.Inventory.TriggerCommand[0]
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
