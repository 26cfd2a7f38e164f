// Package config loads vn configuration from layered JSONC files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/vnext/internal/fs"
	"github.com/calvinalkan/vnext/pkg/version"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Kind        string `json:"kind,omitempty"`
	Width       int    `json:"width,omitempty"`
	BaseName    string `json:"base_name,omitempty"`
	Ext         string `json:"ext,omitempty"`
	LockTimeout string `json:"lock_timeout,omitempty"`
	MaxAttempts int    `json:"max_attempts,omitempty"`

	// Resolved (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Kind:        version.KindFile.String(),
		Width:       version.DefaultWidth,
		BaseName:    version.DefaultBase,
		Ext:         version.DefaultExt,
		LockTimeout: version.DefaultLockTimeout.String(),
		MaxAttempts: version.DefaultMaxAttempts,
	}
}

// FileName is the project config file name.
const FileName = ".vn.json"

// globalPath returns $XDG_CONFIG_HOME/vn/config.json, falling back to
// ~/.config/vn/config.json. Empty if neither variable is set.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "vn", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "vn", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Overrides       Config            // CLI flag values; zero fields mean "not set"
	Env             map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/vn/config.json or $XDG_CONFIG_HOME/vn/config.json)
// 3. Project config file in the working directory (.vn.json, if exists)
// 4. Explicit config file via ConfigPath (replaces 3, must exist)
// 5. CLI overrides.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
	}

	cfg := Default()

	if path := globalPath(input.Env); path != "" {
		globalCfg, loaded, err := loadFile(path, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = path
			cfg = merge(cfg, globalCfg)
		}
	}

	projectCfg, projectPath, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	cfg = merge(cfg, input.Overrides)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	return cfg, nil
}

// loadProject loads .vn.json from workDir, or the explicit configPath.
func loadProject(workDir, configPath string) (Config, string, error) {
	if configPath == "" {
		path := filepath.Join(workDir, FileName)

		cfg, loaded, err := loadFile(path, false)
		if err != nil || !loaded {
			return Config{}, "", err
		}

		return cfg, path, nil
	}

	path := configPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	if _, err := os.Stat(path); err != nil {
		return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
	}

	cfg, _, err := loadFile(path, true)
	if err != nil {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadFile reads and parses a config file. A missing optional file returns
// loaded=false and no error.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

// Parse decodes JSONC (comments and trailing commas allowed). A base_name
// set explicitly to "" is rejected rather than silently ignored.
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	if val, exists := raw["base_name"]; exists {
		if str, ok := val.(string); ok && str == "" {
			return Config{}, ErrBaseNameEmpty
		}
	}

	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.Kind != "" {
		base.Kind = overlay.Kind
	}

	if overlay.Width != 0 {
		base.Width = overlay.Width
	}

	if overlay.BaseName != "" {
		base.BaseName = overlay.BaseName
	}

	if overlay.Ext != "" {
		base.Ext = overlay.Ext
	}

	if overlay.LockTimeout != "" {
		base.LockTimeout = overlay.LockTimeout
	}

	if overlay.MaxAttempts != 0 {
		base.MaxAttempts = overlay.MaxAttempts
	}

	return base
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := version.ParseKind(c.Kind); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidKind, c.Kind)
	}

	if c.Width < 1 || c.Width > version.MaxWidth {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrWidthOutOfRange, c.Width, version.MaxWidth)
	}

	if c.BaseName == "" {
		return ErrBaseNameEmpty
	}

	if d, err := time.ParseDuration(c.LockTimeout); err != nil || d <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidLockTimeout, c.LockTimeout)
	}

	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxAttempts, c.MaxAttempts)
	}

	return nil
}

// Scheme builds the version scheme for kind ("" means the configured kind).
func (c Config) Scheme(kind string, fsys fs.FS) (version.Scheme, error) {
	if kind == "" {
		kind = c.Kind
	}

	k, err := version.ParseKind(kind)
	if err != nil {
		return version.Scheme{}, err
	}

	return version.Scheme{
		Kind:        k,
		Width:       c.Width,
		DefaultBase: c.BaseName,
		DefaultExt:  c.Ext,
		FS:          fsys,
	}, nil
}

// Reserver builds a reserver for s using the configured limits. Call only
// on a validated Config.
func (c Config) Reserver(s version.Scheme) *version.Reserver {
	timeout, _ := time.ParseDuration(c.LockTimeout)

	return &version.Reserver{
		Scheme:      s,
		LockTimeout: timeout,
		MaxAttempts: c.MaxAttempts,
	}
}

// Format renders the serializable fields as indented JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
