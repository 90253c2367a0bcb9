// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/slashdrop/internal/util"
)

// HomeEnv overrides the configuration directory.
const HomeEnv = "SLASHDROP_HOME"

// DefaultTemplates is the template configuration used when none is set.
const DefaultTemplates = `[
  {
    "trigger": "/snippet",
    "templates": [
      {"label": "Greeting", "text": "Hello there!"},
      {"label": "Sign-off", "text": "Kind regards,\nThe team"}
    ]
  }
]`

// Composer modes for ui.mode.
const (
	ModePlain = "plain"
	ModeRich  = "rich"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete slashdrop configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Templates TemplatesConfig `toml:"templates" json:"templates"`
	Access    AccessConfig    `toml:"access" json:"access"`
	UI        UIConfig        `toml:"ui" json:"ui"`
	Log       LogConfig       `toml:"log" json:"log"`
}

// TemplatesConfig says where trigger and template definitions come from.
type TemplatesConfig struct {
	// Raw is the JSON template configuration text.
	Raw string `toml:"raw" json:"raw"`
	// File, when set, is read instead of Raw.
	File string `toml:"file" json:"file"`
	// Watch re-reads File whenever it changes on disk.
	Watch bool `toml:"watch" json:"watch"`
}

// AccessConfig holds the group allow-list and the user's groups.
// Both are delimited integer lists such as "1|4|7".
type AccessConfig struct {
	AllowedGroups string `toml:"allowed_groups" json:"allowed_groups"`
	UserGroups    string `toml:"user_groups" json:"user_groups"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// Mode is the composer that starts focused: "plain" or "rich"
	Mode string `toml:"mode" json:"mode"`
	// MenuWidth is the outer width of the template menu
	MenuWidth int `toml:"menu_width" json:"menu_width"`
	// MaxVisible is the number of menu rows shown before scrolling
	MaxVisible int `toml:"max_visible" json:"max_visible"`
	// Preview shows the selected template below the menu items
	Preview bool `toml:"preview" json:"preview"`
	// Mouse enables click handling
	Mouse bool `toml:"mouse" json:"mouse"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
	// File is the log path; empty means slashdrop.log in the config dir
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Templates: TemplatesConfig{
			Raw: DefaultTemplates,
		},
		UI: UIConfig{
			Theme:      "auto",
			Mode:       ModePlain,
			MenuWidth:  44,
			MaxVisible: 8,
			Preview:    true,
			Mouse:      true,
		},
		Log: LogConfig{
			Enabled: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the slashdrop configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".slashdrop"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogPath returns the diagnostic log path.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "slashdrop.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	for _, candidate := range []struct {
		path func() (string, error)
		load func(*Config, string) error
		kind string
	}{
		{ConfigPathTOML, LoadTOML, "TOML"},
		{ConfigPathJSON, LoadJSON, "JSON"},
	} {
		path, err := candidate.path()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		if err := candidate.load(cfg, path); err != nil {
			loadErr = fmt.Errorf("failed to load %s config: %w", candidate.kind, err)
			cfg = Default()
			continue
		}
		return finish(cfg)
	}

	cfg, err := finish(cfg)
	if err != nil {
		return nil, err
	}
	// Defaults, with any load error for informational purposes
	return cfg, loadErr
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := fillDefaults(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = defaults.UI.Mode
	}
	if cfg.UI.MenuWidth == 0 {
		cfg.UI.MenuWidth = defaults.UI.MenuWidth
	}
	if cfg.UI.MaxVisible == 0 {
		cfg.UI.MaxVisible = defaults.UI.MaxVisible
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# slashdrop configuration file")
	fmt.Fprintln(&buf, "# Generated by slashdrop - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors. Template
// text is deliberately not validated here: a broken template setting only
// disables matching, it never stops the program.
func (c *Config) Validate() error {
	var errs ValidateErrors

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	validModes := map[string]bool{ModePlain: true, ModeRich: true}
	if !validModes[strings.ToLower(c.UI.Mode)] {
		errs = append(errs, ValidationError{
			Field:   "ui.mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: plain, rich", c.UI.Mode),
		})
	}

	if c.UI.MenuWidth < 16 || c.UI.MenuWidth > 200 {
		errs = append(errs, ValidationError{
			Field:   "ui.menu_width",
			Message: fmt.Sprintf("must be between 16 and 200, got %d", c.UI.MenuWidth),
		})
	}

	if c.UI.MaxVisible < 1 || c.UI.MaxVisible > 50 {
		errs = append(errs, ValidationError{
			Field:   "ui.max_visible",
			Message: fmt.Sprintf("must be between 1 and 50, got %d", c.UI.MaxVisible),
		})
	}

	if c.Templates.Watch && c.Templates.File == "" {
		errs = append(errs, ValidationError{
			Field:   "templates.watch",
			Message: "requires templates.file",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - SLASHDROP_TEMPLATES: overrides templates.raw
//   - SLASHDROP_TEMPLATES_FILE: overrides templates.file
//   - SLASHDROP_ALLOWED_GROUPS: overrides access.allowed_groups
//   - SLASHDROP_USER_GROUPS: overrides access.user_groups
//   - SLASHDROP_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if raw := os.Getenv("SLASHDROP_TEMPLATES"); raw != "" {
		c.Templates.Raw = raw
	}
	if file := os.Getenv("SLASHDROP_TEMPLATES_FILE"); file != "" {
		c.Templates.File = file
	}
	if groups, ok := os.LookupEnv("SLASHDROP_ALLOWED_GROUPS"); ok {
		c.Access.AllowedGroups = groups
	}
	if groups, ok := os.LookupEnv("SLASHDROP_USER_GROUPS"); ok {
		c.Access.UserGroups = groups
	}
	if theme := os.Getenv("SLASHDROP_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "ui.theme").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.theme").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section, not a value", key)
			}
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"templates.raw",
		"templates.file",
		"templates.watch",
		"access.allowed_groups",
		"access.user_groups",
		"ui.theme",
		"ui.mode",
		"ui.menu_width",
		"ui.max_visible",
		"ui.preview",
		"ui.mouse",
		"log.enabled",
		"log.file",
	}
}

// String returns a string representation of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
