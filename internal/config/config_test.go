// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// isolate points the config dir at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	for _, key := range []string{
		"SLASHDROP_TEMPLATES",
		"SLASHDROP_TEMPLATES_FILE",
		"SLASHDROP_THEME",
	} {
		t.Setenv(key, "")
	}
	os.Unsetenv("SLASHDROP_ALLOWED_GROUPS")
	os.Unsetenv("SLASHDROP_USER_GROUPS")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Templates.Raw != DefaultTemplates {
		t.Error("Load() without files should keep the default templates")
	}
	if cfg.UI.MenuWidth != 44 || cfg.UI.MaxVisible != 8 {
		t.Errorf("UI defaults = %+v", cfg.UI)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := isolate(t)
	content := `
[templates]
raw = '[{"trigger":"/sig","templates":[{"label":"Sig","text":"-- me"}]}]'

[access]
allowed_groups = "1|2"

[ui]
theme = "light"
max_visible = 4
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !strings.Contains(cfg.Templates.Raw, "/sig") {
		t.Errorf("Templates.Raw = %q", cfg.Templates.Raw)
	}
	if cfg.Access.AllowedGroups != "1|2" {
		t.Errorf("AllowedGroups = %q", cfg.Access.AllowedGroups)
	}
	if cfg.UI.Theme != "light" || cfg.UI.MaxVisible != 4 {
		t.Errorf("UI = %+v", cfg.UI)
	}
	if cfg.UI.MenuWidth != 44 {
		t.Errorf("unset MenuWidth = %d, want default 44", cfg.UI.MenuWidth)
	}
	if !cfg.UI.Preview {
		t.Error("unset Preview should keep its default")
	}
}

func TestLoadJSONFallback(t *testing.T) {
	dir := isolate(t)
	content := `{"ui": {"theme": "dark"}, "access": {"user_groups": "7"}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.Theme != "dark" || cfg.Access.UserGroups != "7" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadBrokenFileFallsBackToDefaults(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui\ntheme="), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err == nil {
		t.Fatal("Load() should report the decode error")
	}
	if cfg == nil || cfg.UI.Theme != "auto" {
		t.Errorf("Load() should still return defaults, got %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SLASHDROP_TEMPLATES", `[]`)
	t.Setenv("SLASHDROP_ALLOWED_GROUPS", "3")
	t.Setenv("SLASHDROP_USER_GROUPS", "3|9")
	t.Setenv("SLASHDROP_THEME", "light")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Templates.Raw != "[]" {
		t.Errorf("Templates.Raw = %q", cfg.Templates.Raw)
	}
	if cfg.Access.AllowedGroups != "3" || cfg.Access.UserGroups != "3|9" {
		t.Errorf("Access = %+v", cfg.Access)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad mode", func(c *Config) { c.UI.Mode = "wysiwyg" }, "ui.mode"},
		{"narrow menu", func(c *Config) { c.UI.MenuWidth = 3 }, "ui.menu_width"},
		{"no rows", func(c *Config) { c.UI.MaxVisible = -1 }, "ui.max_visible"},
		{"watch without file", func(c *Config) { c.Templates.Watch = true }, "templates.watch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() = %v, want ValidateErrors", err)
			}
			if verrs[0].Field != tt.field {
				t.Errorf("field = %q, want %q", verrs[0].Field, tt.field)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("ui.menu_width", "60"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cfg.Set("ui.preview", "false"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cfg.Set("access.allowed_groups", "4|5"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cfg.Get("ui.menu_width")
	if err != nil || got != 60 {
		t.Errorf("Get(ui.menu_width) = %v, %v", got, err)
	}
	if cfg.UI.Preview {
		t.Error("ui.preview should be false")
	}
	if cfg.Access.AllowedGroups != "4|5" {
		t.Errorf("AllowedGroups = %q", cfg.Access.AllowedGroups)
	}

	for _, key := range []string{"", "nope", "ui.nope", "ui", "ui.theme.deeper"} {
		if _, err := cfg.Get(key); err == nil {
			t.Errorf("Get(%q) should fail", key)
		}
	}
	if err := cfg.Set("ui.menu_width", "wide"); err == nil {
		t.Error("Set() with a non-integer should fail")
	}
}

func TestGetAllKeysResolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.UI.Theme = "dark"
	cfg.Access.AllowedGroups = "1|2"

	path := filepath.Join(dir, "config.toml")
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.UI.Theme != "dark" || loaded.Access.AllowedGroups != "1|2" {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Templates.Raw != DefaultTemplates {
		t.Error("multi-line template text should survive TOML")
	}

	jsonPath := filepath.Join(dir, "copy.json")
	if err := SaveJSON(cfg, jsonPath); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}
	if _, err := LoadFromPath(jsonPath); err != nil {
		t.Errorf("LoadFromPath(json) error = %v", err)
	}
}

func TestLogPath(t *testing.T) {
	dir := isolate(t)
	cfg := Default()

	path, err := cfg.LogPath()
	if err != nil || path != filepath.Join(dir, "slashdrop.log") {
		t.Errorf("LogPath() = %q, %v", path, err)
	}
	cfg.Log.File = "/tmp/x.log"
	if path, _ := cfg.LogPath(); path != "/tmp/x.log" {
		t.Errorf("LogPath() = %q", path)
	}
}

// TestConfig_ConcurrentAccess tests that Global() and SetGlobal() can be
// called concurrently.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}
