// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultRuntime != RuntimeVirtual {
		t.Errorf("expected default runtime to be virtual, got %s", cfg.DefaultRuntime)
	}

	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}

	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}

	if cfg.Picker.ShowHidden {
		t.Error("expected default show_hidden to be false")
	}

	if cfg.Picker.Height != 12 {
		t.Errorf("expected default picker height to be 12, got %d", cfg.Picker.Height)
	}

	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config must validate, got %v", errs)
	}
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir = %q, want override %q", got, dir)
	}
}

func TestConfigDirXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux-only")
	}
	Reset()
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg-config")

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if want := filepath.Join("/tmp/test-xdg-config", AppName); got != want {
		t.Errorf("ConfigDir = %q, want %q", got, want)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("loadWithOptions: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty for defaults-only load", path)
	}
	if cfg.DefaultRuntime != RuntimeVirtual || cfg.Picker.Height != 12 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "default_runtime: \"native\"\nui: verbose: true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions: %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("resolved path = %q", path)
	}
	if cfg.DefaultRuntime != RuntimeNative {
		t.Errorf("default_runtime = %s, want native", cfg.DefaultRuntime)
	}
	if !cfg.UI.Verbose {
		t.Error("ui.verbose not loaded from file")
	}
	// Untouched keys keep their defaults.
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ui.color_scheme = %s, want auto default", cfg.UI.ColorScheme)
	}
	if cfg.Picker.Height != 12 {
		t.Errorf("picker.height = %d, want 12 default", cfg.Picker.Height)
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown runtime", "default_runtime: \"docker\"\n"},
		{"unknown field", "defaults_runtime: \"native\"\n"},
		{"negative height", "picker: height: -3\n"},
		{"syntax error", "default_runtime: \"native\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir}); err == nil {
				t.Error("expected load error for invalid config")
			}
		})
	}
}

func TestLoadExplicitFilePath(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "mine.cue")
	if err := os.WriteFile(custom, []byte("ui: color_scheme: \"dark\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: custom})
	if err != nil {
		t.Fatalf("loadWithOptions: %v", err)
	}
	if path != custom {
		t.Errorf("resolved path = %q, want %q", path, custom)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ui.color_scheme = %s, want dark", cfg.UI.ColorScheme)
	}

	if _, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(dir, "absent.cue")}); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestGenerateCUERoundTrip(t *testing.T) {
	want := &Config{
		DefaultRuntime: RuntimeNative,
		UI:             UIConfig{ColorScheme: ColorSchemeLight, Verbose: true},
		Picker:         PickerConfig{ShowHidden: true, Height: 20},
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(GenerateCUE(want)), 0o644); err != nil {
		t.Fatal(err)
	}

	got, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("generated config failed to load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", *got, *want)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.cue"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "default_runtime") {
		t.Errorf("generated file missing default_runtime:\n%s", data)
	}

	// A second call must not clobber an existing file.
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte("ui: verbose: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig (second call): %v", err)
	}
	data, err = os.ReadFile(filepath.Join(dir, "config.cue"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "ui: verbose: true\n" {
		t.Error("CreateDefaultConfig overwrote an existing file")
	}
}
