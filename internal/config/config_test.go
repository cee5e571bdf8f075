// ABOUTME: Tests for wellkit configuration management.
// ABOUTME: Covers load, save, defaults, option mapping, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestGetFormatDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetFormat(); got != "csv" {
		t.Errorf("GetFormat() = %q, want %q", got, "csv")
	}
}

func TestGetFormatExplicit(t *testing.T) {
	cfg := &Config{Format: "parquet"}
	if got := cfg.GetFormat(); got != "parquet" {
		t.Errorf("GetFormat() = %q, want %q", got, "parquet")
	}
}

func TestGetExportRootDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetExportRoot(); got == "" {
		t.Error("GetExportRoot() returned empty string")
	}
}

func TestGetExportRootExplicit(t *testing.T) {
	cfg := &Config{ExportRoot: "/tmp/wellkit-test"}
	if got := cfg.GetExportRoot(); got != "/tmp/wellkit-test" {
		t.Errorf("GetExportRoot() = %q, want %q", got, "/tmp/wellkit-test")
	}
}

func TestSeriesOptionsDefaults(t *testing.T) {
	opts := (&Config{}).SeriesOptions()
	if !opts.InterpolateGaps {
		t.Error("interpolation should default to enabled")
	}
	if opts.MaxGapMinutes != 5 {
		t.Errorf("MaxGapMinutes = %d, want 5", opts.MaxGapMinutes)
	}
	if opts.LastNDays != 0 {
		t.Errorf("LastNDays = %d, want 0 (all days)", opts.LastNDays)
	}
}

func TestSeriesOptionsOverrides(t *testing.T) {
	off := false
	cfg := &Config{InterpolateGaps: &off, MaxGapMinutes: 10, LastNDays: 7}
	opts := cfg.SeriesOptions()
	if opts.InterpolateGaps {
		t.Error("interpolation should be disabled")
	}
	if opts.MaxGapMinutes != 10 {
		t.Errorf("MaxGapMinutes = %d, want 10", opts.MaxGapMinutes)
	}
	if opts.LastNDays != 7 {
		t.Errorf("LastNDays = %d, want 7", opts.LastNDays)
	}
}

func TestExpandPathEmpty(t *testing.T) {
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q, want %q", got, "")
	}
}

func TestExpandPathAbsolute(t *testing.T) {
	if got := ExpandPath("/tmp/foo"); got != "/tmp/foo" {
		t.Errorf("ExpandPath(\"/tmp/foo\") = %q, want %q", got, "/tmp/foo")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	got := ExpandPath("~")
	if got != home {
		t.Errorf("ExpandPath(\"~\") = %q, want %q", got, home)
	}
}

func TestExpandPathTildeSlash(t *testing.T) {
	home, _ := os.UserHomeDir()

	got := ExpandPath("~/data/wellkit")
	want := filepath.Join(home, "data/wellkit")
	if got != want {
		t.Errorf("ExpandPath(\"~/data/wellkit\") = %q, want %q", got, want)
	}
}

func TestExpandPathRelative(t *testing.T) {
	if got := ExpandPath("data/wellkit"); got != "data/wellkit" {
		t.Errorf("ExpandPath(\"data/wellkit\") = %q, want %q", got, "data/wellkit")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ExportRoot != "" || cfg.Format != "" {
		t.Errorf("missing config should load zero values, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{ExportRoot: "/tmp/export", Format: "sqlite", LastNDays: 14}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.ExportRoot != "/tmp/export" || loaded.Format != "sqlite" || loaded.LastNDays != 14 {
		t.Errorf("Load() = %+v, want saved values", loaded)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "wellkit", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{{{"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestConfigOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(&Config{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("empty config marshals to %s, want {}", data)
	}
}
