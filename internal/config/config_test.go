package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 10 || cfg.Height != 10 {
		t.Errorf("expected 10x10, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.MaxGenerations != 1000 {
		t.Errorf("expected 1000 generations, got %d", cfg.MaxGenerations)
	}
	if cfg.MinLoopLength != 5 {
		t.Errorf("expected min loop 5, got %d", cfg.MinLoopLength)
	}
	if cfg.Delay != 100*time.Millisecond {
		t.Errorf("expected 100ms delay, got %s", cfg.Delay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifeloop.yaml")
	data := "width: 24\nheight: 12\ndelay: 250ms\ndetector: index\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Width != 24 || cfg.Height != 12 {
		t.Errorf("expected 24x12, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Delay != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", cfg.Delay)
	}
	if cfg.Detector != "index" {
		t.Errorf("expected index detector, got %s", cfg.Detector)
	}
	if cfg.MaxGenerations != DefaultMaxGenerations {
		t.Errorf("omitted key lost its default: %d", cfg.MaxGenerations)
	}
}

func TestRead_OverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifeloop.yaml")
	if err := os.WriteFile(path, []byte("min_loop_length: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("large")
	cfg, err := Read(path, base)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if cfg.Width != base.Width || cfg.Height != base.Height {
		t.Errorf("preset size lost: got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.MinLoopLength != 2 {
		t.Errorf("expected min loop 2, got %d", cfg.MinLoopLength)
	}
	if base.MinLoopLength == 2 {
		t.Error("Read modified its base")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("width: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := GetPreset("wide")
	cfg.Seed = 99
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, saved %+v", *loaded, *cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero generations", func(c *Config) { c.MaxGenerations = 0 }},
		{"negative min loop", func(c *Config) { c.MinLoopLength = -1 }},
		{"negative attempts", func(c *Config) { c.MaxAttempts = -1 }},
		{"negative delay", func(c *Config) { c.Delay = -time.Second }},
		{"unknown detector", func(c *Config) { c.Detector = "bloom" }},
		{"unknown renderer", func(c *Config) { c.Renderer = "sdl" }},
		{"unknown replay start", func(c *Config) { c.ReplayFrom = "middle" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("medium")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Width != 16 || cfg.Height != 16 {
		t.Errorf("expected 16x16, got %dx%d", cfg.Width, cfg.Height)
	}

	cfg.Width = 1
	if Presets["medium"].Width != 16 {
		t.Error("GetPreset returned a shared pointer")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := Presets[name].Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestSearchConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5
	sc := cfg.SearchConfig()
	if sc.Width != cfg.Width || sc.MinLoopLength != cfg.MinLoopLength || sc.Seed != 5 || sc.Detector != cfg.Detector {
		t.Errorf("search config does not mirror file config: %+v", sc)
	}

	cfg.ReplayFrom = "initial"
	if !cfg.ReplayOptions().FromInitial {
		t.Error("replay_from initial not honored")
	}
}
