package config

import "sort"

// Presets are complete configurations selectable by name.
var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"small":   sized(8, 8, 500, 3),
	"medium":  sized(16, 16, 2000, 8),
	"large":   sized(32, 24, 4000, 12),
	"wide":    sized(64, 16, 4000, 12),
}

func sized(width, height, maxGenerations, minLoop int) *Config {
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.MaxGenerations = maxGenerations
	cfg.MinLoopLength = minLoop
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
