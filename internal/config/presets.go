package config

import "sort"

// Presets are keyed by scene, then preset name. Each preset edits a copy
// of the defaults.
var Presets = map[string]map[string]func(*Config){
	"default": {
		"reference": func(c *Config) {},
		"zero_g": func(c *Config) {
			c.Physics.GravityY = 0
		},
		"slow": func(c *Config) {
			c.Physics.TickRate = 250
		},
	},
	"pair": {
		"separate": func(c *Config) {
			c.Physics.GravityY = 0
			c.Run.Frames = 10
			c.Run.SnapshotEvery = 1
		},
		"fall": func(c *Config) {
			c.Run.Frames = 1000
		},
	},
	"drop": {
		"freefall": func(c *Config) {
			c.Run.Frames = 500
			c.Run.SnapshotEvery = 10
		},
		"moon": func(c *Config) {
			c.Physics.GravityY = DefaultGravityY / 6
			c.Run.Frames = 1500
			c.Run.SnapshotEvery = 50
		},
	},
	"pile": {
		"burst": func(c *Config) {
			c.Physics.GravityY = 0
			c.Run.Frames = 300
			c.Run.SnapshotEvery = 10
		},
	},
}

// GetPreset returns the defaults for scene with the preset applied, or nil.
func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	apply, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Scene = scene
	apply(cfg)
	return cfg
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
