package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

const (
	DefaultScene         = "default"
	DefaultWidth         = physics.DefaultWidth
	DefaultHeight        = physics.DefaultHeight
	DefaultGravityY      = physics.DefaultGravity
	DefaultEpsilon       = physics.DefaultEpsilon
	DefaultTickRate      = 1000
	DefaultFieldStrength = physics.DefaultFieldStrength
	DefaultFrames        = 2000
	DefaultSnapshotEvery = 100
	DefaultFPS           = 60
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Scene   string        `yaml:"scene"`
	World   WorldConfig   `yaml:"world"`
	Physics PhysicsConfig `yaml:"physics"`
	Field   FieldConfig   `yaml:"field"`
	Run     RunConfig     `yaml:"run"`
	Display DisplayConfig `yaml:"display"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PhysicsConfig struct {
	GravityX float64 `yaml:"gravity_x"`
	GravityY float64 `yaml:"gravity_y"`
	Epsilon  float64 `yaml:"epsilon"`
	TickRate int     `yaml:"tick_rate"`
}

type FieldConfig struct {
	Strength float64 `yaml:"strength"`
}

type RunConfig struct {
	Frames        int  `yaml:"frames"`
	SnapshotEvery int  `yaml:"snapshot_every"`
	ValidateState bool `yaml:"validate_state"`
	LogEvery      int  `yaml:"log_every"`
}

// DisplayConfig only affects presenters, never the physics.
type DisplayConfig struct {
	FPS int `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene: DefaultScene,
		World: WorldConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Physics: PhysicsConfig{
			GravityY: DefaultGravityY,
			Epsilon:  DefaultEpsilon,
			TickRate: DefaultTickRate,
		},
		Field: FieldConfig{
			Strength: DefaultFieldStrength,
		},
		Run: RunConfig{
			Frames:        DefaultFrames,
			SnapshotEvery: DefaultSnapshotEvery,
			ValidateState: true,
		},
		Display: DisplayConfig{
			FPS: DefaultFPS,
		},
	}
}

// Load reads a YAML file over the defaults; absent keys keep their default.
func Load(path string) (*Config, error) {
	return Overlay(path, DefaultConfig())
}

// Overlay reads a YAML file over a copy of base.
func Overlay(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.SimConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Run.Frames <= 0 {
		return fmt.Errorf("%w: run.frames must be positive, got %d", ErrInvalid, c.Run.Frames)
	}
	if c.Display.FPS <= 0 {
		return fmt.Errorf("%w: display.fps must be positive, got %d", ErrInvalid, c.Display.FPS)
	}
	return nil
}

func (c *Config) Params() physics.Params {
	return physics.Params{
		Width:         c.World.Width,
		Height:        c.World.Height,
		Gravity:       r2.Vec{X: c.Physics.GravityX, Y: c.Physics.GravityY},
		Epsilon:       c.Physics.Epsilon,
		FieldStrength: c.Field.Strength,
	}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		TickRate:      c.Physics.TickRate,
		SnapshotEvery: c.Run.SnapshotEvery,
		ValidateState: c.Run.ValidateState,
		LogEvery:      c.Run.LogEvery,
	}
}

// Tunables are the numeric keys accepted by Set.
var Tunables = []string{
	"width", "height", "gravity_x", "gravity_y", "epsilon", "tick_rate", "field_strength",
}

// Set assigns one numeric key by name. tick_rate is truncated to an int.
func (c *Config) Set(name string, v float64) error {
	switch name {
	case "width":
		c.World.Width = v
	case "height":
		c.World.Height = v
	case "gravity_x":
		c.Physics.GravityX = v
	case "gravity_y":
		c.Physics.GravityY = v
	case "epsilon":
		c.Physics.Epsilon = v
	case "tick_rate":
		c.Physics.TickRate = int(v)
	case "field_strength":
		c.Field.Strength = v
	default:
		return fmt.Errorf("%w: unknown key %q (tunable: %v)", ErrInvalid, name, Tunables)
	}
	return nil
}
