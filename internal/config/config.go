// Package config provides YAML-based game configuration loading and
// difficulty management for Space Defence.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SpaceDefenceConfig contains all configuration for Space Defence.
// Positions and sizes are in play-field units: the field spans 0..1 on both axes.
type SpaceDefenceConfig struct {
	Physics    Physics          `yaml:"physics"`
	Spawn      Spawn            `yaml:"spawn"`
	Sizes      Sizes            `yaml:"sizes"`
	Layout     Layout           `yaml:"layout"`
	Parallel   Parallel         `yaml:"parallel"`
	Input      Input            `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Physics defines motion parameters, in field units per second.
type Physics struct {
	PlayerSpeed       float64 `yaml:"player_speed"`
	ShotVelocity      float64 `yaml:"shot_velocity"`      // Negative = upward
	EnemyVelocity     float64 `yaml:"enemy_velocity"`     // Base descent speed
	EnemyAcceleration float64 `yaml:"enemy_acceleration"` // Added per point of score at spawn
}

// Spawn defines the enemy spawn timer.
type Spawn struct {
	DelaySeconds    float64 `yaml:"delay_seconds"`
	MinDelaySeconds float64 `yaml:"min_delay_seconds"` // Floor after difficulty scaling
}

// Delay returns the base spawn interval.
func (s Spawn) Delay() time.Duration {
	return seconds(s.DelaySeconds)
}

// MinDelay returns the shortest interval difficulty scaling may reach.
func (s Spawn) MinDelay() time.Duration {
	return seconds(s.MinDelaySeconds)
}

// Sizes defines entity bounding boxes.
type Sizes struct {
	PlayerWidth  float64 `yaml:"player_width"`
	PlayerHeight float64 `yaml:"player_height"`
	ShotWidth    float64 `yaml:"shot_width"`
	ShotHeight   float64 `yaml:"shot_height"`
	EnemyWidth   float64 `yaml:"enemy_width"`
	EnemyHeight  float64 `yaml:"enemy_height"`
}

// Layout defines fixed positions inside the play-field.
type Layout struct {
	PlayerY float64 `yaml:"player_y"` // Vertical centre of the ship
}

// Parallel configures the per-frame enemy update.
type Parallel struct {
	Workers       int    `yaml:"workers"`
	GameOverCheck string `yaml:"game_over_check"` // "all" or "oldest"
}

// Game-over check policies.
const (
	CheckAll    = "all"
	CheckOldest = "oldest"
)

// Input configures terminal key handling.
type Input struct {
	HoldMillis     int `yaml:"hold_millis"`      // How long a key counts as held after its last event
	FireHoldMillis int `yaml:"fire_hold_millis"` // Same for fire; must outlast the terminal's autorepeat delay
}

// HoldWindow returns the key hold window.
func (i Input) HoldWindow() time.Duration {
	return time.Duration(i.HoldMillis) * time.Millisecond
}

// FireHoldWindow returns the hold window for the fire key.
func (i Input) FireHoldWindow() time.Duration {
	return time.Duration(i.FireHoldMillis) * time.Millisecond
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score, or seconds of play, at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to enemy velocity at max difficulty
	SpawnReduction  float64 `yaml:"spawn_reduction"`  // Fraction of the spawn delay removed at max difficulty
}

// Validate reports every setting that would make the simulation meaningless.
func (c SpaceDefenceConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("physics.player_speed", c.Physics.PlayerSpeed)
	positive("physics.enemy_velocity", c.Physics.EnemyVelocity)
	if c.Physics.ShotVelocity >= 0 {
		errs = append(errs, fmt.Errorf("physics.shot_velocity must be negative (upward), got %v", c.Physics.ShotVelocity))
	}
	if c.Physics.EnemyAcceleration < 0 {
		errs = append(errs, fmt.Errorf("physics.enemy_acceleration must not be negative, got %v", c.Physics.EnemyAcceleration))
	}

	positive("spawn.delay_seconds", c.Spawn.DelaySeconds)
	positive("spawn.min_delay_seconds", c.Spawn.MinDelaySeconds)

	positive("sizes.player_width", c.Sizes.PlayerWidth)
	positive("sizes.player_height", c.Sizes.PlayerHeight)
	positive("sizes.shot_width", c.Sizes.ShotWidth)
	positive("sizes.shot_height", c.Sizes.ShotHeight)
	positive("sizes.enemy_width", c.Sizes.EnemyWidth)
	positive("sizes.enemy_height", c.Sizes.EnemyHeight)
	if c.Sizes.PlayerWidth > 1 || c.Sizes.EnemyWidth > 1 {
		errs = append(errs, errors.New("sizes: player and enemy must fit inside the play-field"))
	}

	if c.Layout.PlayerY <= 0 || c.Layout.PlayerY >= 1 {
		errs = append(errs, fmt.Errorf("layout.player_y must be inside (0, 1), got %v", c.Layout.PlayerY))
	}

	if c.Parallel.Workers < 1 {
		errs = append(errs, fmt.Errorf("parallel.workers must be at least 1, got %d", c.Parallel.Workers))
	}
	switch c.Parallel.GameOverCheck {
	case CheckAll, CheckOldest:
	default:
		errs = append(errs, fmt.Errorf("parallel.game_over_check must be %q or %q, got %q", CheckAll, CheckOldest, c.Parallel.GameOverCheck))
	}

	if c.Input.HoldMillis < 0 {
		errs = append(errs, fmt.Errorf("input.hold_millis must not be negative, got %d", c.Input.HoldMillis))
	}
	if c.Input.FireHoldMillis < 0 {
		errs = append(errs, fmt.Errorf("input.fire_hold_millis must not be negative, got %d", c.Input.FireHoldMillis))
	}

	switch c.Difficulty.Progression.Type {
	case "score", "time", "none":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type must be score, time or none, got %q", c.Difficulty.Progression.Type))
	}
	if c.Difficulty.Scaling.SpeedMultiplier < 0 {
		errs = append(errs, errors.New("difficulty.scaling.speed_multiplier must not be negative"))
	}
	if c.Difficulty.Scaling.SpawnReduction < 0 || c.Difficulty.Scaling.SpawnReduction >= 1 {
		errs = append(errs, errors.New("difficulty.scaling.spawn_reduction must be in [0, 1)"))
	}

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset.
// The empty string means "keep the config file's settings".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
