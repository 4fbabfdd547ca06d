package config

import (
	"math"
	"time"
)

// DifficultyManager calculates dynamic game parameters based on score or
// play time. Level never decreases as score or play time grow, so enemies
// spawned later are never slower than enemies spawned earlier.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score or
// on played time, which excludes pauses. For time progression max_at is in seconds.
func (d *DifficultyManager) Level(score int, played time.Duration) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = played.Seconds() / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the enemy base velocity scaled by the difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, played time.Duration) float64 {
	level := d.Level(score, played)
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// SpawnDelay returns the spawn interval shortened by the difficulty level,
// never below minDelay.
func (d *DifficultyManager) SpawnDelay(base, minDelay time.Duration, score int, played time.Duration) time.Duration {
	level := d.Level(score, played)
	delay := time.Duration(float64(base) * (1.0 - level*d.cfg.Scaling.SpawnReduction))
	if delay < minDelay {
		delay = minDelay
	}
	return delay
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
