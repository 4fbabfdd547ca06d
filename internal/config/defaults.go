package config

import (
	_ "embed"
)

//go:embed defaults/spacedefence.yaml
var defaultSpaceDefenceYAML []byte

// DefaultSpaceDefenceConfig returns the default Space Defence configuration.
func DefaultSpaceDefenceConfig() SpaceDefenceConfig {
	return SpaceDefenceConfig{
		Physics: Physics{
			PlayerSpeed:       1.0,
			ShotVelocity:      -2.0,
			EnemyVelocity:     0.1,
			EnemyAcceleration: 0.00125,
		},
		Spawn: Spawn{
			DelaySeconds:    0.5,
			MinDelaySeconds: 0.2,
		},
		Sizes: Sizes{
			PlayerWidth:  0.12,
			PlayerHeight: 0.1,
			ShotWidth:    0.02,
			ShotHeight:   0.06,
			EnemyWidth:   0.1,
			EnemyHeight:  0.08,
		},
		Layout: Layout{
			PlayerY: 0.925,
		},
		Parallel: Parallel{
			Workers:       4,
			GameOverCheck: CheckAll,
		},
		Input: Input{
			HoldMillis:     150,
			FireHoldMillis: 500,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				SpawnReduction:  0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default configuration file.
func GetDefaultYAML() []byte {
	return defaultSpaceDefenceYAML
}
