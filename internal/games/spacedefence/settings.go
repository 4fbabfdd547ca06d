package spacedefence

import (
	"time"

	"github.com/vovakirdan/space-defence/internal/config"
	"github.com/vovakirdan/space-defence/internal/core"
)

// Field is the play-field in field units. Every arena uses the same field;
// split screen only changes where it is drawn.
var Field = core.Box{Left: 0, Top: 0, Right: 1, Bottom: 1}

// Settings holds the tuned constants of one round, resolved from config.
type Settings struct {
	Field core.Box

	PlayerSpeed  float64 // field widths per second
	PlayerY      float64
	PlayerWidth  float64
	PlayerHeight float64

	ShotVelocity float64 // negative = upward
	ShotWidth    float64
	ShotHeight   float64

	EnemyVelocity     float64
	EnemyAcceleration float64
	EnemyWidth        float64
	EnemyHeight       float64

	SpawnDelay    time.Duration
	MinSpawnDelay time.Duration

	Workers    int
	OldestOnly bool // game-over check inspects only the oldest enemy
}

// NewSettings resolves a validated config into round settings.
func NewSettings(cfg config.SpaceDefenceConfig) Settings {
	return Settings{
		Field: Field,

		PlayerSpeed:  cfg.Physics.PlayerSpeed,
		PlayerY:      cfg.Layout.PlayerY,
		PlayerWidth:  cfg.Sizes.PlayerWidth,
		PlayerHeight: cfg.Sizes.PlayerHeight,

		ShotVelocity: cfg.Physics.ShotVelocity,
		ShotWidth:    cfg.Sizes.ShotWidth,
		ShotHeight:   cfg.Sizes.ShotHeight,

		EnemyVelocity:     cfg.Physics.EnemyVelocity,
		EnemyAcceleration: cfg.Physics.EnemyAcceleration,
		EnemyWidth:        cfg.Sizes.EnemyWidth,
		EnemyHeight:       cfg.Sizes.EnemyHeight,

		SpawnDelay:    cfg.Spawn.Delay(),
		MinSpawnDelay: cfg.Spawn.MinDelay(),

		Workers:    cfg.Parallel.Workers,
		OldestOnly: cfg.Parallel.GameOverCheck == config.CheckOldest,
	}
}

// PlayerMinX is the leftmost reachable ship centre.
func (s *Settings) PlayerMinX() float64 {
	return s.Field.Left + s.PlayerWidth/2
}

// PlayerMaxX is the rightmost reachable ship centre.
func (s *Settings) PlayerMaxX() float64 {
	return s.Field.Right - s.PlayerWidth/2
}

// EnemyMinX is the leftmost spawn centre.
func (s *Settings) EnemyMinX() float64 {
	return s.Field.Left + s.EnemyWidth/2
}

// EnemyMaxX is the rightmost spawn centre.
func (s *Settings) EnemyMaxX() float64 {
	return s.Field.Right - s.EnemyWidth/2
}

func elapsedSeconds(now, last time.Duration) float64 {
	if now <= last {
		return 0
	}
	return (now - last).Seconds()
}
