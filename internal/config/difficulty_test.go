package config

import (
	"testing"
	"time"
)

func TestDifficultyLevelProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, SpawnReduction: 0.5},
	})

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.2},
		{5, 0.6},
		{10, 1.0},
		{50, 1.0}, // capped
	}

	for _, tc := range tests {
		if got := dm.Level(tc.score, 0); got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestDifficultyMonotone(t *testing.T) {
	cfg := DefaultSpaceDefenceConfig()
	ApplyPreset(&cfg, DifficultyNormal)
	dm := NewDifficultyManager(cfg.Difficulty)

	prevSpeed := 0.0
	prevDelay := time.Duration(1 << 62)
	for score := 0; score <= 200; score++ {
		speed := dm.Speed(0.1, score, 0)
		delay := dm.SpawnDelay(500*time.Millisecond, 200*time.Millisecond, score, 0)
		if speed < prevSpeed {
			t.Fatalf("speed decreased at score %d: %v < %v", score, speed, prevSpeed)
		}
		if delay > prevDelay {
			t.Fatalf("spawn delay grew at score %d: %v > %v", score, delay, prevDelay)
		}
		prevSpeed, prevDelay = speed, delay
	}
}

func TestDifficultyDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 2.0, SpawnReduction: 0.5},
	})

	if dm.Level(100, 100*time.Second) != 0.5 {
		t.Errorf("disabled progression should stay at initial level, got %v", dm.Level(100, 100*time.Second))
	}
	if got := dm.Speed(1.0, 100, 0); got != 2.0 {
		t.Errorf("Speed = %v, expected 2.0", got)
	}
	if got := dm.SpawnDelay(time.Second, 100*time.Millisecond, 0, 0); got != 750*time.Millisecond {
		t.Errorf("SpawnDelay = %v, expected 750ms", got)
	}

	dm.SetEnabled(true)
	if !dm.IsEnabled() {
		t.Error("SetEnabled(true) should enable progression")
	}
}

func TestSpawnDelayFloor(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 1.0,
		Progression:  ProgressionConfig{Type: "none"},
		Scaling:      ScalingConfig{SpawnReduction: 0.9},
	})

	if got := dm.SpawnDelay(time.Second, 300*time.Millisecond, 0, 0); got != 300*time.Millisecond {
		t.Errorf("SpawnDelay = %v, expected floor 300ms", got)
	}
}

func TestDefaultsKeepBaseFormula(t *testing.T) {
	cfg := DefaultSpaceDefenceConfig()
	dm := NewDifficultyManager(cfg.Difficulty)

	for _, score := range []int{0, 1, 50, 500} {
		if got := dm.Speed(0.1, score, time.Minute); got != 0.1 {
			t.Errorf("Speed at score %d = %v, expected unscaled base 0.1", score, got)
		}
		if got := dm.SpawnDelay(cfg.Spawn.Delay(), cfg.Spawn.MinDelay(), score, time.Minute); got != cfg.Spawn.Delay() {
			t.Errorf("SpawnDelay at score %d = %v, expected fixed %v", score, got, cfg.Spawn.Delay())
		}
	}
}

func TestTimeProgressionUsesSeconds(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 60},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
	})

	tests := []struct {
		played   time.Duration
		expected float64
	}{
		{0, 0},
		{15 * time.Second, 0.25},
		{30 * time.Second, 0.5},
		{2 * time.Minute, 1.0},
	}
	for _, tc := range tests {
		if got := dm.Level(0, tc.played); got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("Level(%v) = %v, expected %v", tc.played, got, tc.expected)
		}
	}
}
