package spacedefence

import (
	"testing"
	"time"

	"github.com/vovakirdan/space-defence/internal/config"
	"github.com/vovakirdan/space-defence/internal/core"
)

func newTestRound(s Settings, players int, clock *core.ManualClock) *Round {
	return NewRound(s, players, false, clock, 1, fixedDifficulty())
}

func TestVelocityFixedAtSpawn(t *testing.T) {
	s := testSettings()
	clock := core.NewManualClock(0)
	r := newTestRound(s, 1, clock)
	a := r.Arenas()[0]

	clock.Set(ms(500))
	r.Step(nil)
	if a.Pool.Len() != 1 {
		t.Fatalf("expected one spawn at 500ms, got %d", a.Pool.Len())
	}
	v0 := a.Pool.At(0).Velocity
	if v0 != s.EnemyVelocity {
		t.Errorf("velocity at score 0 = %v, expected %v", v0, s.EnemyVelocity)
	}

	a.Player.Score = 5
	clock.Set(ms(1000))
	r.Step(nil)

	if a.Pool.At(0).Velocity != v0 {
		t.Errorf("existing enemy velocity changed to %v", a.Pool.At(0).Velocity)
	}
	want := s.EnemyVelocity + 5*s.EnemyAcceleration
	if got := a.Pool.At(1).Velocity; got != want {
		t.Errorf("velocity at score 5 = %v, expected %v", got, want)
	}
}

func TestLaterEnemiesNeverSlower(t *testing.T) {
	cfg := config.DefaultSpaceDefenceConfig()
	config.ApplyPreset(&cfg, config.DifficultyHard)
	s := NewSettings(cfg)
	clock := core.NewManualClock(0)
	r := NewRound(s, 1, false, clock, 3, config.NewDifficultyManager(cfg.Difficulty))
	a := r.Arenas()[0]

	for i := 1; i <= 40; i++ {
		clock.Set(ms(100 * i))
		if i%3 == 0 {
			a.Player.Score++
		}
		r.Step(nil)
		for j := 1; j < a.Pool.Len(); j++ {
			if a.Pool.At(j).Velocity < a.Pool.At(j-1).Velocity {
				t.Fatalf("frame %d: enemy %d slower than enemy %d", i, j, j-1)
			}
		}
		if r.IsGameOver() {
			break
		}
	}
	if a.Pool.Len() < 2 {
		t.Fatalf("expected several spawns, got %d", a.Pool.Len())
	}
}

func TestDefaultConfigUsesBaseFormula(t *testing.T) {
	cfg := config.DefaultSpaceDefenceConfig()
	s := NewSettings(cfg)
	clock := core.NewManualClock(0)
	r := NewRound(s, 1, false, clock, 1, config.NewDifficultyManager(cfg.Difficulty))
	a := r.Arenas()[0]

	a.Player.Score = 50
	clock.Set(s.SpawnDelay)
	r.Step(nil)

	if a.Pool.Len() != 1 {
		t.Fatalf("expected one spawn at %v, got %d", s.SpawnDelay, a.Pool.Len())
	}
	want := s.EnemyVelocity + 50*s.EnemyAcceleration
	if got := a.Pool.At(0).Velocity; got != want {
		t.Errorf("velocity at score 50 = %v, expected %v", got, want)
	}
	if got := a.Pool.NextSpawn(); got != 2*s.SpawnDelay {
		t.Errorf("next spawn = %v, expected fixed delay to %v", got, 2*s.SpawnDelay)
	}
}

// timedVelocities runs a round with time-based difficulty at the given frame
// rate for span and returns the velocity of every spawned enemy.
func timedVelocities(fps int, span, pause time.Duration) []float64 {
	dm := config.NewDifficultyManager(config.DifficultyConfig{
		Enabled:     true,
		Progression: config.ProgressionConfig{Type: "time", MaxAt: 600},
		Scaling:     config.ScalingConfig{SpeedMultiplier: 1.0},
	})
	clock := core.NewManualClock(0)
	r := NewRound(testSettings(), 1, false, clock, 1, dm)

	var offset time.Duration
	frames := int(span * time.Duration(fps) / time.Second)
	for i := 1; i <= frames; i++ {
		clock.Set(offset + time.Second*time.Duration(i)/time.Duration(fps))
		r.Step(nil)
		if pause > 0 && i == frames/2 {
			r.Pause()
			offset += pause
			clock.Advance(pause)
			r.Resume()
		}
	}

	var out []float64
	for _, e := range r.Arenas()[0].Pool.Enemies() {
		out = append(out, e.Velocity)
	}
	return out
}

func TestTimeDifficultyIgnoresFrameRate(t *testing.T) {
	const span = 4 * time.Second

	slow := timedVelocities(30, span, 0)
	fast := timedVelocities(60, span, 0)
	if len(slow) != 8 || len(fast) != 8 {
		t.Fatalf("expected 8 spawns in %v, got %d at 30fps and %d at 60fps", span, len(slow), len(fast))
	}
	for i := range slow {
		if slow[i] != fast[i] {
			t.Errorf("enemy %d: 30fps velocity %v, 60fps velocity %v", i, slow[i], fast[i])
		}
		spawnedAt := float64(i+1) * 0.5
		want := 0.1 * (1 + spawnedAt/600)
		if d := slow[i] - want; d > 1e-12 || d < -1e-12 {
			t.Errorf("enemy %d spawned at %vs: velocity %v, expected %v", i, spawnedAt, slow[i], want)
		}
	}

	paused := timedVelocities(60, span, 9*time.Second)
	if len(paused) != len(fast) {
		t.Fatalf("pause changed spawn count: %d vs %d", len(paused), len(fast))
	}
	for i := range fast {
		if paused[i] != fast[i] {
			t.Errorf("enemy %d: velocity %v after a pause, %v without", i, paused[i], fast[i])
		}
	}
}

func snapshot(r *Round) []any {
	var out []any
	for _, a := range r.Arenas() {
		p := a.Player
		out = append(out, p.X, p.Score, p.Alive, p.Shot.Active, p.Shot.X, p.Shot.Y)
		for _, e := range a.Pool.Enemies() {
			out = append(out, e.X, e.Y, e.Velocity)
		}
	}
	return out
}

func TestPauseRoundTripIsExact(t *testing.T) {
	const paused = 7*time.Second + 321*time.Millisecond
	s := testSettings()

	plainClock := core.NewManualClock(0)
	plain := newTestRound(s, 1, plainClock)
	pausedClock := core.NewManualClock(0)
	withPause := newTestRound(s, 1, pausedClock)

	inputs := []Controls{{Right: true, Shoot: true}, {Right: true}, {Left: true, Shoot: true}, {Left: true}, {}}
	frames := []time.Duration{ms(300), ms(900), ms(1300), ms(1750), ms(2600)}

	for i, at := range frames {
		plainClock.Set(at)
		plain.Step([]Controls{inputs[i]})

		shift := time.Duration(0)
		if i >= 1 {
			shift = paused
		}
		pausedClock.Set(at + shift)
		withPause.Step([]Controls{inputs[i]})

		if i == 0 {
			// Pause between the first and second frame
			pausedClock.Set(ms(400))
			withPause.Pause()
			if withPause.Phase() != PhasePaused {
				t.Fatal("round should be paused")
			}
			pausedClock.Set(ms(400) + paused)
			withPause.Resume()
		}

		a, b := snapshot(plain), snapshot(withPause)
		if len(a) != len(b) {
			t.Fatalf("frame %d: snapshots differ in size: %d vs %d", i, len(a), len(b))
		}
		for k := range a {
			if a[k] != b[k] {
				t.Fatalf("frame %d: field %d differs: %v vs %v", i, k, a[k], b[k])
			}
		}
	}

	if plain.Arenas()[0].Pool.Len() == 0 {
		t.Error("scenario should have spawned enemies")
	}
}

func TestPausedRoundDoesNotMove(t *testing.T) {
	s := testSettings()
	clock := core.NewManualClock(0)
	r := newTestRound(s, 1, clock)

	r.Pause()
	before := snapshot(r)
	clock.Set(10 * time.Second)
	r.Step([]Controls{{Right: true, Shoot: true}})

	after := snapshot(r)
	for k := range before {
		if before[k] != after[k] {
			t.Fatalf("paused round changed field %d: %v -> %v", k, before[k], after[k])
		}
	}

	r.TogglePause()
	if r.Phase() != PhaseRunning {
		t.Errorf("TogglePause should resume, phase = %v", r.Phase())
	}
}

// A shot fired straight up at an enemy directly above the ship hits it,
// removes exactly that enemy and scores one point.
func TestShotHitScenario(t *testing.T) {
	s := testSettings()
	s.SpawnDelay = time.Hour
	clock := core.NewManualClock(0)
	r := newTestRound(s, 1, clock)
	a := r.Arenas()[0]

	a.Pool.Spawn(0, 0.5, 0) // directly above the ship
	a.Pool.Spawn(0, 0.1, 0) // bystander

	r.Step([]Controls{{Shoot: true}})
	if !a.Player.Shot.Active || a.Player.Shot.Y != s.PlayerY {
		t.Fatalf("shot should be active at the ship, got %+v", a.Player.Shot)
	}

	hitFrame := -1
	for i := 1; i <= 40; i++ {
		clock.Set(ms(50 * i))
		r.Step([]Controls{{Shoot: true}})
		if a.Player.Score > 0 {
			hitFrame = i
			break
		}
	}

	if hitFrame < 0 {
		t.Fatal("shot never hit the enemy")
	}
	if a.Player.Score != 1 {
		t.Errorf("Score = %d, expected 1", a.Player.Score)
	}
	if a.Player.Shot.Active {
		t.Error("shot should be inactive after the hit")
	}
	if a.Pool.Len() != 1 || a.Pool.At(0).X != 0.1 {
		t.Errorf("exactly the targeted enemy should be gone, remaining %+v", a.Pool.Enemies())
	}
	if r.IsGameOver() {
		t.Error("round should continue after a hit")
	}
}

func TestBoundaryScenarioEndsRound(t *testing.T) {
	s := testSettings()
	s.SpawnDelay = time.Hour
	clock := core.NewManualClock(0)
	r := newTestRound(s, 1, clock)
	a := r.Arenas()[0]

	a.Pool.Spawn(0, 0.1, 1.0) // clear of the ship at x=0.5

	clock.Set(ms(500))
	r.Step(nil)
	if r.IsGameOver() {
		t.Fatal("round ended early")
	}

	clock.Set(time.Second)
	r.Step(nil)
	if !r.IsGameOver() {
		t.Fatal("enemy reached the bottom: round should be over")
	}
	if a.Player.Alive {
		t.Error("player should be dead")
	}
}

func TestGameOverHappensOnce(t *testing.T) {
	s := testSettings()
	clock := core.NewManualClock(0)
	r := newTestRound(s, 1, clock)
	a := r.Arenas()[0]
	a.Pool.enemies = append(a.Pool.enemies, Enemy{X: 0.5, Y: s.PlayerY})

	r.Step(nil)
	if r.Phase() != PhaseOver {
		t.Fatalf("phase = %v, expected over", r.Phase())
	}
	before := snapshot(r)

	for i := 1; i <= 5; i++ {
		clock.Set(time.Duration(i) * time.Second)
		r.Step([]Controls{{Right: true, Shoot: true}})
		r.TogglePause()
		r.Resume()
		r.finish()
	}

	if r.Phase() != PhaseOver {
		t.Errorf("phase changed after game over: %v", r.Phase())
	}
	after := snapshot(r)
	for k := range before {
		if before[k] != after[k] {
			t.Fatalf("state changed after game over at field %d", k)
		}
	}
}

func TestDuoSharedSpawnsAndFrozenField(t *testing.T) {
	s := testSettings()
	clock := core.NewManualClock(0)
	r := newTestRound(s, 2, clock)
	p1, p2 := r.Arenas()[0], r.Arenas()[1]

	clock.Set(ms(1600))
	r.Step(nil)
	if p1.Pool.Len() != 3 || p2.Pool.Len() != 3 {
		t.Fatalf("both fields should have 3 spawns, got %d and %d", p1.Pool.Len(), p2.Pool.Len())
	}
	for i := 0; i < 3; i++ {
		if p1.Pool.At(i).X != p2.Pool.At(i).X {
			t.Errorf("spawn %d: X differs between fields (%v vs %v)", i, p1.Pool.At(i).X, p2.Pool.At(i).X)
		}
	}

	// Drop an enemy onto player 2
	p2.Pool.enemies = append(p2.Pool.enemies, Enemy{X: p2.Player.X, Y: s.PlayerY, lastMove: ms(1600)})
	clock.Set(ms(1700))
	r.Step(nil)
	if p2.Player.Alive {
		t.Fatal("player 2 should be down")
	}
	if r.IsGameOver() {
		t.Fatal("round continues while player 1 lives")
	}

	frozen := p2.Pool.Enemies()
	clock.Set(ms(2600))
	r.Step([]Controls{{}, {Right: true}})

	if p1.Pool.Len() != 5 {
		t.Errorf("player 1 field should keep spawning, Len() = %d", p1.Pool.Len())
	}
	if p2.Pool.Len() != len(frozen) {
		t.Errorf("dead field spawned: %d -> %d", len(frozen), p2.Pool.Len())
	}
	for i, e := range frozen {
		if p2.Pool.At(i) != e {
			t.Errorf("dead field enemy %d moved", i)
		}
	}

	p1.Pool.enemies = append(p1.Pool.enemies, Enemy{X: p1.Player.X, Y: s.PlayerY, lastMove: ms(2600)})
	clock.Set(ms(2700))
	r.Step(nil)
	if !r.IsGameOver() {
		t.Error("round should end when both players are down")
	}
}

func TestRoundResetRestoresStart(t *testing.T) {
	s := testSettings()
	clock := core.NewManualClock(0)
	r := newTestRound(s, 1, clock)
	a := r.Arenas()[0]

	clock.Set(2 * time.Second)
	r.Step([]Controls{{Left: true, Shoot: true}})
	a.Player.Score = 3

	r.Reset(1)
	if a.Player.Score != 0 || a.Player.X != 0.5 || a.Pool.Len() != 0 || a.Player.Shot.Active {
		t.Errorf("Reset left state behind: %+v", snapshot(r))
	}
	if a.Pool.NextSpawn() != 2*time.Second+s.SpawnDelay {
		t.Errorf("spawn timer not restarted: %v", a.Pool.NextSpawn())
	}
	if r.Phase() != PhaseRunning {
		t.Errorf("phase = %v after Reset", r.Phase())
	}
}
