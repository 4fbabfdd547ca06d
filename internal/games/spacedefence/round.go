package spacedefence

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/space-defence/internal/config"
	"github.com/vovakirdan/space-defence/internal/core"
)

// Phase is the round's state.
type Phase int

const (
	PhaseRunning Phase = iota
	PhasePaused
	PhaseOver
)

// String returns the phase name shown on the HUD.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Arena is one player's play-field: the ship and the enemies coming at it.
type Arena struct {
	Player *Player
	Pool   *Pool
}

// Round runs the per-frame simulation for one or more arenas sharing a clock.
// Every spawn tick puts an enemy at the same X in each living arena; a dead
// arena freezes. The round is over once every player is dead.
type Round struct {
	settings   Settings
	arenas     []*Arena
	clock      core.Clock
	rng        *rand.Rand
	difficulty *config.DifficultyManager

	phase      Phase
	pauseStart time.Duration
	started    time.Duration // shifted by pauses, so now-started is play time
}

// NewRound creates a round with the given number of players.
func NewRound(s Settings, players int, touch bool, clock core.Clock, seed int64, dm *config.DifficultyManager) *Round {
	r := &Round{
		settings:   s,
		clock:      clock,
		difficulty: dm,
	}
	now := clock.Now()
	for i := 0; i < players; i++ {
		r.arenas = append(r.arenas, &Arena{
			Player: NewPlayer(&r.settings, touch, now),
			Pool:   NewPool(&r.settings, now),
		})
	}
	r.Reset(seed)
	return r
}

// Reset restarts the round from scratch.
func (r *Round) Reset(seed int64) {
	now := r.clock.Now()
	r.rng = rand.New(rand.NewSource(seed))
	r.phase = PhaseRunning
	r.pauseStart = 0
	r.started = now
	for _, a := range r.arenas {
		a.Player.Reset(now)
		a.Pool.Reset(now)
	}
}

// Arenas returns the round's play-fields in player order.
func (r *Round) Arenas() []*Arena {
	return r.arenas
}

// Phase returns the current state.
func (r *Round) Phase() Phase {
	return r.phase
}

// IsGameOver reports whether the round has ended.
func (r *Round) IsGameOver() bool {
	return r.phase == PhaseOver
}

// Score returns the best score among the players.
func (r *Round) Score() int {
	best := 0
	for _, a := range r.arenas {
		best = max(best, a.Player.Score)
	}
	return best
}

// Settings returns the round's resolved constants.
func (r *Round) Settings() *Settings {
	return &r.settings
}

// Pause freezes the round. Only a running round can pause.
func (r *Round) Pause() {
	if r.phase != PhaseRunning {
		return
	}
	r.phase = PhasePaused
	r.pauseStart = r.clock.Now()
}

// Resume continues a paused round. Every stored timestamp is shifted forward
// by the time spent paused, so motion resumes as if no time had passed.
func (r *Round) Resume() {
	if r.phase != PhasePaused {
		return
	}
	paused := r.clock.Now() - r.pauseStart
	for _, a := range r.arenas {
		a.Player.shift(paused)
		a.Pool.shift(paused)
	}
	r.started += paused
	r.phase = PhaseRunning
}

// TogglePause pauses a running round or resumes a paused one.
func (r *Round) TogglePause() {
	switch r.phase {
	case PhaseRunning:
		r.Pause()
	case PhasePaused:
		r.Resume()
	}
}

// Step advances a running round to the clock's current time.
// controls[i] drives arena i; missing entries mean no input.
func (r *Round) Step(controls []Controls) {
	if r.phase != PhaseRunning {
		return
	}
	now := r.clock.Now()

	for i, a := range r.arenas {
		if !a.Player.Alive {
			continue
		}
		var c Controls
		if i < len(controls) {
			c = controls[i]
		}
		a.Player.Update(now, c)
		a.Player.Shot.Update(now)
	}

	for _, a := range r.arenas {
		if a.Player.Alive {
			a.Pool.Update(now)
		}
	}
	r.spawn(now)

	alive := 0
	for _, a := range r.arenas {
		if !a.Player.Alive {
			continue
		}
		r.collide(a)
		if a.Player.Alive {
			alive++
		}
	}
	if alive == 0 {
		r.finish()
	}
}

// spawn emits every overdue spawn. Spawn i lands at the same X in each
// living arena, with a velocity fixed from that arena's score.
func (r *Round) spawn(now time.Duration) {
	delay := r.difficulty.SpawnDelay(r.settings.SpawnDelay, r.settings.MinSpawnDelay, r.Score(), r.played(now))

	var xs []float64
	for _, a := range r.arenas {
		if !a.Player.Alive {
			continue
		}
		due := a.Pool.DueSpawns(now, delay)
		for i := 0; i < due; i++ {
			if i == len(xs) {
				xs = append(xs, r.randomX())
			}
			a.Pool.Spawn(now, xs[i], r.enemyVelocity(a.Player.Score, now))
		}
	}
}

// enemyVelocity is base + score*acceleration. When difficulty progression is
// enabled the base is scaled by the difficulty level.
func (r *Round) enemyVelocity(score int, now time.Duration) float64 {
	base := r.difficulty.Speed(r.settings.EnemyVelocity, score, r.played(now))
	return base + float64(score)*r.settings.EnemyAcceleration
}

// played is the running time since the round started, pauses excluded.
func (r *Round) played(now time.Duration) time.Duration {
	return now - r.started
}

func (r *Round) randomX() float64 {
	lo, hi := r.settings.EnemyMinX(), r.settings.EnemyMaxX()
	return lo + r.rng.Float64()*(hi-lo)
}

// collide scores a shot hit, then checks whether the arena's player is lost.
func (r *Round) collide(a *Arena) {
	p := a.Player
	if p.Shot.Active {
		if _, hit := a.Pool.CheckShotContact(p.Shot.Box()); hit {
			p.Score++
			p.Shot.Reset()
		}
	}
	if a.Pool.CheckGameOver(p.Box()) {
		p.Alive = false
	}
}

// finish ends the round. Later calls have no effect.
func (r *Round) finish() {
	if r.phase == PhaseOver {
		return
	}
	r.phase = PhaseOver
}
