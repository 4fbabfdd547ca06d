package spacedefence

import (
	"slices"
	"time"

	"github.com/vovakirdan/space-defence/internal/core"
)

// Enemy is a descending invader. X and Velocity never change after spawn.
type Enemy struct {
	X, Y     float64
	Velocity float64
	lastMove time.Duration
}

func (e *Enemy) update(now time.Duration) {
	elapsed := elapsedSeconds(now, e.lastMove)
	e.lastMove = now
	e.Y += e.Velocity * elapsed
}

// Pool holds the enemies of one play-field in spawn order: index 0 is the oldest.
type Pool struct {
	enemies   []Enemy
	nextSpawn time.Duration
	s         *Settings
}

// NewPool creates an empty pool whose first spawn is one delay after now.
func NewPool(s *Settings, now time.Duration) *Pool {
	p := &Pool{s: s}
	p.Reset(now)
	return p
}

// Reset removes every enemy and restarts the spawn timer.
func (p *Pool) Reset(now time.Duration) {
	p.enemies = p.enemies[:0]
	p.nextSpawn = now + p.s.SpawnDelay
}

// Len returns the number of live enemies.
func (p *Pool) Len() int {
	return len(p.enemies)
}

// At returns the enemy at index i (0 = oldest).
func (p *Pool) At(i int) Enemy {
	return p.enemies[i]
}

// Enemies returns a snapshot of the pool, oldest first.
func (p *Pool) Enemies() []Enemy {
	return slices.Clone(p.enemies)
}

// NextSpawn returns when the spawn timer fires next.
func (p *Pool) NextSpawn() time.Duration {
	return p.nextSpawn
}

// DueSpawns advances the spawn timer past now in fixed increments of delay
// and returns how many spawns fell due. A long frame yields several.
func (p *Pool) DueSpawns(now, delay time.Duration) int {
	if delay <= 0 {
		return 0
	}
	n := 0
	for now >= p.nextSpawn {
		n++
		p.nextSpawn += delay
	}
	return n
}

// Spawn adds an enemy at the top of the field.
func (p *Pool) Spawn(now time.Duration, x, velocity float64) {
	p.enemies = append(p.enemies, Enemy{
		X:        x,
		Y:        p.s.Field.Top,
		Velocity: velocity,
		lastMove: now,
	})
}

// Update moves every enemy, split across the configured workers.
func (p *Pool) Update(now time.Duration) {
	enemies := p.enemies
	forEachInterleaved(len(enemies), p.s.Workers, func(_, i int) {
		enemies[i].update(now)
	})
}

// RemoveAt deletes the enemy at index i, keeping the others in spawn order.
func (p *Pool) RemoveAt(i int) {
	p.enemies = slices.Delete(p.enemies, i, i+1)
}

// EnemyBox returns an enemy's bounding box.
func (p *Pool) EnemyBox(e Enemy) core.Box {
	return core.BoxAt(e.X, e.Y, p.s.EnemyWidth, p.s.EnemyHeight)
}

// CheckShotContact scans from the newest enemy to the oldest and removes the
// first one the shot box touches.
func (p *Pool) CheckShotContact(shot core.Box) (Enemy, bool) {
	for i := len(p.enemies) - 1; i >= 0; i-- {
		e := p.enemies[i]
		if p.EnemyBox(e).Intersects(shot) {
			p.RemoveAt(i)
			return e, true
		}
	}
	return Enemy{}, false
}

// CheckGameOver reports whether an enemy reached the bottom of the field or
// touched the player. With OldestOnly set only enemy 0 is inspected, which is
// sound as long as later enemies are never slower than earlier ones.
func (p *Pool) CheckGameOver(player core.Box) bool {
	candidates := p.enemies
	if p.s.OldestOnly && len(candidates) > 1 {
		candidates = candidates[:1]
	}
	for _, e := range candidates {
		box := p.EnemyBox(e)
		if box.Bottom >= p.s.Field.Bottom || box.Intersects(player) {
			return true
		}
	}
	return false
}

func (p *Pool) shift(d time.Duration) {
	p.nextSpawn += d
	for i := range p.enemies {
		p.enemies[i].lastMove += d
	}
}
