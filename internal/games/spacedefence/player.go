package spacedefence

import (
	"time"

	"github.com/vovakirdan/space-defence/internal/core"
)

// Controls is one player's input for a frame.
type Controls struct {
	Left, Right bool
	Shoot       bool // held, not edge

	Tap  bool    // touch mode: a tap happened this frame
	TapX float64 // tap position in field units
}

// Shot is a player's single projectile.
type Shot struct {
	X, Y     float64
	Active   bool
	lastMove time.Duration
	s        *Settings
}

// Fire launches the shot from (x, PlayerY). It is a no-op while the shot is
// active; reports whether a shot left the ship.
func (sh *Shot) Fire(now time.Duration, x float64) bool {
	if sh.Active {
		return false
	}
	sh.X = x
	sh.Y = sh.s.PlayerY
	sh.lastMove = now
	sh.Active = true
	return true
}

// Update moves an active shot and retires it once it is fully past the top.
func (sh *Shot) Update(now time.Duration) {
	if !sh.Active {
		return
	}
	elapsed := elapsedSeconds(now, sh.lastMove)
	sh.lastMove = now
	sh.Y += sh.s.ShotVelocity * elapsed

	if sh.Y < sh.s.Field.Top-sh.s.ShotHeight/2 {
		sh.Reset()
	}
}

// Reset deactivates the shot and returns it to the ship.
func (sh *Shot) Reset() {
	sh.Active = false
	sh.Y = sh.s.PlayerY
}

// Box returns the shot's bounding box.
func (sh *Shot) Box() core.Box {
	return core.BoxAt(sh.X, sh.Y, sh.s.ShotWidth, sh.s.ShotHeight)
}

func (sh *Shot) shift(d time.Duration) {
	sh.lastMove += d
}

// Player is a ship at the bottom of a play-field.
type Player struct {
	X           float64
	Destination float64 // touch mode target
	Score       int
	Alive       bool
	Touch       bool
	Shot        Shot

	shooting bool // shoot control seen held; cleared on release
	lastMove time.Duration
	s        *Settings
}

// NewPlayer creates a ship centred in the field.
func NewPlayer(s *Settings, touch bool, now time.Duration) *Player {
	p := &Player{s: s, Touch: touch}
	p.Shot.s = s
	p.Reset(now)
	return p
}

// Reset returns the player to its round-start state.
func (p *Player) Reset(now time.Duration) {
	p.X = (p.s.Field.Left + p.s.Field.Right) / 2
	p.Destination = p.X
	p.Score = 0
	p.Alive = true
	p.shooting = false
	p.lastMove = now
	p.Shot.Reset()
}

// Update applies one frame of controls: movement, then firing.
func (p *Player) Update(now time.Duration, c Controls) {
	elapsed := elapsedSeconds(now, p.lastMove)
	p.lastMove = now

	if p.Touch {
		p.seek(now, elapsed, c)
		return
	}

	dir := 0.0
	if c.Left {
		dir--
	}
	if c.Right {
		dir++
	}
	p.X = core.ClampF(p.X+dir*p.s.PlayerSpeed*elapsed, p.s.PlayerMinX(), p.s.PlayerMaxX())

	if c.Shoot {
		if !p.shooting {
			p.Shot.Fire(now, p.X)
			p.shooting = true
		}
	} else {
		p.shooting = false
	}
}

// seek moves toward the tapped destination and fires on arrival.
func (p *Player) seek(now time.Duration, elapsed float64, c Controls) {
	if c.Tap {
		p.Destination = core.ClampF(c.TapX, p.s.PlayerMinX(), p.s.PlayerMaxX())
		if p.X == p.Destination {
			p.Shot.Fire(now, p.X)
		}
	}

	step := p.s.PlayerSpeed * elapsed
	switch {
	case p.X < p.Destination:
		p.X += step
		if p.X >= p.Destination {
			p.X = p.Destination
			p.Shot.Fire(now, p.X)
		}
	case p.X > p.Destination:
		p.X -= step
		if p.X <= p.Destination {
			p.X = p.Destination
			p.Shot.Fire(now, p.X)
		}
	}
}

// Box returns the ship's bounding box.
func (p *Player) Box() core.Box {
	return core.BoxAt(p.X, p.s.PlayerY, p.s.PlayerWidth, p.s.PlayerHeight)
}

func (p *Player) shift(d time.Duration) {
	p.lastMove += d
	p.Shot.shift(d)
}
