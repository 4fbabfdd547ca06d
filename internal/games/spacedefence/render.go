package spacedefence

import (
	"fmt"
	"math"

	"github.com/vovakirdan/space-defence/internal/core"
)

// Visual characters for rendering
const (
	ShipNoseChar = '▲'
	ShipWingChar = '▄'
	ShipHullChar = '█'
	EnemyChar    = '▓'
	EnemyTipChar = '▼'
	ShotChar     = '┃'
)

// Minimum play-field size in cells, border excluded.
const (
	minFieldW = 12
	minFieldH = 6
)

// layout places the HUD, the play-fields and the status line on a screen.
type layout struct {
	width, height int
	fields        []core.Rect // bordered play-fields, one per arena
	tooSmall      bool
}

func computeLayout(w, h, arenas int) layout {
	l := layout{width: w, height: h}
	if arenas < 1 {
		arenas = 1
	}
	colW := w / arenas
	areaH := h - 2 // HUD row on top, status row at the bottom
	for i := 0; i < arenas; i++ {
		l.fields = append(l.fields, core.NewRect(i*colW, 1, colW, areaH))
	}
	l.tooSmall = colW-2 < minFieldW || areaH-2 < minFieldH
	return l
}

// inner returns the drawable cells of field i.
func (l layout) inner(i int) core.Rect {
	r := l.fields[i]
	return core.NewRect(r.X+1, r.Y+1, r.W-2, r.H-2)
}

// fieldX converts a screen column into an X coordinate of field i.
func (l layout) fieldX(i, col int) float64 {
	if i >= len(l.fields) {
		return (Field.Left + Field.Right) / 2
	}
	in := l.inner(i)
	if in.W <= 0 {
		return (Field.Left + Field.Right) / 2
	}
	frac := (float64(col-in.X) + 0.5) / float64(in.W)
	return Field.Left + frac*Field.Width()
}

// cells returns the screen cells covered by a field box, clipped to field i.
func (l layout) cells(i int, b core.Box) core.Rect {
	in := l.inner(i)
	sx := float64(in.W) / Field.Width()
	sy := float64(in.H) / Field.Height()

	x0 := int(math.Floor((b.Left - Field.Left) * sx))
	x1 := int(math.Ceil((b.Right - Field.Left) * sx))
	y0 := int(math.Floor((b.Top - Field.Top) * sy))
	y1 := int(math.Ceil((b.Bottom - Field.Top) * sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	x0, x1 = core.Clamp(x0, 0, in.W), core.Clamp(x1, 0, in.W)
	y0, y1 = core.Clamp(y0, 0, in.H), core.Clamp(y1, 0, in.H)
	return core.NewRect(in.X+x0, in.Y+y0, x1-x0, y1-y0)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.layout = computeLayout(dst.Width(), dst.Height(), g.mode.Players())
	if g.round == nil {
		return
	}
	if g.layout.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	g.renderHUD(dst)
	for i, a := range g.round.Arenas() {
		g.renderArena(dst, i, a)
	}
	g.renderStatus(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	arenas := g.round.Arenas()
	if len(arenas) == 1 {
		dst.DrawTextColored(1, 0, g.Title(), core.ColorBrightCyan)
		score := fmt.Sprintf("Score: %d", arenas[0].Player.Score)
		dst.DrawTextColored(dst.Width()-len(score)-1, 0, score, core.ColorBrightWhite)
		return
	}
	for i, a := range arenas {
		r := g.layout.fields[i]
		label := fmt.Sprintf("P%d  Score: %d", i+1, a.Player.Score)
		color := playerColor(i)
		if !a.Player.Alive {
			label += "  (down)"
			color = core.ColorGray
		}
		dst.DrawTextColored(r.X+1, 0, label, color)
	}
}

func (g *Game) renderArena(dst *core.Screen, i int, a *Arena) {
	border := core.ColorGray
	if !a.Player.Alive {
		border = core.ColorRed
	}
	dst.DrawBox(g.layout.fields[i], border)

	for _, e := range a.Pool.enemies {
		r := g.layout.cells(i, a.Pool.EnemyBox(e))
		dst.DrawRect(r, EnemyChar, core.ColorRed)
		if r.H > 0 && r.W > 0 {
			dst.SetColored(r.X+r.W/2, r.Bottom()-1, EnemyTipChar, core.ColorBrightRed)
		}
	}

	p := a.Player
	if p.Shot.Active {
		dst.DrawRect(g.layout.cells(i, p.Shot.Box()), ShotChar, core.ColorBrightYellow)
	}

	ship := g.layout.cells(i, p.Box())
	color := playerColor(i)
	if !p.Alive {
		color = core.ColorGray
	}
	dst.DrawRect(ship, ShipHullChar, color)
	if ship.H > 1 {
		dst.DrawRect(core.NewRect(ship.X, ship.Y, ship.W, 1), ShipWingChar, color)
	}
	if ship.W > 0 && ship.H > 0 {
		dst.SetColored(ship.X+ship.W/2, ship.Y, ShipNoseChar, color)
	}

	in := g.layout.inner(i)
	mid := in.Y + in.H/2
	switch {
	case g.round.Phase() == PhaseOver:
		dst.DrawTextCenteredIn(in, mid-1, "GAME OVER", core.ColorBrightRed)
		dst.DrawTextCenteredIn(in, mid+1, fmt.Sprintf("Score: %d", p.Score), core.ColorBrightWhite)
	case !p.Alive:
		dst.DrawTextCenteredIn(in, mid, "DESTROYED", core.ColorRed)
	case g.round.Phase() == PhasePaused:
		dst.DrawTextCenteredIn(in, mid, "PAUSED", core.ColorBrightYellow)
	}
}

func (g *Game) renderStatus(dst *core.Screen) {
	var hint string
	switch {
	case g.round.Phase() == PhaseOver:
		hint = "R restart  B menu  Q quit"
	case g.round.Phase() == PhasePaused:
		hint = "P resume  R restart  B menu  Q quit"
	case g.mode == ModeDuo:
		hint = "P1: A/D move, W fire   P2: ←/→ move, ↑ fire   P pause  Q quit"
	case g.mode == ModeTouch:
		hint = "Click to fly there and fire   P pause  R restart  Q quit"
	default:
		hint = "←/→ A/D move   ↑ W Space fire   P pause  R restart  Q quit"
	}
	dst.DrawTextCenteredIn(core.NewRect(0, 0, dst.Width(), dst.Height()), dst.Height()-1, hint, core.ColorGray)
}

func playerColor(i int) core.Color {
	if i == 1 {
		return core.ColorBrightCyan
	}
	return core.ColorBrightGreen
}
