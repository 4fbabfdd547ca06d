// Package spacedefence implements Space Defence: ships at the bottom of a
// play-field shoot down enemies that descend from the top.
package spacedefence

import (
	"sync"

	"github.com/vovakirdan/space-defence/internal/config"
	"github.com/vovakirdan/space-defence/internal/core"
	"github.com/vovakirdan/space-defence/internal/registry"
)

// Mode selects how many ships there are and how they are steered.
type Mode int

const (
	ModeSolo  Mode = iota // one ship, keyboard; either key set steers it
	ModeDuo               // two ships, split screen, one keyboard
	ModeTouch             // one ship that flies to tapped positions and fires on arrival
)

// ID returns the registry identifier of the mode.
func (m Mode) ID() string {
	switch m {
	case ModeDuo:
		return "duo"
	case ModeTouch:
		return "touch"
	default:
		return "solo"
	}
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeDuo:
		return "Space Defence: Duo"
	case ModeTouch:
		return "Space Defence: Touch"
	default:
		return "Space Defence"
	}
}

// Players returns the number of ships in the mode.
func (m Mode) Players() int {
	if m == ModeDuo {
		return 2
	}
	return 1
}

// activeConfig is the configuration new rounds are built from.
var (
	configMu     sync.RWMutex
	activeConfig = config.DefaultSpaceDefenceConfig()
)

// UseConfig sets the configuration used by every subsequent Reset.
func UseConfig(cfg config.SpaceDefenceConfig) {
	configMu.Lock()
	defer configMu.Unlock()
	activeConfig = cfg
}

// CurrentConfig returns the configuration new rounds are built from.
func CurrentConfig() config.SpaceDefenceConfig {
	configMu.RLock()
	defer configMu.RUnlock()
	return activeConfig
}

// Game adapts a Round to the platform's Game interface.
type Game struct {
	mode    Mode
	cfg     config.SpaceDefenceConfig
	runtime core.RuntimeConfig
	round   *Round
	layout  layout
}

// New creates a game in the given mode.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.mode.ID()
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.mode.Title()
}

// Players returns how many local players share the keyboard.
func (g *Game) Players() int {
	return g.mode.Players()
}

// Mode returns the game's mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset starts a fresh round with the current configuration.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.cfg = CurrentConfig()

	dm := config.NewDifficultyManager(g.cfg.Difficulty)
	g.round = NewRound(NewSettings(g.cfg), g.mode.Players(), g.mode == ModeTouch, cfg.ClockOrSystem(), cfg.Seed, dm)
	g.layout = computeLayout(cfg.ScreenW, cfg.ScreenH, g.mode.Players())
}

// Step toggles pause on request, then advances the round to the current time.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.round == nil {
		g.Reset(g.runtime)
	}

	if in.Has(core.ActionPause) {
		g.round.TogglePause()
	}
	g.round.Step(g.controls(in))

	return core.StepResult{State: g.State()}
}

// controls translates platform actions into per-arena controls.
func (g *Game) controls(in core.MultiInputFrame) []Controls {
	if g.mode == ModeDuo {
		return []Controls{
			controlsFrom(in.Player1()),
			controlsFrom(in.Player2()),
		}
	}

	frame := in.Combined()
	c := controlsFrom(frame)
	if g.mode == ModeTouch && frame.Tap.Active {
		c.Tap = true
		c.TapX = g.layout.fieldX(0, frame.Tap.X)
	}
	return []Controls{c}
}

func controlsFrom(f core.InputFrame) Controls {
	return Controls{
		Left:  f.Has(core.ActionLeft),
		Right: f.Has(core.ActionRight),
		Shoot: f.Has(core.ActionShoot),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.round.Score(),
		GameOver: g.round.IsGameOver(),
		Paused:   g.round.Phase() == PhasePaused,
	}
}

// Scores returns each player's score in player order.
func (g *Game) Scores() []int {
	if g.round == nil {
		return nil
	}
	scores := make([]int, 0, len(g.round.Arenas()))
	for _, a := range g.round.Arenas() {
		scores = append(scores, a.Player.Score)
	}
	return scores
}

// Round exposes the underlying simulation.
func (g *Game) Round() *Round {
	return g.round
}

func init() {
	for _, m := range []Mode{ModeSolo, ModeDuo, ModeTouch} {
		registry.Register(m.ID(), func() registry.Game { return New(m) })
	}
}
