package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/space-defence/internal/core"
	"github.com/vovakirdan/space-defence/internal/registry"
	"github.com/vovakirdan/space-defence/internal/scores"
)

// Hold windows used when Env leaves them unset.
const (
	DefaultHoldWindow     = 150 * time.Millisecond
	DefaultFireHoldWindow = 500 * time.Millisecond
)

// Env carries what a runner needs besides the game itself.
type Env struct {
	Board  *scores.Board // nil disables score recording
	Logger *log.Logger   // nil discards log output
	Player string        // name recorded with scores
	Hold   time.Duration // how long a key stays held after its last press

	// FireHold is the hold window of the fire key.
	FireHold time.Duration
}

func (e Env) withDefaults() Env {
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	if e.Player == "" {
		e.Player = "player"
	}
	if e.Hold <= 0 {
		e.Hold = DefaultHoldWindow
	}
	if e.FireHold <= 0 {
		e.FireHold = DefaultFireHoldWindow
	}
	return e
}

// multiScorer is implemented by games that track one score per ship.
type multiScorer interface {
	Scores() []int
}

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	env       Env
	config    core.RuntimeConfig
	fixedSeed bool
	keys      *KeyMapper
	hold      *HoldTracker
	pending   core.MultiInputFrame // edge actions and taps since the last frame
	gameState core.GameState
	started   time.Time
	now       func() time.Time

	embedded   bool // inside a SessionModel; back does not end the program
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the score has been recorded for the current game over
}

// NewModel creates a runner for game and starts its first round.
func NewModel(game registry.Game, cfg core.RuntimeConfig, env Env) Model {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	env = env.withDefaults()

	m := Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		env:       env,
		config:    cfg,
		fixedSeed: fixed,
		keys:      NewKeyMapper(),
		hold:      NewHoldTracker(env.Hold, env.FireHold),
		pending:   core.NewMultiInputFrame(),
		now:       time.Now,
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.started = m.now()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		// The round keeps running; the game lays itself out again on the next render.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id, action := m.keys.MapKey(msg)

	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if !m.embedded {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if isHeld(action) {
		m.hold.Press(id, action, m.now())
	} else {
		m.pending.Set(id, action)
	}
	return m, nil
}

// handleMouse turns left-button presses and drags into taps for player 1.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return m, nil
	}

	frame := m.pending.Player(core.Player1)
	frame.SetTap(msg.X, msg.Y)
	m.pending.SetPlayer(core.Player1, frame)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	now := m.now()

	if m.pending.Has(core.ActionRestart) {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	frame := m.pending.Clone()
	m.hold.Apply(&frame, now)

	result := m.game.Step(frame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.recordScore(now)
		m.scoreSaved = true
	}

	m.pending.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart begins a new round. A seed given on the command line is reused.
func (m *Model) restart() {
	if !m.fixedSeed {
		m.config.Seed = m.now().UnixNano()
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.started = m.now()
	m.pending.Clear()
	m.hold.Reset()
}

// recordScore writes the finished round to the board.
func (m *Model) recordScore(now time.Time) {
	perShip := []int{m.gameState.Score}
	if ms, ok := m.game.(multiScorer); ok {
		perShip = ms.Scores()
	}

	m.env.Logger.Debug("round over",
		"mode", m.game.ID(),
		"player", m.env.Player,
		"scores", perShip,
		"duration", now.Sub(m.started).Round(time.Millisecond),
	)

	if m.env.Board == nil {
		return
	}

	if len(perShip) == 2 {
		m.env.Board.SaveDuel(scores.DuelResult{
			GameID:   m.game.ID(),
			Player1:  shipLabel(m.env.Player, 1),
			Player2:  shipLabel(m.env.Player, 2),
			Score1:   perShip[0],
			Score2:   perShip[1],
			Duration: now.Sub(m.started),
		})
	}

	if m.gameState.Score <= 0 {
		return
	}
	name := m.env.Player
	if len(perShip) == 2 {
		winner := 1
		if perShip[1] > perShip[0] {
			winner = 2
		}
		name = shipLabel(m.env.Player, winner)
	}
	_, rank := m.env.Board.SaveScore(m.game.ID(), name, m.gameState.Score)
	if rank > 0 {
		m.env.Logger.Info("new high score entry", "mode", m.game.ID(), "player", name, "score", m.gameState.Score, "rank", rank)
	}
}

func shipLabel(player string, ship int) string {
	return fmt.Sprintf("%s (P%d)", player, ship)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the runtime config, updated by resizes.
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// Run starts a Bubble Tea program for game and blocks until it ends.
// Returns true if the user asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, env Env) (backToMenu bool, err error) {
	model := NewModel(game, cfg, env)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // taps steer the touch mode
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
