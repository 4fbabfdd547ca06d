package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/space-defence/internal/core"
	"github.com/vovakirdan/space-defence/internal/registry"
	"github.com/vovakirdan/space-defence/internal/scores"
)

// fakeGame ends the round once overAfter frames have run.
type fakeGame struct {
	id        string
	players   int
	overAfter int
	score     int
	perShip   []int

	resets int
	steps  int
	last   core.MultiInputFrame
	seeds  []int64
}

func (g *fakeGame) ID() string { return g.id }
func (g *fakeGame) Title() string { return "Fake " + g.id }
func (g *fakeGame) Players() int { return g.players }
func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.seeds = append(g.seeds, cfg.Seed)
}
func (g *fakeGame) Step(in core.MultiInputFrame) core.StepResult {
	g.steps++
	g.last = in.Clone()
	return core.StepResult{State: g.State()}
}
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "FAKE "+g.id) }
func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.overAfter > 0 && g.steps >= g.overAfter}
}

type fakeDuo struct{ fakeGame }

func (g *fakeDuo) Scores() []int { return g.perShip }

type testClock struct{ t time.Time }

func newTestClock() *testClock {
	return &testClock{t: time.Unix(1000, 0)}
}

func (c *testClock) now() time.Time {
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func startModel(t *testing.T, g registry.Game, env Env) (Model, *testClock) {
	t.Helper()
	clock := newTestClock()
	m := NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 42}, env)
	m.now = clock.now
	m.started = clock.now()
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelRecordsScoreOnce(t *testing.T) {
	board := scores.NewBoard(10)
	g := &fakeGame{id: "solo", players: 1, overAfter: 2, score: 7}
	m, _ := startModel(t, g, Env{Board: board, Player: "ann"})

	for i := 0; i < 5; i++ {
		m, _ = update(t, m, TickMsg{})
	}

	top := board.TopScores("solo", 10)
	if len(top) != 1 {
		t.Fatalf("expected one recorded score, got %d", len(top))
	}
	if top[0].Player != "ann" || top[0].Score != 7 {
		t.Errorf("recorded %+v", top[0])
	}
	if !m.gameState.GameOver {
		t.Error("model should have seen the game over")
	}
}

func TestModelSkipsZeroScore(t *testing.T) {
	board := scores.NewBoard(10)
	g := &fakeGame{id: "solo", players: 1, overAfter: 1}
	m, _ := startModel(t, g, Env{Board: board})

	update(t, m, TickMsg{})

	if len(board.TopScores("solo", 10)) != 0 {
		t.Error("a zero score should not enter the table")
	}
}

func TestModelRecordsDuel(t *testing.T) {
	board := scores.NewBoard(10)
	g := &fakeDuo{fakeGame{id: "duo", players: 2, overAfter: 1, score: 4}}
	g.perShip = []int{2, 4}
	m, clock := startModel(t, g, Env{Board: board, Player: "kim"})

	clock.advance(3 * time.Second)
	update(t, m, TickMsg{})

	duels := board.RecentDuels(10)
	if len(duels) != 1 {
		t.Fatalf("expected one duel, got %d", len(duels))
	}
	d := duels[0]
	if d.Score1 != 2 || d.Score2 != 4 || d.Winner() != 2 || d.Duration != 3*time.Second {
		t.Errorf("duel = %+v", d)
	}

	top := board.TopScores("duo", 10)
	if len(top) != 1 || top[0].Player != "kim (P2)" || top[0].Score != 4 {
		t.Errorf("duo scores = %+v", top)
	}
}

func TestModelHeldKeysReachGame(t *testing.T) {
	g := &fakeGame{id: "solo", players: 1}
	m, clock := startModel(t, g, Env{Hold: 100 * time.Millisecond, FireHold: 100 * time.Millisecond})

	m, _ = update(t, m, runeKey('a'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, TickMsg{})

	if !g.last.Player1().Has(core.ActionLeft) {
		t.Error("player 1 left should be held")
	}
	if !g.last.Player2().Has(core.ActionShoot) {
		t.Error("player 2 fire should be held")
	}

	clock.advance(200 * time.Millisecond)
	m, _ = update(t, m, TickMsg{})
	if g.last.Has(core.ActionLeft) || g.last.Has(core.ActionShoot) {
		t.Error("keys should be released after the hold window")
	}
}

func TestModelPauseIsAnEdge(t *testing.T) {
	g := &fakeGame{id: "solo", players: 1}
	m, _ := startModel(t, g, Env{})

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, TickMsg{})
	if !g.last.Has(core.ActionPause) {
		t.Error("pause should reach the next frame")
	}

	m, _ = update(t, m, TickMsg{})
	if g.last.Has(core.ActionPause) {
		t.Error("pause should be delivered once")
	}
}

func TestModelMouseTap(t *testing.T) {
	g := &fakeGame{id: "touch", players: 1}
	m, _ := startModel(t, g, Env{})

	m, _ = update(t, m, tea.MouseMsg{X: 12, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m, _ = update(t, m, TickMsg{})

	tap := g.last.Player1().Tap
	if !tap.Active || tap.X != 12 || tap.Y != 5 {
		t.Errorf("tap = %+v", tap)
	}

	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 3, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	update(t, m, TickMsg{})
	if g.last.Player1().Tap.Active {
		t.Error("right clicks should be ignored")
	}
}

func TestModelRestart(t *testing.T) {
	board := scores.NewBoard(10)
	g := &fakeGame{id: "solo", players: 1, overAfter: 2, score: 3}
	m, _ := startModel(t, g, Env{Board: board})

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})
	if g.resets != 2 {
		t.Fatalf("restart while running should reset, resets = %d", g.resets)
	}
	if g.steps != 0 {
		t.Error("the restart frame should not step the new round")
	}
	if g.seeds[1] != 42 {
		t.Errorf("a fixed seed should be reused, got %d", g.seeds[1])
	}

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})
	if !m.gameState.GameOver || !m.scoreSaved {
		t.Fatal("round should be over and recorded")
	}

	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})
	if g.resets != 3 || m.scoreSaved || m.gameState.GameOver {
		t.Error("restart after game over should start a fresh round")
	}

	m, _ = update(t, m, TickMsg{})
	update(t, m, TickMsg{})
	if got := board.GetGameStats("solo").GamesCount; got != 2 {
		t.Errorf("only finished rounds are recorded, got %d", got)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	g := &fakeGame{id: "solo", players: 1, overAfter: 1}
	m, _ := startModel(t, g, Env{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() || cmd != nil {
		t.Error("back is ignored while the round runs")
	}

	m, _ = update(t, m, TickMsg{})
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || cmd == nil {
		t.Error("back after game over should leave the program")
	}

	m, cmd = update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	g := &fakeGame{id: "solo", players: 1}
	m, _ := startModel(t, g, Env{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 20})

	if g.resets != 1 {
		t.Error("resizing must not restart the round")
	}
	if m.Config().ScreenW != 50 || m.screen.Height() != 20 {
		t.Errorf("screen not resized: %dx%d", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "FAKE solo") {
		t.Error("view should render the game")
	}
}
