package main

import (
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-defence/internal/platform/tui"
	"github.com/vovakirdan/space-defence/internal/registry"
	"github.com/vovakirdan/space-defence/internal/scores"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a game mode",
	Long: `Start playing the specified mode.

Modes:
  solo   - One ship; A/D or arrows move, W/Space/Up fire
  duo    - Two ships side by side: player 1 uses A/D/W, player 2 the arrows
  touch  - Click where the ship should fly; it fires on arrival

Controls:
  P          - Pause
  R          - Restart (after game over)
  Esc/B      - Back (when paused or after game over)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  spacedefence play solo
  spacedefence play duo --difficulty easy
  spacedefence play touch --config ./my-spacedefence.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	id := args[0]
	if !registry.Exists(id) {
		return fmt.Errorf("unknown mode %q; run 'spacedefence list' to see available modes", id)
	}

	game, err := registry.Create(id)
	if err != nil {
		return err
	}

	env := localEnv(scores.NewBoard(scores.DefaultKeep))
	if _, err := tui.Run(game, runtimeConfig(), env); err != nil {
		return fmt.Errorf("running %s: %w", id, err)
	}
	return nil
}

// localEnv builds the runner environment for a terminal session.
func localEnv(board *scores.Board) tui.Env {
	name := "player"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	return tui.Env{
		Board:    board,
		Logger:   logger,
		Player:   name,
		Hold:     gameConfig.Input.HoldWindow(),
		FireHold: gameConfig.Input.FireHoldWindow(),
	}
}
