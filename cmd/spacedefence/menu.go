package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-defence/internal/platform/tui"
	"github.com/vovakirdan/space-defence/internal/registry"
	"github.com/vovakirdan/space-defence/internal/scores"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start Space Defence in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a round, press Esc to return to the menu and play again.
High scores are kept until the program exits.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  ?            - How to play
  Tab          - High scores
  Q            - Quit

Examples:
  spacedefence menu
  spacedefence menu --fps 30`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	board := scores.NewBoard(scores.DefaultKeep)
	env := localEnv(board)
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(board, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "mode", menuResult.GameID, "error", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, cfg, env)
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
	}
}
