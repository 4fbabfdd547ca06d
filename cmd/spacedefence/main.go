// spacedefence is a terminal arcade shooter: defend the bottom of the field
// against descending enemies, alone, with a friend, or by tapping.
//
// Usage:
//
//	spacedefence list              - List game modes
//	spacedefence play <mode>       - Play a mode
//	spacedefence menu              - Pick modes interactively
//	spacedefence serve             - Start SSH server for remote play
//	spacedefence config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Use a custom configuration file
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/space-defence/internal/config"
	"github.com/vovakirdan/space-defence/internal/core"
	"github.com/vovakirdan/space-defence/internal/games/spacedefence"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

// logger writes to stderr, which the alternate screen leaves untouched.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "spacedefence",
})

// gameConfig is the configuration loaded before any command runs.
var (
	gameConfig   config.SpaceDefenceConfig
	configSource string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spacedefence",
	Short: "Space Defence - shoot down descending enemies in your terminal",
	Long: `Space Defence is a terminal arcade shooter. Enemies descend from the top
of the field and get faster as your score grows; every hit scores a point.
The round ends when an enemy reaches the bottom or rams your ship.

Available commands:
  list     - Show all game modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  config   - Print the default configuration

Examples:
  spacedefence list
  spacedefence play solo
  spacedefence play duo --difficulty hard
  spacedefence menu
  spacedefence serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed (default: no progression)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setup applies the log level and loads the configuration every round uses.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	cfg, source, err := config.LoadSpaceDefence(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, preset)
	logger.Debug("configuration loaded", "source", source, "difficulty", preset)

	gameConfig, configSource = cfg, source
	spacedefence.UseConfig(cfg)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	} else {
		logger.Warn("cannot read terminal size, using defaults", "width", width, "height", height, "error", err)
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
