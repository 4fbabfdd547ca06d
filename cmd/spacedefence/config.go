package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/space-defence/internal/config"
)

var flagShowSource bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML.

Save it as ~/.spacedefence/configs/spacedefence.yaml or
./configs/spacedefence.yaml and edit it to tune the game. Files are
searched in that order after --config; missing keys keep their defaults.

Examples:
  spacedefence config > ./configs/spacedefence.yaml
  spacedefence config --source`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagShowSource, "source", false, "Print where the active configuration was loaded from")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagShowSource {
		fmt.Println(configSource)
		return nil
	}

	_, err := os.Stdout.Write(config.GetDefaultYAML())
	return err
}
