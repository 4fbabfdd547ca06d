package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "spacedefence.yaml"

// SourceEmbedded names the built-in configuration in LoadSpaceDefence results.
const SourceEmbedded = "embedded"

// LoadSpaceDefence loads Space Defence configuration and validates it.
// Search order: customPath -> ~/.spacedefence/configs/spacedefence.yaml ->
// ./configs/spacedefence.yaml -> embedded default.
// Files are overlaid on the defaults, so a file may set only the keys it cares about.
// The returned source is the path that was used, or SourceEmbedded.
func LoadSpaceDefence(customPath string) (SpaceDefenceConfig, string, error) {
	// A custom path must load
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	candidates := []string{userConfigPath(ConfigFile), filepath.Join("configs", ConfigFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := loadFile(path)
		if err != nil {
			return cfg, path, err
		}
		return cfg, path, nil
	}

	cfg, err := parse(defaultSpaceDefenceYAML)
	if err != nil {
		// Fallback to hardcoded if embed is broken
		return DefaultSpaceDefenceConfig(), SourceEmbedded, nil
	}
	return cfg, SourceEmbedded, nil
}

func loadFile(path string) (SpaceDefenceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SpaceDefenceConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// parse overlays YAML data on the defaults and validates the result.
func parse(data []byte) (SpaceDefenceConfig, error) {
	cfg := DefaultSpaceDefenceConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".spacedefence", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
// The empty preset leaves the config untouched.
func ApplyPreset(cfg *SpaceDefenceConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
