package storage

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Match modes accepted in the config file.
const (
	MatchSubstring = "substring"
	MatchFuzzy     = "fuzzy"
)

// Config holds application configuration.
type Config struct {
	Bookmarks       string `yaml:"bookmarks"`
	ResultFile      string `yaml:"result_file,omitempty"`
	Match           string `yaml:"match"`
	PreviewMaxBytes int    `yaml:"preview_max_bytes"`
	LogFile         string `yaml:"log_file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	bookmarks, err := DefaultBookmarksPath()
	if err != nil {
		bookmarks = "bookmarks.txt"
	}
	return Config{
		Bookmarks:       bookmarks,
		Match:           MatchSubstring,
		PreviewMaxBytes: 4096,
	}
}

// LoadConfig reads config from the YAML file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.Bookmarks == "" {
		config.Bookmarks = defaults.Bookmarks
	}
	if config.Match != MatchSubstring && config.Match != MatchFuzzy {
		config.Match = defaults.Match
	}
	if config.PreviewMaxBytes <= 0 {
		config.PreviewMaxBytes = defaults.PreviewMaxBytes
	}
	config.Bookmarks = ExpandHome(config.Bookmarks)
	config.ResultFile = ExpandHome(config.ResultFile)
	config.LogFile = ExpandHome(config.LogFile)

	return &config, nil
}

// SaveConfig writes config to the YAML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/bmdir/config.yaml
func DefaultConfigFilePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
