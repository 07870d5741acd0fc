package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	SourceDir    string `toml:"source_dir"`
	TemplateDir  string `toml:"template_dir"`
	OutputDir    string `toml:"output_dir"`
	Pattern      string `toml:"pattern"`
	CardTemplate string `toml:"card_template"`
	ListTemplate string `toml:"list_template"`
	Passes       int    `toml:"passes"`
	LogLevel     string `toml:"log_level"`
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		SourceDir:    "source",
		TemplateDir:  "template",
		OutputDir:    "output",
		Pattern:      "*.json",
		CardTemplate: "card.json",
		ListTemplate: "list.json",
		Passes:       1,
		LogLevel:     "info",
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "deckhand", "config.toml")
}

// LoadConfig loads the config file at path. A missing file yields the
// defaults; keys left out of the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the pipeline cannot run with
func (c *Config) Validate() error {
	if c.Passes < 1 {
		return fmt.Errorf("passes must be at least 1, got %d", c.Passes)
	}
	if c.Pattern == "" {
		return fmt.Errorf("pattern must not be empty")
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("invalid pattern %q: %v", c.Pattern, err)
	}
	return nil
}

// WriteDefault writes a default config file to path. An existing file is left
// alone.
func WriteDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return LoadConfig(path)
	}

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %v", err)
	}

	config := Default()

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %v", err)
	}

	return config, nil
}
