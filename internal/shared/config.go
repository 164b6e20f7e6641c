package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Output  OutputConfig  `toml:"output"`
	Run     RunConfig     `toml:"run"`
	Engine  EngineConfig  `toml:"engine"`
	History HistoryConfig `toml:"history"`
}

// OutputConfig controls how output paths are derived from input paths.
type OutputConfig struct {
	Prefix    string `toml:"prefix"`
	Overwrite bool   `toml:"overwrite"`
}

// RunConfig contains default run settings. Flags override these per invocation.
type RunConfig struct {
	Jobs    int     `toml:"jobs"`
	Verbose bool    `toml:"verbose"`
	Rate    float64 `toml:"rate"`
}

// EngineConfig describes the external OCR command.
type EngineConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// HistoryConfig contains run-history database settings.
type HistoryConfig struct {
	Path string `toml:"path"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
