// Package config reads and writes the decksmith configuration file and
// locates the user's set library.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/decksmith/decksmith/internal/sheet"
)

// Config represents the application configuration
type Config struct {
	DefaultSet      string `toml:"default_set"`
	SavedObjectsDir string `toml:"saved_objects_dir"`
	SheetCapacity   int    `toml:"sheet_capacity"`
	SheetColumns    int    `toml:"sheet_columns"`
	Icon            string `toml:"icon"`
}

// SheetConfig returns the packing configuration, falling back to the
// built-in defaults for fields the config file leaves unset.
func (c *Config) SheetConfig() sheet.Config {
	cfg := sheet.DefaultConfig()
	if c.SheetCapacity > 0 {
		cfg.Capacity = c.SheetCapacity
	}
	if c.SheetColumns > 0 {
		cfg.Columns = c.SheetColumns
	}
	return cfg
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
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

// GetSetLibraryPath returns the path to the set library, where set
// files can be kept and referenced by bare name.
func GetSetLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "decksmith", "sets")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "decksmith", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults on first
// use. A DECKSMITH_SET environment variable overrides default_set.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	var config *Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create default config if it doesn't exist
		config, err = createDefaultConfig()
		if err != nil {
			return nil, err
		}
	} else {
		config = &Config{}
		if _, err := toml.DecodeFile(configPath, config); err != nil {
			return nil, fmt.Errorf("error decoding config file: %v", err)
		}
	}

	if set := os.Getenv("DECKSMITH_SET"); set != "" {
		config.DefaultSet = set
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	configPath := GetConfigFilePath()
	configDir := filepath.Dir(configPath)

	// Ensure the config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %v", err)
	}

	defaults := sheet.DefaultConfig()
	config := &Config{
		SheetCapacity: defaults.Capacity,
		SheetColumns:  defaults.Columns,
	}

	// Create the file
	file, err := os.Create(configPath)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	// Encode the config to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %v", err)
	}

	return config, nil
}

// GetSetPath returns the path to a set file: a path that exists is used
// as given, otherwise the set library is searched, probing the
// supported extensions for bare names.
func GetSetPath(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	libraryPath := GetSetLibraryPath()
	for _, candidate := range []string{
		filepath.Join(libraryPath, name),
		filepath.Join(libraryPath, name+".toml"),
		filepath.Join(libraryPath, name+".yaml"),
		filepath.Join(libraryPath, name+".yml"),
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("set not found: %s", name)
}
