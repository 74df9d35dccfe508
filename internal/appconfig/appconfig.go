// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultIterations is the tracked trial count used when the config omits it.
	defaultIterations = 10
	// defaultWarmupIterations is the untracked warmup count used when the config omits it.
	defaultWarmupIterations = 2
	// defaultOutputDir receives export and dashboard artifacts.
	defaultOutputDir = "proofbenchData"
)

// Config represents the top-level application configuration.
type Config struct {
	Verbose          bool   `json:"verbose"`
	WarmupIterations int    `json:"warmupIterations"`
	Iterations       int    `json:"iterations"`
	OutputDir        string `json:"outputDir,omitempty"`
	LogFile          string `json:"logFile,omitempty"`
	ConfigPath       string `json:"-"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		WarmupIterations: defaultWarmupIterations,
		Iterations:       defaultIterations,
	}
}

// OutputDirPath returns the artifact directory, applying the default if not set.
func (c Config) OutputDirPath() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return defaultOutputDir
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return "proofbench.log"
}

// Load reads the application configuration from the specified path. A
// missing file at the default path yields the defaults rather than an error.
func Load(path string) (Config, error) {
	usingDefault := path == ""
	if usingDefault {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if usingDefault {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config := Default()
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
