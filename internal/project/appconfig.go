package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"

	"github.com/piwi3910/PrintCost/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. PRINTCOST_CURRENCY.
const EnvPrefix = "PRINTCOST_"

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.printcost/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".printcost")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
// Fields missing from the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	switch err := readJSON(path, &config); {
	case os.IsNotExist(err):
		return model.DefaultAppConfig(), nil
	case err != nil:
		return model.AppConfig{}, err
	}
	return config, nil
}

// ApplyEnv overrides config fields from PRINTCOST_* environment variables.
// Unset variables leave the corresponding field untouched.
func ApplyEnv(config model.AppConfig) (model.AppConfig, error) {
	if err := env.ParseWithOptions(&config, env.Options{Prefix: EnvPrefix}); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	return config, nil
}

// LoadConfig loads the config file at path and applies environment overrides.
func LoadConfig(path string) (model.AppConfig, error) {
	config, err := LoadAppConfig(path)
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return ApplyEnv(config)
}
