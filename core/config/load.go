package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := os.ReadFile(filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}

	return &out, nil
}

// Initialize writes the default configuration into the directory, refusing
// to overwrite an existing one.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(path, ConfigurationName)

	if _, err := os.Stat(configPath); err == nil {
		return nil, errors.New("configuration already exists, not overwriting")
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	logger.Printf("Writing %s", configPath)
	if err := os.WriteFile(configPath, defaultConfigData, 0600); err != nil {
		return nil, err
	}

	return Load(path)
}
