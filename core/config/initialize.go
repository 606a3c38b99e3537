package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration file into the given directory
// and returns the loaded result. Existing files are left alone so running it
// twice is safe.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	return InitializeFs(afero.NewOsFs(), path, logger)
}

// InitializeFs is Initialize over an explicit filesystem.
func InitializeFs(fsys afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(path, ConfigurationName)

	exists, err := afero.Exists(fsys, configPath)
	switch {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("%s already exists, not overwriting", configPath)
	default:
		if err := afero.WriteFile(fsys, configPath, defaultConfigData, 0644); err != nil {
			return nil, err
		}
		logger.Printf("wrote %s", configPath)
	}

	return LoadFs(fsys, path)
}
