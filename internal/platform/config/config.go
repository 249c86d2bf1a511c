package config

import (
	"fmt"
	"path/filepath"
)

type Config struct {
	DataDir       string
	StatePath     string
	DBPath        string
	NotifiersPath string
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:       dataDir,
		StatePath:     filepath.Join(dataDir, "state.json"),
		DBPath:        filepath.Join(dataDir, ".moonlight", "index.db"),
		NotifiersPath: filepath.Join(dataDir, "notifiers.yaml"),
	}, nil
}
