package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"ninjazombie/internal/engine"
)

// Settings is the server configuration file.
type Settings struct {
	Server  ServerSettings `yaml:"server"`
	Ruleset engine.Config  `yaml:"ruleset"`
}

type ServerSettings struct {
	Port int `yaml:"port"`

	// Database is the SQLite file for match history. Empty disables history.
	Database string `yaml:"database"`
}

func Default() Settings {
	return Settings{
		Server: ServerSettings{
			Port:     8080,
			Database: "data/history.db",
		},
		Ruleset: engine.DefaultConfig(),
	}
}

// Load reads settings from path. Keys missing from the file keep their
// defaults, and a missing file yields Default().
func Load(path string) (Settings, error) {
	s := Default()
	f, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(f, &s); err != nil {
		return s, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.Server.Port < 1 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", s.Server.Port)
	}
	return s.Ruleset.Validate()
}
