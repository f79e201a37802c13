package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config configures the external compiler invocation.
type Config struct {
	Flatc struct {
		// Bin is the flatc binary path; empty means lookup on PATH.
		Bin string `yaml:"bin"`
		// Args are extra arguments prepended to every invocation.
		Args []string `yaml:"args"`
	} `yaml:"flatc"`
}

// LoadConfig reads a YAML config file. An empty path yields the zero config
// (flatc from PATH, no extra args); a named file must exist and parse.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
