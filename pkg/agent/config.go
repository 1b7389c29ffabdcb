package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the layout of an agent profile file.
type File struct {
	Agents []Config `yaml:"agents"`
}

// LoadConfigs reads agent profiles from a YAML file.
// Environment variables referenced as ${VAR} or $VAR are expanded before
// parsing, so referers, titles or models can come from the environment.
func LoadConfigs(path string) ([]Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return nil, fmt.Errorf("agent: load config: %w", err)
	}

	return ParseConfigs(data)
}

// ParseConfigs parses agent profiles from YAML data, expanding environment
// variables first.
func ParseConfigs(data []byte) ([]Config, error) {
	expanded := os.ExpandEnv(string(data))

	var f File
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return nil, fmt.Errorf("agent: parse config: %w", err)
	}

	return f.Agents, nil
}
