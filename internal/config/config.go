package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for leakgate.
// Absent fields mean "no filtering" for that dimension.
type FileConfig struct {
	// IgnorePaths entries are matched by substring containment against
	// file paths from the diff.
	IgnorePaths []string `yaml:"ignore_paths"`
	// Allowlist entries are regular expressions; a matched credential
	// candidate is suppressed when any of them matches.
	Allowlist []string `yaml:"allowlist"`

	Include *string `yaml:"include"`
	Exclude *string `yaml:"exclude"`
	Threads *int    `yaml:"threads"`
	FailOn  *string `yaml:"fail_on"`
	NoColor *bool   `yaml:"no_color"`
	NoCache *bool   `yaml:"no_cache"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .leakgate.yml/.yaml and leakgate.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".leakgate.yml", ".leakgate.yaml", "leakgate.yml", "leakgate.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "leakgate", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
