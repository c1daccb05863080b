package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	URL     string       `yaml:"url"`
	Auth    AuthConfig   `yaml:"auth"`
	Filters FilterConfig `yaml:"filters"`
	Output  OutputConfig `yaml:"output"`
	Export  ExportConfig `yaml:"export"`
}

// AuthConfig holds repository credentials. The password is never stored in
// the file; PasswordEnv names the environment variable that carries it.
type AuthConfig struct {
	Username    string `yaml:"username"`
	PasswordEnv string `yaml:"password_env"`
}

// FilterConfig holds changed-path filtering options.
type FilterConfig struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// OutputConfig holds report rendering options.
type OutputConfig struct {
	Format string `yaml:"format"` // console, json, csv, markdown, ci
	Limit  int    `yaml:"limit"`  // 0 = all revisions
}

// ExportConfig holds git export options.
type ExportConfig struct {
	Dest         string `yaml:"dest"`
	AuthorDomain string `yaml:"author_domain"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Output: OutputConfig{
			Format: "console",
			Limit:  0,
		},
		Export: ExportConfig{
			AuthorDomain: "svn.invalid",
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".svnlens.yml"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".svnlens.yml"))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, ".svnlens.yml"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
