// Package config loads server configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvProjects holds the comma-separated list of Firestore project ids.
	EnvProjects = "FIRESTORE_PROJECTS"
	// EnvKeyPath optionally points at a single explicit service-account key
	// file, applied to whichever project is being initialized.
	EnvKeyPath = "SERVICE_ACCOUNT_KEY_PATH"

	// DefaultProjectID is used when no projects are configured at all.
	DefaultProjectID = "demo-project"
)

// Config holds the complete application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Logging     LoggingConfig     `yaml:"logging"`

	// Projects is the parsed project id list and RawProjects the literal
	// configuration value it came from (reported by listProjects).
	Projects    []string `yaml:"-"`
	RawProjects string   `yaml:"-"`

	// KeyPathOverride, when non-empty, bypasses per-project credential
	// file discovery.
	KeyPathOverride string `yaml:"-"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig selects the document store backend.
type DatabaseConfig struct {
	// Backend is "firestore" (default) or "sqlite" for the credential-free
	// local store.
	Backend string       `yaml:"backend"`
	SQLite  SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig holds local-backend settings.
type SQLiteConfig struct {
	// Dir holds one database file per project id.
	Dir string `yaml:"dir"`
}

// CredentialsConfig holds service-account key discovery settings.
type CredentialsConfig struct {
	// Dir is searched for one <project>.json key file per project.
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load builds a Config from defaults, an optional YAML file, and
// environment variables, in that order.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Server:      ServerConfig{Host: "0.0.0.0", Port: 3000},
		Database:    DatabaseConfig{Backend: "firestore", SQLite: SQLiteConfig{Dir: "data"}},
		Credentials: CredentialsConfig{Dir: defaultCredentialsDir()},
		Logging:     LoggingConfig{Level: "info"},
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.RawProjects = os.Getenv(EnvProjects)
	cfg.Projects = ParseProjects(cfg.RawProjects)
	if cfg.RawProjects == "" {
		cfg.RawProjects = DefaultProjectID
	}
	cfg.KeyPathOverride = os.Getenv(EnvKeyPath)

	return cfg, nil
}

// ParseProjects splits a comma-separated project list, trimming whitespace
// and dropping empty entries. An empty value yields the placeholder project.
func ParseProjects(raw string) []string {
	var projects []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			projects = append(projects, p)
		}
	}
	if len(projects) == 0 {
		projects = []string{DefaultProjectID}
	}
	return projects
}

// CredentialFile returns the service-account key path for a project: the
// explicit override when set, otherwise the conventional per-project file.
func (c *Config) CredentialFile(projectID string) string {
	if c.KeyPathOverride != "" {
		return c.KeyPathOverride
	}
	return filepath.Join(c.Credentials.Dir, projectID+".json")
}

// defaultCredentialsDir resolves the conventional credentials directory
// next to the executable, falling back to the working directory.
func defaultCredentialsDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "credentials"
	}
	return filepath.Join(filepath.Dir(exe), "credentials")
}
