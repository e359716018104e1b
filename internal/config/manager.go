package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manager manages the console configuration with thread-safe reads and writes
type Manager struct {
	mu         sync.RWMutex
	config     *Config
	configPath string
}

// NewManager creates a new configuration manager.
// If the config file doesn't exist, it creates one with default values.
func NewManager(configPath string) (*Manager, error) {
	m := &Manager{
		configPath: configPath,
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Debug("config file not found, creating from defaults", "path", configPath)
		if err := m.writeConfig(DefaultConfig(), true); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return m, nil
}

// Path returns the file backing this manager.
func (m *Manager) Path() string { return m.configPath }

// Get returns a copy of the file configuration with environment overrides applied.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	cfg := *m.config
	m.mu.RUnlock()

	applyEnv(&cfg)
	return &cfg
}

// Update atomically updates the configuration file using a function.
// The function receives a mutable copy of the file config (no env overrides).
// If the function returns an error, changes are not saved.
func (m *Manager) Update(fn func(*Config) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated := *m.config
	if err := fn(&updated); err != nil {
		return err
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := m.writeConfig(&updated, false); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	m.config = &updated
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return fmt.Errorf("api.base_url must start with http:// or https://")
	}
	switch c.Session.Store {
	case StoreFile, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("session.store must be one of %s, %s, %s", StoreFile, StoreRedis, StoreMemory)
	}
	return nil
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	fillDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	m.config = &cfg
	return nil
}

// writeConfig writes the config to disk atomically using temp file + rename
func (m *Manager) writeConfig(cfg *Config, withHeader bool) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if withHeader {
		header := `# eventadmin configuration
# This file is automatically created on first run.
# Environment variables (EVENTADMIN_API_URL, REDIS_ADDR, ...) override these values.

`
		data = append([]byte(header), data...)
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tempPath := m.configPath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp config: %w", err)
	}
	if err := os.Rename(tempPath, m.configPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename config file: %w", err)
	}
	return nil
}
