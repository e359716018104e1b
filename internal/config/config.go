package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Session store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// DefaultTokenKey is the fixed storage key the admin token lives under.
const DefaultTokenKey = "adminToken"

// Config represents the console configuration stored in config.yaml
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Redis   RedisConfig   `yaml:"redis"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig points the client at the remote booking service.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// SessionConfig selects where the admin token is persisted.
type SessionConfig struct {
	Store string `yaml:"store"`
	Path  string `yaml:"path"`
	Key   string `yaml:"key"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 10 * time.Second,
		},
		Session: SessionConfig{
			Store: StoreFile,
			Path:  defaultSessionPath(),
			Key:   DefaultTokenKey,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// DefaultPath is where the config file lives unless CONFIG_PATH says otherwise.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv("CONFIG_PATH")); p != "" {
		return p
	}
	return filepath.Join(userDir(), "config.yaml")
}

func defaultSessionPath() string {
	return filepath.Join(userDir(), "session.yaml")
}

func userDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".eventadmin"
	}
	return filepath.Join(dir, "eventadmin")
}

// applyEnv overlays environment variables on cfg. Values from the environment
// are never written back to disk.
func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("EVENTADMIN_API_URL")); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("EVENTADMIN_API_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.API.Timeout = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("EVENTADMIN_SESSION_STORE")); v != "" {
		cfg.Session.Store = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("EVENTADMIN_SESSION_PATH")); v != "" {
		cfg.Session.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_ADDR")); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_DB")); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.Log.Format = v
	}
}

// fillDefaults replaces zero values with defaults so a partial file still works.
func fillDefaults(cfg *Config) {
	def := DefaultConfig()
	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = def.API.Timeout
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = def.Session.Store
	}
	if cfg.Session.Path == "" {
		cfg.Session.Path = def.Session.Path
	}
	if cfg.Session.Key == "" {
		cfg.Session.Key = def.Session.Key
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = def.Redis.Addr
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}
