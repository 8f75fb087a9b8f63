package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	CORS     CORSConfig     `toml:"cors"`
	Logging  LoggingConfig  `toml:"logging"`
	Backup   BackupConfig   `toml:"backup"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `toml:"port"`
	Host string `toml:"host"`
	Addr string `toml:"-"` // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// BackupConfig controls scheduled project snapshots. Backups are disabled
// when Dir is empty. Key, when set, is a base64 fernet key used to encrypt
// snapshots at rest.
type BackupConfig struct {
	Dir      string `toml:"dir"`
	Schedule string `toml:"schedule"`
	Key      string `toml:"key"`
	Keep     int    `toml:"keep"`
}

// DefaultConfigFile is read when FEASIBILITY_CONFIG is not set and the file exists.
const DefaultConfigFile = "config.toml"

// NewDefaultConfig returns the built-in defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5001",
			Host: "localhost",
		},
		Database: DatabaseConfig{
			Path: "./data/feasibility.db",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Backup: BackupConfig{
			Schedule: "@every 15m",
			Keep:     10,
		},
	}
}

// Load reads configuration with priority: defaults -> TOML file -> .env -> environment.
func Load() (*Config, error) {
	path := os.Getenv("FEASIBILITY_CONFIG")
	required := path != ""
	if !required {
		path = DefaultConfigFile
	}

	config, err := LoadFromFile(path, required)
	if err != nil {
		return nil, err
	}

	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	applyEnvOverrides(config)

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// LoadFromFile returns the defaults overlaid with the TOML file at path.
// A missing file is an error only when required is true.
func LoadFromFile(path string, required bool) (*Config, error) {
	config := NewDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	config.Server.Port = getEnv("SERVER_PORT", config.Server.Port)
	config.Server.Host = getEnv("SERVER_HOST", config.Server.Host)
	config.Database.Path = getEnv("DB_PATH", config.Database.Path)
	config.Logging.Level = getEnv("LOG_LEVEL", config.Logging.Level)
	config.Logging.Format = getEnv("LOG_FORMAT", config.Logging.Format)
	config.Backup.Dir = getEnv("BACKUP_DIR", config.Backup.Dir)
	config.Backup.Schedule = getEnv("BACKUP_SCHEDULE", config.Backup.Schedule)
	config.Backup.Key = getEnv("BACKUP_KEY", config.Backup.Key)

	if keep := os.Getenv("BACKUP_KEEP"); keep != "" {
		if n, err := strconv.Atoi(keep); err == nil && n > 0 {
			config.Backup.Keep = n
		}
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		var list []string
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				list = append(list, o)
			}
		}
		config.CORS.AllowedOrigins = list
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
