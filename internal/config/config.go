package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// InsecureDefaultJWTSecret is used when JWT_SECRET is unset. Suitable only
// for local development; Load logs a warning when it is in effect.
const InsecureDefaultJWTSecret = "supersecretkey"

// DefaultTokenExpiry is the admin session lifetime.
const DefaultTokenExpiry = time.Hour

// Config holds the full service configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	JWT          JWTConfig          `yaml:"jwt"`
	Log          LogConfig          `yaml:"log"`
	ControlPanel ControlPanelConfig `yaml:"control-panel"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"` // gin mode: debug, release or test.
}

// DatabaseConfig configures the persistence layer.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"` // PostgreSQL or SQLite DSN.
}

// JWTConfig configures admin session tokens.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`        // Empty disables file logging.
	MaxSizeMB  int    `yaml:"max-size"`    // Rotation threshold per file.
	MaxBackups int    `yaml:"max-backups"` // Rotated files kept.
}

// ControlPanelConfig configures outbound control panel calls.
type ControlPanelConfig struct {
	RequestTimeout time.Duration `yaml:"request-timeout"`
}

// Load reads the YAML config file when present and applies environment
// overrides. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := defaults()

	if strings.TrimSpace(path) != "" {
		data, errRead := os.ReadFile(path)
		switch {
		case errRead == nil:
			if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
			}
		case os.IsNotExist(errRead):
			// Fall through to defaults plus env.
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", path, errRead)
		}
	}

	applyEnv(&cfg)

	if cfg.JWT.Secret == InsecureDefaultJWTSecret {
		log.Warn("JWT_SECRET is unset, using insecure default secret")
	}
	if cfg.JWT.Expiry <= 0 {
		cfg.JWT.Expiry = DefaultTokenExpiry
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.ControlPanel.RequestTimeout <= 0 {
		cfg.ControlPanel.RequestTimeout = 10 * time.Second
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Server:       ServerConfig{Port: 8080, Mode: "release"},
		Database:     DatabaseConfig{DSN: "file:hostpanel.db"},
		JWT:          JWTConfig{Secret: InsecureDefaultJWTSecret, Expiry: DefaultTokenExpiry},
		Log:          LogConfig{Level: "info", MaxSizeMB: 100, MaxBackups: 5},
		ControlPanel: ControlPanelConfig{RequestTimeout: 10 * time.Second},
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		var port int
		if _, errScan := fmt.Sscanf(v, "%d", &port); errScan == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("GIN_MODE")); v != "" {
		cfg.Server.Mode = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_DSN")); v != "" {
		cfg.Database.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("JWT_SECRET")); v != "" {
		cfg.JWT.Secret = v
	}
}
