// Package config loads process configuration from environment variables and
// an optional .env file.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"gamebrowser/internal/logger"
	"gamebrowser/internal/probe"
)

// Config holds all configuration for the daemon.
type Config struct {
	// Server holds the HTTP API settings.
	Server ServerConfig `mapstructure:"server"`
	// Browser holds the tracked-list settings.
	Browser BrowserConfig `mapstructure:"browser"`
	// Probe holds the UDP query settings.
	Probe probe.Config `mapstructure:"probe"`
	// Content holds the local asset pack settings.
	Content ContentConfig `mapstructure:"content"`
	// Log holds the logger settings.
	Log logger.Config `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type BrowserConfig struct {
	// DefaultPort completes server addresses given without a port.
	DefaultPort uint16 `mapstructure:"default_port"`
	// TickInterval is the main-loop period driving the requery scheduler.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// HostListPath is where manually added servers are persisted. Empty
	// disables persistence.
	HostListPath string `mapstructure:"host_list_path"`
}

type ContentConfig struct {
	// Dir is scanned for asset packs at startup and on SIGHUP. Empty
	// disables the local registry.
	Dir string `mapstructure:"dir"`
}

// Load reads configuration from path/.env (when present) and the
// environment. Keys map to env vars by prefix, e.g. "server.port" to
// SERVER_PORT.
func Load(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}
	// Missing .env is fine (production).
	_ = godotenv.Overload(envPath)

	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("browser.default_port", 4000)
	v.SetDefault("browser.tick_interval", "30ms")
	v.SetDefault("browser.host_list_path", "")
	v.SetDefault("probe.queries_per_second", 8.0)
	v.SetDefault("probe.burst", 4)
	v.SetDefault("probe.timeout", "3s")
	v.SetDefault("probe.version", "")
	v.SetDefault("content.dir", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
