package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store driver names accepted in configuration.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration for our application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Client  ClientConfig  `mapstructure:"client"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// StoreConfig selects and configures the account store backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	// Path is the file store location (file driver) or SQLite file (sqlite driver).
	Path string `mapstructure:"path"`
	// DSN is the PostgreSQL connection string (postgres driver).
	DSN string `mapstructure:"dsn"`
	// Latency is an artificial per-call delay applied by the file store to
	// mimic a remote backend during demos. Zero disables it.
	Latency time.Duration `mapstructure:"latency"`
}

// CatalogConfig points at an optional JSON file with extra lessons appended
// to the built-in seed catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// ClientConfig configures the terminal client commands.
type ClientConfig struct {
	ServerURL   string `mapstructure:"server_url"`
	SessionPath string `mapstructure:"session_path"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)

	// Store defaults
	viper.SetDefault("store.driver", DriverFile)
	viper.SetDefault("store.path", "data/accounts.json")
	viper.SetDefault("store.dsn", "")
	viper.SetDefault("store.latency", time.Duration(0))

	// Catalog defaults
	viper.SetDefault("catalog.path", "")

	// Client defaults
	viper.SetDefault("client.server_url", "http://localhost:8080")
	viper.SetDefault("client.session_path", "")

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}

// StoreDriver returns the normalized store driver name.
func (c *Config) StoreDriver() (string, error) {
	driver := strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch driver {
	case "", DriverFile:
		return DriverFile, nil
	case DriverSQLite, "sqlite3":
		return DriverSQLite, nil
	case DriverPostgres, "pg", "pgx":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported store driver: %s", c.Store.Driver)
	}
}

// SQLDriverAndDSN maps the configured store onto a database/sql driver name
// and data source. Only SQL-backed drivers are valid here.
func (c *Config) SQLDriverAndDSN() (string, string, error) {
	driver, err := c.StoreDriver()
	if err != nil {
		return "", "", err
	}
	switch driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			return "", "", fmt.Errorf("store.path is required for the sqlite driver")
		}
		return "sqlite3", c.Store.Path, nil
	case DriverPostgres:
		if c.Store.DSN == "" {
			return "", "", fmt.Errorf("store.dsn is required for the postgres driver")
		}
		return "pgx", c.Store.DSN, nil
	default:
		return "", "", fmt.Errorf("store driver %s is not SQL backed", driver)
	}
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
