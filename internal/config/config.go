// Package config holds the configuration of the service. The former server
// copies differed only in connection parameters and a few flags, so all of
// them collapse into one struct here. Values come from environment variables
// in the first place; an optional YAML file overrides them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backend selection. The database backend uses MySQL for drivers and
// MongoDB for constructors and contacts; the memory backend keeps everything
// in process and needs no databases.
const (
	BackendDatabase = "database"
	BackendMemory   = "memory"
)

// MySQLConfig are the connection parameters of the relational database.
type MySQLConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Database string `yaml:"database"`
}

// DSN renders the data source name for the mysql driver.
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
		c.User, c.Password, c.Host, c.Database)
}

// MongoConfig are the connection parameters of the document database.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// Config is the complete service configuration.
type Config struct {
	Port         int           `yaml:"port"`
	Backend      string        `yaml:"backend"`
	MySQL        MySQLConfig   `yaml:"mysql"`
	Mongo        MongoConfig   `yaml:"mongo"`
	SeedOnEmpty  bool          `yaml:"seed_on_empty"`
	Production   bool          `yaml:"production"`
	StoreTimeout time.Duration `yaml:"-"`
}

// UnmarshalYAML decodes the configuration and accepts the timeout as a Go
// duration string such as "5s", which the yaml package cannot parse into a
// time.Duration on its own.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	aux := struct {
		StoreTimeout string `yaml:"store_timeout"`
		*plain
	}{plain: (*plain)(c)}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	if aux.StoreTimeout != "" {
		timeout, err := time.ParseDuration(aux.StoreTimeout)
		if err != nil {
			return fmt.Errorf("parse store timeout: %w", err)
		}
		c.StoreTimeout = timeout
	}
	return nil
}

// FromEnv builds a configuration from the system's environment variables,
// falling back to development defaults where a variable is not set.
func FromEnv() Config {
	cfg := Config{
		Port:    8080,
		Backend: BackendDatabase,
		MySQL: MySQLConfig{
			User:     os.Getenv("DBUSER"),
			Password: os.Getenv("DBPWD"),
			Host:     envOr("DBHOST", "localhost:3306"),
			Database: envOr("DBNAME", "f1hub"),
		},
		Mongo: MongoConfig{
			URI:      envOr("MONGO_URI", "mongodb://127.0.0.1:27017"),
			Database: envOr("MONGO_DB", "f1hub"),
		},
		StoreTimeout: 5 * time.Second,
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		cfg.Backend = backend
	}
	if timeout, err := time.ParseDuration(os.Getenv("STORE_TIMEOUT")); err == nil && timeout > 0 {
		cfg.StoreTimeout = timeout
	}
	cfg.SeedOnEmpty = strings.EqualFold(os.Getenv("SEED_ON_EMPTY"), "true")
	cfg.Production = strings.EqualFold(os.Getenv("GIN_MODE"), "release")
	return cfg
}

// envOr returns the value of the environment variable name, or fallback if
// the variable is unset or empty.
func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// Load builds the configuration from the environment and, if path is not
// empty, overrides it with the values of a YAML file.
func Load(path string) (Config, error) {
	cfg := FromEnv()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields that have a restricted value set.
func (c Config) Validate() error {
	if c.Backend != BackendDatabase && c.Backend != BackendMemory {
		return fmt.Errorf("unknown store backend %q", c.Backend)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("store timeout must be positive")
	}
	return nil
}
