package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pelletier/go-toml/v2"
)

type Neo4jConfig struct {
	URI      string `toml:"uri" env:"NEO4J_URI" env-default:"neo4j://db.test.com"`
	User     string `toml:"user" env:"NEO4J_USER" env-default:"neo4j"`
	Password string `toml:"-" env:"NEO4J_PASSWORD" env-default:"neo4j"` // Secret - env only
	Database string `toml:"database" env:"NEO4J_DATABASE" env-default:"test"`
	// Zero keeps the driver's own transaction timeout.
	QueryTimeoutSeconds int `toml:"query_timeout_seconds" env:"NEO4J_QUERY_TIMEOUT_SECONDS" env-default:"0"`
}

func (n Neo4jConfig) QueryTimeout() time.Duration {
	return time.Duration(n.QueryTimeoutSeconds) * time.Second
}

type ServerConfig struct {
	Port    string `toml:"port" env:"PORT" env-default:"8080"`
	GinMode string `toml:"gin_mode" env:"GIN_MODE" env-default:"release"`
}

type PaginationConfig struct {
	DefaultLimit int `toml:"default_limit" env:"DEFAULT_LIMIT" env-default:"50"`
}

type LogConfig struct {
	Level  string `toml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `toml:"format" env:"LOG_FORMAT" env-default:"json"`
}

type Config struct {
	Neo4j      Neo4jConfig      `toml:"neo4j"`
	Server     ServerConfig     `toml:"server"`
	Pagination PaginationConfig `toml:"pagination"`
	Log        LogConfig        `toml:"log"`
}

// Load reads the optional TOML file at path, then applies environment
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse TOML: %w", err)
			}
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Neo4j.URI == "" {
		return errors.New("neo4j uri is required")
	}
	if c.Neo4j.Database == "" {
		return errors.New("neo4j database is required")
	}
	if c.Pagination.DefaultLimit <= 0 {
		return fmt.Errorf("pagination default_limit must be positive, got %d", c.Pagination.DefaultLimit)
	}
	if c.Neo4j.QueryTimeoutSeconds < 0 {
		return fmt.Errorf("neo4j query_timeout_seconds must not be negative, got %d", c.Neo4j.QueryTimeoutSeconds)
	}
	return nil
}
