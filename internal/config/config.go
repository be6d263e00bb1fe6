package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env          string `yaml:"env"`  // "local" or "prod"
	Addr         string `yaml:"addr"` // HTTP listen address
	DBDriver     string `yaml:"db_driver"`
	DSN          string `yaml:"dsn"`
	HTMLDir      string `yaml:"html_dir"` // empty: templates built into the binary
	OtelEndpoint string `yaml:"otel_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

func Default() Config {
	return Config{
		Env:         "local",
		Addr:        ":4000",
		DBDriver:    "sqlite",
		DSN:         "./blog.db",
		ServiceName: "blog",
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (if any), then .env and the process environment. The result is not
// validated: command-line flags may still override it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Env = getEnv("APP_ENV", c.Env)
	c.Addr = getEnv("BLOG_ADDR", c.Addr)
	c.DBDriver = getEnv("BLOG_DB_DRIVER", c.DBDriver)
	c.DSN = getEnv("BLOG_DSN", c.DSN)
	c.HTMLDir = getEnv("BLOG_HTML_DIR", c.HTMLDir)
	c.OtelEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.OtelEndpoint)
	c.ServiceName = getEnv("OTEL_SERVICE_NAME", c.ServiceName)
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported db_driver %q: must be sqlite or postgres", c.DBDriver)
	}
	if c.DSN == "" {
		return errors.New("dsn is required")
	}
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	return nil
}

func (c Config) IsLocal() bool {
	return c.Env == "local"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
