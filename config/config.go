// Package config loads the server settings from defaults, an optional TOML
// file, a .env file and CHEZZ_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	STORAGE_REDIS  = "redis"
	STORAGE_BADGER = "badger"
)

type Config struct {
	HttpAddr       string   `toml:"http_addr" validate:"required"`
	Storage        string   `toml:"storage" validate:"oneof=redis badger"`
	RedisHost      string   `toml:"redis_host" validate:"required_if=Storage redis"`
	RedisPort      int      `toml:"redis_port" validate:"min=1,max=65535"`
	BadgerDir      string   `toml:"badger_dir"`
	SavesDir       string   `toml:"saves_dir" validate:"required"`
	NodeId         int64    `toml:"node_id" validate:"min=0,max=1023"`
	AllowedOrigins []string `toml:"allowed_origins"`
	Debug          bool     `toml:"debug"`
}

func Default() *Config {
	return &Config{
		HttpAddr:  ":8888",
		Storage:   STORAGE_REDIS,
		RedisHost: "localhost",
		RedisPort: 6379,
		SavesDir:  "saves",
		NodeId:    1,
	}
}

// Load builds the configuration. A missing config file or .env file is not an
// error; a file that exists but cannot be parsed is.
func Load(configFile string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", configFile, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", configFile, err)
			}
		}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("CHEZZ_HTTP_ADDR"); ok {
		c.HttpAddr = v
	}
	if v, ok := os.LookupEnv("CHEZZ_STORAGE"); ok {
		c.Storage = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv("CHEZZ_REDIS_HOST"); ok {
		c.RedisHost = v
	}
	if v, ok := os.LookupEnv("CHEZZ_REDIS_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHEZZ_REDIS_PORT: %w", err)
		}
		c.RedisPort = port
	}
	if v, ok := os.LookupEnv("CHEZZ_BADGER_DIR"); ok {
		c.BadgerDir = v
	}
	if v, ok := os.LookupEnv("CHEZZ_SAVES_DIR"); ok {
		c.SavesDir = v
	}
	if v, ok := os.LookupEnv("CHEZZ_NODE_ID"); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CHEZZ_NODE_ID: %w", err)
		}
		c.NodeId = id
	}
	if v, ok := os.LookupEnv("CHEZZ_ALLOWED_ORIGINS"); ok {
		c.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, origin)
			}
		}
	}
	if v, ok := os.LookupEnv("CHEZZ_DEBUG"); ok {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CHEZZ_DEBUG: %w", err)
		}
		c.Debug = debug
	}
	return nil
}
