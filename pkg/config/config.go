package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "RESPKV_"

type Config struct {
	Host          string        `env:"HOST" envDefault:"127.0.0.1"`
	Port          string        `env:"PORT" envDefault:"6379"`
	ReplicaOf     string        `env:"REPLICAOF"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"100ms"`
	HTTPAddr      string        `env:"HTTP_ADDR"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Addr is the TCP address the RESP listener binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Option overrides a loaded value, typically from a command-line flag.
type Option func(*Config)

func WithHost(host string) Option {
	return func(c *Config) { c.Host = host }
}

func WithPort(port string) Option {
	return func(c *Config) { c.Port = port }
}

func WithReplicaOf(replicaOf string) Option {
	return func(c *Config) { c.ReplicaOf = replicaOf }
}

func WithHTTPAddr(addr string) Option {
	return func(c *Config) { c.HTTPAddr = addr }
}

func WithSweepInterval(d time.Duration) Option {
	return func(c *Config) { c.SweepInterval = d }
}

// Load reads an optional .env file, then RESPKV_* environment variables over
// the defaults, then applies opts.
func Load(opts ...Option) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", c.SweepInterval)
	}
	return nil
}
