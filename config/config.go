package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Database struct {
	User     string `env:"DB_USER, default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Host     string `env:"DB_HOST, default=localhost"`
	Port     string `env:"DB_PORT, default=5432"`
	Name     string `env:"DB_NAME, default=coscribe"`
	SSLMode  string `env:"DB_SSLMODE, default=disable"`
}

func (d Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type Config struct {
	ListenAddr string        `env:"LISTEN_ADDR, default=:8080"`
	JWTSecret  string        `env:"JWT_SECRET, required"`
	TokenTTL   time.Duration `env:"TOKEN_TTL, default=30m"`
	Debug      bool          `env:"DEBUG, default=false"`
	DB         Database
}

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
