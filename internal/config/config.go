package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Postgres holds the database connection settings.
type Postgres struct {
	Host     string `env:"POSTGRES_HOST" env-default:"localhost"`
	Port     int    `env:"POSTGRES_PORT" env-default:"5432"`
	User     string `env:"POSTGRES_USER" env-default:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `env:"POSTGRES_DB" env-default:"postgres"`
}

// URL renders the settings as a pgx-compatible connection string.
func (p Postgres) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

// Config is the full process configuration, read once at startup.
type Config struct {
	Addr      string        `env:"ADDR" env-default:":8080"`
	Debug     bool          `env:"DEBUG" env-default:"false"`
	SecretKey string        `env:"SECRET_KEY" env-required:"true"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"72h"`
	RedisAddr string        `env:"REDIS_ADDR"`
	Postgres  Postgres
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}
