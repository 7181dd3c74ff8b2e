package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"calendarvault/pkg/db/postgres"
)

// PostgresConfig содержит настройки реестра календарей.
type PostgresConfig struct {
	Host            string        `yaml:"host" env:"GATEWAY_POSTGRES_HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"GATEWAY_POSTGRES_PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"GATEWAY_POSTGRES_USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"GATEWAY_POSTGRES_PASSWORD" env-default:"postgres"`
	Database        string        `yaml:"database" env:"GATEWAY_POSTGRES_DB" env-default:"calendars"`
	SSLMode         string        `yaml:"ssl_mode" env:"GATEWAY_POSTGRES_SSLMODE" env-default:"disable"`
	MinConn         int32         `yaml:"min_conn" env:"GATEWAY_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int32         `yaml:"max_conn" env:"GATEWAY_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"GATEWAY_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	MigrationsPath  string        `yaml:"migrations_path" env:"GATEWAY_POSTGRES_MIGRATIONS_PATH" env-default:"file://migrations/gateway"`
}

// GetDSN возвращает строку подключения в формате URL.
func (c *PostgresConfig) GetDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(c.SSLMode)),
	}
	return u.String()
}

// PoolConfig возвращает параметры пула pgx.
func (c *PostgresConfig) PoolConfig() postgres.Config {
	return postgres.Config{
		DSN:             c.GetDSN(),
		MinConns:        c.MinConn,
		MaxConns:        c.MaxConn,
		MaxConnLifetime: c.MaxConnLifetime,
	}
}
