package config

import "fmt"

// PostgresConfig holds the database connection settings.
type PostgresConfig struct {
	Host           string `yaml:"host" env:"RENTX_POSTGRES_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"RENTX_POSTGRES_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"RENTX_POSTGRES_USER" env-default:"postgres"`
	Password       string `yaml:"password" env:"RENTX_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string `yaml:"database" env:"RENTX_POSTGRES_DB" env-default:"rentx"`
	MinConn        int    `yaml:"min_conn" env:"RENTX_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn        int    `yaml:"max_conn" env:"RENTX_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsPath string `yaml:"migrations_path" env:"RENTX_POSTGRES_MIGRATIONS_PATH" env-default:"file://migrations"`
}

// GetDSN returns the PostgreSQL connection string.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL returns the URL-style connection string for migrations.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}
