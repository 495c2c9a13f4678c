package config

import "rentx/pkg/logger"

// LoggingConfig represents the logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" env:"RENTX_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"RENTX_LOGGER_MODE" env-default:"production"`
}

// GetEnvironment maps the configured mode to a logger environment.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}
