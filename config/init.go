package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/followjobs/followjobs/internal/logger"
	"github.com/followjobs/followjobs/internal/tracing"
)

type Config struct {
	AppConfig      *AppConfig
	Logger         *logger.Config
	Tracing        *tracing.JaegerConfig
	DatabaseConfig *DatabaseConfig
	CronConfig     *CronConfig
}

func InitConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	return ParseConfig()
}

// ParseConfig reads the configuration from the process environment only.
func ParseConfig() (*Config, error) {
	config := &Config{
		AppConfig:      &AppConfig{},
		Logger:         &logger.Config{},
		Tracing:        &tracing.JaegerConfig{},
		DatabaseConfig: &DatabaseConfig{},
		CronConfig:     &CronConfig{},
	}

	if err := env.Parse(config); err != nil {
		return nil, errors.Wrap(err, "error loading followjobs config")
	}

	switch config.DatabaseConfig.Driver {
	case DatabaseDriverPostgres, DatabaseDriverSQLite:
	default:
		return nil, errors.Errorf("unsupported DATABASE_DRIVER %q", config.DatabaseConfig.Driver)
	}

	return config, nil
}
