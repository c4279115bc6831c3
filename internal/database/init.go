package database

import (
	"gorm.io/gorm"

	"github.com/followjobs/followjobs/config"
)

// InitDatabase connects to the backend selected by DATABASE_DRIVER.
func InitDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.Driver == config.DatabaseDriverSQLite {
		return NewSQLiteConnection(cfg.SQLitePath, cfg.LogLevel)
	}

	return NewConnection(&DatabaseConfig{
		Host:            cfg.Host,
		Port:            cfg.Port,
		User:            cfg.User,
		DBName:          cfg.DBName,
		Password:        cfg.Password,
		MaxConn:         cfg.MaxConn,
		MaxIdleConn:     cfg.MaxIdleConn,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		LogLevel:        cfg.LogLevel,
		SSLMode:         cfg.SSLMode,
	})
}
