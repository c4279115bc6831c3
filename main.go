package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/followjobs/followjobs/config"
	"github.com/followjobs/followjobs/internal/database"
	"github.com/followjobs/followjobs/internal/logger"
	"github.com/followjobs/followjobs/internal/repository"
	"github.com/followjobs/followjobs/server"
)

func main() {
	app := &cli.App{
		Name:  "followjobs",
		Usage: "Job application tracker API",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Run database migrations",
				Action: migrate,
			},
			{
				Name:   "server",
				Usage:  "Start the application server",
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup() (*config.Config, logger.Logger, *gorm.DB, error) {
	cfg, err := config.InitConfig()
	if err != nil {
		return nil, nil, nil, cli.Exit("Config initialization failed: "+err.Error(), 1)
	}

	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	db, err := database.InitDatabase(cfg.DatabaseConfig)
	if err != nil {
		return nil, nil, nil, cli.Exit("Database initialization failed: "+err.Error(), 1)
	}
	return cfg, appLogger, db, nil
}

func migrate(_ *cli.Context) error {
	_, appLogger, db, err := setup()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	if err = repository.MigrateDB(db); err != nil {
		return cli.Exit("Database migration failed: "+err.Error(), 1)
	}
	appLogger.Info("Database migration completed successfully")
	return nil
}

func serve(_ *cli.Context) error {
	cfg, appLogger, db, err := setup()
	if err != nil {
		return err
	}
	defer appLogger.Sync()

	appLogger.Info("FollowJobs starting up...")

	if cfg.DatabaseConfig.AutoMigrate {
		if err = repository.MigrateDB(db); err != nil {
			return cli.Exit("Database migration failed: "+err.Error(), 1)
		}
		appLogger.Info("Database schema is up to date")
	}

	srv, err := server.NewServer(cfg, db, appLogger)
	if err != nil {
		return cli.Exit("Server setup failed: "+err.Error(), 1)
	}

	if err = srv.Run(); err != nil {
		return cli.Exit("Server stopped with error: "+err.Error(), 1)
	}

	appLogger.Info("Shutdown complete")
	return nil
}
