package config

const (
	DatabaseDriverPostgres = "postgres"
	DatabaseDriverSQLite   = "sqlite"
)

type AppConfig struct {
	APIPort            string   `env:"PORT" envDefault:"8080"`
	APIKey             string   `env:"API_KEY"`
	RabbitMQURL        string   `env:"RABBITMQ_URL"`
	CorsAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

type DatabaseConfig struct {
	Driver          string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	Host            string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port            string `env:"POSTGRES_PORT" envDefault:"5432"`
	User            string `env:"POSTGRES_USER" envDefault:"postgres"`
	DBName          string `env:"POSTGRES_DB_NAME" envDefault:"followjobs"`
	Password        string `env:"POSTGRES_PASSWORD"`
	MaxConn         int    `env:"POSTGRES_DB_MAX_CONN" envDefault:"25"`
	MaxIdleConn     int    `env:"POSTGRES_DB_MAX_IDLE_CONN" envDefault:"10"`
	ConnMaxLifetime int    `env:"POSTGRES_DB_CONN_MAX_LIFETIME" envDefault:"60"`
	LogLevel        string `env:"POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	SQLitePath      string `env:"SQLITE_PATH" envDefault:"followjobs.db"`
	AutoMigrate     bool   `env:"DATABASE_AUTO_MIGRATE" envDefault:"false"`
}

type CronConfig struct {
	// Jobs are disabled unless a schedule is set, e.g. "0 * * * * *" for every minute
	CronScheduleHeartbeat string `env:"CRON_SCHEDULE_HEARTBEAT"`
	// e.g. "0 0 8 * * *" for daily at 08:00
	CronScheduleStaleApplications string `env:"CRON_SCHEDULE_STALE_APPLICATIONS"`
	StaleApplicationDays          int    `env:"STALE_APPLICATION_DAYS" envDefault:"30"`
}
