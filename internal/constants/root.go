package constants

import "time"

const (
	AppName            = "intima"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/intima/intima.db"
	Version            = "v0.1.0"

	// Environment variables
	EnvDatabase           = "INTIMA_DB"
	EnvDatabaseConnection = "INTIMA_DB_CONNECTION"
	EnvBcryptCost         = "INTIMA_BCRYPT_COST"

	// DateTimeFormat is used when printing log dates
	DateTimeFormat = "2006-01-02 15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "intima-"
	BackupFileSuffix = ".db"

	// SQLite connection settings
	SQLiteBusyTimeoutMs = 5000

	// Postgres pool settings
	PostgresMaxOpenConns    = 25
	PostgresMaxIdleConns    = 25
	PostgresConnMaxLifetime = 5 * time.Minute
)
