// Package config holds details like routing and other configs for the app
package config

// Storage drivers understood by app.OpenRepository.
const (
	DriverSQLite   = "sqlite"
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type AppConfiger interface {
	GetPort() string
	GetStorageDriver() string
	// GetStorageURL is a gorm sqlite URL, a state directory or a SQL DSN
	// depending on the driver.
	GetStorageURL() string
	GetLogLevel() string
	GetLogFormat() string
}
