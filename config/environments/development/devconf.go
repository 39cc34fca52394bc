// Package development contains development configuration of the app
package development

import (
	"os"
	"strings"

	"taskmanager/config"
)

type devconf struct{}

func New() config.AppConfiger {
	return devconf{}
}

func (dc devconf) GetPort() string {
	return getenv("TM_APP_PORT", "8080")
}

func (dc devconf) GetStorageDriver() string {
	return getenv("TM_STORAGE_DRIVER", config.DriverSQLite)
}

func (dc devconf) GetStorageURL() string {
	url := os.Getenv("TM_STORAGE_URL")
	if strings.TrimSpace(url) != "" {
		return url
	}

	switch dc.GetStorageDriver() {
	case config.DriverFile:
		return ".taskmanager"
	case config.DriverPostgres:
		return "postgres://localhost:5432/taskmanager?sslmode=disable"
	case config.DriverMySQL:
		return "root@tcp(127.0.0.1:3306)/taskmanager"
	default:
		return "file:taskmanager.db"
	}
}

func (dc devconf) GetLogLevel() string {
	return getenv("TM_LOG_LEVEL", "debug")
}

func (dc devconf) GetLogFormat() string {
	return getenv("TM_LOG_FORMAT", "text")
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
