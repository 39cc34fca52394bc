// Package production contains production configuration of the app
package production

import (
	"os"
	"strings"

	"taskmanager/config"
)

type prodconf struct{}

func New() config.AppConfiger {
	return prodconf{}
}

func (pc prodconf) GetPort() string {
	appPort := os.Getenv("TM_APP_PORT")
	if strings.TrimSpace(appPort) == "" {
		appPort = "8080"
	}
	return appPort
}

func (pc prodconf) GetStorageDriver() string {
	driver := os.Getenv("TM_STORAGE_DRIVER")
	if strings.TrimSpace(driver) == "" {
		driver = config.DriverSQLite
	}
	return driver
}

func (pc prodconf) GetStorageURL() string {
	url := os.Getenv("TM_STORAGE_URL")
	if strings.TrimSpace(url) != "" {
		return url
	}
	if pc.GetStorageDriver() == config.DriverFile {
		return "/var/lib/taskmanager"
	}
	return "/var/lib/taskmanager/taskmanager.db"
}

func (pc prodconf) GetLogLevel() string {
	level := os.Getenv("TM_LOG_LEVEL")
	if strings.TrimSpace(level) == "" {
		level = "info"
	}
	return level
}

func (pc prodconf) GetLogFormat() string {
	format := os.Getenv("TM_LOG_FORMAT")
	if strings.TrimSpace(format) == "" {
		format = "json"
	}
	return format
}
