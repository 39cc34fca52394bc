// Package appconf contains app related configurations
package appconf

import (
	"os"

	"taskmanager/config"
	devconf "taskmanager/config/environments/development"
	prodconf "taskmanager/config/environments/production"
)

var appconf config.AppConfiger

func Port() string {
	return appconf.GetPort()
}

func StorageDriver() string {
	return appconf.GetStorageDriver()
}

func StorageURL() string {
	return appconf.GetStorageURL()
}

func LogLevel() string {
	return appconf.GetLogLevel()
}

func LogFormat() string {
	return appconf.GetLogFormat()
}

func init() {
	env := os.Getenv("APP_ENV")

	switch env {
	case "production":
		appconf = prodconf.New()
	case "development":
		appconf = devconf.New()
	default:
		appconf = devconf.New()
	}
}
