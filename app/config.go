package app

import (
	"sync"

	"taskmanager/config"
)

type Config struct {
	mu     sync.Mutex
	Driver string
	URL    string
}

func NewConfig() *Config {
	return &Config{
		Driver: config.DriverSQLite,
		URL:    "file:taskmanager.db",
	}
}

// WithDriver selects the storage backend by name
func (c *Config) WithDriver(driver string) *Config {
	c.mu.Lock()
	c.Driver = driver
	c.mu.Unlock()
	return c
}

// WithURL will specify the location of the state for the selected driver
func (c *Config) WithURL(url string) *Config {
	c.mu.Lock()
	c.URL = url
	c.mu.Unlock()
	return c
}

func (c *Config) values() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Driver, c.URL
}
