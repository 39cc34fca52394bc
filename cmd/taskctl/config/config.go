package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	defaultStorage   = "sqlite"
	defaultOutput    = "text"
	envVarStorage    = "TM_STORAGE_DRIVER"
	envVarStorageURL = "TM_STORAGE_URL"
	stateDirName     = ".taskmanager"
	configFileName   = ".taskmanager/config.yml"
)

// Config holds the taskctl configuration
type Config struct {
	Storage    string `yaml:"storage"`
	StorageURL string `yaml:"url"`
	Output     string `yaml:"output"`

	home string
}

// Load loads configuration from file and environment. A missing file is not
// an error; a malformed one is.
func Load() (*Config, error) {
	cfg := &Config{}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}
	cfg.home = homeDir

	if err := loadFromFile(cfg, filepath.Join(homeDir, configFileName)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	return cfg, nil
}

// GetStorage returns the storage driver with priority: env var > config file > default
func (c *Config) GetStorage() string {
	if driver := os.Getenv(envVarStorage); driver != "" {
		return driver
	}
	if c.Storage != "" {
		return c.Storage
	}
	return defaultStorage
}

// GetStorageURL returns the storage location with priority: env var > config
// file > a default under ~/.taskmanager that fits the storage driver
func (c *Config) GetStorageURL() string {
	if url := os.Getenv(envVarStorageURL); url != "" {
		return url
	}
	if c.StorageURL != "" {
		return c.StorageURL
	}
	return c.DefaultStorageURL(c.GetStorage())
}

// StateDir is the directory holding default local state.
func (c *Config) StateDir() string {
	return filepath.Join(c.home, stateDirName)
}

func (c *Config) DefaultStorageURL(driver string) string {
	dir := c.StateDir()
	switch driver {
	case "file":
		return dir
	case "sqlite":
		return "file:" + filepath.Join(dir, "taskmanager.db")
	default:
		return ""
	}
}

func (c *Config) GetOutput() string {
	if c.Output != "" {
		return c.Output
	}
	return defaultOutput
}

func loadFromFile(cfg *Config, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}
