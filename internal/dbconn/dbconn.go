// Package dbconn opens gorm connections to SQLite state databases. Every
// call to Open returns a connection of its own, closed with Close.
package dbconn

import (
	"time"

	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DBConf struct {
	URL         string
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
	LogLevel    logger.LogLevel
	Logger      log.FieldLogger
}

type DBOpts func(*DBConf)

func NewConf() *DBConf {
	return &DBConf{
		URL: "file:taskmanager.db",
		// sqlite allows one writer; a single connection keeps writes ordered
		MaxIdle:     1,
		MaxOpen:     1,
		MaxLifetime: 300 * time.Second,
		LogLevel:    logger.Warn,
		Logger:      log.StandardLogger(),
	}
}

func WithURL(url string) DBOpts {
	return func(d *DBConf) {
		d.URL = url
	}
}

func WithMaxIdle(idle int) DBOpts {
	return func(d *DBConf) {
		d.MaxIdle = idle
	}
}

func WithMaxOpen(open int) DBOpts {
	return func(d *DBConf) {
		d.MaxOpen = open
	}
}

func WithMaxLifetime(lifetime time.Duration) DBOpts {
	return func(d *DBConf) {
		d.MaxLifetime = lifetime
	}
}

func WithLogLevel(level logger.LogLevel) DBOpts {
	return func(d *DBConf) {
		d.LogLevel = level
	}
}

// WithLogger routes gorm's SQL log through l instead of stdout.
func WithLogger(l log.FieldLogger) DBOpts {
	return func(d *DBConf) {
		if l != nil {
			d.Logger = l
		}
	}
}

// Open connects to the database named by the options and pings it.
func Open(options ...DBOpts) (*gorm.DB, error) {
	dbConf := NewConf()
	for _, o := range options {
		o(dbConf)
	}

	conn, err := gorm.Open(sqlite.Open(dbConf.URL), &gorm.Config{
		Logger: newGormLogger(dbConf),
	})
	if err != nil {
		return nil, err
	}

	sdb, err := conn.DB()
	if err != nil {
		return nil, err
	}

	sdb.SetMaxIdleConns(dbConf.MaxIdle)
	sdb.SetMaxOpenConns(dbConf.MaxOpen)
	sdb.SetConnMaxLifetime(dbConf.MaxLifetime)

	if err := sdb.Ping(); err != nil {
		sdb.Close()
		return nil, err
	}

	return conn, nil
}

func newGormLogger(conf *DBConf) logger.Interface {
	return logger.New(conf.Logger.WithField("component", "gorm"), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  conf.LogLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func Migrate(db *gorm.DB, models ...any) error {
	return db.AutoMigrate(models...)
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sdb, err := db.DB()
	if err != nil {
		return err
	}
	return sdb.Close()
}
