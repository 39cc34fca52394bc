package app

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"taskmanager/config"
	"taskmanager/db/schema/stateschema"
	"taskmanager/domain/task"
	"taskmanager/internal/dbconn"
	"taskmanager/internal/repository/file"
	gormRepo "taskmanager/internal/repository/gorm"
	"taskmanager/internal/repository/memory"
	"taskmanager/internal/repository/sqldb"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// OpenRepository opens the state store named by cfg. Each call gets its own
// connection; the returned close function releases only that one.
func OpenRepository(ctx context.Context, cfg *Config, logger log.FieldLogger) (task.Repository, func() error, error) {
	driver, url := cfg.values()
	noop := func() error { return nil }

	switch driver {
	case config.DriverSQLite, "":
		db, err := dbconn.Open(dbconn.WithURL(url), dbconn.WithLogger(logger))
		if err != nil {
			return nil, nil, fmt.Errorf("db connection failed: %w", err)
		}
		if err := dbconn.Migrate(db, &stateschema.Entry{}); err != nil {
			dbconn.Close(db)
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
		return gormRepo.NewStateRepository(db), func() error { return dbconn.Close(db) }, nil

	case config.DriverFile:
		return file.NewStateRepository(url), noop, nil

	case config.DriverMemory:
		return memory.NewStateRepository(), noop, nil

	case config.DriverPostgres, config.DriverMySQL:
		repo, err := sqldb.Open(ctx, driver, url)
		if err != nil {
			return nil, nil, fmt.Errorf("%s connection failed: %w", driver, err)
		}
		return repo, repo.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
