// Package sqldb keeps engine state in a Postgres or MySQL table through
// database/sql.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"taskmanager/domain/task"
)

var ErrUnknownDriver = errors.New("unknown sql driver")

type dialect struct {
	createTable string
	selectValue string
	upsert      string
}

var dialects = map[string]dialect{
	"postgres": {
		createTable: `CREATE TABLE IF NOT EXISTS state_entries (
    key VARCHAR(191) PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
		selectValue: `SELECT value FROM state_entries WHERE key = $1`,
		upsert: `INSERT INTO state_entries (key, value, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	},
	"mysql": {
		createTable: "CREATE TABLE IF NOT EXISTS state_entries (\n" +
			"    `key` VARCHAR(191) PRIMARY KEY,\n" +
			"    value LONGTEXT NOT NULL,\n" +
			"    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP\n" +
			")",
		selectValue: "SELECT value FROM state_entries WHERE `key` = ?",
		upsert:      "INSERT INTO state_entries (`key`, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)",
	},
}

type StateRepository struct {
	db      *sql.DB
	dialect dialect
}

// Open connects with the named driver ("postgres" or "mysql") and creates
// the state table when missing.
func Open(ctx context.Context, driver, dsn string) (*StateRepository, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	r := &StateRepository{db: db, dialect: d}
	if err := r.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

var _ task.Repository = (*StateRepository)(nil)

func (r *StateRepository) Close() error { return r.db.Close() }

func (r *StateRepository) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, r.dialect.createTable)
	return err
}

func (r *StateRepository) Load(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, r.dialect.selectValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *StateRepository) Save(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, r.dialect.upsert, key, value)
	return err
}
