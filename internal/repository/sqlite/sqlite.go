// Package sqlite implements the domain repositories on top of a SQLite
// database using the cgo-free modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/taskflow/internal/domain"
	_ "modernc.org/sqlite"
)

// DB wraps the SQL connection and hands out repository instances.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign key enforcement.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Foreign keys enforce that tasks always reference an existing user and
	// cascade-delete with their owner.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Set a reasonable connection pool for SQLite.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Users returns the SQLite-backed user repository.
func (db *DB) Users() domain.UserRepository {
	return NewUserRepository(db)
}

// Tasks returns the SQLite-backed task repository.
func (db *DB) Tasks() domain.TaskRepository {
	return NewTaskRepository(db)
}
