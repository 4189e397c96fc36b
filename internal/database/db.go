package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// DriverFor maps a database URI to a registered sql driver name.
// postgres:// URIs go through pgx; anything else is treated as a SQLite
// file path (":memory:" included).
func DriverFor(uri string) string {
	if strings.HasPrefix(uri, "postgres://") || strings.HasPrefix(uri, "postgresql://") {
		return "pgx"
	}
	return "sqlite3"
}

func NewDB(uri string) (*sql.DB, error) {
	driver := DriverFor(uri)

	dsn := uri
	if driver == "sqlite3" && !strings.Contains(uri, "?") {
		dsn = uri + "?_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if driver == "sqlite3" {
		// An in-memory SQLite database exists per connection; one
		// connection keeps a single database and serializes writers.
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return db, nil
}

func CloseDB(ctx context.Context, db *sql.DB) {
	if err := db.Close(); err != nil {
		fmt.Printf("failed to close DB: %v\n", err)
	}
}
