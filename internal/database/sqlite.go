package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// OpenSQLite opens the database file at path, creating its directory if needed.
// SQLite works best with a single writer, so the pool is capped at one connection.
func OpenSQLite(ctx context.Context, path string, logger *logrus.Logger) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite database path is empty")
	}

	if path != ":memory:" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get absolute database path")
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			return nil, errors.Wrap(err, "failed to create database directory")
		}
		path = absPath
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	logger.WithField("db_path", path).Info("Database connection established")
	return db, nil
}
