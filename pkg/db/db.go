// Package db holds the Postgres connection the round history is written to
package db

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	"sieteymedio/internal/config"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                 // needed
)

// DefaultDSN is used when no DSN is configured
const DefaultDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"

var instance *sql.DB

// Instance returns a database instance
// It panics if the database cannot be reached.
func Instance() *sql.DB {
	if instance == nil {
		if err := LoadInstance(); err != nil {
			panic(err)
		}
	}

	return instance
}

// LoadInstance connects to the configured database
func LoadInstance() error {
	dsn := config.Instance().PGDSN
	if dsn == "" {
		dsn = DefaultDSN
	}

	dbh, err := Open(dsn)
	if err != nil {
		return err
	}

	instance = dbh
	return nil
}

// Open connects to the database and makes sure it answers
func Open(dsn string) (*sql.DB, error) {
	dbh, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := dbh.Ping(); err != nil {
		_ = dbh.Close()
		return nil, err
	}

	return dbh, nil
}

// Migrate runs the migrations found at migrationsPath (e.g., file://sql)
func Migrate(dbh *sql.DB, migrationsPath string) error {
	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(dbh, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}
