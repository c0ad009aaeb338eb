package database

import (
	"embed"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"

	"github.com/coursedesk/coursedesk/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func newMigrator(conf core.DatabaseConfig) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "loading migrations")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, URL(conf))
	if err != nil {
		return nil, errors.Wrap(err, "initializing migrations")
	}
	return m, nil
}

// Migrate brings the database schema up to date.
func Migrate(conf core.DatabaseConfig) error {
	m, err := newMigrator(conf)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// Rollback undoes the last `steps` migrations.
func Rollback(conf core.DatabaseConfig, steps int) error {
	m, err := newMigrator(conf)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "rolling back database")
	}
	return nil
}
