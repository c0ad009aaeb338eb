// Package database implements the relational Store variant on top of sqlx,
// with golang-migrate managed schema migrations. Postgres is the production
// engine; the pure-Go sqlite driver serves local development and tests.
package database

import (
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/coursedesk/coursedesk/core"
)

// URL builds the engine-specific connection string.
func URL(conf core.DatabaseConfig) string {
	if conf.Engine == "sqlite" {
		return "sqlite://" + conf.Name
	}

	sslMode := "require"
	if conf.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   conf.Engine,
		User:     url.UserPassword(conf.User, conf.Password),
		Host:     conf.Address(),
		Path:     conf.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Open connects to the configured database and waits for it to be ready.
func Open(conf core.DatabaseConfig) (*sqlx.DB, error) {
	dsn := URL(conf)
	if conf.Engine == "sqlite" {
		dsn = conf.Name
	}

	db, err := sqlx.Open(conf.Engine, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}
