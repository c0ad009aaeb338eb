package database

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/coursedesk/coursedesk/core/record"
)

// Store keeps each collection as ordered rows of JSON documents in the
// `records` table. Lookups and filtering happen in the engine; the table
// only has to preserve insertion order and make multi-collection writes
// transactional.
type Store struct {
	db *sqlx.DB
}

var _ record.Store = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Load(ctx context.Context, collection string) ([]record.Record, error) {
	query := s.db.Rebind(`SELECT doc FROM records WHERE collection = ? ORDER BY pos`)
	rows, err := s.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, errors.Wrapf(err, "loading collection %s", collection)
	}
	defer func() { _ = rows.Close() }()

	records := []record.Record{}
	for rows.Next() {
		var doc []byte
		if err = rows.Scan(&doc); err != nil {
			return nil, errors.Wrapf(err, "loading collection %s", collection)
		}
		var rec record.Record
		if err = json.Unmarshal(doc, &rec); err != nil {
			return nil, errors.Wrapf(record.ErrStorageCorrupt, "collection %s: %v", collection, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "loading collection %s", collection)
	}
	return records, nil
}

// Save rewrites every given collection inside a single transaction;
// any failure rolls the whole write back.
func (s *Store) Save(ctx context.Context, collections map[string][]record.Record) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	delQuery := tx.Rebind(`DELETE FROM records WHERE collection = ?`)
	insQuery := tx.Rebind(`INSERT INTO records (collection, pos, doc) VALUES (?, ?, ?)`)

	for name, records := range collections {
		if _, err = tx.ExecContext(ctx, delQuery, name); err != nil {
			return errors.Wrapf(err, "saving collection %s", name)
		}
		for pos, rec := range records {
			doc, err := json.Marshal(rec)
			if err != nil {
				return errors.Wrapf(err, "encoding collection %s", name)
			}
			if _, err = tx.ExecContext(ctx, insQuery, name, pos, doc); err != nil {
				return errors.Wrapf(err, "saving collection %s", name)
			}
		}
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}
