// Package jsonfile persists collections as pretty-printed JSON array files,
// one file per collection, the way the legacy admin pages stored their data.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/coursedesk/coursedesk/core/record"
)

type Store struct {
	dir string

	// mutex keeps individual Load and Save calls atomic with respect to
	// each other; the gap between a load and the following save is
	// serialized by the service layer.
	mutex sync.RWMutex
}

var _ record.Store = (*Store)(nil)

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Load reads a collection file. A missing file is an empty collection;
// a file that cannot be parsed into a sequence is a corrupt store.
func (s *Store) Load(_ context.Context, collection string) ([]record.Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.load(collection)
}

func (s *Store) load(collection string) ([]record.Record, error) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return []record.Record{}, nil
		}
		return nil, errors.Wrapf(err, "reading collection %s", collection)
	}

	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(record.ErrStorageCorrupt, "collection %s: %v", collection, err)
	}
	if records == nil {
		records = []record.Record{}
	}
	return records, nil
}

// Save writes every given collection. All payloads are encoded up front so
// that a marshalling failure leaves no file touched; each file is then
// replaced atomically via a temp file + rename.
func (s *Store) Save(_ context.Context, collections map[string][]record.Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	payloads := make(map[string][]byte, len(collections))
	for name, records := range collections {
		if records == nil {
			records = []record.Record{}
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return errors.Wrapf(err, "encoding collection %s", name)
		}
		payloads[name] = data
	}

	for name, data := range payloads {
		if err := s.write(name, data); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) write(collection string, data []byte) error {
	path := s.path(collection)
	tmp, err := os.CreateTemp(s.dir, collection+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "writing collection %s", collection)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing collection %s", collection)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "writing collection %s", collection)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "writing collection %s", collection)
	}
	return nil
}
