package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/coursedesk/coursedesk/core"
	"github.com/coursedesk/coursedesk/core/record"
	"github.com/coursedesk/coursedesk/storage/jsonfile"
)

// NewConfig returns a self-contained test configuration; nothing is read
// from the environment.
func NewConfig(t *testing.T) *core.Config {
	t.Helper()
	return &core.Config{
		Debug:     true,
		TestMode:  true,
		Env:       "TEST",
		AppName:   "Coursedesk",
		SecretKey: "test-secret-key",
		Server: core.ServerConfig{
			Host:               "127.0.0.1",
			Port:               8000,
			JWTExpirationDelta: time.Hour,
		},
		Storage: core.StorageConfig{
			Backend: core.StorageFile,
			DataDir: t.TempDir(),
		},
		DefaultFromEmail: "noreply@test.cd",
	}
}

// NewStore returns a jsonfile store rooted in a per-test temp dir.
func NewStore(t *testing.T, conf *core.Config) *jsonfile.Store {
	t.Helper()
	store, err := jsonfile.NewStore(conf.Storage.DataDir)
	if err != nil {
		t.Fatalf("NewStore(): %v", err)
	}
	return store
}

// CreateRecord creates a record through the service, failing the test on error.
func CreateRecord(t *testing.T, svc *record.Service, data record.Record) record.Record {
	t.Helper()
	rec, err := svc.Create(context.Background(), data)
	if err != nil {
		t.Fatalf("CreateRecord(%s): %v", svc.Schema().Name, err)
	}
	return rec
}

// CreateStudent creates a student with the common fixture shape.
func CreateStudent(t *testing.T, svc *record.Service, id, name, email, pwd string) record.Record {
	t.Helper()
	return CreateRecord(t, svc, record.Record{
		"id":       id,
		"name":     name,
		"email":    email,
		"password": pwd,
	})
}
