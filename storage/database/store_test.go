package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedesk/coursedesk/core"
	"github.com/coursedesk/coursedesk/core/record"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	conf := core.DatabaseConfig{
		Engine: "sqlite",
		Name:   filepath.Join(t.TempDir(), "test.db"),
	}
	require.NoError(t, Migrate(conf))

	db, err := Open(conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewStore(db)
}

func TestStoreLoadEmpty(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Load(context.Background(), "students")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := []record.Record{
		{"id": "s2", "name": "Bob"},
		{"id": "s1", "name": "Ann"},
	}
	require.NoError(t, store.Save(ctx, map[string][]record.Record{"students": in}))

	out, err := store.Load(ctx, "students")
	require.NoError(t, err)
	require.Len(t, out, 2)
	// insertion order is preserved, not key order
	assert.Equal(t, "s2", out[0].String("id"))
	assert.Equal(t, "s1", out[1].String("id"))
}

func TestStoreSaveRewritesCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, map[string][]record.Record{"weeks": {{"week_id": "week_1"}, {"week_id": "week_2"}}}))
	require.NoError(t, store.Save(ctx, map[string][]record.Record{"weeks": {{"week_id": "week_2"}}}))

	out, err := store.Load(ctx, "weeks")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "week_2", out[0].String("week_id"))
}

func TestStoreSaveMultipleCollections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Save(ctx, map[string][]record.Record{
		"resources":          {{"id": "r1", "title": "Go spec", "link": "https://go.dev/ref/spec"}},
		"resources_comments": {{"id": "c1", "resource_id": "r1", "text": "useful"}},
	})
	require.NoError(t, err)

	resources, err := store.Load(ctx, "resources")
	require.NoError(t, err)
	assert.Len(t, resources, 1)

	comments, err := store.Load(ctx, "resources_comments")
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}
