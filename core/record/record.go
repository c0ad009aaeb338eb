// Package record implements a generic CRUD engine over named-key collections.
// Each collection is described by a Schema and persisted through a Store;
// operation logic is shared across all record kinds.
package record

import (
	"strconv"
	"time"
)

// Common field names present on every record kind.
const (
	FieldCreatedAt = "created_at"
	FieldID        = "id"
)

// Record is one entity instance in a collection: a mapping from field name
// to scalar or array value. It always carries its schema's id field and a
// created_at timestamp (RFC3339, UTC).
type Record map[string]interface{}

// String returns the record's value for `field` as a string.
// Numeric values are formatted; absent or non-scalar values yield "".
func (r Record) String(field string) string {
	switch v := r[field].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// Has reports whether `field` is set on the record.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	cp := make(Record, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// Timestamp returns the RFC3339 representation of `t` used for created_at values.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
