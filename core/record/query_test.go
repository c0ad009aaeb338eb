package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coursedesk/coursedesk/core/record"
)

func students(names ...[3]string) []record.Record {
	recs := make([]record.Record, 0, len(names))
	for _, n := range names {
		recs = append(recs, record.Record{"id": n[0], "name": n[1], "email": n[2]})
	}
	return recs
}

func ids(recs []record.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.String("id"))
	}
	return out
}

func TestSearch(t *testing.T) {
	recs := students(
		[3]string{"s1", "Ann Smith", "ann@test.cd"},
		[3]string{"s2", "Bob King", "bob@test.cd"},
		[3]string{"s3", "Annabel Lee", "lee@uni.cd"},
	)

	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{name: "empty term is a no-op", term: "", wantIDs: []string{"s1", "s2", "s3"}},
		{name: "blank term is a no-op", term: "   ", wantIDs: []string{"s1", "s2", "s3"}},
		{name: "case-insensitive name match", term: "ANN", wantIDs: []string{"s1", "s3"}},
		{name: "id match", term: "s2", wantIDs: []string{"s2"}},
		{name: "email match", term: "uni.cd", wantIDs: []string{"s3"}},
		{name: "substring match", term: "ing", wantIDs: []string{"s2"}},
		{name: "no match", term: "zzz", wantIDs: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := record.Search(record.Students, recs, tt.term)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}
}

func TestSort(t *testing.T) {
	recs := students(
		[3]string{"s3", "carol", "carol@test.cd"},
		[3]string{"s1", "Bob", "bob@test.cd"},
		[3]string{"s2", "alice", "alice@test.cd"},
	)

	tests := []struct {
		name         string
		field, order string
		wantIDs      []string
	}{
		{name: "name asc is case-insensitive", field: "name", order: "asc", wantIDs: []string{"s2", "s1", "s3"}},
		{name: "name desc reverses", field: "name", order: "desc", wantIDs: []string{"s3", "s1", "s2"}},
		{name: "unknown field falls back to default", field: "password", order: "asc", wantIDs: []string{"s2", "s1", "s3"}},
		{name: "unknown order falls back to asc", field: "name", order: "sideways", wantIDs: []string{"s2", "s1", "s3"}},
		{name: "sort by id", field: "id", order: "asc", wantIDs: []string{"s1", "s2", "s3"}},
		{name: "student_id aliases id", field: "student_id", order: "asc", wantIDs: []string{"s1", "s2", "s3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := record.Sort(record.Students, recs, tt.field, tt.order)
			assert.Equal(t, tt.wantIDs, ids(got))

			// input order untouched
			assert.Equal(t, []string{"s3", "s1", "s2"}, ids(recs))
		})
	}
}

func TestSortNumeric(t *testing.T) {
	recs := []record.Record{
		{"id": "10", "name": "a"},
		{"id": "2", "name": "b"},
		{"id": "1", "name": "c"},
	}
	got := record.Sort(record.Students, recs, "id", "asc")
	// numeric comparison: 1 < 2 < 10, not lexicographic "1" < "10" < "2"
	assert.Equal(t, []string{"1", "2", "10"}, ids(got))
}

func TestSortStable(t *testing.T) {
	recs := []record.Record{
		{"id": "s1", "name": "Ann"},
		{"id": "s2", "name": "ann"},
		{"id": "s3", "name": "ANN"},
	}
	got := record.Sort(record.Students, recs, "name", "asc")
	// equal keys keep their input order
	assert.Equal(t, []string{"s1", "s2", "s3"}, ids(got))
}

func TestSortDefaultDirection(t *testing.T) {
	recs := []record.Record{
		{"id": "r1", "title": "t", "created_at": "2026-01-01T00:00:00Z"},
		{"id": "r2", "title": "t", "created_at": "2026-03-01T00:00:00Z"},
		{"id": "r3", "title": "t", "created_at": "2026-02-01T00:00:00Z"},
	}
	// resources default to created_at descending when nothing is given
	got := record.Sort(record.Resources, recs, "", "")
	assert.Equal(t, []string{"r2", "r3", "r1"}, ids(got))
}
