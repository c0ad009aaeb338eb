package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedesk/coursedesk/core/record"
)

func TestAssignmentsCreate(t *testing.T) {
	app := setup(t)

	code, env := app.do(t, http.MethodPost, "/v1/assignments", record.Record{
		"title":       "Essay",
		"description": "On memory allocators",
		"due_date":    "2026-10-01",
		"files":       []string{"brief.pdf"},
	})
	checkCode(t, code, http.StatusCreated)
	assert.Equal(t, "Assignment created successfully", env.Message)
	created := decodeRecord(t, env.Data)
	// ids are engine-assigned for this kind
	assert.NotEmpty(t, created.String("id"))
	assert.NotEmpty(t, created.String("created_at"))

	code, env = app.do(t, http.MethodPost, "/v1/assignments", record.Record{"title": "Essay"})
	checkCode(t, code, http.StatusBadRequest)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "description")
	assert.Contains(t, env.Message, "due_date")

	code, _ = app.do(t, http.MethodPost, "/v1/assignments", record.Record{
		"title":       "Essay",
		"description": "x",
		"due_date":    "01/10/2026",
	})
	checkCode(t, code, http.StatusBadRequest)
}

func TestAssignmentsDefaultSort(t *testing.T) {
	app := setup(t)

	for _, a := range []record.Record{
		{"title": "Late", "description": "x", "due_date": "2026-12-01"},
		{"title": "Early", "description": "x", "due_date": "2026-09-15"},
		{"title": "Mid", "description": "x", "due_date": "2026-10-20"},
	} {
		code, _ := app.do(t, http.MethodPost, "/v1/assignments", a)
		checkCode(t, code, http.StatusCreated)
	}

	code, env := app.do(t, http.MethodGet, "/v1/assignments", nil)
	checkCode(t, code, http.StatusOK)
	titles := []string{}
	for _, r := range decodeRecords(t, env.Data) {
		titles = append(titles, r.String("title"))
	}
	assert.Equal(t, []string{"Early", "Mid", "Late"}, titles)
}

func TestAssignmentsComments(t *testing.T) {
	app := setup(t)

	code, env := app.do(t, http.MethodPost, "/v1/assignments", record.Record{
		"title":       "Essay",
		"description": "x",
		"due_date":    "2026-10-01",
	})
	checkCode(t, code, http.StatusCreated)
	assignmentID := decodeRecord(t, env.Data).String("id")
	require.NotEmpty(t, assignmentID)

	// unknown parent
	code, _ = app.do(t, http.MethodPost, "/v1/assignments?action=comment",
		record.Record{"assignment_id": "ghost", "text": "hi"})
	checkCode(t, code, http.StatusNotFound)

	// empty text
	code, _ = app.do(t, http.MethodPost, "/v1/assignments?action=comment",
		record.Record{"assignment_id": assignmentID, "text": "  "})
	checkCode(t, code, http.StatusBadRequest)

	code, env = app.do(t, http.MethodPost, "/v1/assignments?action=comment",
		record.Record{"assignment_id": assignmentID, "text": "Looks good"})
	checkCode(t, code, http.StatusCreated)
	first := decodeRecord(t, env.Data)
	// missing author defaults
	assert.Equal(t, "Anonymous", first.String("author"))
	commentID := first.String("id")
	require.NotEmpty(t, commentID)

	code, _ = app.do(t, http.MethodPost, "/v1/assignments?action=comment",
		record.Record{"assignment_id": assignmentID, "author": "Ann", "text": "Second"})
	checkCode(t, code, http.StatusCreated)

	code, env = app.do(t, http.MethodGet, "/v1/assignments/comments?assignment_id="+assignmentID, nil)
	checkCode(t, code, http.StatusOK)
	comments := decodeRecords(t, env.Data)
	require.Len(t, comments, 2)
	assert.Equal(t, "Looks good", comments[0].String("text"))
	assert.Equal(t, "Second", comments[1].String("text"))

	code, _ = app.do(t, http.MethodGet, "/v1/assignments/comments", nil)
	checkCode(t, code, http.StatusBadRequest)

	code, _ = app.do(t, http.MethodDelete, "/v1/assignments/comments?id="+commentID, nil)
	checkCode(t, code, http.StatusOK)
	code, _ = app.do(t, http.MethodDelete, "/v1/assignments/comments?id="+commentID, nil)
	checkCode(t, code, http.StatusNotFound)

	// deleting the assignment cascades to its remaining comments
	code, _ = app.do(t, http.MethodDelete, "/v1/assignments?id="+assignmentID, nil)
	checkCode(t, code, http.StatusOK)
	_, env = app.do(t, http.MethodGet, "/v1/assignments/comments?assignment_id="+assignmentID, nil)
	assert.Empty(t, decodeRecords(t, env.Data))
}
