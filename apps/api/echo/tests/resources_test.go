package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coursedesk/coursedesk/core/record"
)

func TestResourcesCreateAndList(t *testing.T) {
	app := setup(t)

	code, _ := app.do(t, http.MethodPost, "/v1/resources",
		record.Record{"title": "Slides", "link": "not a url"})
	checkCode(t, code, http.StatusBadRequest)

	for _, r := range []record.Record{
		{"title": "Slides", "link": "https://uni.example/slides"},
		{"title": "Reader", "description": "course reader", "link": "https://uni.example/reader"},
	} {
		code, _ := app.do(t, http.MethodPost, "/v1/resources", r)
		checkCode(t, code, http.StatusCreated)
	}

	code, env := app.do(t, http.MethodGet, "/v1/resources", nil)
	checkCode(t, code, http.StatusOK)
	resources := decodeRecords(t, env.Data)
	assert.Len(t, resources, 2)

	_, env = app.do(t, http.MethodGet, "/v1/resources?sort=title", nil)
	resources = decodeRecords(t, env.Data)
	if assert.Len(t, resources, 2) {
		assert.Equal(t, "Reader", resources[0].String("title"))
		assert.Equal(t, "Slides", resources[1].String("title"))
	}
}

func TestWeeksCRUD(t *testing.T) {
	app := setup(t)

	week := record.Record{
		"week_id":    "w01",
		"title":      "Introduction",
		"start_date": "2026-09-07",
		"links":      []string{"https://uni.example/w01"},
	}
	code, env := app.do(t, http.MethodPost, "/v1/weeks", week)
	checkCode(t, code, http.StatusCreated)
	assert.Equal(t, "Week created successfully", env.Message)

	code, _ = app.do(t, http.MethodPost, "/v1/weeks", week)
	checkCode(t, code, http.StatusConflict)

	code, env = app.do(t, http.MethodGet, "/v1/weeks?week_id=w01", nil)
	checkCode(t, code, http.StatusOK)
	assert.Equal(t, "Introduction", decodeRecord(t, env.Data).String("title"))

	code, _ = app.do(t, http.MethodPut, "/v1/weeks",
		record.Record{"week_id": "w01", "start_date": "2026-09-14"})
	checkCode(t, code, http.StatusOK)

	// the week's comments ride on the same id field
	code, env = app.do(t, http.MethodPost, "/v1/weeks?action=comment",
		record.Record{"week_id": "w01", "author": "Bob", "text": "See you there"})
	checkCode(t, code, http.StatusCreated)
	assert.Equal(t, "w01", decodeRecord(t, env.Data).String("week_id"))

	code, _ = app.do(t, http.MethodDelete, "/v1/weeks?week_id=w01", nil)
	checkCode(t, code, http.StatusOK)
	_, env = app.do(t, http.MethodGet, "/v1/weeks/comments?week_id=w01", nil)
	assert.Empty(t, decodeRecords(t, env.Data))
}
