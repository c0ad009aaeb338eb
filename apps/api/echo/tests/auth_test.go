package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursedesk/coursedesk/core/record"
)

func TestAuthLogin(t *testing.T) {
	app := setup(t)

	code, _ := app.do(t, http.MethodPost, "/v1/students",
		record.Record{"id": "s1", "name": "Ann", "email": "ann@x.com", "password": "secret123"})
	checkCode(t, code, http.StatusCreated)

	tests := []struct {
		name     string
		body     record.Record
		wantCode int
	}{
		{"empty body", record.Record{}, http.StatusBadRequest},
		{"malformed email", record.Record{"email": "nope", "password": "secret123"}, http.StatusBadRequest},
		{"short password", record.Record{"email": "ann@x.com", "password": "short"}, http.StatusBadRequest},
		{"unknown user", record.Record{"email": "ghost@x.com", "password": "secret123"}, http.StatusUnauthorized},
		{"wrong password", record.Record{"email": "ann@x.com", "password": "wrongpass"}, http.StatusUnauthorized},
		{"ok", record.Record{"email": "ann@x.com", "password": "secret123"}, http.StatusOK},
		{"ok mixed-case email", record.Record{"email": "ANN@X.com", "password": "secret123"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := app.do(t, http.MethodPost, "/v1/auth/login", tt.body)
			checkCode(t, code, tt.wantCode)

			if tt.wantCode != http.StatusOK {
				assert.False(t, env.Success)
				return
			}
			var resp struct {
				User  record.Record `json:"user"`
				Token string        `json:"token"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &resp))
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, "Ann", resp.User.String("name"))
			assert.False(t, resp.User.Has("password"))
		})
	}
}
