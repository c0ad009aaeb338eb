package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"

	"github.com/coursedesk/coursedesk/apps/api/echo"
	"github.com/coursedesk/coursedesk/core"
	"github.com/coursedesk/coursedesk/core/record"
	"github.com/coursedesk/coursedesk/services/email"
	"github.com/coursedesk/coursedesk/services/logger"
	"github.com/coursedesk/coursedesk/tests"
)

type testApp struct {
	srv      echoapi.Server
	conf     *core.Config
	services map[string]*record.Service
}

func setup(t *testing.T) *testApp {
	t.Helper()

	conf := testutil.NewConfig(t)
	store := testutil.NewStore(t, conf)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	services := make(map[string]*record.Service, len(record.AllSchemas))
	svcList := make([]*record.Service, 0, len(record.AllSchemas))
	for _, schema := range record.AllSchemas {
		svc := record.NewService(conf, schema, store, mailSvc)
		services[schema.Name] = svc
		svcList = append(svcList, svc)
	}

	srv := echoapi.NewServer(&echoapi.Options{
		Conf:           conf,
		Logger:         logsvc.NewConsoleLogger(log.New(io.Discard, "", 0)),
		DisableReqLogs: true,
		Services:       svcList,
	})
	return &testApp{srv: srv, conf: conf, services: services}
}

// envelope mirrors the API's uniform response shape with the data left raw.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do runs one request against the app and decodes the envelope.
func (app *testApp) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.srv.ServeHTTP(rec, req)

	var env envelope
	if len(rec.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, env
}

func decodeRecords(t *testing.T, data json.RawMessage) []record.Record {
	t.Helper()
	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("decoding records %q: %v", string(data), err)
	}
	return records
}

func decodeRecord(t *testing.T, data json.RawMessage) record.Record {
	t.Helper()
	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("decoding record %q: %v", string(data), err)
	}
	return rec
}

func checkCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("failed! code = %v; wantCode %v", got, want)
	}
}
