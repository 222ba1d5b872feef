package responseformat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type payload struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestWriteResponse(t *testing.T) {
	f := NewFormatter()
	data := payload{Name: "sdnn", Value: 42.5}

	t.Run("json by default", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reports", nil)

		if err := f.WriteResponse(rec, req, http.StatusCreated, data); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Errorf("expected status 201, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		var got payload
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || got != data {
			t.Errorf("unexpected body %q (err=%v)", rec.Body.String(), err)
		}
	})

	t.Run("msgpack on request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reports?format=msgpack", nil)

		if err := f.WriteResponse(rec, req, http.StatusOK, data); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/x-msgpack" {
			t.Errorf("expected msgpack content type, got %q", ct)
		}

		dec := msgpack.NewDecoder(bytes.NewReader(rec.Body.Bytes()))
		dec.SetCustomStructTag("json")
		var got payload
		if err := dec.Decode(&got); err != nil || got != data {
			t.Errorf("unexpected body (err=%v): %+v", err, got)
		}
	})
}
