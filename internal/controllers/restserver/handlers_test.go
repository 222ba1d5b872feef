package restserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/chrissnell/cardiorhythm/internal/analysis"
	"github.com/chrissnell/cardiorhythm/internal/storage"
	"github.com/chrissnell/cardiorhythm/internal/storage/sqlite"
	"github.com/chrissnell/cardiorhythm/pkg/config"
	"github.com/chrissnell/cardiorhythm/pkg/ecg"
	"github.com/chrissnell/cardiorhythm/pkg/responseformat"
)

func newTestRouter(t *testing.T, withStore bool) http.Handler {
	t.Helper()
	logger := zap.NewNop().Sugar()

	analyzer, err := analysis.New(config.AnalysisData{
		SamplingRate:   250,
		ResamplingRate: 4,
		Interpolation:  "linear",
		Transform:      "godsp",
		Window:         "hamming",
	}, logger)
	if err != nil {
		t.Fatalf("failed to create analyzer: %v", err)
	}

	var store storage.ReportStore
	if withStore {
		s, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "reports.db"))
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		store = s
	}

	var wg sync.WaitGroup
	ctrl, err := NewController(context.Background(), &wg, config.RESTServerData{}, analyzer, store, logger)
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}
	if ctrl.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("expected default address, got %q", ctrl.Server.Addr)
	}
	return ctrl.Router()
}

func analyzeBody(t *testing.T) []byte {
	t.Helper()
	qrs := ecg.QRSComplex{Onset: 0, Offset: 0.09, Q: -0.05, R: 1.0}
	req := AnalyzeRequest{}
	tm := 0.0
	for _, rr := range []float64{0, 0.8, 0.82, 0.79, 0.81, 0.8, 0.83, 0.78, 0.8, 0.81, 0.8} {
		tm += rr
		req.Beats = append(req.Beats, ecg.Heartbeat{Time: tm, QRS: qrs, PQ: 0.15})
	}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func do(router http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := newTestRouter(t, false)

	rec := do(router, http.MethodPost, "/api/v1/analyze", analyzeBody(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report analysis.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.BeatCount != 11 || len(report.Rhythm) != 10 {
		t.Errorf("unexpected report shape: %d beats, %d classes", report.BeatCount, len(report.Rhythm))
	}
	if report.Rhythm[0] != ecg.Unknown {
		t.Errorf("first interval should be unknown, got %v", report.Rhythm[0])
	}
}

func TestAnalyzeEndpointErrors(t *testing.T) {
	router := newTestRouter(t, false)

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{name: "malformed body", target: "/api/v1/analyze", body: "{", status: http.StatusBadRequest},
		{name: "unknown field", target: "/api/v1/analyze", body: `{"beatz": []}`, status: http.StatusBadRequest},
		{
			name:   "beats out of order",
			target: "/api/v1/analyze",
			body:   `{"beats": [{"time": 1.0}, {"time": 0.5}]}`,
			status: http.StatusUnprocessableEntity,
		},
		{name: "store without storage", target: "/api/v1/analyze?store=true", body: `{"beats": []}`, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, http.MethodPost, tt.target, []byte(tt.body))
			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}

	if rec := do(router, http.MethodGet, "/api/v1/reports", nil); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without storage, got %d", rec.Code)
	}
}

func TestReportLifecycle(t *testing.T) {
	router := newTestRouter(t, true)

	rec := do(router, http.MethodPost, "/api/v1/analyze?store=true", analyzeBody(t))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created analysis.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/v1/reports/"+created.ID {
		t.Errorf("unexpected Location %q", loc)
	}

	rec = do(router, http.MethodGet, "/api/v1/reports/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var fetched analysis.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if fetched.ID != created.ID || len(fetched.Intervals) != len(created.Intervals) {
		t.Errorf("fetched report does not match: %s vs %s", fetched.ID, created.ID)
	}

	rec = do(router, http.MethodGet, "/api/v1/reports?limit=10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var summaries []analysis.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("failed to decode summaries: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != created.ID {
		t.Errorf("unexpected summaries: %+v", summaries)
	}

	if rec := do(router, http.MethodGet, "/api/v1/reports/does-not-exist", nil); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec := do(router, http.MethodGet, "/api/v1/reports?limit=-3", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative limit, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, true)

	rec := do(router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" || body["storage"] != true {
		t.Errorf("unexpected health body: %v", body)
	}
}

// brokenWriter accepts headers but fails every body write
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestWriteFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	h := &Handlers{
		formatter: responseformat.NewFormatter(),
		logger:    zap.New(core).Sugar(),
	}

	w := brokenWriter{httptest.NewRecorder()}
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	h.Health(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
}
