package restserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/chrissnell/cardiorhythm/internal/analysis"
	"github.com/chrissnell/cardiorhythm/internal/storage"
	"github.com/chrissnell/cardiorhythm/pkg/ecg"
	"github.com/chrissnell/cardiorhythm/pkg/responseformat"
)

const maxRequestBytes = 16 << 20

// AnalyzeRequest is the body of POST /api/v1/analyze
type AnalyzeRequest struct {
	Beats []ecg.Heartbeat `json:"beats"`
}

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	analyzer  *analysis.Analyzer
	store     storage.ReportStore
	formatter *responseformat.Formatter
	logger    *zap.SugaredLogger
}

// Analyze runs the analyzer over the posted beats. With store=true the
// report is also persisted.
func (h *Handlers) Analyze(w http.ResponseWriter, req *http.Request) {
	var body AnalyzeRequest
	if err := decodeBody(w, req, &body); err != nil {
		h.writeError(w, req, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	report, err := h.analyzer.Analyze(body.Beats)
	if err != nil {
		h.writeError(w, req, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if req.URL.Query().Get("store") == "true" {
		if h.store == nil {
			h.writeError(w, req, http.StatusServiceUnavailable, "report storage is not configured")
			return
		}
		if err := h.store.SaveReport(req.Context(), report); err != nil {
			h.logger.Errorf("error saving report %s: %v", report.ID, err)
			h.writeError(w, req, http.StatusInternalServerError, "could not save report")
			return
		}
		w.Header().Set("Location", "/api/v1/reports/"+report.ID)
		h.write(w, req, http.StatusCreated, report)
		return
	}

	h.write(w, req, http.StatusOK, report)
}

// ListReports returns stored report summaries, newest first
func (h *Handlers) ListReports(w http.ResponseWriter, req *http.Request) {
	if h.store == nil {
		h.writeError(w, req, http.StatusServiceUnavailable, "report storage is not configured")
		return
	}

	limit := 100
	if v := req.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.writeError(w, req, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = n
	}

	summaries, err := h.store.ListReports(req.Context(), limit)
	if err != nil {
		h.logger.Errorf("error listing reports: %v", err)
		h.writeError(w, req, http.StatusInternalServerError, "could not list reports")
		return
	}

	h.write(w, req, http.StatusOK, summaries)
}

// GetReport returns one stored report
func (h *Handlers) GetReport(w http.ResponseWriter, req *http.Request) {
	if h.store == nil {
		h.writeError(w, req, http.StatusServiceUnavailable, "report storage is not configured")
		return
	}

	id := mux.Vars(req)["id"]
	report, err := h.store.GetReport(req.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		h.writeError(w, req, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		h.logger.Errorf("error loading report %s: %v", id, err)
		h.writeError(w, req, http.StatusInternalServerError, "could not load report")
		return
	}

	h.write(w, req, http.StatusOK, report)
}

// Health reports liveness
func (h *Handlers) Health(w http.ResponseWriter, req *http.Request) {
	h.write(w, req, http.StatusOK, map[string]any{
		"status":  "ok",
		"storage": h.store != nil,
	})
}

// write sends data and logs encode failures; the status line is already
// out by then, so there is nothing left to tell the client.
func (h *Handlers) write(w http.ResponseWriter, req *http.Request, status int, data any) {
	if err := h.formatter.WriteResponse(w, req, status, data); err != nil {
		h.logger.Warnf("error writing response for %s: %v", req.URL.Path, err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, req *http.Request, status int, msg string) {
	if err := h.formatter.WriteError(w, req, status, msg); err != nil {
		h.logger.Warnf("error writing error response for %s: %v", req.URL.Path, err)
	}
}

// decodeBody reads a JSON or, for application/x-msgpack, MessagePack body
func decodeBody(w http.ResponseWriter, req *http.Request, v any) error {
	body := http.MaxBytesReader(w, req.Body, maxRequestBytes)
	defer body.Close()

	if req.Header.Get("Content-Type") == "application/x-msgpack" {
		dec := msgpack.NewDecoder(body)
		dec.SetCustomStructTag("json")
		return dec.Decode(v)
	}

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
