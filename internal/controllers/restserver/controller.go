// Package restserver exposes the analyzer and the report store over HTTP.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/chrissnell/cardiorhythm/internal/analysis"
	"github.com/chrissnell/cardiorhythm/internal/storage"
	"github.com/chrissnell/cardiorhythm/pkg/config"
	"github.com/chrissnell/cardiorhythm/pkg/responseformat"
)

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.RESTServerData
	Server     http.Server
	logger     *zap.SugaredLogger
	handlers   *Handlers
}

// NewController creates a new REST server controller. store may be nil, in
// which case the report endpoints answer 503.
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.RESTServerData, analyzer *analysis.Analyzer, store storage.ReportStore, logger *zap.SugaredLogger) (*Controller, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("REST server requires an analyzer")
	}

	// If a listen address was not provided, listen on all interfaces
	if rc.ListenAddr == "" {
		logger.Info("rest.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		rc.ListenAddr = config.DefaultListenAddr
	}

	// Set default HTTP port if not specified
	if rc.HTTPPort == 0 {
		logger.Infof("rest.http_port not provided; defaulting to %d", config.DefaultHTTPPort)
		rc.HTTPPort = config.DefaultHTTPPort
	}

	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		restConfig: rc,
		logger:     logger,
		handlers: &Handlers{
			analyzer:  analyzer,
			store:     store,
			formatter: responseformat.NewFormatter(),
			logger:    logger,
		},
	}

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.HTTPPort)
	ctrl.Server.Handler = ctrl.Router()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	c.logger.Infof("Starting REST server on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		c.logger.Info("Shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Server.Shutdown(shutdownCtx)
	}()

	return nil
}

// Router configures the HTTP router with all endpoints
func (c *Controller) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(c.loggingMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyze", c.handlers.Analyze).Methods(http.MethodPost)
	api.HandleFunc("/reports", c.handlers.ListReports).Methods(http.MethodGet)
	api.HandleFunc("/reports/{id}", c.handlers.GetReport).Methods(http.MethodGet)

	router.HandleFunc("/healthz", c.handlers.Health).Methods(http.MethodGet)

	return router
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (c *Controller) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, req)
		c.logger.Debugw("http request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", req.RemoteAddr,
		)
	})
}
