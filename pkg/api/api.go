// Package api exposes the classification pipeline over HTTP.
//
// The surface is small: POST /v1/classify accepts the same options the
// pipeline takes, GET /healthz is a liveness probe, and GET /v1/version
// reports build metadata. Every request carries an X-Request-ID for
// correlation with server logs.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/graphcert/alphabound/pkg/buildinfo"
	"github.com/graphcert/alphabound/pkg/classify"
	"github.com/graphcert/alphabound/pkg/errors"
	"github.com/graphcert/alphabound/pkg/observability"
	"github.com/graphcert/alphabound/pkg/pipeline"
)

// maxRequestBody caps classify request bodies. Graph documents are
// tiny; anything larger is abuse.
const maxRequestBody = 1 << 20

// Server wires the pipeline runner into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// NewServer builds the HTTP surface over the given runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/version", s.handleVersion)
	r.Post("/v1/classify", s.handleClassify)
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ClassifyResponse is the body of a successful classify call.
type ClassifyResponse struct {
	GraphHash      string             `json:"graph_hash"`
	Classification *classify.Result   `json:"classification"`
	CertificateID  string             `json:"certificate_id"`
	Artifacts      map[string][]byte  `json:"artifacts,omitempty"`
	Stats          pipeline.Stats     `json:"stats"`
	CacheInfo      pipeline.CacheInfo `json:"cache_info"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := ClassifyResponse{
		GraphHash:      result.GraphHash,
		Classification: result.Classification,
		CertificateID:  result.Certificate.ID,
		Artifacts:      result.Artifacts,
		Stats:          result.Stats,
		CacheInfo:      result.CacheInfo,
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidGraph:
		status = http.StatusBadRequest
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	case errors.ErrCodeSolverUnavailable:
		status = http.StatusServiceUnavailable
	}
	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"code", code,
		"err", err)
	s.writeJSON(w, status, errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// requestID attaches a correlation id to each request.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// instrument emits API hooks and access logs around each request.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)
		observability.API().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("handled request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed)
	})
}
