// Package server exposes csvskema parsing over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	j "github.com/goccy/go-json"
	"github.com/google/uuid"

	csvskema "github.com/reoring/csvskema"
	"github.com/reoring/csvskema/dsl"
	"github.com/reoring/csvskema/internal/config"
	"github.com/reoring/csvskema/internal/logging"
	"github.com/reoring/csvskema/internal/render"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadColumns = "bad_columns"
	CodeTooLarge   = "too_large"
	CodeBadBody    = "bad_body"
)

// DefaultMaxBodyBytes caps /v1/parse request bodies when max_bytes is 0.
const DefaultMaxBodyBytes int64 = 10 << 20

// ErrorResponse is the JSON body of every non-2xx response except schema
// failures, which use render.Document.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Server is the HTTP validation service.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	router *chi.Mux
	server  *http.Server
	newID   func() string
	maxBody int64
}

// New creates a Server. A nil logger uses slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		router: chi.NewRouter(),
		newID:  func() string { return uuid.New().String() },
	}
	s.maxBody = cfg.MaxBytes
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/schema", s.handleSchema)
	})
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux { return s.router }

// Start listens on cfg.Server.Addr until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", s.cfg.Server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// schemaFor builds the row schema from the columns query parameter, falling
// back to the configured columns. No columns at all means raw rows.
func (s *Server) schemaFor(r *http.Request) (*dsl.TupleSchema, error) {
	names := s.cfg.Columns
	if q := r.URL.Query().Get("columns"); q != "" {
		names = strings.Split(q, ",")
	}
	if len(names) == 0 {
		return nil, nil
	}
	return dsl.FromNames(names)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	ts, err := s.schemaFor(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest, CodeBadColumns)
		return
	}
	opt := csvskema.ParseOpt{
		CollectAll: s.cfg.CollectAll || queryBool(r, "all"),
		FailFast:   s.cfg.FailFast || queryBool(r, "fail_fast"),
		MaxBytes:   s.maxBody,
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody+1)

	var schema csvskema.RowSchema
	if ts != nil {
		schema = ts
	}
	res, err := csvskema.ParseFrom(r.Context(), csvskema.ReaderSource("request", r.Body), schema, opt)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.Is(err, csvskema.ErrSourceTooLarge) || errors.As(err, &mbe) {
			s.respondError(w, r, err, http.StatusRequestEntityTooLarge, CodeTooLarge)
			return
		}
		s.respondError(w, r, err, http.StatusBadRequest, CodeBadBody)
		return
	}

	doc := render.NewDocument(res)
	doc.ParseID = s.newID()
	logging.FromContext(r.Context(), s.logger).Info("parsed",
		"parse_id", doc.ParseID,
		"kind", doc.Kind,
		"rows", res.Len(),
		"issues", len(res.Failure()),
	)

	status := http.StatusOK
	if !res.OK() {
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = render.JSON(w, doc)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	ts, err := s.schemaFor(r)
	if err == nil && ts == nil {
		err = errors.New("no columns given")
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest, CodeBadColumns)
		return
	}
	js, err := ts.JSONSchema()
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError, CodeBadColumns)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_ = render.Schema(w, js)
}

// respondError logs err with the request ID and writes an ErrorResponse.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, status int, code string) {
	logging.FromContext(r.Context(), s.logger).Error("request error",
		"path", r.URL.Path,
		"status", status,
		"code", code,
		"error", err.Error(),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = j.NewEncoder(w).Encode(ErrorResponse{Error: err.Error(), Code: code})
}

func queryBool(r *http.Request, key string) bool {
	switch strings.ToLower(r.URL.Query().Get(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
