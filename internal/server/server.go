// Package server is the reference REST backend for the ledger client. It
// implements the /api/expenses contract the gateway consumes: list,
// create, update, delete, JSON in and out.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gagyebu/internal/amqp"
	"gagyebu/internal/log"
	"gagyebu/internal/storage"
)

type Server struct {
	repo    *storage.SQLiteRepository
	events  *amqp.Publisher // nil disables event publishing
	limiter *rateLimiter
	log     *slog.Logger
}

func New(repo *storage.SQLiteRepository, events *amqp.Publisher) *Server {
	return &Server{
		repo:    repo,
		events:  events,
		limiter: newRateLimiter(300),
		log:     slog.Default().With(log.FieldComponent, log.ComponentServer),
	}
}

// Close stops background goroutines. The repository and publisher are
// owned by the caller.
func (s *Server) Close() {
	s.limiter.Stop()
}

// Router builds the HTTP routing table.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(s.limiter.middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api/expenses", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})

	return r
}

// requestLogger logs one line per request with status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		level := slog.LevelInfo
		if sw.status >= 500 {
			level = slog.LevelError
		} else if sw.status >= 400 {
			level = slog.LevelWarn
		}
		s.log.Log(r.Context(), level, "request",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatus, sw.status,
			log.FieldDuration, time.Since(start).Milliseconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
