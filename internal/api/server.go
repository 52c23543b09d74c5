package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/patterncat/internal/catalog"
	"github.com/dgallion1/patterncat/internal/config"
	"github.com/dgallion1/patterncat/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Catalog is the read side of the catalog store plus a forced reload.
type Catalog interface {
	Document() *catalog.Document
	Reload() (*catalog.Document, error)
	Status() store.Status
}

// Server is the read-only HTTP API over the pattern catalog.
type Server struct {
	router  chi.Router
	catalog Catalog
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(c Catalog, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		catalog: c,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/chapters", s.handleListChapters)
		r.Get("/api/chapters/{chapter}/sections", s.handleListSections)
		r.Get("/api/chapters/{chapter}/sections/{section}/blocks", s.handleContentBlocks)
		r.Get("/api/chapters/{chapter}/sections/{section}/html", s.handleSectionHTML)
		r.Get("/api/stats", s.handleStats)
		r.Post("/api/reload", s.handleReload)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.catalog.Document() == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"loading"}`))
		return
	}
	w.Write([]byte(`{"status":"ok"}`))
}
