package store

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgallion1/patterncat/internal/catalog"
	"github.com/dgallion1/patterncat/internal/parser"
)

// Store holds the current catalog. Reloads build a fresh Document and swap it
// in whole, so readers always see either the old or the new catalog.
type Store struct {
	path string
	opts parser.Options
	log  *slog.Logger

	doc   atomic.Pointer[catalog.Document]
	stats *LoadStats

	mu       sync.Mutex // serializes reloads and guards the fields below
	loadedAt time.Time
	reloads  int
	failures int
	lastErr  string

	wg sync.WaitGroup
}

// Status describes the store's reload history.
type Status struct {
	Path     string        `json:"path" yaml:"path"`
	Digest   string        `json:"digest" yaml:"digest"`
	LoadedAt time.Time     `json:"loaded_at" yaml:"loaded_at"`
	Reloads  int           `json:"reloads" yaml:"reloads"`
	Failures int           `json:"failures" yaml:"failures"`
	LastErr  string        `json:"last_error,omitempty" yaml:"last_error,omitempty"`
	Latency  StatsSnapshot `json:"load_latency" yaml:"load_latency"`
}

// New creates a store for the catalog file at path. Nothing is loaded until
// Reload is called.
func New(path string, opts parser.Options, log *slog.Logger, statsWindow time.Duration) *Store {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &Store{
		path:  path,
		opts:  opts,
		log:   log.With("path", path),
		stats: NewLoadStats(statsWindow),
	}
}

// Path returns the absolute path of the catalog file.
func (s *Store) Path() string {
	return s.path
}

// Document returns the current catalog, or nil before the first successful load.
func (s *Store) Document() *catalog.Document {
	return s.doc.Load()
}

// Reload loads the catalog file and publishes it. On failure the previous
// catalog stays in place.
func (s *Store) Reload() (*catalog.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	doc, err := parser.LoadFile(s.path, s.opts)
	elapsed := time.Since(start)
	s.stats.Record(elapsed)

	if err != nil {
		s.failures++
		s.lastErr = err.Error()
		s.log.Error("catalog load failed", "error", err)
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}

	prev := s.doc.Swap(doc)
	s.reloads++
	s.lastErr = ""
	s.loadedAt = time.Now()

	s.log.Info("catalog loaded",
		"digest", doc.Digest[:12],
		"chapters", len(doc.Chapters),
		"changed", prev == nil || prev.Digest != doc.Digest,
		"duration_ms", elapsed.Milliseconds(),
	)
	return doc, nil
}

// Status returns a snapshot of the store's reload history.
func (s *Store) Status() Status {
	s.mu.Lock()
	st := Status{
		Path:     s.path,
		LoadedAt: s.loadedAt,
		Reloads:  s.reloads,
		Failures: s.failures,
		LastErr:  s.lastErr,
	}
	s.mu.Unlock()

	if doc := s.doc.Load(); doc != nil {
		st.Digest = doc.Digest
	}
	st.Latency = s.stats.Snapshot()
	return st
}
