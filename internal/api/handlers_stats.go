package api

import (
	"errors"
	"net/http"

	"github.com/dgallion1/patterncat/internal/catalog"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"store": s.catalog.Status()}
	if doc := s.catalog.Document(); doc != nil {
		resp["catalog"] = doc.Stats()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	doc, err := s.catalog.Reload()
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, catalog.ErrMalformedInput) || errors.Is(err, catalog.ErrUnterminatedCodeBlock) {
			code = http.StatusUnprocessableEntity
		}
		jsonError(w, err.Error(), code)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"digest":   doc.Digest,
		"chapters": len(doc.Chapters),
	})
}
