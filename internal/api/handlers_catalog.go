package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/patterncat/internal/catalog"
	"github.com/dgallion1/patterncat/internal/render"
	"github.com/go-chi/chi/v5"
)

type chapterSummary struct {
	Index      int    `json:"index"`
	Title      string `json:"title"`
	PlainTitle string `json:"plain_title"`
	Slug       string `json:"slug"`
	Line       int    `json:"line"`
	Sections   int    `json:"sections"`
}

type sectionSummary struct {
	Index      int    `json:"index"`
	Title      string `json:"title"`
	PlainTitle string `json:"plain_title"`
	Slug       string `json:"slug"`
	Line       int    `json:"line"`
	Implicit   bool   `json:"implicit"`
	Blocks     int    `json:"blocks"`
}

func summarizeChapter(i int, c *catalog.Chapter) chapterSummary {
	return chapterSummary{
		Index:      i,
		Title:      c.Title,
		PlainTitle: render.PlainText(c.Title),
		Slug:       c.Slug(),
		Line:       c.Line,
		Sections:   len(c.Sections),
	}
}

func (s *Server) handleListChapters(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.current(w, r)
	if !ok {
		return
	}
	chapters := make([]chapterSummary, 0, len(doc.Chapters))
	for i, c := range doc.ListChapters() {
		chapters = append(chapters, summarizeChapter(i, c))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"source":   doc.Source,
		"digest":   doc.Digest,
		"chapters": chapters,
	})
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.current(w, r)
	if !ok {
		return
	}
	ch, idx, err := findChapter(doc, chi.URLParam(r, "chapter"))
	if err != nil {
		lookupError(w, err)
		return
	}
	sections := make([]sectionSummary, 0, len(ch.Sections))
	for i, sec := range ch.Sections {
		sections = append(sections, sectionSummary{
			Index:      i,
			Title:      sec.Title,
			PlainTitle: render.PlainText(sec.Title),
			Slug:       sec.Slug(),
			Line:       sec.Line,
			Implicit:   sec.Implicit,
			Blocks:     len(sec.Blocks),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"chapter":  summarizeChapter(idx, ch),
		"sections": sections,
	})
}

func (s *Server) handleContentBlocks(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.current(w, r)
	if !ok {
		return
	}
	ch, _, err := findChapter(doc, chi.URLParam(r, "chapter"))
	if err != nil {
		lookupError(w, err)
		return
	}
	sec, err := ch.FindSection(chi.URLParam(r, "section"))
	if err != nil {
		lookupError(w, err)
		return
	}

	blocks := sec.Blocks
	if r.URL.Query().Get("plain") == "true" {
		blocks = plainBlocks(blocks)
	}
	if blocks == nil {
		blocks = []catalog.Block{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"chapter": ch.Title,
		"section": sec.Title,
		"blocks":  blocks,
	})
}

func (s *Server) handleSectionHTML(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.current(w, r)
	if !ok {
		return
	}
	ch, _, err := findChapter(doc, chi.URLParam(r, "chapter"))
	if err != nil {
		lookupError(w, err)
		return
	}
	sec, err := ch.FindSection(chi.URLParam(r, "section"))
	if err != nil {
		lookupError(w, err)
		return
	}
	out, err := render.SectionHTML(sec)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(out))
}

// current returns the published catalog and handles the ETag handshake. It
// writes the response itself and returns false when the handler should stop.
func (s *Server) current(w http.ResponseWriter, r *http.Request) (*catalog.Document, bool) {
	doc := s.catalog.Document()
	if doc == nil {
		jsonError(w, "catalog not loaded", http.StatusServiceUnavailable)
		return nil, false
	}
	etag := `"` + doc.Digest + `"`
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return nil, false
	}
	return doc, true
}

// findChapter resolves an index or slug and also returns the chapter's index.
func findChapter(doc *catalog.Document, ref string) (*catalog.Chapter, int, error) {
	ch, err := doc.FindChapter(ref)
	if err != nil {
		return nil, 0, err
	}
	for i, c := range doc.Chapters {
		if c == ch {
			return ch, i, nil
		}
	}
	return ch, 0, nil
}

// plainBlocks copies blocks with inline markdown stripped from prose,
// headings and list items. Raw and Code are left untouched.
func plainBlocks(blocks []catalog.Block) []catalog.Block {
	out := make([]catalog.Block, len(blocks))
	for i, b := range blocks {
		switch b.Kind {
		case catalog.KindProse, catalog.KindHeading:
			b.Text = render.PlainText(b.Text)
		case catalog.KindBullets:
			items := make([]string, len(b.Items))
			for j, it := range b.Items {
				items[j] = render.PlainText(it)
			}
			b.Items = items
		}
		out[i] = b
	}
	return out
}

func lookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	jsonError(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
