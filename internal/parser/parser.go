package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/patterncat/internal/catalog"
)

// Parser converts raw catalog text into a Document.
type Parser interface {
	Parse(r io.Reader, filename string) (*catalog.Document, error)
}

// Options controls how headings map onto chapters and sections.
type Options struct {
	// ChapterLevel is the heading level (1-5) of chapter headings. Zero picks
	// the shallowest heading level present in the text.
	ChapterLevel int
	// Source labels the resulting Document.
	Source string
}

// Validate rejects chapter levels that leave no room for a section level.
func (o Options) Validate() error {
	if o.ChapterLevel < 0 || o.ChapterLevel > 5 {
		return fmt.Errorf("chapter level must be between 1 and 5 (or 0 for auto), got %d", o.ChapterLevel)
	}
	return nil
}

// SupportedExtensions lists file extensions this tool can load.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	if !IsSupportedExtension(filename) {
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
	return &MarkdownParser{Options: opts}, nil
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// LoadReader reads all of r and loads it as a catalog named name.
func LoadReader(r io.Reader, name string, opts Options) (*catalog.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	opts.Source = name
	return Load(src, opts)
}

// LoadFile loads the catalog stored at path.
func LoadFile(path string, opts Options) (*catalog.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ForFile(path, opts)
	if err != nil {
		return nil, err
	}
	return p.Parse(f, filepath.Base(path))
}
