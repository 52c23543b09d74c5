package catalog

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Document is the root of a parsed pattern catalog. It is built once by the
// loader and never mutated afterwards.
type Document struct {
	Source   string     `json:"source" yaml:"source"`                         // File name or label the text came from
	Digest   string     `json:"digest" yaml:"digest"`                         // Hex SHA-256 of the raw input
	Preamble *Section   `json:"preamble,omitempty" yaml:"preamble,omitempty"` // Text before the first chapter heading
	Chapters []*Chapter `json:"chapters" yaml:"chapters"`
}

// Chapter is a top-level grouping such as "Builder" or "Factories".
type Chapter struct {
	Title      string     `json:"title" yaml:"title"`
	Level      int        `json:"level" yaml:"level"` // Heading level (number of '#')
	Line       int        `json:"line" yaml:"line"`
	HeadingRaw string     `json:"-" yaml:"-"` // Heading line plus the blank lines after it
	Sections   []*Section `json:"sections" yaml:"sections"`
}

// Section is a named subdivision of a chapter. Chapter text that precedes the
// first section heading is held by an untitled section with Implicit set; the
// document preamble uses the same shape.
type Section struct {
	Title      string  `json:"title" yaml:"title"`
	Level      int     `json:"level" yaml:"level"`
	Line       int     `json:"line" yaml:"line"`
	Implicit   bool    `json:"implicit,omitempty" yaml:"implicit,omitempty"`
	HeadingRaw string  `json:"-" yaml:"-"` // Heading line plus the blank lines after it
	Raw        string  `json:"-" yaml:"-"` // Body text, excluding HeadingRaw
	Blocks     []Block `json:"blocks" yaml:"blocks"`
}

// BlockKind tags the variant held by a Block.
type BlockKind string

const (
	KindProse   BlockKind = "prose"
	KindBullets BlockKind = "bullets"
	KindCode    BlockKind = "code"
	KindHeading BlockKind = "heading"
)

// Block is the smallest typed unit of content within a section.
type Block struct {
	Kind BlockKind `json:"kind" yaml:"kind"`
	Line int       `json:"line" yaml:"line"`
	Raw  string    `json:"raw" yaml:"raw"`

	Text     string   `json:"text,omitempty" yaml:"text,omitempty"`         // prose, heading
	Items    []string `json:"items,omitempty" yaml:"items,omitempty"`       // bullets
	Language string   `json:"language,omitempty" yaml:"language,omitempty"` // code
	Code     string   `json:"code,omitempty" yaml:"code,omitempty"`         // code
	Level    int      `json:"level,omitempty" yaml:"level,omitempty"`       // heading
}

// Slug returns the URL-safe form of the chapter title.
func (c *Chapter) Slug() string {
	return Slugify(c.Title)
}

// Slug returns the URL-safe form of the section title.
func (s *Section) Slug() string {
	return Slugify(s.Title)
}

// Raw reconstructs the exact source text of the chapter.
func (c *Chapter) Raw() string {
	var sb strings.Builder
	sb.WriteString(c.HeadingRaw)
	for _, s := range c.Sections {
		sb.WriteString(s.HeadingRaw)
		sb.WriteString(s.Raw)
	}
	return sb.String()
}

// Raw reconstructs the exact source text of the whole document.
func (d *Document) Raw() string {
	var sb strings.Builder
	if d.Preamble != nil {
		sb.WriteString(d.Preamble.HeadingRaw)
		sb.WriteString(d.Preamble.Raw)
	}
	for _, c := range d.Chapters {
		sb.WriteString(c.Raw())
	}
	return sb.String()
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
