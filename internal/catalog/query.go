package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ListChapters returns the chapters in document order.
func (d *Document) ListChapters() []*Chapter {
	return d.Chapters
}

// Chapter returns the chapter at a 0-based index.
func (d *Document) Chapter(i int) (*Chapter, error) {
	if i < 0 || i >= len(d.Chapters) {
		return nil, fmt.Errorf("chapter %d: %w", i, ErrNotFound)
	}
	return d.Chapters[i], nil
}

// ListSections returns the sections of the chapter at a 0-based index.
func (d *Document) ListSections(chapter int) ([]*Section, error) {
	c, err := d.Chapter(chapter)
	if err != nil {
		return nil, err
	}
	return c.Sections, nil
}

// ContentBlocks returns the blocks of one section, addressed by 0-based indexes.
func (d *Document) ContentBlocks(chapter, section int) ([]Block, error) {
	c, err := d.Chapter(chapter)
	if err != nil {
		return nil, err
	}
	s, err := c.Section(section)
	if err != nil {
		return nil, err
	}
	return s.Blocks, nil
}

// Section returns the section at a 0-based index.
func (c *Chapter) Section(i int) (*Section, error) {
	if i < 0 || i >= len(c.Sections) {
		return nil, fmt.Errorf("section %d of %q: %w", i, c.Title, ErrNotFound)
	}
	return c.Sections[i], nil
}

// ChapterBySlug returns the first chapter whose slug matches.
func (d *Document) ChapterBySlug(slug string) (*Chapter, error) {
	for _, c := range d.Chapters {
		if slug != "" && c.Slug() == slug {
			return c, nil
		}
	}
	return nil, fmt.Errorf("chapter %q: %w", slug, ErrNotFound)
}

// SectionBySlug returns the first section whose slug matches.
func (c *Chapter) SectionBySlug(slug string) (*Section, error) {
	for _, s := range c.Sections {
		if slug != "" && s.Slug() == slug {
			return s, nil
		}
	}
	return nil, fmt.Errorf("section %q of %q: %w", slug, c.Title, ErrNotFound)
}

// FindChapter resolves a reference that is either a 0-based index or a slug.
func (d *Document) FindChapter(ref string) (*Chapter, error) {
	if i, err := strconv.Atoi(ref); err == nil {
		return d.Chapter(i)
	}
	return d.ChapterBySlug(ref)
}

// FindSection resolves a reference that is either a 0-based index or a slug.
func (c *Chapter) FindSection(ref string) (*Section, error) {
	if i, err := strconv.Atoi(ref); err == nil {
		return c.Section(i)
	}
	return c.SectionBySlug(ref)
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify converts a string to a URL/path-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = strings.TrimRight(s[:50], "-")
	}
	return s
}
