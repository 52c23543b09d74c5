package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/patterncat/internal/catalog"
)

// MarkdownParser loads markdown study notes into a catalog Document.
type MarkdownParser struct {
	Options Options
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*catalog.Document, error) {
	return LoadReader(r, filename, p.Options)
}

type headingLine struct {
	idx   int // 0-based line index
	level int
	title string
}

// Load converts raw text into a Document. It either returns a complete
// Document or an error, never both.
func Load(src []byte, opts Options) (*catalog.Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	text := string(src)
	lines := splitLines(text)

	headings, err := scanHeadings(lines)
	if err != nil {
		return nil, err
	}

	chapterLevel := opts.ChapterLevel
	if chapterLevel == 0 {
		chapterLevel = shallowest(headings)
	}
	if err := checkNesting(headings, chapterLevel); err != nil {
		return nil, err
	}

	doc := &catalog.Document{
		Source:   opts.Source,
		Digest:   catalog.ContentHashHex(src),
		Chapters: []*catalog.Chapter{},
	}

	// Only chapter and section headings split the text; deeper headings stay
	// inside their section as blocks.
	var structural []headingLine
	for _, h := range headings {
		if h.level <= chapterLevel+1 {
			structural = append(structural, h)
		}
	}

	preambleEnd := len(lines)
	if len(structural) > 0 {
		preambleEnd = structural[0].idx
	}
	if preambleEnd > 0 {
		lead, body := splitLeadingBlank(lines[:preambleEnd])
		pre := &catalog.Section{
			Level:      chapterLevel,
			Line:       1 + len(lead),
			Implicit:   true,
			HeadingRaw: joinLines(lead),
			Raw:        joinLines(body),
		}
		if pre.Blocks, err = ExtractBlocks(pre.Raw, pre.Line); err != nil {
			return nil, err
		}
		doc.Preamble = pre
	}

	var chapter *catalog.Chapter
	for k, h := range structural {
		end := len(lines)
		if k+1 < len(structural) {
			end = structural[k+1].idx
		}
		// The heading owns the blank lines directly after it.
		bodyStart := h.idx + 1
		for bodyStart < end && isBlank(lines[bodyStart]) {
			bodyStart++
		}
		headingRaw := joinLines(lines[h.idx:bodyStart])
		body := joinLines(lines[bodyStart:end])

		if h.level == chapterLevel {
			chapter = &catalog.Chapter{
				Title:      h.title,
				Level:      h.level,
				Line:       h.idx + 1,
				HeadingRaw: headingRaw,
				Sections:   []*catalog.Section{},
			}
			doc.Chapters = append(doc.Chapters, chapter)
			if body == "" {
				continue
			}
			sec := &catalog.Section{
				Level:    chapterLevel + 1,
				Line:     bodyStart + 1,
				Implicit: true,
				Raw:      body,
			}
			if sec.Blocks, err = ExtractBlocks(body, sec.Line); err != nil {
				return nil, err
			}
			chapter.Sections = append(chapter.Sections, sec)
			continue
		}

		sec := &catalog.Section{
			Title:      h.title,
			Level:      h.level,
			Line:       h.idx + 1,
			HeadingRaw: headingRaw,
			Raw:        body,
		}
		if sec.Blocks, err = ExtractBlocks(body, bodyStart+1); err != nil {
			return nil, err
		}
		// checkNesting guarantees a chapter is open here.
		chapter.Sections = append(chapter.Sections, sec)
	}

	return doc, nil
}

// scanHeadings finds every heading line that sits outside a fenced code
// region. A fence left open at end of input is an error.
func scanHeadings(lines []string) ([]headingLine, error) {
	var headings []headingLine
	fence := ""
	fenceLine := 0
	for i, line := range lines {
		if fence != "" {
			if isFenceClose(line, fence) {
				fence = ""
			}
			continue
		}
		if f, _, ok := parseFenceOpen(line); ok {
			fence, fenceLine = f, i+1
			continue
		}
		if level, title, ok := parseHeading(line); ok {
			headings = append(headings, headingLine{idx: i, level: level, title: title})
		}
	}
	if fence != "" {
		return nil, &catalog.UnterminatedCodeBlockError{Line: fenceLine, Fence: fence}
	}
	return headings, nil
}

func shallowest(headings []headingLine) int {
	level := 0
	for _, h := range headings {
		if level == 0 || h.level < level {
			level = h.level
		}
	}
	return level
}

// checkNesting walks the headings like a stack of open levels: each heading
// may open at most one level below the one before it.
func checkNesting(headings []headingLine, chapterLevel int) error {
	depth := 0
	for _, h := range headings {
		if h.level < chapterLevel {
			return &catalog.MalformedInputError{
				Line:   h.idx + 1,
				Level:  h.level,
				Title:  h.title,
				Reason: "heading is shallower than the chapter level " + levelMarker(chapterLevel),
			}
		}
		d := h.level - chapterLevel + 1
		if d > depth+1 {
			return &catalog.MalformedInputError{
				Line:   h.idx + 1,
				Level:  h.level,
				Title:  h.title,
				Reason: "no enclosing " + levelMarker(h.level-1) + " heading",
			}
		}
		depth = d
	}
	return nil
}

func levelMarker(level int) string {
	return strings.Repeat("#", level)
}

func splitLeadingBlank(lines []string) (lead, rest []string) {
	i := 0
	for i < len(lines) && isBlank(lines[i]) {
		i++
	}
	return lines[:i], lines[i:]
}
