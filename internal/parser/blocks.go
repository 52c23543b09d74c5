package parser

import (
	"strings"

	"github.com/dgallion1/patterncat/internal/catalog"
)

// ExtractBlocks splits a section body into prose, bullet list, code and
// sub-heading blocks in source order. firstLine is the 1-based line number
// of raw within the whole document and is only used for positions.
//
// Every byte of raw lands in exactly one block: blank lines trail the block
// before them, and leading blank lines are folded into the first block.
func ExtractBlocks(raw string, firstLine int) ([]catalog.Block, error) {
	lines := splitLines(raw)

	var blocks []catalog.Block
	lead, _ := splitLeadingBlank(lines)
	i := len(lead)

	for i < len(lines) {
		start := i
		var b catalog.Block

		if fence, lang, ok := parseFenceOpen(lines[i]); ok {
			end := -1
			for j := i + 1; j < len(lines); j++ {
				if isFenceClose(lines[j], fence) {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, &catalog.UnterminatedCodeBlockError{Line: firstLine + i, Fence: fence}
			}
			b = catalog.Block{
				Kind:     catalog.KindCode,
				Language: lang,
				Code:     joinLines(lines[i+1 : end]),
			}
			i = end + 1
		} else if level, title, ok := parseHeading(lines[i]); ok {
			b = catalog.Block{Kind: catalog.KindHeading, Level: level, Text: title}
			i++
		} else if _, indent, ok := parseBullet(lines[i]); ok && indent <= 3 {
			var items []string
			items, i = scanList(lines, i)
			b = catalog.Block{Kind: catalog.KindBullets, Items: items}
		} else {
			i++
			for i < len(lines) && !isBlank(lines[i]) && !interruptsParagraph(lines[i]) {
				i++
			}
			b = catalog.Block{
				Kind: catalog.KindProse,
				Text: strings.TrimSpace(joinLines(lines[start:i])),
			}
		}

		for i < len(lines) && isBlank(lines[i]) {
			i++
		}

		b.Line = firstLine + start
		b.Raw = joinLines(lines[start:i])
		if len(blocks) == 0 && len(lead) > 0 {
			b.Raw = joinLines(lead) + b.Raw
		}
		blocks = append(blocks, b)
	}

	// A body made only of blank lines still has to round-trip.
	if len(blocks) == 0 && raw != "" {
		blocks = append(blocks, catalog.Block{Kind: catalog.KindProse, Line: firstLine, Raw: raw})
	}
	return blocks, nil
}

// interruptsParagraph reports whether line starts a new block even without a
// blank line before it.
func interruptsParagraph(line string) bool {
	if _, _, ok := parseFenceOpen(line); ok {
		return true
	}
	if _, _, ok := parseHeading(line); ok {
		return true
	}
	if text, indent, ok := parseBullet(line); ok && indent <= 3 && text != "" {
		return true
	}
	return isThematicBreak(line)
}

// scanList consumes a bullet list starting at lines[i] and returns its items
// and the index of the first line after the list. Blank lines are consumed
// only when the list continues after them.
func scanList(lines []string, i int) ([]string, int) {
	var items []string
	var cur []string
	flush := func() {
		if cur != nil {
			items = append(items, strings.Join(cur, "\n"))
		}
		cur = nil
	}

	text, _, _ := parseBullet(lines[i])
	cur = []string{text}
	i++

	for i < len(lines) {
		line := lines[i]

		if isBlank(line) {
			k := i
			for k < len(lines) && isBlank(lines[k]) {
				k++
			}
			if k == len(lines) || !continuesList(lines[k]) {
				break
			}
			i = k
			continue
		}

		if text, indent, ok := parseBullet(line); ok {
			if indent <= 3 {
				flush()
				cur = []string{text}
			} else {
				// Nested bullets stay with their parent item.
				cur = append(cur, strings.TrimSpace(line))
			}
			i++
			continue
		}

		if _, _, ok := parseFenceOpen(line); ok {
			break
		}
		if _, _, ok := parseHeading(line); ok {
			break
		}
		if isThematicBreak(line) {
			break
		}

		cur = append(cur, strings.TrimSpace(line))
		i++
	}
	flush()
	return items, i
}

// continuesList reports whether a line following blank lines still belongs
// to the list: another top-level item or an indented continuation.
func continuesList(line string) bool {
	if _, _, ok := parseFenceOpen(line); ok {
		return false
	}
	if _, indent, ok := parseBullet(line); ok && indent <= 3 {
		return true
	}
	return indentWidth(line) >= 2
}
