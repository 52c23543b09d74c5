package parser

import "strings"

// splitLines cuts s into lines that keep their terminators, so joining the
// result reproduces s exactly.
func splitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

func joinLines(lines []string) string {
	return strings.Join(lines, "")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// indentWidth counts leading columns, with tabs advancing to the next multiple of 4.
func indentWidth(line string) int {
	w := 0
	for _, r := range line {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 4 - w%4
		default:
			return w
		}
	}
	return w
}

// parseHeading recognizes an ATX heading: up to three spaces of indent, one
// to six '#', then whitespace or end of line. An optional closing run of '#'
// is dropped from the title.
func parseHeading(line string) (level int, title string, ok bool) {
	if indentWidth(line) > 3 {
		return 0, "", false
	}
	s := strings.TrimLeft(line, " ")
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	rest := s[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\n' && rest[0] != '\r' {
		return 0, "", false
	}
	title = strings.TrimSpace(rest)
	if closed := strings.TrimRight(title, "#"); closed != title {
		if closed == "" {
			title = ""
		} else if last := closed[len(closed)-1]; last == ' ' || last == '\t' {
			title = strings.TrimSpace(closed)
		}
	}
	return level, title, true
}

// parseFenceOpen recognizes an opening code fence of three or more backticks
// or tildes and returns the fence marker and the language label.
func parseFenceOpen(line string) (fence, lang string, ok bool) {
	s := strings.TrimLeft(line, " \t")
	if s == "" || (s[0] != '`' && s[0] != '~') {
		return "", "", false
	}
	ch := s[0]
	n := 0
	for n < len(s) && s[n] == ch {
		n++
	}
	if n < 3 {
		return "", "", false
	}
	info := strings.TrimSpace(s[n:])
	if ch == '`' && strings.ContainsRune(info, '`') {
		return "", "", false
	}
	if fields := strings.Fields(info); len(fields) > 0 {
		lang = fields[0]
	}
	return s[:n], lang, true
}

// isFenceClose reports whether line closes a region opened with fence.
func isFenceClose(line, fence string) bool {
	s := strings.TrimSpace(line)
	if len(s) < len(fence) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != fence[0] {
			return false
		}
	}
	return true
}

// parseBullet recognizes a bullet item starting with '*', '-' or '+'.
func parseBullet(line string) (text string, indent int, ok bool) {
	if isThematicBreak(line) {
		return "", 0, false
	}
	indent = indentWidth(line)
	s := strings.TrimLeft(line, " \t")
	if s == "" || (s[0] != '*' && s[0] != '-' && s[0] != '+') {
		return "", 0, false
	}
	rest := s[1:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\n' && rest[0] != '\r' {
		return "", 0, false
	}
	return strings.TrimSpace(rest), indent, true
}

// isThematicBreak matches lines like "***", "- - -" or "___".
func isThematicBreak(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	ch := s[0]
	if ch != '*' && ch != '-' && ch != '_' {
		return false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ch:
			n++
		case ' ', '\t':
		default:
			return false
		}
	}
	return n >= 3
}
