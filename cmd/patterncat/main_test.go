package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/patterncat/internal/catalog"
	"gopkg.in/yaml.v3"
)

const cliNotes = "## CHAPTER 2: Builder\n" +
	"* Builders can have a fluent interface that is used for chaining calls.\n" +
	"\n" +
	"### Groovy-style builder\n" +
	"\n" +
	"```cpp\n" +
	"struct Tag { std::string name; };\n" +
	"```\n" +
	"\n" +
	"## CHAPTER 3: Factories\n"

func writeNotes(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestChaptersCommand(t *testing.T) {
	path := writeNotes(t, cliNotes)
	out, err := run(t, "chapters", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rows []chapterRow
	if err := yaml.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("invalid yaml %q: %v", out, err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(rows))
	}
	if rows[0].Title != "CHAPTER 2: Builder" || rows[0].Slug != "chapter-2-builder" {
		t.Errorf("unexpected first chapter %+v", rows[0])
	}
}

func TestSectionsCommand_JSON(t *testing.T) {
	path := writeNotes(t, cliNotes)
	out, err := run(t, "-o", "json", "sections", path, "chapter-2-builder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rows []sectionRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if len(rows) != 2 || !rows[0].Implicit || rows[1].Title != "Groovy-style builder" {
		t.Errorf("unexpected sections %+v", rows)
	}
}

func TestBlocksCommand(t *testing.T) {
	path := writeNotes(t, cliNotes)
	out, err := run(t, "-o", "json", "blocks", path, "0", "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var blocks []catalog.Block
	if err := json.Unmarshal([]byte(out), &blocks); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Kind != catalog.KindBullets {
		t.Fatalf("unexpected blocks %+v", blocks)
	}
	if blocks[0].Items[0] != "Builders can have a fluent interface that is used for chaining calls." {
		t.Errorf("unexpected item %q", blocks[0].Items[0])
	}
	if blocks[0].Raw != "" {
		t.Errorf("expected raw omitted without --raw, got %q", blocks[0].Raw)
	}

	out, err = run(t, "-o", "json", "blocks", "--raw", path, "0", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &blocks); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if blocks[0].Language != "cpp" || !strings.HasPrefix(blocks[0].Raw, "```cpp\n") {
		t.Errorf("unexpected snippet %+v", blocks[0])
	}
}

func TestCheckCommand_Errors(t *testing.T) {
	path := writeNotes(t, "# A\n```\nnever closed\n")
	_, err := run(t, "check", path)
	if !errors.Is(err, catalog.ErrUnterminatedCodeBlock) {
		t.Errorf("expected unterminated code block error, got %v", err)
	}

	path = writeNotes(t, "# A\n### B\n")
	_, err = run(t, "check", path)
	if !errors.Is(err, catalog.ErrMalformedInput) {
		t.Errorf("expected malformed input error, got %v", err)
	}
}

func TestExportCommand_HTMLToFile(t *testing.T) {
	path := writeNotes(t, cliNotes)
	dest := filepath.Join(t.TempDir(), "catalog.html")
	if _, err := run(t, "export", path, "--format", "html", "--out", dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `<section id="chapter-3-factories">`) {
		t.Errorf("expected chapter section in html, got %q", data)
	}
}

func TestRejectsHTMLOutputFlag(t *testing.T) {
	path := writeNotes(t, cliNotes)
	if _, err := run(t, "-o", "html", "chapters", path); err == nil {
		t.Error("expected error for -o html")
	}
}
