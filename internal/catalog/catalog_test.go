package catalog

import (
	"errors"
	"fmt"
	"testing"
)

func sampleDoc() *Document {
	return &Document{
		Source: "notes.md",
		Preamble: &Section{
			Implicit: true,
			Raw:      "Intro.\n\n",
			Blocks:   []Block{{Kind: KindProse, Raw: "Intro.\n\n", Text: "Intro."}},
		},
		Chapters: []*Chapter{
			{
				Title:      "CHAPTER 2: Builder",
				HeadingRaw: "# CHAPTER 2: Builder\n",
				Sections: []*Section{
					{
						Implicit: true,
						Raw:      "* fluent\n\n",
						Blocks:   []Block{{Kind: KindBullets, Raw: "* fluent\n\n", Items: []string{"fluent"}}},
					},
					{
						Title:      "Groovy-Style Builder",
						HeadingRaw: "## Groovy-Style Builder\n",
						Raw:        "```cpp\nTag t;\n```\n```\nx\n```\n",
						Blocks: []Block{
							{Kind: KindCode, Language: "cpp", Raw: "```cpp\nTag t;\n```\n"},
							{Kind: KindCode, Raw: "```\nx\n```\n"},
						},
					},
				},
			},
			{
				Title:      "Factories",
				HeadingRaw: "# Factories\n",
				Sections:   []*Section{},
			},
		},
	}
}

func TestDocument_Raw(t *testing.T) {
	want := "Intro.\n\n# CHAPTER 2: Builder\n* fluent\n\n## Groovy-Style Builder\n```cpp\nTag t;\n```\n```\nx\n```\n# Factories\n"
	if got := sampleDoc().Raw(); got != want {
		t.Errorf("Raw() mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestQueries(t *testing.T) {
	doc := sampleDoc()

	if n := len(doc.ListChapters()); n != 2 {
		t.Fatalf("expected 2 chapters, got %d", n)
	}
	secs, err := doc.ListSections(0)
	if err != nil || len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d (err %v)", len(secs), err)
	}
	blocks, err := doc.ContentBlocks(0, 1)
	if err != nil || len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d (err %v)", len(blocks), err)
	}

	for _, tc := range []struct {
		name string
		err  error
	}{
		{"chapter out of range", func() error { _, err := doc.ListSections(5); return err }()},
		{"negative chapter", func() error { _, err := doc.ListSections(-1); return err }()},
		{"section out of range", func() error { _, err := doc.ContentBlocks(1, 0); return err }()},
		{"unknown slug", func() error { _, err := doc.FindChapter("visitor"); return err }()},
		{"empty slug", func() error { _, err := doc.Chapters[0].SectionBySlug(""); return err }()},
	} {
		if !errors.Is(tc.err, ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", tc.name, tc.err)
		}
	}
}

func TestFindByIndexOrSlug(t *testing.T) {
	doc := sampleDoc()

	ch, err := doc.FindChapter("chapter-2-builder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byIndex, err := doc.FindChapter("0")
	if err != nil || byIndex != ch {
		t.Errorf("expected index 0 to resolve to the same chapter, got %v (err %v)", byIndex, err)
	}

	sec, err := ch.FindSection("groovy-style-builder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sec.Title != "Groovy-Style Builder" {
		t.Errorf("unexpected section %q", sec.Title)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Factory Method", "factory-method"},
		{"CHAPTER 2: Builder", "chapter-2-builder"},
		{"  Open/Closed -- Principle ", "open-closed-principle"},
		{"C++ & CRTP", "c-crtp"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	long := Slugify("a very long section title that keeps going well past the fifty character limit")
	if len(long) > 50 {
		t.Errorf("expected slug of at most 50 chars, got %d", len(long))
	}
}

func TestStats(t *testing.T) {
	st := sampleDoc().Stats()
	if st.Chapters != 2 || st.Sections != 2 {
		t.Errorf("unexpected counts %+v", st)
	}
	if st.Blocks["code"] != 2 || st.Blocks["prose"] != 1 || st.Blocks["bullets"] != 1 {
		t.Errorf("unexpected block counts %v", st.Blocks)
	}
	if st.Snippets["cpp"] != 1 || st.Snippets["none"] != 1 {
		t.Errorf("unexpected snippet counts %v", st.Snippets)
	}
	if st.EstimatedTokens == 0 {
		t.Error("expected a token estimate")
	}
}

func TestErrors(t *testing.T) {
	var err error = fmt.Errorf("load: %w", &MalformedInputError{Line: 4, Level: 3, Title: "Fluent", Reason: "no enclosing ## heading"})
	if !errors.Is(err, ErrMalformedInput) {
		t.Error("expected wrapped MalformedInputError to match ErrMalformedInput")
	}
	if errors.Is(err, ErrUnterminatedCodeBlock) {
		t.Error("did not expect a match for ErrUnterminatedCodeBlock")
	}
	want := `line 4: malformed heading "Fluent" (level 3): no enclosing ## heading`
	if err.(interface{ Unwrap() error }).Unwrap().Error() != want {
		t.Errorf("unexpected message %q", err)
	}

	ue := &UnterminatedCodeBlockError{Line: 9, Fence: "```"}
	if ue.Error() != "line 9: code block opened with ``` is never closed" {
		t.Errorf("unexpected message %q", ue.Error())
	}
}

func TestEstimateTokens(t *testing.T) {
	if EstimateTokens("") != 0 {
		t.Error("expected 0 tokens for empty text")
	}
	if got := EstimateTokens("one two three"); got != 3 {
		t.Errorf("expected 3 tokens, got %d", got)
	}
}
