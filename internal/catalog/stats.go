package catalog

import "strings"

// Stats summarizes the shape of a document.
type Stats struct {
	Chapters        int            `json:"chapters" yaml:"chapters"`
	Sections        int            `json:"sections" yaml:"sections"`
	Blocks          map[string]int `json:"blocks" yaml:"blocks"`
	Snippets        map[string]int `json:"snippets_by_language" yaml:"snippets_by_language"`
	EstimatedTokens int            `json:"estimated_tokens" yaml:"estimated_tokens"`
}

// Stats walks the document and counts its parts. Snippets without a
// language label are counted under "none".
func (d *Document) Stats() Stats {
	st := Stats{
		Chapters: len(d.Chapters),
		Blocks:   make(map[string]int),
		Snippets: make(map[string]int),
	}
	count := func(s *Section) {
		for _, b := range s.Blocks {
			st.Blocks[string(b.Kind)]++
			if b.Kind == KindCode {
				lang := b.Language
				if lang == "" {
					lang = "none"
				}
				st.Snippets[lang]++
			}
		}
		st.EstimatedTokens += EstimateTokens(s.Raw)
	}
	if d.Preamble != nil {
		count(d.Preamble)
	}
	for _, c := range d.Chapters {
		st.Sections += len(c.Sections)
		for _, s := range c.Sections {
			count(s)
		}
	}
	return st
}

// EstimateTokens gives a rough token count from the word count.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	// Roughly 0.75 tokens per word for English text.
	tokens := int(float64(len(strings.Fields(text))) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
