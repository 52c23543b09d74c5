package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/dgallion1/patterncat/internal/catalog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// SectionHTML renders a section, heading included, to an HTML fragment.
func SectionHTML(s *catalog.Section) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(s.HeadingRaw+s.Raw), &buf); err != nil {
		return "", fmt.Errorf("render section %q: %w", s.Title, err)
	}
	return buf.String(), nil
}

// ChapterHTML renders a whole chapter to an HTML fragment.
func ChapterHTML(c *catalog.Chapter) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(c.Raw()), &buf); err != nil {
		return "", fmt.Errorf("render chapter %q: %w", c.Title, err)
	}
	return buf.String(), nil
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<nav><ol>
{{- range .Chapters}}
<li><a href="#{{.Slug}}">{{.Title}}</a></li>
{{- end}}
</ol></nav>
{{- range .Chapters}}
<section id="{{.Slug}}">
{{.Body}}</section>
{{- end}}
</body>
</html>
`))

type pageChapter struct {
	Slug  string
	Title string
	Body  template.HTML
}

// WriteHTML renders the whole document as a standalone page with a table of
// contents linking to each chapter.
func WriteHTML(w io.Writer, doc *catalog.Document) error {
	page := struct {
		Title    string
		Chapters []pageChapter
	}{Title: doc.Source}

	for _, c := range doc.Chapters {
		body, err := ChapterHTML(c)
		if err != nil {
			return err
		}
		page.Chapters = append(page.Chapters, pageChapter{
			Slug:  c.Slug(),
			Title: PlainText(c.Title),
			Body:  template.HTML(body),
		})
	}
	return pageTmpl.Execute(w, page)
}
