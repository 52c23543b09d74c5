package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/patterncat/internal/catalog"
	"gopkg.in/yaml.v3"
)

// Format selects an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// OutputTo writes data to the given writer in the specified format. Only
// JSON and YAML apply to arbitrary values.
func OutputTo(w io.Writer, format Format, data any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("format %s cannot encode arbitrary values", format)
	}
}

// Export writes the whole catalog in the requested format.
func Export(w io.Writer, doc *catalog.Document, format Format) error {
	if format == FormatHTML {
		return WriteHTML(w, doc)
	}
	return OutputTo(w, format, doc)
}
