package output

import (
	"fmt"
	"io"

	"github.com/yndnr/redislite/internal/cli/connection"
)

// Format represents the output format.
type Format string

const (
	FormatRaw  Format = "raw"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formatter writes a reply to w.
type Formatter interface {
	Format(w io.Writer, reply connection.Reply) error
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatRaw, "":
		return &RawFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want raw, json or yaml)", format)
	}
}

// toData converts a reply into plain values for structured encoders.
// Error replies become {"error": message}; nulls become nil.
func toData(r connection.Reply) any {
	switch r.Kind {
	case connection.KindSimple, connection.KindBulk:
		return r.Str
	case connection.KindError:
		return map[string]string{"error": r.Str}
	case connection.KindInteger:
		return r.Int
	case connection.KindArray:
		items := make([]any, len(r.Elems))
		for i, e := range r.Elems {
			items[i] = toData(e)
		}
		return items
	default:
		return nil
	}
}
