package output

import (
	"encoding/json"
	"io"

	"github.com/yndnr/redislite/internal/cli/connection"
)

// JSONFormatter formats replies as JSON.
type JSONFormatter struct{}

// Format formats the reply as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, reply connection.Reply) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toData(reply))
}
