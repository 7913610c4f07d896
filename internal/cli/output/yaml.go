package output

import (
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/yndnr/redislite/internal/cli/connection"
)

// YAMLFormatter formats replies as YAML.
type YAMLFormatter struct{}

// Format formats the reply as a YAML document.
func (f *YAMLFormatter) Format(w io.Writer, reply connection.Reply) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(toData(reply)); err != nil {
		return err
	}
	return encoder.Close()
}
