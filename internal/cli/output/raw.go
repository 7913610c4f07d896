package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yndnr/redislite/internal/cli/connection"
)

// RawFormatter renders replies the way redis-cli does.
type RawFormatter struct{}

// Format writes the reply followed by a newline.
func (f *RawFormatter) Format(w io.Writer, reply connection.Reply) error {
	var b strings.Builder
	writeRaw(&b, reply, "")
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRaw(b *strings.Builder, r connection.Reply, indent string) {
	switch r.Kind {
	case connection.KindSimple:
		b.WriteString(r.Str)
	case connection.KindError:
		b.WriteString("(error) ")
		b.WriteString(r.Str)
	case connection.KindInteger:
		fmt.Fprintf(b, "(integer) %d", r.Int)
	case connection.KindBulk:
		b.WriteString(strconv.Quote(r.Str))
	case connection.KindNull:
		b.WriteString("(nil)")
	case connection.KindArray:
		if len(r.Elems) == 0 {
			b.WriteString("(empty array)")
			return
		}
		width := len(strconv.Itoa(len(r.Elems)))
		for i, e := range r.Elems {
			if i > 0 {
				b.WriteByte('\n')
				b.WriteString(indent)
			}
			prefix := fmt.Sprintf("%*d) ", width, i+1)
			b.WriteString(prefix)
			writeRaw(b, e, indent+strings.Repeat(" ", len(prefix)))
		}
	}
}
