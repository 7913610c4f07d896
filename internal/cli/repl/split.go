package repl

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnbalancedQuotes is returned by Split for an unterminated quote.
var ErrUnbalancedQuotes = errors.New("unbalanced quotes")

// Split breaks an input line into arguments. Double-quoted arguments accept
// \n, \r, \t, \", \\ and \xHH escapes; single-quoted arguments are literal
// except for \'.
func Split(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		quote   byte
		escaped bool
	)

	for i := 0; i < len(line); i++ {
		ch := line[i]

		switch {
		case quote == '"' && escaped:
			escaped = false
			switch ch {
			case 'n':
				cur.WriteByte('\n')
			case 'r':
				cur.WriteByte('\r')
			case 't':
				cur.WriteByte('\t')
			case 'x':
				if i+2 < len(line) {
					if b, err := strconv.ParseUint(line[i+1:i+3], 16, 8); err == nil {
						cur.WriteByte(byte(b))
						i += 2
						continue
					}
				}
				cur.WriteByte('x')
			default:
				cur.WriteByte(ch)
			}
		case quote == '\'' && escaped:
			escaped = false
			if ch != '\'' {
				cur.WriteByte('\\')
			}
			cur.WriteByte(ch)
		case quote != 0 && ch == '\\':
			escaped = true
		case quote != 0 && ch == quote:
			quote = 0
			if i+1 < len(line) && !isSpace(line[i+1]) {
				return nil, errors.New("closing quote must be followed by a space")
			}
		case quote != 0:
			cur.WriteByte(ch)
		case isSpace(ch):
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		case ch == '"' || ch == '\'':
			quote = ch
			inArg = true
		default:
			cur.WriteByte(ch)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, ErrUnbalancedQuotes
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
