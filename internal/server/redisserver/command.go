package redisserver

import (
	"bytes"
	"strconv"

	"github.com/yndnr/redislite/internal/core/domain"
)

// Command is a typed request: Ping, Echo, Set, Get or ConfigGet.
type Command interface {
	// Name is the lower-case command name, used as a metric label.
	Name() string
	isCommand()
}

// Ping replies PONG.
type Ping struct{}

// Echo replies with Message as a bulk string.
type Echo struct {
	Message []byte
}

// Set stores Value under Key.
type Set struct {
	Key     []byte
	Value   []byte
	Options []SetOption
}

// Get looks up Key.
type Get struct {
	Key []byte
}

// ConfigGet reads a server configuration parameter.
type ConfigGet struct {
	Param []byte
}

func (Ping) Name() string      { return "ping" }
func (Echo) Name() string      { return "echo" }
func (Set) Name() string       { return "set" }
func (Get) Name() string       { return "get" }
func (ConfigGet) Name() string { return "config" }

func (Ping) isCommand()      {}
func (Echo) isCommand()      {}
func (Set) isCommand()       {}
func (Get) isCommand()       {}
func (ConfigGet) isCommand() {}

// SetOption modifies a Set. Px is the only option.
type SetOption interface {
	isSetOption()
}

// Px expires the key the given number of milliseconds after it is written.
type Px struct {
	Milliseconds uint64
}

func (Px) isSetOption() {}

// TTL returns the expiry requested by the options, if any. The first Px wins.
func (s Set) TTL() (uint64, bool) {
	for _, opt := range s.Options {
		if px, ok := opt.(Px); ok {
			return px.Milliseconds, true
		}
	}
	return 0, false
}

// Interpret converts a decoded request into a Command.
//
// The request must be an Array of BulkStrings. Any other shape, an unknown
// command name, or a wrong argument count is a validation error.
func Interpret(v Value) (Command, error) {
	arr, ok := v.(Array)
	if !ok {
		return nil, domain.ErrValidation.Detailf("request must be an array, got %s", typeName(v))
	}
	if len(arr) == 0 {
		return nil, domain.ErrValidation.WithDetails("empty command")
	}

	args := make([][]byte, len(arr))
	for i, el := range arr {
		b, ok := el.(BulkString)
		if !ok {
			return nil, domain.ErrValidation.Detailf("argument %d must be a bulk string, got %s", i, typeName(el))
		}
		args[i] = b
	}

	raw := args[0]
	name := string(bytes.ToLower(raw))
	args = args[1:]

	switch name {
	case "ping":
		return Ping{}, nil
	case "echo":
		if len(args) != 1 {
			return nil, wrongArgs("echo")
		}
		return Echo{Message: args[0]}, nil
	case "set":
		if len(args) < 2 {
			return nil, wrongArgs("set")
		}
		return Set{Key: args[0], Value: args[1], Options: parseSetOptions(args[2:])}, nil
	case "get":
		if len(args) != 1 {
			return nil, wrongArgs("get")
		}
		return Get{Key: args[0]}, nil
	case "config":
		if len(args) != 2 {
			return nil, wrongArgs("config")
		}
		if string(args[0]) != "get" {
			return nil, domain.ErrValidation.Detailf("unsupported CONFIG subcommand %q", args[0])
		}
		return ConfigGet{Param: args[1]}, nil
	default:
		return nil, domain.ErrValidation.Detailf("unknown command '%s'", raw)
	}
}

// parseSetOptions reads an optional "PX <ms>" pair. Anything it does not
// understand yields no options rather than an error.
func parseSetOptions(args [][]byte) []SetOption {
	if len(args) < 2 || !bytes.EqualFold(args[0], []byte("px")) {
		return nil
	}
	ms, err := strconv.ParseUint(string(args[1]), 10, 64)
	if err != nil {
		return nil
	}
	return []SetOption{Px{Milliseconds: ms}}
}

func wrongArgs(name string) error {
	return domain.ErrValidation.Detailf("wrong number of arguments for '%s' command", name)
}

func typeName(v Value) string {
	switch v.(type) {
	case BulkString:
		return "bulk string"
	case Array:
		return "array"
	case SimpleString:
		return "simple string"
	case UnsignedInteger, SignedInteger:
		return "integer"
	default:
		return "nothing"
	}
}
