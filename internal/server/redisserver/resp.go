package redisserver

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/yndnr/redislite/internal/core/domain"
)

// Protocol limits to prevent DoS attacks.
const (
	// MaxArrayLen limits the number of elements in a RESP array.
	MaxArrayLen = 1024

	// MaxBulkLen limits the size of a single bulk string (512MB, as Redis).
	MaxBulkLen = 512 * 1024 * 1024
)

// Fixed replies.
const (
	ReplyPong = "+PONG\r\n"
	ReplyOK   = "+OK\r\n"
	ReplyNull = "$-1\r\n"
)

// ErrIncomplete is the cause of a parse error raised because the buffer ended
// before the value did. It only matters to callers that buffer across reads.
var ErrIncomplete = errors.New("resp: incomplete frame")

// Value is one decoded RESP unit: BulkString, Array, SimpleString,
// UnsignedInteger or SignedInteger.
type Value interface {
	isValue()
}

// BulkString is a binary-safe, length-prefixed string ("$").
type BulkString []byte

// Array is a sequence of values ("*").
type Array []Value

// SimpleString is a CRLF-terminated string ("+").
type SimpleString []byte

// UnsignedInteger is an integer sent with an explicit "+" sign (":+5").
type UnsignedInteger uint64

// SignedInteger is an integer sent with a "-" sign (":-5").
type SignedInteger int64

func (BulkString) isValue()      {}
func (Array) isValue()           {}
func (SimpleString) isValue()    {}
func (UnsignedInteger) isValue() {}
func (SignedInteger) isValue()   {}

// Decode parses exactly one RESP value from the front of buf and returns it
// together with the unconsumed remainder.
func Decode(buf []byte) (Value, []byte, error) {
	if len(buf) == 0 {
		return nil, buf, incomplete("empty buffer")
	}

	switch buf[0] {
	case '*':
		return decodeArray(buf[1:])
	case '$':
		return decodeBulkString(buf[1:])
	case ':':
		return decodeInteger(buf[1:])
	case '+':
		return decodeSimpleString(buf[1:])
	default:
		return nil, buf, domain.ErrParse.Detailf("unexpected type byte %q", buf[0])
	}
}

func decodeArray(buf []byte) (Value, []byte, error) {
	n, rest, err := readUnsigned(buf, "array length")
	if err != nil {
		return nil, buf, err
	}
	if n > MaxArrayLen {
		return nil, buf, domain.ErrParse.Detailf("array length %d exceeds limit %d", n, MaxArrayLen)
	}
	if rest, err = expectCRLF(rest, "array header"); err != nil {
		return nil, buf, err
	}

	out := make(Array, 0, min(int(n), 16))
	for i := uint64(0); i < n; i++ {
		var v Value
		v, rest, err = Decode(rest)
		if err != nil {
			return nil, buf, err
		}
		out = append(out, v)
	}
	return out, rest, nil
}

func decodeBulkString(buf []byte) (Value, []byte, error) {
	n, rest, err := readUnsigned(buf, "bulk length")
	if err != nil {
		return nil, buf, err
	}
	if n > MaxBulkLen {
		return nil, buf, domain.ErrParse.Detailf("bulk length %d exceeds limit %d", n, MaxBulkLen)
	}
	if rest, err = expectCRLF(rest, "bulk header"); err != nil {
		return nil, buf, err
	}
	if uint64(len(rest)) < n {
		return nil, buf, incomplete("bulk string body")
	}

	data := bytes.Clone(rest[:n])
	if data == nil {
		data = []byte{}
	}
	if rest, err = expectCRLF(rest[n:], "bulk string"); err != nil {
		return nil, buf, err
	}
	return BulkString(data), rest, nil
}

func decodeSimpleString(buf []byte) (Value, []byte, error) {
	i := bytes.IndexAny(buf, "\r\n")
	if i < 0 {
		return nil, buf, incomplete("simple string")
	}
	if buf[i] == '\n' {
		return nil, buf, domain.ErrParse.WithDetails("bare LF in simple string")
	}
	rest, err := expectCRLF(buf[i:], "simple string")
	if err != nil {
		return nil, buf, err
	}
	return SimpleString(bytes.Clone(buf[:i])), rest, nil
}

func decodeInteger(buf []byte) (Value, []byte, error) {
	if len(buf) == 0 {
		return nil, buf, incomplete("integer sign")
	}
	sign := buf[0]
	if sign != '+' && sign != '-' {
		return nil, buf, domain.ErrParse.Detailf("integer sign required, got %q", sign)
	}

	n, rest, err := readUnsigned(buf[1:], "integer")
	if err != nil {
		return nil, buf, err
	}
	if rest, err = expectCRLF(rest, "integer"); err != nil {
		return nil, buf, err
	}

	if sign == '+' {
		if n > math.MaxInt64 {
			return nil, buf, domain.ErrParse.Detailf("integer %d overflows", n)
		}
		return UnsignedInteger(n), rest, nil
	}
	switch {
	case n <= math.MaxInt64:
		return SignedInteger(-int64(n)), rest, nil
	case n == math.MaxInt64+1:
		return SignedInteger(math.MinInt64), rest, nil
	default:
		return nil, buf, domain.ErrParse.Detailf("integer -%d overflows", n)
	}
}

// readUnsigned consumes the longest run of ASCII digits and parses it.
func readUnsigned(buf []byte, what string) (uint64, []byte, error) {
	i := 0
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		i++
	}
	if i == len(buf) {
		return 0, buf, incomplete(what)
	}
	if i == 0 {
		return 0, buf, domain.ErrParse.Detailf("%s: expected digits, got %q", what, buf[0])
	}
	n, err := strconv.ParseUint(string(buf[:i]), 10, 64)
	if err != nil {
		return 0, buf, domain.ErrParse.Detailf("%s: %q out of range", what, buf[:i])
	}
	return n, buf[i:], nil
}

func expectCRLF(buf []byte, what string) ([]byte, error) {
	switch {
	case len(buf) == 0, len(buf) == 1 && buf[0] == '\r':
		return buf, incomplete(what)
	case buf[0] != '\r' || buf[1] != '\n':
		return buf, domain.ErrParse.Detailf("%s: missing CRLF", what)
	}
	return buf[2:], nil
}

func incomplete(what string) error {
	return domain.ErrParse.Detailf("truncated %s", what).WithCause(ErrIncomplete)
}

// ============================================================
// Encoding
// ============================================================

// EncodeBulkString encodes b as a RESP bulk string.
func EncodeBulkString(b []byte) []byte {
	return AppendBulkString(make([]byte, 0, len(b)+16), b)
}

// AppendBulkString appends the bulk string encoding of b to dst.
func AppendBulkString(dst, b []byte) []byte {
	dst = append(dst, '$')
	dst = strconv.AppendInt(dst, int64(len(b)), 10)
	dst = append(dst, '\r', '\n')
	dst = append(dst, b...)
	return append(dst, '\r', '\n')
}

// EncodeArray encodes items as a RESP array of bulk strings.
func EncodeArray(items ...[]byte) []byte {
	size := 16
	for _, it := range items {
		size += len(it) + 16
	}
	dst := make([]byte, 0, size)
	dst = append(dst, '*')
	dst = strconv.AppendInt(dst, int64(len(items)), 10)
	dst = append(dst, '\r', '\n')
	for _, it := range items {
		dst = AppendBulkString(dst, it)
	}
	return dst
}

// EncodeError encodes msg as a RESP error reply prefixed with "ERR".
// Line breaks in msg are replaced so the reply stays one line.
func EncodeError(msg string) []byte {
	msg = strings.NewReplacer("\r", " ", "\n", " ").Replace(msg)
	return []byte("-ERR " + msg + "\r\n")
}
