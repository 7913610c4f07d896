package snapshot

import (
	"encoding/binary"
	"strconv"

	"github.com/yndnr/redislite/internal/core/domain"
)

// Length-encoding selectors (top two bits of the first byte).
const (
	len6Bit    = 0b00
	len14Bit   = 0b01
	len32Bit   = 0b10
	lenSpecial = 0b11
)

// Special integer encodings (low six bits when the selector is lenSpecial).
const (
	encInt8  = 0
	encInt16 = 1
	encInt32 = 2
)

// Length is a decoded length prefix. When Special is set the prefix did not
// introduce a byte string: it carried a small integer in Int instead.
type Length struct {
	N       uint32
	Int     int64
	Special bool
}

// String is a decoded length-prefixed string, which may be integer-encoded.
type String struct {
	Bytes []byte
	Int   int64
	IsInt bool
}

// Render returns the string as bytes. Integer-encoded strings are rendered
// as their decimal text.
func (s String) Render() []byte {
	if s.IsInt {
		return strconv.AppendInt(nil, s.Int, 10)
	}
	return s.Bytes
}

// reader is a cursor over the snapshot bytes. Every read is bounds-checked
// and reports a truncation as an RDB format error.
type reader struct {
	buf []byte
	off int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) take(n int, what string) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, domain.ErrRDBFormat.Detailf("truncated %s: need %d bytes, have %d", what, n, r.remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) readByte(what string) (byte, error) {
	b, err := r.take(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) readUint32LE(what string) (uint32, error) {
	b, err := r.take(4, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) readUint64LE(what string) (uint64, error) {
	b, err := r.take(8, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readLength decodes one length prefix.
func (r *reader) readLength() (Length, error) {
	first, err := r.readByte("length")
	if err != nil {
		return Length{}, err
	}
	low := first & 0x3f

	switch first >> 6 {
	case len6Bit:
		return Length{N: uint32(low)}, nil
	case len14Bit:
		next, err := r.readByte("14-bit length")
		if err != nil {
			return Length{}, err
		}
		return Length{N: uint32(low)<<8 | uint32(next)}, nil
	case len32Bit:
		n, err := r.readUint32LE("32-bit length")
		if err != nil {
			return Length{}, err
		}
		return Length{N: n}, nil
	default: // lenSpecial
		return r.readSpecialInt(low)
	}
}

func (r *reader) readSpecialInt(enc byte) (Length, error) {
	switch enc {
	case encInt8:
		b, err := r.readByte("int8 string")
		if err != nil {
			return Length{}, err
		}
		return Length{Int: int64(int8(b)), Special: true}, nil
	case encInt16:
		b, err := r.take(2, "int16 string")
		if err != nil {
			return Length{}, err
		}
		return Length{Int: int64(int16(binary.LittleEndian.Uint16(b))), Special: true}, nil
	case encInt32:
		n, err := r.readUint32LE("int32 string")
		if err != nil {
			return Length{}, err
		}
		return Length{Int: int64(int32(n)), Special: true}, nil
	default:
		return Length{}, domain.ErrRDBFormat.Detailf("unknown special string encoding %d", enc)
	}
}

// readPlainLength decodes a length prefix that must not be integer-encoded.
func (r *reader) readPlainLength(what string) (uint32, error) {
	l, err := r.readLength()
	if err != nil {
		return 0, err
	}
	if l.Special {
		return 0, domain.ErrRDBFormat.Detailf("%s: unexpected integer encoding", what)
	}
	return l.N, nil
}

// readString decodes one length-prefixed string.
func (r *reader) readString(what string) (String, error) {
	l, err := r.readLength()
	if err != nil {
		return String{}, err
	}
	if l.Special {
		return String{Int: l.Int, IsInt: true}, nil
	}
	b, err := r.take(int(l.N), what)
	if err != nil {
		return String{}, err
	}
	return String{Bytes: append([]byte(nil), b...)}, nil
}
