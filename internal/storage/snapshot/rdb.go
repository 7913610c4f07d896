package snapshot

import (
	"bytes"
	"math"
	"time"

	"github.com/yndnr/redislite/internal/core/domain"
)

// Magic identifies an RDB file.
const Magic = "REDIS"

const versionLen = 4

// Record opcodes.
const (
	opEOF          = 0xFF
	opSelectDB     = 0xFE
	opExpireTime   = 0xFD
	opExpireTimeMs = 0xFC
	opResizeDB     = 0xFB
	opAux          = 0xFA
)

// typeString is the only supported value-type tag.
const typeString = 0

// SupportedVersions lists the accepted 4-digit header versions.
var SupportedVersions = []string{
	"0001", "0002", "0003", "0004", "0005", "0006",
	"0007", "0008", "0009", "0010", "0011", "0012",
}

// Record is one decoded body element: EOF, SelectDB, ResizeDB, Aux or Entry.
type Record interface {
	isRecord()
}

// EOF terminates the body.
type EOF struct{}

// SelectDB switches the current database. The index is not used.
type SelectDB struct {
	Index uint32
}

// ResizeDB carries hash table size hints. They are not used.
type ResizeDB struct {
	MainSize   uint32
	ExpireSize uint32
}

// Aux is a metadata field such as redis-ver.
type Aux struct {
	Key   []byte
	Value String
}

// Entry is a key with its value and optional expiration.
type Entry struct {
	Key   string
	Value domain.Value
}

func (EOF) isRecord()      {}
func (SelectDB) isRecord() {}
func (ResizeDB) isRecord() {}
func (Aux) isRecord()      {}
func (Entry) isRecord()    {}

// File is a decoded snapshot.
type File struct {
	Version string
	Records []Record
}

// Entries folds the Entry records into a map; later records win on
// duplicate keys. Every other record kind is dropped.
func (f *File) Entries() map[string]domain.Value {
	out := make(map[string]domain.Value)
	for _, rec := range f.Records {
		switch r := rec.(type) {
		case Entry:
			out[r.Key] = r.Value
		case EOF, SelectDB, ResizeDB, Aux:
		}
	}
	return out
}

// Decode parses data and returns the entries it holds.
func Decode(data []byte) (map[string]domain.Value, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return f.Entries(), nil
}

// Parse validates the header and decodes records until EOF or the end of
// data. Bytes after the EOF opcode are ignored.
func Parse(data []byte) (*File, error) {
	r := newReader(data)

	version, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	f := &File{Version: version}
	for r.remaining() > 0 {
		rec, err := readRecord(r)
		if err != nil {
			return nil, err
		}
		f.Records = append(f.Records, rec)
		if _, ok := rec.(EOF); ok {
			break
		}
	}
	return f, nil
}

func readHeader(r *reader) (string, error) {
	magic, err := r.take(len(Magic), "magic")
	if err != nil {
		return "", err
	}
	if !bytes.Equal(magic, []byte(Magic)) {
		return "", domain.ErrRDBFormat.Detailf("bad magic %q", magic)
	}

	ver, err := r.take(versionLen, "version")
	if err != nil {
		return "", err
	}
	for _, v := range SupportedVersions {
		if string(ver) == v {
			return v, nil
		}
	}
	return "", domain.ErrRDBFormat.Detailf("unsupported version %q", ver)
}

func readRecord(r *reader) (Record, error) {
	op, err := r.readByte("opcode")
	if err != nil {
		return nil, err
	}

	switch op {
	case opEOF:
		return EOF{}, nil
	case opSelectDB:
		l, err := r.readLength()
		if err != nil {
			return nil, err
		}
		if l.Special {
			return SelectDB{Index: uint32(l.Int)}, nil
		}
		return SelectDB{Index: l.N}, nil
	case opResizeDB:
		main, err := r.readPlainLength("resizedb main size")
		if err != nil {
			return nil, err
		}
		expire, err := r.readPlainLength("resizedb expire size")
		if err != nil {
			return nil, err
		}
		return ResizeDB{MainSize: main, ExpireSize: expire}, nil
	case opAux:
		key, err := r.readString("aux key")
		if err != nil {
			return nil, err
		}
		if key.IsInt {
			return nil, domain.ErrRDBFormat.Detailf("aux key is integer-encoded (%d)", key.Int)
		}
		val, err := r.readString("aux value")
		if err != nil {
			return nil, err
		}
		return Aux{Key: key.Bytes, Value: val}, nil
	case opExpireTime:
		secs, err := r.readUint32LE("expire time")
		if err != nil {
			return nil, err
		}
		return readEntry(r, time.Unix(int64(secs), 0))
	case opExpireTimeMs:
		ms, err := r.readUint64LE("expire time ms")
		if err != nil {
			return nil, err
		}
		if ms > math.MaxInt64 {
			return nil, domain.ErrRDBFormat.Detailf("expire time %d ms out of range", ms)
		}
		return readEntry(r, time.UnixMilli(int64(ms)))
	default:
		// Not an opcode: the byte is the value type of a plain entry.
		r.off--
		return readEntry(r, time.Time{})
	}
}

// readEntry decodes "type key value". A zero expiresAt means permanent.
func readEntry(r *reader, expiresAt time.Time) (Record, error) {
	typ, err := r.readByte("value type")
	if err != nil {
		return nil, err
	}
	if typ != typeString {
		return nil, domain.ErrRDBFormat.Detailf("unimplemented value type 0x%02x", typ)
	}

	key, err := r.readString("key")
	if err != nil {
		return nil, err
	}
	val, err := r.readString("value")
	if err != nil {
		return nil, err
	}

	return Entry{
		Key:   string(key.Render()),
		Value: domain.Value{Data: val.Render(), ExpiresAt: expiresAt},
	}, nil
}
