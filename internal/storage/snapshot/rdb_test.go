package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/yndnr/redislite/internal/core/domain"
)

// rdbBuilder assembles snapshot bytes for tests.
type rdbBuilder struct {
	bytes.Buffer
}

func newRDB(version string) *rdbBuilder {
	b := &rdbBuilder{}
	b.WriteString(Magic + version)
	return b
}

func (b *rdbBuilder) str(s string) *rdbBuilder {
	b.WriteByte(byte(len(s)))
	b.WriteString(s)
	return b
}

func (b *rdbBuilder) aux(k, v string) *rdbBuilder {
	b.WriteByte(opAux)
	return b.str(k).str(v)
}

func (b *rdbBuilder) selectDB(n byte) *rdbBuilder {
	b.WriteByte(opSelectDB)
	b.WriteByte(n)
	return b
}

func (b *rdbBuilder) resizeDB(main, expire byte) *rdbBuilder {
	b.WriteByte(opResizeDB)
	b.WriteByte(main)
	b.WriteByte(expire)
	return b
}

func (b *rdbBuilder) entry(k, v string) *rdbBuilder {
	b.WriteByte(typeString)
	return b.str(k).str(v)
}

func (b *rdbBuilder) expireSec(at time.Time, k, v string) *rdbBuilder {
	b.WriteByte(opExpireTime)
	var ts [4]byte
	binary.LittleEndian.PutUint32(ts[:], uint32(at.Unix()))
	b.Write(ts[:])
	return b.entry(k, v)
}

func (b *rdbBuilder) expireMs(at time.Time, k, v string) *rdbBuilder {
	b.WriteByte(opExpireTimeMs)
	var ts [8]byte
	binary.LittleEndian.PutUint64(ts[:], uint64(at.UnixMilli()))
	b.Write(ts[:])
	return b.entry(k, v)
}

func (b *rdbBuilder) eof() *rdbBuilder {
	b.WriteByte(opEOF)
	return b
}

// ============================================================
// Full file decoding
// ============================================================

func TestDecode_CompleteFile(t *testing.T) {
	expiry := time.Now().Add(10 * time.Second).Truncate(time.Second)

	data := newRDB("0003").
		aux("ver", "6.2").
		selectDB(0).
		expireSec(expiry, "key1", "value1").
		eof().
		Bytes()

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1: %v", len(got), got)
	}
	v, ok := got["key1"]
	if !ok {
		t.Fatal("key1 missing")
	}
	if string(v.Data) != "value1" {
		t.Errorf("data = %q, want value1", v.Data)
	}
	if !v.ExpiresAt.Equal(expiry) {
		t.Errorf("ExpiresAt = %v, want %v", v.ExpiresAt, expiry)
	}
}

func TestParse_AllRecordKinds(t *testing.T) {
	expMs := time.UnixMilli(1_900_000_000_123)

	data := newRDB("0011").
		aux("redis-ver", "7.2.0").
		selectDB(0).
		resizeDB(3, 1).
		entry("plain", "p").
		expireMs(expMs, "ms", "m").
		eof().
		Bytes()
	data = append(data, 0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0) // checksum

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f.Version != "0011" {
		t.Errorf("Version = %q", f.Version)
	}
	if len(f.Records) != 6 {
		t.Fatalf("len(Records) = %d, want 6", len(f.Records))
	}

	aux, ok := f.Records[0].(Aux)
	if !ok || string(aux.Key) != "redis-ver" || string(aux.Value.Render()) != "7.2.0" {
		t.Errorf("Records[0] = %#v", f.Records[0])
	}
	if sel, ok := f.Records[1].(SelectDB); !ok || sel.Index != 0 {
		t.Errorf("Records[1] = %#v", f.Records[1])
	}
	if rs, ok := f.Records[2].(ResizeDB); !ok || rs.MainSize != 3 || rs.ExpireSize != 1 {
		t.Errorf("Records[2] = %#v", f.Records[2])
	}
	plain, ok := f.Records[3].(Entry)
	if !ok || plain.Key != "plain" || plain.Value.HasExpiry() {
		t.Errorf("Records[3] = %#v", f.Records[3])
	}
	ms, ok := f.Records[4].(Entry)
	if !ok || !ms.Value.ExpiresAt.Equal(expMs) {
		t.Errorf("Records[4] = %#v", f.Records[4])
	}
	if _, ok := f.Records[5].(EOF); !ok {
		t.Errorf("Records[5] = %#v", f.Records[5])
	}

	entries := f.Entries()
	if len(entries) != 2 {
		t.Errorf("len(Entries) = %d, want 2", len(entries))
	}
}

func TestDecode_LastEntryWins(t *testing.T) {
	data := newRDB("0003").entry("k", "first").entry("k", "second").eof().Bytes()
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if string(got["k"].Data) != "second" {
		t.Errorf("k = %q, want second", got["k"].Data)
	}
}

func TestDecode_NoEOF(t *testing.T) {
	data := newRDB("0003").entry("k", "v").Bytes()
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if string(got["k"].Data) != "v" {
		t.Errorf("k = %q", got["k"].Data)
	}
}

func TestDecode_TrailingBytesIgnored(t *testing.T) {
	data := newRDB("0003").entry("k", "v").eof().Bytes()
	data = append(data, []byte("garbage that is not a record")...)
	if _, err := Decode(data); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
}

func TestDecode_IntegerEncodedKeyAndValue(t *testing.T) {
	b := newRDB("0003")
	b.WriteByte(typeString)
	b.Write([]byte{0xc0, 0x07})       // key 7
	b.Write([]byte{0xc1, 0xe8, 0x03}) // value 1000
	data := b.eof().Bytes()

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if string(got["7"].Data) != "1000" {
		t.Errorf("got = %v", got)
	}
}

func TestDecode_OriginalFixtures(t *testing.T) {
	// SELECTDB 0 alone.
	f, err := Parse(append([]byte("REDIS0003"), 0xfe, 0x00))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(f.Records) != 1 {
		t.Fatalf("len(Records) = %d", len(f.Records))
	}

	// AUX with two plain strings.
	f, err = Parse([]byte("REDIS0003\xfa\x05redis\x055.0.0"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	aux := f.Records[0].(Aux)
	if string(aux.Key) != "redis" || string(aux.Value.Bytes) != "5.0.0" {
		t.Errorf("aux = %#v", aux)
	}
}

// ============================================================
// Header and structural failures
// ============================================================

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"bad magic", []byte("WRONG0003\xff")},
		{"bad version", []byte("REDIS9999\xff")},
		{"non-numeric version", []byte("REDISabcd\xff")},
		{"short header", []byte("REDI")},
		{"missing version", []byte("REDIS00")},
		{"unknown value type", []byte("REDIS0003\x05\x01k\x01v")},
		{"expire with unknown type", []byte("REDIS0003\xfd\x00\x00\x00\x00\x02\x01k\x01v")},
		{"truncated expire time", []byte("REDIS0003\xfd\x00\x00")},
		{"truncated expire ms", []byte("REDIS0003\xfc\x00\x00\x00\x00")},
		{"truncated key", []byte("REDIS0003\x00\x05ke")},
		{"missing value", []byte("REDIS0003\x00\x01k")},
		{"resizedb integer encoded", []byte("REDIS0003\xfb\xc0\x01\x00")},
		{"aux integer key", []byte("REDIS0003\xfa\xc0\x01\x01v")},
		{"bad special encoding", []byte("REDIS0003\x00\xc5")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !errors.Is(err, domain.ErrRDBFormat) {
				t.Errorf("error = %v, want ErrRDBFormat", err)
			}
		})
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	f, err := Parse([]byte("REDIS0003"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(f.Records) != 0 {
		t.Errorf("len(Records) = %d, want 0", len(f.Records))
	}
}
