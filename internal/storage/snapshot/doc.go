// Package snapshot decodes RDB snapshot files into store entries.
//
// File layout:
//
//	[magic:5 "REDIS"][version:4 ASCII digits]
//	record*
//	[0xFF][trailing bytes, e.g. checksum, ignored]
//
// Each record starts with an opcode byte:
//
//	0xFF  EOF
//	0xFE  SELECTDB      length
//	0xFD  EXPIRETIME    uint32 LE seconds, type, key, value
//	0xFC  EXPIRETIMEMS  uint64 LE milliseconds, type, key, value
//	0xFB  RESIZEDB      length, length
//	0xFA  AUX           string, string
//
// Any other byte is the value-type tag of a non-expiring entry. Only type 0
// (string) is supported.
//
// Snapshots are read once at startup; nothing in this package writes them.
package snapshot
