package domain

import (
	"bytes"
	"time"
)

// Value is a stored byte string with an optional absolute expiration.
//
// A zero ExpiresAt means the value never expires. ExpiresAt is fixed when
// the value is written and is never changed in place; a new write replaces
// the whole Value.
type Value struct {
	Data      []byte
	ExpiresAt time.Time
}

// NewValue returns a permanent value holding a copy of data.
func NewValue(data []byte) Value {
	return Value{Data: bytes.Clone(data)}
}

// NewExpiringValue returns a value holding a copy of data that expires at t.
func NewExpiringValue(data []byte, t time.Time) Value {
	return Value{Data: bytes.Clone(data), ExpiresAt: t}
}

// HasExpiry reports whether the value carries an expiration.
func (v Value) HasExpiry() bool {
	return !v.ExpiresAt.IsZero()
}

// IsExpired reports whether the value is expired at now.
// A value whose expiration equals now is expired.
func (v Value) IsExpired(now time.Time) bool {
	if v.ExpiresAt.IsZero() {
		return false
	}
	return !v.ExpiresAt.After(now)
}

// Clone returns a deep copy so callers never share the backing array.
func (v Value) Clone() Value {
	return Value{
		Data:      bytes.Clone(v.Data),
		ExpiresAt: v.ExpiresAt,
	}
}
