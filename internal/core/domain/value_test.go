package domain

import (
	"testing"
	"time"
)

func TestValue_IsExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"permanent", NewValue([]byte("v")), false},
		{"future", NewExpiringValue([]byte("v"), now.Add(time.Millisecond)), false},
		{"exactly now", NewExpiringValue([]byte("v"), now), true},
		{"past", NewExpiringValue([]byte("v"), now.Add(-time.Second)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.IsExpired(now); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_CloneIsDeep(t *testing.T) {
	src := []byte("hello")
	v := NewValue(src)
	src[0] = 'j'
	if string(v.Data) != "hello" {
		t.Fatalf("NewValue shares caller buffer: %q", v.Data)
	}

	c := v.Clone()
	c.Data[0] = 'y'
	if string(v.Data) != "hello" {
		t.Errorf("Clone shares backing array: %q", v.Data)
	}
}

func TestValue_HasExpiry(t *testing.T) {
	if NewValue(nil).HasExpiry() {
		t.Error("permanent value reports expiry")
	}
	if !NewExpiringValue(nil, time.Now()).HasExpiry() {
		t.Error("expiring value reports no expiry")
	}
}
