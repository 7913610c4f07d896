package repl

import "testing"

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		prefix string
		want   int
	}{
		{"", len(c.commands)},
		{"config", 2},
		{"CONFIG GET D", 2},
		{"e", 2},
		{"zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := c.Complete(tt.prefix); len(got) != tt.want {
				t.Errorf("Complete(%q) = %v, want %d results", tt.prefix, got, tt.want)
			}
		})
	}
}
