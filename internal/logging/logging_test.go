// internal/logging/logging_test.go
package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, true},
		{"  WARN ", zerolog.WarnLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
		{"bogus", zerolog.InfoLevel, false},
	}

	for _, c := range cases {
		got, ok := parseLevel(c.raw)
		if got != c.want || ok != c.ok {
			t.Fatalf("parseLevel(%q): got=(%v,%v) want=(%v,%v)", c.raw, got, ok, c.want, c.ok)
		}
	}
}
