package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level zerolog.Level
		err   bool
	}{
		{"", DefaultLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" INFO ", zerolog.InfoLevel, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		level, err := ParseLevel(tt.name)
		if tt.err {
			if err == nil {
				t.Fatalf("%q: expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.name, err)
		}
		if level != tt.level {
			t.Fatalf("%q: expected %s, got %s", tt.name, tt.level, level)
		}
	}
}

func TestComponentWritesField(t *testing.T) {
	var buf bytes.Buffer
	Init(zerolog.DebugLevel, &buf)
	defer Init(DefaultLevel, nil)

	logger := Component("resolve")
	logger.Debug().Str("key", "accent").Msg("style fell back to empty")

	out := buf.String()
	if !strings.Contains(out, "component=resolve") {
		t.Fatalf("expected component field, got %q", out)
	}
	if !strings.Contains(out, "style fell back to empty") {
		t.Fatalf("expected message, got %q", out)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(zerolog.WarnLevel, &buf)
	defer Init(DefaultLevel, nil)

	logger := Component("apply")
	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug output to be filtered, got %q", buf.String())
	}
}

func TestComponentCreatedBeforeInit(t *testing.T) {
	logger := Component("early")

	var buf bytes.Buffer
	Init(zerolog.DebugLevel, &buf)
	defer Init(DefaultLevel, nil)

	logger.Debug().Msg("after init")
	if !strings.Contains(buf.String(), "component=early") {
		t.Fatalf("expected output in the new writer, got %q", buf.String())
	}
}
