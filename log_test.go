package structdiff

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"error":   LevelError,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		"Info":    LevelInfo,
		"debug":   LevelDebug,
		"bogus":   LevelWarn,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LevelInfo, &buf)

	log.Debugf("hidden")
	log.Infof("visible %d", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message leaked at info level")
	}
	if !strings.Contains(out, "[INFO]") || !strings.Contains(out, "visible 1") {
		t.Errorf("info line malformed: %q", out)
	}

	buf.Reset()
	child := log.With(map[string]any{"b": 2, "a": "x y"})
	child.Warnf("msg")
	line := buf.String()
	// Fields sorted, whitespace-bearing values quoted.
	if !strings.Contains(line, `a="x y" b=2`) {
		t.Errorf("fields malformed: %q", line)
	}
}

func TestComparisonTracing(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = NewLogger(LevelDebug, &buf)

	res := Equals(List(Int(1)), List(Int(2)), opts)
	if res.Equal {
		t.Fatal("expected mismatch")
	}
	if !strings.Contains(buf.String(), "descend") {
		t.Errorf("no descent trace emitted: %q", buf.String())
	}
}
