package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerWritesLogfmtLine(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Info)
	log.Info("sections loaded", F("project_id", 7), F("count", 3))

	line := buf.String()
	if !strings.Contains(line, "level=info") {
		t.Fatalf("expected level field, got %q", line)
	}
	if !strings.Contains(line, `msg="sections loaded"`) {
		t.Fatalf("expected quoted message, got %q", line)
	}
	if !strings.Contains(line, "project_id=7") || !strings.Contains(line, "count=3") {
		t.Fatalf("expected fields in line, got %q", line)
	}
}

func TestLoggerLevelGate(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Warn)
	log.Info("ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected info below warn to be dropped, got %q", buf.String())
	}
	if log.Enabled(Debug) {
		t.Fatalf("expected debug to be disabled at warn level")
	}
	log.Error("kept")
	if !strings.Contains(buf.String(), "msg=kept") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}

func TestWithFieldsCarryForward(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Debug).With(F("view", "editor"))
	log.Debug("refine issued", F("section_id", 12))
	if !strings.Contains(buf.String(), "view=editor") {
		t.Fatalf("expected inherited field, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != Debug {
		t.Fatalf("expected debug")
	}
	if ParseLevel("") != Info {
		t.Fatalf("expected default info")
	}
	if ParseLevel("warning") != Warn {
		t.Fatalf("expected warn")
	}
}
