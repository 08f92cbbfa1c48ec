package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogger_VerboseGate(t *testing.T) {
	var buf bytes.Buffer
	verbose := false
	log := NewWithCallback("gateway", func() bool { return verbose }).WithWriter(&buf)

	log.Info("hidden")
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected no output when not verbose, got %q", buf.String())
	}

	verbose = true
	log.Info("classified", RequestID("abc"), F("label", "5 stars"))

	out := buf.String()
	if !strings.Contains(out, "INFO [gateway] classified") {
		t.Errorf("Unexpected line: %q", out)
	}
	if !strings.Contains(out, "[request_id=abc label=5 stars]") {
		t.Errorf("Expected fields in line: %q", out)
	}
}

func TestLogger_WarnAndErrorAlwaysShown(t *testing.T) {
	var buf bytes.Buffer
	log := New("", nil).WithWriter(&buf)

	log.Warn("careful")
	log.Error("failed", Error(errors.New("boom")))

	out := buf.String()
	if !strings.Contains(out, "WARN [main] careful") {
		t.Errorf("Missing warn line: %q", out)
	}
	if !strings.Contains(out, "ERROR [main] failed [error=boom]") {
		t.Errorf("Missing error line: %q", out)
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New("root", nil).WithWriter(&buf).WithComponent("web")

	log.Warn("hello")
	if !strings.Contains(buf.String(), "[web] hello") {
		t.Errorf("Expected component override, got %q", buf.String())
	}

	Nop().Error("discarded")
}
