package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("warn", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Info("hidden")
	log.WithField("file", "save.json").Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info entry written at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "file=save.json") {
		t.Fatalf("warn entry missing: %s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("colors enabled for a buffer: %q", out)
	}
	if log.GetLevel() != logrus.WarnLevel {
		t.Fatalf("level = %v", log.GetLevel())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
