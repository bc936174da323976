package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewAppendsToFile(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "tablegrid.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("earlier line\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	logger, closer, err := New(path, "warn")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("filter ignored", "expression", "$ >")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "earlier line\n") {
		t.Fatalf("log was truncated:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level:\n%s", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, Prefix) || !strings.Contains(out, "filter ignored") {
		t.Fatalf("warn line missing:\n%s", out)
	}
	if log.Default() != logger {
		t.Fatalf("New did not install the default logger")
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "a", "b", "tablegrid.log")
	_, closer, err := New(path, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_ = closer.Close()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New(filepath.Join(t.TempDir(), "x.log"), "loud"); err == nil {
		t.Fatalf("New returned nil error for unknown level")
	}
}

func TestNewWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, log.DebugLevel)
	l.Debug("double click", "row", 1)
	if !strings.Contains(buf.String(), "double click") || !strings.Contains(buf.String(), "row=1") {
		t.Fatalf("debug output = %q", buf.String())
	}
}
