package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestHelpersAreNoOpsBeforeInit(t *testing.T) {
	Logger = nil
	// Must not panic.
	Info("x")
	Debug("x")
	Warn("x")
	Error("x")
	if WithPrefix("p") != nil {
		t.Error("WithPrefix should return nil before init")
	}
}

func TestSetOutputFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, log.WarnLevel)
	defer func() { Logger = nil }()

	Info("hidden")
	Error("Failed to fetch first page", "ref", "http://x")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "Failed to fetch first page") || !strings.Contains(out, "ref=http://x") {
		t.Errorf("missing error line: %q", out)
	}
}

func TestInitWritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "test"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("hello")
	Close()
	Logger = nil

	matches, _ := filepath.Glob(filepath.Join(dir, "logs", "bestiary-*.log"))
	if len(matches) != 1 {
		t.Fatalf("expected one log file, got %v", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "bestiary started") {
		t.Errorf("log file missing startup line: %q", data)
	}
}
