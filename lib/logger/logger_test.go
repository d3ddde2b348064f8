package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer Close()

	Infof("loaded %d words", 3)
	if s := buf.String(); !strings.Contains(s, "[INFO][logger_test.go:") || !strings.Contains(s, "loaded 3 words") {
		t.Errorf("unexpected log line %q", s)
	}
	buf.Reset()
	Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug should be filtered at info level: %q", buf.String())
	}
	SetLevel(DEBUG)
	defer SetLevel(INFO)
	Debug("shown")
	if !strings.Contains(buf.String(), "[DEBUG]") {
		t.Errorf("debug line missing: %q", buf.String())
	}
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	err := Setup(&Settings{Path: dir, Name: "wordfreq", Ext: "log", TimeFormat: "20060102"})
	if err != nil {
		t.Fatal(err)
	}
	Error("disk full")
	Close()
	matches, _ := filepath.Glob(filepath.Join(dir, "wordfreq-*.log"))
	if len(matches) != 1 {
		t.Fatalf("log files: %v", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[ERROR]") {
		t.Errorf("log file content %q", data)
	}
}
