package researchlog

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendWritesOneLinePerEntry(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RESEARCH_LOG_DIR", dir)

	entries := []Entry{
		{Ticker: "ACME", Period: "1wk", Outcome: "completed", Iterations: 2, Report: "fine"},
		{Ticker: "OTHR", Period: "1mo", Outcome: "exhausted", Iterations: 5},
	}
	for _, e := range entries {
		if err := Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	path := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".txt")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected daily log file, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}

	var first Entry
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("Line is not valid JSON: %v", err)
	}
	if first.Ticker != "ACME" || first.Outcome != "completed" || first.Iterations != 2 {
		t.Errorf("Unexpected entry: %+v", first)
	}
	if first.Time == "" {
		t.Error("Append must stamp the entry time")
	}
}

func TestCompressOlder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RESEARCH_LOG_DIR", dir)

	old := filepath.Join(dir, "2026-01-01.txt")
	if err := os.WriteFile(old, []byte(`{"Ticker":"ACME"}`+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to seed log file: %v", err)
	}
	stale := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("Failed to age log file: %v", err)
	}

	fresh := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".txt")
	if err := os.WriteFile(fresh, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("Failed to seed fresh file: %v", err)
	}

	if err := CompressOlder(7); err != nil {
		t.Fatalf("CompressOlder failed: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("Aged file must be removed after compression")
	}
	gz, err := os.Open(old + ".gz")
	if err != nil {
		t.Fatalf("Expected gzip archive, got %v", err)
	}
	defer gz.Close()

	r, err := gzip.NewReader(gz)
	if err != nil {
		t.Fatalf("Archive is not valid gzip: %v", err)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	if !strings.Contains(string(content), "ACME") {
		t.Errorf("Archive content mismatch: %q", content)
	}

	if _, err := os.Stat(fresh); err != nil {
		t.Error("Fresh files must be left alone")
	}
}

func TestCompressOlderDisabled(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RESEARCH_LOG_DIR", dir)

	path := filepath.Join(dir, "2026-01-01.txt")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("Failed to seed log file: %v", err)
	}
	stale := time.Now().AddDate(0, 0, -30)
	_ = os.Chtimes(path, stale, stale)

	if err := CompressOlder(0); err != nil {
		t.Fatalf("CompressOlder(0) must be a no-op, got %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("Retention of 0 must not touch any file")
	}
}
