package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveSummaryWritesNamedFile(t *testing.T) {
	dir := t.TempDir()
	e, err := New(dir)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}

	blob := []byte{0x50, 0x4b, 0x03, 0x04}
	path, err := e.SaveSummary(blob)
	if err != nil {
		t.Fatalf("save summary: %v", err)
	}
	if filepath.Base(path) != SummaryFileName {
		t.Fatalf("expected file named %s, got %s", SummaryFileName, path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != string(blob) {
		t.Fatalf("written bytes differ from downloaded bytes")
	}
}

func TestSaveSummaryRelativeOverrideDir(t *testing.T) {
	e := &Exporter{overrideDir: "exports", cwd: t.TempDir()}

	path, err := e.SaveSummary([]byte("x"))
	if err != nil {
		t.Fatalf("save summary: %v", err)
	}
	want := filepath.Join(e.cwd, "exports", SummaryFileName)
	if path != want {
		t.Fatalf("path mismatch: got=%q want=%q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
}

func TestSaveSummaryDefaultsToCwd(t *testing.T) {
	e := &Exporter{cwd: t.TempDir()}

	path, err := e.SaveSummary([]byte("x"))
	if err != nil {
		t.Fatalf("save summary: %v", err)
	}
	if filepath.Dir(path) != e.cwd {
		t.Fatalf("expected export into cwd, got %s", path)
	}
}
