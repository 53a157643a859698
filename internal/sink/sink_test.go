package sink

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileDestinationAppendsPerTopic(t *testing.T) {
	dir := t.TempDir()
	dest := NewFileDestination(dir)
	defer dest.Close()

	if err := dest.WriteMessage("menu_changes", []byte(`{"type":"price"}`)); err != nil {
		t.Fatal(err)
	}
	if err := dest.WriteMessage("menu_changes", []byte(`{"type":"name"}`)); err != nil {
		t.Fatal(err)
	}
	if err := dest.WriteMessage("other", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "menu_changes.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	want := "{\"type\":\"price\"}\n{\"type\":\"name\"}\n"
	if string(data) != want {
		t.Errorf("file contents = %q, want %q", data, want)
	}

	if _, err := os.Stat(filepath.Join(dir, "other.jsonl")); err != nil {
		t.Errorf("second topic file missing: %v", err)
	}
}

func TestFileDestinationBadDir(t *testing.T) {
	dest := NewFileDestination(filepath.Join(t.TempDir(), "missing", "nested"))
	if err := dest.WriteMessage("menu_changes", []byte("{}")); err == nil {
		t.Error("expected error for nonexistent directory")
	}
}
