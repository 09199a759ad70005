package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.netlog", []byte(`{"events":[]}`))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Fatal("virtual flag not set")
	}
	if string(f.Content) != `{"events":[]}` {
		t.Fatalf("content = %q", f.Content)
	}
	if got, ok := fs.GetLatest("test.netlog"); !ok || got != id {
		t.Fatalf("GetLatest = %v, %v", got, ok)
	}
}

func TestFileSetLatestWins(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("dump.netlog", []byte("one"))
	second := fs.AddVirtual("dump.netlog", []byte("two"))
	if first == second {
		t.Fatal("same id for two versions")
	}
	got, ok := fs.GetLatest("dump.netlog")
	if !ok || got != second {
		t.Fatalf("GetLatest = %v, want %v", got, second)
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.netlog")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("{\"a\":1}\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "{\"a\":1}\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %v, want BOM and CRLF set", f.Flags)
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("dump.netlog", []byte("{\n  \"events\": []\n}"))
	start, end := fs.Resolve(Span{File: id, Start: 4, End: 12})
	if start.Line != 2 || start.Col != 3 {
		t.Fatalf("start = %v, want 2:3", start)
	}
	if end.Line != 2 {
		t.Fatalf("end = %v, want line 2", end)
	}
}

func TestFileSetLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.netlog")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
