package driver

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	output := filepath.Join(dir, "out.json")
	content := []byte(`{"constants":{},"events":[]}`)
	if err := os.WriteFile(output, content, 0o644); err != nil {
		t.Fatal(err)
	}
	outDigest := sha256.Sum256(content)
	inDigest := sha256.Sum256([]byte("input"))

	if p := cache.Lookup(inDigest); p != nil {
		t.Fatal("lookup on empty cache must miss")
	}

	err = cache.Store(inDigest, Payload{
		InputPath:    "in.netlog",
		InputDigest:  inDigest[:],
		OutputPath:   output,
		OutputDigest: outDigest[:],
		EventCount:   0,
	})
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	p := cache.Lookup(inDigest)
	if p == nil {
		t.Fatal("lookup after store must hit")
	}
	if !p.Fresh(output) {
		t.Fatal("payload must be fresh while output is untouched")
	}

	// выход изменился — запись протухла
	if err := os.WriteFile(output, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if p.Fresh(output) {
		t.Fatal("payload must go stale when output changes")
	}
	if p.Fresh(filepath.Join(dir, "other.json")) {
		t.Fatal("payload must not be fresh for another path")
	}
}

func TestDiskCacheRejectsEmptyDir(t *testing.T) {
	if _, err := OpenDiskCache(""); err == nil {
		t.Fatal("expected error for empty cache directory")
	}
}
