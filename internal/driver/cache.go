package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Payload format changes
const cacheSchemaVersion uint16 = 1

// DiskCache запоминает, какой выход был записан для какого входа, чтобы
// повторный прогон по неизменившимся дампам ничего не пересчитывал.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Payload stores the recorded outcome of one recovery.
type Payload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	InputPath    string
	InputDigest  []byte
	OutputPath   string
	OutputDigest []byte

	EventCount int
	Warnings   int
}

// OpenDiskCache creates (if needed) and opens a cache directory.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, errors.New("cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) entryPath(inputDigest [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(inputDigest[:])+".nmc")
}

// Lookup returns the recorded payload for an input digest, or nil when the
// entry is missing, unreadable, or from another schema version.
func (c *DiskCache) Lookup(inputDigest [32]byte) *Payload {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 -- entry path is derived from the digest, not user input
	raw, err := os.ReadFile(c.entryPath(inputDigest))
	if err != nil {
		return nil
	}
	var p Payload
	if err := msgpack.Unmarshal(raw, &p); err != nil {
		return nil
	}
	if p.Schema != cacheSchemaVersion {
		return nil
	}
	return &p
}

// Store records the outcome of one recovery.
func (c *DiskCache) Store(inputDigest [32]byte, p Payload) error {
	p.Schema = cacheSchemaVersion
	raw, err := msgpack.Marshal(&p)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.WriteFile(c.entryPath(inputDigest), raw, 0o644); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}

// Fresh reports whether the recorded output still matches what is on disk:
// same output path, file present, same digest.
func (p *Payload) Fresh(outputPath string) bool {
	if p == nil || p.OutputPath != outputPath {
		return false
	}
	// #nosec G304 -- path was produced by OutputPathFor
	content, err := os.ReadFile(outputPath)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(content)
	return hex.EncodeToString(digest[:]) == hex.EncodeToString(p.OutputDigest)
}
