// Package netlog recovers the usable prefix of a truncated or corrupted
// Chromium NetLog dump. A dump is an object with two sections — a
// "constants" object and an "events" array — and capture tools routinely
// get killed mid-write, leaving the tail unparseable. The pipeline locates
// both sections inside the broken text, strict-parses the constants (or
// substitutes an empty object), and keeps every leading event that is both
// balanced and valid JSON, discarding everything from the first damaged
// element onward.
package netlog

import (
	"encoding/json"
)

// Document is the reassembled dump. Values are carried as raw spans of the
// input, so key order and formatting inside every kept value survive
// re-encoding untouched.
type Document struct {
	Constants json.RawMessage   `json:"constants"`
	Events    []json.RawMessage `json:"events"`
}

// NewDocument returns an empty document: "{}" constants, zero events.
func NewDocument() *Document {
	return &Document{
		Constants: EmptyConstants(),
		Events:    make([]json.RawMessage, 0),
	}
}

// EmptyConstants is what missing or malformed constants collapse to.
func EmptyConstants() json.RawMessage {
	return json.RawMessage("{}")
}

// EventCount returns the number of recovered events.
func (d *Document) EventCount() int {
	return len(d.Events)
}

// Encode serializes the document with two-space indentation and a trailing
// newline. "constants" always precedes "events".
func (d *Document) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
