package testkit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"netmend/internal/diag"
	"netmend/internal/netlog"
	"netmend/internal/source"
)

// CheckDocumentInvariants runs the structural guarantees every recovered
// document must hold:
// 1) constants is present and is a valid JSON object
// 2) every event is valid standalone JSON
// 3) the encoded form parses strictly and keeps "constants" before "events"
func CheckDocumentInvariants(doc *netlog.Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	if len(doc.Constants) == 0 {
		return errors.New("constants missing from document")
	}
	if doc.Constants[0] != '{' || !json.Valid(doc.Constants) {
		return fmt.Errorf("constants is not a valid object: %q", doc.Constants)
	}
	if doc.Events == nil {
		return errors.New("events slice is nil, must encode as []")
	}
	for i, ev := range doc.Events {
		if !json.Valid(ev) {
			return fmt.Errorf("event %d is not valid JSON: %q", i, ev)
		}
	}

	encoded, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}
	if !json.Valid(encoded) {
		return errors.New("encoded document is not valid JSON")
	}
	constIdx := bytes.Index(encoded, []byte(`"constants"`))
	eventsIdx := bytes.Index(encoded, []byte(`"events"`))
	if constIdx < 0 || eventsIdx < 0 || constIdx > eventsIdx {
		return errors.New("encoded document must have constants before events")
	}
	return nil
}

// CheckPrefixInvariant truncates a well-formed dump at every byte offset,
// recovers each cut, and verifies the recovered events always form a prefix
// of the events recovered from the intact dump. Cuts where not even the
// section anchors survive are allowed to fail with ErrSectionNotFound.
func CheckPrefixInvariant(content []byte) error {
	full, err := recoverBytes(content)
	if err != nil {
		return fmt.Errorf("intact dump did not recover: %w", err)
	}

	for cut := 0; cut <= len(content); cut++ {
		doc, err := recoverBytes(content[:cut])
		if err != nil {
			if errors.Is(err, netlog.ErrSectionNotFound) {
				continue
			}
			return fmt.Errorf("cut at %d: unexpected error: %w", cut, err)
		}
		if err := CheckDocumentInvariants(doc); err != nil {
			return fmt.Errorf("cut at %d: %w", cut, err)
		}
		if len(doc.Events) > len(full.Events) {
			return fmt.Errorf("cut at %d: recovered %d events, intact dump has %d",
				cut, len(doc.Events), len(full.Events))
		}
		for i := range doc.Events {
			if !bytes.Equal(doc.Events[i], full.Events[i]) {
				return fmt.Errorf("cut at %d: event %d differs: %q vs %q",
					cut, i, doc.Events[i], full.Events[i])
			}
		}
	}
	return nil
}

func recoverBytes(content []byte) (*netlog.Document, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("testkit.netlog", content)
	return netlog.Recover(fs.Get(id), diag.NopReporter{})
}
