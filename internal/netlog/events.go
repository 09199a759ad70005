package netlog

import (
	"encoding/json"
	"fmt"

	"netmend/internal/diag"
	"netmend/internal/scan"
	"netmend/internal/source"
)

// CollectEvents drives the boundary scanner over the events body and keeps
// every leading element that survives a strict parse. The result is always
// a prefix of the original event list: scanning stops at the first
// truncated or malformed element and nothing after it is ever inspected,
// because text past an unparseable boundary is untrustworthy.
func CollectEvents(f *source.File, sec Sections, r diag.Reporter) []json.RawMessage {
	events := make([]json.RawMessage, 0)
	if !sec.HasEvents {
		r.Report(diag.SecEventsMissing, diag.SevWarning, source.Span{File: f.ID},
			`"events" array not found, nothing to recover`)
		return events
	}

	sc := scan.NewElementScanner(f, sec.EventsBody)
	for {
		sp, kind := sc.Next()
		switch kind {
		case scan.KindEnd:
			return events
		case scan.KindTruncated:
			r.Report(diag.EventsTruncated, diag.SevWarning, sp,
				fmt.Sprintf("events array truncated, kept %d complete event(s)", len(events)))
			return events
		}
		text := sp.Bytes(f.Content)
		if !json.Valid(text) {
			// сбалансированный, но не валидный элемент — остаток не трогаем
			r.Report(diag.EventMalformed, diag.SevWarning, sp,
				fmt.Sprintf("malformed event after %d recovered event(s), discarding the rest", len(events)))
			return events
		}
		events = append(events, json.RawMessage(text))
	}
}
