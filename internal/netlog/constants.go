package netlog

import (
	"encoding/json"

	"netmend/internal/diag"
	"netmend/internal/source"
)

// ResolveConstants returns the constants object for the output document.
// It never fails: a missing, truncated, malformed or non-object constants
// value collapses to an empty object, because constants are auxiliary
// metadata and must not block event recovery.
func ResolveConstants(f *source.File, sec Sections, r diag.Reporter) json.RawMessage {
	if !sec.HasConstants {
		code := diag.SecConstantsMissing
		msg := `"constants" section not found, substituting an empty object`
		if sec.ConstantsTruncated {
			code = diag.SecConstantsTruncated
			msg = `"constants" value never closes, substituting an empty object`
		}
		r.Report(code, diag.SevWarning, source.Span{File: f.ID}, msg)
		return EmptyConstants()
	}

	text := sec.Constants.Bytes(f.Content)
	if len(text) == 0 || text[0] != '{' {
		r.Report(diag.ConstNotObject, diag.SevWarning, sec.Constants,
			`"constants" is not an object, substituting an empty one`)
		return EmptyConstants()
	}
	if !json.Valid(text) {
		r.Report(diag.ConstMalformed, diag.SevWarning, sec.Constants,
			`"constants" is balanced but not valid JSON, substituting an empty object`)
		return EmptyConstants()
	}
	return json.RawMessage(text)
}
