package diag

import (
	"netmend/internal/source"
)

// Diagnostic describes one non-fatal recovery anomaly. A malformed dump is
// the normal input here, so almost everything is a warning: the only hard
// failure (no sections at all) travels as a plain error, not a diagnostic.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
}
