package netlog

import (
	"netmend/internal/diag"
	"netmend/internal/source"
)

// Recover runs the whole pipeline over one dump: locate the sections,
// resolve the constants, collect the leading well-formed events and
// reassemble. The only failure mode is ErrSectionNotFound; any other damage
// degrades to a smaller but valid document, reported through r.
func Recover(f *source.File, r diag.Reporter) (*Document, error) {
	if r == nil {
		r = diag.NopReporter{}
	}
	sec, err := Locate(f)
	if err != nil {
		return nil, err
	}
	return &Document{
		Constants: ResolveConstants(f, sec, r),
		Events:    CollectEvents(f, sec, r),
	}, nil
}
