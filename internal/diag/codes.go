package diag

import (
	"fmt"
)

// Code identifies a recovery diagnostic.
type Code uint16

const (
	// UnknownCode — на всякий случай
	UnknownCode Code = 0

	// Секции
	SecConstantsMissing   Code = 1001
	SecConstantsTruncated Code = 1002
	SecEventsMissing      Code = 1003

	// Constants
	ConstMalformed Code = 1101
	ConstNotObject Code = 1102

	// События
	EventMalformed  Code = 1201
	EventsTruncated Code = 1202

	// I/O
	IOLoadFileError  Code = 9001
	IOWriteFileError Code = 9002
)

// ID returns the short printable identifier, e.g. "NM1201".
func (c Code) ID() string {
	return fmt.Sprintf("NM%04d", uint16(c))
}
