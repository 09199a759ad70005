package scan

import (
	"netmend/internal/source"
)

// Result reports how a single value scan ended.
type Result uint8

const (
	// Complete — все скобки и строки значения закрылись внутри дампа.
	Complete Result = iota
	// Truncated — дамп закончился при depth > 0 или внутри строки.
	Truncated
)

func (r Result) String() string {
	switch r {
	case Complete:
		return "complete"
	case Truncated:
		return "truncated"
	}
	return "unknown"
}

// ScanValue scans exactly one JSON value starting at off and returns its
// span. The scan tracks bracket depth and string state only; it never
// decodes the value, so a Complete span may still fail strict validation.
// The dump is not assumed to be well-formed anywhere outside the value.
func ScanValue(f *source.File, off uint32) (source.Span, Result) {
	c := NewCursorAt(f, off)
	return scanValue(&c)
}

// scanValue — автомат из трёх переменных состояния: depth, inString, escaped.
// Скаляр (depth == 0 всё время) заканчивается перед разделителем верхнего
// уровня (',', ']', '}') или на конце дампа; структурное значение — на
// закрывающей скобке, вернувшей depth к нулю.
func scanValue(c *Cursor) (source.Span, Result) {
	start := c.Mark()
	depth := 0
	inString := false
	escaped := false
	structured := false
	if b := c.Peek(); b == '{' || b == '[' {
		structured = true
	}

	for !c.EOF() {
		b := c.Peek()
		if inString {
			c.Bump()
			switch {
			case escaped:
				// байт после '\' съедается без повторной оценки
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		switch b {
		case '{', '[':
			depth++
			c.Bump()
		case '}', ']':
			if depth == 0 {
				// закрывающая скобка объемлющего контейнера — скаляр закончился
				return c.SpanFrom(start), Complete
			}
			depth--
			c.Bump()
			if depth == 0 && structured {
				return c.SpanFrom(start), Complete
			}
		case '"':
			inString = true
			c.Bump()
		case ',':
			if depth == 0 {
				return c.SpanFrom(start), Complete
			}
			c.Bump()
		default:
			c.Bump()
		}
	}

	if depth > 0 || inString {
		return c.SpanFrom(start), Truncated
	}
	// скаляр, упёршийся в конец дампа
	return c.SpanFrom(start), Complete
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
