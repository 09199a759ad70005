package netlog

import (
	"bytes"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"netmend/internal/scan"
	"netmend/internal/source"
)

// ErrSectionNotFound means the dump contains neither a "constants" nor an
// "events" key and there is nothing to recover. This is the only fatal
// outcome of a recovery.
var ErrSectionNotFound = errors.New(`neither "constants" nor "events" section found`)

// Sections holds what the locator found. EventsBody is the text between the
// opening '[' of the events array and the end of the dump; its real end is
// the scanner's business, not the locator's.
type Sections struct {
	Constants    source.Span
	HasConstants bool
	// ConstantsTruncated — ключ нашёлся, но значение не закрылось до конца дампа.
	ConstantsTruncated bool

	EventsBody source.Span
	HasEvents  bool
}

// Locate finds both sections inside a possibly-invalid dump. The overall
// document is never parsed; the keys are found textually and the constants
// value is bounded by the same balanced-value scan the event scanner uses.
func Locate(f *source.File) (Sections, error) {
	var sec Sections

	constStart, constFound := findValueStart(f.Content, "constants")
	if constFound {
		sp, res := scan.ScanValue(f, constStart)
		if res == scan.Complete {
			sec.Constants = trimTrailingSpace(f.Content, sp)
			sec.HasConstants = true
		} else {
			sec.ConstantsTruncated = true
		}
	}

	bodyStart, eventsFound := findEventsBody(f.Content)
	if eventsFound {
		end, err := safecast.Conv[uint32](len(f.Content))
		if err != nil {
			panic(fmt.Errorf("len file content overflow: %w", err))
		}
		sec.EventsBody = source.Span{File: f.ID, Start: bodyStart, End: end}
		sec.HasEvents = true
	}

	if !sec.HasConstants && !sec.HasEvents {
		return Sections{}, ErrSectionNotFound
	}
	return sec, nil
}

// findValueStart ищет первое вхождение `"key"` с последующим ':' и
// возвращает смещение первого непробельного байта значения.
func findValueStart(content []byte, key string) (uint32, bool) {
	needle := []byte(`"` + key + `"`)
	from := 0
	for {
		i := bytes.Index(content[from:], needle)
		if i < 0 {
			return 0, false
		}
		j := from + i + len(needle)
		j = skipSpace(content, j)
		if j < len(content) && content[j] == ':' {
			j = skipSpace(content, j+1)
			if j < len(content) {
				return uint32(j), true
			}
			// двоеточие есть, а значения уже нет — дамп оборван прямо тут
			return 0, false
		}
		// `"key"` без двоеточия — скорее всего строковое значение, ищем дальше
		from += i + len(needle)
	}
}

// findEventsBody ищет первое вхождение `"events"` с ':' и открывающей '['
// и возвращает смещение первого байта тела массива.
func findEventsBody(content []byte) (uint32, bool) {
	needle := []byte(`"events"`)
	from := 0
	for {
		i := bytes.Index(content[from:], needle)
		if i < 0 {
			return 0, false
		}
		j := from + i + len(needle)
		j = skipSpace(content, j)
		if j < len(content) && content[j] == ':' {
			j = skipSpace(content, j+1)
			if j < len(content) && content[j] == '[' {
				return uint32(j) + 1, true
			}
		}
		from += i + len(needle)
	}
}

func skipSpace(content []byte, i int) int {
	for i < len(content) {
		switch content[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

func trimTrailingSpace(content []byte, sp source.Span) source.Span {
	for sp.End > sp.Start {
		switch content[sp.End-1] {
		case ' ', '\t', '\n', '\r':
			sp.End--
		default:
			return sp
		}
	}
	return sp
}
