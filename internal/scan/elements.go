package scan

import (
	"netmend/internal/source"
)

// Kind classifies what ElementScanner.Next found.
type Kind uint8

const (
	// KindElement — очередной сбалансированный элемент массива.
	KindElement Kind = iota
	// KindEnd — закрывающая ']' массива, элементов больше нет.
	KindEnd
	// KindTruncated — дамп закончился до того, как элемент закрылся
	// (в том числе висячая запятая или отсутствующая ']').
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindEnd:
		return "end"
	case KindTruncated:
		return "truncated"
	}
	return "unknown"
}

// ElementScanner walks the body of the events array (the text after its
// opening '[') and yields the span of every top-level element in document
// order. After KindEnd or KindTruncated the scanner is exhausted; further
// Next calls repeat the terminal kind. Anything past a truncated element is
// never inspected.
type ElementScanner struct {
	cursor   Cursor
	done     bool
	terminal Kind
}

// NewElementScanner создаёт сканер по телу массива событий.
// body.Start — первый байт после '[', body.End — конец дампа.
func NewElementScanner(f *source.File, body source.Span) *ElementScanner {
	c := NewCursorAt(f, body.Start)
	c.Limit = body.End
	return &ElementScanner{cursor: c}
}

// Next returns the span of the next top-level element. The returned span
// never includes separating commas or surrounding whitespace.
func (s *ElementScanner) Next() (source.Span, Kind) {
	if s.done {
		return s.cursor.SpanFrom(s.cursor.Off), s.terminal
	}

	// пропускаем пробелы и запятые между элементами
	for !s.cursor.EOF() {
		b := s.cursor.Peek()
		if isSpace(b) || b == ',' {
			s.cursor.Bump()
			continue
		}
		break
	}

	if s.cursor.EOF() {
		// конец дампа без ']' — в том числе случай висячей запятой
		return s.finish(KindTruncated)
	}
	if s.cursor.Peek() == ']' {
		s.cursor.Bump()
		return s.finish(KindEnd)
	}

	sp, res := scanValue(&s.cursor)
	if res == Truncated {
		s.done = true
		s.terminal = KindTruncated
		return sp, KindTruncated
	}
	return trimSpan(s.cursor.File, sp), KindElement
}

func (s *ElementScanner) finish(k Kind) (source.Span, Kind) {
	s.done = true
	s.terminal = k
	return s.cursor.SpanFrom(s.cursor.Off), k
}

// trimSpan срезает хвостовые пробелы скалярного спана (скаляр заканчивается
// перед разделителем, и пробелы до него попадают в спан).
func trimSpan(f *source.File, sp source.Span) source.Span {
	for sp.End > sp.Start && isSpace(f.Content[sp.End-1]) {
		sp.End--
	}
	return sp
}
