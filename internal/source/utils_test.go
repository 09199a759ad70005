package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		changed bool
	}{
		{"no cr", "a\nb", "a\nb", false},
		{"crlf", "a\r\nb", "a\nb", true},
		{"lone cr kept", "a\rb", "a\rb", false},
		{"mixed", "a\r\nb\rc\r\n", "a\nb\rc\n", true},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeCRLF([]byte(tt.input))
			if string(got) != tt.want || changed != tt.changed {
				t.Fatalf("normalizeCRLF(%q) = %q, %v; want %q, %v",
					tt.input, got, changed, tt.want, tt.changed)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	with := append([]byte{0xEF, 0xBB, 0xBF}, []byte("{}")...)
	got, had := removeBOM(with)
	if !had || !bytes.Equal(got, []byte("{}")) {
		t.Fatalf("removeBOM = %q, %v", got, had)
	}

	without := []byte("{}")
	got, had = removeBOM(without)
	if had || !bytes.Equal(got, without) {
		t.Fatalf("removeBOM without BOM = %q, %v", got, had)
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("ab\ncde\n\nf")
	idx := buildLineIndex(content)

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{3, LineCol{Line: 2, Col: 1}},
		{5, LineCol{Line: 2, Col: 3}},
		{7, LineCol{Line: 3, Col: 1}},
		{8, LineCol{Line: 4, Col: 1}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Fatalf("toLineCol(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}
}

func TestToLineColSingleLine(t *testing.T) {
	if got := toLineCol(nil, 7); got != (LineCol{Line: 1, Col: 8}) {
		t.Fatalf("toLineCol on single line = %v", got)
	}
}
